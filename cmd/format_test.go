package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nightowlcasino/logline/formatter"
	"github.com/nightowlcasino/logline/layout"
	"github.com/nightowlcasino/logline/logger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const events = `{"level":"debug","logger":"MessageFormatterTests","timestamp":"2024-03-01T09:20:30.5Z","message":"Hello World","properties":{"tags":["skurk:rånarligan"]}}

{"level":"loud","message":"rejected"}
{"level":"info","logger":"api","message":"second","properties":{"fieldname":"runtime value"}}
`

func TestFormatStream(t *testing.T) {
	mf := formatter.NewMessageFormatter(true, nil,
		layout.Field{Name: "fieldname", Layout: layout.Constant("default value")},
	)

	var out bytes.Buffer
	err := formatStream(strings.NewReader(events), &out, mf, false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"timestamp":"2024-03-01T09:20:30.500000000Z"`)
	assert.Contains(t, lines[0], `"tags":["skurk:rånarligan"]`)
	assert.Contains(t, lines[0], `"fieldname":"default value"`)
	assert.Contains(t, lines[1], `"fieldname":"runtime value"`)
}

func TestFormatStreamStrict(t *testing.T) {
	mf := formatter.NewMessageFormatter(true, nil)

	var out bytes.Buffer
	err := formatStream(strings.NewReader(events), &out, mf, true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, 2, strings.Count(out.String(), "\n"))
}

func TestFormatCommand(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	path := filepath.Join(t.TempDir(), "events.json")
	require.NoError(t, os.WriteFile(path, []byte(events), 0o600))

	var out bytes.Buffer
	root := LogLine()
	root.SetOut(&out)
	root.SetArgs([]string{
		"format", path,
		"--include-level=false",
		"--field", "app=shop",
		"--field", "copy=${message}",
	})
	require.NoError(t, root.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], `"level":`)
	assert.Contains(t, lines[0], `"app":"shop"`)
	assert.Contains(t, lines[0], `"copy":"Hello World"`)
}

func TestFormatCommandStdin(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	var out bytes.Buffer
	root := LogLine()
	root.SetIn(strings.NewReader(`{"level":"warn","logger":"stdin","message":"from stdin"}`))
	root.SetOut(&out)
	root.SetArgs([]string{"format", "--layout", "[${level}] ${message}"})
	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), `"message":"[Warn] from stdin"`)
	assert.Contains(t, out.String(), `"level":"Warn"`)
}

func TestFormatCommandInvalidField(t *testing.T) {
	viper.Reset()
	defer viper.Reset()

	root := LogLine()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetIn(strings.NewReader(""))
	root.SetArgs([]string{"format", "--field", "bad=${nope}"})
	assert.Error(t, root.Execute())
}

func TestFormatCommandLogFileDefaults(t *testing.T) {
	viper.Reset()
	defer func() {
		viper.Reset()
		logger.Initialize("logline-test")
	}()

	var out bytes.Buffer
	root := LogLine()
	root.SetIn(strings.NewReader(`{"message":"hi"}`))
	root.SetOut(&out)
	root.SetArgs([]string{"format", "--log-path", t.TempDir()})
	require.NoError(t, root.Execute())

	sink := logger.Sink()
	require.NotNil(t, sink)
	assert.Equal(t, 512, sink.MaxSize)
	assert.Equal(t, 3, sink.MaxBackups)
	assert.Equal(t, 30, sink.MaxAge)
	assert.Equal(t, "logline-format.log", filepath.Base(sink.Filename))
}

func TestFormatStreamSkipsOversizedRecord(t *testing.T) {
	mf := formatter.NewMessageFormatter(true, nil)

	huge := `{"message":"` + strings.Repeat("x", maxRecordBytes) + `"}`
	input := `{"message":"before"}` + "\n" + huge + "\n" + `{"message":"after"}` + "\n"

	var out bytes.Buffer
	err := formatStream(strings.NewReader(input), &out, mf, true)
	assert.ErrorIs(t, err, ErrRecordTooLarge)
	assert.Contains(t, err.Error(), "line 2")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"message":"before"`)
	assert.Contains(t, lines[1], `"message":"after"`)
}

func TestFormatStreamLastRecordWithoutNewline(t *testing.T) {
	mf := formatter.NewMessageFormatter(true, nil)

	var out bytes.Buffer
	require.NoError(t, formatStream(strings.NewReader(`{"message":"tail"}`), &out, mf, true))
	assert.Contains(t, out.String(), `"message":"tail"`)
}
