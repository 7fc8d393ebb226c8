package config

import (
	"testing"

	"github.com/nightowlcasino/logline/event"
	"github.com/nightowlcasino/logline/logger"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFields(t *testing.T) {
	viper.Reset()
	SetFormatterDefaults()

	fields, err := Fields()
	require.NoError(t, err)
	assert.Empty(t, fields)

	viper.Set("format.fields", []string{"app=shop", "msg=${message}"})
	fields, err = Fields()
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "app", fields[0].Name)
	assert.Equal(t, "msg", fields[1].Name)

	got, err := fields[1].Layout.Render(event.New(event.Info, "test", "hi"))
	require.NoError(t, err)
	assert.Equal(t, "hi", got)

	viper.Set("format.fields", []string{"broken"})
	_, err = Fields()
	assert.Error(t, err)
}

func TestMessageLayout(t *testing.T) {
	viper.Reset()
	SetFormatterDefaults()

	l, err := MessageLayout()
	require.NoError(t, err)
	got, err := l.Render(event.New(event.Info, "test", "hi %d", 5))
	require.NoError(t, err)
	assert.Equal(t, "hi 5", got)

	viper.Set("format.layout", "${nope}")
	_, err = MessageLayout()
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	viper.Reset()
	SetEnv()
	SetFormatterDefaults()

	t.Setenv("LOGLINE_FORMAT_INCLUDE_LEVEL", "false")
	assert.False(t, viper.GetBool("format.include_level"))
}

func TestServerDefaults(t *testing.T) {
	viper.Reset()
	require.NoError(t, SetServerDefaults())
	assert.Equal(t, 8095, viper.GetInt("server.port"))

	viper.Set("server.port", 70000)
	assert.ErrorIs(t, SetServerDefaults(), ErrInvalidPort)
}

func TestLoggingDefaults(t *testing.T) {
	viper.Reset()
	viper.Set("logging.level", "debug")
	SetLoggingLevel()
	assert.Equal(t, "debug", logger.GetLevel())

	viper.Reset()
	SetLoggingDefaults()
	SetLoggingLevel()
	assert.Equal(t, "info", logger.GetLevel())
	assert.Equal(t, 512, viper.GetInt("logging.max_size"))
	assert.Equal(t, 3, viper.GetInt("logging.max_backups"))
	assert.Equal(t, 30, viper.GetInt("logging.max_age"))
}
