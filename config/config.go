package config

import (
	"errors"
	"strings"

	"github.com/nightowlcasino/logline/layout"
	"github.com/nightowlcasino/logline/logger"
	"github.com/spf13/viper"
)

const (
	Application     = "logline"
	ApplicationFull = "Structured log event to JSON log line formatter"

	EnvPrefix = "LOGLINE"
)

var (
	ErrInvalidPort = errors.New("config server.port must be between 1 and 65535")
)

// SetEnv makes every key readable from LOGLINE_ prefixed environment
// variables, e.g. LOGLINE_FORMAT_INCLUDE_LEVEL for format.include_level.
func SetEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// SetLoggingDefaults must run before logger.Initialize, which reads the
// rotation settings.
func SetLoggingDefaults() {
	viper.SetDefault("logging.path", "")
	viper.SetDefault("logging.max_size", 512)
	viper.SetDefault("logging.max_backups", 3)
	viper.SetDefault("logging.max_age", 30)
}

func SetLoggingLevel() {
	if value := viper.GetString("logging.level"); value != "" {
		// logger will default to info level if user provided level is incorrect
		logger.SetLevel(value)
	} else {
		logger.SetLevel("info")
	}
}

func SetFormatterDefaults() {
	viper.SetDefault("format.include_level", true)
	viper.SetDefault("format.layout", "${message}")
	viper.SetDefault("format.fields", []string{})
}

func SetServerDefaults() error {
	viper.SetDefault("server.port", 8095)
	viper.SetDefault("server.rate_limit", 100.0)

	if port := viper.GetInt("server.port"); port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

// Fields parses the format.fields definitions, each "name=template", in
// declaration order.
func Fields() ([]layout.Field, error) {
	defs := viper.GetStringSlice("format.fields")

	fields := make([]layout.Field, 0, len(defs))
	for _, def := range defs {
		f, err := layout.ParseField(def)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// MessageLayout parses format.layout.
func MessageLayout() (layout.Layout, error) {
	return layout.Parse(viper.GetString("format.layout"))
}
