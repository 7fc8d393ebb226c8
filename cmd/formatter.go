package cmd

import (
	"github.com/nightowlcasino/logline/config"
	"github.com/nightowlcasino/logline/formatter"
	"github.com/spf13/viper"
)

// newMessageFormatter builds the formatter described by the format.* keys.
func newMessageFormatter() (*formatter.MessageFormatter, error) {
	config.SetFormatterDefaults()

	msg, err := config.MessageLayout()
	if err != nil {
		return nil, err
	}

	fields, err := config.Fields()
	if err != nil {
		return nil, err
	}

	return formatter.NewMessageFormatter(viper.GetBool("format.include_level"), msg, fields...), nil
}
