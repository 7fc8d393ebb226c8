package event

import (
	"errors"
	"fmt"
	"strings"
)

// Level is the severity of a log event.
type Level int8

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Fatal
	Off
)

// ErrUnknownLevel is returned by ParseLevel for names outside the enumeration.
var ErrUnknownLevel = errors.New("unknown log level")

// String returns the level name exactly as it appears in a log line.
func (l Level) String() string {
	switch l {
	case Trace:
		return "Trace"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warn:
		return "Warn"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	case Off:
		return "Off"
	default:
		return "Unknown"
	}
}

// ParseLevel converts a level name, in any case, to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "trace":
		return Trace, nil
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "fatal":
		return Fatal, nil
	case "off":
		return Off, nil
	default:
		return Info, fmt.Errorf("%w - %q", ErrUnknownLevel, s)
	}
}
