package formatter

import (
	"github.com/nightowlcasino/logline/event"
)

const (
	// Scheme identifies the producing subsystem in every log line source.
	Scheme = "nlog"

	// TimestampFormat is the fixed width, round trip stable UTC layout of
	// the timestamp of a log line.
	TimestampFormat = "2006-01-02T15:04:05.000000000Z"

	// TagsKey is the property holding the tags of a log line.
	TagsKey = "tags"
	// FieldsKey is reserved and never merged into the fields of a log line.
	FieldsKey = "fields"
)

// Fields is the merged set of configured fields and runtime properties.
type Fields map[string]interface{}

// LogLine is the document published for a single event.
type LogLine struct {
	Message   string         `json:"message"`
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level,omitempty"`
	Source    Source         `json:"source"`
	Exception *ExceptionInfo `json:"exception,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Fields    Fields         `json:"fields"`
}

// Source names the producer of a log line.
type Source struct {
	Scheme string `json:"scheme"`
	Data   string `json:"data"`
}

// ExceptionInfo is the serialized form of an event exception.
type ExceptionInfo struct {
	Message    string         `json:"message"`
	Type       string         `json:"type"`
	StackTrace string         `json:"stackTrace,omitempty"`
	Inner      *ExceptionInfo `json:"inner,omitempty"`
}

func newExceptionInfo(ex *event.Exception) *ExceptionInfo {
	if ex == nil {
		return nil
	}
	return &ExceptionInfo{
		Message:    ex.Message,
		Type:       ex.Type,
		StackTrace: ex.StackTrace,
		Inner:      newExceptionInfo(ex.Inner),
	}
}
