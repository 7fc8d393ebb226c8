package event

import (
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	ErrEmptyRecord = errors.New("empty event record")
)

// Record is the JSON form of an event accepted by the command line and the
// formatting service.
type Record struct {
	Level      string                 `json:"level"`
	Logger     string                 `json:"logger"`
	Timestamp  *time.Time             `json:"timestamp,omitempty"`
	Message    string                 `json:"message"`
	Parameters []interface{}          `json:"parameters,omitempty"`
	Exception  *ExceptionRecord       `json:"exception,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// ExceptionRecord is the JSON form of an Exception.
type ExceptionRecord struct {
	Type       string           `json:"type"`
	Message    string           `json:"message"`
	StackTrace string           `json:"stackTrace,omitempty"`
	Inner      *ExceptionRecord `json:"inner,omitempty"`
}

// Decode parses a single JSON event record. A record without a timestamp is
// stamped with the current time and a record without a level is Info.
func Decode(data []byte) (*Event, error) {
	if len(data) == 0 {
		return nil, ErrEmptyRecord
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event record - %w", err)
	}

	return rec.Event()
}

// Event converts the record to an Event.
func (r *Record) Event() (*Event, error) {
	level := Info
	if r.Level != "" {
		l, err := ParseLevel(r.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}

	evt := &Event{
		Level:      level,
		LoggerName: r.Logger,
		TimeStamp:  time.Now(),
		Message:    r.Message,
		Parameters: r.Parameters,
		Exception:  r.Exception.exception(),
		Properties: make(Properties, len(r.Properties)),
	}
	if r.Timestamp != nil {
		evt.TimeStamp = *r.Timestamp
	}
	for k, v := range r.Properties {
		evt.Properties[k] = v
	}

	return evt, nil
}

func (r *ExceptionRecord) exception() *Exception {
	if r == nil {
		return nil
	}
	return &Exception{
		Type:       r.Type,
		Message:    r.Message,
		StackTrace: r.StackTrace,
		Inner:      r.Inner.exception(),
	}
}
