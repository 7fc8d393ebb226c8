package event

import (
	"fmt"
	"time"
)

// Properties holds the runtime properties of an event. Keys may be of any
// type, only string keys ever reach a log line.
type Properties map[interface{}]interface{}

// Event is a single structured logging call.
type Event struct {
	Level      Level
	LoggerName string
	TimeStamp  time.Time
	Message    string
	Parameters []interface{}
	Exception  *Exception
	Properties Properties
}

// New constructs an Event stamped with the current time.
func New(level Level, loggerName, message string, params ...interface{}) *Event {
	return &Event{
		Level:      level,
		LoggerName: loggerName,
		TimeStamp:  time.Now(),
		Message:    message,
		Parameters: params,
		Properties: make(Properties),
	}
}

// WithException attaches err to the event.
func (e *Event) WithException(err error) *Event {
	e.Exception = newException(err, 4)
	return e
}

// WithProperty sets a single property, allocating the map when necessary.
func (e *Event) WithProperty(key, value interface{}) *Event {
	if e.Properties == nil {
		e.Properties = make(Properties)
	}
	e.Properties[key] = value
	return e
}

// FormattedMessage expands Message with the event parameters.
func (e *Event) FormattedMessage() string {
	if len(e.Parameters) > 0 {
		return fmt.Sprintf(e.Message, e.Parameters...)
	}
	return e.Message
}

// Property returns the value stored under a string key.
func (e *Event) Property(key string) (interface{}, bool) {
	if e.Properties == nil {
		return nil, false
	}
	v, ok := e.Properties[key]
	return v, ok
}
