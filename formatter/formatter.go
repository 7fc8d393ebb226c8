package formatter

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	jsoniter "github.com/json-iterator/go"
	"github.com/nightowlcasino/logline/event"
	"github.com/nightowlcasino/logline/layout"
	"go.uber.org/zap"
)

var (
	json = jsoniter.ConfigCompatibleWithStandardLibrary

	ErrNilEvent     = errors.New("cannot format a nil event")
	ErrNoLayout     = errors.New("field has no layout")
	ErrInvalidTags  = errors.New("tags property is not a sequence of strings")
	ErrInvalidValue = errors.New("property value is not json encodable")
)

// MessageFormatter binds the static configuration of a target so that events
// can be formatted one at a time. It holds no mutable state and is safe for
// concurrent use.
type MessageFormatter struct {
	IncludeLevel bool
	Layout       layout.Layout
	Fields       []layout.Field
}

// NewMessageFormatter returns a formatter rendering the message with msg. A
// nil msg renders the event's formatted message.
func NewMessageFormatter(includeLevel bool, msg layout.Layout, fields ...layout.Field) *MessageFormatter {
	if msg == nil {
		msg = layout.MustParse("${message}")
	}
	return &MessageFormatter{
		IncludeLevel: includeLevel,
		Layout:       msg,
		Fields:       fields,
	}
}

// Format formats evt with the formatter's configuration.
func (mf *MessageFormatter) Format(evt *event.Event) (string, error) {
	return Format(mf.IncludeLevel, mf.Layout, evt, mf.Fields)
}

// Format turns evt into the JSON text of a LogLine.
//
// Configured fields are rendered first, in order, then string keyed event
// properties overwrite them. The "tags" property becomes the tags array and
// "fields" is ignored. A field whose layout fails to render is left out and
// a value that cannot be encoded is replaced by its text; both still produce
// a complete line and are reported through the returned error. Only when no
// line can be produced is the returned string empty.
func Format(includeLevel bool, msg layout.Layout, evt *event.Event, fields []layout.Field) (string, error) {
	if evt == nil {
		return "", ErrNilEvent
	}

	var errs *multierror.Error

	line := LogLine{
		Timestamp: evt.TimeStamp.UTC().Format(TimestampFormat),
		Source: Source{
			Scheme: Scheme,
			Data:   evt.LoggerName,
		},
		Exception: newExceptionInfo(evt.Exception),
	}

	if includeLevel {
		line.Level = evt.Level.String()
	}

	line.Message = evt.FormattedMessage()
	if msg != nil {
		m, err := msg.Render(evt)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to render message - %w", err))
		} else {
			line.Message = m
		}
	}

	line.Fields = make(Fields, len(fields)+len(evt.Properties))
	for _, f := range fields {
		if f.Layout == nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to render field %s - %w", f.Name, ErrNoLayout))
			continue
		}
		v, err := f.Layout.Render(evt)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to render field %s - %w", f.Name, err))
			continue
		}
		line.Fields[f.Name] = v
	}

	for k, v := range evt.Properties {
		key, ok := k.(string)
		if !ok {
			continue
		}
		switch key {
		case TagsKey:
			tags, err := toTags(v)
			if err != nil {
				errs = multierror.Append(errs, err)
			}
			line.Tags = tags
		case FieldsKey:
		default:
			line.Fields[key] = v
		}
	}

	doc, err := json.Marshal(&line)
	if err != nil {
		errs = multierror.Append(errs, sanitize(line.Fields)...)
		doc, err = json.Marshal(&line)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to marshal log line - %w", err))
			return "", report(evt, errs)
		}
	}

	return string(doc), report(evt, errs)
}

// toTags coerces the tags property. Non string elements are dropped.
func toTags(v interface{}) ([]string, error) {
	switch vt := v.(type) {
	case []string:
		return vt, nil
	case string:
		return []string{vt}, nil
	case []interface{}:
		tags := make([]string, 0, len(vt))
		var dropped int
		for _, e := range vt {
			if s, ok := e.(string); ok {
				tags = append(tags, s)
			} else {
				dropped++
			}
		}
		if dropped > 0 {
			return tags, fmt.Errorf("%w - dropped %d element(s)", ErrInvalidTags, dropped)
		}
		return tags, nil
	default:
		return nil, fmt.Errorf("%w - got %T", ErrInvalidTags, v)
	}
}

// sanitize replaces every field value that cannot be encoded by its text.
func sanitize(fields Fields) []error {
	var errs []error
	for k, v := range fields {
		if _, err := json.Marshal(v); err != nil {
			fields[k] = fmt.Sprintf("%v", v)
			errs = append(errs, fmt.Errorf("%w - field %s: %s", ErrInvalidValue, k, err.Error()))
		}
	}
	return errs
}

func report(evt *event.Event, errs *multierror.Error) error {
	err := errs.ErrorOrNil()
	if err != nil {
		zap.L().Warn("log line formatted with errors",
			zap.String("logger", evt.LoggerName),
			zap.Int("errors", len(errs.Errors)),
			zap.Error(err),
		)
	}
	return err
}
