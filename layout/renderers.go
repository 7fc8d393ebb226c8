package layout

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nightowlcasino/logline/event"
)

const (
	longDateFormat  = "2006-01-02 15:04:05.0000"
	shortDateFormat = "2006-01-02"
)

type renderer func(evt *event.Event) (string, error)

type options map[string]string

// compile turns the body of a ${...} placeholder into a renderer. The body is
// a renderer name followed by ':'-separated name=value options, a literal
// ':' inside an option value is written as '\:'.
func compile(tag string) (renderer, error) {
	parts := splitOptions(tag)
	name := strings.ToLower(strings.TrimSpace(parts[0]))

	opts := make(options, len(parts)-1)
	for _, p := range parts[1:] {
		k, v, _ := strings.Cut(p, "=")
		opts[strings.ToLower(strings.TrimSpace(k))] = v
	}

	switch name {
	case "message":
		return func(evt *event.Event) (string, error) {
			return evt.FormattedMessage(), nil
		}, nil
	case "logger":
		return func(evt *event.Event) (string, error) {
			return evt.LoggerName, nil
		}, nil
	case "level":
		upper, _ := strconv.ParseBool(opts["uppercase"])
		return func(evt *event.Event) (string, error) {
			if upper {
				return strings.ToUpper(evt.Level.String()), nil
			}
			return evt.Level.String(), nil
		}, nil
	case "longdate":
		return dateRenderer(longDateFormat), nil
	case "shortdate":
		return dateRenderer(shortDateFormat), nil
	case "date":
		format, ok := opts["format"]
		if !ok {
			format = time.RFC3339Nano
		}
		return dateRenderer(format), nil
	case "event-properties", "event-property":
		item, ok := opts["item"]
		if !ok {
			return nil, fmt.Errorf("%w - %s requires item", ErrMissingOption, name)
		}
		return func(evt *event.Event) (string, error) {
			v, ok := evt.Property(item)
			if !ok {
				return "", nil
			}
			return toString(v), nil
		}, nil
	case "exception":
		return exceptionRenderer(opts["format"])
	case "newline":
		return func(*event.Event) (string, error) {
			return "\n", nil
		}, nil
	case "literal":
		text, ok := opts["text"]
		if !ok {
			return nil, fmt.Errorf("%w - literal requires text", ErrMissingOption)
		}
		return func(*event.Event) (string, error) {
			return text, nil
		}, nil
	default:
		return nil, fmt.Errorf("%w - %q", ErrUnknownRenderer, name)
	}
}

func dateRenderer(format string) renderer {
	return func(evt *event.Event) (string, error) {
		return evt.TimeStamp.UTC().Format(format), nil
	}
}

func exceptionRenderer(format string) (renderer, error) {
	var pick func(ex *event.Exception) string

	switch strings.ToLower(format) {
	case "", "message":
		pick = func(ex *event.Exception) string { return ex.Message }
	case "type", "shorttype":
		pick = func(ex *event.Exception) string { return ex.Type }
	case "tostring":
		pick = func(ex *event.Exception) string { return ex.String() }
	case "stacktrace":
		pick = func(ex *event.Exception) string { return ex.StackTrace }
	default:
		return nil, fmt.Errorf("%w - exception format %q", ErrUnknownRenderer, format)
	}

	return func(evt *event.Event) (string, error) {
		if evt.Exception == nil {
			return "", nil
		}
		return pick(evt.Exception), nil
	}, nil
}

func splitOptions(tag string) []string {
	var (
		parts []string
		sb    strings.Builder
	)
	for i := 0; i < len(tag); i++ {
		switch {
		case tag[i] == '\\' && i+1 < len(tag) && tag[i+1] == ':':
			sb.WriteByte(':')
			i++
		case tag[i] == ':':
			parts = append(parts, sb.String())
			sb.Reset()
		default:
			sb.WriteByte(tag[i])
		}
	}
	return append(parts, sb.String())
}

// toString renders a property value as layout text.
func toString(v interface{}) string {
	switch vt := v.(type) {
	case nil:
		return ""
	case string:
		return vt
	case error:
		return vt.Error()
	case int:
		return strconv.FormatInt(int64(vt), 10)
	case int32:
		return strconv.FormatInt(int64(vt), 10)
	case int64:
		return strconv.FormatInt(vt, 10)
	case uint:
		return strconv.FormatUint(uint64(vt), 10)
	case uint64:
		return strconv.FormatUint(vt, 10)
	case float32:
		return strconv.FormatFloat(float64(vt), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(vt, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(vt)
	case time.Time:
		return vt.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return vt.String()
	default:
		return fmt.Sprintf("%v", vt)
	}
}
