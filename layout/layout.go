package layout

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/nightowlcasino/logline/event"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "${"
	endTag   = "}"
)

var (
	ErrUnknownRenderer = errors.New("unknown layout renderer")
	ErrMissingOption   = errors.New("missing layout renderer option")
	ErrNilEvent        = errors.New("cannot render a nil event")
)

// Layout renders a value from an event.
type Layout interface {
	Render(evt *event.Event) (string, error)
}

// Constant is a layout that always renders the same text.
type Constant string

func (c Constant) Render(*event.Event) (string, error) {
	return string(c), nil
}

// Func adapts an ordinary function to the Layout interface.
type Func func(evt *event.Event) (string, error)

func (f Func) Render(evt *event.Event) (string, error) {
	return f(evt)
}

// Simple is a text containing ${renderer} placeholders, each expanded against
// the event being rendered.
type Simple struct {
	text      string
	tmpl      *fasttemplate.Template
	renderers map[string]renderer
}

// Parse builds the layout for text. Text without placeholders becomes a
// Constant. Every placeholder is validated up front so that an unknown
// renderer fails here rather than on each event.
func Parse(text string) (Layout, error) {
	if !strings.Contains(text, startTag) {
		return Constant(text), nil
	}

	tmpl, err := fasttemplate.NewTemplate(text, startTag, endTag)
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout %q - %w", text, err)
	}

	s := &Simple{
		text:      text,
		tmpl:      tmpl,
		renderers: make(map[string]renderer),
	}

	var errs []error
	tmpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if _, ok := s.renderers[tag]; ok {
			return 0, nil
		}
		r, err := compile(tag)
		if err != nil {
			errs = append(errs, err)
			return 0, nil
		}
		s.renderers[tag] = r
		return 0, nil
	})
	if len(errs) > 0 {
		return nil, fmt.Errorf("failed to parse layout %q - %w", text, errs[0])
	}

	return s, nil
}

// MustParse is like Parse but panics when text is not a valid layout.
func MustParse(text string) Layout {
	l, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return l
}

// Render expands every placeholder of the layout.
func (s *Simple) Render(evt *event.Event) (string, error) {
	if evt == nil {
		return "", ErrNilEvent
	}

	return s.tmpl.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		v, err := s.renderers[tag](evt)
		if err != nil {
			return 0, fmt.Errorf("${%s} - %w", tag, err)
		}
		return io.WriteString(w, v)
	})
}

// String returns the text the layout was parsed from.
func (s *Simple) String() string {
	return s.text
}

// Field is a named layout configured once and rendered for every event.
type Field struct {
	Name   string
	Layout Layout
}

// NewField parses text into a Field named name.
func NewField(name, text string) (Field, error) {
	l, err := Parse(text)
	if err != nil {
		return Field{}, err
	}
	return Field{Name: name, Layout: l}, nil
}

// ParseField parses a "name=template" definition. Only the first '=' splits
// the definition so templates may contain options of their own.
func ParseField(def string) (Field, error) {
	name, text, ok := strings.Cut(def, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return Field{}, fmt.Errorf("invalid field definition %q, expected name=template", def)
	}
	return NewField(name, text)
}
