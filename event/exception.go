package event

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

const maxStackDepth = 32

// Exception is the error attached to an event.
type Exception struct {
	Type       string
	Message    string
	StackTrace string
	Inner      *Exception
}

// NewException captures err together with the stack of the caller. Wrapped
// errors become the Inner chain. A nil err yields nil.
func NewException(err error) *Exception {
	return newException(err, 4)
}

// newException skips skip frames of the stack, counted from runtime.Callers,
// so the trace starts at whoever called the exported constructor.
func newException(err error, skip int) *Exception {
	if err == nil {
		return nil
	}

	ex := &Exception{
		Type:       fmt.Sprintf("%T", err),
		Message:    err.Error(),
		StackTrace: callers(skip),
	}

	cur := ex
	for inner := errors.Unwrap(err); inner != nil; inner = errors.Unwrap(inner) {
		cur.Inner = &Exception{
			Type:    fmt.Sprintf("%T", inner),
			Message: inner.Error(),
		}
		cur = cur.Inner
	}

	return ex
}

// String renders the exception the way a stack dump reads: type, message and
// trace, followed by every inner exception.
func (ex *Exception) String() string {
	var sb strings.Builder
	for cur := ex; cur != nil; cur = cur.Inner {
		if cur != ex {
			sb.WriteString(" ---> ")
		}
		sb.WriteString(cur.Type)
		sb.WriteString(": ")
		sb.WriteString(cur.Message)
		if cur.StackTrace != "" {
			sb.WriteString("\n")
			sb.WriteString(cur.StackTrace)
		}
	}
	return sb.String()
}

func callers(skip int) string {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip, pcs)
	if n == 0 {
		return ""
	}

	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "   at %s in %s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
