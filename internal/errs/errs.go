// Package errs carries the failure taxonomy for a rendering run. Every error
// is one of three kinds: bad caller input, a failing external tool, or a
// local resource problem. Callers branch on the kind, not the message.
package errs

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindInput marks malformed caller input: bad highlight ranges, missing
	// transcription fields, degenerate video dimensions.
	KindInput Kind = iota + 1
	// KindExternal marks a failure of an external tool (ffmpeg/ffprobe),
	// with the tool's diagnostic output attached.
	KindExternal
	// KindResource marks local I/O problems: unwritable output directory,
	// missing clip file at archive time.
	KindResource
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindExternal:
		return "external"
	case KindResource:
		return "resource"
	default:
		return "unknown"
	}
}

// Error ties a failure kind to the operation that produced it and, when the
// failure concerns a single highlight, to that highlight's index.
type Error struct {
	Kind      Kind
	Op        string
	Highlight int // index into the caller's highlight list, -1 if run-level
	Err       error
}

func (e *Error) Error() string {
	if e.Highlight >= 0 {
		return fmt.Sprintf("%s: highlight %d: %v", e.Op, e.Highlight, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// WithHighlight returns a copy of e bound to highlight index i.
func (e *Error) WithHighlight(i int) *Error {
	cp := *e
	cp.Highlight = i
	return &cp
}

func Input(op string, err error) *Error {
	return &Error{Kind: KindInput, Op: op, Highlight: -1, Err: err}
}

func Inputf(op, format string, args ...any) *Error {
	return Input(op, fmt.Errorf(format, args...))
}

func External(op string, err error) *Error {
	return &Error{Kind: KindExternal, Op: op, Highlight: -1, Err: err}
}

func Resource(op string, err error) *Error {
	return &Error{Kind: KindResource, Op: op, Highlight: -1, Err: err}
}

// KindOf reports the kind of err, or 0 when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// HighlightIndex reports which highlight err belongs to, or -1 for run-level
// errors and errors without taxonomy info.
func HighlightIndex(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Highlight
	}
	return -1
}
