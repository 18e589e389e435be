// Package errors provides error wrapping with slog annotations and source
// locations. It re-exports the stdlib helpers so that callers only need one
// errors import.
package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
)

// AnnotatedError carries a message, an optional cause, slog attributes and the
// source location of the call site that created it.
type AnnotatedError struct {
	msg    string
	cause  error
	attrs  []slog.Attr
	source string
}

// NewSentinel creates an error intended for use as a package-level sentinel.
func NewSentinel(msg string) error {
	return &AnnotatedError{msg: msg, cause: nil, attrs: nil, source: caller(1)}
}

// New is an alias for [errors.New] for callers that don't need annotations.
func New(msg string) error {
	return errors.New(msg)
}

// Wrap annotates err with a message and optional slog attributes.
//
// The resulting error message is "msg: err". The attributes and the call site
// are surfaced by [SlogError] instead of polluting the message.
func Wrap(err error, msg string, attrs ...slog.Attr) error {
	return &AnnotatedError{msg: msg, cause: err, attrs: attrs, source: caller(1)}
}

// Error implements the error interface.
func (e *AnnotatedError) Error() string {
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

// Unwrap returns the wrapped error, if any.
func (e *AnnotatedError) Unwrap() error {
	return e.cause
}

// Is re-exports [errors.Is].
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As re-exports [errors.As].
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap re-exports [errors.Unwrap].
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// Join re-exports [errors.Join].
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// SlogError renders err into a single slog.Attr group containing the message,
// the source location of the outermost annotated error, and all annotations
// collected from the error chain.
func SlogError(err error) slog.Attr {
	if err == nil {
		return slog.Group("error", slog.String("message", "<nil>"))
	}

	var (
		source      string
		annotations []any
	)
	for cur := err; cur != nil; {
		if annotated, ok := cur.(*AnnotatedError); ok { //nolint:errorlint // chain walked manually.
			if source == "" && annotated.source != "" {
				source = annotated.source
			}
			for _, attr := range annotated.attrs {
				annotations = append(annotations, attr)
			}
		}
		cur = nextInChain(cur)
	}

	attrs := []any{slog.String("message", err.Error())}
	if source != "" {
		attrs = append(attrs, slog.String("source", source))
	}
	if len(annotations) > 0 {
		attrs = append(attrs, slog.Group("annotations", annotations...))
	}
	return slog.Group("error", attrs...)
}

// nextInChain unwraps one step, tolerating multi-error joins by descending
// into the first non-nil joined error.
func nextInChain(err error) error {
	switch unwrappable := err.(type) { //nolint:errorlint // chain walked manually.
	case interface{ Unwrap() error }:
		return unwrappable.Unwrap()
	case interface{ Unwrap() []error }:
		for _, joined := range unwrappable.Unwrap() {
			if joined != nil {
				return joined
			}
		}
		return nil
	default:
		return nil
	}
}

// DecoratePanic converts a recovered panic value into an annotated error whose
// source location points at the panic site.
func DecoratePanic(recovered any) error {
	return &AnnotatedError{
		msg:    fmt.Sprintf("panic: %v", recovered),
		cause:  nil,
		attrs:  nil,
		source: panicSite(),
	}
}

// caller returns the source location skip+1 frames above the caller.
func caller(skip int) string {
	var pcs [1]uintptr
	// Skip runtime.Callers and caller itself on top of the requested skip.
	if runtime.Callers(skip+2, pcs[:]) == 0 {
		return ""
	}
	frame, _ := runtime.CallersFrames(pcs[:]).Next()
	return fmt.Sprintf("%s:%d", frame.File, frame.Line)
}

// panicSite walks the stack past runtime.gopanic to find the frame that
// panicked. Returns empty when not called during panic recovery.
func panicSite() string {
	const maxDepth = 32
	var pcs [maxDepth]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	seenGopanic := false
	for {
		frame, more := frames.Next()
		if strings.HasPrefix(frame.Function, "runtime.") {
			if frame.Function == "runtime.gopanic" {
				seenGopanic = true
			}
		} else if seenGopanic {
			return fmt.Sprintf("%s:%d", frame.File, frame.Line)
		}
		if !more {
			return ""
		}
	}
}
