package errors

import (
	"fmt"
	"strings"
)

// Op names the operation that failed. Clock operations use the name of the
// underlying OS call so diagnostics read the same as the platform manual.
type Op string

const (
	OpClockGettime   Op = "clock_gettime"
	OpGettimeofday   Op = "gettimeofday"
	OpClockNanosleep Op = "clock_nanosleep"
	OpNanosleep      Op = "nanosleep"
	OpRuntimeClock   Op = "runtime_clock"
	OpInit           Op = "wiring_init"
	OpSelect         Op = "select"
	OpHost           Op = "host"
)

// Kind categorizes the error
type Kind string

const (
	KindClockQuery       Kind = "clock_query_failure"
	KindSleepInterrupted Kind = "sleep_interrupted"
	KindSleepFailure     Kind = "sleep_failure"
	KindNotInitialized   Kind = "not_initialized"
	KindUnsupported      Kind = "unsupported"
	KindInvalidInput     Kind = "invalid_input"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Op     Op
	Kind   Kind
	Clock  string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Clock != "" {
		b.WriteString(" on ")
		b.WriteString(e.Clock)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Message renders the short diagnostic line "<op> failed: <cause>".
func (e *Error) Message() string {
	switch {
	case e.Cause != nil:
		return string(e.Op) + " failed: " + e.Cause.Error()
	case e.Detail != "":
		return string(e.Op) + " failed: " + e.Detail
	default:
		return string(e.Op) + " failed"
	}
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. An empty Op on the target
// matches any operation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Clock sets the name of the clock source or sleeper involved
func (b *Builder) Clock(name string) *Builder {
	b.err.Clock = name
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// ClockQuery creates a clock query failure for the given OS call
func ClockQuery(op Op, clock string, cause error) *Error {
	return &Error{
		Op:    op,
		Kind:  KindClockQuery,
		Clock: clock,
		Cause: cause,
	}
}

// SleepFailure creates a non-interruption sleep failure
func SleepFailure(op Op, sleeper string, cause error) *Error {
	return &Error{
		Op:    op,
		Kind:  KindSleepFailure,
		Clock: sleeper,
		Cause: cause,
	}
}

// SleepInterrupted records that a wait was cut short by a signal
func SleepInterrupted(op Op, sleeper string, cause error) *Error {
	return &Error{
		Op:    op,
		Kind:  KindSleepInterrupted,
		Clock: sleeper,
		Cause: cause,
	}
}

// NotInitialized creates an error for queries made before the reference
// timestamp was captured
func NotInitialized() *Error {
	return &Error{
		Op:     OpInit,
		Kind:   KindNotInitialized,
		Detail: "reference timestamp not captured, call Init first",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(op Op, what string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidInput creates an invalid input error carrying the offending value
func InvalidInput(op Op, value any, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindInvalidInput,
		Detail: detail,
		Value:  value,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(op Op, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil, false
		}
		err = u.Unwrap()
	}
	return nil, false
}
