// Package errors provides structured error types for the wiring runtime.
//
// Errors are categorized by Op (the OS call or runtime operation that failed)
// and Kind (error category). The Error type carries the clock or sleeper name,
// a detail message and the cause chain, usually a platform errno.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpClockNanosleep, errors.KindSleepFailure).
//		Clock("absolute").
//		Cause(unix.EINVAL).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ClockQuery(errors.OpClockGettime, "monotonic", errno)
//	err := errors.SleepFailure(errors.OpNanosleep, "relative", errno)
//
// Message renders the one-line diagnostic written to the diagnostic stream,
// for example "clock_nanosleep failed: invalid argument".
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
