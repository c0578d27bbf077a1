// Package clock implements the clock sources and sleepers behind the wiring
// runtime.
//
// Sources:
//   - MonotonicClock - clock_gettime(CLOCK_MONOTONIC), preferred
//   - WallClock - gettimeofday, fallback when no monotonic clock exists
//   - RuntimeClock - the Go runtime clock, for non-POSIX targets
//
// Sleepers:
//   - AbsoluteSleeper - clock_nanosleep(TIMER_ABSTIME), retries the same
//     deadline after a signal (linux)
//   - RelativeSleeper - nanosleep, resumes with the remaining time after a
//     signal and may drift
//   - RuntimeClock - the Go runtime timer
//
// Detect picks the best pair for the build target. Select resolves a pair by
// name for configuration surfaces. Timestamps are seconds plus nanoseconds;
// Timestamp.Sub borrows a second when the nanosecond field underflows.
package clock
