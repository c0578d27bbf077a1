package clock

import (
	"fmt"
	"math"
	"time"
)

const (
	nanosPerSecond = 1_000_000_000
	nanosPerMilli  = 1_000_000
	nanosPerMicro  = 1_000
)

// Timestamp is a reading of a clock source in whole seconds plus nanoseconds.
// Readings of different sources are not comparable.
type Timestamp struct {
	Sec  int64
	Nsec int64
}

// Sub returns t minus start. When t.Nsec < start.Nsec one second is borrowed
// from the seconds field, so Nsec of the result is always in [0, 1e9) for
// normalized inputs.
func (t Timestamp) Sub(start Timestamp) Duration {
	if t.Nsec < start.Nsec {
		return Duration{
			Sec:  t.Sec - start.Sec - 1,
			Nsec: nanosPerSecond + t.Nsec - start.Nsec,
		}
	}
	return Duration{
		Sec:  t.Sec - start.Sec,
		Nsec: t.Nsec - start.Nsec,
	}
}

// Add returns t advanced by d, carrying whole seconds out of the nanosecond
// field.
func (t Timestamp) Add(d Duration) Timestamp {
	r := Timestamp{Sec: t.Sec + d.Sec, Nsec: t.Nsec + d.Nsec}
	if r.Nsec >= nanosPerSecond {
		r.Sec += r.Nsec / nanosPerSecond
		r.Nsec %= nanosPerSecond
	}
	return r
}

// IsZero reports whether t is the zero reading.
func (t Timestamp) IsZero() bool {
	return t.Sec == 0 && t.Nsec == 0
}

// Before reports whether t is earlier than u in the same clock frame.
func (t Timestamp) Before(u Timestamp) bool {
	if t.Sec != u.Sec {
		return t.Sec < u.Sec
	}
	return t.Nsec < u.Nsec
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%d.%09ds", t.Sec, t.Nsec)
}

// Duration is an elapsed time in whole seconds plus nanoseconds.
type Duration struct {
	Sec  int64
	Nsec int64
}

// NewDuration builds a Duration from whole seconds and residual microseconds.
// Microseconds beyond one second are carried into the seconds field.
func NewDuration(seconds, micros uint64) Duration {
	seconds += micros / 1_000_000
	micros %= 1_000_000
	return Duration{
		Sec:  int64(seconds),
		Nsec: int64(micros) * nanosPerMicro,
	}
}

// FromStd converts a time.Duration. Negative values map to zero.
func FromStd(d time.Duration) Duration {
	if d <= 0 {
		return Duration{}
	}
	return Duration{
		Sec:  int64(d / time.Second),
		Nsec: int64(d % time.Second),
	}
}

// Millis returns d in whole milliseconds, truncating the remainder.
// The result wraps when d exceeds the range of uint64.
func (d Duration) Millis() uint64 {
	return uint64(d.Sec)*1000 + uint64(d.Nsec)/nanosPerMilli
}

// Micros returns d in whole microseconds, truncating the remainder.
// The result wraps when d exceeds the range of uint64.
func (d Duration) Micros() uint64 {
	return uint64(d.Sec)*1_000_000 + uint64(d.Nsec)/nanosPerMicro
}

// Nanoseconds returns d in nanoseconds, saturating at math.MaxInt64.
func (d Duration) Nanoseconds() int64 {
	if d.Sec > (math.MaxInt64-d.Nsec)/nanosPerSecond {
		return math.MaxInt64
	}
	return d.Sec*nanosPerSecond + d.Nsec
}

// Std converts d to a time.Duration, saturating on overflow.
func (d Duration) Std() time.Duration {
	if d.IsNegative() {
		return 0
	}
	return time.Duration(d.Nanoseconds())
}

// IsZero reports whether d is empty.
func (d Duration) IsZero() bool {
	return d.Sec == 0 && d.Nsec == 0
}

// IsNegative reports whether d runs backwards, which happens when the
// fallback wall clock is stepped.
func (d Duration) IsNegative() bool {
	return d.Sec < 0 || (d.Sec == 0 && d.Nsec < 0)
}

func (d Duration) String() string {
	return d.Std().String()
}
