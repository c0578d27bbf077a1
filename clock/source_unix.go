//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package clock

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wiring/errors"
)

// MonotonicClock reads CLOCK_MONOTONIC, which is not affected by wall-clock
// adjustments.
type MonotonicClock struct {
	gettime func(clockid int32, ts *unix.Timespec) error
}

// NewMonotonic returns the preferred clock source.
func NewMonotonic() *MonotonicClock {
	return &MonotonicClock{gettime: unix.ClockGettime}
}

func (c *MonotonicClock) Name() string {
	return Monotonic
}

func (c *MonotonicClock) Now() (Timestamp, error) {
	var ts unix.Timespec
	if err := c.gettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return Timestamp{}, errors.ClockQuery(errors.OpClockGettime, Monotonic, err)
	}
	return fromTimespec(&ts), nil
}

// WallClock reads the time of day with gettimeofday. It can jump when the
// system time is stepped and is only used when no monotonic source exists.
type WallClock struct {
	gettimeofday func(tv *unix.Timeval) error
}

// NewWall returns the fallback clock source.
func NewWall() *WallClock {
	return &WallClock{gettimeofday: unix.Gettimeofday}
}

func (c *WallClock) Name() string {
	return Wall
}

func (c *WallClock) Now() (Timestamp, error) {
	var tv unix.Timeval
	if err := c.gettimeofday(&tv); err != nil {
		return Timestamp{}, errors.ClockQuery(errors.OpGettimeofday, Wall, err)
	}
	sec, nsec := tv.Unix()
	return Timestamp{Sec: sec, Nsec: nsec}, nil
}

func fromTimespec(ts *unix.Timespec) Timestamp {
	sec, nsec := ts.Unix()
	return Timestamp{Sec: sec, Nsec: nsec}
}

func toTimespec(sec, nsec int64) unix.Timespec {
	if sec > maxTimespecSec {
		sec, nsec = maxTimespecSec, nanosPerSecond-1
	}
	return unix.NsecToTimespec(sec*nanosPerSecond + nsec)
}

// Keeps sec*1e9+nsec inside int64.
const maxTimespecSec = (1<<63-1)/nanosPerSecond - 1
