//go:build linux

package clock

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wiring/errors"
)

// AbsoluteSleeper waits with clock_nanosleep(TIMER_ABSTIME). The deadline is
// fixed before the first call, so retries after a signal never add drift.
type AbsoluteSleeper struct {
	clockID   int32
	gettime   func(clockid int32, ts *unix.Timespec) error
	nanosleep func(clockid int32, flags int, request, remain *unix.Timespec) error
	onEINTR   InterruptHook
}

// NewAbsoluteSleeper returns a sleeper that measures deadlines on clockID,
// normally unix.CLOCK_MONOTONIC.
func NewAbsoluteSleeper(clockID int32) *AbsoluteSleeper {
	return &AbsoluteSleeper{
		clockID:   clockID,
		gettime:   unix.ClockGettime,
		nanosleep: unix.ClockNanosleep,
	}
}

func (s *AbsoluteSleeper) Name() string {
	return Absolute
}

func (s *AbsoluteSleeper) SetInterruptHook(h InterruptHook) {
	s.onEINTR = h
}

func (s *AbsoluteSleeper) Sleep(d Duration) error {
	if d.IsZero() || d.IsNegative() {
		return nil
	}

	var now unix.Timespec
	if err := s.gettime(s.clockID, &now); err != nil {
		return errors.ClockQuery(errors.OpClockGettime, Absolute, err)
	}
	return s.SleepUntil(fromTimespec(&now).Add(d))
}

// SleepUntil blocks until the clock reaches deadline.
func (s *AbsoluteSleeper) SleepUntil(deadline Timestamp) error {
	ts := toTimespec(deadline.Sec, deadline.Nsec)
	for {
		err := s.nanosleep(s.clockID, unix.TIMER_ABSTIME, &ts, nil)
		if err == nil {
			return nil
		}
		if err != unix.EINTR {
			return errors.SleepFailure(errors.OpClockNanosleep, Absolute, err)
		}
		if s.onEINTR != nil {
			s.onEINTR(errors.SleepInterrupted(errors.OpClockNanosleep, Absolute, err))
		}
	}
}
