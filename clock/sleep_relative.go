//go:build linux || freebsd || netbsd || openbsd || dragonfly

package clock

import (
	"golang.org/x/sys/unix"

	"github.com/wippyai/wiring/errors"
)

// RelativeSleeper waits with nanosleep. After a signal it resumes with the
// remaining time reported by the kernel, so frequent interruptions stretch the
// total wait beyond the request. That drift is a platform limitation of the
// relative form.
type RelativeSleeper struct {
	nanosleep func(request, remain *unix.Timespec) error
	onEINTR   InterruptHook
}

// NewRelativeSleeper returns a nanosleep-backed sleeper.
func NewRelativeSleeper() *RelativeSleeper {
	return &RelativeSleeper{nanosleep: unix.Nanosleep}
}

func (s *RelativeSleeper) Name() string {
	return Relative
}

func (s *RelativeSleeper) SetInterruptHook(h InterruptHook) {
	s.onEINTR = h
}

func (s *RelativeSleeper) Sleep(d Duration) error {
	if d.IsZero() || d.IsNegative() {
		return nil
	}

	ts := toTimespec(d.Sec, d.Nsec)
	for {
		err := s.nanosleep(&ts, &ts)
		if err == nil {
			return nil
		}
		if err != unix.EINTR {
			return errors.SleepFailure(errors.OpNanosleep, Relative, err)
		}
		if s.onEINTR != nil {
			s.onEINTR(errors.SleepInterrupted(errors.OpNanosleep, Relative, err))
		}
	}
}
