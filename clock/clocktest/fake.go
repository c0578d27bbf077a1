// Package clocktest provides a deterministic clock source and sleeper for
// tests. Sleeping on a Fake advances its clock by exactly the requested
// duration without blocking.
package clocktest

import (
	"sync"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"

	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/errors"
)

// Fake implements clock.Source and clock.Sleeper over a fakeclock.
type Fake struct {
	clock  *fakeclock.FakeClock
	origin time.Time
	start  clock.Timestamp

	mu       sync.Mutex
	nowErr   error
	sleepErr error
	sleeps   []clock.Duration
	hook     clock.InterruptHook
	eintr    int
}

// New returns a Fake whose first reading is zero.
func New() *Fake {
	return NewAt(clock.Timestamp{})
}

// NewAt returns a Fake whose first reading is start.
func NewAt(start clock.Timestamp) *Fake {
	origin := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return &Fake{
		clock:  fakeclock.NewFakeClock(origin),
		origin: origin,
		start:  start,
	}
}

func (f *Fake) Name() string {
	return "fake"
}

func (f *Fake) Now() (clock.Timestamp, error) {
	f.mu.Lock()
	err := f.nowErr
	f.mu.Unlock()
	if err != nil {
		return clock.Timestamp{}, errors.ClockQuery(errors.OpClockGettime, f.Name(), err)
	}
	return f.start.Add(clock.FromStd(f.clock.Now().Sub(f.origin))), nil
}

func (f *Fake) Sleep(d clock.Duration) error {
	f.mu.Lock()
	f.sleeps = append(f.sleeps, d)
	err := f.sleepErr
	hook, eintr := f.hook, f.eintr
	f.eintr = 0
	f.mu.Unlock()

	for i := 0; i < eintr; i++ {
		if hook != nil {
			hook(errors.SleepInterrupted(errors.OpClockNanosleep, f.Name(), errEINTR))
		}
	}
	if err != nil {
		return errors.SleepFailure(errors.OpClockNanosleep, f.Name(), err)
	}
	f.clock.Increment(d.Std())
	return nil
}

func (f *Fake) SetInterruptHook(h clock.InterruptHook) {
	f.mu.Lock()
	f.hook = h
	f.mu.Unlock()
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.clock.Increment(d)
}

// FailNow makes subsequent Now calls fail with err. A nil err clears it.
func (f *Fake) FailNow(err error) {
	f.mu.Lock()
	f.nowErr = err
	f.mu.Unlock()
}

// FailSleep makes subsequent Sleep calls fail with err without advancing the
// clock. A nil err clears it.
func (f *Fake) FailSleep(err error) {
	f.mu.Lock()
	f.sleepErr = err
	f.mu.Unlock()
}

// Interrupt makes the next Sleep report n interruptions through the hook
// before completing.
func (f *Fake) Interrupt(n int) {
	f.mu.Lock()
	f.eintr = n
	f.mu.Unlock()
}

// Sleeps returns the durations passed to Sleep, in call order.
func (f *Fake) Sleeps() []clock.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]clock.Duration(nil), f.sleeps...)
}

type fakeErrno string

func (e fakeErrno) Error() string { return string(e) }

var errEINTR = fakeErrno("interrupted system call")
