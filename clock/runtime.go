package clock

import (
	"time"

	cfclock "code.cloudfoundry.org/clock"
)

// RuntimeClock reads and sleeps on the Go runtime clock. It is the source and
// sleeper for targets without direct access to the POSIX clock calls.
type RuntimeClock struct {
	clock  cfclock.Clock
	origin time.Time
}

// NewRuntime returns a RuntimeClock backed by the real clock.
func NewRuntime() *RuntimeClock {
	return NewRuntimeWith(cfclock.NewClock())
}

// NewRuntimeWith returns a RuntimeClock backed by c. Readings count from the
// moment of construction.
func NewRuntimeWith(c cfclock.Clock) *RuntimeClock {
	return &RuntimeClock{
		clock:  c,
		origin: c.Now(),
	}
}

func (r *RuntimeClock) Name() string {
	return Runtime
}

func (r *RuntimeClock) Now() (Timestamp, error) {
	d := r.clock.Now().Sub(r.origin)
	if d < 0 {
		d = 0
	}
	return Timestamp{
		Sec:  int64(d / time.Second),
		Nsec: int64(d % time.Second),
	}, nil
}

func (r *RuntimeClock) Sleep(d Duration) error {
	if d.IsZero() || d.IsNegative() {
		return nil
	}
	r.clock.Sleep(d.Std())
	return nil
}
