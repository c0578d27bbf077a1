//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package clock

import (
	stderrors "errors"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/wippyai/wiring/errors"
)

func TestMonotonicClock_NonDecreasing(t *testing.T) {
	c := NewMonotonic()

	prev, err := c.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	for i := 0; i < 1000; i++ {
		cur, err := c.Now()
		if err != nil {
			t.Fatalf("Now() error: %v", err)
		}
		if cur.Before(prev) {
			t.Fatalf("monotonic clock went backwards: %v after %v", cur, prev)
		}
		if cur.Nsec < 0 || cur.Nsec >= 1_000_000_000 {
			t.Fatalf("nanoseconds out of range: %v", cur)
		}
		prev = cur
	}
}

func TestMonotonicClock_Elapsed(t *testing.T) {
	c := NewMonotonic()

	start, _ := c.Now()
	time.Sleep(5 * time.Millisecond)
	end, _ := c.Now()

	if got := end.Sub(start).Millis(); got < 5 {
		t.Errorf("elapsed %dms, want at least 5ms", got)
	}
}

func TestMonotonicClock_Failure(t *testing.T) {
	c := &MonotonicClock{gettime: func(int32, *unix.Timespec) error {
		return unix.EINVAL
	}}

	_, err := c.Now()
	if err == nil {
		t.Fatal("expected error")
	}
	if !stderrors.Is(err, &errors.Error{Op: errors.OpClockGettime, Kind: errors.KindClockQuery}) {
		t.Errorf("error %v is not a clock_gettime query failure", err)
	}
	if !stderrors.Is(err, unix.EINVAL) {
		t.Errorf("error %v does not wrap EINVAL", err)
	}
}

func TestWallClock_Now(t *testing.T) {
	c := NewWall()

	before := time.Now().Unix()
	ts, err := c.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	after := time.Now().Unix()

	if ts.Sec < before || ts.Sec > after {
		t.Errorf("wall clock seconds %d outside [%d, %d]", ts.Sec, before, after)
	}
	if ts.Nsec%1000 != 0 {
		t.Errorf("wall clock nanoseconds %d should be whole microseconds", ts.Nsec)
	}
}

func TestWallClock_Failure(t *testing.T) {
	c := &WallClock{gettimeofday: func(*unix.Timeval) error {
		return unix.EFAULT
	}}

	_, err := c.Now()
	e, ok := errors.As(err)
	if !ok {
		t.Fatalf("expected structured error, got %v", err)
	}
	if e.Op != errors.OpGettimeofday || e.Kind != errors.KindClockQuery {
		t.Errorf("got op=%s kind=%s", e.Op, e.Kind)
	}
	if got := e.Message(); got != "gettimeofday failed: "+unix.EFAULT.Error() {
		t.Errorf("Message() = %q", got)
	}
}

func TestToTimespec_Clamp(t *testing.T) {
	ts := toTimespec(1<<62, 0)
	sec, nsec := ts.Unix()
	if sec != maxTimespecSec || nsec != 999_999_999 {
		t.Errorf("clamped timespec = %d.%09d", sec, nsec)
	}
}
