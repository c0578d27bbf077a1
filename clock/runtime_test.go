package clock

import (
	"testing"
	"time"

	"code.cloudfoundry.org/clock/fakeclock"
)

func TestRuntimeClock_Now(t *testing.T) {
	fc := fakeclock.NewFakeClock(time.Unix(1000, 0))
	rc := NewRuntimeWith(fc)

	ts, err := rc.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	if !ts.IsZero() {
		t.Errorf("first reading = %v, want zero", ts)
	}

	fc.Increment(2*time.Second + 250*time.Millisecond)
	ts, err = rc.Now()
	if err != nil {
		t.Fatalf("Now() error: %v", err)
	}
	if ts != (Timestamp{Sec: 2, Nsec: 250_000_000}) {
		t.Errorf("reading = %v, want 2.250000000s", ts)
	}
}

func TestRuntimeClock_SleepZero(t *testing.T) {
	fc := fakeclock.NewFakeClock(time.Unix(0, 0))
	rc := NewRuntimeWith(fc)

	// A fake clock would block forever on a real sleep; zero must not sleep.
	done := make(chan struct{})
	go func() {
		_ = rc.Sleep(Duration{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sleep(0) blocked")
	}
}

func TestRuntimeClock_Real(t *testing.T) {
	rc := NewRuntime()

	start, _ := rc.Now()
	if err := rc.Sleep(Duration{Nsec: 20_000_000}); err != nil {
		t.Fatalf("Sleep() error: %v", err)
	}
	end, _ := rc.Now()

	if got := end.Sub(start).Millis(); got < 20 {
		t.Errorf("slept %dms, want at least 20ms", got)
	}
}
