package clock

import (
	"github.com/wippyai/wiring/errors"
)

// Names accepted by Select.
const (
	Auto      = "auto"
	Monotonic = "monotonic"
	Wall      = "wall"
	Runtime   = "runtime"
	Absolute  = "absolute"
	Relative  = "relative"
)

// Source produces readings of one clock.
type Source interface {
	Name() string
	// Now returns the current reading. On failure the returned Timestamp is
	// unspecified and the error is a *errors.Error of KindClockQuery.
	Now() (Timestamp, error)
}

// Sleeper blocks the calling goroutine.
type Sleeper interface {
	Name() string
	// Sleep waits for d. Interruptions are handled internally; a returned
	// error means the wait ended before d elapsed.
	Sleep(d Duration) error
}

// InterruptHook is called each time a sleeper retries after a signal
// interrupted the underlying OS call.
type InterruptHook func(err *errors.Error)

// Interruptible is implemented by sleepers backed by interruptible OS calls.
type Interruptible interface {
	SetInterruptHook(h InterruptHook)
}

// Select resolves a source and sleeper by name. Auto picks the platform
// default from Detect. Names that are unknown or unavailable on this platform
// fail with KindUnsupported.
func Select(source, sleeper string) (Source, Sleeper, error) {
	defSrc, defSleep := Detect()

	src := defSrc
	if source != "" && source != Auto {
		src = sourceByName(source)
		if src == nil {
			return nil, nil, errors.Unsupported(errors.OpSelect, "clock source "+source)
		}
	}

	sl := defSleep
	switch {
	case sleeper == "" || sleeper == Auto:
		if source != "" && source != Auto {
			// Keep absolute sleeps on the same clock as the chosen source.
			if s := sleeperByName(defSleep.Name(), src); s != nil {
				sl = s
			}
		}
	default:
		sl = sleeperByName(sleeper, src)
		if sl == nil {
			return nil, nil, errors.Unsupported(errors.OpSelect, "sleeper "+sleeper)
		}
	}

	return src, sl, nil
}
