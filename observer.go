package wiring

import (
	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/errors"
)

// Observer receives delay measurements and failures from a Runtime.
// Implementations must be safe for use from multiple goroutines.
type Observer interface {
	// ObserveDelay is called after a completed delay with the requested
	// duration and the elapsed time measured on the runtime's source.
	ObserveDelay(requested, actual clock.Duration)
	// ObserveFailure is called for every clock or sleep failure, including
	// retried interruptions.
	ObserveFailure(err *errors.Error)
}
