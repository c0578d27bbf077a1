package wiring

import (
	"go.uber.org/zap"

	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/errors"
)

// Runtime owns a reference timestamp and offers millis/micros/delay relative
// to it.
//
// Init is expected to run once, before any other goroutine calls the query
// methods. A Runtime holds no lock: after Init the reference is read-only.
type Runtime struct {
	source   clock.Source
	sleeper  clock.Sleeper
	log      *zap.Logger
	observer Observer
	ref      clock.Timestamp
	ready    bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithSource overrides the detected clock source.
func WithSource(s clock.Source) Option {
	return func(r *Runtime) {
		r.source = s
	}
}

// WithSleeper overrides the detected sleeper.
func WithSleeper(s clock.Sleeper) Option {
	return func(r *Runtime) {
		r.sleeper = s
	}
}

// WithClock uses c as both source and sleeper.
func WithClock(c interface {
	clock.Source
	clock.Sleeper
}) Option {
	return func(r *Runtime) {
		r.source = c
		r.sleeper = c
	}
}

// WithLogger sets the diagnostic logger. Defaults to Logger().
func WithLogger(l *zap.Logger) Option {
	return func(r *Runtime) {
		r.log = l
	}
}

// WithObserver attaches an observer for delays and failures.
func WithObserver(o Observer) Option {
	return func(r *Runtime) {
		r.observer = o
	}
}

// New creates a Runtime. Without options it uses clock.Detect. The reference
// timestamp is not captured until Init.
func New(opts ...Option) *Runtime {
	r := &Runtime{}
	for _, opt := range opts {
		opt(r)
	}

	if r.source == nil || r.sleeper == nil {
		src, sl := clock.Detect()
		if r.source == nil {
			r.source = src
		}
		if r.sleeper == nil {
			r.sleeper = sl
		}
	}
	if r.log == nil {
		r.log = Logger()
	}
	if s, ok := r.sleeper.(clock.Interruptible); ok {
		s.SetInterruptHook(r.interrupted)
	}
	return r
}

// Source returns the clock source in use.
func (r *Runtime) Source() clock.Source {
	return r.source
}

// Sleeper returns the sleeper in use.
func (r *Runtime) Sleeper() clock.Sleeper {
	return r.sleeper
}

// Reference returns the captured reference timestamp and whether Init has
// captured one.
func (r *Runtime) Reference() (clock.Timestamp, bool) {
	return r.ref, r.ready
}

// Init captures the reference timestamp. Calling it again moves time zero to
// the moment of the new call. Failures are logged.
func (r *Runtime) Init() {
	if err := r.InitE(); err != nil {
		r.report(err)
	}
}

// InitE is Init with the clock failure returned instead of logged.
func (r *Runtime) InitE() error {
	now, err := r.source.Now()
	if err != nil {
		return r.failed(err)
	}
	r.ref = now
	r.ready = true
	return nil
}

// Elapsed returns the time since the reference timestamp. Before Init the
// duration is measured from the zero reading of the source and the error is
// KindNotInitialized.
func (r *Runtime) Elapsed() (clock.Duration, error) {
	now, err := r.source.Now()
	if err != nil {
		return clock.Duration{}, r.failed(err)
	}
	d := now.Sub(r.ref)
	if !r.ready {
		return d, errors.NotInitialized()
	}
	return d, nil
}

// Millis returns whole milliseconds since Init. The value wraps on overflow.
// A clock failure is logged and reported as 0.
func (r *Runtime) Millis() uint64 {
	d, ok := r.elapsed()
	if !ok {
		return 0
	}
	return d.Millis()
}

// Micros returns whole microseconds since Init. The value wraps on overflow.
// A clock failure is logged and reported as 0.
func (r *Runtime) Micros() uint64 {
	d, ok := r.elapsed()
	if !ok {
		return 0
	}
	return d.Micros()
}

// Delay blocks the calling goroutine for ms milliseconds. Failures are logged
// and end the delay early.
func (r *Runtime) Delay(ms uint64) {
	r.delay(ms/1000, (ms%1000)*1000)
}

// DelayMicroseconds blocks the calling goroutine for us microseconds.
// Failures are logged and end the delay early.
func (r *Runtime) DelayMicroseconds(us uint32) {
	r.delay(0, uint64(us))
}

// Sleep blocks for d and returns the failure that ended it early, if any.
func (r *Runtime) Sleep(d clock.Duration) error {
	if r.observer == nil {
		if err := r.sleeper.Sleep(d); err != nil {
			return r.failed(err)
		}
		return nil
	}

	start, startErr := r.source.Now()
	if err := r.sleeper.Sleep(d); err != nil {
		return r.failed(err)
	}
	if startErr != nil {
		return nil
	}
	if end, err := r.source.Now(); err == nil {
		r.observer.ObserveDelay(d, end.Sub(start))
	}
	return nil
}

func (r *Runtime) delay(seconds, micros uint64) {
	if err := r.Sleep(clock.NewDuration(seconds, micros)); err != nil {
		r.report(err)
	}
}

func (r *Runtime) elapsed() (clock.Duration, bool) {
	d, err := r.Elapsed()
	if err == nil {
		return d, true
	}
	if e, ok := errors.As(err); ok && e.Kind == errors.KindNotInitialized {
		return d, true
	}
	r.report(err)
	return clock.Duration{}, false
}

// failed forwards err to the observer and returns it.
func (r *Runtime) failed(err error) error {
	if r.observer != nil {
		if e, ok := errors.As(err); ok {
			r.observer.ObserveFailure(e)
		}
	}
	return err
}

func (r *Runtime) interrupted(err *errors.Error) {
	r.log.Debug("sleep interrupted, retrying",
		zap.String("op", string(err.Op)),
		zap.String("sleeper", err.Clock))
	if r.observer != nil {
		r.observer.ObserveFailure(err)
	}
}

func (r *Runtime) report(err error) {
	e, ok := errors.As(err)
	if !ok {
		r.log.Error(err.Error())
		return
	}
	r.log.Error(e.Message(),
		zap.String("op", string(e.Op)),
		zap.String("kind", string(e.Kind)),
		zap.String("clock", e.Clock))
}
