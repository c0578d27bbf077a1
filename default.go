package wiring

import (
	"sync/atomic"
)

var defaultRuntime atomic.Pointer[Runtime]

// Default returns the process-wide Runtime behind the package-level
// functions, creating it with clock.Detect on first use.
func Default() *Runtime {
	if r := defaultRuntime.Load(); r != nil {
		return r
	}
	defaultRuntime.CompareAndSwap(nil, New())
	return defaultRuntime.Load()
}

// SetDefault replaces the process-wide Runtime.
func SetDefault(r *Runtime) {
	defaultRuntime.Store(r)
}

// Init captures the reference timestamp of the default Runtime. Call it once
// during startup, before Millis or Micros.
func Init() {
	Default().Init()
}

// Millis returns milliseconds since Init on the default Runtime.
func Millis() uint64 {
	return Default().Millis()
}

// Micros returns microseconds since Init on the default Runtime.
func Micros() uint64 {
	return Default().Micros()
}

// Delay blocks for ms milliseconds on the default Runtime.
func Delay(ms uint64) {
	Default().Delay(ms)
}

// DelayMicroseconds blocks for us microseconds on the default Runtime.
func DelayMicroseconds(us uint32) {
	Default().DelayMicroseconds(us)
}
