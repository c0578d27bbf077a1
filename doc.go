// Package wiring provides microcontroller-style timing calls on a POSIX host:
// millis, micros, delay and delayMicroseconds measured from a reference
// timestamp captured at startup.
//
// # Architecture Overview
//
//	wiring/           Runtime, package-level Init/Millis/Micros/Delay
//	├── clock/        Clock sources, sleepers and platform detection
//	│   └── clocktest/  Deterministic fake clock for tests
//	├── errors/       Structured error types
//	├── hostmod/      wazero host module exposing the calls to wasm guests
//	├── metrics/      Prometheus observer for delays and failures
//	└── cmd/wiring/   Command-line tool
//
// # Quick Start
//
// Package-level calls use a default Runtime with the best clock available:
//
//	wiring.Init()
//	wiring.Delay(50)
//	fmt.Println(wiring.Millis()) // >= 50
//
// An owned Runtime can be configured with a specific source and sleeper:
//
//	src, sl, err := clock.Select(clock.Monotonic, clock.Relative)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	rt := wiring.New(wiring.WithSource(src), wiring.WithSleeper(sl))
//	rt.Init()
//
// # Failures
//
// Millis, Micros, Delay and DelayMicroseconds never return errors. A failing
// OS call is logged as "<op> failed: <error>" through Logger, which writes to
// stderr by default. Elapsed, Sleep and InitE return the same failures as
// *errors.Error values for callers that need to check them.
//
// Readings wrap silently once the elapsed time exceeds the range of the
// returned integer.
package wiring
