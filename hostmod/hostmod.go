// Package hostmod exposes a wiring Runtime to WebAssembly guests as a wazero
// host module.
//
// The module exports the calls a sketch compiled for a 32-bit MCU imports:
//
//	millis() -> i32
//	micros() -> i32
//	delay(ms: i32)
//	delayMicroseconds(us: i32)
//
// Results are truncated to 32 bits and wrap like an unsigned long on the
// target, after about 49.7 days for millis and 71.6 minutes for micros.
package hostmod

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/wiring"
)

// DefaultModuleName is the import module C and TinyGo toolchains use for
// undefined symbols.
const DefaultModuleName = "env"

// Export names.
const (
	FuncMillis            = "millis"
	FuncMicros            = "micros"
	FuncDelay             = "delay"
	FuncDelayMicroseconds = "delayMicroseconds"
)

type config struct {
	name string
}

// Option configures the host module.
type Option func(*config)

// WithModuleName sets the import module name. Defaults to "env".
func WithModuleName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// Instantiate registers the timing functions of rt on r. rt should already be
// initialized; guests only see elapsed time relative to its reference.
func Instantiate(ctx context.Context, r wazero.Runtime, rt *wiring.Runtime, opts ...Option) (api.Module, error) {
	return NewBuilder(r, rt, opts...).Instantiate(ctx)
}

// NewBuilder returns the host module builder so callers can add their own
// functions before instantiation.
func NewBuilder(r wazero.Runtime, rt *wiring.Runtime, opts ...Option) wazero.HostModuleBuilder {
	cfg := config{name: DefaultModuleName}
	for _, opt := range opts {
		opt(&cfg)
	}

	i32 := []api.ValueType{api.ValueTypeI32}

	return r.NewHostModuleBuilder(cfg.name).
		NewFunctionBuilder().
		WithGoFunction(api.GoFunc(func(_ context.Context, stack []uint64) {
			stack[0] = api.EncodeU32(uint32(rt.Millis()))
		}), nil, i32).
		WithName(FuncMillis).
		Export(FuncMillis).
		NewFunctionBuilder().
		WithGoFunction(api.GoFunc(func(_ context.Context, stack []uint64) {
			stack[0] = api.EncodeU32(uint32(rt.Micros()))
		}), nil, i32).
		WithName(FuncMicros).
		Export(FuncMicros).
		NewFunctionBuilder().
		WithGoFunction(api.GoFunc(func(_ context.Context, stack []uint64) {
			rt.Delay(uint64(api.DecodeU32(stack[0])))
		}), i32, nil).
		WithParameterNames("ms").
		WithName(FuncDelay).
		Export(FuncDelay).
		NewFunctionBuilder().
		WithGoFunction(api.GoFunc(func(_ context.Context, stack []uint64) {
			rt.DelayMicroseconds(api.DecodeU32(stack[0]))
		}), i32, nil).
		WithParameterNames("us").
		WithName(FuncDelayMicroseconds).
		Export(FuncDelayMicroseconds)
}
