package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"github.com/tetratelabs/wazero/sys"
	"go.uber.org/zap"

	"github.com/wippyai/wiring"
	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/errors"
	"github.com/wippyai/wiring/hostmod"
)

type runOptions struct {
	moduleName string
	iterations uint64
}

type runSummary struct {
	setup    bool
	loops    uint64
	elapsed  clock.Duration
	lastLoop []uint64
}

// runSketch instantiates a guest with the timing host module, calls its setup
// export once and its loop export until the iteration limit or until ctx is
// done. A zero limit means no limit.
func runSketch(ctx context.Context, rt *wiring.Runtime, log *zap.Logger, wasm []byte, opts runOptions) (sum runSummary, err error) {
	r := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfig().WithCloseOnContextDone(true))
	defer r.Close(context.Background())

	if _, err := wasi_snapshot_preview1.Instantiate(ctx, r); err != nil {
		return sum, fmt.Errorf("instantiate wasi: %w", err)
	}
	if _, err := hostmod.Instantiate(ctx, r, rt, hostmod.WithModuleName(opts.moduleName)); err != nil {
		return sum, fmt.Errorf("instantiate host module: %w", err)
	}

	compiled, err := r.CompileModule(ctx, wasm)
	if err != nil {
		return sum, fmt.Errorf("compile: %w", err)
	}

	cfg := wazero.NewModuleConfig().
		WithName("sketch").
		WithStdout(os.Stdout).
		WithStderr(os.Stderr).
		WithStartFunctions("_initialize")
	mod, err := r.InstantiateModule(ctx, compiled, cfg)
	if err != nil {
		return sum, fmt.Errorf("instantiate: %w", err)
	}

	setup := mod.ExportedFunction("setup")
	loop := mod.ExportedFunction("loop")
	if setup == nil && loop == nil {
		return sum, errors.InvalidInput(errors.OpHost, "sketch", "module exports neither setup nor loop")
	}

	start, startErr := rt.Source().Now()
	defer func() {
		if startErr != nil {
			return
		}
		if end, err := rt.Source().Now(); err == nil {
			sum.elapsed = end.Sub(start)
		}
	}()

	if setup != nil {
		if _, err := setup.Call(ctx); err != nil {
			return sum, guestError("setup", err)
		}
		sum.setup = true
	}
	if loop == nil {
		return sum, nil
	}

	for opts.iterations == 0 || sum.loops < opts.iterations {
		if ctx.Err() != nil {
			log.Debug("sketch stopped", zap.Uint64("loops", sum.loops))
			return sum, nil
		}
		results, err := loop.Call(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return sum, nil
			}
			return sum, guestError("loop", err)
		}
		sum.loops++
		sum.lastLoop = results
	}
	return sum, nil
}

func guestError(fn string, err error) error {
	var exit *sys.ExitError
	if stderrors.As(err, &exit) && exit.ExitCode() == 0 {
		return nil
	}
	return fmt.Errorf("%s: %w", fn, err)
}

func newRunCmd(a *app) *cobra.Command {
	opts := runOptions{moduleName: hostmod.DefaultModuleName}

	cmd := &cobra.Command{
		Use:   "run <sketch.wasm>",
		Short: "Run a wasm sketch against the timing host module",
		Long: `Run instantiates a core wasm module whose millis, micros, delay and
delayMicroseconds imports are served by this runtime. The exported setup
function runs once, then loop runs until the iteration limit or until the
process is interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			sum, err := runSketch(cmd.Context(), a.rt, a.log, data, opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sum.setup {
				fmt.Fprintln(out, "setup: done")
			}
			fmt.Fprintf(out, "loop: %d iterations in %s\n", sum.loops, sum.elapsed.Std().Round(time.Millisecond))
			if len(sum.lastLoop) > 0 {
				fmt.Fprintf(out, "last loop result: %d\n", uint32(sum.lastLoop[0]))
			}
			return nil
		},
	}

	cmd.Flags().Uint64Var(&opts.iterations, "iterations", 0, "loop iterations, 0 runs until interrupted")
	cmd.Flags().StringVar(&opts.moduleName, "module", hostmod.DefaultModuleName, "import module name of the timing functions")
	return cmd
}
