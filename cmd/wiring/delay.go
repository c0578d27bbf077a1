package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/wippyai/wiring"
	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/errors"
)

// delayReport is a delay measured on the runtime's own source.
type delayReport struct {
	requested clock.Duration
	measured  clock.Duration
	err       error
}

func (r delayReport) drift() clock.Duration {
	return clock.Timestamp(r.measured).Sub(clock.Timestamp(r.requested))
}

func (r delayReport) write(w io.Writer) {
	fmt.Fprintf(w, "requested: %s\n", r.requested)
	if r.err != nil {
		fmt.Fprintf(w, "failed: %v\n", r.err)
		return
	}
	fmt.Fprintf(w, "measured:  %s\n", r.measured)
	d := r.drift()
	if d.IsNegative() {
		fmt.Fprintf(w, "drift:     -%s\n", clock.Timestamp(r.requested).Sub(clock.Timestamp(r.measured)))
		return
	}
	fmt.Fprintf(w, "drift:     +%s\n", d)
}

// measureDelay runs one delay and measures it.
func measureDelay(rt *wiring.Runtime, amount uint64, micros bool) delayReport {
	var requested clock.Duration
	if micros {
		requested = clock.NewDuration(0, amount)
	} else {
		requested = clock.NewDuration(amount/1000, (amount%1000)*1000)
	}

	start, err := rt.Source().Now()
	if err != nil {
		return delayReport{requested: requested, err: err}
	}
	if err := rt.Sleep(requested); err != nil {
		return delayReport{requested: requested, err: err}
	}
	end, err := rt.Source().Now()
	if err != nil {
		return delayReport{requested: requested, err: err}
	}
	return delayReport{requested: requested, measured: end.Sub(start)}
}

func newDelayCmd(a *app) *cobra.Command {
	var micros bool

	cmd := &cobra.Command{
		Use:   "delay <amount>",
		Short: "Delay and report the measured duration and drift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bits := 64
			if micros {
				bits = 32
			}
			amount, err := strconv.ParseUint(args[0], 10, bits)
			if err != nil {
				return errors.InvalidInput(errors.OpHost, args[0], "delay amount must be an unsigned integer")
			}

			report := measureDelay(a.rt, amount, micros)
			report.write(cmd.OutOrStdout())
			return report.err
		},
	}

	cmd.Flags().BoolVar(&micros, "micros", false, "amount is in microseconds (delayMicroseconds)")
	return cmd
}
