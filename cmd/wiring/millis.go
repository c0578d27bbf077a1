package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMillisCmd(a *app) *cobra.Command {
	var after uint64

	cmd := &cobra.Command{
		Use:   "millis",
		Short: "Print milliseconds and microseconds since startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if after > 0 {
				a.rt.Delay(after)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "millis: %d\nmicros: %d\n", a.rt.Millis(), a.rt.Micros())
			return nil
		},
	}

	cmd.Flags().Uint64Var(&after, "after", 0, "delay this many milliseconds before reading")
	return cmd
}
