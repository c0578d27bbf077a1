package main

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wiring"
	"github.com/wippyai/wiring/clock"
	"github.com/wippyai/wiring/metrics"
)

type app struct {
	source      string
	sleeper     string
	logLevel    string
	logFile     string
	metricsAddr string

	log     *zap.Logger
	rt      *wiring.Runtime
	metrics *http.Server
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "wiring",
		Short: "Host-side millis/micros/delay runtime",
		Long: `wiring emulates microcontroller timing calls on a POSIX host.

Elapsed time is measured from a reference captured at startup on the best
available clock: CLOCK_MONOTONIC where present, gettimeofday otherwise.
Delays use absolute-deadline sleeps where the platform has them.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.source, "source", clock.Auto, "clock source: auto, monotonic, wall, runtime")
	flags.StringVar(&a.sleeper, "sleeper", clock.Auto, "sleeper: auto, absolute, relative, runtime")
	flags.StringVar(&a.logLevel, "log-level", "error", "diagnostic log level")
	flags.StringVar(&a.logFile, "log-file", "console", "diagnostic log path, or console for stderr")
	flags.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")

	cmd.AddCommand(
		newMillisCmd(a),
		newDelayCmd(a),
		newWatchCmd(a),
		newRunCmd(a),
	)

	// cobra skips post-run hooks when RunE fails, so release the metrics
	// listener and flush the log from RunE itself.
	for _, sub := range cmd.Commands() {
		sub.RunE = a.closing(sub.RunE)
	}
	return cmd
}

func (a *app) closing(run func(*cobra.Command, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return run(cmd, args)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if err != nil {
			a.close()
		}
	}()

	log, err := newLogger(a.logLevel, a.logFile, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.log = log

	src, sl, err := clock.Select(a.source, a.sleeper)
	if err != nil {
		return err
	}

	opts := []wiring.Option{
		wiring.WithSource(src),
		wiring.WithSleeper(sl),
		wiring.WithLogger(log),
	}

	if a.metricsAddr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, wiring.WithObserver(metrics.New(reg)))
		if err := a.serveMetrics(reg); err != nil {
			return err
		}
	}

	a.rt = wiring.New(opts...)
	a.rt.Init()
	wiring.SetDefault(a.rt)

	log.Debug("runtime initialized",
		zap.String("source", src.Name()),
		zap.String("sleeper", sl.Name()))
	return nil
}

func (a *app) serveMetrics(reg *prometheus.Registry) error {
	ln, err := net.Listen("tcp", a.metricsAddr)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log := a.log
	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	a.metrics = srv
	a.log.Info("serving metrics", zap.String("addr", ln.Addr().String()))
	return nil
}

func (a *app) close() {
	if a.metrics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.metrics.Shutdown(ctx); err != nil {
			a.log.Warn("metrics server shutdown", zap.Error(err))
		}
		a.metrics = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}
