package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"audiomatch/internal/daemon"
	"audiomatch/internal/metrics"
	"audiomatch/internal/native"
	"audiomatch/internal/services"
	"audiomatch/internal/workflow"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var foreignPath string
	var nativePath string
	var metricsBind string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rematch whenever audio devices or the browser export change",
		Long: "Run a single-instance rematch loop. A pass runs at startup, on every\n" +
			"sound-subsystem hotplug event (or poll tick where hotplug is unavailable),\n" +
			"and whenever the browser export file is rewritten.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			foreign := strings.TrimSpace(foreignPath)
			if foreign == "" {
				foreign = cfg.Foreign.Path
			}
			if foreign == "" {
				return services.Wrap(services.ErrInvalidInput, "cli", "watch", "--foreign is required when foreign.path is not configured", nil)
			}
			if foreign == "-" || strings.TrimSpace(nativePath) == "-" {
				return services.Wrap(services.ErrInvalidInput, "cli", "watch", "watch cannot read inputs from stdin", nil)
			}

			local := *cfg
			if cmd.Flags().Changed("metrics-bind") {
				local.Watch.MetricsBind = strings.TrimSpace(metricsBind)
			}

			recorder := metrics.New()
			runner, err := workflow.NewRunner(&local,
				workflow.WithLogger(logger),
				workflow.WithEnumeratorOptions(native.WithObserver(recorder.ObserveEnumeration)),
			)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			d, err := daemon.New(&local, runner, logger,
				daemon.WithRecorder(recorder),
				daemon.WithInputs(workflow.Inputs{ForeignPath: foreign, NativePath: nativePath}),
				daemon.WithOutcomeHook(func(outcome workflow.Outcome, err error) {
					if err != nil {
						return
					}
					fmt.Fprintln(out, summaryLine(outcome))
				}),
			)
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := d.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&foreignPath, "foreign", "f", "", "Browser device export to watch")
	cmd.Flags().StringVarP(&nativePath, "native", "n", "", "Saved native device list instead of live enumeration")
	cmd.Flags().StringVar(&metricsBind, "metrics-bind", "", "Override watch.metrics_bind (host:port, empty disables)")
	return cmd
}

func summaryLine(outcome workflow.Outcome) string {
	s := outcome.Summary
	return fmt.Sprintf("%s  matched %d/%d native (%d%%), %d browser unmatched",
		outcome.RunID, s.Matched, s.NativeTotal, s.MatchRate, s.UnmatchedForeign)
}
