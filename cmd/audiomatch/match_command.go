package main

import (
	"strings"

	"github.com/spf13/cobra"

	"audiomatch/internal/crossref"
	"audiomatch/internal/services"
	"audiomatch/internal/workflow"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var foreignPath string
	var nativePath string
	var jsonOutput bool
	var positionFallback bool
	var assignment string
	var disable []string

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Cross-reference native devices against a browser device export",
		Long: "Cross-reference native devices against a browser device export.\n\n" +
			"--foreign and --native accept \"-\" to read from stdin (one of them at most).\n" +
			"Without --native the host is enumerated live.",
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
				return services.Wrap(services.ErrInvalidInput, "cli", "match", "--foreign is required when foreign.path is not configured", nil)
			}

			var mode crossref.Assignment
			if cmd.Flags().Changed("assignment") {
				mode, err = crossref.ParseAssignment(assignment)
				if err != nil {
					return services.Wrap(services.ErrInvalidInput, "cli", "match", "", err)
				}
			}
			fallbackChanged := cmd.Flags().Changed("position-fallback")
			disabled := make([]crossref.MatchType, 0, len(disable))
			for _, name := range disable {
				t, err := crossref.ParseMatchType(name)
				if err != nil {
					return services.Wrap(services.ErrInvalidInput, "cli", "match", "", err)
				}
				disabled = append(disabled, t)
			}

			runner, err := workflow.NewRunner(cfg,
				workflow.WithLogger(logger),
				workflow.WithStdin(cmd.InOrStdin()),
				workflow.WithMatcherOptions(func(o *crossref.Options) {
					if mode != "" {
						o.Assignment = mode
					}
					if fallbackChanged {
						o.PositionFallback = positionFallback
					}
					o.Disabled = append(o.Disabled, disabled...)
				}),
			)
			if err != nil {
				return err
			}

			outcome, err := runner.Run(cmd.Context(), workflow.Inputs{ForeignPath: foreign, NativePath: nativePath})
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, outcome)
			}
			renderOutcome(cmd, outcome)
			return nil
		},
	}

	cmd.Flags().StringVarP(&foreignPath, "foreign", "f", "", "Browser device export (JSON array or {\"devices\": [...]})")
	cmd.Flags().StringVarP(&nativePath, "native", "n", "", "Saved native device list instead of live enumeration")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the full report as JSON")
	cmd.Flags().BoolVar(&positionFallback, "position-fallback", false, "Score same-position pairs that nothing else matched")
	cmd.Flags().StringVar(&assignment, "assignment", "", "Assignment mode: greedy or optimal")
	cmd.Flags().StringSliceVar(&disable, "disable", nil, "Skip these strategies (any of: "+strategyNames()+")")
	return cmd
}

func strategyNames() string {
	strategies := crossref.Strategies()
	names := make([]string, 0, len(strategies))
	for _, t := range strategies {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
