package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"audiomatch/internal/deps"
	"audiomatch/internal/platform"
	"audiomatch/internal/preflight"
)

type depsOutput struct {
	Host   platform.Info `json:"host"`
	Source string        `json:"source"`
	Tools  []deps.Status      `json:"tools"`
	Checks []preflight.Result `json:"checks"`
}

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check the audio tools native enumeration depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			host := platform.Describe()
			statuses := deps.CheckBinaries(deps.PlatformRequirements(runtime.GOOS, cfg))
			checks := preflight.RunAll(cfg, "")

			if jsonOutput {
				return writeJSON(cmd, depsOutput{Host: host, Source: cfg.Native.Source, Tools: statuses, Checks: checks})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			fmt.Fprintln(out, renderKeyValue("Host", host.String()))
			fmt.Fprintln(out, renderKeyValue("Source", cfg.Native.Source))
			if len(statuses) == 0 {
				fmt.Fprintln(out, renderStatusLine("Tools", statusWarn, "no enumeration source for this platform", colorize))
			}
			for _, status := range statuses {
				kind, message := depStatusLine(status)
				fmt.Fprintln(out, renderStatusLine(status.Name, kind, message, colorize))
			}
			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}

func depStatusLine(status deps.Status) (statusKind, string) {
	if status.Available {
		return statusOK, fmt.Sprintf("%s (%s)", status.Command, status.Source)
	}
	message := status.Detail
	if status.Description != "" {
		message = fmt.Sprintf("%s, %s", status.Detail, status.Description)
	}
	if status.Optional {
		return statusWarn, message + " (optional)"
	}
	return statusError, message
}
