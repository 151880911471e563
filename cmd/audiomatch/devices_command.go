package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audiomatch/internal/config"
	"audiomatch/internal/device"
	"audiomatch/internal/native"
	"audiomatch/internal/platform"
)

type devicesOutput struct {
	Host   platform.Info `json:"host"`
	Result native.Result `json:"result"`
}

func newDevicesCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool
	var input bool
	var source string

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List native audio devices with their classification",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			local := *cfg
			if input {
				local.Native.Direction = config.DirectionInput
			}
			if s := strings.TrimSpace(source); s != "" {
				local.Native.Source = strings.ToLower(s)
			}

			result, err := native.New(&local, native.WithLogger(logger)).Enumerate(cmd.Context())
			if err != nil {
				return err
			}

			host := platform.Describe()
			if jsonOutput {
				return writeJSON(cmd, devicesOutput{Host: host, Result: result})
			}
			renderDevices(cmd, host, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	cmd.Flags().BoolVar(&input, "input", false, "List capture devices instead of playback devices")
	cmd.Flags().StringVar(&source, "source", "", "Override native.source (auto, helper, system_profiler, endpoints, wmi, alsa, pulse)")
	return cmd
}

func renderDevices(cmd *cobra.Command, host platform.Info, result native.Result) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	fmt.Fprintln(out, renderKeyValue("Host", host.String()))
	fmt.Fprintln(out, renderKeyValue("Source", result.Source))
	fmt.Fprintln(out, renderKeyValue("Direction", string(result.Direction)))
	for _, warning := range result.Warnings {
		fmt.Fprintln(out, renderStatusLine("Warning", statusWarn, warning, colorize))
	}

	if len(result.Devices) == 0 {
		fmt.Fprintln(out, "No devices found")
		return
	}

	fmt.Fprint(out, renderTable(
		[]string{"#", "Name", "Manufacturer", "Type", "Connectivity", "Default", "ID"},
		deviceRows(result.Devices),
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	))
	fmt.Fprintln(out)
}

func deviceRows(devices []device.Device) [][]string {
	rows := make([][]string, 0, len(devices))
	for i, d := range devices {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			d.Name,
			orDash(d.Manufacturer),
			string(d.DeviceType),
			string(d.Connectivity),
			yesNo(d.IsDefault),
			orDash(d.ID),
		})
	}
	return rows
}

func orDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
