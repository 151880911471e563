package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"audiomatch/internal/device"
	"audiomatch/internal/services"
)

type classifyOutput struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	device.Classification
}

func newClassifyCommand() *cobra.Command {
	var manufacturer string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:         "classify NAME",
		Short:       "Classify a device name by type and connectivity",
		Args:        cobra.MinimumNArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return services.Wrap(services.ErrInvalidInput, "cli", "classify", "device name is empty", nil)
			}
			mfr := strings.TrimSpace(manufacturer)
			if mfr == "" {
				mfr = device.DefaultManufacturer
			}
			result := device.Classify(name, mfr)

			if jsonOutput {
				return writeJSON(cmd, classifyOutput{Name: name, Manufacturer: mfr, Classification: result})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderKeyValue("Name", name))
			fmt.Fprintln(out, renderKeyValue("Manufacturer", mfr))
			fmt.Fprintln(out, renderKeyValue("Type", string(result.DeviceType)))
			fmt.Fprintln(out, renderKeyValue("Connectivity", string(result.Connectivity)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manufacturer, "manufacturer", "m", "", "Manufacturer reported for the device")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON")
	return cmd
}
