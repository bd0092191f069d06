package cmd

import (
	"github.com/spf13/cobra"
)

// providersCmd represents the providers command.
var providersCmd = newProvidersCmd()

func newProvidersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "Show configured generation providers",
		Long: `Providers prints the configured generation providers in priority
order together with their current health state.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return ui.DisplayProviders(registry.Snapshot())
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(providersCmd)
}
