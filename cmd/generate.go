package cmd

import (
	"github.com/spf13/cobra"
)

// generateCmd represents the generate command.
var generateCmd = newGenerateCmd()

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Draft documentation for indebted declarations",
		Long: `Generate drafts documentation blocks for every indebted declaration
using the configured providers in priority order. Provider failures are
retried and failed over automatically; an entity whose providers are all
exhausted is reported with the full attempt trail.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := workflow.Generate(cmd.Context(), parsePaths(args))
			if err != nil {
				return err
			}

			return ui.DisplayGenerated(results)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(generateCmd)
}
