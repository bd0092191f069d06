package cmd

import (
	"github.com/spf13/cobra"
)

var fixWriteFlag bool

// fixCmd represents the fix command.
var fixCmd = newFixCmd()

func newFixCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Repair mechanical documentation style slips",
		Long: `Fix applies mechanical repairs to existing doc comments: summary
capitalization and punctuation, blank-line placement and indentation.
It never invents content. Without --write the repairs are only listed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixes, err := workflow.Fix(cmd.Context(), parsePaths(args), fixWriteFlag)
			if err != nil {
				return err
			}

			return ui.DisplayFixes(fixes, fixWriteFlag)
		},
	}
	cmd.Flags().BoolVarP(&fixWriteFlag, "write", "w", false, "write the repaired doc comments back to disk")

	return cmd
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
