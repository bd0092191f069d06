package cmd

import (
	"github.com/spf13/cobra"
)

// debtCmd represents the debt command.
var debtCmd = newDebtCmd()

func newDebtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt [paths...]",
		Short: "List documentation debt",
		Long: `Debt lists every declaration that is missing documentation, documents
too little, or documents parameters that no longer exist. On an
interactive terminal large inventories open in a browsable list.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, _, err := workflow.Debt(cmd.Context(), parsePaths(args))
			if err != nil {
				return err
			}

			return ui.DisplayDebts(debts)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(debtCmd)
}
