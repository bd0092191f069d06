package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/adapter"
	m "github.com/doclens/doclens/internal/model"
)

var auditOutputFlag string
var auditFormatFlag string
var auditIssuesFlag bool

// auditCmd represents the audit command.
var auditCmd = newAuditCmd()

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [paths...]",
		Short: "Audit documentation coverage",
		Long: `Audit scans the given paths, extracts every documentable declaration,
and reports how much of the tree is documented. Files that fail to parse
are reported individually and never abort the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd.Context(), parsePaths(args))
		},
	}
	cmd.Flags().StringVarP(&auditOutputFlag, "output", "o", "", "write the report to a file")
	cmd.Flags().StringVarP(&auditFormatFlag, "format", "f", "json", "report format: json, yaml or markdown")
	cmd.Flags().BoolVarP(&auditIssuesFlag, "issues", "i", false, "also print style issues for documented entities")

	return cmd
}

func runAudit(ctx context.Context, paths []m.Path) error {
	report, analyses, err := workflow.Audit(ctx, paths)
	if err != nil {
		return err
	}

	if err := ui.DisplayReport(report); err != nil {
		return err
	}

	if auditIssuesFlag {
		if err := ui.DisplayValidations(analyses); err != nil {
			return err
		}
	}

	if auditOutputFlag == "" {
		return nil
	}

	format, err := adapter.ParseReportFormat(auditFormatFlag)
	if err != nil {
		return err
	}

	return reportStore.Save(m.Path(auditOutputFlag), report, format)
}

func init() {
	rootCmd.AddCommand(auditCmd)
}
