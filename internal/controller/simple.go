package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/domain"
	m "github.com/doclens/doclens/internal/model"
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayReport prints the coverage report as a table with a summary line.
func (s *SimpleUI) DisplayReport(report m.CoverageReport) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"File", "Entities", "Documented", "Coverage", "Missing", "Too Short", "Stale"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	for _, file := range report.Files {
		if file.ParseFailed {
			table.Append([]string{string(file.File), "-", "-", "parse error", "-", "-", "-"})
			continue
		}

		table.Append([]string{
			string(file.File),
			fmt.Sprintf("%d", file.TotalEntities),
			fmt.Sprintf("%d", file.Documented),
			fmt.Sprintf("%.0f%%", file.Coverage),
			fmt.Sprintf("%d", file.MissingDebt),
			fmt.Sprintf("%d", file.TooShortDebt),
			fmt.Sprintf("%d", file.StaleDebt),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(report.Files)),
		fmt.Sprintf("%d", report.TotalEntities),
		fmt.Sprintf("%d", report.Documented),
		fmt.Sprintf("%d%%", report.Score),
		"", "", "",
	})

	table.Render()
	s.printf("\n%s\n", tableBuffer.String())
	s.printf("Score: %s (%s)\n", scoreColor(report.Score).Sprintf("%d/100", report.Score), report.Level())
	s.printf("%s\n", report.Recommendation())

	return nil
}

// DisplayDebts prints the debt inventory, one line per item.
func (s *SimpleUI) DisplayDebts(debts []m.Debt) error {
	if len(debts) == 0 {
		s.printf("No documentation debt found.\n")
		return nil
	}

	for _, debt := range debts {
		s.printf("%s:%d: %s %s [%s]\n",
			debt.File, debt.Line,
			severityColor(debt.Severity).Sprint(debt.Severity),
			debt.Entity, debt.Kind)
	}

	s.printf("\n%d debt item(s)\n", len(debts))

	return nil
}

// DisplayValidations prints per-entity style findings for documented entities.
func (s *SimpleUI) DisplayValidations(analyses []m.FileAnalysis) error {
	for _, analysis := range analyses {
		for _, validation := range analysis.Validations {
			if len(validation.Issues) == 0 {
				continue
			}

			s.printf("%s: %s scored %s\n",
				analysis.File, validation.Entity,
				scoreColor(validation.Score).Sprintf("%d", validation.Score))

			for _, issue := range validation.Issues {
				s.printf("  %s %s: %s\n",
					severityColor(issue.Severity).Sprint(issue.Severity),
					issue.RuleID, issue.Message)
			}
		}
	}

	return nil
}

// DisplayGenerated prints drafted documentation blocks with their provenance.
func (s *SimpleUI) DisplayGenerated(results []domain.GeneratedDoc) error {
	succeeded := 0

	for _, result := range results {
		if !result.Success {
			s.printf("%s: %s: %s\n",
				result.Entity.File, result.Entity.QualifiedName,
				color.New(color.FgRed).Sprint("generation failed"))

			for _, attempt := range result.Trail {
				s.printf("  tried %s (%s): %s\n", attempt.ProviderID, attempt.Class, attempt.Message)
			}

			continue
		}

		succeeded++

		s.printf("%s: %s (provider %s, score %s)\n",
			result.Entity.File, result.Entity.QualifiedName, result.ProviderID,
			scoreColor(result.Score).Sprintf("%d", result.Score))

		for _, line := range splitLines(result.Text) {
			s.printf("  | %s\n", line)
		}
	}

	s.printf("\nGenerated %d of %d\n", succeeded, len(results))

	return nil
}

// DisplayFixes prints the mechanical repairs, marking whether they were
// written back or only proposed.
func (s *SimpleUI) DisplayFixes(fixes []domain.FileFix, applied bool) error {
	if len(fixes) == 0 {
		s.printf("No fixable documentation found.\n")
		return nil
	}

	verb := "Would fix"
	if applied {
		verb = "Fixed"
	}

	for _, fix := range fixes {
		s.printf("%s %s in %s:\n", verb, fix.Entity, fix.File)

		for _, record := range fix.Fixes {
			s.printf("  - %s\n", record.Detail)
		}
	}

	if !applied {
		s.printf("\nRun again with --write to apply.\n")
	}

	return nil
}

// DisplayProviders prints the provider health snapshot.
func (s *SimpleUI) DisplayProviders(records []m.ProviderRecord) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Provider", "Priority", "State", "Failures"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, record := range records {
		table.Append([]string{
			record.ID,
			fmt.Sprintf("%d", record.Priority),
			string(record.State),
			fmt.Sprintf("%d", record.ConsecutiveFailures),
		})
	}

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

func splitLines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func scoreColor(score int) *color.Color {
	switch {
	case score >= 80:
		return color.New(color.FgGreen)
	case score >= 60:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func severityColor(sev m.Severity) *color.Color {
	switch sev {
	case m.SeverityError:
		return color.New(color.FgRed)
	case m.SeverityWarning:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgCyan)
	}
}
