package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/doclens/doclens/internal/domain"
	m "github.com/doclens/doclens/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display. The debt
// inventory gets the full interactive browser; other outputs fall back to
// plain printing since they are short summaries.
type TUI struct {
	output io.Writer
	plain  *SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, plain *SimpleUI) *TUI {
	return &TUI{output: output, plain: plain}
}

// DisplayReport prints the coverage report.
func (t *TUI) DisplayReport(report m.CoverageReport) error {
	return t.plain.DisplayReport(report)
}

// DisplayDebts shows the debt inventory in an interactive browser. Small
// inventories are printed directly instead of taking over the screen.
func (t *TUI) DisplayDebts(debts []m.Debt) error {
	model := newDebtModel(debts)

	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.width = width
			model.height = height
		}
	}

	if len(debts) <= listThreshold(model.height) {
		return t.plain.DisplayDebts(debts)
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("debt browser failed: %w", err)
	}

	return nil
}

// DisplayValidations prints style findings.
func (t *TUI) DisplayValidations(analyses []m.FileAnalysis) error {
	return t.plain.DisplayValidations(analyses)
}

// DisplayGenerated prints drafted documentation.
func (t *TUI) DisplayGenerated(results []domain.GeneratedDoc) error {
	return t.plain.DisplayGenerated(results)
}

// DisplayFixes prints applied or proposed repairs.
func (t *TUI) DisplayFixes(fixes []domain.FileFix, applied bool) error {
	return t.plain.DisplayFixes(fixes, applied)
}

// DisplayProviders prints the provider health snapshot.
func (t *TUI) DisplayProviders(records []m.ProviderRecord) error {
	return t.plain.DisplayProviders(records)
}

func listThreshold(height int) int {
	if height == 0 {
		return 20
	}

	threshold := height - 6
	if threshold < 5 {
		return 5
	}

	return threshold
}
