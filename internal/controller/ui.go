// Package controller provides output adapters for displaying audit results.
package controller

import (
	"github.com/doclens/doclens/internal/domain"
	m "github.com/doclens/doclens/internal/model"
)

// UI defines the interface for displaying audit output.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayReport(report m.CoverageReport) error
	DisplayDebts(debts []m.Debt) error
	DisplayValidations(analyses []m.FileAnalysis) error
	DisplayGenerated(results []domain.GeneratedDoc) error
	DisplayFixes(fixes []domain.FileFix, applied bool) error
	DisplayProviders(records []m.ProviderRecord) error
}
