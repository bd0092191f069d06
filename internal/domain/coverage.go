package domain

import (
	"math"

	m "github.com/doclens/doclens/internal/model"
)

// BuildCoverageReport derives the aggregate report from per-file analyses.
// The report is recomputed wholesale; nothing here mutates its inputs.
func BuildCoverageReport(analyses []m.FileAnalysis) m.CoverageReport {
	report := m.CoverageReport{Files: make([]m.FileBreakdown, 0, len(analyses))}

	for _, analysis := range analyses {
		breakdown := m.FileBreakdown{File: analysis.File}

		if analysis.ParseError != nil {
			breakdown.ParseFailed = true
			breakdown.ParseErrMessage = analysis.ParseError.Message
			report.Files = append(report.Files, breakdown)

			continue
		}

		indebted := make(map[string]m.DebtKind, len(analysis.Debts))
		for _, debt := range analysis.Debts {
			indebted[debt.Entity] = debt.Kind

			switch debt.Kind {
			case m.DebtMissing:
				breakdown.MissingDebt++
			case m.DebtTooShort:
				breakdown.TooShortDebt++
			case m.DebtStaleSignature:
				breakdown.StaleDebt++
			}
		}

		for _, entity := range analysis.Entities {
			breakdown.TotalEntities++

			kind, hasDebt := indebted[entity.QualifiedName]
			if !hasDebt || kind == m.DebtStaleSignature {
				// stale blocks still count as documented; they need an
				// update, not a first write
				breakdown.Documented++
			}
		}

		if breakdown.TotalEntities > 0 {
			breakdown.Coverage = 100 * float64(breakdown.Documented) / float64(breakdown.TotalEntities)
		}

		report.TotalEntities += breakdown.TotalEntities
		report.Documented += breakdown.Documented
		report.Files = append(report.Files, breakdown)
	}

	if report.TotalEntities > 0 {
		report.Score = int(math.Round(100 * float64(report.Documented) / float64(report.TotalEntities)))
	}

	return report
}
