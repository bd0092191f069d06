package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/doclens/doclens/internal/model"
)

func TestBuildCoverageReport(t *testing.T) {
	analyses := []m.FileAnalysis{
		{
			File: "a.go",
			Entities: []m.Entity{
				{QualifiedName: "a", Doc: "Package a."},
				{QualifiedName: "Documented", Doc: "Do the thing."},
				{QualifiedName: "Bare"},
			},
			Debts: []m.Debt{
				{Entity: "Bare", Kind: m.DebtMissing, File: "a.go"},
			},
		},
		{
			File: "b.go",
			Entities: []m.Entity{
				{QualifiedName: "b", Doc: "Package b."},
				{QualifiedName: "Stale", Doc: "Move the cursor."},
				{QualifiedName: "Thin", Doc: "Thin."},
			},
			Debts: []m.Debt{
				{Entity: "Stale", Kind: m.DebtStaleSignature, File: "b.go"},
				{Entity: "Thin", Kind: m.DebtTooShort, File: "b.go"},
			},
		},
		{
			File:       "broken.go",
			ParseError: &m.ParseError{File: "broken.go", Line: 3, Message: "expected declaration"},
		},
	}

	report := BuildCoverageReport(analyses)

	t.Run("totals span all parsable files", func(t *testing.T) {
		assert.Equal(t, 6, report.TotalEntities)
		assert.Equal(t, 4, report.Documented, "stale blocks still count as documented")
		assert.Equal(t, 67, report.Score)
	})

	t.Run("per file breakdown", func(t *testing.T) {
		require.Len(t, report.Files, 3)

		a := report.Files[0]
		assert.Equal(t, m.Path("a.go"), a.File)
		assert.Equal(t, 3, a.TotalEntities)
		assert.Equal(t, 2, a.Documented)
		assert.Equal(t, 1, a.MissingDebt)
		assert.InDelta(t, 66.7, a.Coverage, 0.1)

		b := report.Files[1]
		assert.Equal(t, 1, b.StaleDebt)
		assert.Equal(t, 1, b.TooShortDebt)
		assert.Equal(t, 2, b.Documented)
	})

	t.Run("parse failures are carried, not counted", func(t *testing.T) {
		broken := report.Files[2]
		assert.True(t, broken.ParseFailed)
		assert.Equal(t, "expected declaration", broken.ParseErrMessage)
		assert.Zero(t, broken.TotalEntities)
	})
}

func TestBuildCoverageReport_Empty(t *testing.T) {
	report := BuildCoverageReport(nil)

	assert.Zero(t, report.TotalEntities)
	assert.Zero(t, report.Score)
	assert.Empty(t, report.Files)
	assert.Equal(t, "Poor", report.Level())
}

func TestCoverageReport_Levels(t *testing.T) {
	cases := []struct {
		score int
		level string
	}{
		{100, "Excellent"},
		{95, "Excellent"},
		{94, "Good"},
		{80, "Good"},
		{79, "Fair"},
		{60, "Fair"},
		{59, "Poor"},
		{0, "Poor"},
	}

	for _, tc := range cases {
		report := m.CoverageReport{Score: tc.score}
		assert.Equal(t, tc.level, report.Level(), "score %d", tc.score)
	}
}
