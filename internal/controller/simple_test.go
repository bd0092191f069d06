package controller

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doclens/doclens/internal/domain"
	m "github.com/doclens/doclens/internal/model"
)

func init() {
	// keep assertions independent of the test terminal
	color.NoColor = true
}

func newCapturedUI() (*SimpleUI, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd), buf
}

func TestSimpleUI_DisplayReport(t *testing.T) {
	ui, buf := newCapturedUI()

	report := m.CoverageReport{
		TotalEntities: 4,
		Documented:    3,
		Score:         75,
		Files: []m.FileBreakdown{
			{File: "a.go", TotalEntities: 4, Documented: 3, Coverage: 75, MissingDebt: 1},
			{File: "broken.go", ParseFailed: true, ParseErrMessage: "expected declaration"},
		},
	}

	require.NoError(t, ui.DisplayReport(report))

	out := buf.String()
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "75%")
	assert.Contains(t, out, "parse error")
	assert.Contains(t, out, "Score: 75/100 (Fair)")
	assert.Contains(t, out, "Fair coverage")
}

func TestSimpleUI_DisplayDebts(t *testing.T) {
	ui, buf := newCapturedUI()

	debts := []m.Debt{
		{Entity: "Greet", File: "a.go", Line: 7, Kind: m.DebtMissing, Severity: m.SeverityError},
		{Entity: "Move", File: "b.go", Line: 3, Kind: m.DebtStaleSignature, Severity: m.SeverityWarning},
	}

	require.NoError(t, ui.DisplayDebts(debts))

	out := buf.String()
	assert.Contains(t, out, "a.go:7: error Greet [missing]")
	assert.Contains(t, out, "b.go:3: warning Move [stale_signature]")
	assert.Contains(t, out, "2 debt item(s)")
}

func TestSimpleUI_DisplayDebts_Empty(t *testing.T) {
	ui, buf := newCapturedUI()

	require.NoError(t, ui.DisplayDebts(nil))
	assert.Contains(t, buf.String(), "No documentation debt found.")
}

func TestSimpleUI_DisplayGenerated(t *testing.T) {
	ui, buf := newCapturedUI()

	results := []domain.GeneratedDoc{
		{
			Entity:     m.Entity{QualifiedName: "Add", File: "calc.go"},
			Text:       "Add the operands.",
			ProviderID: "template",
			Score:      100,
			Success:    true,
		},
		{
			Entity: m.Entity{QualifiedName: "Sub", File: "calc.go"},
			Trail: []m.Attempt{
				{ProviderID: "remote", Class: m.ErrorRateLimit, Message: "remote returned 429"},
			},
		},
	}

	require.NoError(t, ui.DisplayGenerated(results))

	out := buf.String()
	assert.Contains(t, out, "Add (provider template, score 100)")
	assert.Contains(t, out, "| Add the operands.")
	assert.Contains(t, out, "generation failed")
	assert.Contains(t, out, "tried remote (rate_limit): remote returned 429")
	assert.Contains(t, out, "Generated 1 of 2")
}

func TestSimpleUI_DisplayFixes(t *testing.T) {
	fixes := []domain.FileFix{
		{
			File:   "greet.go",
			Entity: "Greet",
			Fixes: []m.FixRecord{
				{Kind: m.FixAppendPeriod, Detail: "appended a period to the summary line"},
			},
		},
	}

	t.Run("dry run proposes", func(t *testing.T) {
		ui, buf := newCapturedUI()

		require.NoError(t, ui.DisplayFixes(fixes, false))

		out := buf.String()
		assert.Contains(t, out, "Would fix Greet in greet.go:")
		assert.Contains(t, out, "appended a period")
		assert.Contains(t, out, "--write to apply")
	})

	t.Run("write reports applied", func(t *testing.T) {
		ui, buf := newCapturedUI()

		require.NoError(t, ui.DisplayFixes(fixes, true))

		out := buf.String()
		assert.Contains(t, out, "Fixed Greet in greet.go:")
		assert.NotContains(t, out, "--write")
	})
}

func TestSimpleUI_DisplayProviders(t *testing.T) {
	ui, buf := newCapturedUI()

	records := []m.ProviderRecord{
		{ID: "remote", Priority: 1, State: m.ProviderHealthy},
		{ID: "template", Priority: 100, State: m.ProviderDisabled, ConsecutiveFailures: 2},
	}

	require.NoError(t, ui.DisplayProviders(records))

	out := buf.String()
	assert.Contains(t, out, "remote")
	assert.Contains(t, out, "healthy")
	assert.Contains(t, out, "disabled_temporary")
}
