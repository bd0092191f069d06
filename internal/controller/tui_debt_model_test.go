package controller

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/doclens/doclens/internal/model"
)

func sampleDebts() []m.Debt {
	return []m.Debt{
		{Entity: "Greet", File: "a.go", Line: 7, Kind: m.DebtMissing},
		{Entity: "Move", File: "b.go", Line: 3, Kind: m.DebtStaleSignature},
		{Entity: "Thin", File: "b.go", Line: 9, Kind: m.DebtTooShort},
	}
}

func TestDebtModel_Summary(t *testing.T) {
	model := newDebtModel(sampleDebts())

	assert.Equal(t, 3, model.total)
	assert.Equal(t, 2, model.files)
	assert.Len(t, model.debtList.Items(), 3)
}

func TestDebtModel_View(t *testing.T) {
	model := newDebtModel(sampleDebts())
	model.width = 100
	model.height = 40

	view := model.View()

	assert.Contains(t, view, "Documentation Debt")
	assert.Contains(t, view, "Greet")
	assert.Contains(t, view, "missing")
	assert.Contains(t, view, "q quit")
}

func TestDebtModel_Update(t *testing.T) {
	t.Run("window size propagates", func(t *testing.T) {
		model := newDebtModel(sampleDebts())

		updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 50})

		dm, ok := updated.(debtModel)
		require.True(t, ok)
		assert.Equal(t, 120, dm.width)
		assert.Equal(t, 50, dm.height)
	})

	t.Run("q quits", func(t *testing.T) {
		model := newDebtModel(sampleDebts())

		_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

		require.NotNil(t, cmd)
		assert.Equal(t, tea.Quit(), cmd())
	})
}

func TestDebtItem_FilterValue(t *testing.T) {
	item := debtItem{debt: m.Debt{Entity: "Greet", File: "pkg/a.go"}}
	assert.Equal(t, "pkg/a.go Greet", item.FilterValue())
}

func TestTruncateToWidth(t *testing.T) {
	assert.Equal(t, "short", truncateToWidth("short", 10))
	assert.Equal(t, "long…", truncateToWidth("long text here", 5))
	assert.Equal(t, "", truncateToWidth("anything", 0))
	assert.Equal(t, "…", truncateToWidth("anything", 1))
}
