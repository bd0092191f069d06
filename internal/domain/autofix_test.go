package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/doclens/doclens/internal/model"
)

func fixKinds(fixes []m.FixRecord) []m.FixKind {
	kinds := make([]m.FixKind, 0, len(fixes))
	for _, fix := range fixes {
		kinds = append(kinds, fix.Kind)
	}

	return kinds
}

func TestAutofix_SummaryRepairs(t *testing.T) {
	t.Run("capitalizes and punctuates the summary", func(t *testing.T) {
		fixed, fixes := Autofix("greet the person", m.Entity{})

		assert.Equal(t, "Greet the person.", fixed)
		assert.ElementsMatch(t,
			[]m.FixKind{m.FixCapitalizeSummary, m.FixAppendPeriod},
			fixKinds(fixes))
	})

	t.Run("question marks already terminate", func(t *testing.T) {
		fixed, fixes := Autofix("Is the cache warm?", m.Entity{})

		assert.Equal(t, "Is the cache warm?", fixed)
		assert.Empty(t, fixes)
	})

	t.Run("inserts the blank line before the body", func(t *testing.T) {
		fixed, fixes := Autofix("Greet the person.\nThe body.", m.Entity{})

		assert.Equal(t, "Greet the person.\n\nThe body.", fixed)
		require.Len(t, fixes, 1)
		assert.Equal(t, m.FixInsertBlankLine, fixes[0].Kind)
	})
}

func TestAutofix_LayoutRepairs(t *testing.T) {
	t.Run("collapses blank runs", func(t *testing.T) {
		fixed, fixes := Autofix("Greet the person.\n\n\n\nThe body.", m.Entity{})

		assert.Equal(t, "Greet the person.\n\nThe body.", fixed)
		require.Len(t, fixes, 1)
		assert.Equal(t, m.FixCollapseBlankLines, fixes[0].Kind)
	})

	t.Run("rebases indentation onto the declaration", func(t *testing.T) {
		entity := m.Entity{Indent: "\t"}

		fixed, fixes := Autofix("  Greet the person.\n\n  The body.", entity)

		assert.Equal(t, "\tGreet the person.\n\n\tThe body.", fixed)
		assert.Contains(t, fixKinds(fixes), m.FixReindent)
	})

	t.Run("relative indentation inside the block survives", func(t *testing.T) {
		entity := m.Entity{Indent: ""}

		block := "  Greet the person.\n\n  Args:\n      name: Who."
		fixed, _ := Autofix(block, entity)

		assert.Equal(t, "Greet the person.\n\nArgs:\n    name: Who.", fixed)
	})
}

func TestAutofix_Idempotence(t *testing.T) {
	blocks := []string{
		"greet the person",
		"  greet the person\n\n\nArgs:\n      name: Who.",
		"Do the thing.\nBody follows.",
		"Compute the sum.\n\nParameters\n----------\na :\n    First.",
	}

	for _, block := range blocks {
		fixed, firstFixes := Autofix(block, m.Entity{})

		again, secondFixes := Autofix(fixed, m.Entity{})

		assert.Equal(t, fixed, again, "second pass changed the text for %q", block)
		assert.Empty(t, secondFixes, "second pass reported fixes for %q", block)
		_ = firstFixes
	}
}

func TestAutofix_UnrecognizableBlock(t *testing.T) {
	for _, block := range []string{"", "---", "*** ///"} {
		fixed, fixes := Autofix(block, m.Entity{})

		assert.Equal(t, block, fixed)
		assert.Empty(t, fixes)
	}
}
