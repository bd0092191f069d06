package controller

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUI(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetOut(&bytes.Buffer{})

	t.Run("tty mode returns a TUI", func(t *testing.T) {
		ui := NewUI(cmd, true)
		_, ok := ui.(*TUI)
		assert.True(t, ok)
	})

	t.Run("non tty mode returns a SimpleUI", func(t *testing.T) {
		ui := NewUI(cmd, false)
		_, ok := ui.(*SimpleUI)
		assert.True(t, ok)
	})
}

func TestIsTTY(t *testing.T) {
	t.Run("buffers are not terminals", func(t *testing.T) {
		assert.False(t, IsTTY(&bytes.Buffer{}))
	})

	t.Run("regular files are not terminals", func(t *testing.T) {
		f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
		require.NoError(t, err)

		defer func() { _ = f.Close() }()

		assert.False(t, IsTTY(f))
	})
}
