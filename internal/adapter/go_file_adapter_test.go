package adapter

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalGoFileAdapter_Parse(t *testing.T) {
	a := NewLocalGoFileAdapter()

	t.Run("valid source keeps its comments", func(t *testing.T) {
		src := []byte("package sample\n\n// Add adds.\nfunc Add(a, b int) int { return a + b }\n")

		file, err := a.Parse(token.NewFileSet(), "sample.go", src)
		require.NoError(t, err)
		assert.Equal(t, "sample", file.Name.Name)
		assert.NotEmpty(t, file.Comments, "doc comments must survive parsing")
	})

	t.Run("invalid source fails", func(t *testing.T) {
		_, err := a.Parse(token.NewFileSet(), "broken.go", []byte("package broken\n\nfunc (\n"))
		assert.Error(t, err)
	})
}
