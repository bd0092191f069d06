package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/doclens/doclens/internal/model"
)

func TestTemplateBackend_Generate(t *testing.T) {
	backend := NewTemplateBackend("template")
	assert.Equal(t, "template", backend.ID())

	req := m.GenerationRequest{
		SignatureText: "func Add(a, b int) int",
		ConventionID:  string(m.ConventionGoogle),
	}

	t.Run("google layout", func(t *testing.T) {
		text, err := backend.Generate(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "Perform the work of Add.\n\nArgs:\n    a: Describe a.\n    b: Describe b.\n\nReturns:\n    Describe the return value.", text)
	})

	t.Run("numpy layout", func(t *testing.T) {
		numpyReq := req
		numpyReq.ConventionID = string(m.ConventionNumpy)

		text, err := backend.Generate(context.Background(), numpyReq)
		require.NoError(t, err)

		assert.Contains(t, text, "Parameters\n----------\n")
		assert.Contains(t, text, "a :\n    Describe a.")
		assert.Contains(t, text, "Returns\n-------\n")
	})

	t.Run("rest layout", func(t *testing.T) {
		restReq := req
		restReq.ConventionID = string(m.ConventionRest)

		text, err := backend.Generate(context.Background(), restReq)
		require.NoError(t, err)

		assert.Contains(t, text, ":param a: Describe a.")
		assert.Contains(t, text, ":param b: Describe b.")
		assert.Contains(t, text, ":return: Describe the return value.")
	})

	t.Run("no parameters and no return", func(t *testing.T) {
		text, err := backend.Generate(context.Background(), m.GenerationRequest{
			SignatureText: "func Reset()",
			ConventionID:  string(m.ConventionGoogle),
		})
		require.NoError(t, err)

		assert.Equal(t, "Perform the work of Reset.", text)
	})
}

func TestDeclaredName(t *testing.T) {
	cases := []struct {
		sig  string
		want string
	}{
		{"func Add(a, b int) int", "Add"},
		{"func (s *Server) Start(ctx context.Context) error", "Start"},
		{"type Config struct", "Config"},
		{"package api", "api"},
		{"func Reset()", "Reset"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, declaredName(tc.sig), "signature %q", tc.sig)
	}
}

func TestSignatureParams(t *testing.T) {
	cases := []struct {
		sig  string
		want []string
	}{
		{"func Add(a, b int) int", []string{"a", "b"}},
		{"func (s *Server) Handle(w http.ResponseWriter, r *http.Request)", []string{"w", "r"}},
		{"func Log(format string, args ...any)", []string{"format", "args"}},
		{"func Copy(dst io.Writer, src io.Reader) (int64, error)", []string{"dst", "src"}},
		{"func Reset()", nil},
		{"func Drain(io.Reader)", nil},
		{"type Config struct", nil},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, signatureParams(tc.sig), "signature %q", tc.sig)
	}
}

func TestSignatureHasReturn(t *testing.T) {
	assert.True(t, signatureHasReturn("func Add(a, b int) int"))
	assert.True(t, signatureHasReturn("func Split(s string) (string, error)"))
	assert.False(t, signatureHasReturn("func Reset()"))
	assert.False(t, signatureHasReturn("type Config struct"))
	assert.True(t, signatureHasReturn("func (s *Server) Start(ctx context.Context) error"))
}
