package adapter

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/doclens/doclens/internal/model"
)

const testKeyEnv = "DOCLENS_TEST_API_KEY"

func chatBody(content string) string {
	return `{"choices":[{"message":{"role":"assistant","content":` + jsonString(content) + `}}]}`
}

func jsonString(s string) string {
	out := `"`

	for _, r := range s {
		switch r {
		case '"':
			out += `\"`
		case '\n':
			out += `\n`
		default:
			out += string(r)
		}
	}

	return out + `"`
}

func genRequest() m.GenerationRequest {
	return m.GenerationRequest{
		SignatureText: "func Add(a, b int) int",
		ContextText:   "func Add(a, b int) int { return a + b }",
		ConventionID:  string(m.ConventionGoogle),
	}
}

func classOf(t *testing.T, err error) m.ErrorClass {
	t.Helper()

	var genErr *m.GenerationError
	require.ErrorAs(t, err, &genErr)

	return genErr.Class
}

func TestHTTPBackend_Generate(t *testing.T) {
	t.Run("successful call returns the text", func(t *testing.T) {
		t.Setenv(testKeyEnv, "secret")

		var gotAuth string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(chatBody("Add the two operands.")))
		}))
		defer server.Close()

		backend := NewHTTPBackend("remote", server.URL, "test-model", testKeyEnv, server.Client())

		text, err := backend.Generate(context.Background(), genRequest())
		require.NoError(t, err)
		assert.Equal(t, "Add the two operands.", text)
		assert.Equal(t, "Bearer secret", gotAuth)
	})

	t.Run("code fences are stripped", func(t *testing.T) {
		t.Setenv(testKeyEnv, "secret")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(chatBody("```\nAdd the operands.\n```")))
		}))
		defer server.Close()

		backend := NewHTTPBackend("remote", server.URL, "test-model", testKeyEnv, server.Client())

		text, err := backend.Generate(context.Background(), genRequest())
		require.NoError(t, err)
		assert.Equal(t, "Add the operands.", text)
	})

	t.Run("missing credential is fatal without any call", func(t *testing.T) {
		called := false

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			called = true
		}))
		defer server.Close()

		backend := NewHTTPBackend("remote", server.URL, "test-model", "DOCLENS_TEST_UNSET_KEY", server.Client())

		_, err := backend.Generate(context.Background(), genRequest())
		assert.Equal(t, m.ErrorFatal, classOf(t, err))
		assert.False(t, called)
	})

	t.Run("status codes map onto error classes", func(t *testing.T) {
		cases := []struct {
			status int
			class  m.ErrorClass
		}{
			{http.StatusTooManyRequests, m.ErrorRateLimit},
			{http.StatusUnauthorized, m.ErrorFatal},
			{http.StatusForbidden, m.ErrorFatal},
			{http.StatusBadRequest, m.ErrorFatal},
			{http.StatusInternalServerError, m.ErrorTransient},
			{http.StatusBadGateway, m.ErrorTransient},
		}

		for _, tc := range cases {
			t.Setenv(testKeyEnv, "secret")

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
			}))

			backend := NewHTTPBackend("remote", server.URL, "test-model", testKeyEnv, server.Client())

			_, err := backend.Generate(context.Background(), genRequest())
			assert.Equalf(t, tc.class, classOf(t, err), "status %d", tc.status)

			server.Close()
		}
	})

	t.Run("network failure is transient", func(t *testing.T) {
		t.Setenv(testKeyEnv, "secret")

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		backend := NewHTTPBackend("remote", server.URL, "test-model", testKeyEnv, nil)

		_, err := backend.Generate(context.Background(), genRequest())
		assert.Equal(t, m.ErrorTransient, classOf(t, err))
	})

	t.Run("empty choices are transient", func(t *testing.T) {
		t.Setenv(testKeyEnv, "secret")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices":[]}`))
		}))
		defer server.Close()

		backend := NewHTTPBackend("remote", server.URL, "test-model", testKeyEnv, server.Client())

		_, err := backend.Generate(context.Background(), genRequest())
		assert.Equal(t, m.ErrorTransient, classOf(t, err))
	})
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, m.ErrorRateLimit, ClassOf(&m.GenerationError{Class: m.ErrorRateLimit}))
	assert.Equal(t, m.ErrorTransient, ClassOf(errors.New("plain failure")), "unclassified errors default to transient")
}
