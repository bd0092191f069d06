package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	m "github.com/doclens/doclens/internal/model"
)

// HTTPBackend calls a chat-completions style JSON endpoint. The credential
// is read from the environment variable named in the configuration so the
// process never stores key material itself.
type HTTPBackend struct {
	id        string
	endpoint  string
	model     string
	apiKeyEnv string
	client    *http.Client
}

// NewHTTPBackend constructs an HTTPBackend for one configured provider.
func NewHTTPBackend(id, endpoint, model, apiKeyEnv string, client *http.Client) *HTTPBackend {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPBackend{
		id:        id,
		endpoint:  endpoint,
		model:     model,
		apiKeyEnv: apiKeyEnv,
		client:    client,
	}
}

// ID returns the configured provider id.
func (b *HTTPBackend) ID() string { return b.id }

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate posts the prompt and maps the HTTP outcome onto the classified
// error contract: 429 is a rate limit, auth and client errors are fatal,
// everything network- or server-side is transient.
func (b *HTTPBackend) Generate(ctx context.Context, req m.GenerationRequest) (string, error) {
	apiKey := os.Getenv(b.apiKeyEnv)
	if b.apiKeyEnv != "" && apiKey == "" {
		return "", &m.GenerationError{
			Class:   m.ErrorFatal,
			Message: fmt.Sprintf("environment variable %s is not set", b.apiKeyEnv),
		}
	}

	payload, err := json.Marshal(chatRequest{
		Model:     b.model,
		Messages:  []chatMessage{{Role: "user", Content: buildPrompt(req)}},
		MaxTokens: 500,
	})
	if err != nil {
		return "", &m.GenerationError{Class: m.ErrorFatal, Message: err.Error()}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &m.GenerationError{Class: m.ErrorFatal, Message: err.Error()}
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", &m.GenerationError{Class: m.ErrorTransient, Message: err.Error()}
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &m.GenerationError{Class: m.ErrorTransient, Message: err.Error()}
	}

	if class, failed := classifyStatus(resp.StatusCode); failed {
		return "", &m.GenerationError{
			Class:   class,
			Message: fmt.Sprintf("%s returned %d: %s", b.id, resp.StatusCode, truncateBody(body)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", &m.GenerationError{Class: m.ErrorTransient, Message: "malformed response: " + err.Error()}
	}

	if len(parsed.Choices) == 0 {
		return "", &m.GenerationError{Class: m.ErrorTransient, Message: "response contained no choices"}
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", &m.GenerationError{Class: m.ErrorTransient, Message: "response contained empty text"}
	}

	return stripCodeFences(text), nil
}

func classifyStatus(status int) (m.ErrorClass, bool) {
	switch {
	case status >= 200 && status < 300:
		return "", false
	case status == http.StatusTooManyRequests:
		return m.ErrorRateLimit, true
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return m.ErrorFatal, true
	case status >= 500:
		return m.ErrorTransient, true
	default:
		return m.ErrorFatal, true
	}
}

func buildPrompt(req m.GenerationRequest) string {
	conv := m.Convention(req.ConventionID)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a documentation block for the following declaration in the exact %s style.\n\n", strings.ToUpper(req.ConventionID))
	fmt.Fprintf(&sb, "Declaration:\n%s\n\n", req.SignatureText)

	if req.ContextText != "" {
		fmt.Fprintf(&sb, "Surrounding code:\n%s\n\n", req.ContextText)
	}

	sb.WriteString(conv.Instructions())
	sb.WriteString(`

Requirements:
1. Follow the style layout precisely.
2. Include parameter, return and error sections only when applicable.
3. Return only the documentation text, without code fences or commentary.`)

	return sb.String()
}

func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return text
	}

	lines = lines[1:]
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func truncateBody(body []byte) string {
	const limit = 200

	s := strings.TrimSpace(string(body))
	if len(s) > limit {
		return s[:limit] + "…"
	}

	return s
}
