package adapter

import (
	"context"
	"fmt"
	"strings"

	m "github.com/doclens/doclens/internal/model"
)

// TemplateBackend renders a deterministic skeleton block from the request
// alone. It never fails, which makes it a natural lowest-priority fallback
// when every remote provider is disabled or exhausted.
type TemplateBackend struct {
	id string
}

// NewTemplateBackend constructs a TemplateBackend with the given provider id.
func NewTemplateBackend(id string) *TemplateBackend {
	return &TemplateBackend{id: id}
}

// ID returns the configured provider id.
func (b *TemplateBackend) ID() string { return b.id }

// Generate renders a skeleton documentation block in the requested
// convention, covering every parameter named in the signature text.
func (b *TemplateBackend) Generate(_ context.Context, req m.GenerationRequest) (string, error) {
	name := declaredName(req.SignatureText)
	params := signatureParams(req.SignatureText)
	hasReturn := signatureHasReturn(req.SignatureText)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Perform the work of %s.\n", name)

	switch m.Convention(req.ConventionID) {
	case m.ConventionNumpy:
		renderNumpy(&sb, params, hasReturn)
	case m.ConventionRest:
		renderRest(&sb, params, hasReturn)
	default:
		renderGoogle(&sb, params, hasReturn)
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func renderGoogle(sb *strings.Builder, params []string, hasReturn bool) {
	if len(params) > 0 {
		sb.WriteString("\nArgs:\n")

		for _, p := range params {
			fmt.Fprintf(sb, "    %s: Describe %s.\n", p, p)
		}
	}

	if hasReturn {
		sb.WriteString("\nReturns:\n    Describe the return value.\n")
	}
}

func renderNumpy(sb *strings.Builder, params []string, hasReturn bool) {
	if len(params) > 0 {
		sb.WriteString("\nParameters\n----------\n")

		for _, p := range params {
			fmt.Fprintf(sb, "%s :\n    Describe %s.\n", p, p)
		}
	}

	if hasReturn {
		sb.WriteString("\nReturns\n-------\n    Describe the return value.\n")
	}
}

func renderRest(sb *strings.Builder, params []string, hasReturn bool) {
	if len(params) > 0 || hasReturn {
		sb.WriteString("\n")
	}

	for _, p := range params {
		fmt.Fprintf(sb, ":param %s: Describe %s.\n", p, p)
	}

	if hasReturn {
		sb.WriteString(":return: Describe the return value.\n")
	}
}

// declaredName pulls the declared identifier out of a signature line such
// as "func (s *Server) Start(ctx context.Context) error" or "type Config
// struct" or "package api".
func declaredName(sig string) string {
	rest := strings.TrimSpace(sig)

	switch {
	case strings.HasPrefix(rest, "func"):
		rest = strings.TrimSpace(strings.TrimPrefix(rest, "func"))
		if strings.HasPrefix(rest, "(") {
			if end := matchParen(rest); end > 0 {
				rest = strings.TrimSpace(rest[end+1:])
			}
		}

		if idx := strings.IndexAny(rest, "([ "); idx > 0 {
			return rest[:idx]
		}

		return rest
	case strings.HasPrefix(rest, "type"), strings.HasPrefix(rest, "package"):
		fields := strings.Fields(rest)
		if len(fields) >= 2 {
			return fields[1]
		}
	}

	if rest == "" {
		return "it"
	}

	return strings.Fields(rest)[0]
}

// signatureParams extracts declared parameter names, best-effort, from the
// textual signature. Unnamed parameters are skipped rather than guessed.
func signatureParams(sig string) []string {
	group := paramGroup(sig)
	if group == "" {
		return nil
	}

	var names []string

	pending := 0

	parts := splitTopLevel(group)
	for i := len(parts) - 1; i >= 0; i-- {
		fields := strings.Fields(strings.TrimSpace(parts[i]))
		if len(fields) == 0 {
			continue
		}

		name := strings.TrimPrefix(fields[0], "...")
		if len(fields) == 1 && pending == 0 && !isPlainIdent(name) {
			// a lone type, e.g. func(io.Reader): nothing to name
			continue
		}

		if len(fields) > 1 {
			pending = 0
		} else {
			// "x" in "x, y int": the type arrives with a later group
			pending++
		}

		if isPlainIdent(name) && name != "_" {
			names = append([]string{name}, names...)
		}
	}

	return names
}

func signatureHasReturn(sig string) bool {
	rest := strings.TrimSpace(sig)
	if !strings.HasPrefix(rest, "func") {
		return false
	}

	rest = strings.TrimSpace(strings.TrimPrefix(rest, "func"))
	if strings.HasPrefix(rest, "(") {
		if end := matchParen(rest); end > 0 {
			rest = strings.TrimSpace(rest[end+1:])
		}
	}

	idx := strings.Index(rest, "(")
	if idx < 0 {
		return false
	}

	rest = rest[idx:]

	end := matchParen(rest)
	if end < 0 {
		return false
	}

	return strings.TrimSpace(rest[end+1:]) != ""
}

func paramGroup(sig string) string {
	rest := strings.TrimSpace(sig)
	if !strings.HasPrefix(rest, "func") {
		return ""
	}

	rest = strings.TrimSpace(strings.TrimPrefix(rest, "func"))
	if strings.HasPrefix(rest, "(") {
		if end := matchParen(rest); end > 0 {
			rest = strings.TrimSpace(rest[end+1:])
		}
	}

	idx := strings.Index(rest, "(")
	if idx < 0 {
		return ""
	}

	rest = rest[idx:]

	end := matchParen(rest)
	if end < 0 {
		return ""
	}

	return rest[1:end]
}

// matchParen returns the index of the parenthesis closing the one at s[0],
// or -1 when unbalanced.
func matchParen(s string) int {
	depth := 0

	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

func splitTopLevel(s string) []string {
	var parts []string

	depth := 0
	start := 0

	for i, r := range s {
		switch r {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}

	return append(parts, s[start:])
}

func isPlainIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			if i == 0 && r >= 'A' && r <= 'Z' {
				// exported idents in parameter position are types
				return false
			}
			if i == 0 && r >= '0' && r <= '9' {
				return false
			}
		default:
			return false
		}
	}

	return true
}
