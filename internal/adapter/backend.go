package adapter

import (
	"context"
	"errors"

	m "github.com/doclens/doclens/internal/model"
)

// GenerationBackend is the capability interface one generation provider
// implements. The orchestrator is generic over this interface and never
// branches on backend identity except for logging.
type GenerationBackend interface {
	ID() string
	// Generate returns the documentation text for the request, or an error
	// that unwraps to *model.GenerationError.
	Generate(ctx context.Context, req m.GenerationRequest) (string, error)
}

// ClassOf extracts the error class from a backend error. Unclassified
// errors are treated as transient so a healthy lower-priority provider
// still gets its turn.
func ClassOf(err error) m.ErrorClass {
	var genErr *m.GenerationError
	if errors.As(err, &genErr) {
		return genErr.Class
	}

	return m.ErrorTransient
}
