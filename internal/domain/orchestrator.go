package domain

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/doclens/doclens/internal/adapter"
	m "github.com/doclens/doclens/internal/model"
)

// Orchestrator routes generation requests across prioritized backends with
// health tracking, retry and failover. Ordering is only guaranteed within
// one entity's provider-attempt sequence; independent entities may be
// generated concurrently.
type Orchestrator interface {
	Generate(ctx context.Context, entity m.Entity, contextText string, conv m.Convention) m.GenerationResult
}

type orchestrator struct {
	registry       *ProviderRegistry
	backends       map[string]adapter.GenerationBackend
	maxRetries     int
	backoffBase    time.Duration
	attemptTimeout time.Duration
	logger         *log.Logger
}

// OrchestratorOption customizes an orchestrator.
type OrchestratorOption func(*orchestrator)

// WithMaxRetries bounds transient-error retries per provider.
func WithMaxRetries(n int) OrchestratorOption {
	return func(o *orchestrator) { o.maxRetries = n }
}

// WithBackoff sets the initial retry delay; it doubles per attempt.
func WithBackoff(d time.Duration) OrchestratorOption {
	return func(o *orchestrator) { o.backoffBase = d }
}

// WithAttemptTimeout bounds each individual backend call.
func WithAttemptTimeout(d time.Duration) OrchestratorOption {
	return func(o *orchestrator) { o.attemptTimeout = d }
}

// WithLogger sets the structured logger used for attempt reporting.
func WithLogger(logger *log.Logger) OrchestratorOption {
	return func(o *orchestrator) { o.logger = logger }
}

// NewOrchestrator constructs an Orchestrator over the provided registry and
// backends. The registry decides eligibility; the orchestrator never
// branches on backend identity except for logging.
func NewOrchestrator(registry *ProviderRegistry, backends []adapter.GenerationBackend, opts ...OrchestratorOption) Orchestrator {
	byID := make(map[string]adapter.GenerationBackend, len(backends))
	for _, backend := range backends {
		byID[backend.ID()] = backend
	}

	o := &orchestrator{
		registry:       registry,
		backends:       byID,
		maxRetries:     2,
		backoffBase:    200 * time.Millisecond,
		attemptTimeout: 30 * time.Second,
		logger:         log.Default(),
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Generate tries each eligible provider in priority order. Transient errors
// are retried on the same provider with doubling backoff; rate-limit and
// fatal errors fail over immediately. An exhausted provider list yields a
// structured failure carrying the full attempt trail, never a crash.
func (o *orchestrator) Generate(ctx context.Context, entity m.Entity, contextText string, conv m.Convention) m.GenerationResult {
	req := m.GenerationRequest{
		SignatureText: entity.Signature,
		ContextText:   contextText,
		ConventionID:  string(conv),
	}

	var trail []m.Attempt

	for _, id := range o.registry.Eligible() {
		backend, ok := o.backends[id]
		if !ok {
			o.logger.Warn("provider has no backend wired", "provider", id)
			continue
		}

		text, done := o.tryProvider(ctx, backend, req, &trail)
		if done {
			o.logger.Debug("generation succeeded",
				"entity", entity.QualifiedName, "provider", id)

			return m.GenerationResult{
				Success:    true,
				Text:       text,
				ProviderID: id,
				Trail:      trail,
			}
		}

		if ctx.Err() != nil {
			return m.GenerationResult{Success: false, Trail: trail}
		}
	}

	o.logger.Warn("all providers skipped or exhausted",
		"entity", entity.QualifiedName, "attempts", len(trail))

	return m.GenerationResult{Success: false, Trail: trail}
}

// tryProvider drives the retry loop for one provider. It returns done=true
// on success; done=false means the caller should fail over. Cancellation is
// detected before any health transition is recorded, so an interrupted call
// never leaves a provider half-transitioned.
func (o *orchestrator) tryProvider(ctx context.Context, backend adapter.GenerationBackend, req m.GenerationRequest, trail *[]m.Attempt) (string, bool) {
	id := backend.ID()

	for attempt := 0; ; attempt++ {
		if ctx.Err() != nil {
			return "", false
		}

		attemptCtx, cancel := context.WithTimeout(ctx, o.attemptTimeout)
		text, err := backend.Generate(attemptCtx, req)
		cancel()

		if err == nil {
			o.registry.ReportSuccess(id)
			return text, true
		}

		if ctx.Err() != nil {
			// the failure was our own cancellation, not the provider's
			return "", false
		}

		class := adapter.ClassOf(err)
		*trail = append(*trail, m.Attempt{ProviderID: id, Class: class, Message: err.Error()})

		state := o.registry.ReportFailure(id, class)
		o.logger.Warn("provider attempt failed",
			"provider", id, "class", class, "state", state, "attempt", attempt+1)

		if class != m.ErrorTransient {
			return "", false
		}

		if attempt >= o.maxRetries || state == m.ProviderDisabled {
			return "", false
		}

		if !sleepInterruptible(ctx, o.backoffBase<<attempt) {
			return "", false
		}
	}
}

// sleepInterruptible waits for d unless ctx is cancelled first.
func sleepInterruptible(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
