package domain

import (
	"sort"
	"sync"
	"time"

	m "github.com/doclens/doclens/internal/model"
)

// ProviderRegistry owns the synchronized collection of provider health
// records. It is injected into the orchestrator rather than accessed as
// ambient global state, and every transition goes through one guarded
// update so concurrent generate calls observe consistent snapshots.
type ProviderRegistry struct {
	mu            sync.Mutex
	records       map[string]*m.ProviderRecord
	order         []string
	cooldown      time.Duration
	failureWindow time.Duration
	now           func() time.Time
}

// RegistryOption customizes a ProviderRegistry.
type RegistryOption func(*ProviderRegistry)

// WithClock overrides the registry's time source. Used by tests to drive
// cool-down expiry deterministically.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *ProviderRegistry) {
		r.now = now
	}
}

// NewProviderRegistry constructs a registry for the given providers,
// ordered by ascending priority rank. All providers start healthy.
func NewProviderRegistry(records []m.ProviderRecord, cooldown, failureWindow time.Duration, opts ...RegistryOption) *ProviderRegistry {
	r := &ProviderRegistry{
		records:       make(map[string]*m.ProviderRecord, len(records)),
		cooldown:      cooldown,
		failureWindow: failureWindow,
		now:           time.Now,
	}

	sorted := make([]m.ProviderRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Priority < sorted[j].Priority })

	for i := range sorted {
		rec := sorted[i]
		if rec.State == "" {
			rec.State = m.ProviderHealthy
		}

		r.records[rec.ID] = &rec
		r.order = append(r.order, rec.ID)
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Eligible returns the provider ids that may be attempted right now, in
// priority order. Disabled providers whose cool-down deadline has passed
// are re-enabled lazily here; disabled providers without a deadline stay
// down until an explicit reset.
func (r *ProviderRegistry) Eligible() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	var ids []string

	for _, id := range r.order {
		rec := r.records[id]

		if rec.State == m.ProviderDisabled {
			if rec.DisabledUntil.IsZero() || now.Before(rec.DisabledUntil) {
				continue
			}

			rec.State = m.ProviderHealthy
			rec.ConsecutiveFailures = 0
			rec.DisabledUntil = time.Time{}
		}

		ids = append(ids, id)
	}

	return ids
}

// ReportSuccess records a successful call: the provider returns to healthy
// with its failure count cleared.
func (r *ProviderRegistry) ReportSuccess(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return
	}

	rec.State = m.ProviderHealthy
	rec.ConsecutiveFailures = 0
	rec.DisabledUntil = time.Time{}
}

// ReportFailure applies one classified failure and returns the resulting
// state. Rate limits disable the provider for the cool-down immediately;
// fatal errors disable it until an explicit reset; transient failures
// degrade first and disable on the second consecutive failure inside the
// rolling window.
func (r *ProviderRegistry) ReportFailure(id string, class m.ErrorClass) m.ProviderState {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return ""
	}

	now := r.now()

	switch class {
	case m.ErrorRateLimit:
		rec.State = m.ProviderDisabled
		rec.DisabledUntil = now.Add(r.cooldown)
		rec.ConsecutiveFailures++
	case m.ErrorFatal:
		rec.State = m.ProviderDisabled
		rec.DisabledUntil = time.Time{}
		rec.ConsecutiveFailures++
	default:
		if !rec.LastFailure.IsZero() && now.Sub(rec.LastFailure) > r.failureWindow {
			rec.ConsecutiveFailures = 0
		}

		rec.ConsecutiveFailures++

		if rec.ConsecutiveFailures >= 2 {
			rec.State = m.ProviderDisabled
			rec.DisabledUntil = now.Add(r.cooldown)
		} else {
			rec.State = m.ProviderDegraded
		}
	}

	rec.LastFailure = now

	return rec.State
}

// Reset returns one provider to healthy regardless of its current state.
// This is the operator escape hatch for fatally disabled providers. The CLI
// builds a fresh registry on every invocation, so Reset and ResetAll exist
// for long-running callers that keep one registry alive across batches.
func (r *ProviderRegistry) Reset(id string) {
	r.ReportSuccess(id)
}

// ResetAll returns every provider to healthy. See Reset for when this
// matters.
func (r *ProviderRegistry) ResetAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		rec.State = m.ProviderHealthy
		rec.ConsecutiveFailures = 0
		rec.DisabledUntil = time.Time{}
	}
}

// Snapshot returns a copy of every record in priority order, for status
// display. The copies are detached from the registry's own state.
func (r *ProviderRegistry) Snapshot() []m.ProviderRecord {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]m.ProviderRecord, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.records[id])
	}

	return out
}
