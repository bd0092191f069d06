package model

import "time"

// ProviderState is the health of one generation backend as tracked by the
// orchestrator.
type ProviderState string

const (
	// ProviderHealthy means the provider is eligible and has no recent failures.
	ProviderHealthy ProviderState = "healthy"
	// ProviderDegraded means the provider failed once inside the rolling window.
	ProviderDegraded ProviderState = "degraded"
	// ProviderDisabled means the provider is skipped until its cool-down
	// deadline passes, or until an explicit reset when no deadline is set.
	ProviderDisabled ProviderState = "disabled_temporary"
)

// ProviderRecord is the per-provider health record. It is the only core
// state that outlives a single call; the registry owns it exclusively.
type ProviderRecord struct {
	ID                  string
	Priority            int
	State               ProviderState
	ConsecutiveFailures int
	// DisabledUntil is the cool-down deadline while State is disabled. The
	// zero value in that state means "until explicit reset" (fatal errors).
	DisabledUntil time.Time
	LastFailure   time.Time
}

// ErrorClass partitions backend failures by how the orchestrator must react.
type ErrorClass string

const (
	// ErrorRateLimit is an instruction to stop calling, not a transient blip.
	ErrorRateLimit ErrorClass = "rate_limit"
	// ErrorTransient covers network hiccups and server-side failures worth a retry.
	ErrorTransient ErrorClass = "transient"
	// ErrorFatal covers authentication and other unrecoverable failures.
	ErrorFatal ErrorClass = "fatal"
)

// GenerationError is the classified error a backend reports. The wire-level
// cause stays inside the backend; the orchestrator only reads the class.
type GenerationError struct {
	Class   ErrorClass
	Message string
}

func (e *GenerationError) Error() string {
	return string(e.Class) + ": " + e.Message
}

// GenerationRequest is the provider-agnostic payload sent to any backend.
type GenerationRequest struct {
	SignatureText string
	ContextText   string
	ConventionID  string
}

// Attempt is one entry of a generation error trail, in attempt order.
type Attempt struct {
	ProviderID string
	Class      ErrorClass
	Message    string
}

// GenerationResult reports the outcome of routing one generation request.
// On failure Trail lists every attempted provider with its classified error.
type GenerationResult struct {
	Success    bool
	Text       string
	ProviderID string
	Trail      []Attempt
}
