package model

// Severity grades a validation issue.
type Severity string

const (
	// SeverityError marks a violation of a hard documentation requirement.
	SeverityError Severity = "error"
	// SeverityWarning marks a defect that is best-effort detectable.
	SeverityWarning Severity = "warning"
	// SeveritySuggestion marks an advisory, inherently fuzzy finding.
	SeveritySuggestion Severity = "suggestion"
)

// Issue is one validation finding against a documentation block. Several
// issues may reference the same block.
type Issue struct {
	RuleID   string
	Severity Severity
	Message  string
	// Line is 1-indexed within the documentation block.
	Line int
}
