package model

// DebtKind classifies a gap between an entity and its documentation.
type DebtKind string

const (
	// DebtMissing marks an entity with no documentation block at all.
	DebtMissing DebtKind = "missing"
	// DebtTooShort marks a block thinner than the shortest well-formed one.
	DebtTooShort DebtKind = "too_short"
	// DebtStaleSignature marks a block documenting parameters that no longer
	// exist in the signature.
	DebtStaleSignature DebtKind = "stale_signature"
)

// Debt references an entity that needs documentation work. Debts are
// recomputed each run, never mutated in place.
type Debt struct {
	Entity   string // qualified name within File
	File     Path
	Kind     DebtKind
	Severity Severity
	Line     int
}
