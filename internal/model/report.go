package model

// FileBreakdown holds per-file coverage figures.
type FileBreakdown struct {
	File            Path    `json:"file" yaml:"file"`
	TotalEntities   int     `json:"total_entities" yaml:"total_entities"`
	Documented      int     `json:"documented" yaml:"documented"`
	Coverage        float64 `json:"coverage" yaml:"coverage"`
	MissingDebt     int     `json:"missing_debt" yaml:"missing_debt"`
	TooShortDebt    int     `json:"too_short_debt" yaml:"too_short_debt"`
	StaleDebt       int     `json:"stale_debt" yaml:"stale_debt"`
	ParseFailed     bool    `json:"parse_failed,omitempty" yaml:"parse_failed,omitempty"`
	ParseErrMessage string  `json:"parse_error,omitempty" yaml:"parse_error,omitempty"`
}

// CoverageReport aggregates one audit run. It is derived output, recomputed
// wholesale per run and never mutated after creation.
type CoverageReport struct {
	TotalEntities int             `json:"total_entities" yaml:"total_entities"`
	Documented    int             `json:"documented" yaml:"documented"`
	Score         int             `json:"score" yaml:"score"`
	Files         []FileBreakdown `json:"files" yaml:"files"`
}

// Level buckets the score into a human-readable coverage level.
func (r CoverageReport) Level() string {
	switch {
	case r.Score >= 95:
		return "Excellent"
	case r.Score >= 80:
		return "Good"
	case r.Score >= 60:
		return "Fair"
	default:
		return "Poor"
	}
}

// Recommendation suggests the next documentation step for the score.
func (r CoverageReport) Recommendation() string {
	switch {
	case r.Score >= 95:
		return "Excellent coverage. Keep maintaining the standard."
	case r.Score >= 80:
		return "Good coverage. Consider documenting the remaining items."
	case r.Score >= 60:
		return "Fair coverage. Significant documentation work needed."
	default:
		return "Poor coverage. Document all public APIs first."
	}
}

// EntityValidation pairs an entity with the validation result of its
// existing documentation block.
type EntityValidation struct {
	Entity string // qualified name
	Score  int
	Issues []Issue
}

// FileAnalysis is the full extraction and validation output for one file.
type FileAnalysis struct {
	File        Path
	Entities    []Entity
	Debts       []Debt
	ParseError  *ParseError
	Validations []EntityValidation
}
