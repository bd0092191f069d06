package model

// FixKind identifies one mechanical repair the autofix engine can apply.
type FixKind string

const (
	// FixCapitalizeSummary uppercases the first letter of the summary line.
	FixCapitalizeSummary FixKind = "capitalize_summary"
	// FixAppendPeriod terminates the summary line with a period.
	FixAppendPeriod FixKind = "append_period"
	// FixInsertBlankLine separates summary and body with one blank line.
	FixInsertBlankLine FixKind = "insert_blank_line"
	// FixReindent aligns block lines with the entity's indentation.
	FixReindent FixKind = "reindent"
	// FixCollapseBlankLines reduces blank-line runs to a single blank line.
	FixCollapseBlankLines FixKind = "collapse_blank_lines"
)

// FixRecord describes one applied repair.
type FixRecord struct {
	Kind   FixKind
	Detail string
}
