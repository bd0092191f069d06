package domain

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	m "github.com/doclens/doclens/internal/model"
)

// Rule identifiers reported by the validator.
const (
	RuleMissingSummary     = "DL001"
	RuleSummaryPeriod      = "DL002"
	RuleSummaryCapital     = "DL003"
	RuleBlankAfterSummary  = "DL004"
	RuleImperativeMood     = "DL005"
	RuleParamUndocumented  = "DL101"
	RuleReturnUndocumented = "DL102"
	RuleRaisesUndocumented = "DL103"
)

// RulePolicy holds the tunable scoring weights and the advisory verb list
// behind the imperative-mood heuristic. Weights are policy, not invariants.
type RulePolicy struct {
	ErrorWeight      int
	WarningWeight    int
	SuggestionWeight int
	// ThirdPersonVerbs are summary openers flagged as narrative rather than
	// imperative. The check stays advisory because it is inherently fuzzy.
	ThirdPersonVerbs []string
}

// DefaultRulePolicy returns the standard weights and verb list.
func DefaultRulePolicy() RulePolicy {
	return RulePolicy{
		ErrorWeight:      20,
		WarningWeight:    8,
		SuggestionWeight: 3,
		ThirdPersonVerbs: []string{
			"returns", "raises", "yields", "creates", "builds", "gets", "sets",
			"calculates", "computes", "generates", "performs", "checks",
			"validates", "executes", "runs", "initializes", "configures",
			"handles", "processes", "parses", "extracts", "transforms",
			"adds", "removes", "updates", "reads", "writes", "reports",
		},
	}
}

func (p RulePolicy) weightFor(sev m.Severity) int {
	switch sev {
	case m.SeverityError:
		return p.ErrorWeight
	case m.SeverityWarning:
		return p.WarningWeight
	default:
		return p.SuggestionWeight
	}
}

// Validator scores documentation blocks against a style convention. It is
// pure: neither the entity nor the block text is ever mutated.
type Validator struct {
	policy RulePolicy
}

// NewValidator constructs a Validator with the provided policy.
func NewValidator(policy RulePolicy) *Validator {
	return &Validator{policy: policy}
}

// Validate checks block against the structural rules and the convention's
// section shape. Score starts at 100 and loses a fixed weight per issue,
// clipped at zero; an empty issue list always means a score of 100.
func (v *Validator) Validate(entity m.Entity, block string, conv m.Convention) (int, []m.Issue) {
	var issues []m.Issue

	issues = append(issues, v.summaryIssues(block)...)
	issues = append(issues, v.sectionIssues(entity, block, conv)...)

	score := 100
	for _, issue := range issues {
		score -= v.policy.weightFor(issue.Severity)
	}

	if score < 0 {
		score = 0
	}

	return score, issues
}

func (v *Validator) summaryIssues(block string) []m.Issue {
	var issues []m.Issue

	lines := strings.Split(block, "\n")

	summary := strings.TrimSpace(lines[0])
	if summary == "" {
		return []m.Issue{{
			RuleID:   RuleMissingSummary,
			Severity: m.SeverityError,
			Message:  "documentation block must start with a non-empty summary line",
			Line:     1,
		}}
	}

	if !strings.HasSuffix(summary, ".") && !strings.HasSuffix(summary, "?") && !strings.HasSuffix(summary, "!") {
		issues = append(issues, m.Issue{
			RuleID:   RuleSummaryPeriod,
			Severity: m.SeverityWarning,
			Message:  "summary line must end with a period",
			Line:     1,
		})
	}

	if first := firstRune(summary); unicode.IsLetter(first) && !unicode.IsUpper(first) {
		issues = append(issues, m.Issue{
			RuleID:   RuleSummaryCapital,
			Severity: m.SeverityWarning,
			Message:  "summary line must start with a capital letter",
			Line:     1,
		})
	}

	if v.looksThirdPerson(summary) {
		issues = append(issues, m.Issue{
			RuleID:   RuleImperativeMood,
			Severity: m.SeveritySuggestion,
			Message:  "summary reads as a description; prefer the imperative mood",
			Line:     1,
		})
	}

	if len(lines) > 1 && strings.TrimSpace(lines[1]) != "" {
		issues = append(issues, m.Issue{
			RuleID:   RuleBlankAfterSummary,
			Severity: m.SeverityWarning,
			Message:  "a blank line must separate the summary from the body",
			Line:     2,
		})
	}

	return issues
}

func (v *Validator) looksThirdPerson(summary string) bool {
	fields := strings.Fields(summary)
	if len(fields) == 0 {
		return false
	}

	first := strings.ToLower(strings.TrimRight(fields[0], ".,;:"))

	for _, verb := range v.policy.ThirdPersonVerbs {
		if first == verb {
			return true
		}
	}

	return false
}

// sectionIssues runs the cross-checks shared by every convention: the
// convention only decides how sections are parsed, never which facts must
// be present.
func (v *Validator) sectionIssues(entity m.Entity, block string, conv m.Convention) []m.Issue {
	var issues []m.Issue

	if len(entity.Parameters) > 0 {
		documented := documentedParams(block, conv)

		for _, param := range entity.Parameters {
			if param.Name == "" || param.Name == "_" {
				continue
			}

			if _, ok := documented[param.Name]; !ok {
				issues = append(issues, m.Issue{
					RuleID:   RuleParamUndocumented,
					Severity: m.SeverityError,
					Message:  fmt.Sprintf("parameter %q is not documented", param.Name),
				})
			}
		}
	}

	if entity.ReturnType != "" && !hasReturnSection(block, conv) {
		issues = append(issues, m.Issue{
			RuleID:   RuleReturnUndocumented,
			Severity: m.SeverityError,
			Message:  "declared return type requires a return section",
		})
	}

	if len(entity.RaisedErrors) > 0 {
		documented := documentedRaises(block, conv)

		for _, name := range entity.RaisedErrors {
			if _, ok := documented[name]; !ok {
				issues = append(issues, m.Issue{
					RuleID:   RuleRaisesUndocumented,
					Severity: m.SeverityWarning,
					Message:  fmt.Sprintf("raised error %q is not documented", name),
				})
			}
		}
	}

	return issues
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}

	return 0
}

// summaryLine returns the first non-empty line of a block, trimmed.
func summaryLine(block string) string {
	for _, line := range strings.Split(block, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}

	return ""
}

// ---------------- convention section parsing ----------------

var (
	googleEntryRe = regexp.MustCompile(`^\s+([A-Za-z_][A-Za-z0-9_]*)\s*(?:\([^)]*\))?\s*:`)
	numpyEntryRe  = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*(?::.*)?$`)
	dashLineRe    = regexp.MustCompile(`^\s*-{3,}\s*$`)
	restParamRe   = regexp.MustCompile(`^\s*:param\s+([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	restReturnRe  = regexp.MustCompile(`^\s*:returns?\s*:`)
	restRaisesRe  = regexp.MustCompile(`^\s*:raises?\s+([A-Za-z_][A-Za-z0-9_.]*)\s*:`)
)

// documentedParams parses the parameter entries a block documents under the
// given convention, keyed by name.
func documentedParams(block string, conv m.Convention) map[string]struct{} {
	switch conv {
	case m.ConventionNumpy:
		return numpySectionNames(block, "Parameters")
	case m.ConventionRest:
		return restFieldNames(block, restParamRe)
	default:
		return googleSectionNames(block, "Args:")
	}
}

func hasReturnSection(block string, conv m.Convention) bool {
	switch conv {
	case m.ConventionNumpy:
		return numpyHasSection(block, "Returns")
	case m.ConventionRest:
		for _, line := range strings.Split(block, "\n") {
			if restReturnRe.MatchString(line) {
				return true
			}
		}

		return false
	default:
		for _, line := range strings.Split(block, "\n") {
			if strings.TrimSpace(line) == "Returns:" {
				return true
			}
		}

		return false
	}
}

func documentedRaises(block string, conv m.Convention) map[string]struct{} {
	switch conv {
	case m.ConventionNumpy:
		return numpySectionNames(block, "Raises")
	case m.ConventionRest:
		return restFieldNames(block, restRaisesRe)
	default:
		return googleSectionNames(block, "Raises:")
	}
}

// googleSectionNames collects entry names under a "Header:" line until the
// section dedents or another section starts.
func googleSectionNames(block, header string) map[string]struct{} {
	names := make(map[string]struct{})

	lines := strings.Split(block, "\n")
	inSection := false

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == header {
			inSection = true
			continue
		}

		if !inSection {
			continue
		}

		if trimmed == "" {
			continue
		}

		// any non-indented line ends the section
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			inSection = false
			continue
		}

		if match := googleEntryRe.FindStringSubmatch(line); match != nil {
			names[match[1]] = struct{}{}
		}
	}

	return names
}

// numpySectionNames collects entry names under a dash-underlined header.
func numpySectionNames(block, header string) map[string]struct{} {
	names := make(map[string]struct{})

	lines := strings.Split(block, "\n")

	for i := 0; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != header || i+1 >= len(lines) || !dashLineRe.MatchString(lines[i+1]) {
			continue
		}

		for j := i + 2; j < len(lines); j++ {
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" {
				break
			}

			// the next dash-underlined header ends the section
			if j+1 < len(lines) && dashLineRe.MatchString(lines[j+1]) {
				break
			}

			// description lines are indented relative to entries
			if strings.HasPrefix(lines[j], " ") || strings.HasPrefix(lines[j], "\t") {
				continue
			}

			if match := numpyEntryRe.FindStringSubmatch(trimmed); match != nil {
				names[match[1]] = struct{}{}
			}
		}

		break
	}

	return names
}

func numpyHasSection(block, header string) bool {
	lines := strings.Split(block, "\n")

	for i := 0; i+1 < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == header && dashLineRe.MatchString(lines[i+1]) {
			return true
		}
	}

	return false
}

func restFieldNames(block string, re *regexp.Regexp) map[string]struct{} {
	names := make(map[string]struct{})

	for _, line := range strings.Split(block, "\n") {
		if match := re.FindStringSubmatch(line); match != nil {
			names[match[1]] = struct{}{}
		}
	}

	return names
}

// hasParameterCoverage reports whether a block shows any parameter coverage
// under any supported convention, or failing that, mentions every declared
// parameter by name. Used by the extractor's too-short detection.
func hasParameterCoverage(block string, params []m.Parameter) bool {
	for _, conv := range []m.Convention{m.ConventionGoogle, m.ConventionNumpy, m.ConventionRest} {
		if len(documentedParams(block, conv)) > 0 {
			return true
		}
	}

	mentioned := 0

	for _, param := range params {
		if param.Name == "" || param.Name == "_" {
			mentioned++
			continue
		}

		if wordRe(param.Name).MatchString(block) {
			mentioned++
		}
	}

	return mentioned == len(params)
}

// hasStaleParameters reports whether the block documents a parameter name
// that is no longer declared.
func hasStaleParameters(block string, params []m.Parameter) bool {
	declared := make(map[string]struct{}, len(params))
	for _, param := range params {
		declared[param.Name] = struct{}{}
	}

	for _, conv := range []m.Convention{m.ConventionGoogle, m.ConventionNumpy, m.ConventionRest} {
		for name := range documentedParams(block, conv) {
			if _, ok := declared[name]; !ok {
				return true
			}
		}
	}

	return false
}

func wordRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
}
