package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	m "github.com/doclens/doclens/internal/model"
)

// Autofix applies only mechanical, meaning-preserving repairs to a
// documentation block. It never invents summaries, sections or parameter
// descriptions; content gaps belong to generation, not fixing. When the
// block is not recognizable as documentation at all, no edit is applied.
//
// Autofix is idempotent: applying it to its own output yields the same
// text and an empty fix list.
func Autofix(block string, entity m.Entity) (string, []m.FixRecord) {
	if !recognizableBlock(block) {
		return block, nil
	}

	lines := strings.Split(block, "\n")

	var fixes []m.FixRecord

	lines, fixes = reindent(lines, entity.Indent, fixes)
	lines, fixes = collapseBlankRuns(lines, fixes)
	lines, fixes = fixSummary(lines, fixes)
	lines, fixes = ensureBlankAfterSummary(lines, fixes)

	return strings.Join(lines, "\n"), fixes
}

// recognizableBlock requires at least one letter or digit somewhere;
// anything less is not a documentation block and uncertainty always
// resolves to "no edit".
func recognizableBlock(block string) bool {
	for _, r := range block {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

// reindent aligns every non-blank line with the entity's indentation,
// preserving relative indentation inside the block.
func reindent(lines []string, indent string, fixes []m.FixRecord) ([]string, []m.FixRecord) {
	common := commonIndent(lines)

	changed := false
	out := make([]string, len(lines))

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			out[i] = ""
			if line != "" {
				changed = true
			}

			continue
		}

		rebased := indent + strings.TrimPrefix(line, common)
		out[i] = rebased

		if rebased != line {
			changed = true
		}
	}

	if changed {
		fixes = append(fixes, m.FixRecord{
			Kind:   m.FixReindent,
			Detail: "aligned block lines with the declaration indentation",
		})
	}

	return out, fixes
}

func commonIndent(lines []string) string {
	common := ""
	first := true

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]

		if first {
			common = indent
			first = false

			continue
		}

		for !strings.HasPrefix(indent, common) {
			common = common[:len(common)-1]
		}
	}

	return common
}

func collapseBlankRuns(lines []string, fixes []m.FixRecord) ([]string, []m.FixRecord) {
	out := make([]string, 0, len(lines))

	collapsed := false
	blanks := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks > 1 {
				collapsed = true
				continue
			}
		} else {
			blanks = 0
		}

		out = append(out, line)
	}

	if collapsed {
		fixes = append(fixes, m.FixRecord{
			Kind:   m.FixCollapseBlankLines,
			Detail: "collapsed consecutive blank lines",
		})
	}

	return out, fixes
}

func fixSummary(lines []string, fixes []m.FixRecord) ([]string, []m.FixRecord) {
	idx := firstContentLine(lines)
	if idx < 0 {
		return lines, fixes
	}

	line := lines[idx]
	indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
	summary := strings.TrimRight(line[len(indent):], " \t")

	if r, size := utf8.DecodeRuneInString(summary); unicode.IsLetter(r) && !unicode.IsUpper(r) {
		summary = string(unicode.ToUpper(r)) + summary[size:]
		fixes = append(fixes, m.FixRecord{
			Kind:   m.FixCapitalizeSummary,
			Detail: "capitalized the first letter of the summary",
		})
	}

	if !strings.HasSuffix(summary, ".") && !strings.HasSuffix(summary, "?") && !strings.HasSuffix(summary, "!") {
		summary += "."
		fixes = append(fixes, m.FixRecord{
			Kind:   m.FixAppendPeriod,
			Detail: "appended a period to the summary line",
		})
	}

	lines[idx] = indent + summary

	return lines, fixes
}

func ensureBlankAfterSummary(lines []string, fixes []m.FixRecord) ([]string, []m.FixRecord) {
	idx := firstContentLine(lines)
	if idx < 0 || idx+1 >= len(lines) {
		return lines, fixes
	}

	if strings.TrimSpace(lines[idx+1]) == "" {
		return lines, fixes
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:idx+1]...)
	out = append(out, "")
	out = append(out, lines[idx+1:]...)

	fixes = append(fixes, m.FixRecord{
		Kind:   m.FixInsertBlankLine,
		Detail: "inserted a blank line between summary and body",
	})

	return out, fixes
}

func firstContentLine(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}

	return -1
}
