package model

import "fmt"

// Convention selects the section layout of a documentation block. The three
// conventions differ only in header syntax, not in which facts must be
// documented.
type Convention string

const (
	// ConventionGoogle uses "Args:", "Returns:" and "Raises:" headers.
	ConventionGoogle Convention = "google"
	// ConventionNumpy uses dash-underlined "Parameters" style sections.
	ConventionNumpy Convention = "numpy"
	// ConventionRest uses ":param:", ":return:" and ":raises:" fields.
	ConventionRest Convention = "rest"
)

// ParseConvention maps a user-supplied style name to a Convention.
func ParseConvention(name string) (Convention, error) {
	switch Convention(name) {
	case ConventionGoogle, ConventionNumpy, ConventionRest:
		return Convention(name), nil
	}
	return "", fmt.Errorf("unknown style convention %q (want google, numpy or rest)", name)
}

// Instructions returns the layout description sent to generation backends.
func (c Convention) Instructions() string {
	switch c {
	case ConventionNumpy:
		return `NumPy style:
- Summary line in imperative mood, ending with a period
- Blank line
- Parameters section underlined with dashes, entries as "name : type"
- Returns section underlined with dashes
- Raises section underlined with dashes, if applicable`
	case ConventionRest:
		return `reStructuredText style:
- Summary line in imperative mood, ending with a period
- Blank line
- :param name: description, one per parameter
- :return: description
- :raises ErrorType: description, if applicable`
	default:
		return `Google style:
- Summary line in imperative mood, ending with a period
- Blank line
- Args: section with one indented "name: description" entry per parameter
- Returns: section describing the result
- Raises: section if applicable`
	}
}
