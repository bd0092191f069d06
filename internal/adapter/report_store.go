package adapter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	m "github.com/doclens/doclens/internal/model"
	"gopkg.in/yaml.v3"
)

// ReportFormat selects the serialization of a persisted coverage report.
type ReportFormat string

const (
	// FormatJSON writes the report as indented JSON.
	FormatJSON ReportFormat = "json"
	// FormatYAML writes the report as YAML.
	FormatYAML ReportFormat = "yaml"
	// FormatMarkdown writes a human-readable Markdown table.
	FormatMarkdown ReportFormat = "markdown"
)

// ParseReportFormat maps a user-supplied format name to a ReportFormat.
func ParseReportFormat(name string) (ReportFormat, error) {
	switch ReportFormat(name) {
	case FormatJSON, FormatYAML, FormatMarkdown:
		return ReportFormat(name), nil
	}
	return "", fmt.Errorf("unknown report format %q (want json, yaml or markdown)", name)
}

// ReportStore persists coverage reports.
type ReportStore interface {
	Save(path m.Path, report m.CoverageReport, format ReportFormat) error
}

type reportStore struct{}

// NewReportStore constructs a ReportStore writing to the local filesystem.
func NewReportStore() ReportStore {
	return &reportStore{}
}

func (rs *reportStore) Save(path m.Path, report m.CoverageReport, format ReportFormat) error {
	var (
		data []byte
		err  error
	)

	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(report)
	case FormatMarkdown:
		data = []byte(renderMarkdown(report))
	default:
		data, err = json.MarshalIndent(report, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

func renderMarkdown(report m.CoverageReport) string {
	var sb strings.Builder

	sb.WriteString("# Documentation coverage\n\n")
	fmt.Fprintf(&sb, "Score: **%d/100** (%s) — %d of %d entities documented\n\n",
		report.Score, report.Level(), report.Documented, report.TotalEntities)
	fmt.Fprintf(&sb, "%s\n\n", report.Recommendation())

	sb.WriteString("| File | Entities | Documented | Coverage | Missing | Too short |\n")
	sb.WriteString("|------|---------:|-----------:|---------:|--------:|----------:|\n")

	for _, f := range report.Files {
		if f.ParseFailed {
			fmt.Fprintf(&sb, "| %s | — | — | parse error | — | — |\n", f.File)
			continue
		}

		fmt.Fprintf(&sb, "| %s | %d | %d | %.0f%% | %d | %d |\n",
			f.File, f.TotalEntities, f.Documented, f.Coverage, f.MissingDebt, f.TooShortDebt)
	}

	return sb.String()
}
