package domain

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/doclens/doclens/internal/adapter"
	m "github.com/doclens/doclens/internal/model"
)

// GeneratedDoc is one generation outcome for an indebted entity. Failed
// generations keep their attempt trail so the caller can explain what was
// tried.
type GeneratedDoc struct {
	Entity     m.Entity
	Text       string
	ProviderID string
	Score      int
	Issues     []m.Issue
	Fixes      []m.FixRecord
	Success    bool
	Trail      []m.Attempt
}

// FileFix records the mechanical repairs applied (or proposed) for one
// documented entity.
type FileFix struct {
	File    m.Path
	Entity  string
	Fixes   []m.FixRecord
	Applied bool
}

// Workflow exposes the auditing operations the commands are built on. Every
// operation starts from a fresh scan; nothing is cached between calls.
type Workflow interface {
	// Audit analyzes the roots and aggregates a coverage report.
	Audit(ctx context.Context, roots []m.Path) (m.CoverageReport, []m.FileAnalysis, error)

	// Debt analyzes the roots and returns the flat debt inventory in
	// file-then-line order.
	Debt(ctx context.Context, roots []m.Path) ([]m.Debt, []m.FileAnalysis, error)

	// Generate drafts documentation for every indebted entity using the
	// configured providers. Entities run through the same bounded worker
	// pool as analysis; results follow the analysis order regardless of
	// scheduling, and a provider failure yields a failed entry, never an
	// aborted batch.
	Generate(ctx context.Context, roots []m.Path) ([]GeneratedDoc, error)

	// Fix applies mechanical repairs to existing documentation blocks. With
	// write=false the repairs are only reported.
	Fix(ctx context.Context, roots []m.Path, write bool) ([]FileFix, error)
}

type workflow struct {
	fs           adapter.SourceFSAdapter
	extractor    Extractor
	validator    *Validator
	orchestrator Orchestrator
	convention   m.Convention
	exclude      []*regexp.Regexp
	workers      int
	contextLines int
	logger       *log.Logger
}

// WorkflowOption customizes a workflow.
type WorkflowOption func(*workflow)

// WithWorkers bounds the number of files analyzed concurrently.
func WithWorkers(n int) WorkflowOption {
	return func(w *workflow) {
		if n > 0 {
			w.workers = n
		}
	}
}

// WithExcludes drops files matching any of the patterns from scans.
func WithExcludes(patterns []*regexp.Regexp) WorkflowOption {
	return func(w *workflow) { w.exclude = patterns }
}

// WithWorkflowLogger sets the structured logger.
func WithWorkflowLogger(logger *log.Logger) WorkflowOption {
	return func(w *workflow) { w.logger = logger }
}

// NewWorkflow wires the auditing workflow. The orchestrator may be nil when
// generation is not needed; Generate then fails fast.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	extractor Extractor,
	validator *Validator,
	orchestrator Orchestrator,
	convention m.Convention,
	opts ...WorkflowOption,
) Workflow {
	w := &workflow{
		fs:           fs,
		extractor:    extractor,
		validator:    validator,
		orchestrator: orchestrator,
		convention:   convention,
		workers:      4,
		contextLines: 30,
		logger:       log.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

func (w *workflow) Audit(ctx context.Context, roots []m.Path) (m.CoverageReport, []m.FileAnalysis, error) {
	analyses, err := w.analyze(ctx, roots)
	if err != nil {
		return m.CoverageReport{}, nil, err
	}

	return BuildCoverageReport(analyses), analyses, nil
}

func (w *workflow) Debt(ctx context.Context, roots []m.Path) ([]m.Debt, []m.FileAnalysis, error) {
	analyses, err := w.analyze(ctx, roots)
	if err != nil {
		return nil, nil, err
	}

	var debts []m.Debt
	for _, analysis := range analyses {
		debts = append(debts, analysis.Debts...)
	}

	sort.SliceStable(debts, func(i, j int) bool {
		if debts[i].File != debts[j].File {
			return debts[i].File < debts[j].File
		}

		return debts[i].Line < debts[j].Line
	})

	return debts, analyses, nil
}

func (w *workflow) Generate(ctx context.Context, roots []m.Path) ([]GeneratedDoc, error) {
	if w.orchestrator == nil {
		return nil, fmt.Errorf("no generation providers configured")
	}

	analyses, err := w.analyze(ctx, roots)
	if err != nil {
		return nil, err
	}

	jobs := w.generationJobs(analyses)
	results := make([]GeneratedDoc, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = w.generateOne(ctx, job.entity, job.src)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// generationJob pairs one indebted entity with its file's source text.
type generationJob struct {
	entity m.Entity
	src    []byte
}

// generationJobs flattens the analyses into the ordered list of entities
// needing a draft, reading each file once. Unreadable files are skipped
// with a warning.
func (w *workflow) generationJobs(analyses []m.FileAnalysis) []generationJob {
	var jobs []generationJob

	for _, analysis := range analyses {
		if analysis.ParseError != nil {
			continue
		}

		indebted := make(map[string]struct{}, len(analysis.Debts))
		for _, debt := range analysis.Debts {
			indebted[debt.Entity] = struct{}{}
		}

		var src []byte

		for _, entity := range analysis.Entities {
			if _, ok := indebted[entity.QualifiedName]; !ok {
				continue
			}

			if src == nil {
				read, err := w.fs.ReadFile(analysis.File)
				if err != nil {
					w.logger.Warn("skipping file", "file", analysis.File, "error", err)
					break
				}

				src = read
			}

			jobs = append(jobs, generationJob{entity: entity, src: src})
		}
	}

	return jobs
}

// generateOne runs the full pipeline for one entity: generate, validate the
// draft, repair it mechanically, and score the repaired text.
func (w *workflow) generateOne(ctx context.Context, entity m.Entity, src []byte) GeneratedDoc {
	contextText := w.contextWindow(src, entity)

	result := w.orchestrator.Generate(ctx, entity, contextText, w.convention)
	if !result.Success {
		return GeneratedDoc{Entity: entity, Trail: result.Trail}
	}

	text, fixes := Autofix(result.Text, entity)
	score, issues := w.validator.Validate(entity, text, w.convention)

	return GeneratedDoc{
		Entity:     entity,
		Text:       text,
		ProviderID: result.ProviderID,
		Score:      score,
		Issues:     issues,
		Fixes:      fixes,
		Success:    true,
		Trail:      result.Trail,
	}
}

// contextWindow slices the source lines surrounding the entity declaration
// that accompany the signature in a generation request.
func (w *workflow) contextWindow(src []byte, entity m.Entity) string {
	lines := strings.Split(string(src), "\n")

	start := entity.StartLine - 1
	if start < 0 {
		start = 0
	}

	end := entity.EndLine
	if end > start+w.contextLines {
		end = start + w.contextLines
	}

	if end > len(lines) {
		end = len(lines)
	}

	return strings.Join(lines[start:end], "\n")
}

func (w *workflow) Fix(ctx context.Context, roots []m.Path, write bool) ([]FileFix, error) {
	analyses, err := w.analyze(ctx, roots)
	if err != nil {
		return nil, err
	}

	var results []FileFix

	for _, analysis := range analyses {
		if analysis.ParseError != nil {
			continue
		}

		if err := ctx.Err(); err != nil {
			return results, err
		}

		fixes, err := w.fixFile(analysis, write)
		if err != nil {
			return results, err
		}

		results = append(results, fixes...)
	}

	return results, nil
}

// blockEdit is one pending doc-comment replacement inside a file.
type blockEdit struct {
	startLine int // 1-indexed, inclusive
	endLine   int
	lines     []string
}

func (w *workflow) fixFile(analysis m.FileAnalysis, write bool) ([]FileFix, error) {
	var (
		results []FileFix
		edits   []blockEdit
	)

	for _, entity := range analysis.Entities {
		if strings.TrimSpace(entity.Doc) == "" || entity.DocStartLine == 0 {
			continue
		}

		fixed, fixes := Autofix(entity.Doc, entity)
		if len(fixes) == 0 {
			continue
		}

		results = append(results, FileFix{
			File:    analysis.File,
			Entity:  entity.QualifiedName,
			Fixes:   fixes,
			Applied: write,
		})

		if write {
			edits = append(edits, blockEdit{
				startLine: entity.DocStartLine,
				endLine:   entity.DocEndLine,
				lines:     commentLines(fixed, entity.Indent),
			})
		}
	}

	if !write || len(edits) == 0 {
		return results, nil
	}

	if err := w.applyEdits(analysis.File, edits); err != nil {
		return nil, fmt.Errorf("failed to rewrite %s: %w", analysis.File, err)
	}

	return results, nil
}

// applyEdits rewrites the file with the pending block replacements. Edits are
// applied bottom-up so earlier line numbers stay valid.
func (w *workflow) applyEdits(file m.Path, edits []blockEdit) error {
	src, err := w.fs.ReadFile(file)
	if err != nil {
		return err
	}

	perm := os.FileMode(0o644)
	if info, err := w.fs.FileInfo(file); err == nil {
		perm = info.Mode().Perm()
	}

	lines := strings.Split(string(src), "\n")

	sort.Slice(edits, func(i, j int) bool { return edits[i].startLine > edits[j].startLine })

	for _, edit := range edits {
		if edit.startLine < 1 || edit.endLine > len(lines) || edit.startLine > edit.endLine {
			continue
		}

		rebuilt := make([]string, 0, len(lines)-(edit.endLine-edit.startLine+1)+len(edit.lines))
		rebuilt = append(rebuilt, lines[:edit.startLine-1]...)
		rebuilt = append(rebuilt, edit.lines...)
		rebuilt = append(rebuilt, lines[edit.endLine:]...)
		lines = rebuilt
	}

	return w.fs.WriteFile(file, []byte(strings.Join(lines, "\n")), perm)
}

// commentLines renders a repaired block back into line-comment form at the
// declaration's indentation.
func commentLines(block, indent string) []string {
	var out []string

	for _, line := range strings.Split(block, "\n") {
		content := strings.TrimPrefix(line, indent)
		if strings.TrimSpace(content) == "" {
			out = append(out, indent+"//")
			continue
		}

		out = append(out, indent+"// "+content)
	}

	return out
}

// analyze scans the roots and produces one FileAnalysis per source file. Files
// run through a bounded worker pool; a file that fails to parse contributes a
// ParseError entry without disturbing its siblings, and the result order
// matches the sorted scan order regardless of scheduling.
func (w *workflow) analyze(ctx context.Context, roots []m.Path) ([]m.FileAnalysis, error) {
	files, err := w.fs.Collect(roots, w.exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to collect source files: %w", err)
	}

	w.logger.Debug("collected source files", "count", len(files))

	analyses := make([]m.FileAnalysis, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.workers)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			analyses[i] = w.analyzeFile(file)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return analyses, nil
}

func (w *workflow) analyzeFile(file m.Path) m.FileAnalysis {
	analysis := m.FileAnalysis{File: file}

	src, err := w.fs.ReadFile(file)
	if err != nil {
		analysis.ParseError = &m.ParseError{File: file, Message: err.Error()}
		return analysis
	}

	entities, debts, parseErr := w.extractor.Extract(src, file)
	if parseErr != nil {
		w.logger.Warn("file failed to parse", "file", file, "line", parseErr.Line)

		analysis.ParseError = parseErr

		return analysis
	}

	analysis.Entities = entities
	analysis.Debts = debts

	for _, entity := range entities {
		if strings.TrimSpace(entity.Doc) == "" {
			continue
		}

		score, issues := w.validator.Validate(entity, entity.Doc, w.convention)
		analysis.Validations = append(analysis.Validations, m.EntityValidation{
			Entity: entity.QualifiedName,
			Score:  score,
			Issues: issues,
		})
	}

	return analysis
}
