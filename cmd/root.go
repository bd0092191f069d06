// Package cmd provides the root command and CLI setup for doclens.
package cmd

import (
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/doclens/doclens/internal/adapter"
	"github.com/doclens/doclens/internal/config"
	"github.com/doclens/doclens/internal/controller"
	"github.com/doclens/doclens/internal/domain"
	m "github.com/doclens/doclens/internal/model"
)

var cfg config.Config
var convention m.Convention
var logger *log.Logger
var reportStore adapter.ReportStore
var registry *domain.ProviderRegistry
var workflow domain.Workflow
var ui controller.UI

var configFlag string
var verboseFlag bool
var styleFlag string
var excludeFlags []string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doclens [paths...]",
		Short: "Go documentation coverage auditor",
		Long: `Doclens audits the documentation coverage of Go source trees. It finds
undocumented and under-documented declarations, validates existing doc
comments against a style convention, repairs mechanical style slips, and
drafts missing documentation through configurable generation providers.

Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./pkg/...      recursively scan pkg directory
  - ./cmd ./pkg    scan multiple directories`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return buildStack(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudit(cmd.Context(), parsePaths(args))
		},
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "path to config file (default .doclens.yaml)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&styleFlag, "style", "", "documentation convention: google, numpy or rest")
	cmd.PersistentFlags().StringArrayVarP(&excludeFlags, "exclude", "x", nil, "exclude files matching regex (can be repeated)")

	return cmd
}

// buildStack loads the configuration and wires the full adapter and domain
// stack into the package-level variables the commands run against.
func buildStack(cmd *cobra.Command) error {
	loaded, err := config.Load(configFlag)
	if err != nil {
		return err
	}

	cfg = loaded

	if styleFlag != "" {
		cfg.Style = styleFlag
	}

	cfg.Exclude = append(cfg.Exclude, excludeFlags...)

	convention, err = cfg.Convention()
	if err != nil {
		return err
	}

	patterns, err := cfg.ExcludePatterns()
	if err != nil {
		return err
	}

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}

	policy := domain.DefaultRulePolicy()
	policy.ErrorWeight = cfg.Weights.Error
	policy.WarningWeight = cfg.Weights.Warning
	policy.SuggestionWeight = cfg.Weights.Suggestion

	validator := domain.NewValidator(policy)
	extractor := domain.NewExtractor(adapter.NewLocalGoFileAdapter())
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	var (
		records  []m.ProviderRecord
		backends []adapter.GenerationBackend
	)

	for _, p := range cfg.Providers {
		records = append(records, m.ProviderRecord{ID: p.ID, Priority: p.Priority})

		switch p.Kind {
		case "http":
			client := &http.Client{Timeout: cfg.Generation.AttemptTimeout}
			backends = append(backends, adapter.NewHTTPBackend(p.ID, p.Endpoint, p.Model, p.APIKeyEnv, client))
		default:
			backends = append(backends, adapter.NewTemplateBackend(p.ID))
		}
	}

	registry = domain.NewProviderRegistry(records, cfg.Generation.Cooldown, cfg.Generation.FailureWindow)

	orchestrator := domain.NewOrchestrator(registry, backends,
		domain.WithMaxRetries(cfg.Generation.MaxRetries),
		domain.WithBackoff(cfg.Generation.Backoff),
		domain.WithAttemptTimeout(cfg.Generation.AttemptTimeout),
		domain.WithLogger(logger),
	)

	reportStore = adapter.NewReportStore()
	ui = controller.NewUI(cmd, controller.IsTTY(os.Stdout))

	workflow = domain.NewWorkflow(fsAdapter, extractor, validator, orchestrator, convention,
		domain.WithWorkers(cfg.Workers),
		domain.WithExcludes(patterns),
		domain.WithWorkflowLogger(logger),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
