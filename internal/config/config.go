// Package config loads and validates the doclens configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	m "github.com/doclens/doclens/internal/model"
)

const (
	// AppName is the application name.
	AppName = "doclens"
	// ConfigFileName is the config file name without extension.
	ConfigFileName = ".doclens"
)

// Config is the fully resolved runtime configuration. Field defaults come
// from Default(); files and flags only override.
type Config struct {
	// Style selects the documentation convention enforced by validation.
	Style string `mapstructure:"style" validate:"oneof=google numpy rest"`
	// Workers bounds concurrent file analysis.
	Workers int `mapstructure:"workers" validate:"gte=1,lte=64"`
	// Exclude holds regular expressions; files matching any are skipped.
	Exclude []string `mapstructure:"exclude"`

	Weights    Weights          `mapstructure:"weights"`
	Generation Generation       `mapstructure:"generation"`
	Providers  []ProviderConfig `mapstructure:"providers" validate:"min=1,dive"`
}

// Weights are the score deductions per issue severity.
type Weights struct {
	Error      int `mapstructure:"error" validate:"gte=0,lte=100"`
	Warning    int `mapstructure:"warning" validate:"gte=0,lte=100"`
	Suggestion int `mapstructure:"suggestion" validate:"gte=0,lte=100"`
}

// Generation tunes the provider orchestration.
type Generation struct {
	MaxRetries     int           `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	Backoff        time.Duration `mapstructure:"backoff" validate:"gte=0"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout" validate:"gt=0"`
	Cooldown       time.Duration `mapstructure:"cooldown" validate:"gt=0"`
	FailureWindow  time.Duration `mapstructure:"failure_window" validate:"gt=0"`
}

// ProviderConfig declares one generation backend. Kind "http" calls a
// chat-completions endpoint; kind "template" renders deterministic drafts
// locally and needs no credentials.
type ProviderConfig struct {
	ID       string `mapstructure:"id" validate:"required"`
	Kind     string `mapstructure:"kind" validate:"oneof=http template"`
	Priority int    `mapstructure:"priority" validate:"gte=0"`

	Endpoint  string `mapstructure:"endpoint" validate:"required_if=Kind http,omitempty,url"`
	Model     string `mapstructure:"model"`
	APIKeyEnv string `mapstructure:"api_key_env"`
}

// Default returns the configuration used when no file is present. The
// template provider ships enabled at the lowest priority so generation
// always has a working fallback.
func Default() Config {
	return Config{
		Style:   "google",
		Workers: 4,
		Weights: Weights{Error: 20, Warning: 8, Suggestion: 3},
		Generation: Generation{
			MaxRetries:     2,
			Backoff:        200 * time.Millisecond,
			AttemptTimeout: 30 * time.Second,
			Cooldown:       time.Minute,
			FailureWindow:  5 * time.Minute,
		},
		Providers: []ProviderConfig{
			{ID: "template", Kind: "template", Priority: 100},
		},
	}
}

// Load resolves the configuration. An explicit path wins; otherwise the
// current directory and the XDG config directory are searched for
// .doclens.yaml. A missing file is not an error, defaults apply.
func Load(explicitPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")

	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName(ConfigFileName)
		v.AddConfigPath(".")

		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicitPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks a configuration against the declared constraints plus the
// rules tags cannot express.
func Validate(cfg Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[string]struct{}, len(cfg.Providers))
	for _, p := range cfg.Providers {
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("invalid config: duplicate provider id %q", p.ID)
		}

		seen[p.ID] = struct{}{}
	}

	if _, err := cfg.ExcludePatterns(); err != nil {
		return err
	}

	return nil
}

// Convention returns the configured style as a model convention.
func (c Config) Convention() (m.Convention, error) {
	return m.ParseConvention(c.Style)
}

// ExcludePatterns compiles the exclude expressions.
func (c Config) ExcludePatterns() ([]*regexp.Regexp, error) {
	patterns := make([]*regexp.Regexp, 0, len(c.Exclude))

	for _, expr := range c.Exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}

		patterns = append(patterns, re)
	}

	return patterns, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("style", cfg.Style)
	v.SetDefault("workers", cfg.Workers)
	v.SetDefault("weights.error", cfg.Weights.Error)
	v.SetDefault("weights.warning", cfg.Weights.Warning)
	v.SetDefault("weights.suggestion", cfg.Weights.Suggestion)
	v.SetDefault("generation.max_retries", cfg.Generation.MaxRetries)
	v.SetDefault("generation.backoff", cfg.Generation.Backoff)
	v.SetDefault("generation.attempt_timeout", cfg.Generation.AttemptTimeout)
	v.SetDefault("generation.cooldown", cfg.Generation.Cooldown)
	v.SetDefault("generation.failure_window", cfg.Generation.FailureWindow)
}

func configDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", AppName), nil
}
