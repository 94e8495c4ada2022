// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/Graceson27/interview-bot/internal/ingestion"
	"github.com/Graceson27/interview-bot/internal/llm"
)

// Defaults for interview pacing.
const (
	DefaultMaxQuestions           = 12
	DefaultMaxQuestionsPerTier    = 3
	DefaultProjectSwitchThreshold = 2
	DefaultQuestionWordLimit      = 30
	DefaultResumeTokenBudget      = 6000
	DefaultLogLevel               = "info"
)

// Models overrides the model used for each tier. Empty fields keep the provider default.
type Models struct {
	Lite     string `json:"lite,omitempty" yaml:"lite,omitempty"`
	Standard string `json:"standard,omitempty" yaml:"standard,omitempty"`
	Advanced string `json:"advanced,omitempty" yaml:"advanced,omitempty"`
}

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Resume
	Resume string `json:"resume,omitempty" yaml:"resume,omitempty"` // Path or http(s) URL of the resume (.pdf, .html, .txt, .md)

	// LLM
	Provider          string `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=gemini openai anthropic ollama"`
	Models            Models `json:"models,omitempty" yaml:"models,omitempty"`
	APIKey            string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	OllamaURL         string `json:"ollama_url,omitempty" yaml:"ollama_url,omitempty" validate:"omitempty,url"`
	RequestsPerMinute int    `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty" validate:"gte=0"`
	ResumeTokenBudget int    `json:"resume_token_budget,omitempty" yaml:"resume_token_budget,omitempty" validate:"gte=0"`

	// Interview pacing
	MaxQuestions           int `json:"max_questions,omitempty" yaml:"max_questions,omitempty" validate:"gte=0"`
	MaxQuestionsPerTier    int `json:"max_questions_per_tier,omitempty" yaml:"max_questions_per_tier,omitempty" validate:"gte=0"`
	ProjectSwitchThreshold int `json:"project_switch_threshold,omitempty" yaml:"project_switch_threshold,omitempty" validate:"gte=0"`
	QuestionWordLimit      int `json:"question_word_limit,omitempty" yaml:"question_word_limit,omitempty" validate:"gte=0"`

	// Behavior
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`         // Print the boxed profile and turn trace
	NoColor     bool   `json:"no_color,omitempty" yaml:"no_color,omitempty"`       // Disable styled console output
	MetricsAddr string `json:"metrics_addr,omitempty" yaml:"metrics_addr,omitempty"` // Serve Prometheus metrics on this address
	Transcript  string `json:"transcript,omitempty" yaml:"transcript,omitempty"`     // Write the conversation log here at the end
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:               string(llm.ProviderGemini),
		OllamaURL:              llm.DefaultOllamaURL,
		ResumeTokenBudget:      DefaultResumeTokenBudget,
		MaxQuestions:           DefaultMaxQuestions,
		MaxQuestionsPerTier:    DefaultMaxQuestionsPerTier,
		ProjectSwitchThreshold: DefaultProjectSwitchThreshold,
		QuestionWordLimit:      DefaultQuestionWordLimit,
		LogLevel:               DefaultLogLevel,
	}
}

// LoadConfig loads configuration from a JSON file, or YAML when the extension is
// .yaml or .yml. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' validation (value %v)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.MaxQuestionsPerTier > 0 && c.MaxQuestions > 0 && c.MaxQuestions < c.MaxQuestionsPerTier {
		return fmt.Errorf("config error: 'max_questions' (%d) must be at least 'max_questions_per_tier' (%d)",
			c.MaxQuestions, c.MaxQuestionsPerTier)
	}

	if c.Resume != "" && !ingestion.IsURL(c.Resume) {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	fillString(&result.Resume, defaults.Resume)
	fillString(&result.Provider, defaults.Provider)
	fillString(&result.Models.Lite, defaults.Models.Lite)
	fillString(&result.Models.Standard, defaults.Models.Standard)
	fillString(&result.Models.Advanced, defaults.Models.Advanced)
	fillString(&result.APIKey, defaults.APIKey)
	fillString(&result.OllamaURL, defaults.OllamaURL)
	fillString(&result.LogLevel, defaults.LogLevel)
	fillString(&result.MetricsAddr, defaults.MetricsAddr)
	fillString(&result.Transcript, defaults.Transcript)

	// Int fields: use default if zero
	fillInt(&result.RequestsPerMinute, defaults.RequestsPerMinute)
	fillInt(&result.ResumeTokenBudget, defaults.ResumeTokenBudget)
	fillInt(&result.MaxQuestions, defaults.MaxQuestions)
	fillInt(&result.MaxQuestionsPerTier, defaults.MaxQuestionsPerTier)
	fillInt(&result.ProjectSwitchThreshold, defaults.ProjectSwitchThreshold)
	fillInt(&result.QuestionWordLimit, defaults.QuestionWordLimit)

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func fillString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func fillInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}

// LLMConfig builds the provider configuration, applying any model overrides.
func (c *Config) LLMConfig() (*llm.Config, error) {
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil {
		return nil, err
	}
	cfg := llm.ConfigFor(provider)
	overrides := map[llm.ModelTier]string{
		llm.TierLite:     c.Models.Lite,
		llm.TierStandard: c.Models.Standard,
		llm.TierAdvanced: c.Models.Advanced,
	}
	for tier, model := range overrides {
		if model != "" {
			cfg.Models[tier] = model
		}
	}
	if c.OllamaURL != "" {
		cfg.OllamaURL = c.OllamaURL
	}
	return cfg, nil
}

// ResolveAPIKey returns the configured key, or the provider's environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	provider, err := llm.ParseProvider(c.Provider)
	if err != nil || provider.APIKeyEnv() == "" {
		return ""
	}
	return os.Getenv(provider.APIKeyEnv())
}

// SlogLevel maps LogLevel onto a slog level. Verbose forces debug.
func (c *Config) SlogLevel() slog.Level {
	if c.Verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
