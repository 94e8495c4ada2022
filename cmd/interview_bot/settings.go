package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Graceson27/interview-bot/internal/config"
	"github.com/Graceson27/interview-bot/internal/ingestion"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/observability"
	"github.com/Graceson27/interview-bot/internal/parsing"
	"github.com/Graceson27/interview-bot/internal/session"
)

// generatorFactory builds the text generation service and its cleanup function.
type generatorFactory func(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *slog.Logger) (llm.Generator, func())

// loadSettings merges the config file, CLI flags and defaults. Flags win only when
// they were set explicitly. overrides apply command-specific flags the same way.
func loadSettings(cmd *cobra.Command, opts *rootOptions, overrides ...func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("resume") {
		cfg.Resume = opts.resume
	}
	if flags.Changed("provider") {
		cfg.Provider = strings.ToLower(opts.provider)
	}
	if flags.Changed("api-key") {
		cfg.APIKey = opts.apiKey
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("no-color") {
		cfg.NoColor = opts.noColor
	}
	for _, override := range overrides {
		override(&cfg)
	}

	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// newLogger builds the text logger on stderr at the configured level.
func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// providerGenerator connects to the configured provider. When no client can be built
// the interview still runs on built-in fallbacks.
func providerGenerator(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *slog.Logger) (llm.Generator, func()) {
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		logger.Warn("text generation unavailable, using built-in fallbacks", "error", err)
		return llm.Unavailable{}, func() {}
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.ResolveAPIKey())
	if err != nil {
		logger.Warn("text generation unavailable, using built-in fallbacks",
			"provider", llmCfg.Provider, "key_env", llmCfg.Provider.APIKeyEnv(), "error", err)
		return llm.Unavailable{}, func() {}
	}

	serviceOpts := []llm.ServiceOption{
		llm.WithRequestsPerMinute(cfg.RequestsPerMinute),
		llm.WithLogger(logger),
	}
	if metrics != nil {
		serviceOpts = append(serviceOpts, llm.WithObserver(metrics))
	}
	svc := llm.NewService(client, serviceOpts...)
	return svc, func() { _ = svc.Close() }
}

// newStructurer builds the resume structurer with the configured token budget.
func newStructurer(cfg config.Config, gen llm.Generator, logger *slog.Logger) *parsing.Structurer {
	opts := []parsing.Option{parsing.WithLogger(logger)}
	budget, err := parsing.NewTokenBudget(cfg.ResumeTokenBudget)
	if err != nil {
		logger.Warn("resume token budget disabled", "error", err)
	} else {
		opts = append(opts, parsing.WithTokenBudget(budget))
	}
	return parsing.NewStructurer(gen, opts...)
}

// readResume extracts the resume at path or URL, asking for one on input when none is set.
func readResume(ctx context.Context, path string, input session.AnswerSource, out *output) (string, *ingestion.Metadata, error) {
	for strings.TrimSpace(path) == "" {
		out.prompt("Path or URL of your resume (.pdf, .html, .txt, .md):")
		answer, err := input.NextAnswer(ctx)
		if err != nil {
			return "", nil, fmt.Errorf("no resume path given: %w", err)
		}
		path = strings.Trim(answer, `"' `)
	}

	text, metadata, err := ingestion.Load(ctx, path)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read resume: %w", err)
	}
	return text, metadata, nil
}
