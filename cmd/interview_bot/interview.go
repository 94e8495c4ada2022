package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/Graceson27/interview-bot/internal/classify"
	"github.com/Graceson27/interview-bot/internal/config"
	"github.com/Graceson27/interview-bot/internal/observability"
	"github.com/Graceson27/interview-bot/internal/session"
)

const introPrompt = "Welcome! Please introduce yourself: your background, the projects you are proud of and what you would like to talk about."

func newInterviewCmd(opts *rootOptions) *cobra.Command {
	var (
		maxQuestions int
		metricsAddr  string
		transcript   string
	)

	cmd := &cobra.Command{
		Use:   "interview",
		Short: "Run an adaptive technical interview in the terminal",
		Long: `Reads the resume, structures and classifies it, then asks one question at a time.
Type exit, bye or stop to end the interview early. A hiring recommendation and
written feedback are printed at the end.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := newOutput(cmd.OutOrStdout(), opts.noColor)
			cfg, err := loadSettings(cmd, opts, func(c *config.Config) {
				flags := cmd.Flags()
				if flags.Changed("max-questions") {
					c.MaxQuestions = maxQuestions
				}
				if flags.Changed("metrics-addr") {
					c.MetricsAddr = metricsAddr
				}
				if flags.Changed("transcript") {
					c.Transcript = transcript
				}
			})
			if err != nil {
				out.errorf("%v", err)
				return nil
			}
			out.plain = cfg.NoColor

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if err := runInterview(ctx, cmd, opts, cfg, out); err != nil {
				out.errorf("%v", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxQuestions, "max-questions", "n", config.DefaultMaxQuestions, "Maximum number of questions to ask")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
	cmd.Flags().StringVarP(&transcript, "transcript", "t", "", "Write the interview transcript as JSON to this file")
	return cmd
}

func runInterview(ctx context.Context, cmd *cobra.Command, opts *rootOptions, cfg config.Config, out *output) error {
	logger := newLogger(cmd, cfg)
	slog.SetDefault(logger)

	metrics := observability.NewMetrics()
	if cfg.MetricsAddr != "" {
		server := observability.NewMetricsServer(cfg.MetricsAddr, metrics, logger)
		if err := server.Start(); err != nil {
			out.warn(fmt.Sprintf("metrics server not started: %v", err))
		} else {
			out.info(fmt.Sprintf("Serving metrics on http://%s/metrics", server.Addr()))
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()
		}
	}

	gen, closeGen := opts.newGenerator(ctx, cfg, metrics, logger)
	defer closeGen()

	console := session.NewConsoleAnswers(cmd.InOrStdin(), cmd.OutOrStdout())

	text, metadata, err := readResume(ctx, cfg.Resume, console, out)
	if err != nil {
		return err
	}
	logger.Info("resume loaded", "source", metadata.Source, "format", metadata.Format, "words", metadata.Words)

	out.info("Reading your resume...")
	analysis, err := session.Analyze(ctx, text, newStructurer(cfg, gen, logger), classify.NewClassifier(gen, logger), logger)
	if err != nil {
		return fmt.Errorf("resume analysis failed: %w", err)
	}

	var printer *observability.Printer
	if cfg.Verbose {
		printer = observability.NewPrinter(cmd.OutOrStdout())
		printer.PrintResumeProfile(analysis.Profile)
		printer.PrintClassification(analysis.Domain, analysis.ExperienceLevel)
	}

	out.title("Technical interview")
	out.info("Answer each question on one line. Type exit, bye or stop to finish early.")
	out.prompt(introPrompt)
	intro, err := console.NextAnswer(ctx)
	if err != nil {
		if errors.Is(err, session.ErrInputClosed) {
			return errors.New("no introduction given, interview not started")
		}
		return err
	}

	iv := session.New(session.Config{
		MaxQuestions:           cfg.MaxQuestions,
		MaxQuestionsPerTier:    cfg.MaxQuestionsPerTier,
		ProjectSwitchThreshold: cfg.ProjectSwitchThreshold,
		QuestionWordLimit:      cfg.QuestionWordLimit,
		Metrics:                metrics,
		Printer:                printer,
		Logger:                 logger,
	}, analysis, gen, console, out)

	result, runErr := iv.Run(ctx, intro)
	if runErr != nil {
		out.warn(fmt.Sprintf("interview ended early: %v", runErr))
	}
	printResult(out, printer, result)

	if cfg.Transcript != "" {
		if err := session.WriteTranscript(cfg.Transcript, result); err != nil {
			return err
		}
		out.info("Transcript written to " + cfg.Transcript)
	}
	return nil
}

func printResult(out *output, printer *observability.Printer, result *session.Result) {
	if result == nil {
		return
	}
	out.println("")
	out.title("Thank you for your time!")
	out.info(fmt.Sprintf("%d questions asked (%s)", len(result.Transcript), result.Reason))
	if printer != nil {
		printer.PrintReport(result.Report)
	}
	out.box("Interview feedback", result.Feedback)
	out.labeled("Recommendation", result.Recommendation)
}
