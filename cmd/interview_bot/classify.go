package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Graceson27/interview-bot/internal/classify"
	"github.com/Graceson27/interview-bot/internal/session"
)

func newClassifyCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify",
		Short: "Classify a resume's engineering domain and experience level",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := newOutput(cmd.OutOrStdout(), opts.noColor)
			cfg, err := loadSettings(cmd, opts)
			if err != nil {
				out.errorf("%v", err)
				return nil
			}
			out.plain = cfg.NoColor

			ctx := cmd.Context()
			logger := newLogger(cmd, cfg)
			gen, closeGen := opts.newGenerator(ctx, cfg, nil, logger)
			defer closeGen()

			text, _, err := readResume(ctx, cfg.Resume, session.NewConsoleAnswers(cmd.InOrStdin(), nil), out)
			if err != nil {
				out.errorf("%v", err)
				return nil
			}

			result := classify.NewClassifier(gen, logger).Classify(ctx, text)
			out.labeled("Domain", result.Domain)
			out.labeled("Experience", string(result.ExperienceLevel))
			if cfg.Verbose {
				for _, m := range classify.KeywordMatches(text) {
					out.info(fmt.Sprintf("  keyword hits %-16s %d", m.Domain, m.Hits))
				}
			}
			return nil
		},
	}
}
