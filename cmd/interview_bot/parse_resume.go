package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Graceson27/interview-bot/internal/parsing"
	"github.com/Graceson27/interview-bot/internal/schemas"
	"github.com/Graceson27/interview-bot/internal/session"
)

func newParseResumeCmd(opts *rootOptions) *cobra.Command {
	var outputFile string

	cmd := &cobra.Command{
		Use:   "parse-resume",
		Short: "Structure a resume into ResumeProfile JSON",
		Long:  "Extract the text of a resume and structure it into ResumeProfile JSON that validates against the resume_profile schema.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := newOutput(cmd.ErrOrStderr(), opts.noColor)
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

			profile, err := newStructurer(cfg, gen, logger).Structure(ctx, text)
			if err != nil {
				// Distinguish between validation errors (data doesn't match schema) and schema load errors
				var validationErr *schemas.ValidationError
				var schemaLoadErr *schemas.SchemaLoadError
				var parseErr *parsing.ParseError
				switch {
				case errors.As(err, &validationErr):
					out.errorf("structured resume does not validate against schema: %v", err)
				case errors.As(err, &schemaLoadErr):
					out.errorf("could not validate structured resume (schema loading failed): %v", err)
				case errors.As(err, &parseErr):
					out.errorf("model response was not a JSON object: %v", err)
				default:
					out.errorf("failed to structure resume: %v", err)
				}
				return nil
			}

			jsonBytes, err := json.MarshalIndent(profile, "", "  ")
			if err != nil {
				out.errorf("failed to marshal JSON: %v", err)
				return nil
			}

			if outputFile == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(jsonBytes))
				return nil
			}
			if err := os.WriteFile(outputFile, jsonBytes, 0644); err != nil {
				out.errorf("failed to write output file: %v", err)
				return nil
			}
			out.info("Output: " + outputFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write the JSON here instead of stdout")
	return cmd
}
