// Package main provides the interview_bot CLI: an adaptive technical interviewer that
// reads a resume, asks questions in the terminal and prints a hiring report.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootOptions holds the flags shared by every command.
type rootOptions struct {
	configPath string
	resume     string
	provider   string
	apiKey     string
	verbose    bool
	noColor    bool

	newGenerator generatorFactory
}

func newRootCmd(newGenerator generatorFactory) *cobra.Command {
	opts := &rootOptions{newGenerator: newGenerator}

	root := &cobra.Command{
		Use:           "interview_bot",
		Short:         "Adaptive technical interviewer",
		Long:          "interview_bot reads a candidate's resume, conducts an adaptive multi-turn technical interview in the terminal and produces a weighted hiring recommendation.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to a JSON or YAML config file")
	flags.StringVarP(&opts.resume, "resume", "r", "", "Path to the resume (.pdf, .html, .txt, .md); prompted for when omitted")
	flags.StringVar(&opts.provider, "provider", "", "LLM provider: gemini, openai, anthropic or ollama")
	flags.StringVar(&opts.apiKey, "api-key", "", "Provider API key (overrides GEMINI_API_KEY / OPENAI_API_KEY / ANTHROPIC_API_KEY)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print the structured resume, turn trace and full report")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable styled output")

	root.AddCommand(
		newInterviewCmd(opts),
		newParseResumeCmd(opts),
		newClassifyCmd(opts),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Errors are reported, never turned into a failing exit status.
	if err := newRootCmd(providerGenerator).Execute(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}
