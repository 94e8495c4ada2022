package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Graceson27/interview-bot/internal/config"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/observability"
)

const resumeText = `Jane Doe
Platform engineer with 3 years of experience.

Projects
- Alpha: rate limiter in Go running on Kubernetes with Docker and Terraform
`

const profileJSON = `{
  "skills": ["Go", "Docker", "Kubernetes"],
  "projects": [{"name": "Alpha", "description": "Rate limiter", "technologies": ["Go", "Kubernetes"]}],
  "internships": [],
  "education": [{"institution": "State University", "degree": "BSc", "year": "2021"}],
  "domain_specific_knowledge": ["distributed systems"]
}`

// cannedGenerator answers each purpose with a fixed response.
type cannedGenerator struct {
	structure string
}

func (g cannedGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	switch req.Purpose {
	case llm.PurposeQuestion:
		return "How did you design Alpha?", nil
	case llm.PurposeScore:
		return "0.7", nil
	case llm.PurposeFeedback:
		return "Solid answers about Alpha.", nil
	case llm.PurposeStructure:
		return g.structure, nil
	case llm.PurposeClassify:
		if strings.Contains(req.Prompt, "engineering domain") {
			return "devops", nil
		}
		return "experienced", nil
	}
	return "", llm.ErrUnavailable
}

func staticGenerator(gen llm.Generator) generatorFactory {
	return func(context.Context, config.Config, *observability.Metrics, *slog.Logger) (llm.Generator, func()) {
		return gen, func() {}
	}
}

// writeResume writes resume text into a temp dir and returns its path.
func writeResume(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// execute runs the CLI with stdin and returns what it wrote to stdout and stderr.
func execute(t *testing.T, gen llm.Generator, stdin string, args ...string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd(staticGenerator(gen))
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return stdout.String(), stderr.String()
}
