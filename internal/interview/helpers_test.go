package interview

import (
	"context"
	"errors"
	"strings"

	"github.com/Graceson27/interview-bot/internal/llm"
)

// scriptedGenerator answers with canned responses in order, repeating the last one.
type scriptedGenerator struct {
	responses []string
	err       error
	requests  []llm.Request
}

func (g *scriptedGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", errors.New("no scripted response")
	}
	idx := len(g.requests) - 1
	if idx >= len(g.responses) {
		idx = len(g.responses) - 1
	}
	return g.responses[idx], nil
}

func (g *scriptedGenerator) lastPrompt() string {
	if len(g.requests) == 0 {
		return ""
	}
	return g.requests[len(g.requests)-1].Prompt
}

// echoGenerator builds a question that quotes the project named in a project prompt.
type echoGenerator struct{}

func (echoGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	const marker = `project "`
	if i := strings.Index(req.Prompt, marker); i >= 0 {
		rest := req.Prompt[i+len(marker):]
		if j := strings.Index(rest, `"`); j >= 0 {
			return "How did you scale " + rest[:j] + "?", nil
		}
	}
	return "Tell me more?", nil
}
