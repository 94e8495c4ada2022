package session

import (
	"context"
	"strings"
	"sync"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/types"
)

const profileJSON = `{
  "skills": ["Go", "Docker"],
  "projects": [{"name": "Alpha", "description": "Rate limiter", "technologies": ["Go"]}],
  "internships": [{"company": "Acme", "role": "SRE intern"}],
  "education": [{"institution": "State University", "degree": "BSc", "year": "2024"}],
  "domain_specific_knowledge": ["distributed systems"]
}`

// routedGenerator answers each purpose with a canned response. Safe for the
// concurrent calls made by Analyze.
type routedGenerator struct {
	mu        sync.Mutex
	question  string
	score     string
	feedback  string
	domain    string
	level     string
	structure string
	purposes  []llm.Purpose
}

func newRoutedGenerator() *routedGenerator {
	return &routedGenerator{
		score:     "0.8",
		feedback:  "Great interview.",
		domain:    "devops",
		level:     "fresher",
		structure: profileJSON,
	}
}

func (g *routedGenerator) Generate(_ context.Context, req llm.Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.purposes = append(g.purposes, req.Purpose)

	switch req.Purpose {
	case llm.PurposeQuestion:
		if g.question != "" {
			return g.question, nil
		}
		const marker = `project "`
		if i := strings.Index(req.Prompt, marker); i >= 0 {
			rest := req.Prompt[i+len(marker):]
			return "How did you design " + rest[:strings.Index(rest, `"`)] + "?", nil
		}
		return "Tell me more about that?", nil
	case llm.PurposeScore:
		return g.score, nil
	case llm.PurposeFeedback:
		return g.feedback, nil
	case llm.PurposeStructure:
		return g.structure, nil
	case llm.PurposeClassify:
		if strings.Contains(req.Prompt, "engineering domain") {
			return g.domain, nil
		}
		return g.level, nil
	}
	return "", llm.ErrUnavailable
}

func (g *routedGenerator) count(p llm.Purpose) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := 0
	for _, got := range g.purposes {
		if got == p {
			n++
		}
	}
	return n
}

func alphaAnalysis(projects ...string) Analysis {
	if len(projects) == 0 {
		projects = []string{"Alpha"}
	}
	profile := types.EmptyResumeProfile()
	for _, name := range projects {
		profile.Projects = append(profile.Projects, types.Project{Name: name})
	}
	profile.Skills = []string{"Go"}
	profile.Internships = []types.Internship{{Company: "Acme"}}
	return Analysis{Profile: profile, Domain: "devops", ExperienceLevel: types.LevelFresher}
}

// recordingPresenter keeps every presented question.
type recordingPresenter struct {
	questions []string
}

func (p *recordingPresenter) Present(_ int, question string) error {
	p.questions = append(p.questions, question)
	return nil
}
