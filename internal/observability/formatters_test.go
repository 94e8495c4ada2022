package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Graceson27/interview-bot/internal/feedback"
	"github.com/Graceson27/interview-bot/internal/interview"
	"github.com/Graceson27/interview-bot/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintResumeProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.ResumeProfile{
		Skills:                  []string{"Go", "SQL", "Docker", "Kubernetes", "Terraform", "Rust"},
		Projects:                []types.Project{{Name: "Alpha", Technologies: []string{"Go"}}},
		Internships:             []types.Internship{{Company: "Acme", Role: "SRE intern"}},
		Education:               []types.Education{{Institution: "State University", Degree: "BSc"}},
		DomainSpecificKnowledge: []string{"distributed systems"},
	}

	p.PrintResumeProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "RESUME PROFILE")
	assert.Contains(t, output, "Alpha [Go]")
	assert.Contains(t, output, "Acme (SRE intern)")
	assert.Contains(t, output, "BSc State University")
	assert.Contains(t, output, "... and 1 more")
	assert.NotContains(t, output, "Rust")
}

func TestPrintResumeProfile_EmptyAndNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(nil)
	assert.Empty(t, buf.String())

	p.PrintResumeProfile(types.EmptyResumeProfile())
	assert.Contains(t, buf.String(), "No structured resume data")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("é", 100))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.Equal(t, boxWidth, len([]rune(line)), "every box line has the same width")
	}
	assert.Contains(t, buf.String(), "...")
}

func TestPrintTurn(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintTurn(4, interview.Selection{
		Topic:     types.TopicProjects,
		Intent:    types.IntentProjectDepth,
		Project:   "Beta",
		Tier:      types.TierMedium,
		Escalated: true,
	})

	assert.Equal(t, "[turn 4] topic=projects intent=project_depth tier=medium project=\"Beta\" ↑escalated\n", buf.String())
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintReport(feedback.Report{
		Scores:          types.HiringScores{TechnicalKnowledge: 0.3, Communication: 0.2},
		Overall:         0.21,
		Domain:          "devops",
		ExperienceLevel: types.LevelFresher,
		TotalQuestions:  5,
		Tier:            types.TierMedium,
		PerformanceScores: []interview.TopicScore{
			{Topic: types.TopicSkills, Score: 0.8},
		},
	})
	output := buf.String()

	assert.Contains(t, output, "INTERVIEW REPORT")
	assert.Contains(t, output, "devops")
	assert.Contains(t, output, "Strong Hire")
	assert.Contains(t, output, "skills")
	assert.Contains(t, output, "0.80")
}

func TestPrintClassificationAndScore(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintClassification("embedded", types.LevelExperienced)
	p.PrintScore(types.TopicSkills, 0.73)

	assert.Contains(t, buf.String(), "embedded")
	assert.Contains(t, buf.String(), "experienced")
	assert.Contains(t, buf.String(), "[score] topic=skills score=0.73")
}
