package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/prompts"
)

const feedbackTemperature = 0.4

// Recommendation buckets for the overall score. A perfect run at hard difficulty tops
// out near 0.26, so the cut points sit well below 1.
var recommendationBands = []struct {
	min   float64
	label string
}{
	{0.20, "Strong Hire"},
	{0.15, "Hire"},
	{0.10, "Lean No Hire"},
}

// Recommendation maps an overall score to a hiring label.
func Recommendation(overall float64) string {
	for _, band := range recommendationBands {
		if overall >= band.min {
			return band.label
		}
	}
	return "No Hire"
}

// Narrator requests narrative feedback text for a report.
type Narrator struct {
	gen    llm.Generator
	logger *slog.Logger
}

// NewNarrator creates a narrator.
func NewNarrator(gen llm.Generator, logger *slog.Logger) *Narrator {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Narrator{gen: gen, logger: logger}
}

// Narrate returns generated feedback, or Summary(report) when generation fails.
func (n *Narrator) Narrate(ctx context.Context, report Report) string {
	fallback := Summary(report)

	prompt, err := prompts.Render(prompts.FeedbackFile, "narrative-feedback", promptData(report))
	if err != nil {
		n.logger.Warn("feedback prompt unavailable, using summary", "error", err)
		return fallback
	}

	text, err := n.gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: feedbackTemperature,
		Tier:        llm.TierAdvanced,
		Purpose:     llm.PurposeFeedback,
	})
	if err != nil || llm.IsDegraded(text) {
		n.logger.Warn("feedback generation fell back to summary", "error", err)
	}
	return llm.OrFallback(text, err, fallback)
}

// Summary is the deterministic feedback used without a text generation service.
func Summary(r Report) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Interview summary for a %s candidate (%s).\n", r.ExperienceLevel, r.Domain)
	fmt.Fprintf(&sb, "Questions asked: %d, final difficulty: %s.\n\n", r.TotalQuestions, r.Tier)
	fmt.Fprintf(&sb, "Technical knowledge:   %.3f\n", r.Scores.TechnicalKnowledge)
	fmt.Fprintf(&sb, "Problem solving:       %.3f\n", r.Scores.ProblemSolving)
	fmt.Fprintf(&sb, "Communication:         %.3f\n", r.Scores.Communication)
	fmt.Fprintf(&sb, "Experience relevance:  %.3f\n", r.Scores.ExperienceRelevance)
	fmt.Fprintf(&sb, "Overall:               %.3f\n", r.Overall)

	if len(r.PerformanceScores) > 0 {
		best, worst := r.PerformanceScores[0], r.PerformanceScores[0]
		for _, ts := range r.PerformanceScores[1:] {
			if ts.Score > best.Score {
				best = ts
			}
			if ts.Score < worst.Score {
				worst = ts
			}
		}
		fmt.Fprintf(&sb, "\nStrongest topic: %s (%.2f).", best.Topic, best.Score)
		if worst.Topic != best.Topic {
			fmt.Fprintf(&sb, " Needs work: %s (%.2f).", worst.Topic, worst.Score)
		}
		sb.WriteString("\n")
	}

	fmt.Fprintf(&sb, "\nRecommendation: %s", Recommendation(r.Overall))
	return sb.String()
}

func promptData(r Report) map[string]string {
	lines := make([]string, 0, len(r.PerformanceScores))
	for _, ts := range r.PerformanceScores {
		lines = append(lines, fmt.Sprintf("- %s: %.2f", ts.Topic, ts.Score))
	}
	topicScores := strings.Join(lines, "\n")
	if topicScores == "" {
		topicScores = "(no answers scored)"
	}

	return map[string]string{
		"ExperienceLevel":     string(r.ExperienceLevel),
		"Domain":              r.Domain,
		"TechnicalKnowledge":  formatScore(r.Scores.TechnicalKnowledge),
		"ProblemSolving":      formatScore(r.Scores.ProblemSolving),
		"Communication":       formatScore(r.Scores.Communication),
		"ExperienceRelevance": formatScore(r.Scores.ExperienceRelevance),
		"Overall":             formatScore(r.Overall),
		"Tier":                string(r.Tier),
		"TotalQuestions":      strconv.Itoa(r.TotalQuestions),
		"TopicScores":         topicScores,
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}
