package classify

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/prompts"
	"github.com/Graceson27/interview-bot/internal/types"
)

const classifyTemperature = 0.0

// yearsOfExperience matches phrases like "3 years", "2+ yrs" or "5 years of experience".
var yearsOfExperience = regexp.MustCompile(`(?i)\b(\d{1,2})\s*\+?\s*(?:years?|yrs?)\b`)

// Result is the outcome of classifying a resume.
type Result struct {
	Domain          string                `json:"domain"`
	ExperienceLevel types.ExperienceLevel `json:"experience_level"`
}

// Classifier labels resumes using the text generation service with local fallbacks.
type Classifier struct {
	gen    llm.Generator
	logger *slog.Logger
}

// NewClassifier creates a Classifier. A nil generator leaves only the local
// heuristics; a nil logger uses slog.Default.
func NewClassifier(gen llm.Generator, logger *slog.Logger) *Classifier {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{gen: gen, logger: logger}
}

// Classify labels text with both a domain and an experience level.
func (c *Classifier) Classify(ctx context.Context, text string) Result {
	return Result{
		Domain:          c.Domain(ctx, text),
		ExperienceLevel: c.ExperienceLevel(ctx, text),
	}
}

// Domain asks the service for a domain label. An unknown label or a failed call falls
// back to the keyword table, and from there to GeneralDomain.
func (c *Classifier) Domain(ctx context.Context, text string) string {
	fallback := KeywordDomain(text)

	template := prompts.MustGet(prompts.ClassifyFile, "classify-domain")
	prompt := prompts.Format(template, map[string]string{
		"Domains": strings.Join(Domains(), ", "),
		"Text":    text,
	})
	raw, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("domain classification fell back to keywords", "purpose", llm.PurposeClassify, "domain", fallback, "error", err)
		return fallback
	}

	label := normalizeLabel(raw)
	if !KnownDomain(label) {
		c.logger.Warn("unknown domain label, using keywords", "label", raw, "domain", fallback)
		return fallback
	}
	if label == GeneralDomain && fallback != GeneralDomain {
		return fallback
	}
	return label
}

// ExperienceLevel asks the service for fresher or experienced and falls back to
// counting stated years of experience.
func (c *Classifier) ExperienceLevel(ctx context.Context, text string) types.ExperienceLevel {
	template := prompts.MustGet(prompts.ClassifyFile, "classify-experience")
	prompt := prompts.Format(template, map[string]string{
		"Text": text,
	})
	raw, err := c.generate(ctx, prompt)
	if err == nil {
		if level, perr := types.ParseExperienceLevel(normalizeLabel(raw)); perr == nil {
			return level
		}
		c.logger.Warn("unknown experience label, using heuristic", "label", raw)
	} else {
		c.logger.Warn("experience classification fell back to heuristic", "purpose", llm.PurposeClassify, "error", err)
	}
	return HeuristicExperienceLevel(text)
}

func (c *Classifier) generate(ctx context.Context, prompt string) (string, error) {
	return c.gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: classifyTemperature,
		Tier:        llm.TierLite,
		Purpose:     llm.PurposeClassify,
	})
}

// HeuristicExperienceLevel reports experienced when the text states one or more
// years of experience, fresher otherwise.
func HeuristicExperienceLevel(text string) types.ExperienceLevel {
	for _, m := range yearsOfExperience.FindAllStringSubmatch(text, -1) {
		if years, err := strconv.Atoi(m[1]); err == nil && years >= 1 {
			return types.LevelExperienced
		}
	}
	return types.LevelFresher
}
