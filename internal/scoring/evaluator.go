// Package scoring turns candidate answers into bounded scores and folds them into the
// interview's hiring-score accumulators.
package scoring

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Graceson27/interview-bot/internal/interview"
	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/prompts"
	"github.com/Graceson27/interview-bot/internal/types"
)

// NeutralScore is used whenever an answer cannot be scored.
const NeutralScore = 0.5

// Per-answer weights for the accumulators.
const (
	CommunicationWeight       = 0.3
	ExperienceRelevanceWeight = 0.25
)

const scoreTemperature = 0.1

// TierWeight is the technical-knowledge weight of an answer at tier.
func TierWeight(tier types.Tier) float64 {
	switch tier {
	case types.TierMedium:
		return 0.35
	case types.TierHard:
		return 0.45
	default:
		return 0.2
	}
}

// scoreToken matches a 0.xxx number that is not the tail of a larger number.
var scoreToken = regexp.MustCompile(`(?:^|[^\d.])(0\.\d+)`)

// ParseScore reads a score from scoring service output. A 0.xxx token anywhere in the
// text wins; otherwise the whole trimmed text must be a number. The result is clamped
// to [0,1].
func ParseScore(raw string) (float64, error) {
	var value float64
	if m := scoreToken.FindStringSubmatch(raw); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, &ParseError{Raw: raw, Cause: err}
		}
		value = v
	} else {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return 0, &ParseError{Raw: raw, Cause: err}
		}
		value = v
	}
	return clamp(value), nil
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return NeutralScore
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Evaluator scores answers for one interview.
type Evaluator struct {
	state  *interview.State
	gen    llm.Generator
	logger *slog.Logger
}

// NewEvaluator creates an evaluator bound to state.
func NewEvaluator(state *interview.State, gen llm.Generator, logger *slog.Logger) *Evaluator {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{state: state, gen: gen, logger: logger}
}

// Evaluate scores answer for topic at the current tier and updates the state. It never
// fails: any service or parse problem yields NeutralScore.
func (e *Evaluator) Evaluate(ctx context.Context, topic types.Topic, answer string) float64 {
	score := e.score(ctx, topic, answer)

	e.state.PerformanceScores.Set(topic, score)
	h := &e.state.HiringScores
	h.TechnicalKnowledge += score * TierWeight(e.state.Tier)
	h.Communication += score * CommunicationWeight
	h.ExperienceRelevance += score * ExperienceRelevanceWeight

	return score
}

func (e *Evaluator) score(ctx context.Context, topic types.Topic, answer string) float64 {
	prompt, err := prompts.Render(prompts.ScoringFile, "score-answer", map[string]string{
		"Tier":   string(e.state.Tier),
		"Domain": e.state.Domain(),
		"Topic":  string(topic),
		"Answer": answer,
	})
	if err != nil {
		e.logger.Warn("scoring prompt unavailable, using neutral score", "error", err)
		return NeutralScore
	}

	raw, err := e.gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: scoreTemperature,
		Tier:        llm.TierLite,
		Purpose:     llm.PurposeScore,
	})
	if err != nil || llm.IsDegraded(raw) {
		e.logger.Warn("scoring service failed, using neutral score", "topic", topic, "error", err)
		return NeutralScore
	}

	score, err := ParseScore(raw)
	if err != nil {
		e.logger.Warn("unparseable score, using neutral score", "topic", topic, "error", err)
		return NeutralScore
	}
	return score
}
