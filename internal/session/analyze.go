package session

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/Graceson27/interview-bot/internal/classify"
	"github.com/Graceson27/interview-bot/internal/parsing"
	"github.com/Graceson27/interview-bot/internal/types"
)

// Analysis is what is known about the candidate before the first question.
type Analysis struct {
	Profile         *types.ResumeProfile  `json:"profile"`
	Domain          string                `json:"domain"`
	ExperienceLevel types.ExperienceLevel `json:"experience_level"`
}

// Analyze structures and classifies resume text concurrently. Both halves fall back
// locally, so the only error is cancellation of ctx.
func Analyze(ctx context.Context, text string, structurer *parsing.Structurer, classifier *classify.Classifier, logger *slog.Logger) (Analysis, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		profile *types.ResumeProfile
		labels  classify.Result
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile = parsing.ParseResume(gctx, structurer, text)
		return gctx.Err()
	})
	g.Go(func() error {
		labels = classifier.Classify(gctx, text)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return Analysis{}, err
	}

	logger.Info("resume analyzed",
		"projects", len(profile.Projects),
		"skills", len(profile.Skills),
		"domain", labels.Domain,
		"experience", labels.ExperienceLevel)

	return Analysis{
		Profile:         profile,
		Domain:          labels.Domain,
		ExperienceLevel: labels.ExperienceLevel,
	}, nil
}
