// Package parsing structures resume text into a ResumeProfile using the text
// generation service, validating the result against the resume profile schema.
package parsing

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/schemas"
	"github.com/Graceson27/interview-bot/internal/types"
)

const structureTemperature = 0.1

// Structurer turns cleaned resume text into a ResumeProfile.
type Structurer struct {
	gen    llm.Generator
	budget *TokenBudget
	logger *slog.Logger
}

// Option configures a Structurer.
type Option func(*Structurer)

// WithTokenBudget truncates resume text to the budget before prompting.
func WithTokenBudget(b *TokenBudget) Option {
	return func(s *Structurer) { s.budget = b }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Structurer) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStructurer creates a Structurer backed by gen.
func NewStructurer(gen llm.Generator, opts ...Option) *Structurer {
	if gen == nil {
		gen = llm.Unavailable{}
	}
	s := &Structurer{gen: gen, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Structure extracts a ResumeProfile from text. The response is reduced to its JSON
// object, checked against the schema, normalized and struct-validated.
func (s *Structurer) Structure(ctx context.Context, text string) (*types.ResumeProfile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return types.EmptyResumeProfile(), nil
	}

	if s.budget != nil {
		fitted, truncated, err := s.budget.Fit(text)
		if err != nil {
			s.logger.Warn("token budget unavailable, sending full resume", "error", err)
		} else {
			if truncated {
				s.logger.Info("resume truncated to token budget", "limit", s.budget.Limit())
			}
			text = fitted
		}
	}

	prompt := llm.BuildExtractionPrompt(llm.ResumeProfileSchema(), text)
	raw, err := s.gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Temperature: structureTemperature,
		Tier:        llm.TierAdvanced,
		Purpose:     llm.PurposeStructure,
	})
	if err != nil {
		return nil, err
	}

	return decodeProfile(raw)
}

// decodeProfile parses a structuring response into a normalized profile.
func decodeProfile(raw string) (*types.ResumeProfile, error) {
	object := llm.ExtractJSONObject(llm.CleanJSONBlock(raw))
	if object == "" {
		return nil, &ParseError{Message: "no JSON object in response", Raw: raw}
	}
	if err := schemas.ValidateResumeProfile(object); err != nil {
		return nil, &ValidationError{Message: "profile does not match schema", Cause: err}
	}

	var profile types.ResumeProfile
	if err := json.Unmarshal([]byte(object), &profile); err != nil {
		return nil, &ParseError{Message: "failed to parse JSON response", Raw: raw, Cause: err}
	}

	NormalizeProfile(&profile)
	if err := profile.Validate(); err != nil {
		return nil, &ValidationError{Message: "profile failed struct validation", Cause: err}
	}
	return &profile, nil
}

// ParseResume structures text and never fails: any error is logged and an empty
// profile is returned so the interview can still run.
func ParseResume(ctx context.Context, s *Structurer, text string) *types.ResumeProfile {
	profile, err := s.Structure(ctx, text)
	if err != nil {
		s.logger.Warn("resume structuring failed, using empty profile", "purpose", llm.PurposeStructure, "error", err)
		return types.EmptyResumeProfile()
	}
	return profile
}
