package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Purpose labels an LLM call for logging and metrics.
type Purpose string

// Purpose constants
const (
	PurposeQuestion  Purpose = "question"
	PurposeScore     Purpose = "score"
	PurposeStructure Purpose = "structure"
	PurposeClassify  Purpose = "classify"
	PurposeFeedback  Purpose = "feedback"
)

// Request is a single text generation call.
type Request struct {
	Prompt      string
	Temperature float64
	Tier        ModelTier
	Purpose     Purpose
}

// Generator produces text for a prompt. Failures are returned, never hidden; the caller
// picks a fallback with OrFallback.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Outcome labels of a generation attempt.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeDegraded = "degraded"
)

// RequestObserver receives one observation per generation attempt.
type RequestObserver interface {
	ObserveLLMRequest(purpose, outcome string, elapsed time.Duration)
}

// Service adapts a Client into a Generator with pacing, logging and metrics.
type Service struct {
	client   Client
	limiter  *rate.Limiter
	observer RequestObserver
	logger   *slog.Logger
	now      func() time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRequestsPerMinute paces calls to the provider. n <= 0 disables pacing.
func WithRequestsPerMinute(n int) ServiceOption {
	return func(s *Service) {
		if n <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(n)), 1)
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o RequestObserver) ServiceOption {
	return func(s *Service) { s.observer = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService wraps client.
func NewService(client Client, opts ...ServiceOption) *Service {
	s := &Service{
		client: client,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate implements Generator.
func (s *Service) Generate(ctx context.Context, req Request) (string, error) {
	if req.Tier == "" {
		req.Tier = TierStandard
	}
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			s.observe(req.Purpose, OutcomeError, 0)
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := s.now()
	text, err := s.client.GenerateContent(ctx, req.Prompt, req.Tier, req.Temperature)
	elapsed := s.now().Sub(start)

	switch {
	case err != nil:
		s.observe(req.Purpose, OutcomeError, elapsed)
		s.logger.Warn("llm request failed", "purpose", req.Purpose, "model", s.client.GetModel(req.Tier), "error", err)
		return "", err
	case IsDegraded(text):
		s.observe(req.Purpose, OutcomeDegraded, elapsed)
		s.logger.Warn("llm request degraded", "purpose", req.Purpose, "model", s.client.GetModel(req.Tier))
		return "", ErrDegraded
	}

	s.observe(req.Purpose, OutcomeOK, elapsed)
	s.logger.Debug("llm request", "purpose", req.Purpose, "model", s.client.GetModel(req.Tier), "elapsed", elapsed)
	return text, nil
}

// Close releases the underlying client.
func (s *Service) Close() error {
	return s.client.Close()
}

func (s *Service) observe(purpose Purpose, outcome string, elapsed time.Duration) {
	if s.observer != nil {
		s.observer.ObserveLLMRequest(string(purpose), outcome, elapsed)
	}
}
