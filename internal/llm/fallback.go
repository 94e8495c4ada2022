package llm

import (
	"context"
	"strings"
)

// ApologyText is what the text generation service returns when it cannot answer.
// Callers treat it as a degraded result, never as content.
const ApologyText = "I'm sorry, I couldn't process that request right now. Please try again."

// IsDegraded reports whether text is empty or the apology string.
func IsDegraded(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == ApologyText
}

// OrFallback selects fallback when err is set or text is degraded.
func OrFallback(text string, err error, fallback string) string {
	if err != nil || IsDegraded(text) {
		return fallback
	}
	return strings.TrimSpace(text)
}

// Unavailable is a Generator that always fails. It stands in when no provider could
// be configured, so every caller falls through to its deterministic default.
type Unavailable struct{}

// Generate always returns ErrUnavailable.
func (Unavailable) Generate(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}
