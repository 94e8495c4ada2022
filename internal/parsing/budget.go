package parsing

import (
	"fmt"
	"strings"

	"github.com/tiktoken-go/tokenizer"
)

// DefaultTokenBudget caps how much resume text is sent to the structuring service.
const DefaultTokenBudget = 6000

// TokenBudget truncates text to a maximum number of tokens.
type TokenBudget struct {
	codec tokenizer.Codec
	limit int
}

// NewTokenBudget creates a budget of limit tokens using GPT-4 encoding, which is a
// close enough approximation for every supported provider. A limit <= 0 uses
// DefaultTokenBudget.
func NewTokenBudget(limit int) (*TokenBudget, error) {
	if limit <= 0 {
		limit = DefaultTokenBudget
	}
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return nil, fmt.Errorf("failed to create tokenizer codec: %w", err)
	}
	return &TokenBudget{codec: codec, limit: limit}, nil
}

// Limit returns the token limit.
func (b *TokenBudget) Limit() int {
	return b.limit
}

// Count returns the number of tokens in text.
func (b *TokenBudget) Count(text string) (int, error) {
	return b.codec.Count(text)
}

// Fit returns text unchanged when it is within the limit. Otherwise it returns the
// longest token prefix that fits, cut back to the last line break so no resume line
// is split, and reports truncated=true.
func (b *TokenBudget) Fit(text string) (fitted string, truncated bool, err error) {
	ids, _, err := b.codec.Encode(text)
	if err != nil {
		return "", false, fmt.Errorf("failed to encode text: %w", err)
	}
	if len(ids) <= b.limit {
		return text, false, nil
	}

	prefix, err := b.codec.Decode(ids[:b.limit])
	if err != nil {
		return "", false, fmt.Errorf("failed to decode text: %w", err)
	}
	if i := strings.LastIndex(prefix, "\n"); i > 0 {
		prefix = prefix[:i]
	}
	return strings.TrimSpace(prefix), true, nil
}
