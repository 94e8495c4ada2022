package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jmorganca/ollama/api"
)

// OllamaClient implements Client against a local Ollama server.
type OllamaClient struct {
	client *api.Client
	config *Config
}

// NewOllamaClient creates a client for config.OllamaURL (DefaultOllamaURL when empty).
func NewOllamaClient(config *Config) (*OllamaClient, error) {
	host := config.OllamaURL
	if host == "" {
		host = DefaultOllamaURL
	}
	parsedURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama url %q: %w", host, err)
	}
	return &OllamaClient{
		client: api.NewClient(parsedURL, http.DefaultClient),
		config: config,
	}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *OllamaClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier, temperature float64) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	stream := false
	req := &api.ChatRequest{
		Model:    modelName,
		Messages: []api.Message{{Role: "user", Content: prompt}},
		Stream:   &stream,
		Options: map[string]any{
			"temperature": temperature,
			"num_predict": c.config.maxTokens(),
		},
	}

	var response api.ChatResponse
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		response = resp
		return nil
	})
	if err != nil {
		return "", &APICallError{Provider: ProviderOllama, Message: "failed to generate content", Cause: err}
	}
	if response.Message.Content == "" {
		return "", ErrEmptyResponse
	}
	return response.Message.Content, nil
}

// GetModel returns the model name for a tier
func (c *OllamaClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op.
func (c *OllamaClient) Close() error {
	return nil
}
