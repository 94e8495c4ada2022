package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	// Empty config should return empty string
	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	// New config should have custom model
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))

	// Other tiers should be copied
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestConfigFor(t *testing.T) {
	tests := []struct {
		provider Provider
		lite     string
	}{
		{ProviderGemini, "gemini-2.5-flash-lite"},
		{ProviderOpenAI, "gpt-4o-mini"},
		{ProviderAnthropic, "claude-3-5-haiku-latest"},
		{ProviderOllama, "llama3.2"},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			config := ConfigFor(tt.provider)
			assert.Equal(t, tt.provider, config.Provider)
			assert.Equal(t, tt.lite, config.GetModel(TierLite))
		})
	}

	assert.Equal(t, DefaultOllamaURL, ConfigFor(ProviderOllama).OllamaURL)
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider("anthropic")
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, p)

	p, err = ParseProvider("")
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, p)

	_, err = ParseProvider("palm")
	assert.Error(t, err)
}

func TestProvider_APIKey(t *testing.T) {
	assert.Equal(t, "GEMINI_API_KEY", ProviderGemini.APIKeyEnv())
	assert.Equal(t, "OPENAI_API_KEY", ProviderOpenAI.APIKeyEnv())
	assert.Equal(t, "ANTHROPIC_API_KEY", ProviderAnthropic.APIKeyEnv())
	assert.True(t, ProviderOpenAI.RequiresAPIKey())
	assert.False(t, ProviderOllama.RequiresAPIKey())
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	_, err := NewClient(context.Background(), DefaultOpenAIConfig(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(context.Background(), DefaultAnthropicConfig(), "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)

	_, err = NewClient(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestNewClient_OllamaNeedsNoKey(t *testing.T) {
	client, err := NewClient(context.Background(), DefaultOllamaConfig(), "")
	require.NoError(t, err)
	assert.Equal(t, "llama3.1", client.GetModel(TierAdvanced))
	assert.NoError(t, client.Close())
}
