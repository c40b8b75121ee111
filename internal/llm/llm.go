// Package llm provides the text generation clients used by the pipeline.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/metalagman/agentflow/internal/config"
)

// ErrEmptyResponse is returned when the model answers without any text.
var ErrEmptyResponse = errors.New("no content returned from model")

// Client generates text for a prompt.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the client selected by cfg.Provider.
// httpClient may be nil to use the provider default.
func New(ctx context.Context, cfg config.ModelConfig, httpClient *http.Client) (Client, error) {
	apiKey, err := resolveAPIKey(cfg)
	if err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, GeminiConfig{
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			APIKey:     apiKey,
			Timeout:    cfg.Timeout,
			HTTPClient: httpClient,
		})
	case config.ProviderOpenAI:
		return NewOpenAI(OpenAIConfig{
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			APIKey:     apiKey,
			Timeout:    cfg.Timeout,
			HTTPClient: httpClient,
		})
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

func resolveAPIKey(cfg config.ModelConfig) (string, error) {
	if key := strings.TrimSpace(cfg.APIKey); key != "" {
		return key, nil
	}
	envKey := strings.TrimSpace(cfg.APIKeyEnv)
	if envKey == "" {
		envKey = defaultAPIKeyEnv(cfg.Provider)
	}
	if key := strings.TrimSpace(os.Getenv(envKey)); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("%s api key is required (set model.api_key or %s)", cfg.Provider, envKey)
}

func defaultAPIKeyEnv(provider string) string {
	if provider == config.ProviderOpenAI {
		return "OPENAI_API_KEY"
	}
	return "GEMINI_API_KEY"
}
