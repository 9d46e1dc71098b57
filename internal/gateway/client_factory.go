package gateway

import (
	"context"
	"errors"
	"fmt"

	"scholarsync/internal/config"
	"scholarsync/internal/logging"
)

// ErrUnknownProvider is returned for a provider name with no backend.
var ErrUnknownProvider = errors.New("unknown provider")

// NewBackend creates the backend selected by cfg.
// It returns (nil, nil) when no API key is configured; that is not an error.
func NewBackend(ctx context.Context, cfg config.LLMConfig) (Backend, error) {
	if !cfg.HasCredential() {
		logging.BootWarn("no API key configured; AI features will return placeholders")
		return nil, nil
	}

	model := cfg.GetModel()
	switch cfg.Provider {
	case config.ProviderGemini, "":
		b, err := NewGeminiBackend(ctx, cfg.APIKey, model, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		logging.Boot("gateway backend: gemini model=%s", model)
		return b, nil
	case config.ProviderOpenAI:
		logging.Boot("gateway backend: openai model=%s", model)
		return NewOpenAIBackend(cfg.APIKey, model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("%w: %s (valid: %v)", ErrUnknownProvider, cfg.Provider, config.ValidProviders)
	}
}

// NewFromConfig creates a Gateway from cfg.
func NewFromConfig(ctx context.Context, cfg config.LLMConfig) (*Gateway, error) {
	b, err := NewBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(b), nil
}
