package llm

import (
	"context"
	"fmt"
)

// NewClient constructs the ChatClient selected by cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (ChatClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderGemini:
		c, err := NewGeminiClient(ctx, cfg, observer)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderOpenAI:
		c, err := NewOpenAIClient(cfg, observer)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: provider %q", ErrNotConfigured, cfg.Provider)
	}
}
