package llm

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider identifies the hosted model service backend.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
	ProviderOllama Provider = "ollama"
)

// defaultModels is the model used per provider when none is configured.
var defaultModels = map[Provider]string{
	ProviderGemini: "gemini-2.5-flash",
	ProviderOpenAI: "gpt-4o-mini",
	ProviderOllama: "llava",
}

// LLMConfig holds all configuration for the model service.
type LLMConfig struct {
	Provider       Provider
	LogCalls       bool
	Endpoint       string // empty uses the provider default
	APIKey         string
	Model          string
	TimeoutMs      int
	ImageTimeoutMs int // used for turns carrying an image
	Temperature    float64
	MaxTokens      int
}

// DefaultConfig returns an LLMConfig with sensible defaults.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:       ProviderGemini,
		LogCalls:       false,
		Model:          defaultModels[ProviderGemini],
		TimeoutMs:      30000,
		ImageTimeoutMs: 60000,
		Temperature:    0.4,
		MaxTokens:      2048,
	}
}

// LoadConfig reads model configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("AGRISMART_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(strings.TrimSpace(v)))
		cfg.Model = defaultModels[cfg.Provider]
	}
	if v := os.Getenv("AGRISMART_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("AGRISMART_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	cfg.APIKey = firstEnv("AGRISMART_LLM_API_KEY", providerKeyEnv(cfg.Provider))
	if v := os.Getenv("AGRISMART_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("AGRISMART_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("AGRISMART_LLM_IMAGE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ImageTimeoutMs = n
		}
	}
	if v := os.Getenv("AGRISMART_LLM_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 2 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("AGRISMART_LLM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}

	return cfg
}

// Validate reports configuration that cannot produce a working client.
func (c LLMConfig) Validate() error {
	if _, ok := defaultModels[c.Provider]; !ok {
		return fmt.Errorf("unsupported llm provider %q (want gemini, openai or ollama)", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.Provider != ProviderOllama && c.APIKey == "" {
		return fmt.Errorf("%w: %s requires an API key", ErrNotConfigured, c.Provider)
	}
	return nil
}

// Timeout returns the dispatch timeout for a turn, longer when it carries an image.
func (c LLMConfig) Timeout(withImage bool) time.Duration {
	ms := c.TimeoutMs
	if withImage && c.ImageTimeoutMs > ms {
		ms = c.ImageTimeoutMs
	}
	return time.Duration(ms) * time.Millisecond
}

func providerKeyEnv(p Provider) string {
	switch p {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	}
	return ""
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if n == "" {
			continue
		}
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
