package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// EnvProvider selects the provider explicitly.
const EnvProvider = "MATHBUDDY_LLM_PROVIDER"

// KnownProvider reports whether name is a supported provider.
func KnownProvider(name string) bool {
	switch name {
	case ProviderGemini, ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic, ProviderMock:
		return true
	}
	return false
}

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "openrouter", "anthropic", "mock"
	Provider string

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single tutoring action
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "google/gemini-2.0-flash-exp"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.0-flash-exp",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv(EnvProvider); p != "" {
		cfg.Provider = p
	}
	if t := os.Getenv("MATHBUDDY_LLM_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if k := os.Getenv("MATHBUDDY_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("MATHBUDDY_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("MATHBUDDY_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("MATHBUDDY_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("MATHBUDDY_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("MATHBUDDY_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("MATHBUDDY_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	if k := os.Getenv("MATHBUDDY_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("MATHBUDDY_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	return cfg
}

// wellKnownKeys lists, in discovery priority order, the conventional API
// key variables of each provider.
var wellKnownKeys = []struct {
	provider string
	vars     []string
}{
	{ProviderGemini, []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}},
	{ProviderOpenAI, []string{"OPENAI_API_KEY"}},
	{ProviderAnthropic, []string{"ANTHROPIC_API_KEY"}},
	{ProviderOpenRouter, []string{"OPENROUTER_API_KEY"}},
}

// wellKnownKey returns the first conventional key variable set for
// provider, or "".
func wellKnownKey(provider string) string {
	for _, w := range wellKnownKeys {
		if w.provider != provider {
			continue
		}
		for _, name := range w.vars {
			if k := os.Getenv(name); k != "" {
				return k
			}
		}
	}
	return ""
}

// DiscoverConfig checks standard API key env vars in priority order
// (Gemini, OpenAI, Anthropic, OpenRouter) and returns a default Config for
// the first provider whose key is found. Returns (Config{}, false) if none
// is found.
func DiscoverConfig() (Config, bool) {
	for _, w := range wellKnownKeys {
		if k := wellKnownKey(w.provider); k != "" {
			cfg := DefaultConfig()
			cfg.Provider = w.provider
			return cfg.WithAPIKey(k), true
		}
	}
	return Config{}, false
}

// APIKey returns the key configured for the selected provider.
func (c Config) APIKey() string {
	switch c.Provider {
	case ProviderGemini:
		return c.Gemini.APIKey
	case ProviderOpenAI:
		return c.OpenAI.APIKey
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey
	case ProviderAnthropic:
		return c.Anthropic.APIKey
	}
	return ""
}

// WithAPIKey returns a copy of c with key set on the selected provider.
// Practice sessions use it to apply the credential a student typed in.
func (c Config) WithAPIKey(key string) Config {
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.APIKey = key
	case ProviderOpenAI:
		c.OpenAI.APIKey = key
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = key
	case ProviderAnthropic:
		c.Anthropic.APIKey = key
	}
	return c
}

// WithWellKnownKey fills the selected provider's key from its conventional
// variable (GEMINI_API_KEY and the like) when no key is set.
func (c Config) WithWellKnownKey() Config {
	if c.APIKey() != "" {
		return c
	}
	if k := wellKnownKey(c.Provider); k != "" {
		return c.WithAPIKey(k)
	}
	return c
}

// WithModel returns a copy of c with model set on the selected provider.
func (c Config) WithModel(model string) Config {
	if model == "" {
		return c
	}
	switch c.Provider {
	case ProviderGemini:
		c.Gemini.Model = model
	case ProviderOpenAI:
		c.OpenAI.Model = model
	case ProviderOpenRouter:
		c.OpenRouter.Model = model
	case ProviderAnthropic:
		c.Anthropic.Model = model
	}
	return c
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("MATHBUDDY_GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("MATHBUDDY_OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("MATHBUDDY_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("MATHBUDDY_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
