package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/mathbuddy/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and logging middleware.
// A nil eventRepo skips event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderMock:
		base = NewDemoProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → retry → logging → base
	wrapped := base
	if eventRepo != nil {
		wrapped = WithLogging(base, cfg.Provider, eventRepo)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// ResolveConfig builds the config from MATHBUDDY_* variables and fills a
// missing key from the well-known variables. An explicit
// MATHBUDDY_LLM_PROVIDER is never switched; without one, the first provider
// with a well-known key is used. Models, base URLs and timeouts from the
// environment are kept either way.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	err := cfg.Validate()
	if err == nil {
		return cfg, nil
	}

	if os.Getenv(EnvProvider) != "" {
		cfg = cfg.WithWellKnownKey()
		return cfg, cfg.Validate()
	}

	discovered, ok := DiscoverConfig()
	if !ok {
		return cfg, err
	}
	cfg.Provider = discovered.Provider
	return cfg.WithAPIKey(discovered.APIKey()), nil
}
