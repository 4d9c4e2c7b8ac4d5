package llm

import "context"

// GenerateOptions is the per-call generation budget.
// Nil pointers leave the provider default in place.
type GenerateOptions struct {
	Tier            ModelTier
	Temperature     *float32
	TopP            *float32
	MaxOutputTokens *int32
}

// Client is an abstraction over LLM providers.
// Implementations are safe for concurrent use; one attempt is one outbound request, no streaming.
type Client interface {
	// GenerateContent sends the prompt and returns the raw text of the first candidate
	GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	// Provider names the backing provider
	Provider() Provider
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderAnthropic:
		client, err := NewAnthropicClient(config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		client, err := NewGeminiClient(ctx, config, apiKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// Float32 returns a pointer to v, for GenerateOptions fields.
func Float32(v float32) *float32 { return &v }

// Int32 returns a pointer to v, for GenerateOptions fields.
func Int32(v int32) *int32 { return &v }
