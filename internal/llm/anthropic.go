package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// defaultAnthropicMaxTokens is used when the caller sets no output budget; the API requires one.
const defaultAnthropicMaxTokens = 2048

// AnthropicClient implements Client for Anthropic's Claude models
type AnthropicClient struct {
	client anthropic.Client
	config *Config
}

// NewAnthropicClient creates a new Claude client
func NewAnthropicClient(config *Config, apiKey string) (*AnthropicClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &NotConfiguredError{Provider: ProviderAnthropic}
	}
	if config == nil {
		config = DefaultAnthropicConfig()
	}

	return &AnthropicClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// GenerateContent sends a single user message and joins the text blocks of the reply
func (c *AnthropicClient) GenerateContent(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	modelName := c.config.GetModel(opts.Tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", opts.Tier)
	}

	maxTokens := int64(defaultAnthropicMaxTokens)
	if opts.MaxOutputTokens != nil {
		maxTokens = int64(*opts.MaxOutputTokens)
	}
	temperature := float64(defaultTemperature)
	if opts.Temperature != nil {
		temperature = float64(*opts.Temperature)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(modelName),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if opts.TopP != nil {
		params.TopP = anthropic.Float(float64(*opts.TopP))
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", &APICallError{Message: "failed to call Claude API", Cause: err}
	}
	if len(resp.Content) == 0 {
		return "", &APICallError{Message: "empty response from Claude"}
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type != "text" {
			continue
		}
		parts = append(parts, block.AsText().Text)
	}
	if len(parts) == 0 {
		return "", &APICallError{Message: "no text content in Claude response"}
	}

	return strings.Join(parts, ""), nil
}

// Provider returns ProviderAnthropic
func (c *AnthropicClient) Provider() Provider {
	return ProviderAnthropic
}

// Close is a no-op; the SDK client holds no resources of its own.
func (c *AnthropicClient) Close() error {
	return nil
}
