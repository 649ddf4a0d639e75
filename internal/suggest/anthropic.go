package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"skillswap/internal/config"
	"skillswap/internal/models"
	"skillswap/internal/observability"
)

const defaultMaxTokens = 1024

// AnthropicClient calls the Anthropic Messages API to generate skill
// suggestions.
type AnthropicClient struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

// NewAnthropicClient constructs a suggestion client from application config.
func NewAnthropicClient(cfg *config.Config) (*AnthropicClient, error) {
	apiKey := strings.TrimSpace(cfg.AnthropicAPIKey)
	if apiKey == "" {
		return nil, errors.New("anthropic: api key is required")
	}
	model := strings.TrimSpace(cfg.AnthropicModel)
	if model == "" {
		return nil, errors.New("anthropic: model is required")
	}

	timeout := time.Duration(cfg.SuggestTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &AnthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}, nil
}

// Suggest builds the suggestion prompt, calls the model, and validates the
// structured response. The call is bounded by the configured timeout.
func (c *AnthropicClient) Suggest(ctx context.Context, input Input) (*Output, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	prompt := fmt.Sprintf(promptTemplate,
		formatSkillList(input.SkillsOffered),
		formatSkillList(input.SkillsWanted),
		strings.TrimSpace(input.ProfileDescription),
	)

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: defaultMaxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			observability.RecordSuggestion(observability.SuggestionOutcomeTimeout, start)
			return nil, models.NewGatewayError("Suggestion request timed out", err)
		}
		observability.RecordSuggestion(observability.SuggestionOutcomeError, start)
		return nil, models.NewGatewayError("Suggestion request failed", fmt.Errorf("anthropic: %w", err))
	}

	var reply strings.Builder
	for _, block := range msg.Content {
		if text, ok := block.AsAny().(anthropic.TextBlock); ok {
			reply.WriteString(text.Text)
		}
	}

	out, err := parseOutput(reply.String())
	if err != nil {
		observability.RecordSuggestion(observability.SuggestionOutcomeError, start)
		return nil, err
	}

	observability.RecordSuggestion(observability.SuggestionOutcomeOK, start)
	return out, nil
}
