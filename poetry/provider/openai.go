// Package provider implements the external model collaborators over the
// OpenAI chat-completions API: the poem generation oracle and the emotion
// classifier. Hosts with an OpenAI-compatible surface (OpenRouter-style
// gateways) are reached via a base-URL override.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/lyrelab/versesmith/poetry"
)

// NewClient builds an API client. baseURL may be empty for the default host.
func NewClient(apiKey, baseURL string) openai.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return openai.NewClient(opts...)
}

// PoemOracle is the poetry.Oracle implementation backed by a chat model.
type PoemOracle struct {
	Client *openai.Client
	Model  string

	// MaxTokens caps the completion (0 = provider default).
	MaxTokens int64
	// Temperature of 0 uses the model default.
	Temperature float64
}

// Invoke sends the prompt as a single user message and returns the model's
// text, with any \boxed{} wrapper stripped. One logical call; transient
// rate-limit and server errors are retried inside.
func (o *PoemOracle) Invoke(ctx context.Context, prompt string) (string, error) {
	if o.Client == nil {
		return "", fmt.Errorf("PoemOracle.Invoke: nil client")
	}
	if o.Model == "" {
		return "", fmt.Errorf("PoemOracle.Invoke: empty model")
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if o.MaxTokens > 0 {
		params.MaxTokens = openai.Int(o.MaxTokens)
	}
	if o.Temperature > 0 {
		params.Temperature = openai.Float(o.Temperature)
	}

	resp, err := callWithRetry(ctx, o.Client, params)
	if err != nil {
		return "", fmt.Errorf("PoemOracle.Invoke: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("PoemOracle.Invoke: response has no choices")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("PoemOracle.Invoke: empty completion")
	}
	return poetry.StripBoxed(content), nil
}

func callWithRetry(ctx context.Context, client *openai.Client, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	const maxRetries = 3
	rateLimitWaitTimes := []time.Duration{65 * time.Second, 100 * time.Second, 135 * time.Second}
	serverErrorWaitTimes := []time.Duration{5 * time.Second, 30 * time.Second, 60 * time.Second}

	for attempt := 0; attempt < maxRetries; attempt++ {
		resp, err := client.Chat.Completions.New(ctx, params)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if isRateLimitError(err) {
				if attempt < maxRetries-1 {
					sleepCtx(ctx, rateLimitWaitTimes[attempt])
					continue
				}
			} else if isServerError(err) {
				if attempt < maxRetries-1 {
					sleepCtx(ctx, serverErrorWaitTimes[attempt])
					continue
				}
			}
			return nil, err
		}
		return resp, nil
	}
	return nil, fmt.Errorf("failed after %d attempts due to API issues", maxRetries)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
