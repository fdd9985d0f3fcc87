// Package openai implements the Completer interface for any OpenAI-compatible
// Chat Completions API. OpenRouter and OpenAI differ only by base URL.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gopenai "github.com/sashabaranov/go-openai"

	"github.com/nadzzz/voicebot/internal/completion"
)

// Completer calls the Chat Completions endpoint through go-openai.
type Completer struct {
	name   string
	client *gopenai.Client
}

// New creates a completer named name that talks to baseURL with apiKey.
func New(name, apiKey, baseURL string) *Completer {
	cfg := gopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Completer{
		name:   name,
		client: gopenai.NewClientWithConfig(cfg),
	}
}

// Name returns the backend identifier.
func (c *Completer) Name() string { return c.name }

// Complete sends the conversation and returns the first choice's content.
func (c *Completer) Complete(ctx context.Context, req completion.Request) (string, error) {
	messages := make([]gopenai.ChatCompletionMessage, 0, len(req.Messages))
	for _, turn := range req.Messages {
		messages = append(messages, gopenai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, gopenai.ChatCompletionRequest{
		Model:       req.Model,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", completion.ErrEmptyResponse
	}

	slog.Debug("chat completion received",
		"backend", c.name,
		"model", req.Model,
		"duration_ms", time.Since(start).Milliseconds(),
		"total_tokens", resp.Usage.TotalTokens,
	)
	return resp.Choices[0].Message.Content, nil
}
