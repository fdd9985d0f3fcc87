// Package gemini implements the Completer interface on Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/nadzzz/voicebot/internal/completion"
	"github.com/nadzzz/voicebot/internal/conversation"
)

// Completer calls GenerateContent through the genai SDK.
type Completer struct {
	client *genai.Client
}

// New creates a Gemini completer. A non-empty baseURL overrides the API
// endpoint.
func New(ctx context.Context, apiKey, baseURL string) (*Completer, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Completer{client: client}, nil
}

// Name returns the backend identifier.
func (c *Completer) Name() string { return "gemini" }

// Complete sends the conversation and returns the response text.
func (c *Completer) Complete(ctx context.Context, req completion.Request) (string, error) {
	system, contents := toContents(req.Messages)

	temperature := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: int32(req.MaxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", completion.ErrEmptyResponse
	}

	slog.Debug("gemini completion received", "model", req.Model, "contents", len(contents))
	return text, nil
}

// toContents splits turns into Gemini's shape: system turns are joined into
// a single system instruction and assistant turns become model turns.
func toContents(turns []conversation.Turn) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(turns))

	for _, turn := range turns {
		switch turn.Role {
		case conversation.RoleSystem:
			system = append(system, turn.Content)
		case conversation.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(turn.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}
