// Package openai implements the Transcriber interface using the OpenAI Audio
// Transcription API (Whisper).
package openai

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	gopenai "github.com/sashabaranov/go-openai"
)

// Transcriber sends recordings to /audio/transcriptions through go-openai.
type Transcriber struct {
	model  string
	client *gopenai.Client
}

// New creates a transcriber using model at baseURL.
func New(apiKey, baseURL, model string) *Transcriber {
	cfg := gopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &Transcriber{
		model:  model,
		client: gopenai.NewClientWithConfig(cfg),
	}
}

// Name returns the backend identifier.
func (t *Transcriber) Name() string { return "openai" }

// Transcribe uploads the recording and returns the recognised text.
func (t *Transcriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, gopenai.AudioRequest{
		Model:    t.model,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("transcription request: %w", err)
	}

	text := strings.TrimSpace(resp.Text)
	slog.Debug("transcription complete", "text_length", len(text))
	return text, nil
}
