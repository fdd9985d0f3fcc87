// Package completion defines the interface for chat-completion backends.
//
// A completer takes a formatted conversation and returns the assistant's
// reply. Voicebot ships with two backends: an OpenAI-compatible client
// (OpenRouter or OpenAI) and Gemini.
package completion

import (
	"context"
	"errors"

	"github.com/nadzzz/voicebot/internal/conversation"
)

// ErrEmptyResponse is returned when the backend answers without any text.
var ErrEmptyResponse = errors.New("completion returned no choices")

// Request is a single chat-completion call.
type Request struct {
	Model       string
	Messages    []conversation.Turn
	MaxTokens   int
	Temperature float32
}

// Completer is the interface for chat-completion backends.
type Completer interface {
	// Name returns the backend identifier (e.g., "openrouter", "gemini").
	Name() string

	// Complete sends the conversation and returns the first reply.
	Complete(ctx context.Context, req Request) (string, error)
}
