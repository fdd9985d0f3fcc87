// Package message defines the request and response bodies exchanged over the
// voicebot API, and the per-request values carried on a context.
package message

import (
	"context"
	"encoding/json"

	"github.com/nadzzz/voicebot/internal/conversation"
)

// GenerateTextRequest is the body of POST /api/generate-text.
type GenerateTextRequest struct {
	// Message is the user's new message. It must be present but may be empty.
	Message *string `json:"message" validate:"required" example:"What is your superpower?"`

	// ConversationHistory holds prior turns. Entries are decoded leniently:
	// anything that is not a {role, content} object is ignored.
	ConversationHistory []json.RawMessage `json:"conversation_history" swaggertype:"array,object"`
}

// Text returns the message, or "" when it is absent.
func (r *GenerateTextRequest) Text() string {
	if r.Message == nil {
		return ""
	}
	return *r.Message
}

// History decodes the conversation history, dropping entries that are not
// objects or whose role or content is not a string. Role filtering is left
// to conversation.Format.
func (r *GenerateTextRequest) History() []conversation.Turn {
	turns := make([]conversation.Turn, 0, len(r.ConversationHistory))
	for _, raw := range r.ConversationHistory {
		var entry struct {
			Role    *string `json:"role"`
			Content *string `json:"content"`
		}
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Role == nil {
			continue
		}
		turn := conversation.Turn{Role: conversation.Role(*entry.Role)}
		if entry.Content != nil {
			turn.Content = *entry.Content
		}
		turns = append(turns, turn)
	}
	return turns
}

// TextResponse carries generated or transcribed text.
type TextResponse struct {
	Response string `json:"response" example:"My #1 superpower is adaptability in technical problem-solving."`
}

// WelcomeResponse is returned by GET /.
type WelcomeResponse struct {
	Message string `json:"message" example:"Welcome to the AI Voice Bot API"`
}

// StatusResponse is returned by the health endpoints.
type StatusResponse struct {
	Status  string          `json:"status" example:"ok"`
	APIKeys map[string]bool `json:"api_keys,omitempty"`
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Detail string `json:"detail" example:"OpenRouter API key missing"`
}

type ctxKey int

const requestIDKey ctxKey = iota

// WithRequestID returns a copy of ctx carrying id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the request ID stored in ctx, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
