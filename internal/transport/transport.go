// Package transport defines the interface for pluggable voicebot transports.
//
// Each transport (HTTP, gRPC) exposes the voicebot over its own protocol and
// forwards work to a Service. Transports never talk to the completion,
// transcription or speech backends directly.
package transport

import (
	"context"
	"io"

	"github.com/nadzzz/voicebot/internal/conversation"
	"github.com/nadzzz/voicebot/internal/speech"
)

// Service is the request engine a transport serves. *dispatch.Dispatcher
// implements it.
type Service interface {
	GenerateText(ctx context.Context, message string, history []conversation.Turn) (string, error)
	SpeechToText(ctx context.Context, audio io.Reader, filename string) (string, error)
	TextToSpeech(ctx context.Context, text string) (*speech.Result, error)
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Listen starts accepting requests and forwards them to svc.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, svc Service) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
