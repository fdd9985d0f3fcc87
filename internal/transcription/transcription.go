// Package transcription defines the interface for speech-to-text backends.
package transcription

import (
	"context"
	"io"
)

// Transcriber converts recorded speech to text.
type Transcriber interface {
	// Name returns the backend identifier (e.g., "openai").
	Name() string

	// Transcribe reads the whole recording from audio. The filename's
	// extension tells the backend which container format it holds.
	Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error)
}
