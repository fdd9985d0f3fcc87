// Package speech defines the interface for text-to-speech synthesis.
//
// Voicebot returns synthesized replies as MP3 so browsers can play them
// directly.
package speech

import "context"

// Options controls synthesis behavior.
type Options struct {
	// Voice is the provider's voice identifier.
	Voice string

	// Model selects the provider's synthesis model.
	Model string
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	// Name returns the backend identifier (e.g., "elevenlabs").
	Name() string

	// Synthesize generates audio for text. The bytes are returned exactly
	// as the provider produced them.
	Synthesize(ctx context.Context, text string, opts Options) (*Result, error)
}

// Result holds the output of synthesis.
type Result struct {
	// Audio is the encoded audio.
	Audio []byte

	// ContentType is the MIME type of Audio (e.g., "audio/mpeg").
	ContentType string
}
