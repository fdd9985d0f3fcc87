package dispatch

import (
	"context"
	"log/slog"

	"github.com/nadzzz/voicebot/internal/apperr"
	"github.com/nadzzz/voicebot/internal/conversation"
	"github.com/nadzzz/voicebot/internal/message"
	"github.com/nadzzz/voicebot/internal/speech"
)

// TextToSpeech converts text to audio with the configured voice and model.
// The synthesizer's bytes are returned unmodified.
func (d *Dispatcher) TextToSpeech(ctx context.Context, text string) (*speech.Result, error) {
	logger := slog.With("request_id", message.RequestID(ctx))

	text = conversation.Sanitize(text)
	if text == "" {
		return nil, apperr.SpeechGeneration("Text cannot be empty", nil)
	}

	if d.synthesizer == nil {
		logger.Warn("speech key missing", "service", d.opts.SpeechService)
		return nil, apperr.APIKeyMissing(d.opts.SpeechService)
	}

	result, err := d.synthesizer.Synthesize(ctx, text, speech.Options{
		Voice: d.opts.Voice,
		Model: d.opts.SpeechModel,
	})
	if err != nil {
		logger.Error("speech synthesis failed", "backend", d.synthesizer.Name(), "error", err)
		return nil, apperr.SpeechGeneration("Text-to-speech conversion failed", err)
	}

	logger.Info("speech synthesized", "backend", d.synthesizer.Name(), "audio_bytes", len(result.Audio))
	return result, nil
}
