package dispatch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nadzzz/voicebot/internal/apperr"
	"github.com/nadzzz/voicebot/internal/message"
)

// TranscriptionUnavailable is returned in place of a transcript whenever the
// transcription backend cannot be used.
const TranscriptionUnavailable = "I'm sorry, but speech-to-text is currently limited. Please type your message instead."

const defaultAudioName = "audio.wav"

// SpeechToText transcribes an uploaded recording. A nil or empty audio
// reader is an audio-processing failure. Transcription faults degrade to
// TranscriptionUnavailable instead of an error.
func (d *Dispatcher) SpeechToText(ctx context.Context, audio io.Reader, filename string) (string, error) {
	logger := slog.With("request_id", message.RequestID(ctx))

	if audio == nil {
		return "", apperr.AudioProcessing("No audio file provided", nil)
	}

	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		name = defaultAudioName
	}
	ext := filepath.Ext(name)
	if ext == "" {
		ext = filepath.Ext(defaultAudioName)
	}

	tmp, err := os.CreateTemp(d.opts.TempDir, "voicebot-*"+ext)
	if err != nil {
		return "", apperr.AudioProcessing("Speech-to-text conversion failed", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, audio)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", apperr.AudioProcessing("Speech-to-text conversion failed", err)
	}
	if n == 0 {
		return "", apperr.AudioProcessing("No audio file provided", nil)
	}

	if d.transcriber == nil {
		logger.Warn("transcription key missing, returning placeholder")
		return TranscriptionUnavailable, nil
	}

	f, err := os.Open(tmp.Name())
	if err != nil {
		return "", apperr.AudioProcessing("Speech-to-text conversion failed", err)
	}
	defer f.Close()

	text, err := d.transcriber.Transcribe(ctx, f, name)
	if err != nil {
		logger.Warn("transcription failed, returning placeholder", "backend", d.transcriber.Name(), "error", err)
		return TranscriptionUnavailable, nil
	}

	logger.Info("audio transcribed", "backend", d.transcriber.Name(), "audio_bytes", n, "text_length", len(text))
	return text, nil
}
