// Package dispatch implements the voicebot request engine.
//
// The dispatcher owns the reply pipeline (sanitize → classify → canned
// short-circuit or format → complete) and the two simpler entry points that
// guard speech synthesis and transcription. Every failure leaving this
// package is an *apperr.Error; collaborator errors never escape raw.
package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nadzzz/voicebot/internal/apperr"
	"github.com/nadzzz/voicebot/internal/completion"
	"github.com/nadzzz/voicebot/internal/conversation"
	"github.com/nadzzz/voicebot/internal/message"
	"github.com/nadzzz/voicebot/internal/persona"
	"github.com/nadzzz/voicebot/internal/speech"
	"github.com/nadzzz/voicebot/internal/transcription"
)

// Options holds the fixed per-process settings of a Dispatcher.
type Options struct {
	// Persona is the system context sent with every completion request.
	Persona string

	// CompletionService names the completion provider in key-missing errors.
	CompletionService string
	Model             string
	MaxTokens         int
	Temperature       float32

	// SpeechService names the speech provider in key-missing errors.
	SpeechService string
	Voice         string
	SpeechModel   string

	// TempDir holds uploaded audio while it is transcribed. Empty selects
	// os.TempDir.
	TempDir string
}

// Dispatcher is the central request engine. A nil collaborator means its
// credential is not configured.
type Dispatcher struct {
	opts        Options
	completer   completion.Completer
	transcriber transcription.Transcriber
	synthesizer speech.Synthesizer
}

// New creates a Dispatcher.
func New(opts Options, completer completion.Completer, transcriber transcription.Transcriber, synthesizer speech.Synthesizer) *Dispatcher {
	if opts.Persona == "" {
		opts.Persona = persona.Default()
	}
	return &Dispatcher{
		opts:        opts,
		completer:   completer,
		transcriber: transcriber,
		synthesizer: synthesizer,
	}
}

// GenerateText produces the persona's reply to msg given the prior history.
// Canned answers are returned without calling the completion backend.
func (d *Dispatcher) GenerateText(ctx context.Context, msg string, history []conversation.Turn) (reply string, err error) {
	start := time.Now()
	logger := slog.With("request_id", message.RequestID(ctx))

	if d.completer == nil {
		logger.Warn("completion key missing", "service", d.opts.CompletionService)
		return "", apperr.APIKeyMissing(d.opts.CompletionService)
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while generating reply", "panic", r)
			reply, err = "", apperr.TextGeneration(fmt.Errorf("%v", r))
		}
	}()

	text := conversation.Sanitize(msg)
	category := persona.Classify(text)
	if answer, ok := persona.Lookup(category); ok {
		logger.Info("canned reply", "category", string(category))
		return answer, nil
	}

	messages := conversation.Format(d.opts.Persona, history, text)
	logger.Debug("requesting completion", "backend", d.completer.Name(), "messages", len(messages))

	reply, err = d.completer.Complete(ctx, completion.Request{
		Model:       d.opts.Model,
		Messages:    messages,
		MaxTokens:   d.opts.MaxTokens,
		Temperature: d.opts.Temperature,
	})
	if err != nil {
		logger.Error("completion failed", "backend", d.completer.Name(), "error", err)
		return "", apperr.TextGeneration(err)
	}

	logger.Info("reply generated", "backend", d.completer.Name(), "duration", time.Since(start), "length", len(reply))
	return reply, nil
}
