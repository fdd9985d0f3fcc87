package resilience

import (
	"context"
	"io"

	"github.com/nadzzz/voicebot/internal/completion"
	"github.com/nadzzz/voicebot/internal/speech"
	"github.com/nadzzz/voicebot/internal/transcription"
)

// Completer wraps next so every Complete runs under b.
func Completer(next completion.Completer, b *Breaker) completion.Completer {
	return &guardedCompleter{next: next, b: b}
}

type guardedCompleter struct {
	next completion.Completer
	b    *Breaker
}

func (g *guardedCompleter) Name() string { return g.next.Name() }

func (g *guardedCompleter) Complete(ctx context.Context, req completion.Request) (string, error) {
	return Call(ctx, g.b, func(ctx context.Context) (string, error) {
		return g.next.Complete(ctx, req)
	})
}

// Transcriber wraps next so every Transcribe runs under b.
func Transcriber(next transcription.Transcriber, b *Breaker) transcription.Transcriber {
	return &guardedTranscriber{next: next, b: b}
}

type guardedTranscriber struct {
	next transcription.Transcriber
	b    *Breaker
}

func (g *guardedTranscriber) Name() string { return g.next.Name() }

func (g *guardedTranscriber) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	return Call(ctx, g.b, func(ctx context.Context) (string, error) {
		return g.next.Transcribe(ctx, audio, filename)
	})
}

// Synthesizer wraps next so every Synthesize runs under b.
func Synthesizer(next speech.Synthesizer, b *Breaker) speech.Synthesizer {
	return &guardedSynthesizer{next: next, b: b}
}

type guardedSynthesizer struct {
	next speech.Synthesizer
	b    *Breaker
}

func (g *guardedSynthesizer) Name() string { return g.next.Name() }

func (g *guardedSynthesizer) Synthesize(ctx context.Context, text string, opts speech.Options) (*speech.Result, error) {
	return Call(ctx, g.b, func(ctx context.Context) (*speech.Result, error) {
		return g.next.Synthesize(ctx, text, opts)
	})
}
