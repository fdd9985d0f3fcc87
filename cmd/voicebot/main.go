// Voicebot is a conversational persona chatbot daemon. It answers text
// messages with canned or model-generated replies, transcribes recorded
// speech, and speaks replies back through a hosted voice API.
//
// Usage:
//
//	voicebot [flags]
//	voicebot --config /path/to/voicebot.yaml
//
// @title        Voicebot API
// @version      1.0
// @description  Conversational persona voice bot: text replies, speech-to-text and text-to-speech.
// @license.name MIT
// @BasePath     /
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	_ "github.com/nadzzz/voicebot/docs"
	"github.com/nadzzz/voicebot/internal/completion"
	geminicompletion "github.com/nadzzz/voicebot/internal/completion/gemini"
	openaicompletion "github.com/nadzzz/voicebot/internal/completion/openai"
	"github.com/nadzzz/voicebot/internal/config"
	"github.com/nadzzz/voicebot/internal/dispatch"
	"github.com/nadzzz/voicebot/internal/health"
	"github.com/nadzzz/voicebot/internal/persona"
	"github.com/nadzzz/voicebot/internal/resilience"
	"github.com/nadzzz/voicebot/internal/speech"
	"github.com/nadzzz/voicebot/internal/speech/elevenlabs"
	"github.com/nadzzz/voicebot/internal/transcription"
	openaitranscription "github.com/nadzzz/voicebot/internal/transcription/openai"
	"github.com/nadzzz/voicebot/internal/transport"
	grpctransport "github.com/nadzzz/voicebot/internal/transport/grpc"
	httptransport "github.com/nadzzz/voicebot/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/voicebot.yaml)")
	requireKeys := flag.Bool("require-keys", false, "exit with an error if any provider API key is missing")
	flag.Parse()

	if *showVersion {
		fmt.Printf("voicebot %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("voicebot starting", "version", version)

	keys := cfg.KeyStatus()
	slog.Info("provider credentials",
		"completion_backend", cfg.Completion.Backend,
		"completion_key", config.Mask(cfg.Completion.APIKey),
		"transcription_key", config.Mask(cfg.Transcription.APIKey),
		"speech_key", config.Mask(cfg.Speech.APIKey))
	if missing := keys.Missing(); len(missing) > 0 {
		slog.Warn("missing API keys, affected endpoints will fail", "services", strings.Join(missing, ", "))
		if *requireKeys {
			os.Exit(1)
		}
	}

	personaContext, err := persona.Load(cfg.Persona.File)
	if err != nil {
		slog.Error("failed to load persona", "error", err)
		os.Exit(1)
	}

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Initialize the collaborators whose credentials are configured.
	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize completion backend", "error", err)
		os.Exit(1)
	}
	transcriber := newTranscriber(cfg)
	synthesizer := newSynthesizer(cfg)

	// Create the dispatcher.
	dispatcher := dispatch.New(dispatch.Options{
		Persona:           personaContext,
		CompletionService: cfg.CompletionService(),
		Model:             cfg.Completion.Model,
		MaxTokens:         cfg.Completion.MaxTokens,
		Temperature:       cfg.Completion.Temperature,
		SpeechService:     config.SpeechService,
		Voice:             cfg.Speech.VoiceID,
		SpeechModel:       cfg.Speech.Model,
	}, completer, transcriber, synthesizer)

	checker := health.New(keys)

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(httptransport.Options{
			Port:           cfg.Transports.HTTP.Port,
			CORSOrigins:    cfg.Server.CORSOrigins,
			MaxUploadBytes: cfg.Server.MaxUploadBytes,
			Health:         checker,
		}))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(grpctransport.Options{
			Port:   cfg.Transports.GRPC.Port,
			Health: checker,
			Services: map[string]string{
				"voicebot.completion": cfg.CompletionService(),
				"voicebot.speech":     config.SpeechService,
			},
		}))
	}

	if len(transports) == 0 {
		slog.Error("no transports enabled, enable at least one in config")
		os.Exit(1)
	}

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, dispatcher); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
				cancel()
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	checker.SetReady(true)
	slog.Info("voicebot ready",
		"transports", len(transports),
		"http_port", cfg.Transports.HTTP.Port)

	// Block until shutdown signal.
	<-ctx.Done()
	checker.SetReady(false)
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("voicebot stopped")
}

// newBreaker builds the circuit breaker guarding one collaborator.
func newBreaker(cfg *config.Config, name string, timeout time.Duration) *resilience.Breaker {
	return resilience.New(resilience.Config{
		Name:        name,
		Timeout:     timeout,
		MaxFailures: cfg.Resilience.MaxFailures,
		OpenTimeout: cfg.Resilience.OpenTimeout,
	})
}

// newCompleter returns nil when the completion credential is missing.
func newCompleter(ctx context.Context, cfg *config.Config) (completion.Completer, error) {
	if cfg.Completion.APIKey == "" {
		return nil, nil
	}

	var c completion.Completer
	switch cfg.Completion.Backend {
	case config.BackendOpenRouter, config.BackendOpenAI:
		c = openaicompletion.New(cfg.Completion.Backend, cfg.Completion.APIKey, cfg.Completion.BaseURL)
	case config.BackendGemini:
		g, err := geminicompletion.New(ctx, cfg.Completion.APIKey, cfg.Completion.BaseURL)
		if err != nil {
			return nil, err
		}
		c = g
	default:
		return nil, fmt.Errorf("unknown completion backend %q", cfg.Completion.Backend)
	}

	slog.Info("using completion backend",
		"backend", c.Name(),
		"model", cfg.Completion.Model,
		"base_url", cfg.Completion.BaseURL)
	return resilience.Completer(c, newBreaker(cfg, "completion", cfg.Completion.Timeout)), nil
}

// newTranscriber returns nil when the transcription credential is missing.
func newTranscriber(cfg *config.Config) transcription.Transcriber {
	if cfg.Transcription.APIKey == "" {
		return nil
	}
	t := openaitranscription.New(cfg.Transcription.APIKey, cfg.Transcription.BaseURL, cfg.Transcription.Model)
	slog.Info("using transcription backend", "backend", t.Name(), "model", cfg.Transcription.Model)
	return resilience.Transcriber(t, newBreaker(cfg, "transcription", cfg.Transcription.Timeout))
}

// newSynthesizer returns nil when the speech credential is missing.
func newSynthesizer(cfg *config.Config) speech.Synthesizer {
	if cfg.Speech.APIKey == "" {
		return nil
	}
	s := elevenlabs.New(cfg.Speech.APIKey, cfg.Speech.BaseURL, nil)
	slog.Info("using speech backend", "backend", s.Name(), "voice", cfg.Speech.VoiceID, "model", cfg.Speech.Model)
	return resilience.Synthesizer(s, newBreaker(cfg, "speech", cfg.Speech.Timeout))
}
