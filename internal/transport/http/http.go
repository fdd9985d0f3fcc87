// Package http implements the HTTP transport for voicebot.
//
// This transport exposes the REST API used by the web client: text replies,
// speech-to-text uploads and text-to-speech downloads, plus health checks and
// the Swagger UI.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/nadzzz/voicebot/internal/apperr"
	"github.com/nadzzz/voicebot/internal/health"
	"github.com/nadzzz/voicebot/internal/message"
	"github.com/nadzzz/voicebot/internal/transport"
)

const (
	welcomeMessage = "Welcome to the AI Voice Bot API"
	genericDetail  = "An unexpected error occurred. Please try again later."
	audioField     = "audio_file"
	textField      = "text"
)

// Options configures the HTTP transport.
type Options struct {
	Port           int
	CORSOrigins    []string
	MaxUploadBytes int64
	Health         *health.Checker
}

// Transport implements transport.Transport over HTTP.
type Transport struct {
	opts     Options
	validate *validator.Validate
	server   *http.Server
}

// New creates a new HTTP transport.
func New(opts Options) *Transport {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 25 << 20
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	return &Transport{
		opts:     opts,
		validate: validator.New(),
	}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Handler builds the API handler for svc with the full middleware chain.
func (t *Transport) Handler(svc transport.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", t.handleRoot)
	mux.HandleFunc("POST /api/generate-text", func(w http.ResponseWriter, r *http.Request) {
		t.handleGenerateText(w, r, svc)
	})
	mux.HandleFunc("POST /api/speech-to-text", func(w http.ResponseWriter, r *http.Request) {
		t.handleSpeechToText(w, r, svc)
	})
	mux.HandleFunc("POST /api/text-to-speech", func(w http.ResponseWriter, r *http.Request) {
		t.handleTextToSpeech(w, r, svc)
	})

	if t.opts.Health != nil {
		t.opts.Health.Register(mux)
	}

	// Swagger UI serves the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	var h http.Handler = mux
	h = corsHandler(t.opts.CORSOrigins)(h)
	h = recoverPanics(h)
	h = accessLog(h)
	h = requestID(h)
	return h
}

// Listen starts the HTTP server and serves svc until ctx is cancelled.
func (t *Transport) Listen(ctx context.Context, svc transport.Service) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.opts.Port))
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	return t.Serve(ctx, lis, svc)
}

// Serve serves svc on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, svc transport.Service) error {
	t.server = &http.Server{
		Handler:           t.Handler(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("http transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

// writeError renders err as {"detail": ...}. Errors outside the taxonomy
// become a generic 500 that does not leak internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		writeDetail(w, e.Kind.HTTPStatus(), e.Detail)
		return
	}
	slog.Error("unclassified error", "request_id", message.RequestID(r.Context()), "error", err)
	writeDetail(w, http.StatusInternalServerError, genericDetail)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, message.ErrorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
