// Package elevenlabs implements the speech Synthesizer on the ElevenLabs
// text-to-speech REST API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/nadzzz/voicebot/internal/speech"
)

const contentTypeMPEG = "audio/mpeg"

// Synthesizer calls POST {base}/text-to-speech/{voice_id}.
type Synthesizer struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// New creates a synthesizer. A nil client selects http.DefaultClient.
func New(apiKey, baseURL string, client *http.Client) *Synthesizer {
	if client == nil {
		client = http.DefaultClient
	}
	return &Synthesizer{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// Name returns the backend identifier.
func (s *Synthesizer) Name() string { return "elevenlabs" }

type synthesizeRequest struct {
	Text    string `json:"text"`
	ModelID string `json:"model_id,omitempty"`
}

// Synthesize renders text with the requested voice and returns MP3 bytes.
func (s *Synthesizer) Synthesize(ctx context.Context, text string, opts speech.Options) (*speech.Result, error) {
	if opts.Voice == "" {
		return nil, fmt.Errorf("voice id is required")
	}

	body, err := json.Marshal(synthesizeRequest{Text: text, ModelID: opts.Model})
	if err != nil {
		return nil, fmt.Errorf("marshalling tts request: %w", err)
	}

	endpoint := s.baseURL + "/text-to-speech/" + url.PathEscape(opts.Voice)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating tts request: %w", err)
	}
	req.Header.Set("xi-api-key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", contentTypeMPEG)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, fmt.Errorf("tts failed (status %d): %s", resp.StatusCode, respBody)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tts audio: %w", err)
	}

	slog.Debug("tts synthesis complete", "voice", opts.Voice, "bytes", len(audio))
	return &speech.Result{Audio: audio, ContentType: contentTypeMPEG}, nil
}
