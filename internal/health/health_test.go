package health_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nadzzz/voicebot/internal/config"
	"github.com/nadzzz/voicebot/internal/health"
	"github.com/nadzzz/voicebot/internal/message"
)

func get(t *testing.T, mux *http.ServeMux, path string) (int, message.StatusResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body message.StatusResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return rec.Code, body
}

func TestHealth_AlwaysOK(t *testing.T) {
	t.Parallel()

	c := health.New(config.KeyStatus{"OpenRouter": false})
	mux := http.NewServeMux()
	c.Register(mux)

	code, body := get(t, mux, "/api/health")
	if code != http.StatusOK || body.Status != "ok" {
		t.Errorf("got %d %+v", code, body)
	}
	if body.APIKeys != nil {
		t.Errorf("liveness should not report keys: %v", body.APIKeys)
	}
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		keys       config.KeyStatus
		ready      bool
		wantCode   int
		wantStatus string
	}{
		{"all present", config.KeyStatus{"OpenRouter": true, "ElevenLabs": true}, true, http.StatusOK, "ok"},
		{"missing key", config.KeyStatus{"OpenRouter": true, "ElevenLabs": false}, true, http.StatusServiceUnavailable, "degraded"},
		{"not ready", config.KeyStatus{"OpenRouter": true, "ElevenLabs": true}, false, http.StatusServiceUnavailable, "not_ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := health.New(tt.keys)
			c.SetReady(tt.ready)
			mux := http.NewServeMux()
			c.Register(mux)

			code, body := get(t, mux, "/api/readyz")
			if code != tt.wantCode || body.Status != tt.wantStatus {
				t.Errorf("got %d %q, want %d %q", code, body.Status, tt.wantCode, tt.wantStatus)
			}
			if len(body.APIKeys) != len(tt.keys) {
				t.Errorf("api_keys = %v", body.APIKeys)
			}
			if c.Ready() != (tt.wantCode == http.StatusOK) {
				t.Errorf("Ready() = %v", c.Ready())
			}
		})
	}
}

func TestChecker_SnapshotIsIsolated(t *testing.T) {
	t.Parallel()

	keys := config.KeyStatus{"OpenRouter": false}
	c := health.New(keys)
	keys["OpenRouter"] = true

	if c.KeyPresent("OpenRouter") {
		t.Error("checker should not observe later changes to the input map")
	}
	c.Keys()["OpenRouter"] = true
	if c.KeyPresent("OpenRouter") {
		t.Error("Keys() should return a copy")
	}
}
