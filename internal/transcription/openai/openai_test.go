package openai_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nadzzz/voicebot/internal/transcription/openai"
)

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/transcriptions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if got := r.FormValue("model"); got != "whisper-1" {
			t.Errorf("model = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "clip.wav" {
			t.Errorf("filename = %q", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "RIFFfake" {
			t.Errorf("audio = %q", data)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "  hello voice bot \n"}`))
	}))
	defer srv.Close()

	tr := openai.New("test-key", srv.URL, "whisper-1")
	got, err := tr.Transcribe(context.Background(), strings.NewReader("RIFFfake"), "clip.wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if got != "hello voice bot" {
		t.Errorf("text = %q", got)
	}
}

func TestTranscribe_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"message": "unsupported format"}}`))
	}))
	defer srv.Close()

	_, err := openai.New("test-key", srv.URL, "whisper-1").Transcribe(context.Background(), strings.NewReader("x"), "clip.txt")
	if err == nil {
		t.Fatal("expected error for 400")
	}
}
