package dispatch_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/nadzzz/voicebot/internal/apperr"
	"github.com/nadzzz/voicebot/internal/completion"
	"github.com/nadzzz/voicebot/internal/conversation"
	"github.com/nadzzz/voicebot/internal/dispatch"
	"github.com/nadzzz/voicebot/internal/persona"
	"github.com/nadzzz/voicebot/internal/speech"
)

// --- fakes ---

type fakeCompleter struct {
	reply string
	err   error
	panic bool
	reqs  []completion.Request
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(_ context.Context, req completion.Request) (string, error) {
	f.reqs = append(f.reqs, req)
	if f.panic {
		panic("backend exploded")
	}
	return f.reply, f.err
}

type fakeTranscriber struct {
	text     string
	err      error
	calls    int
	audio    []byte
	filename string
}

func (f *fakeTranscriber) Name() string { return "fake" }

func (f *fakeTranscriber) Transcribe(_ context.Context, audio io.Reader, filename string) (string, error) {
	f.calls++
	f.filename = filename
	f.audio, _ = io.ReadAll(audio)
	return f.text, f.err
}

type fakeSynthesizer struct {
	audio []byte
	err   error
	calls int
	text  string
	opts  speech.Options
}

func (f *fakeSynthesizer) Name() string { return "fake" }

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string, opts speech.Options) (*speech.Result, error) {
	f.calls++
	f.text = text
	f.opts = opts
	if f.err != nil {
		return nil, f.err
	}
	return &speech.Result{Audio: f.audio, ContentType: "audio/mpeg"}, nil
}

func testOptions(t *testing.T) dispatch.Options {
	t.Helper()
	return dispatch.Options{
		Persona:           "PERSONA",
		CompletionService: "OpenRouter",
		Model:             "openai/gpt-3.5-turbo",
		MaxTokens:         500,
		Temperature:       0.7,
		SpeechService:     "ElevenLabs",
		Voice:             "pNInz6obpgDQGcFmaJgB",
		SpeechModel:       "eleven_monolingual_v1",
		TempDir:           t.TempDir(),
	}
}

func assertKind(t *testing.T, err error, want apperr.Kind) *apperr.Error {
	t.Helper()
	var e *apperr.Error
	if !errors.As(err, &e) {
		t.Fatalf("err = %v (%T), want *apperr.Error", err, err)
	}
	if e.Kind != want {
		t.Fatalf("kind = %s, want %s", e.Kind, want)
	}
	return e
}

// --- GenerateText ---

func TestGenerateText_CannedReplySkipsCompletion(t *testing.T) {
	c := &fakeCompleter{reply: "should not be used"}
	d := dispatch.New(testOptions(t), c, nil, nil)

	got, err := d.GenerateText(context.Background(), "What is your superpower?", nil)
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	want, _ := persona.Lookup(persona.Superpower)
	if got != want {
		t.Errorf("reply = %q, want canned superpower answer", got)
	}
	if len(c.reqs) != 0 {
		t.Errorf("completion called %d times, want 0", len(c.reqs))
	}
}

func TestGenerateText_MissingKey(t *testing.T) {
	d := dispatch.New(testOptions(t), nil, nil, nil)

	// Even a canned question fails when the credential is absent.
	for _, msg := range []string{"What is your superpower?", "How is the weather?"} {
		_, err := d.GenerateText(context.Background(), msg, nil)
		e := assertKind(t, err, apperr.KindAPIKeyMissing)
		if e.Service != "OpenRouter" || e.Detail != "OpenRouter API key missing" {
			t.Errorf("error = %+v", e)
		}
	}
}

func TestGenerateText_DelegatesFormattedConversation(t *testing.T) {
	c := &fakeCompleter{reply: "It is sunny."}
	d := dispatch.New(testOptions(t), c, nil, nil)

	history := []conversation.Turn{
		{Role: "bogus", Content: "x"},
		{Role: conversation.RoleUser, Content: "hi"},
		{Role: conversation.RoleAssistant, Content: "hello!"},
	}
	got, err := d.GenerateText(context.Background(), "  How is the weather?  ", history)
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if got != "It is sunny." {
		t.Errorf("reply = %q", got)
	}

	if len(c.reqs) != 1 {
		t.Fatalf("completion called %d times, want 1", len(c.reqs))
	}
	req := c.reqs[0]
	if req.Model != "openai/gpt-3.5-turbo" || req.MaxTokens != 500 || req.Temperature != 0.7 {
		t.Errorf("request params = %+v", req)
	}

	want := []conversation.Turn{
		{Role: conversation.RoleSystem, Content: "PERSONA"},
		{Role: conversation.RoleUser, Content: "hi"},
		{Role: conversation.RoleAssistant, Content: "hello!"},
		{Role: conversation.RoleUser, Content: "How is the weather?"},
	}
	if len(req.Messages) != len(want) {
		t.Fatalf("messages = %+v", req.Messages)
	}
	for i := range want {
		if req.Messages[i] != want[i] {
			t.Errorf("messages[%d] = %+v, want %+v", i, req.Messages[i], want[i])
		}
	}
}

func TestGenerateText_CompletionFailure(t *testing.T) {
	c := &fakeCompleter{err: errors.New("upstream 502")}
	d := dispatch.New(testOptions(t), c, nil, nil)

	_, err := d.GenerateText(context.Background(), "How is the weather?", nil)
	e := assertKind(t, err, apperr.KindTextGeneration)
	if e.Detail != "Failed to generate AI response: upstream 502" {
		t.Errorf("detail = %q", e.Detail)
	}
	if !errors.Is(err, c.err) {
		t.Error("cause should be wrapped")
	}
}

func TestGenerateText_PanicBecomesTextGenerationFailure(t *testing.T) {
	c := &fakeCompleter{panic: true}
	d := dispatch.New(testOptions(t), c, nil, nil)

	reply, err := d.GenerateText(context.Background(), "How is the weather?", nil)
	e := assertKind(t, err, apperr.KindTextGeneration)
	if !strings.Contains(e.Detail, "backend exploded") {
		t.Errorf("detail = %q", e.Detail)
	}
	if reply != "" {
		t.Errorf("reply = %q, want empty", reply)
	}
}

func TestNew_DefaultPersona(t *testing.T) {
	c := &fakeCompleter{reply: "ok"}
	opts := testOptions(t)
	opts.Persona = ""
	d := dispatch.New(opts, c, nil, nil)

	if _, err := d.GenerateText(context.Background(), "hello", nil); err != nil {
		t.Fatal(err)
	}
	if got := c.reqs[0].Messages[0].Content; got != persona.Default() {
		t.Errorf("system turn = %.40q, want built-in persona", got)
	}
}

// --- TextToSpeech ---

func TestTextToSpeech(t *testing.T) {
	audio := []byte{0xff, 0xfb, 0x01}
	s := &fakeSynthesizer{audio: audio}
	d := dispatch.New(testOptions(t), nil, nil, s)

	got, err := d.TextToSpeech(context.Background(), "  Hello there \n")
	if err != nil {
		t.Fatalf("TextToSpeech: %v", err)
	}
	if !bytes.Equal(got.Audio, audio) {
		t.Errorf("audio modified: %x", got.Audio)
	}
	if s.text != "Hello there" {
		t.Errorf("text = %q", s.text)
	}
	if s.opts.Voice != "pNInz6obpgDQGcFmaJgB" || s.opts.Model != "eleven_monolingual_v1" {
		t.Errorf("opts = %+v", s.opts)
	}
}

func TestTextToSpeech_EmptyText(t *testing.T) {
	s := &fakeSynthesizer{}
	d := dispatch.New(testOptions(t), nil, nil, s)

	for _, text := range []string{"", "   \t\n"} {
		_, err := d.TextToSpeech(context.Background(), text)
		assertKind(t, err, apperr.KindSpeechGeneration)
	}
	if s.calls != 0 {
		t.Errorf("synthesizer called %d times, want 0", s.calls)
	}
}

func TestTextToSpeech_MissingKey(t *testing.T) {
	d := dispatch.New(testOptions(t), nil, nil, nil)

	_, err := d.TextToSpeech(context.Background(), "hello")
	e := assertKind(t, err, apperr.KindAPIKeyMissing)
	if e.Service != "ElevenLabs" {
		t.Errorf("service = %q", e.Service)
	}
}

func TestTextToSpeech_SynthesizerFailure(t *testing.T) {
	s := &fakeSynthesizer{err: errors.New("quota exceeded")}
	d := dispatch.New(testOptions(t), nil, nil, s)

	_, err := d.TextToSpeech(context.Background(), "hello")
	e := assertKind(t, err, apperr.KindSpeechGeneration)
	if e.Detail != "Text-to-speech conversion failed: quota exceeded" {
		t.Errorf("detail = %q", e.Detail)
	}
}

// --- SpeechToText ---

func assertDirEmpty(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("temp dir not cleaned up: %d entries left", len(entries))
	}
}

func TestSpeechToText(t *testing.T) {
	opts := testOptions(t)
	tr := &fakeTranscriber{text: "hello bot"}
	d := dispatch.New(opts, nil, tr, nil)

	got, err := d.SpeechToText(context.Background(), strings.NewReader("RIFFdata"), "uploads/clip.webm")
	if err != nil {
		t.Fatalf("SpeechToText: %v", err)
	}
	if got != "hello bot" {
		t.Errorf("text = %q", got)
	}
	if string(tr.audio) != "RIFFdata" {
		t.Errorf("transcriber saw %q", tr.audio)
	}
	if tr.filename != "clip.webm" {
		t.Errorf("filename = %q", tr.filename)
	}
	assertDirEmpty(t, opts.TempDir)
}

func TestSpeechToText_NoPayload(t *testing.T) {
	opts := testOptions(t)
	tr := &fakeTranscriber{text: "unused"}
	d := dispatch.New(opts, nil, tr, nil)

	tests := []struct {
		name  string
		audio io.Reader
	}{
		{"nil reader", nil},
		{"empty reader", strings.NewReader("")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.SpeechToText(context.Background(), tt.audio, "clip.wav")
			e := assertKind(t, err, apperr.KindAudioProcessing)
			if e.Detail != "No audio file provided" {
				t.Errorf("detail = %q", e.Detail)
			}
		})
	}
	if tr.calls != 0 {
		t.Errorf("transcriber called %d times, want 0", tr.calls)
	}
	assertDirEmpty(t, opts.TempDir)
}

func TestSpeechToText_FailureDegradesToPlaceholder(t *testing.T) {
	opts := testOptions(t)
	tr := &fakeTranscriber{err: errors.New("transcription failed (status 401)")}
	d := dispatch.New(opts, nil, tr, nil)

	got, err := d.SpeechToText(context.Background(), strings.NewReader("data"), "clip.wav")
	if err != nil {
		t.Fatalf("SpeechToText: %v", err)
	}
	if got != dispatch.TranscriptionUnavailable {
		t.Errorf("text = %q, want placeholder", got)
	}
	assertDirEmpty(t, opts.TempDir)
}

func TestSpeechToText_MissingKeyReturnsPlaceholder(t *testing.T) {
	opts := testOptions(t)
	d := dispatch.New(opts, nil, nil, nil)

	got, err := d.SpeechToText(context.Background(), strings.NewReader("data"), "")
	if err != nil {
		t.Fatalf("SpeechToText: %v", err)
	}
	if got != dispatch.TranscriptionUnavailable {
		t.Errorf("text = %q, want placeholder", got)
	}
	assertDirEmpty(t, opts.TempDir)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestSpeechToText_ReadFailure(t *testing.T) {
	opts := testOptions(t)
	tr := &fakeTranscriber{}
	d := dispatch.New(opts, nil, tr, nil)

	_, err := d.SpeechToText(context.Background(), failingReader{}, "clip.wav")
	e := assertKind(t, err, apperr.KindAudioProcessing)
	if !strings.Contains(e.Detail, "connection reset") {
		t.Errorf("detail = %q", e.Detail)
	}
	if tr.calls != 0 {
		t.Errorf("transcriber called %d times", tr.calls)
	}
	assertDirEmpty(t, opts.TempDir)
}
