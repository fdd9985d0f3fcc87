// Package config handles loading and validating the voicebot configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Completion backends.
const (
	BackendOpenRouter = "openrouter"
	BackendOpenAI     = "openai"
	BackendGemini     = "gemini"
)

// SpeechService is the display name of the speech-synthesis provider.
const SpeechService = "ElevenLabs"

// Config is the root configuration for the voicebot daemon.
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Transports    TransportsConfig    `mapstructure:"transports"`
	Persona       PersonaConfig       `mapstructure:"persona"`
	Completion    CompletionConfig    `mapstructure:"completion"`
	Transcription TranscriptionConfig `mapstructure:"transcription"`
	Speech        SpeechConfig        `mapstructure:"speech"`
	Resilience    ResilienceConfig    `mapstructure:"resilience"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

// ServerConfig holds settings shared by the API surface.
type ServerConfig struct {
	CORSOrigins    []string `mapstructure:"cors_origins" validate:"min=1"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes" validate:"min=1"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
	GRPC GRPCConfig `mapstructure:"grpc"`
}

// HTTPConfig configures the HTTP API transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"min=1,max=65535"`
}

// GRPCConfig configures the gRPC health transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"min=1,max=65535"`
}

// PersonaConfig points at an optional persona context file. An empty File
// selects the built-in persona.
type PersonaConfig struct {
	File string `mapstructure:"file"`
}

// CompletionConfig selects and configures the chat-completion backend.
type CompletionConfig struct {
	Backend     string        `mapstructure:"backend" validate:"oneof=openrouter openai gemini"`
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url" validate:"omitempty,url"`
	Model       string        `mapstructure:"model" validate:"required"`
	MaxTokens   int           `mapstructure:"max_tokens" validate:"min=1"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// TranscriptionConfig configures the speech-to-text collaborator.
type TranscriptionConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// SpeechConfig configures the text-to-speech collaborator.
type SpeechConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	VoiceID string        `mapstructure:"voice_id" validate:"required"`
	Model   string        `mapstructure:"model" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// ResilienceConfig tunes the circuit breakers wrapped around each collaborator.
type ResilienceConfig struct {
	MaxFailures uint32        `mapstructure:"max_failures" validate:"min=1"`
	OpenTimeout time.Duration `mapstructure:"open_timeout" validate:"gt=0"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

// backendDefaults holds the per-backend values applied when base_url or
// model are left empty.
var backendDefaults = map[string]struct {
	service string
	keyEnv  string
	baseURL string
	model   string
}{
	BackendOpenRouter: {"OpenRouter", "OPENROUTER_API_KEY", "https://openrouter.ai/api/v1", "openai/gpt-3.5-turbo"},
	BackendOpenAI:     {"OpenAI", "OPENAI_API_KEY", "https://api.openai.com/v1", "gpt-3.5-turbo"},
	BackendGemini:     {"Gemini", "GEMINI_API_KEY", "", "gemini-2.0-flash"},
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./voicebot.yaml, ./configs/voicebot.yaml, /etc/voicebot/voicebot.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.max_upload_bytes", 25<<20)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8000)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("persona.file", "")
	v.SetDefault("completion.backend", BackendOpenRouter)
	v.SetDefault("completion.api_key", "")
	v.SetDefault("completion.base_url", "")
	v.SetDefault("completion.model", "")
	v.SetDefault("completion.max_tokens", 500)
	v.SetDefault("completion.temperature", 0.7)
	v.SetDefault("completion.timeout", 30*time.Second)
	v.SetDefault("transcription.api_key", "")
	v.SetDefault("transcription.base_url", "https://api.openai.com/v1")
	v.SetDefault("transcription.model", "whisper-1")
	v.SetDefault("transcription.timeout", 60*time.Second)
	v.SetDefault("speech.api_key", "")
	v.SetDefault("speech.base_url", "https://api.elevenlabs.io/v1")
	v.SetDefault("speech.voice_id", "pNInz6obpgDQGcFmaJgB")
	v.SetDefault("speech.model", "eleven_monolingual_v1")
	v.SetDefault("speech.timeout", 30*time.Second)
	v.SetDefault("resilience.max_failures", 5)
	v.SetDefault("resilience.open_timeout", 30*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("voicebot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/voicebot")
	}

	// Environment variables: VOICEBOT_TRANSPORTS_HTTP_PORT, VOICEBOT_COMPLETION_BACKEND, etc.
	v.SetEnvPrefix("VOICEBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (optional, env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)
	cfg.applyBackendDefaults()
	cfg.resolveKeys()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyBackendDefaults() {
	c.Completion.Backend = strings.ToLower(strings.TrimSpace(c.Completion.Backend))
	d, ok := backendDefaults[c.Completion.Backend]
	if !ok {
		return
	}
	if c.Completion.BaseURL == "" {
		c.Completion.BaseURL = d.baseURL
	}
	if c.Completion.Model == "" {
		c.Completion.Model = d.model
	}
}

// resolveKeys fills every credential from ${VAR} references or, when left
// empty, from the provider's well-known environment variable.
func (c *Config) resolveKeys() {
	c.Completion.APIKey = resolveEnvRef(c.Completion.APIKey)
	if c.Completion.APIKey == "" {
		if d, ok := backendDefaults[c.Completion.Backend]; ok {
			c.Completion.APIKey = os.Getenv(d.keyEnv)
		}
	}

	c.Transcription.APIKey = resolveEnvRef(c.Transcription.APIKey)
	if c.Transcription.APIKey == "" {
		c.Transcription.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.Transcription.APIKey == "" && c.Completion.Backend != BackendGemini {
		c.Transcription.APIKey = c.Completion.APIKey
	}

	c.Speech.APIKey = resolveEnvRef(c.Speech.APIKey)
	if c.Speech.APIKey == "" {
		c.Speech.APIKey = os.Getenv("ELEVENLABS_API_KEY")
	}
}

// CompletionService returns the display name of the configured completion
// provider, as used in error details and key status reports.
func (c *Config) CompletionService() string {
	if d, ok := backendDefaults[c.Completion.Backend]; ok {
		return d.service
	}
	return c.Completion.Backend
}

// KeyStatus reports which provider credentials are configured.
func (c *Config) KeyStatus() KeyStatus {
	return KeyStatus{
		c.CompletionService(): c.Completion.APIKey != "",
		SpeechService:         c.Speech.APIKey != "",
	}
}

// KeyStatus maps a provider name to whether its credential is present.
type KeyStatus map[string]bool

// Missing returns the providers without a credential, sorted by name.
func (s KeyStatus) Missing() []string {
	var missing []string
	for name, ok := range s {
		if !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// AllPresent reports whether every provider has a credential.
func (s KeyStatus) AllPresent() bool {
	return len(s.Missing()) == 0
}

// Mask renders a secret for logs, keeping only a short prefix and suffix.
func Mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	if len(secret) <= 12 {
		return "****"
	}
	return secret[:8] + "****" + secret[len(secret)-4:]
}

// splitList expands comma separated entries, which is how list values
// arrive from environment variables.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		return os.Getenv(val[2 : len(val)-1])
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
