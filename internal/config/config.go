package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the companion service.
type Config struct {
	BindAddr                 string
	ShutdownTimeout          time.Duration
	SessionInactivityTimeout time.Duration
	MetricsNamespace         string

	AllowAnyOrigin bool

	BrainProvider string
	GeminiAPIKey  string

	VoiceProvider             string
	ElevenLabsAPIKey          string
	ElevenLabsBaseURL         string
	ElevenLabsTTSModel        string
	ElevenLabsTTSOutputFormat string

	DatabaseURL string
	DBPath      string
	DataDir     string

	DefaultLanguage  string
	ResourceCooldown time.Duration
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:                  envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:          envOrDefault("APP_METRICS_NAMESPACE", "helio"),
		AllowAnyOrigin:            false,
		BrainProvider:             envOrDefault("BRAIN_PROVIDER", "auto"),
		GeminiAPIKey:              trimmedEnv("GEMINI_API_KEY"),
		VoiceProvider:             envOrDefault("VOICE_PROVIDER", "auto"),
		ElevenLabsAPIKey:          trimmedEnv("ELEVENLABS_API_KEY"),
		ElevenLabsBaseURL:         envOrDefault("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		ElevenLabsTTSModel:        envOrDefault("ELEVENLABS_TTS_MODEL_ID", "eleven_multilingual_v2"),
		ElevenLabsTTSOutputFormat: envOrDefault("ELEVENLABS_TTS_OUTPUT_FORMAT", "mp3_44100_128"),
		DatabaseURL:               trimmedEnv("DATABASE_URL"),
		DBPath:                    trimmedEnv("DB_PATH"),
		DataDir:                   envOrDefault("DATA_DIR", "chat_history"),
		DefaultLanguage:           envOrDefault("DEFAULT_LANGUAGE", "English"),
		ResourceCooldown:          24 * time.Hour,
		ShutdownTimeout:           15 * time.Second,
		SessionInactivityTimeout:  30 * time.Minute,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.SessionInactivityTimeout, err = durationFromEnv("APP_SESSION_INACTIVITY_TIMEOUT", cfg.SessionInactivityTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ResourceCooldown, err = durationFromEnv("RESOURCE_COOLDOWN", cfg.ResourceCooldown)
	if err != nil {
		return Config{}, err
	}
	cfg.AllowAnyOrigin, err = boolFromEnv("APP_ALLOW_ANY_ORIGIN", cfg.AllowAnyOrigin)
	if err != nil {
		return Config{}, err
	}

	if cfg.SessionInactivityTimeout < 5*time.Second {
		return Config{}, fmt.Errorf("APP_SESSION_INACTIVITY_TIMEOUT must be at least 5s")
	}
	if cfg.ResourceCooldown <= 0 {
		return Config{}, fmt.Errorf("RESOURCE_COOLDOWN must be positive")
	}
	if cfg.DatabaseURL != "" && cfg.DBPath != "" {
		return Config{}, fmt.Errorf("DATABASE_URL and DB_PATH are mutually exclusive")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func trimmedEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := trimmedEnv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func boolFromEnv(key string, fallback bool) (bool, error) {
	v := strings.ToLower(trimmedEnv(key))
	if v == "" {
		return fallback, nil
	}
	switch v {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("%s parse error: expected bool", key)
	}
}
