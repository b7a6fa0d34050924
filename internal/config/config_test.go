package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":8080" {
		t.Fatalf("BindAddr = %q", cfg.BindAddr)
	}
	if cfg.MetricsNamespace != "helio" {
		t.Fatalf("MetricsNamespace = %q", cfg.MetricsNamespace)
	}
	if cfg.ResourceCooldown != 24*time.Hour {
		t.Fatalf("ResourceCooldown = %v", cfg.ResourceCooldown)
	}
	if cfg.DataDir != "chat_history" {
		t.Fatalf("DataDir = %q", cfg.DataDir)
	}
	if cfg.BrainProvider != "auto" || cfg.VoiceProvider != "auto" {
		t.Fatalf("provider defaults = %q / %q", cfg.BrainProvider, cfg.VoiceProvider)
	}
	if cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_BIND_ADDR", ":9999")
	t.Setenv("RESOURCE_COOLDOWN", "1h")
	t.Setenv("APP_SESSION_INACTIVITY_TIMEOUT", "90s")
	t.Setenv("APP_ALLOW_ANY_ORIGIN", "true")
	t.Setenv("DEFAULT_LANGUAGE", "Hindi")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BindAddr != ":9999" {
		t.Fatalf("BindAddr = %q", cfg.BindAddr)
	}
	if cfg.ResourceCooldown != time.Hour {
		t.Fatalf("ResourceCooldown = %v", cfg.ResourceCooldown)
	}
	if cfg.SessionInactivityTimeout != 90*time.Second {
		t.Fatalf("SessionInactivityTimeout = %v", cfg.SessionInactivityTimeout)
	}
	if !cfg.AllowAnyOrigin {
		t.Fatalf("AllowAnyOrigin = false, want true")
	}
	if cfg.DefaultLanguage != "Hindi" {
		t.Fatalf("DefaultLanguage = %q", cfg.DefaultLanguage)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad duration", map[string]string{"RESOURCE_COOLDOWN": "soon"}},
		{"negative cooldown", map[string]string{"RESOURCE_COOLDOWN": "-1h"}},
		{"tiny inactivity timeout", map[string]string{"APP_SESSION_INACTIVITY_TIMEOUT": "1s"}},
		{"bad bool", map[string]string{"APP_ALLOW_ANY_ORIGIN": "maybe"}},
		{"conflicting backends", map[string]string{
			"DATABASE_URL": "postgres://localhost/helio",
			"DB_PATH":      "helio.db",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("Load() accepted invalid environment")
			}
		})
	}
}
