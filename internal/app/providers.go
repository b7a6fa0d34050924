package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/harshbaithub/helio/internal/brain"
	"github.com/harshbaithub/helio/internal/config"
	"github.com/harshbaithub/helio/internal/voice"
)

type brainSetup struct {
	provider brain.Provider
	detail   string
}

type speechSetup struct {
	provider voice.SpeechProvider
	detail   string
}

func resolveBrainProvider(ctx context.Context, cfg config.Config) (brainSetup, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.BrainProvider))
	if mode == "" {
		mode = "auto"
	}

	tryGemini := func() (brainSetup, bool, error) {
		if cfg.GeminiAPIKey == "" {
			return brainSetup{}, false, nil
		}
		p, err := brain.NewGeminiProvider(ctx, cfg.GeminiAPIKey)
		if err != nil {
			return brainSetup{}, false, fmt.Errorf("gemini provider init failed: %w", err)
		}
		return brainSetup{provider: p, detail: "gemini"}, true, nil
	}

	switch mode {
	case "gemini":
		setup, ok, err := tryGemini()
		if err != nil {
			return brainSetup{}, err
		}
		if !ok {
			return brainSetup{}, fmt.Errorf("BRAIN_PROVIDER=gemini but GEMINI_API_KEY is not set")
		}
		return setup, nil
	case "mock":
		return brainSetup{provider: brain.NewMockProvider(), detail: "mock"}, nil
	case "auto":
		setup, ok, err := tryGemini()
		if err != nil {
			return brainSetup{}, err
		}
		if ok {
			return setup, nil
		}
		return brainSetup{provider: brain.NewMockProvider(), detail: "mock (no gemini key)"}, nil
	default:
		return brainSetup{}, fmt.Errorf("invalid BRAIN_PROVIDER: %q (expected auto|gemini|mock)", cfg.BrainProvider)
	}
}

func resolveSpeechProvider(cfg config.Config) (speechSetup, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.VoiceProvider))
	if mode == "" {
		mode = "auto"
	}

	tryElevenLabs := func() (speechSetup, bool) {
		if cfg.ElevenLabsAPIKey == "" {
			return speechSetup{}, false
		}
		p := voice.NewElevenLabsProvider(voice.ElevenLabsConfig{
			APIKey:              cfg.ElevenLabsAPIKey,
			BaseURL:             cfg.ElevenLabsBaseURL,
			DefaultModelID:      cfg.ElevenLabsTTSModel,
			DefaultOutputFormat: cfg.ElevenLabsTTSOutputFormat,
		})
		return speechSetup{provider: p, detail: "elevenlabs"}, true
	}

	switch mode {
	case "elevenlabs":
		setup, ok := tryElevenLabs()
		if !ok {
			return speechSetup{}, fmt.Errorf("VOICE_PROVIDER=elevenlabs but ELEVENLABS_API_KEY is not set")
		}
		return setup, nil
	case "mock":
		return speechSetup{provider: voice.NewMockProvider(), detail: "mock"}, nil
	case "none":
		return speechSetup{provider: nil, detail: "disabled"}, nil
	case "auto":
		if setup, ok := tryElevenLabs(); ok {
			return setup, nil
		}
		return speechSetup{provider: nil, detail: "disabled (no elevenlabs key)"}, nil
	default:
		return speechSetup{}, fmt.Errorf("invalid VOICE_PROVIDER: %q (expected auto|elevenlabs|mock|none)", cfg.VoiceProvider)
	}
}
