// Package app wires configuration, providers, storage, and the HTTP surface
// into a runnable service.
package app

import (
	"context"
	"fmt"

	"github.com/harshbaithub/helio/internal/config"
	"github.com/harshbaithub/helio/internal/engine"
	"github.com/harshbaithub/helio/internal/httpapi"
	"github.com/harshbaithub/helio/internal/observability"
	"github.com/harshbaithub/helio/internal/resources"
	"github.com/harshbaithub/helio/internal/session"
	"github.com/harshbaithub/helio/internal/store"
)

// BuildResult bundles everything main needs to serve and shut down cleanly.
type BuildResult struct {
	Config   config.Config
	API      *httpapi.Server
	Sessions *session.Manager
	Engine   *engine.Engine
	Metrics  *observability.Metrics

	BrainDetail string
	VoiceDetail string

	// Cleanup releases external resources (DB handles, provider clients).
	Cleanup func() error
}

func Build(ctx context.Context, cfg config.Config) (*BuildResult, error) {
	metrics := observability.NewMetrics(cfg.MetricsNamespace)

	st, err := store.New(ctx, cfg.DatabaseURL, cfg.DBPath, cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("store init failed: %w", err)
	}

	brainSetup, err := resolveBrainProvider(ctx, cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	speechSetup, err := resolveSpeechProvider(cfg)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	sessions := session.NewManager(cfg.SessionInactivityTimeout)
	sessions.SetExpireHook(func(_ *session.Session) {
		metrics.SessionEvents.WithLabelValues("expired").Inc()
		metrics.ActiveSessions.Set(float64(sessions.ActiveCount()))
	})

	gate := resources.NewGate(cfg.ResourceCooldown)
	eng := engine.New(st, brainSetup.provider, speechSetup.provider, gate, metrics)

	api := httpapi.New(cfg, sessions, eng, metrics)

	cleanup := func() error {
		return st.Close()
	}

	return &BuildResult{
		Config:      cfg,
		API:         api,
		Sessions:    sessions,
		Engine:      eng,
		Metrics:     metrics,
		BrainDetail: brainSetup.detail,
		VoiceDetail: speechSetup.detail,
		Cleanup:     cleanup,
	}, nil
}
