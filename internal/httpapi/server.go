package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/harshbaithub/helio/internal/brain"
	"github.com/harshbaithub/helio/internal/config"
	"github.com/harshbaithub/helio/internal/engine"
	"github.com/harshbaithub/helio/internal/history"
	"github.com/harshbaithub/helio/internal/lexicon"
	"github.com/harshbaithub/helio/internal/observability"
	"github.com/harshbaithub/helio/internal/session"
	"github.com/harshbaithub/helio/internal/voice"
)

// Engine is the turn pipeline surface the API depends on.
type Engine interface {
	ProcessTurn(ctx context.Context, sess *session.Session, turnID, userText string) (engine.TurnResult, error)
	Bootstrap(ctx context.Context, sess *session.Session) engine.ScoreUpdate
	History(ctx context.Context, userID string) []history.Message
	Scores(ctx context.Context, userID string, limit int) []history.ScoreEntry
	Export(ctx context.Context, userID string, w io.Writer) error
}

type Server struct {
	cfg      config.Config
	sessions *session.Manager
	engine   Engine
	metrics  *observability.Metrics
	upgrader websocket.Upgrader
}

func New(cfg config.Config, sessions *session.Manager, eng Engine, metrics *observability.Metrics) *Server {
	return &Server{
		cfg:      cfg,
		sessions: sessions,
		engine:   eng,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				// Default: only allow browser websocket connections from the
				// same origin, so another website cannot drive a user's
				// conversation if Helio is ever exposed beyond localhost.
				if cfg.AllowAnyOrigin {
					return true
				}
				origin := strings.TrimSpace(r.Header.Get("Origin"))
				if origin == "" {
					// Non-browser clients often omit Origin. Allow them.
					return true
				}
				u, err := url.Parse(origin)
				if err != nil {
					return false
				}
				if u.Scheme != "http" && u.Scheme != "https" {
					return false
				}
				return strings.EqualFold(u.Host, r.Host)
			},
		},
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		observability.MetricsHandler().ServeHTTP(w, r)
	})

	r.Post("/v1/session", s.handleCreateSession)
	r.Post("/v1/session/{id}/end", s.handleEndSession)
	r.Get("/v1/session/ws", s.handleSessionWS)

	r.Get("/v1/users/{id}/history", s.handleHistory)
	r.Get("/v1/users/{id}/scores", s.handleScores)
	r.Get("/v1/users/{id}/export", s.handleExport)

	r.Get("/v1/personas", s.handleListPersonas)
	r.Get("/v1/voices", s.handleListVoices)
	r.Get("/v1/languages", s.handleListLanguages)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req session.CreateRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		respondError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		req.UserID = "default_user"
	}
	if strings.TrimSpace(req.Persona) == "" {
		req.Persona = brain.DefaultPersona
	}
	if !brain.ValidPersona(req.Persona) {
		respondError(w, http.StatusBadRequest, "invalid_persona", "unknown persona: "+req.Persona)
		return
	}
	if strings.TrimSpace(req.VoiceID) == "" {
		req.VoiceID = voice.DefaultVoice
	}
	langName := req.Language
	if strings.TrimSpace(langName) == "" {
		langName = s.cfg.DefaultLanguage
	}
	lang, err := lexicon.Parse(langName)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_language", err.Error())
		return
	}

	sess := s.sessions.Create(req.UserID, req.Persona, req.VoiceID, lang)
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("created").Inc()

	// Populate the client meter from persisted history before the first turn.
	update := s.engine.Bootstrap(r.Context(), sess)

	ui := lang.UI()
	resp := session.CreateResponse{
		SessionID:       sess.ID,
		UserID:          sess.UserID,
		Status:          sess.Status,
		Persona:         sess.Persona,
		VoiceID:         sess.VoiceID,
		Language:        lang.String(),
		LanguageCode:    lang.Code(),
		Disclaimer:      ui.Disclaimer,
		Welcome:         ui.Welcome,
		StartedAt:       sess.StartedAt,
		LastActivityAt:  sess.LastActivityAt,
		InactivityTTLMS: s.cfg.SessionInactivityTimeout.Milliseconds(),
	}
	if update.Scored {
		resp.InitialScore = &session.ScoreSnapshot{
			Score:   update.Score,
			Label:   update.Label,
			Percent: update.Percent,
			Color:   update.Color,
		}
	}
	// The bootstrap analysis already consumed the notification cooldown when
	// the gate fired, so the alert must ride this response.
	if update.ShowResources {
		resp.Resources = update.Contacts
	}
	respondJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		respondError(w, http.StatusBadRequest, "invalid_session_id", "missing session id")
		return
	}

	sess, err := s.sessions.End(id)
	if err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}
	s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
	s.metrics.SessionEvents.WithLabelValues("ended").Inc()
	respondJSON(w, http.StatusOK, sess)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if strings.TrimSpace(userID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	messages := s.engine.History(r.Context(), userID)
	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":      userID,
		"chat_history": messages,
	})
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if strings.TrimSpace(userID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	scores := s.engine.Scores(r.Context(), userID, limit)
	respondJSON(w, http.StatusOK, map[string]any{
		"user_id":           userID,
		"depression_scores": scores,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if strings.TrimSpace(userID) == "" {
		respondError(w, http.StatusBadRequest, "invalid_user_id", "missing user id")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+userID+`_chat_export.txt"`)
	if err := s.engine.Export(r.Context(), userID, w); err != nil {
		// Headers are already out; nothing more to do than log-by-proxy.
		s.metrics.PersistenceFailures.WithLabelValues("export").Inc()
	}
}

func (s *Server) handleListPersonas(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"personas": brain.Personas(),
		"default":  brain.DefaultPersona,
	})
}

func (s *Server) handleListVoices(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"voices":   voice.Options,
		"default":  voice.DefaultVoice,
		"provider": s.cfg.VoiceProvider,
	})
}

type languageInfo struct {
	Name       string            `json:"name"`
	NativeName string            `json:"native_name"`
	Code       string            `json:"code"`
	UI         lexicon.UIStrings `json:"ui_strings"`
}

func (s *Server) handleListLanguages(w http.ResponseWriter, _ *http.Request) {
	out := make([]languageInfo, 0, len(lexicon.All()))
	for _, l := range lexicon.All() {
		out = append(out, languageInfo{
			Name:       l.String(),
			NativeName: l.NativeName(),
			Code:       l.Code(),
			UI:         l.UI(),
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"languages": out,
		"default":   s.cfg.DefaultLanguage,
	})
}
