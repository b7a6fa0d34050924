package session

import (
	"time"

	"github.com/harshbaithub/helio/internal/resources"
)

// CreateRequest defines the payload for creating a new session.
type CreateRequest struct {
	UserID   string `json:"user_id"`
	Persona  string `json:"persona"`
	VoiceID  string `json:"voice_id"`
	Language string `json:"language"`
}

// ScoreSnapshot is an analysis result rendered into the client meter.
type ScoreSnapshot struct {
	Score   float64 `json:"score"`
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
}

// CreateResponse returns created session metadata plus the localized strings
// the client renders around the conversation. InitialScore and Resources
// carry the bootstrap analysis of persisted history: when the notification
// gate fires during bootstrap its cooldown marker is already written, so the
// client must render Resources from this response or the alert is lost.
type CreateResponse struct {
	SessionID       string    `json:"session_id"`
	UserID          string    `json:"user_id"`
	Status          Status    `json:"status"`
	Persona         string    `json:"persona"`
	VoiceID         string    `json:"voice_id"`
	Language        string    `json:"language"`
	LanguageCode    string    `json:"language_code"`
	Disclaimer      string    `json:"disclaimer"`
	Welcome         string    `json:"welcome"`
	StartedAt       time.Time `json:"started_at"`
	LastActivityAt  time.Time `json:"last_activity_at"`
	InactivityTTLMS int64     `json:"inactivity_ttl_ms"`

	InitialScore *ScoreSnapshot      `json:"initial_score,omitempty"`
	Resources    []resources.Contact `json:"resources,omitempty"`
}
