package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageType identifies websocket payload variants.
type MessageType string

const (
	TypeClientText     MessageType = "client_text"
	TypeClientControl  MessageType = "client_control"
	TypeAssistantText  MessageType = "assistant_text"
	TypeAssistantAudio MessageType = "assistant_audio"
	TypeScoreUpdate    MessageType = "score_update"
	TypeResourcesAlert MessageType = "resources_alert"
	TypeSystemEvent    MessageType = "system_event"
	TypeErrorEvent     MessageType = "error_event"
)

// Control actions accepted in a ClientControl message.
const (
	ActionSetPersona  = "set_persona"
	ActionSetVoice    = "set_voice"
	ActionSetLanguage = "set_language"
	ActionEndSession  = "end_session"
)

var ErrUnsupportedType = errors.New("unsupported message type")

type Envelope struct {
	Type MessageType `json:"type"`
}

// ClientText carries one user turn.
type ClientText struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Text      string      `json:"text"`
	TSMs      int64       `json:"ts_ms"`
}

// ClientControl mutates session settings between turns.
type ClientControl struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Action    string      `json:"action"`
	Value     string      `json:"value,omitempty"`
}

// AssistantText carries the assistant reply for one turn.
type AssistantText struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	TurnID    string      `json:"turn_id"`
	Text      string      `json:"text"`
	Persona   string      `json:"persona"`
}

// AssistantAudio carries the synthesized reply audio.
type AssistantAudio struct {
	Type        MessageType `json:"type"`
	SessionID   string      `json:"session_id"`
	TurnID      string      `json:"turn_id"`
	Format      string      `json:"format"`
	AudioBase64 string      `json:"audio_base64"`
}

// ScoreUpdate reports a new concern analysis for the client meter.
type ScoreUpdate struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Score     float64     `json:"score"`
	Label     string      `json:"label"`
	Percent   float64     `json:"percent"`
	Color     string      `json:"color"`
}

// ResourceContact is one crisis-support entry in a ResourcesAlert.
type ResourceContact struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// ResourcesAlert tells the client to display the crisis-resources modal.
type ResourcesAlert struct {
	Type      MessageType       `json:"type"`
	SessionID string            `json:"session_id"`
	Contacts  []ResourceContact `json:"contacts"`
}

type SystemEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Detail    string      `json:"detail,omitempty"`
}

type ErrorEvent struct {
	Type      MessageType `json:"type"`
	SessionID string      `json:"session_id"`
	Code      string      `json:"code"`
	Source    string      `json:"source"`
	Retryable bool        `json:"retryable"`
	Detail    string      `json:"detail"`
}

// ParseClientMessage decodes and validates an inbound client payload.
func ParseClientMessage(raw []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("invalid envelope: %w", err)
	}

	switch env.Type {
	case TypeClientText:
		var msg ClientText
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.Text == "" {
			return nil, errors.New("invalid client_text")
		}
		return msg, nil
	case TypeClientControl:
		var msg ClientControl
		if err := json.Unmarshal(raw, &msg); err != nil {
			return nil, err
		}
		if msg.SessionID == "" || msg.Action == "" {
			return nil, errors.New("invalid client_control")
		}
		switch msg.Action {
		case ActionSetPersona, ActionSetVoice, ActionSetLanguage:
			if msg.Value == "" {
				return nil, fmt.Errorf("%s requires a value", msg.Action)
			}
		case ActionEndSession:
		default:
			return nil, fmt.Errorf("unknown control action %q", msg.Action)
		}
		return msg, nil
	default:
		return nil, ErrUnsupportedType
	}
}
