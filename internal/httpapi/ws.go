package httpapi

import (
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/harshbaithub/helio/internal/brain"
	"github.com/harshbaithub/helio/internal/lexicon"
	"github.com/harshbaithub/helio/internal/protocol"
	"github.com/harshbaithub/helio/internal/session"
)

// handleSessionWS runs the realtime conversation loop for one session. The
// wire is strictly turn-based: each client_text is processed to completion
// before the next inbound message is read, which matches the single-writer
// turn model.
func (s *Server) handleSessionWS(w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session_id", "query parameter session_id is required")
		return
	}
	if _, err := s.sessions.Get(sessionID); err != nil {
		respondError(w, http.StatusNotFound, "session_not_found", err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("httpapi: websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("httpapi: websocket read failed: %v", err)
			}
			return
		}

		msg, err := protocol.ParseClientMessage(raw)
		if err != nil {
			s.writeWS(conn, protocol.ErrorEvent{
				Type: protocol.TypeErrorEvent, SessionID: sessionID,
				Code: "invalid_message", Source: "client", Detail: err.Error(),
			})
			continue
		}

		switch m := msg.(type) {
		case protocol.ClientText:
			if m.SessionID != sessionID {
				s.writeWS(conn, protocol.ErrorEvent{
					Type: protocol.TypeErrorEvent, SessionID: sessionID,
					Code: "session_mismatch", Source: "client", Detail: "message session_id does not match connection",
				})
				continue
			}
			if done := s.runTurn(r, conn, sessionID, m.Text); done {
				return
			}
		case protocol.ClientControl:
			if m.SessionID != sessionID {
				s.writeWS(conn, protocol.ErrorEvent{
					Type: protocol.TypeErrorEvent, SessionID: sessionID,
					Code: "session_mismatch", Source: "client", Detail: "message session_id does not match connection",
				})
				continue
			}
			if done := s.runControl(conn, sessionID, m); done {
				return
			}
		}
	}
}

func (s *Server) runTurn(r *http.Request, conn *websocket.Conn, sessionID, text string) (closed bool) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		s.writeWS(conn, protocol.ErrorEvent{
			Type: protocol.TypeErrorEvent, SessionID: sessionID,
			Code: "session_not_found", Source: "server", Detail: err.Error(),
		})
		return true
	}
	if sess.Status != session.StatusActive {
		s.writeWS(conn, protocol.ErrorEvent{
			Type: protocol.TypeErrorEvent, SessionID: sessionID,
			Code: "session_ended", Source: "server", Detail: "session is no longer active",
		})
		return true
	}

	turnID := uuid.NewString()
	if err := s.sessions.StartTurn(sessionID, turnID); err != nil {
		return true
	}
	defer func() {
		_ = s.sessions.EndTurn(sessionID)
	}()

	res, err := s.engine.ProcessTurn(r.Context(), sess, turnID, text)
	if err != nil {
		s.writeWS(conn, protocol.ErrorEvent{
			Type: protocol.TypeErrorEvent, SessionID: sessionID,
			Code: "turn_failed", Source: "server", Retryable: true, Detail: err.Error(),
		})
		return false
	}

	if res.Scored {
		s.writeWS(conn, protocol.ScoreUpdate{
			Type: protocol.TypeScoreUpdate, SessionID: sessionID,
			Score: res.Score, Label: res.Label, Percent: res.Percent, Color: res.Color,
		})
	}
	if res.ShowResources {
		contacts := make([]protocol.ResourceContact, 0, len(res.Contacts))
		for _, c := range res.Contacts {
			contacts = append(contacts, protocol.ResourceContact{Name: c.Name, Contact: c.Contact})
		}
		s.writeWS(conn, protocol.ResourcesAlert{
			Type: protocol.TypeResourcesAlert, SessionID: sessionID, Contacts: contacts,
		})
	}

	s.writeWS(conn, protocol.AssistantText{
		Type: protocol.TypeAssistantText, SessionID: sessionID,
		TurnID: res.TurnID, Text: res.Reply, Persona: res.Persona,
	})
	if len(res.Audio) > 0 {
		s.writeWS(conn, protocol.AssistantAudio{
			Type: protocol.TypeAssistantAudio, SessionID: sessionID,
			TurnID: res.TurnID, Format: res.AudioFormat,
			AudioBase64: base64.StdEncoding.EncodeToString(res.Audio),
		})
	}
	return false
}

func (s *Server) runControl(conn *websocket.Conn, sessionID string, m protocol.ClientControl) (closed bool) {
	var err error
	switch m.Action {
	case protocol.ActionSetPersona:
		if !brain.ValidPersona(m.Value) {
			err = errors.New("unknown persona: " + m.Value)
			break
		}
		err = s.sessions.SetPersona(sessionID, m.Value)
	case protocol.ActionSetVoice:
		err = s.sessions.SetVoice(sessionID, m.Value)
	case protocol.ActionSetLanguage:
		var lang lexicon.Language
		lang, err = lexicon.Parse(m.Value)
		if err == nil {
			err = s.sessions.SetLanguage(sessionID, lang)
		}
	case protocol.ActionEndSession:
		if _, err = s.sessions.End(sessionID); err == nil {
			s.metrics.ActiveSessions.Set(float64(s.sessions.ActiveCount()))
			s.metrics.SessionEvents.WithLabelValues("ended").Inc()
			s.writeWS(conn, protocol.SystemEvent{
				Type: protocol.TypeSystemEvent, SessionID: sessionID, Code: "session_ended",
			})
			return true
		}
	}

	if err != nil {
		s.writeWS(conn, protocol.ErrorEvent{
			Type: protocol.TypeErrorEvent, SessionID: sessionID,
			Code: "control_failed", Source: "server", Detail: err.Error(),
		})
		return false
	}
	s.writeWS(conn, protocol.SystemEvent{
		Type: protocol.TypeSystemEvent, SessionID: sessionID,
		Code: "control_applied", Detail: m.Action,
	})
	return false
}

func (s *Server) writeWS(conn *websocket.Conn, payload any) {
	if err := conn.WriteJSON(payload); err != nil {
		log.Printf("httpapi: websocket write failed: %v", err)
	}
}
