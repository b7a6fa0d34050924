package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/harshbaithub/helio/internal/config"
	"github.com/harshbaithub/helio/internal/engine"
	"github.com/harshbaithub/helio/internal/lexicon"
	"github.com/harshbaithub/helio/internal/protocol"
	"github.com/harshbaithub/helio/internal/resources"
	"github.com/harshbaithub/helio/internal/session"
)

func dialWS(t *testing.T, srv *httptest.Server, sessionID string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/session/ws?session_id=" + sessionID
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", wsURL, err)
	}
	return conn
}

func readEnvelope(t *testing.T, conn *websocket.Conn) (protocol.MessageType, []byte) {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, raw, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var env protocol.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env.Type, raw
}

func TestWebsocketTurn(t *testing.T) {
	sessions := session.NewManager(time.Minute)
	eng := &stubEngine{
		turn: engine.TurnResult{
			Reply:         "I'm here with you.",
			Persona:       "Therapist",
			Scored:        true,
			Score:         5.0,
			Label:         "High concern",
			Percent:       50,
			Color:         "#f39c12",
			ShowResources: true,
			Contacts:      resources.Contacts,
			Audio:         []byte("fake-audio"),
			AudioFormat:   "mp3_44100_128",
		},
	}
	server := New(config.Config{DefaultLanguage: "English"}, sessions, eng, testMetrics)
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	sess := sessions.Create("u1", "Therapist", "Lily", lexicon.English)
	conn := dialWS(t, srv, sess.ID)
	defer conn.Close()

	out, _ := json.Marshal(protocol.ClientText{
		Type: protocol.TypeClientText, SessionID: sess.ID, Text: "I want to end it",
	})
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatalf("write: %v", err)
	}

	// A scored turn with an alert emits score_update, resources_alert,
	// assistant_text, then assistant_audio, in that order.
	typ, raw := readEnvelope(t, conn)
	if typ != protocol.TypeScoreUpdate {
		t.Fatalf("first message type = %q, want score_update", typ)
	}
	var score protocol.ScoreUpdate
	if err := json.Unmarshal(raw, &score); err != nil {
		t.Fatalf("decode score: %v", err)
	}
	if score.Score != 5.0 || score.Label != "High concern" {
		t.Fatalf("score update = %+v", score)
	}

	typ, raw = readEnvelope(t, conn)
	if typ != protocol.TypeResourcesAlert {
		t.Fatalf("second message type = %q, want resources_alert", typ)
	}
	var alert protocol.ResourcesAlert
	if err := json.Unmarshal(raw, &alert); err != nil {
		t.Fatalf("decode alert: %v", err)
	}
	if len(alert.Contacts) != len(resources.Contacts) {
		t.Fatalf("alert carries %d contacts, want %d", len(alert.Contacts), len(resources.Contacts))
	}

	typ, raw = readEnvelope(t, conn)
	if typ != protocol.TypeAssistantText {
		t.Fatalf("third message type = %q, want assistant_text", typ)
	}
	var text protocol.AssistantText
	if err := json.Unmarshal(raw, &text); err != nil {
		t.Fatalf("decode text: %v", err)
	}
	if text.Text != "I'm here with you." || text.TurnID == "" {
		t.Fatalf("assistant text = %+v", text)
	}

	typ, raw = readEnvelope(t, conn)
	if typ != protocol.TypeAssistantAudio {
		t.Fatalf("fourth message type = %q, want assistant_audio", typ)
	}
	var audio protocol.AssistantAudio
	if err := json.Unmarshal(raw, &audio); err != nil {
		t.Fatalf("decode audio: %v", err)
	}
	if audio.Format != "mp3_44100_128" || audio.AudioBase64 == "" {
		t.Fatalf("assistant audio = %+v", audio)
	}

	// The turn bookkeeping closes out on the server goroutine shortly after
	// the last frame is written.
	deadline := time.Now().Add(2 * time.Second)
	for {
		got, err := sessions.Get(sess.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.ActiveTurnID == "" && got.TurnCount == 1 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("turn not closed: %+v", got)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebsocketControl(t *testing.T) {
	sessions := session.NewManager(time.Minute)
	server := New(config.Config{DefaultLanguage: "English"}, sessions, &stubEngine{}, testMetrics)
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	sess := sessions.Create("u1", "Therapist", "Lily", lexicon.English)
	conn := dialWS(t, srv, sess.ID)
	defer conn.Close()

	out, _ := json.Marshal(protocol.ClientControl{
		Type: protocol.TypeClientControl, SessionID: sess.ID,
		Action: protocol.ActionSetLanguage, Value: "Marathi",
	})
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatalf("write: %v", err)
	}

	typ, _ := readEnvelope(t, conn)
	if typ != protocol.TypeSystemEvent {
		t.Fatalf("control reply type = %q, want system_event", typ)
	}

	got, _ := sessions.Get(sess.ID)
	if got.Language != lexicon.Marathi {
		t.Fatalf("language not updated: %+v", got)
	}

	// Unknown persona comes back as an error event, session untouched.
	out, _ = json.Marshal(protocol.ClientControl{
		Type: protocol.TypeClientControl, SessionID: sess.ID,
		Action: protocol.ActionSetPersona, Value: "Wizard",
	})
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatalf("write: %v", err)
	}
	typ, _ = readEnvelope(t, conn)
	if typ != protocol.TypeErrorEvent {
		t.Fatalf("bad persona reply type = %q, want error_event", typ)
	}
}

func TestWebsocketControlRejectsForeignSession(t *testing.T) {
	sessions := session.NewManager(time.Minute)
	server := New(config.Config{DefaultLanguage: "English"}, sessions, &stubEngine{}, testMetrics)
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	mine := sessions.Create("u1", "Therapist", "Lily", lexicon.English)
	other := sessions.Create("u2", "Therapist", "Lily", lexicon.English)

	conn := dialWS(t, srv, mine.ID)
	defer conn.Close()

	// A control frame naming another session must be rejected without
	// touching either session's state.
	out, _ := json.Marshal(protocol.ClientControl{
		Type: protocol.TypeClientControl, SessionID: other.ID,
		Action: protocol.ActionSetLanguage, Value: "Hindi",
	})
	if err := conn.WriteMessage(websocket.TextMessage, out); err != nil {
		t.Fatalf("write: %v", err)
	}

	typ, raw := readEnvelope(t, conn)
	if typ != protocol.TypeErrorEvent {
		t.Fatalf("reply type = %q, want error_event", typ)
	}
	var ev protocol.ErrorEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatalf("decode error event: %v", err)
	}
	if ev.Code != "session_mismatch" {
		t.Fatalf("error code = %q, want session_mismatch", ev.Code)
	}

	for _, s := range []*session.Session{mine, other} {
		got, err := sessions.Get(s.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Language != lexicon.English {
			t.Fatalf("session %s language changed: %+v", s.ID, got)
		}
	}
}

func TestWebsocketRejectsUnknownSession(t *testing.T) {
	sessions := session.NewManager(time.Minute)
	server := New(config.Config{DefaultLanguage: "English"}, sessions, &stubEngine{}, testMetrics)
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/session/ws?session_id=nope"
	_, res, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err == nil {
		t.Fatalf("dial succeeded for unknown session")
	}
	if res == nil || res.StatusCode != 404 {
		t.Fatalf("handshake response = %+v", res)
	}
}
