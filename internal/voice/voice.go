// Package voice synthesizes assistant replies to audio. Speech capture and
// playback belong to the client; the service only produces finished audio for
// a finished response string.
package voice

import "context"

// SpeechProvider converts one reply to audio. The returned format string
// describes the encoding (e.g. "mp3_44100_128").
type SpeechProvider interface {
	Synthesize(ctx context.Context, text, voiceID, modelID string) (audio []byte, format string, err error)
}

// Option is one selectable voice.
type Option struct {
	Label   string `json:"label"`
	VoiceID string `json:"voice_id"`
}

// DefaultVoice is the voice new sessions start with.
const DefaultVoice = "Lily"

// Options is the curated voice catalog offered to clients.
var Options = []Option{
	{"Lily(F)", "Lily"},
	{"Alice(F)", "Alice"},
	{"Aria(F)", "Aria"},
	{"Roger(M)", "Roger"},
	{"Jessica(F)", "Jessica"},
	{"Sarah(F)", "Sarah"},
	{"Callum(M)", "Callum"},
	{"Laura(F)", "Laura"},
	{"Charlie(M)", "Charlie"},
	{"George(M)", "George"},
}
