package voice

import "context"

// MockProvider is a local fallback used when ElevenLabs is not configured.
// It returns the reply text bytes so clients can still exercise the audio
// path end to end.
type MockProvider struct{}

func NewMockProvider() *MockProvider { return &MockProvider{} }

func (p *MockProvider) Synthesize(_ context.Context, text, _, _ string) ([]byte, string, error) {
	return []byte(text), "mock_text_bytes", nil
}
