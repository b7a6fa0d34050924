package brain

import (
	"context"
	"fmt"
	"sync"
)

// MockProvider is a local fallback used when no Gemini key is configured and
// in tests. Replies can be scripted; otherwise a canned acknowledgement
// echoing the persona is returned.
type MockProvider struct {
	mu      sync.Mutex
	scripts []string
	next    int
}

func NewMockProvider(scripted ...string) *MockProvider {
	return &MockProvider{scripts: scripted}
}

func (p *MockProvider) Reply(_ context.Context, req Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.next < len(p.scripts) {
		reply := p.scripts[p.next]
		p.next++
		return reply, nil
	}
	return fmt.Sprintf("(%s) I hear you. Tell me more.", req.Persona), nil
}
