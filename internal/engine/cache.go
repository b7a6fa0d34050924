package engine

import (
	"sync"

	"github.com/harshbaithub/helio/internal/history"
)

// transcriptCache maps user identity to its live transcript. Only the map is
// guarded; transcript mutation relies on the single-turn-per-user guarantee.
type transcriptCache struct {
	mu sync.RWMutex
	m  map[string]*history.Transcript
}

func newTranscriptCache() *transcriptCache {
	return &transcriptCache{m: make(map[string]*history.Transcript)}
}

func (c *transcriptCache) get(userID string) (*history.Transcript, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.m[userID]
	return t, ok
}

// put stores t unless another goroutine won the load race, in which case the
// existing transcript is returned.
func (c *transcriptCache) put(userID string, t *history.Transcript) *history.Transcript {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.m[userID]; ok {
		return existing
	}
	c.m[userID] = t
	return t
}
