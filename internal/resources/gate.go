// Package resources decides when crisis-support contacts are surfaced to the
// user, rate-limited by a per-user cooldown.
package resources

import (
	"log"
	"time"

	"github.com/harshbaithub/helio/internal/history"
)

// ShowThreshold is the minimum score that can trigger a notification. The
// value is hand-picked to match the "High concern" band lower bound and is
// deliberately not derived from the band table.
const ShowThreshold = 4.5

// DefaultCooldown is the minimum interval between two notifications for the
// same user identity.
const DefaultCooldown = 24 * time.Hour

// Gate applies the score threshold and the cooldown against the persisted
// last-shown timestamp.
type Gate struct {
	cooldown time.Duration
}

// NewGate returns a gate with the given cooldown, defaulting to 24 hours.
func NewGate(cooldown time.Duration) *Gate {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Gate{cooldown: cooldown}
}

// ShouldShow reports whether resources should be surfaced for the given score.
// lastShown is the persisted timestamp of the previous notification, empty if
// none was ever shown. A malformed stored timestamp is logged and treated as
// never shown.
//
// When ShouldShow returns true the caller must persist now as the new
// last-shown timestamp before presenting the notification, so a crash mid-
// notification cannot re-trigger it on the next analysis.
func (g *Gate) ShouldShow(score float64, lastShown string, now time.Time) bool {
	if score < ShowThreshold {
		return false
	}
	if lastShown == "" {
		return true
	}
	shown, err := history.ParseTimestamp(lastShown)
	if err != nil {
		log.Printf("resources: malformed last-shown timestamp %q, treating as never shown: %v", lastShown, err)
		return true
	}
	return now.Sub(shown) >= g.cooldown
}
