// Package scoring computes and classifies the heuristic concern score derived
// from keyword matching on conversation text.
package scoring

import (
	"strings"

	"github.com/harshbaithub/helio/internal/history"
	"github.com/harshbaithub/helio/internal/lexicon"
)

// ComputeScore scores a window of user-authored messages against the active
// language's indicator table. The window must already be filtered to user
// messages from the trailing transcript window (history.RecentUserMessages).
//
// Every matching pattern adds its weight to the message's total; a single
// message can accumulate several tiers' weights. Per-message totals are summed
// across the window and normalized by the window size. The second return is
// false when the window is empty: analysis must be skipped entirely, with no
// score recorded.
func ComputeScore(window []history.Message, lang lexicon.Language) (float64, bool) {
	if len(window) == 0 {
		return 0, false
	}

	var total float64
	for _, m := range window {
		total += lexicon.MessageWeight(strings.ToLower(m.Text), lang)
	}

	n := len(window)
	if n < 1 {
		n = 1
	}
	return total / float64(n), true
}
