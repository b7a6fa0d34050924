// Package brain generates assistant replies through an LLM provider. The
// provider receives the active persona, the session language, and a short
// context window of recent messages.
package brain

import (
	"context"
	"fmt"
	"strings"

	"github.com/harshbaithub/helio/internal/history"
	"github.com/harshbaithub/helio/internal/lexicon"
)

// ContextWindow is how many trailing messages accompany each request.
const ContextWindow = 6

// Request carries one user turn to the provider.
type Request struct {
	Persona  string
	Language lexicon.Language
	Context  []history.Message
	UserText string
}

// Provider produces one assistant reply per request.
type Provider interface {
	Reply(ctx context.Context, req Request) (string, error)
}

// BuildPrompt assembles the full prompt text: persona instruction, language
// directive, recent conversation, then the new user input.
func BuildPrompt(req Request) string {
	var b strings.Builder
	b.WriteString(PersonaPrompt(req.Persona))
	b.WriteString("\n")
	b.WriteString(req.Language.PromptDirective())
	b.WriteString("\n\nPrevious conversation:\n")
	for _, m := range req.Context {
		role := "AI: "
		if m.IsUser {
			role = "User: "
		}
		fmt.Fprintf(&b, "%s%s\n", role, m.Text)
	}
	b.WriteString("\nUser: ")
	b.WriteString(req.UserText)
	return b.String()
}
