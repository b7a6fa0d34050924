package brain

// DefaultPersona is the persona new sessions start with.
const DefaultPersona = "Therapist"

var personaPrompts = map[string]string{
	"Therapist":        "You are a compassionate AI therapist. Respond with empathy, and also provide relevant solutions to problems put forth to you. (NOTE - Keep the response very short, in most cases one or two lines max and meaningful with better solutions to their problem)",
	"Life Coach":       "You are an enthusiastic life coach. Help users set personal and professional goals, develop actionable plans, and overcome obstacles. Focus on motivation and personal growth. (Keep the response short and smooth)",
	"Career Counselor": "You are a professional career advisor. Analyze job market trends, provide career development advice, and offer resume/interview tips. Help users align their skills with career opportunities. (Keep the response short and smooth)",
	"Friend":           "You are a supportive friend. Engage in casual, empathetic conversation. Offer emotional support and relatable advice while maintaining a positive, non-judgmental tone. (Keep the response short and smooth)",
	"Teacher":          "You are a knowledgeable educator. Explain concepts clearly, provide learning strategies, and encourage critical thinking. Adapt explanations to the user's knowledge level. (Keep the response short and smooth)",
}

// personaOrder keeps listing order stable for API responses.
var personaOrder = []string{"Therapist", "Life Coach", "Career Counselor", "Friend", "Teacher"}

// Personas returns the available persona names in stable order.
func Personas() []string {
	out := make([]string, len(personaOrder))
	copy(out, personaOrder)
	return out
}

// ValidPersona reports whether name is a known persona.
func ValidPersona(name string) bool {
	_, ok := personaPrompts[name]
	return ok
}

// PersonaPrompt returns the system prompt for the named persona, falling back
// to the default persona for unknown names.
func PersonaPrompt(name string) string {
	if p, ok := personaPrompts[name]; ok {
		return p
	}
	return personaPrompts[DefaultPersona]
}
