package lexicon

import (
	"fmt"
	"strings"
)

// Language tags one of the supported conversation locales. Exactly one
// language is active per session; there is no detection or fallback.
type Language int

const (
	English Language = iota
	Hindi
	Marathi
)

// UIStrings holds the localized strings a client renders around a session.
type UIStrings struct {
	Disclaimer      string `json:"disclaimer"`
	Welcome         string `json:"welcome"`
	TypePlaceholder string `json:"type_placeholder"`
}

type languageInfo struct {
	name      string
	code      string
	native    string
	directive string
	ui        UIStrings
}

var languages = [...]languageInfo{
	English: {
		name:      "English",
		code:      "en-IN",
		native:    "English (India)",
		directive: "Respond in English",
		ui: UIStrings{
			Disclaimer:      "DISCLAIMER: Not a substitute for professional services",
			Welcome:         "Hello! Select a mode and let's chat",
			TypePlaceholder: "Type your message here...",
		},
	},
	Hindi: {
		name:      "Hindi",
		code:      "hi-IN",
		native:    "हिन्दी",
		directive: "हिंदी में जवाब दें",
		ui: UIStrings{
			Disclaimer:      "अस्वीकरण: पेशेवर सेवाओं का विकल्प नहीं",
			Welcome:         "नमस्ते! एक मोड चुनें और चैट करें",
			TypePlaceholder: "यहां अपना संदेश लिखें...",
		},
	},
	Marathi: {
		name:      "Marathi",
		code:      "mr-IN",
		native:    "मराठी",
		directive: "मराठी मध्ये उत्तर द्या",
		ui: UIStrings{
			Disclaimer:      "डिस्क्लेमर: व्यावसायिक सेवांचा पर्याय नाही",
			Welcome:         "नमस्कार! एक मोड निवडा आणि चॅट करा",
			TypePlaceholder: "येथे आपला संदेश टाइप करा...",
		},
	},
}

// All returns the supported languages in stable order.
func All() []Language {
	return []Language{English, Hindi, Marathi}
}

func (l Language) valid() bool {
	return l >= English && l <= Marathi
}

func (l Language) String() string {
	if !l.valid() {
		return "unknown"
	}
	return languages[l].name
}

// Code returns the locale tag used by speech and LLM collaborators.
func (l Language) Code() string {
	if !l.valid() {
		return languages[English].code
	}
	return languages[l].code
}

// NativeName returns the language's self-designation for UI pickers.
func (l Language) NativeName() string {
	if !l.valid() {
		return languages[English].native
	}
	return languages[l].native
}

// PromptDirective returns the instruction appended to LLM prompts so replies
// come back in the session language.
func (l Language) PromptDirective() string {
	if !l.valid() {
		return languages[English].directive
	}
	return languages[l].directive
}

// UI returns the localized strings for this language.
func (l Language) UI() UIStrings {
	if !l.valid() {
		return languages[English].ui
	}
	return languages[l].ui
}

// Parse resolves a language from its name or locale code (case-insensitive).
func Parse(s string) (Language, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, l := range All() {
		if v == strings.ToLower(languages[l].name) || v == strings.ToLower(languages[l].code) {
			return l, nil
		}
	}
	switch v {
	case "en":
		return English, nil
	case "hi":
		return Hindi, nil
	case "mr":
		return Marathi, nil
	}
	return English, fmt.Errorf("unsupported language: %q", s)
}
