package resources

// Contact is one crisis-support resource shown in the notification modal.
type Contact struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// Contacts is the static list surfaced when the gate fires.
var Contacts = []Contact{
	{"988 Suicide & Crisis Lifeline", "Call or text 988"},
	{"Crisis Text Line", "Text HOME to 741741"},
	{"National Alliance on Mental Illness", "1-800-950-NAMI (6264)"},
	{"Substance Abuse and Mental Health Services Administration", "1-800-662-HELP (4357)"},
}
