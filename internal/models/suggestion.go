package models

// Suggestion is a proactive insight from one of the AI executives. It is
// ephemeral: the client caches the fetched set briefly but never stores
// suggestions server-side.
type Suggestion struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Action    string `json:"action"`
	Priority  string `json:"priority"`
	FromAgent *Role  `json:"from_agent,omitempty"`
}

// Origin returns the role a suggestion should be attributed to when acted
// on: the originating agent, or fallback when the suggestion is unsigned.
func (s Suggestion) Origin(fallback Role) Role {
	if s.FromAgent != nil && s.FromAgent.Valid() {
		return *s.FromAgent
	}
	return fallback
}

// FilterOwnRole drops suggestions originating from the user's own role; a
// founder should not see advice attributed to themselves.
func FilterOwnRole(suggestions []Suggestion, own Role) []Suggestion {
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if s.FromAgent != nil && *s.FromAgent == own {
			continue
		}
		out = append(out, s)
	}
	return out
}
