package models

import (
	"encoding/json"
	"testing"
)

func rolePtr(r Role) *Role { return &r }

func TestFilterOwnRole(t *testing.T) {
	suggestions := []Suggestion{
		{Message: "from cto", FromAgent: rolePtr(RoleCTO)},
		{Message: "from ceo", FromAgent: rolePtr(RoleCEO)},
		{Message: "from cmo", FromAgent: rolePtr(RoleCMO)},
		{Message: "unsigned"},
	}

	got := FilterOwnRole(suggestions, RoleCEO)
	if len(got) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(got))
	}
	for _, s := range got {
		if s.FromAgent != nil && *s.FromAgent == RoleCEO {
			t.Errorf("suggestion %q from the user's own role survived the filter", s.Message)
		}
	}
}

func TestSuggestionOrigin(t *testing.T) {
	signed := Suggestion{FromAgent: rolePtr(RoleCMO)}
	if got := signed.Origin(RoleCEO); got != RoleCMO {
		t.Errorf("Origin = %s, want CMO", got)
	}

	unsigned := Suggestion{}
	if got := unsigned.Origin(RoleCEO); got != RoleCEO {
		t.Errorf("Origin fallback = %s, want CEO", got)
	}

	invalid := Suggestion{FromAgent: rolePtr(Role("COO"))}
	if got := invalid.Origin(RoleCTO); got != RoleCTO {
		t.Errorf("Origin with invalid agent = %s, want fallback CTO", got)
	}
}

func TestConversationStateRoundTrip(t *testing.T) {
	raw := `{
		"messages": [{"message": "hi", "is_from_user": true, "timestamp": "2025-06-01T10:00:00Z"}],
		"initialized": true,
		"message_count": 4,
		"topics_discussed": ["fundraising"],
		"sentiment": "positive"
	}`

	var state ConversationState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(state.Messages) != 1 || !state.Messages[0].IsFromUser {
		t.Fatalf("messages not decoded: %+v", state.Messages)
	}
	if state.MessageCount != 4 {
		t.Errorf("message_count = %d, want 4", state.MessageCount)
	}
	if _, ok := state.Extra["topics_discussed"]; !ok {
		t.Error("unknown field topics_discussed was dropped")
	}

	out, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var round map[string]json.RawMessage
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("re-unmarshal: %v", err)
	}
	for _, key := range []string{"messages", "initialized", "message_count", "topics_discussed", "sentiment"} {
		if _, ok := round[key]; !ok {
			t.Errorf("round-tripped state lost %q", key)
		}
	}
}
