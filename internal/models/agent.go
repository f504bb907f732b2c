package models

import (
	"encoding/json"
	"time"
)

// ChatMessage is a single entry in an agent conversation, tagged by origin.
type ChatMessage struct {
	Message    string    `json:"message"`
	IsFromUser bool      `json:"is_from_user"`
	Timestamp  time.Time `json:"timestamp"`
}

// ConversationState is the server-owned conversation blob carried by an
// agent: the ordered message history plus free-form context the backend
// maintains (topics, sentiment, company context). Unknown fields are kept
// in Extra so they round-trip untouched.
type ConversationState struct {
	Messages     []ChatMessage `json:"messages"`
	Initialized  bool          `json:"initialized"`
	MessageCount int           `json:"message_count,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// conversationState mirrors ConversationState for (un)marshalling without
// recursing into the custom methods.
type conversationState struct {
	Messages     []ChatMessage `json:"messages"`
	Initialized  bool          `json:"initialized"`
	MessageCount int           `json:"message_count,omitempty"`
}

func (s *ConversationState) UnmarshalJSON(data []byte) error {
	var known conversationState
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	delete(all, "messages")
	delete(all, "initialized")
	delete(all, "message_count")

	s.Messages = known.Messages
	s.Initialized = known.Initialized
	s.MessageCount = known.MessageCount
	s.Extra = all
	return nil
}

func (s ConversationState) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"messages":    s.Messages,
		"initialized": s.Initialized,
	}
	if s.MessageCount > 0 {
		out["message_count"] = s.MessageCount
	}
	for k, v := range s.Extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// Agent is one AI executive. The backend creates one per (user, AI role)
// pair at onboarding; this client only ever reads it or appends to its
// conversation through the chat endpoint.
type Agent struct {
	ID                string            `json:"id"`
	UserID            string            `json:"user_id"`
	Role              Role              `json:"role"`
	ConversationState ConversationState `json:"conversation_state"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
}

// ChatRequest is the payload for sending a message to an agent.
type ChatRequest struct {
	UserID     string `json:"user_id"`
	Role       Role   `json:"role"`
	Message    string `json:"message"`
	IsFromUser bool   `json:"is_from_user"`
}

// ChatResponse carries the agent reply and the updated conversation blob.
type ChatResponse struct {
	AgentRole         Role               `json:"agent_role"`
	Message           string             `json:"message"`
	ConversationState *ConversationState `json:"conversation_state,omitempty"`
}
