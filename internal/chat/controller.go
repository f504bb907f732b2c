package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
)

// maxHistoryMessages caps how much stored conversation is shown.
const maxHistoryMessages = 10

// errorReply is appended as a synthetic agent message when a send fails.
const errorReply = "Sorry, I encountered an error. Please try again."

// State is the chat session lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoadingHistory
	StateReady
	StateSending
	StateRevealing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoadingHistory:
		return "loading-history"
	case StateReady:
		return "ready"
	case StateSending:
		return "sending"
	case StateRevealing:
		return "revealing"
	}
	return "unknown"
}

// Controller owns the transcript for one selected agent role. It applies
// the optimistic-append/typed-reveal flow: the user message shows up
// immediately, the agent reply is revealed character by character once the
// full text is in hand. A send is only accepted from the ready state, so
// it is serialized behind history loading and the previous reveal.
type Controller struct {
	api      *client.Client
	user     models.User
	revealer *Revealer

	// onChange, when set, fires after every transcript or state mutation.
	// Views use it to repaint.
	onChange func()

	mu       sync.Mutex
	role     models.Role
	state    State
	messages []models.ChatMessage
}

// NewController creates a controller for the given role. revealInterval
// zero means DefaultRevealInterval.
func NewController(api *client.Client, user models.User, role models.Role, revealInterval time.Duration) *Controller {
	return &Controller{
		api:      api,
		user:     user,
		role:     role,
		revealer: NewRevealer(revealInterval),
		state:    StateIdle,
	}
}

// OnChange registers the repaint hook. It may be called from the reveal
// goroutine. The hook may block (the TUI forwards it into its event
// loop) and may call back into the controller, so it is never invoked
// while the controller's lock is held.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// notify fires the change hook. Callers must not hold c.mu.
func (c *Controller) notify() {
	c.mu.Lock()
	cb := c.onChange
	c.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// Role returns the currently selected agent role.
func (c *Controller) Role() models.Role {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.role
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the visible transcript.
func (c *Controller) Messages() []models.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// LoadHistory fetches the stored conversation for the selected role,
// keeping only the most recent messages. An agent with no history leaves
// an empty transcript; StarterPrompts fills the empty state.
func (c *Controller) LoadHistory(ctx context.Context) error {
	c.mu.Lock()
	role := c.role
	c.state = StateLoadingHistory
	c.mu.Unlock()
	c.notify()

	agents, err := c.api.ListAgents(ctx, c.user.ID)

	c.mu.Lock()
	if c.role != role {
		// Role switched while the fetch was in flight; drop the result.
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.state = StateReady
		c.messages = nil
		c.mu.Unlock()
		c.notify()
		return fmt.Errorf("load conversation history: %w", err)
	}

	c.messages = nil
	for _, agent := range agents {
		if agent.Role != role {
			continue
		}
		history := agent.ConversationState.Messages
		if len(history) > maxHistoryMessages {
			history = history[len(history)-maxHistoryMessages:]
		}
		c.messages = append([]models.ChatMessage(nil), history...)
		break
	}
	c.state = StateReady
	c.mu.Unlock()
	c.notify()
	return nil
}

// Send submits text to the agent. The user message is appended
// immediately; on success the reply is revealed incrementally, on failure
// a synthetic agent-side error message is appended and the failure
// returned for logging. Rejected while the controller is busy.
func (c *Controller) Send(ctx context.Context, text string) error {
	if text == "" {
		return fmt.Errorf("empty message")
	}

	c.mu.Lock()
	if c.state != StateReady {
		state := c.state
		c.mu.Unlock()
		return fmt.Errorf("chat is busy (%s)", state)
	}
	role := c.role
	c.state = StateSending
	c.messages = append(c.messages, models.ChatMessage{
		Message:    text,
		IsFromUser: true,
		Timestamp:  time.Now(),
	})
	c.mu.Unlock()
	c.notify()

	resp, err := c.api.Chat(ctx, models.ChatRequest{
		UserID:     c.user.ID,
		Role:       role,
		Message:    text,
		IsFromUser: true,
	})

	c.mu.Lock()
	if c.role != role {
		c.mu.Unlock()
		return nil
	}
	if err != nil {
		c.messages = append(c.messages, models.ChatMessage{
			Message:   errorReply,
			Timestamp: time.Now(),
		})
		c.state = StateReady
		c.mu.Unlock()
		c.notify()
		return fmt.Errorf("send message: %w", err)
	}

	// Placeholder the reveal fills in.
	c.messages = append(c.messages, models.ChatMessage{Timestamp: time.Now()})
	c.state = StateRevealing
	c.mu.Unlock()
	c.notify()

	c.revealer.Start(resp.Message, func(visible string, done bool) {
		c.mu.Lock()
		if len(c.messages) == 0 {
			c.mu.Unlock()
			return
		}
		c.messages[len(c.messages)-1].Message = visible
		if done {
			c.state = StateReady
		}
		c.mu.Unlock()
		c.notify()
	})
	return nil
}

// SwitchRole discards the in-memory transcript and selects a new role.
// Any in-flight reveal is canceled; history is not merged, the caller
// reloads it from the server.
func (c *Controller) SwitchRole(role models.Role) {
	c.revealer.Cancel()

	c.mu.Lock()
	c.role = role
	c.messages = nil
	c.state = StateIdle
	c.mu.Unlock()
	c.notify()
}

// Close cancels any in-flight reveal.
func (c *Controller) Close() {
	c.revealer.Cancel()
}

// StarterPrompts returns role-specific suggested openers for the empty
// state.
func StarterPrompts(role models.Role) []string {
	switch role {
	case models.RoleCEO:
		return []string{
			"What should our 6-month strategic priorities be?",
			"How do we identify our target market?",
		}
	case models.RoleCTO:
		return []string{
			"What's the best tech stack for our MVP?",
			"How do we plan for scalable architecture?",
		}
	case models.RoleCMO:
		return []string{
			"What's our customer acquisition strategy?",
			"How do we build our brand identity?",
		}
	}
	return nil
}
