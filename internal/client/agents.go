package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/edgehq/edge-cli/internal/models"
)

// ListAgents returns the AI executives belonging to a user, including
// their stored conversation state.
func (c *Client) ListAgents(ctx context.Context, userID string) ([]models.Agent, error) {
	var agents []models.Agent
	path := "/api/agents/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &agents, 0); err != nil {
		return nil, err
	}
	return agents, nil
}

// Chat sends a message to an agent and returns its full reply. The reply
// text is complete when this returns; any typed-out presentation is purely
// client-side.
func (c *Client) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	var resp models.ChatResponse
	if err := c.do(ctx, http.MethodPost, "/api/agents/chat", nil, req, &resp, c.aiTimeout); err != nil {
		return nil, err
	}
	return &resp, nil
}

// suggestionsResponse wraps the suggestions list.
type suggestionsResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
}

// Suggestions fetches proactive suggestions for a user. Generation happens
// server-side, so this runs on the AI timeout.
func (c *Client) Suggestions(ctx context.Context, userID string) ([]models.Suggestion, error) {
	var resp suggestionsResponse
	path := "/api/agents/user/" + url.PathEscape(userID) + "/suggestions"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp, c.aiTimeout); err != nil {
		return nil, err
	}
	return resp.Suggestions, nil
}

// AgentStatus summarizes one agent's activity.
type AgentStatus struct {
	ID             string      `json:"id"`
	Role           models.Role `json:"role"`
	Status         string      `json:"status"`
	MessageCount   int         `json:"message_count"`
	LastActive     string      `json:"last_active"`
	RecentTopics   []string    `json:"recent_topics"`
	ContextSummary string      `json:"context_summary"`
	Sentiment      string      `json:"sentiment"`
}

// AgentsStatus is the team-wide activity overview.
type AgentsStatus struct {
	UserRole     models.Role                  `json:"user_role"`
	TotalAgents  int                          `json:"total_agents"`
	ActiveAgents int                          `json:"active_agents"`
	Agents       map[models.Role]*AgentStatus `json:"agents"`
	FetchedAt    time.Time                    `json:"-"`
}

// GetAgentsStatus returns the status overview of all agents for a user.
func (c *Client) GetAgentsStatus(ctx context.Context, userID string) (*AgentsStatus, error) {
	var status AgentsStatus
	path := "/api/agents/user/" + url.PathEscape(userID) + "/status"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &status, 0); err != nil {
		return nil, err
	}
	status.FetchedAt = time.Now()
	return &status, nil
}
