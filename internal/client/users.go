package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edgehq/edge-cli/internal/models"
)

// OnboardRequest is the payload for creating a new founder account.
type OnboardRequest struct {
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

// Onboard creates the user plus their two AI executives server-side. The
// backend also seeds initial tasks, so this runs on the AI timeout.
func (c *Client) Onboard(ctx context.Context, email string, role models.Role) (*models.User, error) {
	var user models.User
	req := OnboardRequest{Email: email, Role: role}
	if err := c.do(ctx, http.MethodPost, "/api/users/onboard", nil, req, &user, c.aiTimeout); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser retrieves a user by ID.
func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/"+url.PathEscape(id), nil, nil, &user, 0); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/users/email/"+url.PathEscape(email), nil, nil, &user, 0); err != nil {
		return nil, err
	}
	return &user, nil
}
