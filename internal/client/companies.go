package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edgehq/edge-cli/internal/models"
)

// CreateCompany creates the startup profile for a user.
func (c *Client) CreateCompany(ctx context.Context, company models.CompanyCreate) (*models.Company, error) {
	var created models.Company
	if err := c.do(ctx, http.MethodPost, "/api/companies/", nil, company, &created, 0); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCompanyByUser returns the user's company profile, or nil when none
// exists yet.
func (c *Client) GetCompanyByUser(ctx context.Context, userID string) (*models.Company, error) {
	var company *models.Company
	path := "/api/companies/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &company, 0); err != nil {
		return nil, err
	}
	return company, nil
}

// UpdateCompany applies a partial update and returns the updated profile.
func (c *Client) UpdateCompany(ctx context.Context, id string, update models.CompanyUpdate) (*models.Company, error) {
	var updated models.Company
	if err := c.do(ctx, http.MethodPut, "/api/companies/"+url.PathEscape(id), nil, update, &updated, 0); err != nil {
		return nil, err
	}
	return &updated, nil
}

// suggestProfileRequest is the payload for AI profile generation.
type suggestProfileRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// SuggestCompanyProfile asks the backend to draft the narrative profile
// fields from a name and description. Server-side AI work, so it runs on
// the AI timeout.
func (c *Client) SuggestCompanyProfile(ctx context.Context, name, description string) (*models.CompanyProfileSuggestion, error) {
	var suggestion models.CompanyProfileSuggestion
	req := suggestProfileRequest{Name: name, Description: description}
	if err := c.do(ctx, http.MethodPost, "/api/companies/suggest", nil, req, &suggestion, c.aiTimeout); err != nil {
		return nil, err
	}
	return &suggestion, nil
}
