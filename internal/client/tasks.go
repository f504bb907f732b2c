package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/edgehq/edge-cli/internal/models"
)

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, task models.TaskCreate) (*models.Task, error) {
	var created models.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks/", nil, task, &created, 0); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListTasks returns a user's tasks, optionally server-filtered by status.
func (c *Client) ListTasks(ctx context.Context, userID string, status *models.TaskStatus) ([]models.Task, error) {
	var query url.Values
	if status != nil {
		query = url.Values{"status": {string(*status)}}
	}

	var tasks []models.Task
	path := "/api/tasks/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &tasks, 0); err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListTasksByRole returns a user's tasks assigned to one role.
func (c *Client) ListTasksByRole(ctx context.Context, role models.Role, userID string) ([]models.Task, error) {
	var tasks []models.Task
	path := "/api/tasks/role/" + url.PathEscape(string(role)) + "/user/" + url.PathEscape(userID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &tasks, 0); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTask applies a partial update and returns the updated record.
func (c *Client) UpdateTask(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	var updated models.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), nil, update, &updated, 0); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil, nil, 0)
}
