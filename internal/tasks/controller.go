// Package tasks manages the client-side task list: fetching, optimistic
// inserts via the task-created broadcast, status cycling, and filtering.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/edgehq/edge-cli/internal/state"
)

// Controller owns one in-memory task list, kept in sync with the server
// by explicit calls and with the rest of the client by the task-created
// broadcast. Filtering and counts are pure functions over this list; they
// never refetch.
type Controller struct {
	api  *client.Client
	bus  *state.Bus
	user models.User

	mu    sync.Mutex
	tasks []models.Task

	unsubscribe func()
}

// NewController creates a controller and subscribes it to task-created
// broadcasts so tasks created elsewhere (suggestion take-action, other
// panels) are prepended without a refetch.
func NewController(api *client.Client, bus *state.Bus, user models.User) *Controller {
	c := &Controller{api: api, bus: bus, user: user}

	ch, cancel := bus.Subscribe(state.TopicTaskCreated)
	c.unsubscribe = cancel
	go func() {
		for payload := range ch {
			if task, ok := payload.(*models.Task); ok {
				c.prepend(*task)
			}
		}
	}()
	return c
}

// Close unsubscribes from the broadcast.
func (c *Controller) Close() {
	if c.unsubscribe != nil {
		c.unsubscribe()
	}
}

// prepend inserts a task at the head unless it is already present.
func (c *Controller) prepend(task models.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, t := range c.tasks {
		if t.ID == task.ID {
			return
		}
	}
	c.tasks = append([]models.Task{task}, c.tasks...)
}

// Load fetches the user's tasks, optionally server-filtered by status,
// replacing the in-memory list.
func (c *Controller) Load(ctx context.Context, status *models.TaskStatus) error {
	tasks, err := c.api.ListTasks(ctx, c.user.ID, status)
	if err != nil {
		return fmt.Errorf("load tasks: %w", err)
	}
	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	return nil
}

// LoadByRole fetches only the tasks assigned to one role, using the
// server's role endpoint instead of filtering client-side, and replaces
// the in-memory list.
func (c *Controller) LoadByRole(ctx context.Context, role models.Role) error {
	tasks, err := c.api.ListTasksByRole(ctx, role, c.user.ID)
	if err != nil {
		return fmt.Errorf("load tasks for %s: %w", role, err)
	}
	c.mu.Lock()
	c.tasks = tasks
	c.mu.Unlock()
	return nil
}

// Tasks returns a copy of the in-memory list.
func (c *Controller) Tasks() []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

// Filter returns the tasks matching status; nil means all. Purely
// client-side over the already-fetched list.
func (c *Controller) Filter(status *models.TaskStatus) []models.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	if status == nil {
		out := make([]models.Task, len(c.tasks))
		copy(out, c.tasks)
		return out
	}
	var out []models.Task
	for _, t := range c.tasks {
		if t.Status == *status {
			out = append(out, t)
		}
	}
	return out
}

// Counts returns per-status totals computed from the in-memory list.
func (c *Controller) Counts() map[models.TaskStatus]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[models.TaskStatus]int, 3)
	for _, t := range c.tasks {
		counts[t.Status]++
	}
	return counts
}

// Create creates a task on the server and broadcasts it. The local list
// picks it up through the same broadcast every other panel uses.
func (c *Controller) Create(ctx context.Context, role models.Role, description string) (*models.Task, error) {
	if description == "" {
		return nil, fmt.Errorf("task description is required")
	}
	created, err := c.api.CreateTask(ctx, models.TaskCreate{
		UserID:         c.user.ID,
		AssignedToRole: role,
		Description:    description,
		Status:         models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	c.bus.Publish(state.TopicTaskCreated, created)
	return created, nil
}

// CycleStatus advances a task to its cyclic successor status and applies
// the server's record locally.
func (c *Controller) CycleStatus(ctx context.Context, id string) (*models.Task, error) {
	c.mu.Lock()
	var current *models.Task
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			current = &c.tasks[i]
			break
		}
	}
	if current == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("task %s not in the loaded list", id)
	}
	next := current.Status.Next()
	c.mu.Unlock()

	return c.Update(ctx, id, models.TaskUpdate{Status: &next})
}

// Update applies a partial edit (including out-of-order status jumps) and
// replaces the local copy with the server's record.
func (c *Controller) Update(ctx context.Context, id string, update models.TaskUpdate) (*models.Task, error) {
	updated, err := c.api.UpdateTask(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i] = *updated
			break
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// Delete removes a task server-side, then drops it from the local list.
// The local removal only happens after the server acknowledged.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}
