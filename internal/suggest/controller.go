// Package suggest manages the proactive-suggestions panel: a briefly
// cached, role-filtered set of AI insights the user can dismiss or turn
// into tasks.
package suggest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/edgehq/edge-cli/internal/state"
)

// CacheTTL is how long a fetched suggestion set stays fresh. Suggestions
// are expensive to generate, so repeat loads within this window are served
// locally.
const CacheTTL = 5 * time.Minute

// Controller fetches, caches and acts on suggestions for one user.
// Dismissals are positions in the current set and live only as long as
// the controller; a fresh session starts with everything visible.
type Controller struct {
	api   *client.Client
	bus   *state.Bus
	cache *state.Cache
	user  models.User

	mu          sync.Mutex
	suggestions []models.Suggestion
	dismissed   map[int]struct{}
}

// NewController creates a controller backed by the given cache directory
// and broadcast bus.
func NewController(api *client.Client, bus *state.Bus, cache *state.Cache, user models.User) *Controller {
	return &Controller{
		api:       api,
		bus:       bus,
		cache:     cache,
		user:      user,
		dismissed: make(map[int]struct{}),
	}
}

func (c *Controller) cacheKey() string {
	return "suggestions_" + c.user.ID
}

// Load returns the user's suggestions, from cache when fresh, otherwise
// from the server. Suggestions attributed to the user's own role are
// filtered out before caching. Reports whether the result came from cache.
func (c *Controller) Load(ctx context.Context) ([]models.Suggestion, bool, error) {
	var cached []models.Suggestion
	if c.cache.Get(c.cacheKey(), CacheTTL, &cached) {
		c.setSuggestions(cached)
		return cached, true, nil
	}
	fresh, err := c.fetch(ctx)
	if err != nil {
		return nil, false, err
	}
	return fresh, false, nil
}

// Refresh bypasses the cache, fetches a fresh set and resets dismissals.
func (c *Controller) Refresh(ctx context.Context) ([]models.Suggestion, error) {
	c.cache.Invalidate(c.cacheKey())
	return c.fetch(ctx)
}

func (c *Controller) fetch(ctx context.Context) ([]models.Suggestion, error) {
	suggestions, err := c.api.Suggestions(ctx, c.user.ID)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestions: %w", err)
	}
	suggestions = models.FilterOwnRole(suggestions, c.user.Role)
	if err := c.cache.Put(c.cacheKey(), suggestions); err != nil {
		return nil, fmt.Errorf("cache suggestions: %w", err)
	}
	c.setSuggestions(suggestions)
	return suggestions, nil
}

func (c *Controller) setSuggestions(suggestions []models.Suggestion) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestions = suggestions
	c.dismissed = make(map[int]struct{})
}

// Visible returns the current suggestions minus dismissed ones, paired
// with their stable indexes into the loaded set so callers can address
// them for dismissal or take-action.
func (c *Controller) Visible() ([]models.Suggestion, []int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []models.Suggestion
	var indexes []int
	for i, s := range c.suggestions {
		if _, gone := c.dismissed[i]; gone {
			continue
		}
		out = append(out, s)
		indexes = append(indexes, i)
	}
	return out, indexes
}

// Dismiss hides the suggestion at index for the rest of the session. The
// cached set is untouched, so a reload within the TTL shows it again.
func (c *Controller) Dismiss(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.suggestions) {
		return fmt.Errorf("no suggestion at index %d", index)
	}
	c.dismissed[index] = struct{}{}
	return nil
}

// TakeAction converts the suggestion at index into a task assigned to the
// originating agent (or the user's own role when unsigned), broadcasts the
// new task, and dismisses the suggestion.
func (c *Controller) TakeAction(ctx context.Context, index int) (*models.Task, error) {
	c.mu.Lock()
	if index < 0 || index >= len(c.suggestions) {
		c.mu.Unlock()
		return nil, fmt.Errorf("no suggestion at index %d", index)
	}
	if _, gone := c.dismissed[index]; gone {
		c.mu.Unlock()
		return nil, fmt.Errorf("suggestion %d is already dismissed", index)
	}
	suggestion := c.suggestions[index]
	c.mu.Unlock()

	task, err := c.api.CreateTask(ctx, models.TaskCreate{
		UserID:         c.user.ID,
		AssignedToRole: suggestion.Origin(c.user.Role),
		Description:    suggestion.Message,
		Status:         models.StatusPending,
	})
	if err != nil {
		return nil, fmt.Errorf("create task from suggestion: %w", err)
	}
	c.bus.Publish(state.TopicTaskCreated, task)

	c.mu.Lock()
	c.dismissed[index] = struct{}{}
	c.mu.Unlock()
	return task, nil
}
