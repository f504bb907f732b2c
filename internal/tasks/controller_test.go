package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/edgehq/edge-cli/internal/client"
	"github.com/edgehq/edge-cli/internal/models"
	"github.com/edgehq/edge-cli/internal/state"
)

// fakeAPI serves the task endpoints against an in-memory slice.
type fakeAPI struct {
	tasks  []models.Task
	nextID int
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tasks/user/", func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		out := []models.Task{}
		for _, t := range f.tasks {
			if status == "" || string(t.Status) == status {
				out = append(out, t)
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/api/tasks/role/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/tasks/role/")
		role, _, _ := strings.Cut(rest, "/")
		out := []models.Task{}
		for _, t := range f.tasks {
			if string(t.AssignedToRole) == role {
				out = append(out, t)
			}
		}
		json.NewEncoder(w).Encode(out)
	})
	mux.HandleFunc("/api/tasks/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/tasks/")
		switch r.Method {
		case http.MethodPost:
			var create models.TaskCreate
			json.NewDecoder(r.Body).Decode(&create)
			f.nextID++
			task := models.Task{
				ID:             fmt.Sprintf("t%d", f.nextID),
				UserID:         create.UserID,
				AssignedToRole: create.AssignedToRole,
				Description:    create.Description,
				Status:         create.Status,
				CreatedAt:      time.Now().UTC(),
			}
			f.tasks = append(f.tasks, task)
			json.NewEncoder(w).Encode(task)
		case http.MethodPut:
			var update models.TaskUpdate
			json.NewDecoder(r.Body).Decode(&update)
			for i := range f.tasks {
				if f.tasks[i].ID != id {
					continue
				}
				if update.Description != nil {
					f.tasks[i].Description = *update.Description
				}
				if update.Status != nil {
					f.tasks[i].Status = *update.Status
				}
				json.NewEncoder(w).Encode(f.tasks[i])
				return
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Task not found"})
		case http.MethodDelete:
			for i := range f.tasks {
				if f.tasks[i].ID == id {
					f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
					w.WriteHeader(http.StatusOK)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Task not found"})
		}
	})
	return mux
}

func seedTasks() []models.Task {
	return []models.Task{
		{ID: "t1", UserID: "u1", AssignedToRole: models.RoleCTO, Description: "Ship MVP", Status: models.StatusInProgress},
		{ID: "t2", UserID: "u1", AssignedToRole: models.RoleCMO, Description: "Draft launch post", Status: models.StatusPending},
		{ID: "t3", UserID: "u1", AssignedToRole: models.RoleCEO, Description: "Close pre-seed", Status: models.StatusCompleted},
		{ID: "t4", UserID: "u1", AssignedToRole: models.RoleCTO, Description: "Fix deploy pipeline", Status: models.StatusPending},
	}
}

func newTestController(t *testing.T, api *fakeAPI) (*Controller, *state.Bus) {
	t.Helper()
	srv := httptest.NewServer(api.handler())
	t.Cleanup(srv.Close)
	bus := state.NewBus()
	c := NewController(client.New(srv.URL), bus, models.User{ID: "u1", Role: models.RoleCEO})
	t.Cleanup(c.Close)
	return c, bus
}

func waitForTaskCount(t *testing.T, c *Controller, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(c.Tasks()) == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("task count = %d, want %d", len(c.Tasks()), want)
}

func TestLoadAndFilter(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{tasks: seedTasks()})

	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if got := len(c.Tasks()); got != 4 {
		t.Fatalf("loaded %d tasks, want 4", got)
	}

	pending := models.StatusPending
	filtered := c.Filter(&pending)
	if len(filtered) != 2 {
		t.Fatalf("pending filter returned %d tasks, want 2", len(filtered))
	}
	for _, task := range filtered {
		if task.Status != models.StatusPending {
			t.Errorf("filter leaked status %q", task.Status)
		}
	}

	counts := c.Counts()
	if counts[models.StatusPending] != 2 || counts[models.StatusInProgress] != 1 || counts[models.StatusCompleted] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestLoadWithServerStatusFilter(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{tasks: seedTasks()})

	completed := models.StatusCompleted
	if err := c.Load(context.Background(), &completed); err != nil {
		t.Fatal(err)
	}
	tasks := c.Tasks()
	if len(tasks) != 1 || tasks[0].ID != "t3" {
		t.Fatalf("server filter returned %v", tasks)
	}
}

func TestLoadByRole(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{tasks: seedTasks()})

	if err := c.LoadByRole(context.Background(), models.RoleCTO); err != nil {
		t.Fatal(err)
	}
	tasks := c.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("role endpoint returned %d tasks, want 2", len(tasks))
	}
	for _, task := range tasks {
		if task.AssignedToRole != models.RoleCTO {
			t.Errorf("task %s assigned to %q, want cto", task.ID, task.AssignedToRole)
		}
	}

	// Status filtering still works over the role-scoped list.
	pending := models.StatusPending
	if filtered := c.Filter(&pending); len(filtered) != 1 || filtered[0].ID != "t4" {
		t.Fatalf("pending filter over role list = %v", filtered)
	}
}

func TestCreatePublishesAndInsertsOnce(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{})

	created, err := c.Create(context.Background(), models.RoleCTO, "Write integration tests")
	if err != nil {
		t.Fatal(err)
	}
	if created.Status != models.StatusPending {
		t.Errorf("new task status = %q, want pending", created.Status)
	}

	// The controller's own broadcast subscription inserts the task.
	waitForTaskCount(t, c, 1)
	if got := c.Tasks()[0].ID; got != created.ID {
		t.Errorf("head of list = %s, want %s", got, created.ID)
	}
}

func TestBroadcastDedupesByID(t *testing.T) {
	c, bus := newTestController(t, &fakeAPI{})

	task := &models.Task{ID: "t9", Description: "From another panel", Status: models.StatusPending}
	bus.Publish(state.TopicTaskCreated, task)
	bus.Publish(state.TopicTaskCreated, task)
	waitForTaskCount(t, c, 1)

	// A distinct task still gets prepended.
	bus.Publish(state.TopicTaskCreated, &models.Task{ID: "t10", Status: models.StatusPending})
	waitForTaskCount(t, c, 2)
	if got := c.Tasks()[0].ID; got != "t10" {
		t.Errorf("newest task at position 0 = %s, want t10", got)
	}
}

func TestCreateRequiresDescription(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{})
	if _, err := c.Create(context.Background(), models.RoleCEO, ""); err == nil {
		t.Fatal("expected an error for empty description")
	}
}

func TestCycleStatus(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{tasks: seedTasks()})
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	want := []models.TaskStatus{models.StatusInProgress, models.StatusCompleted, models.StatusPending}
	for _, status := range want {
		updated, err := c.CycleStatus(context.Background(), "t2")
		if err != nil {
			t.Fatal(err)
		}
		if updated.Status != status {
			t.Fatalf("cycled to %q, want %q", updated.Status, status)
		}
	}

	// The local copy tracks the server's record.
	for _, task := range c.Tasks() {
		if task.ID == "t2" && task.Status != models.StatusPending {
			t.Errorf("local copy status = %q, want pending", task.Status)
		}
	}
}

func TestCycleStatusUnknownTask(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{tasks: seedTasks()})
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if _, err := c.CycleStatus(context.Background(), "missing"); err == nil {
		t.Fatal("expected an error for a task outside the loaded list")
	}
}

func TestUpdateStatusJump(t *testing.T) {
	c, _ := newTestController(t, &fakeAPI{tasks: seedTasks()})
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	// Straight to completed, skipping in_progress.
	completed := models.StatusCompleted
	updated, err := c.Update(context.Background(), "t2", models.TaskUpdate{Status: &completed})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("status = %q, want completed", updated.Status)
	}
}

func TestDeleteRemovesLocallyAfterAck(t *testing.T) {
	api := &fakeAPI{tasks: seedTasks()}
	c, _ := newTestController(t, api)
	if err := c.Load(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	if err := c.Delete(context.Background(), "t1"); err != nil {
		t.Fatal(err)
	}
	for _, task := range c.Tasks() {
		if task.ID == "t1" {
			t.Fatal("t1 still present after delete")
		}
	}

	// A rejected delete leaves the list untouched.
	if err := c.Delete(context.Background(), "missing"); err == nil {
		t.Fatal("expected an error for unknown id")
	}
	if got := len(c.Tasks()); got != 3 {
		t.Fatalf("list length = %d after failed delete, want 3", got)
	}
}
