package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/edgehq/edge-cli/internal/models"
)

func TestBearerTokenAttachedWhenAvailable(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken(func() string { return "tok-1" }))
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("Authorization = %q", gotAuth)
	}

	anon := New(srv.URL)
	if err := anon.Health(context.Background()); err != nil {
		t.Fatalf("Health (anon): %v", err)
	}
	if gotAuth != "" {
		t.Errorf("anonymous request carried Authorization %q", gotAuth)
	}
}

func TestRequestIDHeaderSet(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if err := New(srv.URL).Health(context.Background()); err != nil {
		t.Fatal(err)
	}
	if gotID == "" {
		t.Error("X-Request-ID not set")
	}
}

func TestAPIErrorCarriesServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "User with this email already exists"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Onboard(context.Background(), "dup@example.com", models.RoleCEO)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Detail(err, "fallback"); got != "User with this email already exists" {
		t.Errorf("Detail = %q", got)
	}
}

func TestDetailFallsBackWithoutServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := New(srv.URL).Health(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Detail(err, "try again"); got != "try again" {
		t.Errorf("Detail = %q", got)
	}
}

func TestIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "User not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetUser(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound = false for %v", err)
	}
}

func TestListTasksStatusFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "completed" {
			t.Errorf("status query = %q", got)
		}
		json.NewEncoder(w).Encode([]models.Task{{ID: "t1", Status: models.StatusCompleted}})
	}))
	defer srv.Close()

	status := models.StatusCompleted
	tasks, err := New(srv.URL).ListTasks(context.Background(), "u1", &status)
	if err != nil {
		t.Fatalf("ListTasks: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != "t1" {
		t.Errorf("tasks = %+v", tasks)
	}
}

func TestChatUsesLongTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Longer than the default timeout, shorter than the AI one.
		time.Sleep(150 * time.Millisecond)
		json.NewEncoder(w).Encode(models.ChatResponse{AgentRole: models.RoleCTO, Message: "hi"})
	}))
	defer srv.Close()

	c := New(srv.URL, WithTimeouts(50*time.Millisecond, time.Second))
	resp, err := c.Chat(context.Background(), models.ChatRequest{UserID: "u1", Role: models.RoleCTO, Message: "hello", IsFromUser: true})
	if err != nil {
		t.Fatalf("Chat should survive past the default timeout: %v", err)
	}
	if resp.Message != "hi" {
		t.Errorf("Message = %q", resp.Message)
	}

	// The same delay kills a default-timeout call.
	if err := c.Health(context.Background()); err == nil {
		t.Error("Health should have timed out")
	}
}

func TestReadFileReturnsPlainText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("path"); got != "notes/plan.md" {
			t.Errorf("path query = %q", got)
		}
		w.Header().Set("Content-Type", "text/plain")
		io.WriteString(w, "# Plan\n")
	}))
	defer srv.Close()

	content, err := New(srv.URL).ReadFile(context.Background(), "notes/plan.md")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if content != "# Plan\n" {
		t.Errorf("content = %q", content)
	}
}

func TestGetCompanyByUserNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "null")
	}))
	defer srv.Close()

	company, err := New(srv.URL).GetCompanyByUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("GetCompanyByUser: %v", err)
	}
	if company != nil {
		t.Errorf("company = %+v, want nil", company)
	}
}
