package models

import (
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// AllStatuses returns the statuses in cycle order.
func AllStatuses() []TaskStatus {
	return []TaskStatus{StatusPending, StatusInProgress, StatusCompleted}
}

// ParseTaskStatus converts a string to a TaskStatus, case-insensitively.
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "in_progress", "in-progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("unknown task status %q", s)
}

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Next returns the cyclic successor: pending -> in_progress -> completed
// -> pending. Unknown statuses reset to pending so the cycle button is a
// total function.
func (s TaskStatus) Next() TaskStatus {
	switch s {
	case StatusPending:
		return StatusInProgress
	case StatusInProgress:
		return StatusCompleted
	default:
		return StatusPending
	}
}

// Task is a shared to-do item, assigned to one executive role. Resources
// are workspace file paths the agents attached while working on it.
type Task struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	AssignedToRole Role       `json:"assigned_to_role"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
	Resources      []string   `json:"resources,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TaskCreate is the payload for creating a task.
type TaskCreate struct {
	UserID         string     `json:"user_id"`
	AssignedToRole Role       `json:"assigned_to_role"`
	Description    string     `json:"description"`
	Status         TaskStatus `json:"status"`
}

// TaskUpdate is a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}
