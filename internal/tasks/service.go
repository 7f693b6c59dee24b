// internal/tasks/service.go
package tasks

import (
	"context"
	"errors"
)

var ErrTaskNotFound = errors.New("task not found")

// Service defines the interface for the tasks service.
type Service interface {
	CreateTask(ctx context.Context, creatorID string, input CreateInput) (*Task, error)
	// ListTasks returns tasks filtered by type. Non-admin callers asking for
	// personal tasks only see their own assignments.
	ListTasks(ctx context.Context, taskType, callerID string, callerIsAdmin bool) ([]Task, error)
	CompleteTask(ctx context.Context, taskID, userID, proofPhoto string) error
}
