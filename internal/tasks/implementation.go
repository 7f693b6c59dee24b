// internal/tasks/implementation.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growingtogether/pkg/docstore"
)

const tasksCollection = "tasks"

// service implements the Service interface.
type service struct {
	store docstore.Store
	log   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new tasks service instance.
func NewService(store docstore.Store, log *zap.Logger) Service {
	return &service{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// CreateTask persists a new task created by creatorID.
func (s *service) CreateTask(ctx context.Context, creatorID string, input CreateInput) (*Task, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("task title is required")
	}
	if input.TaskType != TypePersonal && input.TaskType != TypeSite {
		return nil, fmt.Errorf("unknown task type %q", input.TaskType)
	}

	task := &Task{
		ID:          s.newID(),
		Title:       input.Title,
		Description: input.Description,
		TaskType:    input.TaskType,
		AssignedTo:  input.AssignedTo,
		DueDate:     input.DueDate,
		Priority:    input.Priority,
		CreatedBy:   creatorID,
		CreatedAt:   s.now(),
	}

	if err := s.store.Insert(ctx, tasksCollection, task.ID, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	s.log.Info("task created", zap.String("task_id", task.ID), zap.String("type", task.TaskType))
	return task, nil
}

// ListTasks returns tasks newest first, restricted to the caller's own
// personal assignments for non-admins.
func (s *service) ListTasks(ctx context.Context, taskType, callerID string, callerIsAdmin bool) ([]Task, error) {
	filter := docstore.Filter{}
	if taskType != "" {
		filter["task_type"] = taskType
	}
	if !callerIsAdmin && taskType == TypePersonal {
		filter["assigned_to"] = callerID
	}

	tasks := []Task{}
	err := s.store.Find(ctx, tasksCollection, filter, docstore.FindOptions{SortBy: "created_at", Descending: true}, &tasks)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// CompleteTask marks a task done, recording who finished it and when.
func (s *service) CompleteTask(ctx context.Context, taskID, userID, proofPhoto string) error {
	patch := docstore.Patch{
		"completed":    true,
		"completed_by": userID,
		"completed_at": s.now(),
	}
	if proofPhoto != "" {
		patch["proof_photo"] = proofPhoto
	}

	matched, err := s.store.UpdateOne(ctx, tasksCollection, docstore.Filter{"id": taskID}, patch)
	if err != nil {
		return fmt.Errorf("complete task: %w", err)
	}
	if matched == 0 {
		return ErrTaskNotFound
	}
	return nil
}
