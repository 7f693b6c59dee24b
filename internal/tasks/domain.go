// internal/tasks/domain.go
package tasks

import "time"

// Task types.
const (
	TypePersonal = "personal"
	TypeSite     = "site"
)

// Task represents a piece of community work, either personal or site-wide.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TaskType    string     `json:"task_type"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedBy string     `json:"completed_by,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	ProofPhoto  string     `json:"proof_photo,omitempty"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
}

// CreateInput carries a task creation request.
type CreateInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	TaskType    string     `json:"task_type"`
	AssignedTo  *string    `json:"assigned_to"`
	DueDate     *time.Time `json:"due_date"`
	Priority    string     `json:"priority"`
}
