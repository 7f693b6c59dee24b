// internal/inspection/service.go
package inspection

import (
	"context"
	"errors"

	"growingtogether/internal/allotment"
	"growingtogether/internal/tasks"
)

// ErrValidation marks a submission rejected before any write.
var ErrValidation = errors.New("validation failed")

// Service defines the interface for the inspection recorder and notices.
type Service interface {
	// Create validates, scores and persists an inspection for the acting
	// assessor, then conditionally raises a member notice and a follow-up
	// task. See Result for the observable side-effect flags.
	Create(ctx context.Context, assessorID string, input CreateInput) (*Result, error)
	List(ctx context.Context, filters Filters) ([]Inspection, error)

	NoticesFor(ctx context.Context, userID string) ([]MemberNotice, error)
	// AcknowledgeNotice moves a notice to acknowledged only when actorID is
	// the addressee. It reports false when nothing matched, without
	// distinguishing a missing notice from someone else's.
	AcknowledgeNotice(ctx context.Context, noticeID, actorID string) (bool, error)
}

// PlotDirectory is the slice of the allotment service the recorder needs.
type PlotDirectory interface {
	GetPlot(ctx context.Context, id string) (*allotment.Plot, error)
}

// TaskCreator raises admin follow-up tasks for escalated inspections.
type TaskCreator interface {
	CreateTask(ctx context.Context, creatorID string, input tasks.CreateInput) (*tasks.Task, error)
}
