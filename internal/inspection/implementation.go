// internal/inspection/implementation.go
package inspection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"growingtogether/internal/tasks"
	"growingtogether/pkg/docstore"
)

const (
	inspectionsCollection = "inspections"
	noticesCollection     = "member_notices"
)

// service implements the Service interface.
type service struct {
	store docstore.Store
	plots PlotDirectory
	tasks TaskCreator
	log   *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService creates a new inspection service instance.
func NewService(store docstore.Store, plots PlotDirectory, taskCreator TaskCreator, log *zap.Logger) Service {
	return &service{
		store: store,
		plots: plots,
		tasks: taskCreator,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Create orchestrates the inspection workflow: validate, score, persist,
// then conditionally raise the member notice and follow-up task. The two
// write phases are intentionally independent: once the inspection is
// durably written the call succeeds, and any notice or task failure is
// reported as a warning, never rolled back.
func (s *service) Create(ctx context.Context, assessorID string, input CreateInput) (*Result, error) {
	// Step 1: Validate the required enums before any write.
	if err := validate(input); err != nil {
		return nil, err
	}

	action := input.Action
	if action == "" {
		action = ActionNone
	}

	result := &Result{}

	// Step 2: Lenient parse of the optional reinspection deadline. A bad
	// date must not fail the whole submission, but the loss is surfaced.
	var reinspectBy *time.Time
	if input.ReinspectBy != "" {
		if parsed, err := time.Parse(time.RFC3339, input.ReinspectBy); err == nil {
			utc := parsed.UTC()
			reinspectBy = &utc
		} else {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("reinspect_by %q is not a valid RFC 3339 timestamp and was discarded", input.ReinspectBy))
			s.log.Warn("discarding unparseable reinspection deadline",
				zap.String("plot_id", input.PlotID),
				zap.String("reinspect_by", input.ReinspectBy),
			)
		}
	}

	shared := true
	if input.SharedWithMember != nil {
		shared = *input.SharedWithMember
	}

	// Step 3: Compute the score. Never taken from the caller.
	now := s.now()
	insp := &Inspection{
		ID:               s.newID(),
		PlotID:           input.PlotID,
		AssessorUserID:   assessorID,
		Date:             now,
		UseStatus:        input.UseStatus,
		Upkeep:           input.Upkeep,
		Issues:           emptyIfNil(input.Issues),
		Notes:            input.Notes,
		Photos:           emptyIfNil(input.Photos),
		Score:            Score(input.UseStatus, input.Upkeep),
		Action:           action,
		ReinspectBy:      reinspectBy,
		SharedWithMember: shared,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Step 4: Persist the inspection. This is the only write whose failure
	// fails the operation.
	if err := s.store.Insert(ctx, inspectionsCollection, insp.ID, insp); err != nil {
		return nil, fmt.Errorf("insert inspection: %w", err)
	}
	result.Inspection = insp

	s.log.Info("inspection recorded",
		zap.String("inspection_id", insp.ID),
		zap.String("plot_id", insp.PlotID),
		zap.Int("score", insp.Score),
		zap.String("action", insp.Action),
	)

	// Step 5: Raise the notice and follow-up for escalated inspections.
	if insp.Action != ActionNone {
		s.raiseFollowUps(ctx, insp, result)
	}

	return result, nil
}

// raiseFollowUps looks up the plot and, when it exists and has a holder,
// writes the member notice and the assessor's follow-up task. Every failure
// here is absorbed into result.Warnings: the inspection already stands.
func (s *service) raiseFollowUps(ctx context.Context, insp *Inspection, result *Result) {
	plot, err := s.plots.GetPlot(ctx, insp.PlotID)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no notice issued: plot %s could not be resolved", insp.PlotID))
		return
	}
	if plot.HolderUserID == nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("no notice issued: plot %s has no holder", plot.Number))
		return
	}

	now := s.now()
	notice := &MemberNotice{
		ID:           s.newID(),
		UserID:       *plot.HolderUserID,
		InspectionID: insp.ID,
		Title:        fmt.Sprintf("Plot %s Inspection - %s", plot.Number, capitalize(insp.Action)),
		Body:         noticeBody(insp.Action, insp.Notes),
		Status:       NoticeOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.Insert(ctx, noticesCollection, notice.ID, notice); err != nil {
		result.Warnings = append(result.Warnings, "notice could not be written; inspection stands")
		s.log.Error("notice write failed after inspection write",
			zap.String("inspection_id", insp.ID),
			zap.Error(err),
		)
		return
	}
	result.NoticeCreated = true

	priority := "medium"
	if insp.Action == ActionRecommendRemove {
		priority = "high"
	}
	_, err = s.tasks.CreateTask(ctx, insp.AssessorUserID, tasks.CreateInput{
		Title:       fmt.Sprintf("Follow up with Plot %s", plot.Number),
		Description: fmt.Sprintf("Follow up on %s issued for plot %s", insp.Action, plot.Number),
		TaskType:    tasks.TypeSite,
		AssignedTo:  &insp.AssessorUserID,
		DueDate:     insp.ReinspectBy,
		Priority:    priority,
	})
	if err != nil {
		result.Warnings = append(result.Warnings, "follow-up task could not be created")
		s.log.Error("follow-up task creation failed",
			zap.String("inspection_id", insp.ID),
			zap.Error(err),
		)
	}
}

// List returns inspections newest first. Equality filters are pushed to the
// store; the optional date range is applied here because the store's filter
// is containment-only.
func (s *service) List(ctx context.Context, filters Filters) ([]Inspection, error) {
	filter := docstore.Filter{}
	if filters.PlotID != "" {
		filter["plot_id"] = filters.PlotID
	}
	if filters.Action != "" {
		filter["action"] = filters.Action
	}
	if filters.AssessorID != "" {
		filter["assessor_user_id"] = filters.AssessorID
	}
	if filters.SharedOnly {
		filter["shared_with_member"] = true
	}

	all := []Inspection{}
	err := s.store.Find(ctx, inspectionsCollection, filter, docstore.FindOptions{SortBy: "date", Descending: true}, &all)
	if err != nil {
		return nil, fmt.Errorf("list inspections: %w", err)
	}

	if filters.DateFrom == nil && filters.DateTo == nil {
		return all, nil
	}

	kept := all[:0]
	for _, insp := range all {
		if filters.DateFrom != nil && insp.Date.Before(*filters.DateFrom) {
			continue
		}
		if filters.DateTo != nil && insp.Date.After(*filters.DateTo) {
			continue
		}
		kept = append(kept, insp)
	}
	return kept, nil
}

// NoticesFor lists a member's notices newest first.
func (s *service) NoticesFor(ctx context.Context, userID string) ([]MemberNotice, error) {
	notices := []MemberNotice{}
	err := s.store.Find(ctx, noticesCollection,
		docstore.Filter{"user_id": userID},
		docstore.FindOptions{SortBy: "created_at", Descending: true},
		&notices,
	)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// AcknowledgeNotice updates the notice only when the actor is its
// addressee; the filter makes a foreign or missing notice match nothing.
func (s *service) AcknowledgeNotice(ctx context.Context, noticeID, actorID string) (bool, error) {
	matched, err := s.store.UpdateOne(ctx, noticesCollection,
		docstore.Filter{"id": noticeID, "user_id": actorID},
		docstore.Patch{
			"status":     NoticeAcknowledged,
			"updated_at": s.now(),
		},
	)
	if err != nil {
		return false, fmt.Errorf("acknowledge notice: %w", err)
	}
	return matched == 1, nil
}

func validate(input CreateInput) error {
	if input.PlotID == "" {
		return fmt.Errorf("%w: plot_id is required", ErrValidation)
	}
	if !validUseStatus(input.UseStatus) {
		return fmt.Errorf("%w: use_status %q is not one of active/partial/not_used", ErrValidation, input.UseStatus)
	}
	if !validUpkeep(input.Upkeep) {
		return fmt.Errorf("%w: upkeep %q is not one of good/fair/poor", ErrValidation, input.Upkeep)
	}
	if input.Action != "" && !validAction(input.Action) {
		return fmt.Errorf("%w: unknown action %q", ErrValidation, input.Action)
	}
	return nil
}

func noticeBody(action, notes string) string {
	body := fmt.Sprintf("Your plot has been inspected with the following result: %s.", action)
	if notes != "" {
		body += " Notes: " + notes
	}
	return body
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
