// internal/inspection/implementation_test.go
package inspection

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"growingtogether/internal/allotment"
	"growingtogether/internal/tasks"
	"growingtogether/pkg/chaos"
	"growingtogether/pkg/docstore"
)

const (
	testAssessor = "assessor-1"
	testHolder   = "holder-1"
	testPlotID   = "plot-1"
)

type stubPlots struct {
	plot *allotment.Plot
	err  error
}

func (s *stubPlots) GetPlot(ctx context.Context, id string) (*allotment.Plot, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.plot, nil
}

func heldPlot() *allotment.Plot {
	holder := testHolder
	return &allotment.Plot{ID: testPlotID, Number: "12", HolderUserID: &holder}
}

func vacantPlot() *allotment.Plot {
	return &allotment.Plot{ID: testPlotID, Number: "12"}
}

// newTestService wires the recorder over the given store with deterministic
// ids and clock.
func newTestService(store docstore.Store, plots PlotDirectory) *service {
	counter := 0
	return &service{
		store: store,
		plots: plots,
		tasks: tasks.NewService(store, zap.NewNop()),
		log:   zap.NewNop(),
		now:   func() time.Time { return time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC) },
		newID: func() string {
			counter++
			return fmt.Sprintf("id-%d", counter)
		},
	}
}

func TestCreateWithoutActionWritesNoNotice(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UseActive,
		Upkeep:    UpkeepGood,
	})
	require.NoError(t, err)

	assert.Equal(t, 100, result.Inspection.Score)
	assert.Equal(t, ActionNone, result.Inspection.Action)
	assert.False(t, result.NoticeCreated)
	assert.Empty(t, result.Warnings)

	notices, err := store.Count(context.Background(), "member_notices", docstore.Filter{})
	require.NoError(t, err)
	assert.Zero(t, notices)
}

func TestCreateEscalatedIssuesNoticeToHolder(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UsePartial,
		Upkeep:    UpkeepPoor,
		Action:    ActionWarning,
		Notes:     "plot is overgrown with brambles",
	})
	require.NoError(t, err)

	assert.Equal(t, 30, result.Inspection.Score)
	assert.True(t, result.NoticeCreated)
	assert.Empty(t, result.Warnings)

	var notices []MemberNotice
	require.NoError(t, store.Find(context.Background(), "member_notices", docstore.Filter{}, docstore.FindOptions{}, &notices))
	require.Len(t, notices, 1)

	notice := notices[0]
	assert.Equal(t, testHolder, notice.UserID)
	assert.Equal(t, result.Inspection.ID, notice.InspectionID)
	assert.Equal(t, NoticeOpen, notice.Status)
	assert.Equal(t, "Plot 12 Inspection - Warning", notice.Title)
	assert.Contains(t, notice.Body, "warning")
	assert.Contains(t, notice.Body, "overgrown")
}

func TestCreateEscalatedRaisesFollowUpTask(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:      testPlotID,
		UseStatus:   UseNotUsed,
		Upkeep:      UpkeepPoor,
		Action:      ActionRecommendRemove,
		ReinspectBy: due.Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.True(t, result.NoticeCreated)

	var followUps []tasks.Task
	require.NoError(t, store.Find(context.Background(), "tasks", docstore.Filter{}, docstore.FindOptions{}, &followUps))
	require.Len(t, followUps, 1)

	task := followUps[0]
	assert.Equal(t, "Follow up with Plot 12", task.Title)
	assert.Equal(t, tasks.TypeSite, task.TaskType)
	assert.Equal(t, "high", task.Priority)
	require.NotNil(t, task.AssignedTo)
	assert.Equal(t, testAssessor, *task.AssignedTo)
	require.NotNil(t, task.DueDate)
	assert.True(t, task.DueDate.Equal(due))
}

func TestCreateFollowUpPriorityDefaultsToMedium(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	_, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UseActive,
		Upkeep:    UpkeepFair,
		Action:    ActionAdvisory,
	})
	require.NoError(t, err)

	var followUps []tasks.Task
	require.NoError(t, store.Find(context.Background(), "tasks", docstore.Filter{}, docstore.FindOptions{}, &followUps))
	require.Len(t, followUps, 1)
	assert.Equal(t, "medium", followUps[0].Priority)
}

func TestCreateVacantPlotSkipsNotice(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: vacantPlot()})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UseNotUsed,
		Upkeep:    UpkeepPoor,
		Action:    ActionFinalWarning,
	})
	require.NoError(t, err)

	assert.False(t, result.NoticeCreated)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "no holder")

	inspections, err := store.Count(context.Background(), "inspections", docstore.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inspections)

	notices, err := store.Count(context.Background(), "member_notices", docstore.Filter{})
	require.NoError(t, err)
	assert.Zero(t, notices)
}

func TestCreateUnresolvablePlotSkipsNotice(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{err: allotment.ErrPlotNotFound})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    "missing",
		UseStatus: UseNotUsed,
		Upkeep:    UpkeepPoor,
		Action:    ActionWarning,
	})
	require.NoError(t, err)

	assert.False(t, result.NoticeCreated)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "could not be resolved")

	inspections, err := store.Count(context.Background(), "inspections", docstore.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inspections)
}

func TestCreateValidationFailureWritesNothing(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	tests := []CreateInput{
		{UseStatus: UseActive, Upkeep: UpkeepGood},                                   // missing plot
		{PlotID: testPlotID, UseStatus: "flourishing", Upkeep: UpkeepGood},           // bad use status
		{PlotID: testPlotID, UseStatus: UseActive, Upkeep: "immaculate"},             // bad upkeep
		{PlotID: testPlotID, UseStatus: UseActive, Upkeep: UpkeepGood, Action: "evict"}, // bad action
	}
	for _, input := range tests {
		_, err := svc.Create(context.Background(), testAssessor, input)
		assert.ErrorIs(t, err, ErrValidation)
	}

	inspections, err := store.Count(context.Background(), "inspections", docstore.Filter{})
	require.NoError(t, err)
	assert.Zero(t, inspections)
}

func TestCreateDiscardsUnparseableDeadline(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:      testPlotID,
		UseStatus:   UseActive,
		Upkeep:      UpkeepGood,
		ReinspectBy: "next tuesday",
	})
	require.NoError(t, err)

	assert.Nil(t, result.Inspection.ReinspectBy)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "next tuesday")
}

func TestCreateSurvivesNoticeWriteFailure(t *testing.T) {
	inner := docstore.NewMemoryStore()
	faulty := chaos.New(inner, 1)
	faulty.FailureRate = 1
	faulty.FailCollections = []string{"member_notices"}

	svc := newTestService(faulty, &stubPlots{plot: heldPlot()})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UseNotUsed,
		Upkeep:    UpkeepPoor,
		Action:    ActionWarning,
	})
	require.NoError(t, err)

	assert.False(t, result.NoticeCreated)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "inspection stands")

	inspections, err := inner.Count(context.Background(), "inspections", docstore.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inspections)
	assert.Equal(t, 1, faulty.InjectedCount())
}

func TestCreateFailsWhenInspectionWriteFails(t *testing.T) {
	inner := docstore.NewMemoryStore()
	faulty := chaos.New(inner, 1)
	faulty.FailureRate = 1
	faulty.FailCollections = []string{"inspections"}

	svc := newTestService(faulty, &stubPlots{plot: heldPlot()})

	_, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UseActive,
		Upkeep:    UpkeepGood,
	})
	assert.True(t, errors.Is(err, chaos.ErrInjected))
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewService(store, &stubPlots{plot: heldPlot()}, tasks.NewService(store, zap.NewNop()), zap.NewNop())

	input := CreateInput{PlotID: testPlotID, UseStatus: UseActive, Upkeep: UpkeepGood}
	first, err := svc.Create(context.Background(), testAssessor, input)
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), testAssessor, input)
	require.NoError(t, err)

	assert.NotEqual(t, first.Inspection.ID, second.Inspection.ID)
}

func TestAcknowledgeNotice(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	result, err := svc.Create(context.Background(), testAssessor, CreateInput{
		PlotID:    testPlotID,
		UseStatus: UsePartial,
		Upkeep:    UpkeepPoor,
		Action:    ActionWarning,
	})
	require.NoError(t, err)
	require.True(t, result.NoticeCreated)

	notices, err := svc.NoticesFor(context.Background(), testHolder)
	require.NoError(t, err)
	require.Len(t, notices, 1)
	noticeID := notices[0].ID

	// Someone else's acknowledgement is a no-op.
	acked, err := svc.AcknowledgeNotice(context.Background(), noticeID, "intruder")
	require.NoError(t, err)
	assert.False(t, acked)

	notices, err = svc.NoticesFor(context.Background(), testHolder)
	require.NoError(t, err)
	assert.Equal(t, NoticeOpen, notices[0].Status)

	// The addressee succeeds.
	acked, err = svc.AcknowledgeNotice(context.Background(), noticeID, testHolder)
	require.NoError(t, err)
	assert.True(t, acked)

	notices, err = svc.NoticesFor(context.Background(), testHolder)
	require.NoError(t, err)
	assert.Equal(t, NoticeAcknowledged, notices[0].Status)

	// A missing notice is indistinguishable from a foreign one.
	acked, err = svc.AcknowledgeNotice(context.Background(), "no-such-notice", testHolder)
	require.NoError(t, err)
	assert.False(t, acked)
}

func TestListFilters(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := newTestService(store, &stubPlots{plot: heldPlot()})

	shared := true
	private := false
	inputs := []CreateInput{
		{PlotID: "plot-a", UseStatus: UseActive, Upkeep: UpkeepGood, SharedWithMember: &shared},
		{PlotID: "plot-a", UseStatus: UsePartial, Upkeep: UpkeepFair, SharedWithMember: &private},
		{PlotID: "plot-b", UseStatus: UseNotUsed, Upkeep: UpkeepPoor, SharedWithMember: &shared},
	}
	for _, input := range inputs {
		_, err := svc.Create(context.Background(), testAssessor, input)
		require.NoError(t, err)
	}

	byPlot, err := svc.List(context.Background(), Filters{PlotID: "plot-a"})
	require.NoError(t, err)
	assert.Len(t, byPlot, 2)

	sharedOnly, err := svc.List(context.Background(), Filters{PlotID: "plot-a", SharedOnly: true})
	require.NoError(t, err)
	assert.Len(t, sharedOnly, 1)

	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	none, err := svc.List(context.Background(), Filters{DateFrom: &future})
	require.NoError(t, err)
	assert.Empty(t, none)

	all, err := svc.List(context.Background(), Filters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
