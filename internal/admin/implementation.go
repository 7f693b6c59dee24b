// internal/admin/implementation.go
package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"growingtogether/internal/allotment"
	"growingtogether/internal/inspection"
	"growingtogether/internal/membership"
	"growingtogether/internal/tasks"
	"growingtogether/pkg/docstore"
)

const recentWindow = 7 * 24 * time.Hour

type service struct {
	store docstore.Store
	now   func() time.Time
}

func newService(store docstore.Store) *service {
	return &service{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Analytics(ctx context.Context) (*Analytics, error) {
	out := &Analytics{GeneratedAt: s.now()}

	var err error
	if out.Users.Total, err = s.store.Count(ctx, "users", docstore.Filter{}); err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	if out.Users.Active, err = s.store.Count(ctx, "users", docstore.Filter{"is_approved": true}); err != nil {
		return nil, fmt.Errorf("counting active users: %w", err)
	}
	out.Users.Pending = out.Users.Total - out.Users.Active

	counts := []struct {
		collection string
		dst        *int64
	}{
		{"posts", &out.Content.Posts},
		{"events", &out.Content.Events},
		{"diary_entries", &out.Content.DiaryEntries},
		{"inspections", &out.Content.Inspections},
		{"tasks", &out.Content.Tasks},
	}
	for _, c := range counts {
		if *c.dst, err = s.store.Count(ctx, c.collection, docstore.Filter{}); err != nil {
			return nil, fmt.Errorf("counting %s: %w", c.collection, err)
		}
	}

	if out.RecentActivity.Posts, err = s.recentCount(ctx, "posts"); err != nil {
		return nil, err
	}
	if out.RecentActivity.DiaryEntries, err = s.recentCount(ctx, "diary_entries"); err != nil {
		return nil, err
	}

	var plots []allotment.Plot
	err = s.store.Find(ctx, "plots", docstore.Filter{}, docstore.FindOptions{}, &plots)
	if err != nil {
		return nil, fmt.Errorf("listing plots: %w", err)
	}
	out.Plots.Total = int64(len(plots))
	for _, p := range plots {
		if p.HolderUserID != nil {
			out.Plots.Active++
		}
	}

	return out, nil
}

// recentCount counts documents created inside the activity window. The
// store cannot express range filters, so the cut is applied here.
func (s *service) recentCount(ctx context.Context, collection string) (int, error) {
	var docs []struct {
		CreatedAt time.Time `json:"created_at"`
	}
	err := s.store.Find(ctx, collection, docstore.Filter{}, docstore.FindOptions{
		SortBy:     "created_at",
		Descending: true,
		Limit:      500,
	}, &docs)
	if err != nil {
		return 0, fmt.Errorf("listing %s: %w", collection, err)
	}

	cutoff := s.now().Add(-recentWindow)
	count := 0
	for _, d := range docs {
		if d.CreatedAt.After(cutoff) {
			count++
		}
	}
	return count, nil
}

func (s *service) Export(ctx context.Context) (*Export, error) {
	out := &Export{ExportedAt: s.now()}

	var users []membership.User
	if err := s.store.Find(ctx, "users", docstore.Filter{}, docstore.FindOptions{}, &users); err != nil {
		return nil, fmt.Errorf("exporting users: %w", err)
	}
	out.Users = make([]membership.Profile, 0, len(users))
	for i := range users {
		out.Users = append(out.Users, users[i].Profile())
	}

	if err := s.store.Find(ctx, "plots", docstore.Filter{}, docstore.FindOptions{}, &out.Plots); err != nil {
		return nil, fmt.Errorf("exporting plots: %w", err)
	}
	if err := s.store.Find(ctx, "inspections", docstore.Filter{}, docstore.FindOptions{}, &out.Inspections); err != nil {
		return nil, fmt.Errorf("exporting inspections: %w", err)
	}
	if err := s.store.Find(ctx, "tasks", docstore.Filter{}, docstore.FindOptions{}, &out.Tasks); err != nil {
		return nil, fmt.Errorf("exporting tasks: %w", err)
	}
	if err := s.store.Find(ctx, "diary_entries", docstore.Filter{}, docstore.FindOptions{}, &out.Diary); err != nil {
		return nil, fmt.Errorf("exporting diary entries: %w", err)
	}
	if err := s.store.Find(ctx, "events", docstore.Filter{}, docstore.FindOptions{}, &out.Events); err != nil {
		return nil, fmt.Errorf("exporting events: %w", err)
	}

	return out, nil
}

func (s *service) ExportXLSX(ctx context.Context) ([]byte, error) {
	export, err := s.Export(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	summary := "Summary"
	f.SetSheetName("Sheet1", summary)
	f.SetSheetRow(summary, "A1", &[]interface{}{"Exported at", export.ExportedAt.Format(time.RFC3339)})
	f.SetSheetRow(summary, "A2", &[]interface{}{"Users", len(export.Users)})
	f.SetSheetRow(summary, "A3", &[]interface{}{"Plots", len(export.Plots)})
	f.SetSheetRow(summary, "A4", &[]interface{}{"Inspections", len(export.Inspections)})
	f.SetSheetRow(summary, "A5", &[]interface{}{"Tasks", len(export.Tasks)})

	if err := writeUsersSheet(f, export.Users); err != nil {
		return nil, err
	}
	if err := writePlotsSheet(f, export.Plots); err != nil {
		return nil, err
	}
	if err := writeInspectionsSheet(f, export.Inspections); err != nil {
		return nil, err
	}
	if err := writeTasksSheet(f, export.Tasks); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeUsersSheet(f *excelize.File, users []membership.Profile) error {
	if _, err := f.NewSheet("Users"); err != nil {
		return fmt.Errorf("creating users sheet: %w", err)
	}
	f.SetSheetRow("Users", "A1", &[]interface{}{"ID", "Email", "Username", "Role", "Plot"})
	for i, u := range users {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow("Users", cell, &[]interface{}{u.ID, u.Email, u.Username, u.Role, u.PlotNumber})
	}
	return nil
}

func writePlotsSheet(f *excelize.File, plots []allotment.Plot) error {
	if _, err := f.NewSheet("Plots"); err != nil {
		return fmt.Errorf("creating plots sheet: %w", err)
	}
	f.SetSheetRow("Plots", "A1", &[]interface{}{"ID", "Number", "Size", "Holder"})
	for i, p := range plots {
		holder := ""
		if p.HolderUserID != nil {
			holder = *p.HolderUserID
		}
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow("Plots", cell, &[]interface{}{p.ID, p.Number, p.Size, holder})
	}
	return nil
}

func writeInspectionsSheet(f *excelize.File, inspections []inspection.Inspection) error {
	if _, err := f.NewSheet("Inspections"); err != nil {
		return fmt.Errorf("creating inspections sheet: %w", err)
	}
	f.SetSheetRow("Inspections", "A1", &[]interface{}{"ID", "Plot", "Use", "Upkeep", "Score", "Action", "Date"})
	for i, insp := range inspections {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow("Inspections", cell, &[]interface{}{
			insp.ID, insp.PlotID, insp.UseStatus, insp.Upkeep, insp.Score, insp.Action,
			insp.Date.Format("2006-01-02"),
		})
	}
	return nil
}

func writeTasksSheet(f *excelize.File, taskList []tasks.Task) error {
	if _, err := f.NewSheet("Tasks"); err != nil {
		return fmt.Errorf("creating tasks sheet: %w", err)
	}
	f.SetSheetRow("Tasks", "A1", &[]interface{}{"ID", "Title", "Type", "Priority", "Completed"})
	for i, t := range taskList {
		cell := fmt.Sprintf("A%d", i+2)
		f.SetSheetRow("Tasks", cell, &[]interface{}{t.ID, t.Title, t.TaskType, t.Priority, t.Completed})
	}
	return nil
}
