package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"gymdesk/internal/domain/student"
)

// UpdateRosterStore defines the roster interface for wholesale update.
type UpdateRosterStore interface {
	ReplaceAll(ctx context.Context, values []student.Student) error
}

// RosterRow is one edited roster line as it arrives from the form, with the
// purchased count still raw text.
type RosterRow struct {
	Name          string
	Purchased     string
	BoundCategory string
	Note          string
}

// UpdateRosterInput carries the edited roster.
type UpdateRosterInput struct {
	Rows []RosterRow
}

// UpdateRosterDeps holds dependencies for UpdateRoster.
type UpdateRosterDeps struct {
	StudentStore UpdateRosterStore
}

// ExecuteUpdateRoster replaces the roster wholesale, mirroring the day
// editor's commit model. Blank rows are dropped; raw purchased counts are
// coerced the same way the loader coerces them, so a garbage entry becomes
// zero rather than rejecting the whole edit.
// PRE: Input comes straight from the editor, unvalidated
// POST: Roster holds exactly the cleaned rows
func ExecuteUpdateRoster(ctx context.Context, input UpdateRosterInput, deps UpdateRosterDeps) error {
	var values []student.Student
	for _, row := range input.Rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		s := student.Student{
			Name:          name,
			Purchased:     student.ParsePurchased(row.Purchased),
			BoundCategory: strings.TrimSpace(row.BoundCategory),
			Note:          row.Note,
		}
		if err := s.Validate(); err != nil {
			return err
		}
		values = append(values, s)
	}

	if err := deps.StudentStore.ReplaceAll(ctx, values); err != nil {
		return err
	}
	slog.Info("roster_updated", "students", len(values))
	return nil
}
