package projections

import (
	"context"
	"errors"

	studentStore "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/domain/student"
)

// CreditsStudentStore defines the roster interface for the credit view.
type CreditsStudentStore interface {
	GetByName(ctx context.Context, name string) (student.Student, error)
}

// CreditsLessonStore defines the lesson interface for the credit view.
type CreditsLessonStore interface {
	CountByStudent(ctx context.Context, name string) (int, error)
}

// GetCreditsQuery carries the student to look up.
type GetCreditsQuery struct {
	StudentName string
}

// GetCreditsDeps holds dependencies for the credit projection.
type GetCreditsDeps struct {
	StudentStore CreditsStudentStore
	LessonStore  CreditsLessonStore
}

// QueryGetCredits derives a student's credit status. There is no persisted
// balance: used is counted from the whole lesson history (exact,
// case-sensitive name match) and remaining = purchased - used, which may go
// negative since over-booking is not blocked.
// POST: A student with no roster entry yields all zeros, not an error
func QueryGetCredits(ctx context.Context, query GetCreditsQuery, deps GetCreditsDeps) (student.Credits, error) {
	purchased := 0
	s, err := deps.StudentStore.GetByName(ctx, query.StudentName)
	switch {
	case err == nil:
		purchased = s.Purchased
	case errors.Is(err, studentStore.ErrNotFound):
		// fall through with zero purchased
	default:
		return student.Credits{}, err
	}

	used, err := deps.LessonStore.CountByStudent(ctx, query.StudentName)
	if err != nil {
		return student.Credits{}, err
	}

	return student.Credits{
		Purchased: purchased,
		Used:      used,
		Remaining: purchased - used,
	}, nil
}
