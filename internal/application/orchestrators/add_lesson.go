package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/application/projections"
	"gymdesk/internal/domain/lesson"
)

// ErrCategoryNotAllowed means the chosen category is outside the student's
// allowed option set.
var ErrCategoryNotAllowed = errors.New("category is not allowed for this student")

// AddLessonLessonStore defines the lesson store interface for scheduling.
type AddLessonLessonStore interface {
	Append(ctx context.Context, value lesson.Lesson) error
	CategoriesInUse(ctx context.Context) ([]string, error)
}

// AddLessonInput carries one quick-scheduling form submission.
type AddLessonInput struct {
	Date     string
	Time     string
	Student  string
	Category string
	Note     string
}

// AddLessonDeps holds dependencies for AddLesson.
type AddLessonDeps struct {
	LessonStore   AddLessonLessonStore
	StudentStore  projections.AllowedCategoriesStudentStore
	CategoryStore projections.CategoryRegistryStore
}

// ExecuteAddLesson appends one lesson after validating the form. The slot is
// deliberately not checked for uniqueness (see lesson.AllowDoubleBooking);
// the category must be within the student's allowed option set, which
// re-enforces the bound-category lock server-side.
// PRE: Input comes straight from the form, unvalidated
// POST: On success exactly one lesson row is appended; on error the store
// is unchanged
func ExecuteAddLesson(ctx context.Context, input AddLessonInput, deps AddLessonDeps) error {
	l := lesson.Lesson{
		Date:     input.Date,
		Time:     input.Time,
		Student:  input.Student,
		Category: input.Category,
		Note:     input.Note,
	}
	if err := l.Validate(); err != nil {
		return err
	}

	if input.Category != "" {
		allowed, err := projections.QueryAllowedCategories(ctx,
			projections.GetAllowedCategoriesQuery{StudentName: input.Student},
			projections.GetAllowedCategoriesDeps{
				StudentStore:  deps.StudentStore,
				CategoryStore: deps.CategoryStore,
				LessonStore:   deps.LessonStore,
			})
		if err != nil {
			return err
		}
		ok := false
		for _, name := range allowed {
			if name == input.Category {
				ok = true
				break
			}
		}
		if !ok {
			return ErrCategoryNotAllowed
		}
	}

	if err := deps.LessonStore.Append(ctx, l); err != nil {
		return err
	}
	slog.Info("lesson_added", "date", l.Date, "time", l.Time, "student", l.Student, "category", l.Category)
	return nil
}
