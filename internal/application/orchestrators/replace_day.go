package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	"gymdesk/internal/domain/lesson"
)

// ErrEmptyDate means the day-edit commit did not name a date.
var ErrEmptyDate = errors.New("date cannot be empty")

// ReplaceDayLessonStore defines the lesson store interface for the day editor.
type ReplaceDayLessonStore interface {
	ReplaceDay(ctx context.Context, date string, values []lesson.Lesson) error
}

// ReplaceDayInput carries the edited day: the full replacement set for that
// date, as committed from the day editor.
type ReplaceDayInput struct {
	Date    string
	Lessons []lesson.Lesson
}

// ReplaceDayDeps holds dependencies for ReplaceDay.
type ReplaceDayDeps struct {
	LessonStore ReplaceDayLessonStore
}

// ExecuteReplaceDay commits a bulk day edit: every lesson on the date is
// removed and the edited set inserted in its place. Rows added in the editor
// arrive without a date and are stamped with the target date.
// PRE: Input comes straight from the editor, unvalidated
// POST: The date holds exactly the edited set; other dates are unaffected
func ExecuteReplaceDay(ctx context.Context, input ReplaceDayInput, deps ReplaceDayDeps) error {
	if input.Date == "" {
		return ErrEmptyDate
	}
	for i := range input.Lessons {
		l := input.Lessons[i]
		if l.Date == "" {
			l.Date = input.Date
		}
		if err := l.Validate(); err != nil {
			return err
		}
	}

	if err := deps.LessonStore.ReplaceDay(ctx, input.Date, input.Lessons); err != nil {
		return err
	}
	slog.Info("day_replaced", "date", input.Date, "lessons", len(input.Lessons))
	return nil
}
