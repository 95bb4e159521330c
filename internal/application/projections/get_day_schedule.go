package projections

import (
	"context"

	"gymdesk/internal/domain/lesson"
)

// DayScheduleLessonStore defines the lesson store interface for the day view.
type DayScheduleLessonStore interface {
	ListByDate(ctx context.Context, date string) ([]lesson.Lesson, error)
}

// GetDayScheduleQuery carries the date to view.
type GetDayScheduleQuery struct {
	Date string // YYYY-MM-DD
}

// GetDayScheduleDeps holds dependencies for the day schedule projection.
type GetDayScheduleDeps struct {
	LessonStore DayScheduleLessonStore
}

// GetDayScheduleResult carries one day's lessons in slot order.
type GetDayScheduleResult struct {
	Date    string
	Lessons []lesson.Lesson
}

// QueryGetDaySchedule returns the lessons on one date sorted by time slot.
// PRE: query.Date is YYYY-MM-DD
// POST: Lessons are in ascending slot order; an empty day yields a non-nil slice
func QueryGetDaySchedule(ctx context.Context, query GetDayScheduleQuery, deps GetDayScheduleDeps) (GetDayScheduleResult, error) {
	ls, err := deps.LessonStore.ListByDate(ctx, query.Date)
	if err != nil {
		return GetDayScheduleResult{}, err
	}
	if ls == nil {
		ls = []lesson.Lesson{}
	}
	return GetDayScheduleResult{Date: query.Date, Lessons: ls}, nil
}
