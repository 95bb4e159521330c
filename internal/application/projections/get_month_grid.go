package projections

import (
	"context"
	"strconv"
	"strings"

	"gymdesk/internal/domain/lesson"
)

// GetMonthGridQuery carries the month to pivot.
type GetMonthGridQuery struct {
	Month string // YYYY-MM
}

// GetMonthGridDeps holds dependencies for the month grid projection.
type GetMonthGridDeps struct {
	LessonStore CalendarLessonStore
}

// MonthGridRow is one day of the pivoted month view.
type MonthGridRow struct {
	Day   int
	Cells []string // one per slot; students sharing a slot are joined with " / "
}

// GetMonthGridResult is the whole-month pivot: day rows by time-slot columns,
// student names in the cells, mirroring the coach's old spreadsheet layout.
type GetMonthGridResult struct {
	Month string
	Slots []string
	Rows  []MonthGridRow
}

// QueryGetMonthGrid pivots the month's lessons into a day-by-slot grid.
// Only days with at least one lesson produce a row; rows are in day order.
// POST: Every row has exactly len(Slots) cells
func QueryGetMonthGrid(ctx context.Context, query GetMonthGridQuery, deps GetMonthGridDeps) (GetMonthGridResult, error) {
	ls, err := deps.LessonStore.List(ctx)
	if err != nil {
		return GetMonthGridResult{}, err
	}

	slotIdx := make(map[string]int, len(lesson.TimeSlots))
	for i, s := range lesson.TimeSlots {
		slotIdx[s] = i
	}

	byDay := make(map[int][]string) // day -> cells
	for _, l := range ls {
		if l.Date == "" || !strings.HasPrefix(l.Date, query.Month) || len(l.Date) < 10 {
			continue
		}
		day, err := strconv.Atoi(l.Date[8:10])
		if err != nil {
			continue
		}
		col, ok := slotIdx[l.Time]
		if !ok {
			continue
		}
		cells, ok := byDay[day]
		if !ok {
			cells = make([]string, len(lesson.TimeSlots))
			byDay[day] = cells
		}
		if cells[col] == "" {
			cells[col] = l.Student
		} else {
			cells[col] += " / " + l.Student
		}
	}

	result := GetMonthGridResult{Month: query.Month, Slots: lesson.TimeSlots}
	for day := 1; day <= 31; day++ {
		if cells, ok := byDay[day]; ok {
			result.Rows = append(result.Rows, MonthGridRow{Day: day, Cells: cells})
		}
	}
	return result, nil
}
