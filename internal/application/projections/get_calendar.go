package projections

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gymdesk/internal/domain/holiday"
	"gymdesk/internal/domain/lesson"
)

// CalendarLessonStore defines the lesson interface for the month calendar.
type CalendarLessonStore interface {
	List(ctx context.Context) ([]lesson.Lesson, error)
}

// CategoryColors maps exact category names to display colors. Lookup is by
// the full name — never by substring — so a category like "Strength" cannot
// accidentally inherit another category's color.
var CategoryColors = map[string]string{
	"MA Physique": "#D32F2F",
	"S Specialty": "#1976D2",
	"General":     "#388E3C",
}

// DefaultCategoryColor is used for categories without an explicit mapping.
const DefaultCategoryColor = "#555555"

// holidayColor is the fixed holiday overlay color.
const holidayColor = "#D32F2F"

// CalendarEvent is one renderable calendar entry (lesson or holiday).
type CalendarEvent struct {
	Title           string `json:"title"`
	Start           string `json:"start"`
	End             string `json:"end,omitempty"`
	AllDay          bool   `json:"allDay,omitempty"`
	BackgroundColor string `json:"backgroundColor"`
	BorderColor     string `json:"borderColor"`
	TextColor       string `json:"textColor"`
}

// GetCalendarQuery carries the month to render.
type GetCalendarQuery struct {
	Month string // YYYY-MM
}

// GetCalendarDeps holds dependencies for the calendar projection.
type GetCalendarDeps struct {
	LessonStore CalendarLessonStore
}

// QueryGetCalendar builds the month's calendar events: one hour-long entry
// per lesson (white background, category-colored text and border) plus the
// fixed public holiday overlay. Lessons with no recorded date are skipped.
// POST: Returns a non-nil slice
func QueryGetCalendar(ctx context.Context, query GetCalendarQuery, deps GetCalendarDeps) ([]CalendarEvent, error) {
	ls, err := deps.LessonStore.List(ctx)
	if err != nil {
		return nil, err
	}

	events := []CalendarEvent{}
	for _, l := range ls {
		if l.Date == "" || !strings.HasPrefix(l.Date, query.Month) {
			continue
		}
		start, end, ok := slotSpan(l.Date, l.Time)
		if !ok {
			continue
		}
		color := ColorFor(l.Category)
		events = append(events, CalendarEvent{
			Title:           l.Student,
			Start:           start,
			End:             end,
			BackgroundColor: "#FFFFFF",
			BorderColor:     color,
			TextColor:       color,
		})
	}

	for _, h := range holiday.Fixed {
		if !h.Overlaps(query.Month) {
			continue
		}
		ev := CalendarEvent{
			Title:           h.Name,
			Start:           h.Start,
			AllDay:          true,
			BackgroundColor: holidayColor,
			BorderColor:     holidayColor,
			TextColor:       "#FFFFFF",
		}
		if h.End != h.Start {
			ev.End = h.End
		}
		events = append(events, ev)
	}
	return events, nil
}

// ColorFor returns the display color for a category by exact name.
func ColorFor(categoryName string) string {
	if c, ok := CategoryColors[categoryName]; ok {
		return c
	}
	return DefaultCategoryColor
}

// slotSpan converts a lesson's date and slot to an hour-long ISO interval.
func slotSpan(date, slot string) (start, end string, ok bool) {
	parts := strings.SplitN(slot, ":", 2)
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", "", false
	}
	return fmt.Sprintf("%sT%02d:00:00", date, h), fmt.Sprintf("%sT%02d:00:00", date, h+1), true
}
