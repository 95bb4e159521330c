package holiday

// Holiday represents a public holiday (or range) overlaid on the calendar.
// Start and End are YYYY-MM-DD; End equals Start for single-day holidays.
type Holiday struct {
	Name  string
	Start string
	End   string
}

// Fixed is the public holiday overlay shown on the calendar. The coach does
// not edit these; they exist so the month view flags days students are
// unlikely to book.
var Fixed = []Holiday{
	{Name: "New Year's Day", Start: "2025-01-01", End: "2025-01-01"},
	{Name: "Lunar New Year", Start: "2025-01-25", End: "2025-02-03"},
	{Name: "New Year's Eve (make-up)", Start: "2025-12-31", End: "2025-12-31"},
	{Name: "New Year's Day", Start: "2026-01-01", End: "2026-01-01"},
	{Name: "Lunar New Year", Start: "2026-02-17", End: "2026-02-23"},
	{Name: "Peace Memorial Day", Start: "2026-02-28", End: "2026-02-28"},
	{Name: "Tomb Sweeping Holiday", Start: "2026-04-04", End: "2026-04-07"},
}

// Overlaps reports whether the holiday touches the month given as YYYY-MM.
// INVARIANT: Holiday fields are not mutated
func (h Holiday) Overlaps(month string) bool {
	if len(h.Start) < 7 {
		return false
	}
	end := h.End
	if len(end) < 7 {
		end = h.Start
	}
	return h.Start[:7] <= month && month <= end[:7]
}
