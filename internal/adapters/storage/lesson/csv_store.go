package lesson

import (
	"context"

	"gymdesk/internal/adapters/storage/table"
	domain "gymdesk/internal/domain/lesson"
)

// Schema describes the lessons collection.
var Schema = table.Schema{
	Name: "lessons",
	Columns: []table.Column{
		{Name: "date", Kind: table.KindDate},
		{Name: "time", Kind: table.KindText},
		{Name: "student", Kind: table.KindText},
		{Name: "category", Kind: table.KindText, Legacy: []string{"class_type"}},
		{Name: "note", Kind: table.KindText},
	},
}

// CSVStore implements Store over the flat-file table engine.
type CSVStore struct {
	files *table.Files
}

// NewCSVStore creates a new lesson store.
func NewCSVStore(files *table.Files) *CSVStore {
	return &CSVStore{files: files}
}

// List retrieves every Lesson in the collection.
// POST: Returns all rows in file order
func (s *CSVStore) List(_ context.Context) ([]domain.Lesson, error) {
	t := s.files.Load(Schema)
	return fromTable(t), nil
}

// ListByDate retrieves the lessons on one date, sorted by time slot.
// PRE: date is YYYY-MM-DD
// POST: Returns matching lessons in ascending slot order
func (s *CSVStore) ListByDate(_ context.Context, date string) ([]domain.Lesson, error) {
	t := s.files.Load(Schema)
	var out []domain.Lesson
	for _, l := range fromTable(t) {
		if l.Date == date {
			out = append(out, l)
		}
	}
	domain.SortBySlot(out)
	return out, nil
}

// Append adds one lesson. No slot uniqueness check: double-booking a slot is
// the named scheduling policy, not an accident.
// PRE: value has been validated
// POST: Collection grows by one row
func (s *CSVStore) Append(_ context.Context, value domain.Lesson) error {
	t := s.files.Load(Schema)
	t.AppendRow(toRow(value))
	return s.files.Save(Schema, t)
}

// Remove deletes the last row equal to value in every field. It exists as
// the compensating action for a failed approve commit.
// POST: At most one row is removed; absence is not an error
func (s *CSVStore) Remove(_ context.Context, value domain.Lesson) error {
	t := s.files.Load(Schema)
	ls := fromTable(t)
	for i := len(ls) - 1; i >= 0; i-- {
		if ls[i] == value {
			t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
			return s.files.Save(Schema, t)
		}
	}
	return nil
}

// ReplaceDay removes every lesson on date and inserts values in their place.
// Entries missing a date are stamped with the target date first. This is the
// bulk day-edit commit.
// PRE: each value with a date set has date equal to the target date
// POST: Lessons on other dates are unaffected
func (s *CSVStore) ReplaceDay(_ context.Context, date string, values []domain.Lesson) error {
	t := s.files.Load(Schema)

	var kept [][]string
	dateCol := t.ColIndex("date")
	for _, row := range t.Rows {
		if row[dateCol] != date {
			kept = append(kept, row)
		}
	}
	t.Rows = kept

	for _, v := range values {
		if v.Date == "" {
			v.Date = date
		}
		t.AppendRow(toRow(v))
	}
	return s.files.Save(Schema, t)
}

// CountByStudent counts lessons whose student field equals name exactly
// (case-sensitive), across the entire history.
// POST: Returns the count; an unknown name counts zero
func (s *CSVStore) CountByStudent(_ context.Context, name string) (int, error) {
	t := s.files.Load(Schema)
	n := 0
	for _, l := range fromTable(t) {
		if l.Student == name {
			n++
		}
	}
	return n, nil
}

// CategoriesInUse returns every distinct category string appearing in the
// collection, in first-seen order.
func (s *CSVStore) CategoriesInUse(_ context.Context) ([]string, error) {
	t := s.files.Load(Schema)
	seen := make(map[string]bool)
	var out []string
	for _, l := range fromTable(t) {
		if l.Category == "" || seen[l.Category] {
			continue
		}
		seen[l.Category] = true
		out = append(out, l.Category)
	}
	return out, nil
}

func fromTable(t table.Table) []domain.Lesson {
	out := make([]domain.Lesson, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, domain.Lesson{
			Date:     t.Get(i, "date"),
			Time:     t.Get(i, "time"),
			Student:  t.Get(i, "student"),
			Category: t.Get(i, "category"),
			Note:     t.Get(i, "note"),
		})
	}
	return out
}

func toRow(l domain.Lesson) map[string]string {
	return map[string]string{
		"date":     l.Date,
		"time":     l.Time,
		"student":  l.Student,
		"category": l.Category,
		"note":     l.Note,
	}
}
