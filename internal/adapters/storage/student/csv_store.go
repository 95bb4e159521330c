package student

import (
	"context"
	"fmt"
	"strconv"

	"gymdesk/internal/adapters/storage/table"
	domain "gymdesk/internal/domain/student"
)

// Schema describes the students collection. The legacy "remaining" header
// predates the derived-credits model and is treated as today's purchased
// count; "status" is the old name for the bound category.
var Schema = table.Schema{
	Name: "students",
	Columns: []table.Column{
		{Name: "name", Kind: table.KindText},
		{Name: "purchased", Kind: table.KindCount, Legacy: []string{"remaining"}},
		{Name: "bound_category", Kind: table.KindText, Legacy: []string{"status"}},
		{Name: "note", Kind: table.KindText},
	},
}

// CSVStore implements Store over the flat-file table engine.
type CSVStore struct {
	files *table.Files
}

// NewCSVStore creates a new student store.
func NewCSVStore(files *table.Files) *CSVStore {
	return &CSVStore{files: files}
}

// List retrieves the whole roster in file order.
func (s *CSVStore) List(_ context.Context) ([]domain.Student, error) {
	t := s.files.Load(Schema)
	out := make([]domain.Student, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, fromRow(t, i))
	}
	return out, nil
}

// GetByName retrieves one roster entry by exact name.
// PRE: name is non-empty
// POST: Returns the entity or ErrNotFound
func (s *CSVStore) GetByName(_ context.Context, name string) (domain.Student, error) {
	t := s.files.Load(Schema)
	for i := range t.Rows {
		if t.Get(i, "name") == name {
			return fromRow(t, i), nil
		}
	}
	return domain.Student{}, fmt.Errorf("%q: %w", name, ErrNotFound)
}

// ReplaceAll rewrites the whole roster. The coach edits the roster as one
// table, so mutation is wholesale like the day editor.
// PRE: each value has been validated
// POST: Collection holds exactly values
func (s *CSVStore) ReplaceAll(_ context.Context, values []domain.Student) error {
	t := s.files.Load(Schema)
	t.Rows = nil
	for _, v := range values {
		t.AppendRow(map[string]string{
			"name":           v.Name,
			"purchased":      strconv.Itoa(v.Purchased),
			"bound_category": v.BoundCategory,
			"note":           v.Note,
		})
	}
	return s.files.Save(Schema, t)
}

func fromRow(t table.Table, i int) domain.Student {
	return domain.Student{
		Name:          t.Get(i, "name"),
		Purchased:     domain.ParsePurchased(t.Get(i, "purchased")),
		BoundCategory: t.Get(i, "bound_category"),
		Note:          t.Get(i, "note"),
	}
}
