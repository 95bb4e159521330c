package category

import (
	"context"

	"gymdesk/internal/adapters/storage/table"
	domain "gymdesk/internal/domain/category"
)

// Schema describes the categories collection. A brand-new install is seeded
// with the default course types rather than an empty registry.
var Schema = table.Schema{
	Name: "categories",
	Columns: []table.Column{
		{Name: "name", Kind: table.KindText, Legacy: []string{"category_name"}},
	},
	SeedRows: seedRows(),
}

// CSVStore implements Store over the flat-file table engine.
type CSVStore struct {
	files *table.Files
}

// NewCSVStore creates a new category store.
func NewCSVStore(files *table.Files) *CSVStore {
	return &CSVStore{files: files}
}

// List retrieves the registry in file order.
func (s *CSVStore) List(_ context.Context) ([]domain.Category, error) {
	t := s.files.Load(Schema)
	out := make([]domain.Category, 0, len(t.Rows))
	for i := range t.Rows {
		out = append(out, domain.Category{Name: t.Get(i, "name")})
	}
	return out, nil
}

// ReplaceAll rewrites the registry wholesale. References from lessons or
// students are deliberately not migrated: removed categories stay usable
// for filtering through the in-use union.
// PRE: each value has been validated
// POST: Registry holds exactly values
func (s *CSVStore) ReplaceAll(_ context.Context, values []domain.Category) error {
	t := s.files.Load(Schema)
	t.Rows = nil
	for _, v := range values {
		t.AppendRow(map[string]string{"name": v.Name})
	}
	return s.files.Save(Schema, t)
}

func seedRows() [][]string {
	rows := make([][]string, 0, len(domain.SeedNames))
	for _, n := range domain.SeedNames {
		rows = append(rows, []string{n})
	}
	return rows
}
