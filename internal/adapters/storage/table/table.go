// Package table implements the flat-file record store. Each collection is a
// single CSV file loaded whole into a Table, repaired against its Schema, and
// persisted back by full atomic rewrite.
package table

import (
	"errors"
	"time"
)

// Column kinds drive repair defaults and value normalization on load.
const (
	KindText     = "text"
	KindCount    = "count"    // numeric credit column, defaults to "0"
	KindDate     = "date"     // normalized to YYYY-MM-DD, "" when unparsable
	KindDateTime = "datetime" // normalized to YYYY-MM-DD HH:MM
)

// ErrStaleTable means the file changed on disk after this table was loaded.
// The caller should reload and retry the edit.
var ErrStaleTable = errors.New("stale data, please retry")

// Column describes one expected column of a collection.
type Column struct {
	Name    string
	Kind    string
	Legacy  []string // older header names treated as this column on load
	Default string   // used instead of the kind default when non-empty
}

// Schema describes one persisted collection.
type Schema struct {
	Name     string // collection name; file is <Name>.csv
	Columns  []Column
	SeedRows [][]string // initial rows when the file does not exist yet
}

// FileName returns the on-disk file name for the collection.
func (s Schema) FileName() string {
	return s.Name + ".csv"
}

// headers returns the current column names in order.
func (s Schema) headers() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// columnDefault returns the backfill value for an absent column.
func columnDefault(c Column) string {
	if c.Default != "" {
		return c.Default
	}
	if c.Kind == KindCount {
		return "0"
	}
	return ""
}

// Revision identifies the on-disk state a Table was loaded from. A zero
// Revision means the file did not exist at load time.
type Revision struct {
	ModTime time.Time
	Size    int64
}

// IsZero reports whether the revision marks an absent file.
func (r Revision) IsZero() bool {
	return r.ModTime.IsZero() && r.Size == 0
}

// Table is one collection held in memory: ordered columns plus string rows,
// all rows the same width as Columns.
type Table struct {
	Columns  []string
	Rows     [][]string
	Revision Revision
}

// New returns an empty table matching the schema.
func New(s Schema) Table {
	return Table{Columns: s.headers()}
}

// ColIndex returns the position of the named column, or -1.
// INVARIANT: Table fields are not mutated
func (t *Table) ColIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Get returns the value at the given row for the named column, or "" when
// the column does not exist.
// PRE: 0 <= row < len(t.Rows)
func (t *Table) Get(row int, col string) string {
	i := t.ColIndex(col)
	if i < 0 {
		return ""
	}
	return t.Rows[row][i]
}

// AppendRow adds a row built from the given column values; unnamed columns
// get the empty string.
// POST: len(t.Rows) grows by one; row width equals len(t.Columns)
func (t *Table) AppendRow(values map[string]string) {
	row := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		row[i] = values[c]
	}
	t.Rows = append(t.Rows, row)
}

// Equal reports whether two tables hold the same columns and rows,
// ignoring revisions.
// INVARIANT: Table fields are not mutated
func (t *Table) Equal(o Table) bool {
	if len(t.Columns) != len(o.Columns) || len(t.Rows) != len(o.Rows) {
		return false
	}
	for i := range t.Columns {
		if t.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range t.Rows {
		for j := range t.Rows[i] {
			if t.Rows[i][j] != o.Rows[i][j] {
				return false
			}
		}
	}
	return true
}
