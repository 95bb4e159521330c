package table

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Files loads and saves collection files under a single data directory.
// One Files instance is constructed per process and passed to every store;
// there are no ambient globals.
type Files struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex // per-collection save locks
}

// NewFiles creates a Files store rooted at dir.
func NewFiles(dir string) *Files {
	return &Files{dir: dir, locks: make(map[string]*sync.Mutex)}
}

// Dir returns the data directory.
func (f *Files) Dir() string {
	return f.dir
}

// Path returns the full path of a collection file.
func (f *Files) Path(s Schema) string {
	return filepath.Join(f.dir, s.FileName())
}

// lock returns the save lock for one collection.
func (f *Files) lock(name string) *sync.Mutex {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.locks[name]
	if !ok {
		l = &sync.Mutex{}
		f.locks[name] = l
	}
	return l
}

// EnsureFiles creates the data directory and an initial file for every
// collection that does not yet exist (seeded where the schema says so).
// PRE: schemas describe every collection
// POST: Each collection file exists on disk
func (f *Files) EnsureFiles(schemas ...Schema) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	for _, s := range schemas {
		path := f.Path(s)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		t := New(s)
		t.Rows = append(t.Rows, s.SeedRows...)
		if err := f.writeFile(s, t); err != nil {
			return fmt.Errorf("init %s: %w", s.Name, err)
		}
		slog.Info("collection_initialized", "collection", s.Name, "seed_rows", len(s.SeedRows))
	}
	return nil
}

// Load reads one collection, repairing it against the schema: legacy
// headers are renamed, absent columns are backfilled with defaults, date
// columns are normalized, and an absent or unreadable file degrades to the
// empty (or seeded) table instead of failing. Repairs are logged, never
// surfaced.
// POST: Returned table has exactly the schema's columns; Revision matches
// the bytes that were read
func (f *Files) Load(s Schema) Table {
	path := f.Path(s)

	raw, rev, err := f.readFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("collection_unreadable", "collection", s.Name, "error", err)
		}
		t := New(s)
		t.Rows = append(t.Rows, s.SeedRows...)
		t.Revision = rev
		return t
	}

	t := repair(s, raw)
	t.Revision = rev
	return t
}

// Save persists the full table atomically: the new contents are written to
// a temp file in the same directory and renamed over the target, so a
// partial write is never observable to a subsequent Load. The save fails
// with ErrStaleTable when the file changed since this table was loaded.
// PRE: t was produced by Load (its Revision is the load-time token)
// POST: On success the file holds exactly t; on error the file is unchanged
func (f *Files) Save(s Schema, t Table) error {
	l := f.lock(s.Name)
	l.Lock()
	defer l.Unlock()

	current := statRevision(f.Path(s))
	if current != t.Revision {
		slog.Warn("collection_conflict", "collection", s.Name)
		return ErrStaleTable
	}
	return f.writeFile(s, t)
}

// Remove deletes the given collection files, returning the store to
// first-run state for those collections.
// POST: Files are absent; missing files are not an error
func (f *Files) Remove(schemas ...Schema) error {
	for _, s := range schemas {
		if err := os.Remove(f.Path(s)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", s.Name, err)
		}
	}
	return nil
}

// readFile reads and parses the CSV, returning the raw records and the
// revision token of the bytes read.
func (f *Files) readFile(path string) ([][]string, Revision, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, Revision{}, err
	}
	defer fh.Close()

	rev := statRevision(path)

	r := csv.NewReader(fh)
	r.FieldsPerRecord = -1 // ragged rows are repaired, not rejected
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		// Keep the revision so the recovered table can still be saved over
		// the corrupt file.
		return nil, rev, fmt.Errorf("parse csv: %w", err)
	}
	return records, rev, nil
}

// writeFile writes the table to a temp file and renames it into place.
func (f *Files) writeFile(s Schema, t Table) error {
	path := f.Path(s)
	tmp, err := os.CreateTemp(f.dir, s.FileName()+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after successful rename

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace %s: %w", s.FileName(), err)
	}
	return nil
}

// statRevision returns the revision token for the file, zero when absent.
func statRevision(path string) Revision {
	info, err := os.Stat(path)
	if err != nil {
		return Revision{}
	}
	return Revision{ModTime: info.ModTime(), Size: info.Size()}
}

// repair maps raw CSV records onto the schema: the header row is matched by
// current or legacy name, missing columns get defaults, and typed values
// are normalized.
func repair(s Schema, records [][]string) Table {
	t := New(s)
	if len(records) == 0 {
		return t
	}

	header := records[0]
	// source column index per schema column, -1 when absent
	src := make([]int, len(s.Columns))
	for i, col := range s.Columns {
		src[i] = -1
		for j, h := range header {
			if matchesColumn(col, h) {
				src[i] = j
				break
			}
		}
		if src[i] == -1 {
			slog.Warn("column_backfilled", "collection", s.Name, "column", col.Name, "default", columnDefault(col))
		}
	}

	for _, rec := range records[1:] {
		row := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			v := columnDefault(col)
			if j := src[i]; j >= 0 && j < len(rec) {
				v = strings.TrimSpace(rec[j])
				if v == "" {
					v = columnDefault(col)
				}
			}
			row[i] = normalizeValue(col, v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// matchesColumn reports whether a header cell names the column, either by
// its current name or one of its legacy names.
func matchesColumn(c Column, header string) bool {
	h := strings.TrimSpace(header)
	if strings.EqualFold(h, c.Name) {
		return true
	}
	for _, legacy := range c.Legacy {
		if strings.EqualFold(h, legacy) {
			return true
		}
	}
	return false
}

// dateFormats are accepted inputs for date-typed columns, tried in order.
var dateFormats = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006",
}

// dateTimeFormats are accepted inputs for datetime-typed columns.
var dateTimeFormats = []string{
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func normalizeValue(c Column, v string) string {
	switch c.Kind {
	case KindDate:
		return NormalizeDate(v)
	case KindDateTime:
		if v == "" {
			return ""
		}
		for _, layout := range dateTimeFormats {
			if ts, err := time.Parse(layout, v); err == nil {
				return ts.Format("2006-01-02 15:04")
			}
		}
		slog.Warn("datetime_unparsable", "column", c.Name, "value", v)
		return ""
	default:
		return v
	}
}

// NormalizeDate coerces a raw date value to YYYY-MM-DD. Unparsable values
// map to "" — the explicit no-date marker — rather than failing the load.
func NormalizeDate(v string) string {
	if v == "" {
		return ""
	}
	for _, layout := range dateFormats {
		if ts, err := time.Parse(layout, v); err == nil {
			return ts.Format("2006-01-02")
		}
	}
	slog.Warn("date_unparsable", "value", v)
	return ""
}
