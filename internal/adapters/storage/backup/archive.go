// Package backup implements bulk export/import of the collection files as a
// zip archive, plus the reset-to-first-run action.
package backup

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gymdesk/internal/adapters/storage/table"
)

// Restore errors
var (
	ErrUnexpectedEntry = errors.New("archive contains an unexpected file")
	ErrCorruptArchive  = errors.New("archive is not a readable backup")
)

// Archive bundles export/restore/reset over one set of collections.
type Archive struct {
	files   *table.Files
	schemas []table.Schema
}

// NewArchive creates an Archive over the given collections.
func NewArchive(files *table.Files, schemas ...table.Schema) *Archive {
	return &Archive{files: files, schemas: schemas}
}

// Export writes a zip archive of every existing collection file to w.
// POST: Archive contains one entry per existing collection, nothing else
func (a *Archive) Export(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, s := range a.schemas {
		src, err := os.Open(a.files.Path(s))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("open %s: %w", s.FileName(), err)
		}
		entry, err := zw.Create(s.FileName())
		if err != nil {
			src.Close()
			return fmt.Errorf("archive %s: %w", s.FileName(), err)
		}
		if _, err := io.Copy(entry, src); err != nil {
			src.Close()
			return fmt.Errorf("archive %s: %w", s.FileName(), err)
		}
		src.Close()
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}
	slog.Info("backup_exported", "collections", len(a.schemas))
	return nil
}

// Restore replaces the working collections with the archive's contents.
// Entry names are validated against the expected collection file names
// before anything is extracted (no traversal, no unrelated clobbering), and
// extraction is staged so a corrupt archive leaves the store untouched.
// POST: Either every archive entry replaced its collection, or none did
func (a *Archive) Restore(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	expected := make(map[string]bool, len(a.schemas))
	for _, s := range a.schemas {
		expected[s.FileName()] = true
	}
	for _, f := range zr.File {
		if !expected[f.Name] {
			return fmt.Errorf("%w: %q", ErrUnexpectedEntry, f.Name)
		}
	}

	// Stage every entry fully before touching the live files.
	staging, err := os.MkdirTemp(a.files.Dir(), "restore-*")
	if err != nil {
		return fmt.Errorf("stage restore: %w", err)
	}
	defer os.RemoveAll(staging)

	for _, f := range zr.File {
		if err := extractEntry(f, filepath.Join(staging, f.Name)); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrCorruptArchive, f.Name, err)
		}
	}

	for _, f := range zr.File {
		for _, s := range a.schemas {
			if s.FileName() != f.Name {
				continue
			}
			if err := os.Rename(filepath.Join(staging, f.Name), a.files.Path(s)); err != nil {
				return fmt.Errorf("install %s: %w", f.Name, err)
			}
		}
	}
	slog.Info("backup_restored", "entries", len(zr.File))
	return nil
}

// Reset deletes every collection file, returning the system to first-run
// state. The next startup recreates empty/seeded files.
// POST: No collection files remain
func (a *Archive) Reset() error {
	if err := a.files.Remove(a.schemas...); err != nil {
		return err
	}
	slog.Info("store_reset", "collections", len(a.schemas))
	return nil
}

// Seed recreates any missing collection files with their headers and seed
// rows. Called after Reset so a running server returns to first-run state
// without waiting for a restart.
func (a *Archive) Seed() error {
	return a.files.EnsureFiles(a.schemas...)
}

func extractEntry(f *zip.File, dst string) error {
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
