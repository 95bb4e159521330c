package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gymdesk/internal/adapters/storage/backup"
)

// maxRestoreBytes caps the uploaded archive size.
const maxRestoreBytes = 10 << 20 // 10 MiB

// handleBackupExport streams every collection file as one zip download.
func handleBackupExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	filename := fmt.Sprintf("gymdesk-backup-%s.zip", timeNow().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := stores.Archive.Export(w); err != nil {
		// Headers are already out; all we can do is log.
		slog.Error("backup_export_failed", "error", err.Error())
	}
}

// handleBackupRestore replaces the working files with an uploaded archive.
func handleBackupRestore(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxRestoreBytes); err != nil {
		http.Error(w, "Invalid upload", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("Archive")
	if err != nil {
		http.Error(w, "Archive file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := stores.Archive.Restore(file, header.Size); err != nil {
		if errors.Is(err, backup.ErrCorruptArchive) || errors.Is(err, backup.ErrUnexpectedEntry) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/day", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBackupReset wipes every collection and re-seeds first-run files.
func handleBackupReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := stores.Archive.Reset(); err != nil {
		internalError(w, err)
		return
	}
	if err := stores.Archive.Seed(); err != nil {
		internalError(w, err)
		return
	}

	if isHTMLRequest(r) {
		http.Redirect(w, r, "/day", http.StatusSeeOther)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
