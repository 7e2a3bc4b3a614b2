package api

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dusanm/tonerdepo/internal/backup"
	"github.com/dusanm/tonerdepo/internal/store"
)

// BackupHandler handles backup creation, restore, and settings.
type BackupHandler struct {
	DB     *sql.DB
	DBPath string
	Dir    string
}

// List handles GET /api/backups.
func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := backup.List(h.Dir)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}
	if names == nil {
		names = []string{}
	}
	jsonResponse(w, http.StatusOK, names)
}

// Create handles POST /api/backups.
func (h *BackupHandler) Create(w http.ResponseWriter, r *http.Request) {
	path, err := backup.Create(h.DBPath, h.Dir, time.Now())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create backup")
		return
	}

	if err := store.SetLastBackupDate(r.Context(), h.DB, time.Now().Format("2006-01-02")); err != nil {
		jsonError(w, http.StatusInternalServerError, "backup created but failed to record date")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]string{"file": filepath.Base(path)})
}

// Restore handles POST /api/backups/restore. The backup file must be a name
// inside the backup directory; the live file is snapshotted first and a
// restart is required afterwards.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req struct {
		File string `json:"file"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.File == "" || req.File != filepath.Base(req.File) || strings.HasPrefix(req.File, ".") {
		jsonError(w, http.StatusBadRequest, "invalid backup file name")
		return
	}

	snapshot, err := backup.Restore(h.DBPath, filepath.Join(h.Dir, req.File), h.Dir, time.Now())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to restore backup")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{
		"message":  "backup restored, restart the application",
		"snapshot": filepath.Base(snapshot),
	})
}

// GetSettings handles GET /api/backups/settings.
func (h *BackupHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := store.GetBackupSettings(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get backup settings")
		return
	}
	jsonResponse(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/backups/settings.
func (h *BackupHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Enabled    bool `json:"enabled"`
		DayOfMonth int  `json:"day_of_month"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateBackupSettings(r.Context(), h.DB, req.Enabled, req.DayOfMonth); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update backup settings")
		return
	}

	settings, _ := store.GetBackupSettings(r.Context(), h.DB)
	jsonResponse(w, http.StatusOK, settings)
}
