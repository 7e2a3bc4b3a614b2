package api

import (
	"database/sql"
	"net/http"

	"github.com/dusanm/tonerdepo/internal/store"
)

// SettingsHandler handles persisted operator preferences.
type SettingsHandler struct {
	DB *sql.DB
}

// GetLanguage handles GET /api/settings/language.
func (h *SettingsHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	lang, err := store.GetSetting(r.Context(), h.DB, store.SettingLanguage)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get language")
		return
	}
	if lang == "" {
		lang = "en"
	}
	jsonResponse(w, http.StatusOK, map[string]string{"language": lang})
}

// SetLanguage handles PUT /api/settings/language.
func (h *SettingsHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		jsonError(w, http.StatusBadRequest, "language required")
		return
	}

	if err := store.SetSetting(r.Context(), h.DB, store.SettingLanguage, req.Language); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to set language")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"language": req.Language})
}
