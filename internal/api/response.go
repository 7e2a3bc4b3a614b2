package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/dusanm/tonerdepo/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("error encoding response: %v", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}

// storeError maps store errors to HTTP responses, exposing the typed errors
// with enough context for the operator.
func storeError(w http.ResponseWriter, err error, fallback string) {
	var validationErr store.ValidationError
	var capacityErr *store.CapacityError
	var selectionErr *store.SelectionCountError

	switch {
	case errors.As(err, &validationErr):
		jsonError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &capacityErr):
		jsonResponse(w, http.StatusConflict, map[string]any{
			"error":      capacityErr.Error(),
			"printer_id": capacityErr.PrinterID,
			"model":      capacityErr.Model,
			"quantity":   capacityErr.Quantity,
			"assigned":   capacityErr.Assigned,
			"available":  capacityErr.Quantity - capacityErr.Assigned,
		})
	case errors.As(err, &selectionErr):
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    selectionErr.Error(),
			"required": selectionErr.Required,
			"selected": selectionErr.Selected,
		})
	case errors.Is(err, store.ErrNoSelection),
		errors.Is(err, store.ErrStaleProposal):
		jsonError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNoStock):
		jsonError(w, http.StatusConflict, err.Error())
	case strings.Contains(err.Error(), "UNIQUE constraint failed"):
		jsonError(w, http.StatusConflict, "duplicate value violates a uniqueness constraint")
	default:
		log.Printf("store error: %v", err)
		jsonError(w, http.StatusInternalServerError, fallback)
	}
}
