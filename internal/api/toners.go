package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/dusanm/tonerdepo/internal/model"
	"github.com/dusanm/tonerdepo/internal/store"
)

// TonersHandler handles toner CRUD and consumption endpoints.
type TonersHandler struct {
	DB *sql.DB
}

type tonerRequest struct {
	Model       string `json:"model"`
	Description string `json:"description"`
	MinStock    int    `json:"min_stock"`
	Stock       int    `json:"stock"`
	DriverLink  string `json:"driver_link"`
}

// List handles GET /api/toners.
func (h *TonersHandler) List(w http.ResponseWriter, r *http.Request) {
	toners, err := store.ListToners(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list toners")
		return
	}
	if toners == nil {
		toners = []model.Toner{}
	}
	jsonResponse(w, http.StatusOK, toners)
}

// Create handles POST /api/toners.
func (h *TonersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req tonerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	toner, err := store.CreateToner(r.Context(), h.DB, req.Model, req.Description, req.MinStock, req.Stock, req.DriverLink)
	if err != nil {
		storeError(w, err, "failed to create toner")
		return
	}

	jsonResponse(w, http.StatusCreated, toner)
}

// Get handles GET /api/toners/{id}.
func (h *TonersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid toner id")
		return
	}

	toner, err := store.GetToner(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get toner")
		return
	}
	if toner == nil {
		jsonError(w, http.StatusNotFound, "toner not found")
		return
	}

	printers, err := store.ListTonerPrinters(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get toner printers")
		return
	}
	if printers == nil {
		printers = []string{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"toner":    toner,
		"printers": printers,
	})
}

// Update handles PUT /api/toners/{id}.
func (h *TonersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid toner id")
		return
	}

	var req tonerRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateToner(r.Context(), h.DB, id, req.Model, req.Description, req.MinStock, req.Stock, req.DriverLink); err != nil {
		storeError(w, err, "failed to update toner")
		return
	}

	toner, _ := store.GetToner(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, toner)
}

// Delete handles DELETE /api/toners/{id}.
func (h *TonersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid toner id")
		return
	}

	if err := store.DeleteToner(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete toner")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "toner deleted"})
}

// Consume handles POST /api/toners/{id}/consume.
func (h *TonersHandler) Consume(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid toner id")
		return
	}

	if err := store.RecordConsumption(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to record consumption")
		return
	}

	toner, _ := store.GetToner(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, toner)
}

// Consumption handles GET /api/toners/{id}/consumption.
func (h *TonersHandler) Consumption(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid toner id")
		return
	}

	events, err := store.ListConsumption(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list consumption")
		return
	}
	if events == nil {
		events = []model.ConsumptionEvent{}
	}
	jsonResponse(w, http.StatusOK, events)
}
