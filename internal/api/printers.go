package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/dusanm/tonerdepo/internal/model"
	"github.com/dusanm/tonerdepo/internal/store"
)

// PrintersHandler handles printer CRUD and quantity-change endpoints.
type PrintersHandler struct {
	DB *sql.DB
}

type createPrinterRequest struct {
	Model    string  `json:"model"`
	Serial   string  `json:"serial"`
	Quantity *int    `json:"quantity"`
	Status   string  `json:"status"`
	Note     string  `json:"note"`
	TonerIDs []int64 `json:"toner_ids"`
}

type updatePrinterRequest struct {
	Model  string `json:"model"`
	Serial string `json:"serial"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

type quantityRequest struct {
	Quantity        int     `json:"quantity"`
	Unassign        []int64 `json:"unassign"`
	KeepAssignments bool    `json:"keep_assignments"`
}

// List handles GET /api/printers.
func (h *PrintersHandler) List(w http.ResponseWriter, r *http.Request) {
	printers, err := store.ListPrinters(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list printers")
		return
	}
	if printers == nil {
		printers = []model.Printer{}
	}
	jsonResponse(w, http.StatusOK, printers)
}

// Create handles POST /api/printers.
func (h *PrintersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPrinterRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	printer, err := store.CreatePrinter(r.Context(), h.DB, req.Model, req.Serial, quantity, req.Status, req.Note, req.TonerIDs)
	if err != nil {
		storeError(w, err, "failed to create printer")
		return
	}

	jsonResponse(w, http.StatusCreated, printer)
}

// Get handles GET /api/printers/{id}.
func (h *PrintersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	printer, err := store.GetPrinter(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get printer")
		return
	}
	if printer == nil {
		jsonError(w, http.StatusNotFound, "printer not found")
		return
	}

	toners, err := store.ListPrinterToners(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get printer toners")
		return
	}
	if toners == nil {
		toners = []model.Toner{}
	}

	employees, err := store.ListAssignedEmployees(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get assigned employees")
		return
	}
	if employees == nil {
		employees = []model.Employee{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"printer":   printer,
		"toners":    toners,
		"employees": employees,
	})
}

// Update handles PUT /api/printers/{id}.
func (h *PrintersHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	var req updatePrinterRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status == "" {
		req.Status = model.PrinterStatusActive
	}

	if err := store.UpdatePrinter(r.Context(), h.DB, id, req.Model, req.Serial, req.Status, req.Note); err != nil {
		storeError(w, err, "failed to update printer")
		return
	}

	printer, _ := store.GetPrinter(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, printer)
}

// Delete handles DELETE /api/printers/{id}.
func (h *PrintersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	if err := store.DeletePrinter(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete printer")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "printer deleted"})
}

// SetStatus handles PUT /api/printers/{id}/status.
func (h *PrintersHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetPrinterStatus(r.Context(), h.DB, id, req.Status); err != nil {
		storeError(w, err, "failed to set printer status")
		return
	}

	printer, _ := store.GetPrinter(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, printer)
}

// SetToners handles PUT /api/printers/{id}/toners.
func (h *PrintersHandler) SetToners(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	var req struct {
		TonerIDs []int64 `json:"toner_ids"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.SetPrinterToners(r.Context(), h.DB, id, req.TonerIDs); err != nil {
		storeError(w, err, "failed to set printer toners")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "toners updated"})
}

// ChangeQuantity handles PUT /api/printers/{id}/quantity.
//
// The change is two-phase: the handler first computes a proposal, and when
// the proposal needs a decision (which employees to unassign) that the
// request body does not answer, it responds 409 with the proposal so the
// client can re-submit with either "unassign" or "keep_assignments".
func (h *PrintersHandler) ChangeQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	change, err := store.ProposeQuantityChange(r.Context(), h.DB, id, req.Quantity)
	if err != nil {
		storeError(w, err, "failed to propose quantity change")
		return
	}

	if change.Interactive() && req.Unassign == nil && !req.KeepAssignments {
		jsonResponse(w, http.StatusConflict, map[string]any{
			"error":    "quantity change requires a decision",
			"proposal": change,
		})
		return
	}

	selection := req.Unassign
	if req.KeepAssignments {
		selection = nil
	}

	if err := store.CommitQuantityChange(r.Context(), h.DB, change, selection); err != nil {
		storeError(w, err, "failed to commit quantity change")
		return
	}

	printer, _ := store.GetPrinter(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, printer)
}
