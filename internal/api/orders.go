package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/dusanm/tonerdepo/internal/model"
	"github.com/dusanm/tonerdepo/internal/store"
)

// OrdersHandler handles the reorder list, order history, statistics, and the
// assignment overview.
type OrdersHandler struct {
	DB *sql.DB
}

// OrderList handles GET /api/orders.
func (h *OrdersHandler) OrderList(w http.ResponseWriter, r *http.Request) {
	lines, err := store.ComputeOrderList(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to compute order list")
		return
	}
	if lines == nil {
		lines = []model.OrderLine{}
	}
	jsonResponse(w, http.StatusOK, lines)
}

// CommitToHistory handles POST /api/orders/history. With no body lines the
// current order list is computed and recorded (the "automatic" flow);
// otherwise the given lines are recorded as a manual order.
func (h *OrdersHandler) CommitToHistory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Kind  string            `json:"kind"`
		Lines []model.OrderLine `json:"lines"`
	}
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lines := req.Lines
	if lines == nil {
		if req.Kind == "" {
			req.Kind = model.OrderNoteAutomatic
		}
		var err error
		lines, err = store.ComputeOrderList(r.Context(), h.DB)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to compute order list")
			return
		}
	} else if req.Kind == "" {
		req.Kind = model.OrderNoteManual
	}
	if len(lines) == 0 {
		jsonError(w, http.StatusBadRequest, "no toners to order")
		return
	}

	if err := store.CommitOrderToHistory(r.Context(), h.DB, lines, req.Kind); err != nil {
		storeError(w, err, "failed to record order")
		return
	}

	jsonResponse(w, http.StatusCreated, map[string]any{"recorded": len(lines)})
}

// History handles GET /api/orders/history with optional year/month filters.
func (h *OrdersHandler) History(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	entries, err := store.ListOrderHistory(r.Context(), h.DB, year, month)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list order history")
		return
	}
	if entries == nil {
		entries = []model.OrderEntry{}
	}
	jsonResponse(w, http.StatusOK, entries)
}

// Overview handles GET /api/overview.
func (h *OrdersHandler) Overview(w http.ResponseWriter, r *http.Request) {
	rows, err := store.Overview(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to build overview")
		return
	}
	if rows == nil {
		rows = []model.OverviewRow{}
	}
	jsonResponse(w, http.StatusOK, rows)
}

// Stats handles GET /api/stats with optional year/month filters.
func (h *OrdersHandler) Stats(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	summary, err := store.Summarize(r.Context(), h.DB, year, month)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}
	jsonResponse(w, http.StatusOK, summary)
}
