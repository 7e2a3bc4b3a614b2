package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/dusanm/tonerdepo/internal/model"
	"github.com/dusanm/tonerdepo/internal/store"
)

// EmployeesHandler handles employee CRUD and assignment endpoints.
type EmployeesHandler struct {
	DB *sql.DB
}

type employeeRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	PrinterIDs []int64 `json:"printer_ids"`
}

// List handles GET /api/employees.
func (h *EmployeesHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := store.ListEmployees(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list employees")
		return
	}
	if employees == nil {
		employees = []model.Employee{}
	}
	jsonResponse(w, http.StatusOK, employees)
}

// Create handles POST /api/employees.
func (h *EmployeesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	employee, err := store.CreateEmployee(r.Context(), h.DB, req.FirstName, req.LastName, req.PrinterIDs)
	if err != nil {
		storeError(w, err, "failed to create employee")
		return
	}

	jsonResponse(w, http.StatusCreated, employee)
}

// Get handles GET /api/employees/{id}.
func (h *EmployeesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	employee, err := store.GetEmployee(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get employee")
		return
	}
	if employee == nil {
		jsonError(w, http.StatusNotFound, "employee not found")
		return
	}

	printers, err := store.ListEmployeePrinters(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get employee printers")
		return
	}
	if printers == nil {
		printers = []model.Printer{}
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"employee": employee,
		"printers": printers,
	})
}

// Update handles PUT /api/employees/{id}.
func (h *EmployeesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	var req employeeRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.UpdateEmployee(r.Context(), h.DB, id, req.FirstName, req.LastName, req.PrinterIDs); err != nil {
		storeError(w, err, "failed to update employee")
		return
	}

	employee, _ := store.GetEmployee(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, employee)
}

// Delete handles DELETE /api/employees/{id}.
func (h *EmployeesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}

	if err := store.DeleteEmployee(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete employee")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "employee deleted"})
}

// Assign handles POST /api/employees/{id}/printers/{printerID}.
func (h *EmployeesHandler) Assign(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	printerID, err := strconv.ParseInt(r.PathValue("printerID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	if err := store.AssignPrinter(r.Context(), h.DB, employeeID, printerID); err != nil {
		storeError(w, err, "failed to assign printer")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "printer assigned"})
}

// Unassign handles DELETE /api/employees/{id}/printers/{printerID}.
func (h *EmployeesHandler) Unassign(w http.ResponseWriter, r *http.Request) {
	employeeID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid employee id")
		return
	}
	printerID, err := strconv.ParseInt(r.PathValue("printerID"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid printer id")
		return
	}

	if err := store.UnassignPrinter(r.Context(), h.DB, employeeID, printerID); err != nil {
		storeError(w, err, "failed to unassign printer")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "printer unassigned"})
}
