package model

// OverviewRow is one row of the assignment overview: an employee, one of
// their printers, and the toner models that printer consumes. Employees
// without printers appear with empty printer fields.
type OverviewRow struct {
	EmployeeID   int64  `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PrinterModel string `json:"printer_model,omitempty"`
	Status       string `json:"status,omitempty"`
	Toners       string `json:"toners,omitempty"`
}

// TonerStock is a (model, stock) pair used in the statistics summary.
type TonerStock struct {
	Model string `json:"model"`
	Stock int    `json:"stock"`
}

// Summary holds the statistics overview for an optional year/month period.
type Summary struct {
	TotalToners  int          `json:"total_toners"`
	BelowMin     int          `json:"below_min"`
	TotalStock   int          `json:"total_stock"`
	Consumption  int          `json:"consumption"`
	TopByStock   []TonerStock `json:"top_by_stock"`
}
