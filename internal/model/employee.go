package model

// Employee represents a person that can be assigned printer units.
type Employee struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Assignment links an employee to a printer unit they currently hold.
type Assignment struct {
	EmployeeID   int64  `json:"employee_id"`
	PrinterID    int64  `json:"printer_id"`
	AssignedOn   string `json:"assigned_on"`
	EmployeeName string `json:"employee_name,omitempty"`
	PrinterModel string `json:"printer_model,omitempty"`
}
