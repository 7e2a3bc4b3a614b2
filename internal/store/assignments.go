package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dusanm/tonerdepo/internal/model"
)

// checkCapacity verifies inside tx that the printer has at least one free
// unit. Returns *CapacityError when fully assigned.
func checkCapacity(ctx context.Context, tx *sql.Tx, printerID int64) error {
	var printerModel string
	var quantity, assigned int
	err := tx.QueryRowContext(ctx,
		`SELECT p.model, p.quantity, COUNT(DISTINCT a.employee_id)
		 FROM printers p
		 LEFT JOIN assignments a ON a.printer_id = p.id
		 WHERE p.id = ?
		 GROUP BY p.id`, printerID,
	).Scan(&printerModel, &quantity, &assigned)
	if err == sql.ErrNoRows {
		return fmt.Errorf("printer %d not found", printerID)
	}
	if err != nil {
		return fmt.Errorf("checking printer capacity: %w", err)
	}

	if quantity-assigned <= 0 {
		return &CapacityError{PrinterID: printerID, Model: printerModel, Quantity: quantity, Assigned: assigned}
	}
	return nil
}

// AssignPrinter assigns a printer unit to an employee. The capacity check is
// recomputed inside the transaction; assigning an already-assigned pair is a
// no-op.
func AssignPrinter(ctx context.Context, db *sql.DB, employeeID, printerID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// An existing pair must stay a no-op, not a capacity failure.
	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM assignments WHERE employee_id = ? AND printer_id = ?`,
		employeeID, printerID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("checking assignment: %w", err)
	}
	if exists > 0 {
		return nil
	}

	if err := checkCapacity(ctx, tx, printerID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO assignments (employee_id, printer_id) VALUES (?, ?)`,
		employeeID, printerID,
	); err != nil {
		return fmt.Errorf("creating assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing assignment: %w", err)
	}
	return nil
}

// UnassignPrinter removes an employee/printer assignment. Removing a pair
// that does not exist is a no-op.
func UnassignPrinter(ctx context.Context, db *sql.DB, employeeID, printerID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM assignments WHERE employee_id = ? AND printer_id = ?`,
		employeeID, printerID,
	)
	if err != nil {
		return fmt.Errorf("removing assignment: %w", err)
	}
	return nil
}

// ListAssignedEmployees returns the employees currently holding a unit of
// the given printer.
func ListAssignedEmployees(ctx context.Context, db *sql.DB, printerID int64) ([]model.Employee, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT e.id, e.first_name, e.last_name
		 FROM employees e
		 JOIN assignments a ON a.employee_id = e.id
		 WHERE a.printer_id = ?
		 ORDER BY e.last_name, e.first_name`, printerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing assigned employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListEmployeePrinters returns the printers assigned to an employee.
func ListEmployeePrinters(ctx context.Context, db *sql.DB, employeeID int64) ([]model.Printer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+printerColumns+`
		 FROM printers p
		 JOIN assignments a ON a.printer_id = p.id
		 WHERE a.employee_id = ?
		 ORDER BY p.model`, employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing employee printers: %w", err)
	}
	defer rows.Close()

	var printers []model.Printer
	for rows.Next() {
		var p model.Printer
		var serial, note sql.NullString
		if err := rows.Scan(&p.ID, &p.Model, &serial, &p.Quantity, &p.Status, &note, &p.Assigned); err != nil {
			return nil, fmt.Errorf("scanning printer: %w", err)
		}
		p.Serial = serial.String
		p.Note = note.String
		p.Available = p.Quantity - p.Assigned
		printers = append(printers, p)
	}
	return printers, rows.Err()
}
