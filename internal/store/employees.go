package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dusanm/tonerdepo/internal/model"
)

// CreateEmployee creates an employee and their initial printer assignments.
// Every requested printer is capacity-checked inside the transaction; a full
// printer aborts the whole creation.
func CreateEmployee(ctx context.Context, db *sql.DB, firstName, lastName string, printerIDs []int64) (*model.Employee, error) {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return nil, ValidationError("first and last name required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO employees (first_name, last_name) VALUES (?, ?)`,
		firstName, lastName,
	)
	if err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting employee id: %w", err)
	}

	for _, printerID := range printerIDs {
		if err := checkCapacity(ctx, tx, printerID); err != nil {
			return nil, err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO assignments (employee_id, printer_id) VALUES (?, ?)`,
			id, printerID,
		); err != nil {
			return nil, fmt.Errorf("creating assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing employee creation: %w", err)
	}

	return GetEmployee(ctx, db, id)
}

// GetEmployee returns an employee by ID.
func GetEmployee(ctx context.Context, db *sql.DB, id int64) (*model.Employee, error) {
	e := &model.Employee{}
	err := db.QueryRowContext(ctx,
		`SELECT id, first_name, last_name FROM employees WHERE id = ?`, id,
	).Scan(&e.ID, &e.FirstName, &e.LastName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting employee: %w", err)
	}
	return e, nil
}

// ListEmployees returns all employees ordered by last name, first name.
func ListEmployees(ctx context.Context, db *sql.DB) ([]model.Employee, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, first_name, last_name FROM employees ORDER BY last_name, first_name`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// UpdateEmployee updates an employee's names and replaces their assignment
// set. Capacity is checked only for printers the employee did not already
// hold, so keeping an existing assignment on a full printer stays legal.
func UpdateEmployee(ctx context.Context, db *sql.DB, id int64, firstName, lastName string, printerIDs []int64) error {
	if strings.TrimSpace(firstName) == "" || strings.TrimSpace(lastName) == "" {
		return ValidationError("first and last name required")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE employees SET first_name = ?, last_name = ? WHERE id = ?`,
		firstName, lastName, id,
	); err != nil {
		return fmt.Errorf("updating employee: %w", err)
	}

	rows, err := tx.QueryContext(ctx,
		`SELECT printer_id FROM assignments WHERE employee_id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("listing current assignments: %w", err)
	}
	held := make(map[int64]bool)
	for rows.Next() {
		var printerID int64
		if err := rows.Scan(&printerID); err != nil {
			rows.Close()
			return fmt.Errorf("scanning assignment: %w", err)
		}
		held[printerID] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("listing current assignments: %w", err)
	}
	rows.Close()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM assignments WHERE employee_id = ?`, id,
	); err != nil {
		return fmt.Errorf("clearing assignments: %w", err)
	}

	for _, printerID := range printerIDs {
		if !held[printerID] {
			if err := checkCapacity(ctx, tx, printerID); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO assignments (employee_id, printer_id) VALUES (?, ?)`,
			id, printerID,
		); err != nil {
			return fmt.Errorf("creating assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing employee update: %w", err)
	}
	return nil
}

// DeleteEmployee deletes an employee together with their assignment rows.
func DeleteEmployee(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM assignments WHERE employee_id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting assignments: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM employees WHERE id = ?`, id,
	); err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing employee deletion: %w", err)
	}
	return nil
}

func scanEmployees(rows *sql.Rows) ([]model.Employee, error) {
	var employees []model.Employee
	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName); err != nil {
			return nil, fmt.Errorf("scanning employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
