package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dusanm/tonerdepo/internal/model"
)

// QuantityChange is a proposed change to a printer's unit quantity. When the
// new quantity is below the assigned count the caller must select exactly
// MustUnassign employees to unassign; when it shrinks but still covers all
// assignments, CanUnassign marks unassignment as an optional offer. Proposing
// never writes, so an abandoned proposal leaves no partial state.
type QuantityChange struct {
	PrinterID    int64            `json:"printer_id"`
	Model        string           `json:"model"`
	OldQuantity  int              `json:"old_quantity"`
	NewQuantity  int              `json:"new_quantity"`
	OldAssigned  int              `json:"old_assigned"`
	Assigned     []model.Employee `json:"assigned"`
	MustUnassign int              `json:"must_unassign"`
	CanUnassign  bool             `json:"can_unassign"`
}

// Interactive reports whether committing this change needs a caller decision.
func (c *QuantityChange) Interactive() bool {
	return c.MustUnassign > 0 || c.CanUnassign
}

// ProposeQuantityChange computes what a quantity change requires from the
// caller. Read-only; counts are taken fresh from the store.
func ProposeQuantityChange(ctx context.Context, db *sql.DB, printerID int64, newQuantity int) (*QuantityChange, error) {
	if newQuantity < 0 {
		return nil, ValidationError("quantity must not be negative")
	}

	p, err := GetPrinter(ctx, db, printerID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("printer %d not found", printerID)
	}

	change := &QuantityChange{
		PrinterID:   printerID,
		Model:       p.Model,
		OldQuantity: p.Quantity,
		NewQuantity: newQuantity,
		OldAssigned: p.Assigned,
	}

	// Increases and shrinks with nobody assigned need no interaction.
	if newQuantity >= p.Quantity || p.Assigned == 0 {
		return change, nil
	}

	change.Assigned, err = ListAssignedEmployees(ctx, db, printerID)
	if err != nil {
		return nil, err
	}

	if newQuantity < p.Assigned {
		change.MustUnassign = p.Assigned - newQuantity
	} else {
		change.CanUnassign = true
	}
	return change, nil
}

// CommitQuantityChange applies a proposed change. unassign lists the
// employees to unassign: nil means "keep all assignments" (only legal when
// unassignment is optional), an empty non-nil slice in the optional flow
// fails with ErrNoSelection, and a mandatory flow requires exactly
// MustUnassign IDs. Unassignments and the quantity update commit atomically;
// if the printer changed since the proposal the commit fails with
// ErrStaleProposal and nothing is written.
func CommitQuantityChange(ctx context.Context, db *sql.DB, change *QuantityChange, unassign []int64) error {
	if change.MustUnassign > 0 {
		if len(unassign) != change.MustUnassign {
			return &SelectionCountError{Required: change.MustUnassign, Selected: len(unassign)}
		}
	} else if change.CanUnassign {
		if unassign != nil && len(unassign) == 0 {
			return ErrNoSelection
		}
	} else if len(unassign) > 0 {
		return ValidationError("this quantity change does not allow unassignment")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var quantity, assigned int
	err = tx.QueryRowContext(ctx,
		`SELECT p.quantity, COUNT(DISTINCT a.employee_id)
		 FROM printers p
		 LEFT JOIN assignments a ON a.printer_id = p.id
		 WHERE p.id = ?
		 GROUP BY p.id`, change.PrinterID,
	).Scan(&quantity, &assigned)
	if err == sql.ErrNoRows {
		return fmt.Errorf("printer %d not found", change.PrinterID)
	}
	if err != nil {
		return fmt.Errorf("checking printer: %w", err)
	}

	if quantity != change.OldQuantity || assigned != change.OldAssigned {
		return ErrStaleProposal
	}

	for _, employeeID := range unassign {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM assignments WHERE employee_id = ? AND printer_id = ?`,
			employeeID, change.PrinterID,
		)
		if err != nil {
			return fmt.Errorf("removing assignment: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("removing assignment: %w", err)
		}
		if n == 0 {
			return ValidationError(fmt.Sprintf("employee %d is not assigned to this printer", employeeID))
		}
	}

	// The invariant assigned <= quantity must hold once this commits.
	if assigned-len(unassign) > change.NewQuantity {
		return &SelectionCountError{Required: assigned - change.NewQuantity, Selected: len(unassign)}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE printers SET quantity = ? WHERE id = ?`,
		change.NewQuantity, change.PrinterID,
	); err != nil {
		return fmt.Errorf("updating quantity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing quantity change: %w", err)
	}
	return nil
}
