package store

import (
	"errors"
	"fmt"
)

// Sentinel errors callers branch on.
var (
	// ErrNoStock is returned when consumption is recorded on a toner with
	// zero stock.
	ErrNoStock = errors.New("toner has no stock")

	// ErrNoSelection is returned when an optional unassignment was accepted
	// but no employees were selected.
	ErrNoSelection = errors.New("no employees selected")

	// ErrStaleProposal is returned when a quantity change is committed after
	// the printer's quantity or assignments changed under it.
	ErrStaleProposal = errors.New("printer changed since proposal")
)

// ValidationError reports invalid input rejected before any write.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// CapacityError reports an assignment attempt on a printer with no free
// units.
type CapacityError struct {
	PrinterID int64
	Model     string
	Quantity  int
	Assigned  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("printer %q has no free units (total %d, assigned %d)",
		e.Model, e.Quantity, e.Assigned)
}

// SelectionCountError reports a mandatory unassignment selection of the
// wrong size.
type SelectionCountError struct {
	Required int
	Selected int
}

func (e *SelectionCountError) Error() string {
	return fmt.Sprintf("must select exactly %d employees to unassign, got %d",
		e.Required, e.Selected)
}
