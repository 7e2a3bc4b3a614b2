package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dusanm/tonerdepo/internal/db"
)

// fullyAssignedPrinter creates a printer with the given quantity and that many
// assigned employees, returning the printer id and the employee ids in
// creation order.
func fullyAssignedPrinter(t *testing.T, database *sql.DB, quantity int) (int64, []int64) {
	t.Helper()
	ctx := context.Background()

	printer, err := CreatePrinter(ctx, database, "LaserJet 400", "", quantity, "", "", nil)
	if err != nil {
		t.Fatalf("CreatePrinter: %v", err)
	}

	names := []string{"Ana", "Bor", "Cene", "Dea", "Eva"}
	ids := make([]int64, 0, quantity)
	for i := 0; i < quantity; i++ {
		e, err := CreateEmployee(ctx, database, names[i], "Horvat", []int64{printer.ID})
		if err != nil {
			t.Fatalf("CreateEmployee: %v", err)
		}
		ids = append(ids, e.ID)
	}
	return printer.ID, ids
}

func TestQuantityIncreaseNotInteractive(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	printerID, _ := fullyAssignedPrinter(t, database, 2)

	change, err := ProposeQuantityChange(ctx, database, printerID, 5)
	if err != nil {
		t.Fatalf("ProposeQuantityChange: %v", err)
	}
	if change.Interactive() {
		t.Fatalf("increase should not be interactive: %+v", change)
	}
	if err := CommitQuantityChange(ctx, database, change, nil); err != nil {
		t.Fatalf("CommitQuantityChange: %v", err)
	}

	got, _ := GetPrinter(ctx, database, printerID)
	if got.Quantity != 5 || got.Assigned != 2 || got.Available != 3 {
		t.Errorf("unexpected counts after increase: %+v", got)
	}
}

func TestQuantityMandatoryUnassignment(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// quantity=3, three employees assigned, reduce to 1: two must go.
	printerID, employees := fullyAssignedPrinter(t, database, 3)

	change, err := ProposeQuantityChange(ctx, database, printerID, 1)
	if err != nil {
		t.Fatalf("ProposeQuantityChange: %v", err)
	}
	if change.MustUnassign != 2 || change.CanUnassign {
		t.Fatalf("expected mandatory unassignment of 2, got %+v", change)
	}
	if len(change.Assigned) != 3 {
		t.Fatalf("expected 3 assigned employees in proposal, got %d", len(change.Assigned))
	}

	// Selecting only one is rejected and nothing changes.
	err = CommitQuantityChange(ctx, database, change, []int64{employees[0]})
	var selErr *SelectionCountError
	if !errors.As(err, &selErr) {
		t.Fatalf("expected selection count error, got %v", err)
	}
	if selErr.Required != 2 || selErr.Selected != 1 {
		t.Errorf("unexpected selection error fields: %+v", selErr)
	}
	got, _ := GetPrinter(ctx, database, printerID)
	if got.Quantity != 3 || got.Assigned != 3 {
		t.Errorf("rejected commit must not change anything: %+v", got)
	}

	// Selecting exactly two commits atomically.
	if err := CommitQuantityChange(ctx, database, change, []int64{employees[0], employees[1]}); err != nil {
		t.Fatalf("CommitQuantityChange: %v", err)
	}
	got, _ = GetPrinter(ctx, database, printerID)
	if got.Quantity != 1 || got.Assigned != 1 || got.Available != 0 {
		t.Errorf("unexpected counts after commit: %+v", got)
	}

	remaining, _ := ListAssignedEmployees(ctx, database, printerID)
	if len(remaining) != 1 || remaining[0].ID != employees[2] {
		t.Errorf("expected only the unselected employee to remain, got %+v", remaining)
	}
}

func TestQuantityOptionalUnassignment(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// quantity=3, one employee assigned, reduce to 2: unassignment is offered
	// but not required.
	printer, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 3, "", "", nil)
	ana, _ := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{printer.ID})

	change, err := ProposeQuantityChange(ctx, database, printer.ID, 2)
	if err != nil {
		t.Fatalf("ProposeQuantityChange: %v", err)
	}
	if change.MustUnassign != 0 || !change.CanUnassign {
		t.Fatalf("expected optional unassignment, got %+v", change)
	}

	// An accepted offer with nobody selected is an error.
	if err := CommitQuantityChange(ctx, database, change, []int64{}); !errors.Is(err, ErrNoSelection) {
		t.Errorf("expected ErrNoSelection for empty selection, got %v", err)
	}

	// nil keeps all assignments.
	if err := CommitQuantityChange(ctx, database, change, nil); err != nil {
		t.Fatalf("CommitQuantityChange: %v", err)
	}
	got, _ := GetPrinter(ctx, database, printer.ID)
	if got.Quantity != 2 || got.Assigned != 1 {
		t.Errorf("unexpected counts after keep-all commit: %+v", got)
	}

	// The declined selection left Ana assigned.
	printers, _ := ListEmployeePrinters(ctx, database, ana.ID)
	if len(printers) != 1 {
		t.Errorf("expected employee to stay assigned, got %d printers", len(printers))
	}
}

func TestQuantityOptionalUnassignmentSelection(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	printer, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 3, "", "", nil)
	ana, _ := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{printer.ID})

	change, _ := ProposeQuantityChange(ctx, database, printer.ID, 2)
	if err := CommitQuantityChange(ctx, database, change, []int64{ana.ID}); err != nil {
		t.Fatalf("CommitQuantityChange: %v", err)
	}

	got, _ := GetPrinter(ctx, database, printer.ID)
	if got.Quantity != 2 || got.Assigned != 0 {
		t.Errorf("unexpected counts after optional unassignment: %+v", got)
	}
}

func TestQuantityNonInteractiveRejectsSelection(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	printer, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 2, "", "", nil)
	ana, _ := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{printer.ID})

	change, _ := ProposeQuantityChange(ctx, database, printer.ID, 5)

	var validationErr ValidationError
	if err := CommitQuantityChange(ctx, database, change, []int64{ana.ID}); !errors.As(err, &validationErr) {
		t.Errorf("expected validation error for selection on plain change, got %v", err)
	}
}

func TestQuantityStaleProposal(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	printerID, employees := fullyAssignedPrinter(t, database, 3)

	change, err := ProposeQuantityChange(ctx, database, printerID, 1)
	if err != nil {
		t.Fatalf("ProposeQuantityChange: %v", err)
	}

	// Someone else unassigns between propose and commit.
	if err := UnassignPrinter(ctx, database, employees[2], printerID); err != nil {
		t.Fatalf("UnassignPrinter: %v", err)
	}

	err = CommitQuantityChange(ctx, database, change, []int64{employees[0], employees[1]})
	if !errors.Is(err, ErrStaleProposal) {
		t.Fatalf("expected ErrStaleProposal, got %v", err)
	}

	got, _ := GetPrinter(ctx, database, printerID)
	if got.Quantity != 3 || got.Assigned != 2 {
		t.Errorf("stale commit must not change anything: %+v", got)
	}
}

func TestQuantityAbandonedProposalWritesNothing(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	printerID, _ := fullyAssignedPrinter(t, database, 3)

	if _, err := ProposeQuantityChange(ctx, database, printerID, 1); err != nil {
		t.Fatalf("ProposeQuantityChange: %v", err)
	}

	got, _ := GetPrinter(ctx, database, printerID)
	if got.Quantity != 3 || got.Assigned != 3 {
		t.Errorf("proposal alone must not change anything: %+v", got)
	}
}
