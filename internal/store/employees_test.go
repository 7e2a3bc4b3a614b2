package store

import (
	"context"
	"errors"
	"testing"

	"github.com/dusanm/tonerdepo/internal/db"
)

func TestCreateEmployeeValidation(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	var validationErr ValidationError
	if _, err := CreateEmployee(ctx, database, "", "Horvat", nil); !errors.As(err, &validationErr) {
		t.Errorf("expected validation error for empty first name, got %v", err)
	}
	if _, err := CreateEmployee(ctx, database, "Ana", "  ", nil); !errors.As(err, &validationErr) {
		t.Errorf("expected validation error for blank last name, got %v", err)
	}
}

func TestCreateEmployeeWithAssignments(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p1, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 1, "", "", nil)
	p2, _ := CreatePrinter(ctx, database, "Brother HL-1110", "", 1, "", "", nil)

	ana, err := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}

	printers, _ := ListEmployeePrinters(ctx, database, ana.ID)
	if len(printers) != 2 {
		t.Errorf("expected 2 assigned printers, got %d", len(printers))
	}
}

func TestCreateEmployeeCapacityAborts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	free, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 1, "", "", nil)
	full, _ := CreatePrinter(ctx, database, "Brother HL-1110", "", 1, "", "", nil)
	CreateEmployee(ctx, database, "Ana", "Horvat", []int64{full.ID})

	_, err := CreateEmployee(ctx, database, "Bor", "Kovac", []int64{free.ID, full.ID})
	var capErr *CapacityError
	if !errors.As(err, &capErr) {
		t.Fatalf("expected capacity error, got %v", err)
	}

	// Nothing from the aborted creation may remain, not even the employee row.
	employees, _ := ListEmployees(ctx, database)
	if len(employees) != 1 {
		t.Errorf("expected 1 employee after aborted creation, got %d", len(employees))
	}
	got, _ := GetPrinter(ctx, database, free.ID)
	if got.Assigned != 0 {
		t.Errorf("expected no assignment on the free printer, got %d", got.Assigned)
	}
}

func TestUpdateEmployeeReplacesAssignments(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p1, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 1, "", "", nil)
	p2, _ := CreatePrinter(ctx, database, "Brother HL-1110", "", 1, "", "", nil)
	ana, _ := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{p1.ID})

	if err := UpdateEmployee(ctx, database, ana.ID, "Ana", "Novak", []int64{p2.ID}); err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}

	got, _ := GetEmployee(ctx, database, ana.ID)
	if got.LastName != "Novak" {
		t.Errorf("expected last name Novak, got %q", got.LastName)
	}
	printers, _ := ListEmployeePrinters(ctx, database, ana.ID)
	if len(printers) != 1 || printers[0].ID != p2.ID {
		t.Errorf("expected only printer %d assigned, got %+v", p2.ID, printers)
	}
}

func TestUpdateEmployeeKeepsHeldFullPrinter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Ana holds the printer's only unit. Renaming her while keeping the
	// assignment must not trip the capacity check.
	printer, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 1, "", "", nil)
	ana, _ := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{printer.ID})

	if err := UpdateEmployee(ctx, database, ana.ID, "Anja", "Horvat", []int64{printer.ID}); err != nil {
		t.Fatalf("UpdateEmployee: %v", err)
	}

	got, _ := GetPrinter(ctx, database, printer.ID)
	if got.Assigned != 1 {
		t.Errorf("expected assignment kept, got assigned=%d", got.Assigned)
	}
}

func TestDeleteEmployeeCascades(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	printer, _ := CreatePrinter(ctx, database, "LaserJet 400", "", 1, "", "", nil)
	ana, _ := CreateEmployee(ctx, database, "Ana", "Horvat", []int64{printer.ID})

	if err := DeleteEmployee(ctx, database, ana.ID); err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}

	got, _ := GetEmployee(ctx, database, ana.ID)
	if got != nil {
		t.Errorf("expected employee to be gone, got %+v", got)
	}
	p, _ := GetPrinter(ctx, database, printer.ID)
	if p.Assigned != 0 || p.Available != 1 {
		t.Errorf("expected freed unit after delete, got %+v", p)
	}
}
