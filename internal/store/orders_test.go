package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dusanm/tonerdepo/internal/db"
	"github.com/dusanm/tonerdepo/internal/model"
)

func TestComputeOrderList(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	// Below minimum by 4 and by 1, and one with enough stock.
	CreateToner(ctx, database, "HP 26A", "", 5, 1, "")
	CreateToner(ctx, database, "Canon 045", "", 2, 1, "")
	CreateToner(ctx, database, "Brother TN-241", "", 2, 2, "")

	lines, err := ComputeOrderList(ctx, database)
	if err != nil {
		t.Fatalf("ComputeOrderList: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("expected 2 order lines, got %d", len(lines))
	}
	if lines[0].Model != "HP 26A" || lines[0].ToOrder != 4 {
		t.Errorf("expected HP 26A to order 4 first, got %+v", lines[0])
	}
	if lines[1].Model != "Canon 045" || lines[1].ToOrder != 1 {
		t.Errorf("expected Canon 045 to order 1 second, got %+v", lines[1])
	}
}

func TestCommitOrderToHistory(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	toner, _ := CreateToner(ctx, database, "HP 26A", "", 5, 1, "")

	lines, _ := ComputeOrderList(ctx, database)
	if err := CommitOrderToHistory(ctx, database, lines, model.OrderNoteAutomatic); err != nil {
		t.Fatalf("CommitOrderToHistory: %v", err)
	}

	entries, _ := ListOrderHistory(ctx, database, 0, 0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	e := entries[0]
	if e.TonerID != toner.ID || e.Quantity != 4 || e.Note != model.OrderNoteAutomatic {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.OrderedOn != time.Now().Format(dateFormat) {
		t.Errorf("expected entry dated today, got %q", e.OrderedOn)
	}

	// Recording an order does not touch stock.
	got, _ := GetToner(ctx, database, toner.ID)
	if got.Stock != 1 {
		t.Errorf("expected stock unchanged at 1, got %d", got.Stock)
	}
}

func TestCommitOrderToHistoryInvalidKind(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	toner, _ := CreateToner(ctx, database, "HP 26A", "", 5, 1, "")
	lines := []model.OrderLine{{TonerID: toner.ID, Model: toner.Model, ToOrder: 4}}

	var validationErr ValidationError
	if err := CommitOrderToHistory(ctx, database, lines, "urgent"); !errors.As(err, &validationErr) {
		t.Errorf("expected validation error for unknown kind, got %v", err)
	}
	entries, _ := ListOrderHistory(ctx, database, 0, 0)
	if len(entries) != 0 {
		t.Errorf("expected no history entries, got %d", len(entries))
	}
}

func TestRecordConsumption(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	toner, _ := CreateToner(ctx, database, "HP 26A", "", 2, 5, "")

	if err := RecordConsumption(ctx, database, toner.ID); err != nil {
		t.Fatalf("RecordConsumption: %v", err)
	}

	got, _ := GetToner(ctx, database, toner.ID)
	if got.Stock != 4 {
		t.Errorf("expected stock 4, got %d", got.Stock)
	}

	events, _ := ListConsumption(ctx, database, toner.ID)
	if len(events) != 1 {
		t.Fatalf("expected 1 consumption event, got %d", len(events))
	}
	if events[0].Quantity != 1 || events[0].UsedOn != time.Now().Format(dateFormat) {
		t.Errorf("unexpected event: %+v", events[0])
	}
}

func TestRecordConsumptionNoStock(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	toner, _ := CreateToner(ctx, database, "HP 26A", "", 2, 0, "")

	if err := RecordConsumption(ctx, database, toner.ID); !errors.Is(err, ErrNoStock) {
		t.Fatalf("expected ErrNoStock, got %v", err)
	}

	// Stock must not go negative and no event may be logged.
	got, _ := GetToner(ctx, database, toner.ID)
	if got.Stock != 0 {
		t.Errorf("expected stock 0, got %d", got.Stock)
	}
	events, _ := ListConsumption(ctx, database, toner.ID)
	if len(events) != 0 {
		t.Errorf("expected no consumption events, got %d", len(events))
	}
}

func TestListOrderHistoryFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	toner, _ := CreateToner(ctx, database, "HP 26A", "", 2, 0, "")

	dates := []string{"2025-03-10", "2025-07-01", "2024-07-15"}
	for _, d := range dates {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO order_history (ordered_on, toner_id, quantity, note) VALUES (?, ?, 1, ?)`,
			d, toner.ID, model.OrderNoteManual,
		); err != nil {
			t.Fatalf("inserting history row: %v", err)
		}
	}

	entries, _ := ListOrderHistory(ctx, database, 2025, 0)
	if len(entries) != 2 {
		t.Errorf("expected 2 entries for 2025, got %d", len(entries))
	}
	entries, _ = ListOrderHistory(ctx, database, 2025, 7)
	if len(entries) != 1 || entries[0].OrderedOn != "2025-07-01" {
		t.Errorf("expected the July 2025 entry, got %+v", entries)
	}
	entries, _ = ListOrderHistory(ctx, database, 0, 7)
	if len(entries) != 2 {
		t.Errorf("expected 2 July entries across years, got %d", len(entries))
	}
}

func TestPurgeOldOrders(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	toner, _ := CreateToner(ctx, database, "HP 26A", "", 2, 0, "")

	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)
	oldDate := now.AddDate(-2, 0, -1).Format(dateFormat)
	keptDate := now.AddDate(-2, 0, 1).Format(dateFormat)

	for _, d := range []string{oldDate, keptDate} {
		if _, err := database.ExecContext(ctx,
			`INSERT INTO order_history (ordered_on, toner_id, quantity, note) VALUES (?, ?, 1, ?)`,
			d, toner.ID, model.OrderNoteAutomatic,
		); err != nil {
			t.Fatalf("inserting history row: %v", err)
		}
	}

	n, err := PurgeOldOrders(ctx, database, now)
	if err != nil {
		t.Fatalf("PurgeOldOrders: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 purged row, got %d", n)
	}

	entries, _ := ListOrderHistory(ctx, database, 0, 0)
	if len(entries) != 1 || entries[0].OrderedOn != keptDate {
		t.Errorf("expected only the recent entry to remain, got %+v", entries)
	}
}
