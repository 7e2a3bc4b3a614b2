package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dusanm/tonerdepo/internal/model"
)

// dateFormat is the stored date layout for history rows.
const dateFormat = "2006-01-02"

// ComputeOrderList returns every toner below its minimum stock with the
// quantity to order, largest orders first. Read-only.
func ComputeOrderList(ctx context.Context, db *sql.DB) ([]model.OrderLine, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, model, min_stock, stock, (min_stock - stock) AS to_order
		 FROM toners
		 WHERE stock < min_stock
		 ORDER BY to_order DESC, model`,
	)
	if err != nil {
		return nil, fmt.Errorf("computing order list: %w", err)
	}
	defer rows.Close()

	var lines []model.OrderLine
	for rows.Next() {
		var l model.OrderLine
		if err := rows.Scan(&l.TonerID, &l.Model, &l.MinStock, &l.Stock, &l.ToOrder); err != nil {
			return nil, fmt.Errorf("scanning order line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

// CommitOrderToHistory appends one history entry per order line, dated now,
// tagged with the given note kind (manual or automatic). All entries are
// written in one transaction or none are.
func CommitOrderToHistory(ctx context.Context, db *sql.DB, lines []model.OrderLine, kind string) error {
	if kind != model.OrderNoteManual && kind != model.OrderNoteAutomatic {
		return ValidationError("invalid order note kind")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	today := time.Now().Format(dateFormat)
	for _, l := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO order_history (ordered_on, toner_id, quantity, note) VALUES (?, ?, ?, ?)`,
			today, l.TonerID, l.ToOrder, kind,
		); err != nil {
			return fmt.Errorf("recording order for toner %d: %w", l.TonerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing order history: %w", err)
	}
	return nil
}

// RecordConsumption decrements a toner's stock by exactly one unit and logs
// a consumption event dated now, in one transaction. Fails with ErrNoStock
// when the stock is already zero.
func RecordConsumption(ctx context.Context, db *sql.DB, tonerID int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var stock int
	err = tx.QueryRowContext(ctx,
		`SELECT stock FROM toners WHERE id = ?`, tonerID,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		return fmt.Errorf("toner %d not found", tonerID)
	}
	if err != nil {
		return fmt.Errorf("checking stock: %w", err)
	}
	if stock <= 0 {
		return ErrNoStock
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE toners SET stock = stock - 1 WHERE id = ?`, tonerID,
	); err != nil {
		return fmt.Errorf("decrementing stock: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO consumption_log (used_on, toner_id, quantity) VALUES (?, ?, 1)`,
		time.Now().Format(dateFormat), tonerID,
	); err != nil {
		return fmt.Errorf("logging consumption: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing consumption: %w", err)
	}
	return nil
}

// ListOrderHistory returns order history entries joined with toner models,
// newest first, optionally filtered by year and month (zero means no filter).
func ListOrderHistory(ctx context.Context, db *sql.DB, year, month int) ([]model.OrderEntry, error) {
	query := `SELECT h.id, h.ordered_on, h.toner_id, COALESCE(t.model, ''), h.quantity, COALESCE(h.note, '')
	          FROM order_history h
	          LEFT JOIN toners t ON t.id = h.toner_id
	          WHERE 1=1`
	var args []any

	if year > 0 {
		query += ` AND strftime('%Y', h.ordered_on) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	if month > 0 {
		query += ` AND strftime('%m', h.ordered_on) = ?`
		args = append(args, fmt.Sprintf("%02d", month))
	}

	query += ` ORDER BY h.ordered_on DESC, h.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing order history: %w", err)
	}
	defer rows.Close()

	var entries []model.OrderEntry
	for rows.Next() {
		var e model.OrderEntry
		if err := rows.Scan(&e.ID, &e.OrderedOn, &e.TonerID, &e.Model, &e.Quantity, &e.Note); err != nil {
			return nil, fmt.Errorf("scanning order entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListConsumption returns consumption events joined with toner models,
// newest first.
func ListConsumption(ctx context.Context, db *sql.DB, tonerID int64) ([]model.ConsumptionEvent, error) {
	query := `SELECT c.id, c.used_on, c.toner_id, COALESCE(t.model, ''), c.quantity
	          FROM consumption_log c
	          LEFT JOIN toners t ON t.id = c.toner_id`
	var args []any

	if tonerID > 0 {
		query += ` WHERE c.toner_id = ?`
		args = append(args, tonerID)
	}

	query += ` ORDER BY c.used_on DESC, c.id DESC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing consumption: %w", err)
	}
	defer rows.Close()

	var events []model.ConsumptionEvent
	for rows.Next() {
		var e model.ConsumptionEvent
		if err := rows.Scan(&e.ID, &e.UsedOn, &e.TonerID, &e.Model, &e.Quantity); err != nil {
			return nil, fmt.Errorf("scanning consumption event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// PurgeOldOrders deletes order history older than two years before now.
// Returns the number of deleted rows. The cutoff is computed from the local
// clock so retention boundaries follow local dates.
func PurgeOldOrders(ctx context.Context, db *sql.DB, now time.Time) (int64, error) {
	cutoff := now.AddDate(-2, 0, 0).Format(dateFormat)
	result, err := db.ExecContext(ctx,
		`DELETE FROM order_history WHERE ordered_on < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("purging order history: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purging order history: %w", err)
	}
	return n, nil
}
