package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dusanm/tonerdepo/internal/model"
)

const printerColumns = `p.id, p.model, p.serial, p.quantity, p.status, p.note,
	(SELECT COUNT(DISTINCT a.employee_id) FROM assignments a WHERE a.printer_id = p.id) AS assigned`

// CreatePrinter creates a printer entry with its toner associations.
func CreatePrinter(ctx context.Context, db *sql.DB, printerModel, serial string, quantity int, status, note string, tonerIDs []int64) (*model.Printer, error) {
	if strings.TrimSpace(printerModel) == "" {
		return nil, ValidationError("printer model required")
	}
	if quantity < 0 {
		return nil, ValidationError("quantity must not be negative")
	}
	if status == "" {
		status = model.PrinterStatusActive
	}
	if !model.ValidPrinterStatus(status) {
		return nil, ValidationError("invalid printer status")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO printers (model, serial, quantity, status, note) VALUES (?, ?, ?, ?, ?)`,
		printerModel, nullString(serial), quantity, status, note,
	)
	if err != nil {
		return nil, fmt.Errorf("creating printer: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting printer id: %w", err)
	}

	for _, tonerID := range tonerIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO printer_toners (printer_id, toner_id) VALUES (?, ?)`,
			id, tonerID,
		); err != nil {
			return nil, fmt.Errorf("linking toner: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing printer creation: %w", err)
	}

	return GetPrinter(ctx, db, id)
}

// GetPrinter returns a printer by ID with derived assignment counts.
func GetPrinter(ctx context.Context, db *sql.DB, id int64) (*model.Printer, error) {
	p := &model.Printer{}
	var serial, note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+printerColumns+` FROM printers p WHERE p.id = ?`, id,
	).Scan(&p.ID, &p.Model, &serial, &p.Quantity, &p.Status, &note, &p.Assigned)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting printer: %w", err)
	}
	p.Serial = serial.String
	p.Note = note.String
	p.Available = p.Quantity - p.Assigned
	return p, nil
}

// ListPrinters returns all printers with derived assignment counts, ordered
// by model.
func ListPrinters(ctx context.Context, db *sql.DB) ([]model.Printer, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT `+printerColumns+` FROM printers p ORDER BY p.model`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing printers: %w", err)
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

// UpdatePrinter updates a printer's metadata. Quantity changes go through
// ProposeQuantityChange/CommitQuantityChange instead.
func UpdatePrinter(ctx context.Context, db *sql.DB, id int64, printerModel, serial, status, note string) error {
	if strings.TrimSpace(printerModel) == "" {
		return ValidationError("printer model required")
	}
	if !model.ValidPrinterStatus(status) {
		return ValidationError("invalid printer status")
	}

	_, err := db.ExecContext(ctx,
		`UPDATE printers SET model = ?, serial = ?, status = ?, note = ? WHERE id = ?`,
		printerModel, nullString(serial), status, note, id,
	)
	if err != nil {
		return fmt.Errorf("updating printer: %w", err)
	}
	return nil
}

// SetPrinterStatus updates only the lifecycle status.
func SetPrinterStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if !model.ValidPrinterStatus(status) {
		return ValidationError("invalid printer status")
	}
	_, err := db.ExecContext(ctx,
		`UPDATE printers SET status = ? WHERE id = ?`, status, id,
	)
	if err != nil {
		return fmt.Errorf("setting printer status: %w", err)
	}
	return nil
}

// SetPrinterToners replaces a printer's toner association set.
func SetPrinterToners(ctx context.Context, db *sql.DB, printerID int64, tonerIDs []int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM printer_toners WHERE printer_id = ?`, printerID,
	); err != nil {
		return fmt.Errorf("clearing toner links: %w", err)
	}

	for _, tonerID := range tonerIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO printer_toners (printer_id, toner_id) VALUES (?, ?)`,
			printerID, tonerID,
		); err != nil {
			return fmt.Errorf("linking toner: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing toner links: %w", err)
	}
	return nil
}

// ListPrinterToners returns the toners a printer consumes.
func ListPrinterToners(ctx context.Context, db *sql.DB, printerID int64) ([]model.Toner, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT t.id, t.model, t.description, t.min_stock, t.stock, t.driver_link
		 FROM toners t
		 JOIN printer_toners pt ON pt.toner_id = t.id
		 WHERE pt.printer_id = ? ORDER BY t.model`, printerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing printer toners: %w", err)
	}
	defer rows.Close()

	var toners []model.Toner
	for rows.Next() {
		var t model.Toner
		var description, driverLink sql.NullString
		if err := rows.Scan(&t.ID, &t.Model, &description, &t.MinStock, &t.Stock, &driverLink); err != nil {
			return nil, fmt.Errorf("scanning toner: %w", err)
		}
		t.Description = description.String
		t.DriverLink = driverLink.String
		toners = append(toners, t)
	}
	return toners, rows.Err()
}

// DeletePrinter deletes a printer and all of its assignment and toner-usage
// rows in a single transaction.
func DeletePrinter(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	cascades := []string{
		`DELETE FROM assignments WHERE printer_id = ?`,
		`DELETE FROM printer_toners WHERE printer_id = ?`,
		`DELETE FROM printers WHERE id = ?`,
	}
	for _, q := range cascades {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("deleting printer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing printer deletion: %w", err)
	}
	return nil
}

// nullString maps "" to NULL so UNIQUE columns ignore empty values.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
