package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dusanm/tonerdepo/internal/model"
)

// CreateToner creates a new toner model entry.
func CreateToner(ctx context.Context, db *sql.DB, tonerModel, description string, minStock, stock int, driverLink string) (*model.Toner, error) {
	if strings.TrimSpace(tonerModel) == "" {
		return nil, ValidationError("toner model required")
	}
	if minStock < 0 || stock < 0 {
		return nil, ValidationError("stock values must not be negative")
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO toners (model, description, min_stock, stock, driver_link)
		 VALUES (?, ?, ?, ?, ?)`,
		tonerModel, description, minStock, stock, driverLink,
	)
	if err != nil {
		return nil, fmt.Errorf("creating toner: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting toner id: %w", err)
	}

	return GetToner(ctx, db, id)
}

// GetToner returns a toner by ID.
func GetToner(ctx context.Context, db *sql.DB, id int64) (*model.Toner, error) {
	t := &model.Toner{}
	var description, driverLink sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, model, description, min_stock, stock, driver_link
		 FROM toners WHERE id = ?`, id,
	).Scan(&t.ID, &t.Model, &description, &t.MinStock, &t.Stock, &driverLink)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting toner: %w", err)
	}
	t.Description = description.String
	t.DriverLink = driverLink.String
	return t, nil
}

// GetTonerByModel returns a toner by its unique model name.
func GetTonerByModel(ctx context.Context, db *sql.DB, tonerModel string) (*model.Toner, error) {
	var id int64
	err := db.QueryRowContext(ctx,
		`SELECT id FROM toners WHERE model = ?`, tonerModel,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting toner by model: %w", err)
	}
	return GetToner(ctx, db, id)
}

// ListToners returns all toners ordered by model.
func ListToners(ctx context.Context, db *sql.DB) ([]model.Toner, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, model, description, min_stock, stock, driver_link
		 FROM toners ORDER BY model`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing toners: %w", err)
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

// UpdateToner updates a toner's metadata and thresholds.
func UpdateToner(ctx context.Context, db *sql.DB, id int64, tonerModel, description string, minStock, stock int, driverLink string) error {
	if strings.TrimSpace(tonerModel) == "" {
		return ValidationError("toner model required")
	}
	if minStock < 0 || stock < 0 {
		return ValidationError("stock values must not be negative")
	}

	_, err := db.ExecContext(ctx,
		`UPDATE toners SET model = ?, description = ?, min_stock = ?, stock = ?, driver_link = ?
		 WHERE id = ?`,
		tonerModel, description, minStock, stock, driverLink, id,
	)
	if err != nil {
		return fmt.Errorf("updating toner: %w", err)
	}
	return nil
}

// SetTonerStock sets a toner's current stock directly.
func SetTonerStock(ctx context.Context, db *sql.DB, id int64, stock int) error {
	if stock < 0 {
		return ValidationError("stock must not be negative")
	}
	_, err := db.ExecContext(ctx,
		`UPDATE toners SET stock = ? WHERE id = ?`, stock, id,
	)
	if err != nil {
		return fmt.Errorf("setting toner stock: %w", err)
	}
	return nil
}

// DeleteToner deletes a toner and all rows referencing it (printer usage,
// order history, consumption log) in a single transaction.
func DeleteToner(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	cascades := []string{
		`DELETE FROM printer_toners WHERE toner_id = ?`,
		`DELETE FROM order_history WHERE toner_id = ?`,
		`DELETE FROM consumption_log WHERE toner_id = ?`,
		`DELETE FROM toners WHERE id = ?`,
	}
	for _, q := range cascades {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("deleting toner: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing toner deletion: %w", err)
	}
	return nil
}

// ListTonerPrinters returns the models of printers that use the given toner.
func ListTonerPrinters(ctx context.Context, db *sql.DB, tonerID int64) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT p.model FROM printers p
		 JOIN printer_toners pt ON pt.printer_id = p.id
		 WHERE pt.toner_id = ? ORDER BY p.model`, tonerID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing toner printers: %w", err)
	}
	defer rows.Close()

	var models []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, fmt.Errorf("scanning printer model: %w", err)
		}
		models = append(models, m)
	}
	return models, rows.Err()
}
