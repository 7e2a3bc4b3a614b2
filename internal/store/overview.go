package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dusanm/tonerdepo/internal/model"
)

// Overview returns the full assignment projection: one row per employee and
// assigned printer, with the toner models that printer consumes. Employees
// without printers get a single row with empty printer fields.
func Overview(ctx context.Context, db *sql.DB) ([]model.OverviewRow, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT e.id, e.first_name || ' ' || e.last_name,
		        COALESCE(p.model, ''), COALESCE(p.status, ''),
		        COALESCE(GROUP_CONCAT(t.model, ', '), '')
		 FROM employees e
		 LEFT JOIN assignments a ON a.employee_id = e.id
		 LEFT JOIN printers p ON p.id = a.printer_id
		 LEFT JOIN printer_toners pt ON pt.printer_id = p.id
		 LEFT JOIN toners t ON t.id = pt.toner_id
		 GROUP BY e.id, p.id
		 ORDER BY e.last_name, e.first_name, p.model`,
	)
	if err != nil {
		return nil, fmt.Errorf("building overview: %w", err)
	}
	defer rows.Close()

	var overview []model.OverviewRow
	for rows.Next() {
		var r model.OverviewRow
		if err := rows.Scan(&r.EmployeeID, &r.EmployeeName, &r.PrinterModel, &r.Status, &r.Toners); err != nil {
			return nil, fmt.Errorf("scanning overview row: %w", err)
		}
		overview = append(overview, r)
	}
	return overview, rows.Err()
}

// Summarize returns the statistics summary. Consumption is counted for the
// given year/month; zero values mean all time.
func Summarize(ctx context.Context, db *sql.DB, year, month int) (*model.Summary, error) {
	s := &model.Summary{}

	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COUNT(CASE WHEN stock < min_stock THEN 1 END),
		        COALESCE(SUM(stock), 0)
		 FROM toners`,
	).Scan(&s.TotalToners, &s.BelowMin, &s.TotalStock)
	if err != nil {
		return nil, fmt.Errorf("summarizing toners: %w", err)
	}

	query := `SELECT COUNT(*) FROM consumption_log WHERE 1=1`
	var args []any
	if year > 0 {
		query += ` AND strftime('%Y', used_on) = ?`
		args = append(args, fmt.Sprintf("%04d", year))
	}
	if month > 0 {
		query += ` AND strftime('%m', used_on) = ?`
		args = append(args, fmt.Sprintf("%02d", month))
	}
	if err := db.QueryRowContext(ctx, query, args...).Scan(&s.Consumption); err != nil {
		return nil, fmt.Errorf("counting consumption: %w", err)
	}

	rows, err := db.QueryContext(ctx,
		`SELECT model, stock FROM toners ORDER BY stock DESC, model LIMIT 5`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing top toners: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts model.TonerStock
		if err := rows.Scan(&ts.Model, &ts.Stock); err != nil {
			return nil, fmt.Errorf("scanning top toner: %w", err)
		}
		s.TopByStock = append(s.TopByStock, ts)
	}
	return s, rows.Err()
}
