package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
const schema = `
CREATE TABLE IF NOT EXISTS toners (
    id          INTEGER PRIMARY KEY,
    model       TEXT NOT NULL UNIQUE,
    description TEXT,
    min_stock   INTEGER NOT NULL DEFAULT 2 CHECK (min_stock >= 0),
    stock       INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
    driver_link TEXT
);

CREATE TABLE IF NOT EXISTS printers (
    id       INTEGER PRIMARY KEY,
    model    TEXT NOT NULL,
    serial   TEXT UNIQUE,
    quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
    status   TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'in_service', 'for_disposal')),
    note     TEXT
);

CREATE TABLE IF NOT EXISTS employees (
    id         INTEGER PRIMARY KEY,
    first_name TEXT NOT NULL,
    last_name  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS printer_toners (
    printer_id INTEGER NOT NULL REFERENCES printers(id),
    toner_id   INTEGER NOT NULL REFERENCES toners(id),
    PRIMARY KEY (printer_id, toner_id)
);

CREATE TABLE IF NOT EXISTS assignments (
    employee_id INTEGER NOT NULL REFERENCES employees(id),
    printer_id  INTEGER NOT NULL REFERENCES printers(id),
    assigned_on DATE NOT NULL DEFAULT CURRENT_DATE,
    PRIMARY KEY (employee_id, printer_id)
);

CREATE TABLE IF NOT EXISTS order_history (
    id         INTEGER PRIMARY KEY,
    ordered_on DATE NOT NULL DEFAULT CURRENT_DATE,
    toner_id   INTEGER NOT NULL REFERENCES toners(id),
    quantity   INTEGER NOT NULL CHECK (quantity > 0),
    note       TEXT
);

CREATE TABLE IF NOT EXISTS consumption_log (
    id       INTEGER PRIMARY KEY,
    used_on  DATE NOT NULL DEFAULT CURRENT_DATE,
    toner_id INTEGER NOT NULL REFERENCES toners(id),
    quantity INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS backup_settings (
    id               INTEGER PRIMARY KEY CHECK (id = 1),
    enabled          INTEGER NOT NULL DEFAULT 0,
    day_of_month     INTEGER NOT NULL DEFAULT 1 CHECK (day_of_month BETWEEN 1 AND 28),
    last_backup_date DATE
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

INSERT OR IGNORE INTO backup_settings (id) VALUES (1);
`

// EnsureSchema creates all tables and the backup settings row if they don't
// already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
