package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/dusanm/tonerdepo/internal/model"
)

// GetBackupSettings returns the singleton backup configuration row.
func GetBackupSettings(ctx context.Context, db *sql.DB) (*model.BackupSettings, error) {
	s := &model.BackupSettings{}
	var enabled int
	var lastDate sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT enabled, day_of_month, last_backup_date FROM backup_settings WHERE id = 1`,
	).Scan(&enabled, &s.DayOfMonth, &lastDate)
	if err != nil {
		return nil, fmt.Errorf("getting backup settings: %w", err)
	}
	s.Enabled = enabled != 0
	s.LastBackupDate = lastDate.String
	return s, nil
}

// UpdateBackupSettings stores the enabled flag and target day of month.
// The day is clamped to 1..28 so the check fires in every month.
func UpdateBackupSettings(ctx context.Context, db *sql.DB, enabled bool, dayOfMonth int) error {
	if dayOfMonth < 1 {
		dayOfMonth = 1
	}
	if dayOfMonth > 28 {
		dayOfMonth = 28
	}

	enabledInt := 0
	if enabled {
		enabledInt = 1
	}

	_, err := db.ExecContext(ctx,
		`UPDATE backup_settings SET enabled = ?, day_of_month = ? WHERE id = 1`,
		enabledInt, dayOfMonth,
	)
	if err != nil {
		return fmt.Errorf("updating backup settings: %w", err)
	}
	return nil
}

// SetLastBackupDate records the date of the most recent backup.
func SetLastBackupDate(ctx context.Context, db *sql.DB, date string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE backup_settings SET last_backup_date = ? WHERE id = 1`, date,
	)
	if err != nil {
		return fmt.Errorf("setting last backup date: %w", err)
	}
	return nil
}

// GetJWTSecret retrieves the JWT secret from the database. If no secret
// exists, it generates one, stores it, and returns it. Uses INSERT OR IGNORE
// plus re-SELECT to avoid a TOCTOU race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}

// GetSetting returns the value for a settings key, or "" when unset.
func GetSetting(ctx context.Context, db *sql.DB, key string) (string, error) {
	var value string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores a settings key/value pair.
func SetSetting(ctx context.Context, db *sql.DB, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Settings keys.
const (
	SettingAdminPasswordHash = "admin_password_hash"
	SettingLanguage          = "language"
)
