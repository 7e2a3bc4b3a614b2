// Package backup copies the live database file to and from a backup
// directory. All copies go through a temporary file followed by a rename so
// a failed copy never leaves a partially written target.
package backup

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dusanm/tonerdepo/internal/store"
)

const timestampFormat = "20060102_150405"

// Create copies the live database file into dir as a timestamped backup and
// returns the backup path.
func Create(dbPath, dir string, now time.Time) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return "", fmt.Errorf("locating database: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	name := fmt.Sprintf("toners_backup_%s.db", now.Format(timestampFormat))
	target := filepath.Join(dir, name)
	if err := copyFile(dbPath, target); err != nil {
		return "", fmt.Errorf("writing backup: %w", err)
	}
	return target, nil
}

// Restore copies a backup file over the live database. The current live file
// is first snapshotted into dir so a bad restore can be undone. The caller
// must restart the application afterwards; the live connection is not
// swapped at runtime.
func Restore(dbPath, backupPath, dir string, now time.Time) (string, error) {
	if _, err := os.Stat(backupPath); err != nil {
		return "", fmt.Errorf("locating backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating backup directory: %w", err)
	}

	snapshot := filepath.Join(dir, fmt.Sprintf("toners_pre_restore_%s.db", now.Format(timestampFormat)))
	if err := copyFile(dbPath, snapshot); err != nil {
		return "", fmt.Errorf("snapshotting live database: %w", err)
	}

	if err := copyFile(backupPath, dbPath); err != nil {
		return "", fmt.Errorf("restoring backup: %w", err)
	}
	return snapshot, nil
}

// List returns the backup file names in dir, newest first. A missing
// directory yields an empty list.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading backup directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".db") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	return names, nil
}

// CheckAndRun performs the startup auto-backup check: when enabled and the
// target day of month has passed without a backup recorded this calendar
// month, it creates a backup and stamps the settings row. Returns the backup
// path, or "" when no backup was due.
func CheckAndRun(ctx context.Context, db *sql.DB, dbPath, dir string, now time.Time) (string, error) {
	settings, err := store.GetBackupSettings(ctx, db)
	if err != nil {
		return "", err
	}
	if !settings.Enabled || now.Day() < settings.DayOfMonth {
		return "", nil
	}

	if settings.LastBackupDate != "" {
		last, err := time.Parse("2006-01-02", settings.LastBackupDate)
		if err == nil && last.Year() == now.Year() && last.Month() == now.Month() {
			return "", nil // already backed up this month
		}
	}

	path, err := Create(dbPath, dir, now)
	if err != nil {
		return "", err
	}

	if err := store.SetLastBackupDate(ctx, db, now.Format("2006-01-02")); err != nil {
		return path, err
	}
	return path, nil
}

// copyFile copies src to dst via a temporary file in dst's directory.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".copy-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, in); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), dst)
}
