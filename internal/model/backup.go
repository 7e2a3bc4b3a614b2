package model

// BackupSettings is the singleton auto-backup configuration.
type BackupSettings struct {
	Enabled        bool   `json:"enabled"`
	DayOfMonth     int    `json:"day_of_month"`
	LastBackupDate string `json:"last_backup_date,omitempty"`
}
