package constants

import "time"

const (
	AppName           = "praylist"
	DefaultConfigPath = "~/.config/praylist/praylist.db"
	DefaultConfigFile = "~/.config/praylist/config.json"
	Version           = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ActiveCount is the number of names selected for each rotation
	ActiveCount = 3

	// PlaceholderName pads the active view when fewer than ActiveCount names are active
	PlaceholderName = "No name yet"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "praylist-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "praylist.log"
)

// SentinelDate marks a record that has never been prayed for.
var SentinelDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
