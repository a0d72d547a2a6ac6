package constants

// RecurrenceType is the stored tag of a habit's recurrence rule
type RecurrenceType string

const (
	AppName            = "habitual"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitual/habitual.db"
	DefaultUserID      = "local"
	Version            = "v0.3.0"

	// DateFormat is the calendar date format used for every stored and exchanged day (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// RateWindowDays is the length of the trailing window used for the completion rate, today inclusive
	RateWindowDays = 30

	// Recurrence constants
	RecurrenceDaily  RecurrenceType = "daily"
	RecurrenceWeekly RecurrenceType = "weekly"
	RecurrenceDate   RecurrenceType = "date"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitual-"
	BackupFileSuffix = ".db"

	// Environment variables
	EnvDBConnection = "HABITUAL_DB_CONNECTION"
	EnvTestPostgres = "HABITUAL_TEST_PG"
)
