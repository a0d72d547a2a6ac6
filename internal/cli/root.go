package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/habitual/internal/backup"
	"github.com/julianstephens/habitual/internal/calendar"
	"github.com/julianstephens/habitual/internal/constants"
	errs "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/logger"
	"github.com/julianstephens/habitual/internal/models"
	"github.com/julianstephens/habitual/internal/storage"
	"github.com/julianstephens/habitual/internal/storage/postgres"
	"github.com/julianstephens/habitual/internal/storage/sqlite"
	"github.com/julianstephens/habitual/internal/tracker"
)

// ErrSQLiteOnly is returned by commands that operate on the database file.
var ErrSQLiteOnly = errors.New("this command is only available for SQLite databases")

// Context is passed to every command's Run method.
type Context struct {
	Store    storage.Provider
	Tracker  *tracker.Service
	Settings models.Settings
	UserID   string
	Location *time.Location
	// Out receives command output. Defaults to stdout.
	Out io.Writer
}

// Migrator is implemented by the stores that manage a versioned schema.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// Prepare reads the persisted settings and builds the tracker. Non-empty
// user and timezone arguments override the stored defaults.
func (c *Context) Prepare(user, timezone string) error {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	c.Settings = settings

	if strings.TrimSpace(timezone) == "" {
		timezone = settings.Timezone
	}
	loc, err := calendar.LoadLocation(timezone)
	if err != nil {
		return errs.WithHint(err, "use an IANA name such as Europe/Berlin, or Local")
	}
	c.Location = loc

	c.UserID = firstNonEmpty(user, settings.DefaultUser, constants.DefaultUserID)
	c.Tracker = tracker.New(c.Store, loc)
	logger.Debug("context ready", "user", c.UserID, "timezone", loc.String())
	return nil
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.writer(), format, args...)
}

func (c *Context) Print(args ...interface{}) {
	fmt.Fprint(c.writer(), args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.writer(), args...)
}

func (c *Context) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// ResolveDay parses a YYYY-MM-DD flag value. An empty value is today in the
// configured timezone.
func (c *Context) ResolveDay(value string) (calendar.Date, error) {
	if strings.TrimSpace(value) == "" {
		return c.Tracker.Today(), nil
	}
	return calendar.Parse(value)
}

// SQLitePath returns the database file of a SQLite store.
func (c *Context) SQLitePath() (string, error) {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		return "", ErrSQLiteOnly
	}
	return c.Store.GetConfigPath(), nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	path, err := c.SQLitePath()
	if err != nil {
		return
	}
	if _, err := backup.NewManager(path).CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// OpenStore returns the backend named by target: a PostgreSQL URL or DSN, or
// a SQLite file path. An empty target uses a connection string from the
// environment or the OS keyring when one is set, and the default SQLite
// path otherwise.
func OpenStore(target string) (storage.Provider, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		connStr, source, err := keyring.ResolveConnectionString()
		switch {
		case err == nil:
			// Stored secrets may carry a password; only the format is checked.
			if err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("connection string from %s: %w", source, err)
			}
			logger.Debug("using PostgreSQL", "source", source, "conn", keyring.Mask(connStr))
			return postgres.New(connStr), nil
		case errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrKeyringUnavailable):
			logger.Debug("no stored connection string, using SQLite", "reason", err)
		default:
			return nil, err
		}
		target = constants.DefaultConfigPath
	}

	if IsPostgresTarget(target) {
		if err := postgres.ValidateConnString(target); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, errs.WithHint(err,
					"store the connection string with 'habitual keyring set', export "+constants.EnvDBConnection+", or use a .pgpass file")
			}
			return nil, err
		}
		return postgres.New(target), nil
	}
	return sqlite.NewStore(ExpandHome(target)), nil
}

// IsPostgresTarget reports whether a --config value names a PostgreSQL
// database, as a URL or a key=value DSN.
func IsPostgresTarget(target string) bool {
	return postgres.IsConnString(target) || strings.Contains(target, "host=") || strings.Contains(target, "dbname=")
}

// ConfigDir is the directory holding logs and, for SQLite, the database.
func ConfigDir(target string) string {
	target = strings.TrimSpace(target)
	if target == "" || IsPostgresTarget(target) {
		target = constants.DefaultConfigPath
	}
	return filepath.Dir(ExpandHome(target))
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
