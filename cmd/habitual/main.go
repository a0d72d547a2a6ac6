package main

import (
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/cli/backups"
	"github.com/julianstephens/habitual/internal/cli/habits"
	"github.com/julianstephens/habitual/internal/cli/journal"
	"github.com/julianstephens/habitual/internal/cli/settings"
	"github.com/julianstephens/habitual/internal/cli/system"
	"github.com/julianstephens/habitual/internal/constants"
	errs "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite file path or PostgreSQL connection string. When empty, a connection string from HABITUAL_DB_CONNECTION or the OS keyring is used, then ~/.config/habitual/habitual.db." env:"HABITUAL_DB" default:""`
	User     string `help:"User whose habits are shown (default: the default-user setting)." env:"HABITUAL_USER"`
	Timezone string `help:"IANA timezone overriding the timezone setting." env:"HABITUAL_TIMEZONE"`
	Debug    bool   `help:"Log debug output to stderr."`
	LogLevel string `help:"Log file level: debug, info, warn or error." env:"HABITUAL_LOG_LEVEL" default:""`

	Init     system.InitCmd       `cmd:"" help:"Initialize habitual storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive checklist." default:"1"`
	Today    habits.TodayCmd      `cmd:"" help:"Show the habits due today."`
	Mark     habits.MarkCmd       `cmd:"" help:"Mark a habit as done."`
	Stats    habits.StatsCmd      `cmd:"" help:"Show streaks and completion rates."`
	Calendar habits.CalendarCmd   `cmd:"" help:"Show a month of completions for a habit."`
	Habit    habits.HabitCmd      `cmd:"" help:"Manage habits."`
	Journal  journal.JournalCmd   `cmd:"" help:"Write and read daily journal entries."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
	Keyring  system.KeyringCmd    `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   backups.BackupCmd    `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks, completion rates and a daily checklist"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, Level: CLI.LogLevel, ConfigDir: cli.ConfigDir(CLI.Config)}); err != nil {
		errs.Fatal(err)
	}

	store, err := cli.OpenStore(CLI.Config)
	if err != nil {
		errs.Fatal(err)
	}
	defer store.Close()

	appCtx := &cli.Context{Store: store}

	switch command := strings.Fields(ctx.Command())[0]; command {
	case "init", "keyring":
		// These run without an initialized database
	case "migrate":
		errs.Fatal(store.Load())
	case "doctor":
		// Doctor reports load failures itself
		if err := load(appCtx, false); err != nil {
			logger.Warn("database not ready", "error", err)
		}
	default:
		errs.Fatal(load(appCtx, true))
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errs.Fatal(err)
	}
}

// load opens the store, applies pending migrations when migrate is set, and
// prepares the context from the stored settings.
func load(ctx *cli.Context, migrate bool) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if migrator, ok := ctx.Store.(cli.Migrator); ok && migrate {
		current, latest, err := migrator.SchemaVersion()
		if err != nil {
			return err
		}
		if current < latest {
			logger.Info("applying pending migrations", "from", current, "to", latest)
			if _, err := migrator.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
				return errs.WithHint(err, "run '"+constants.AppName+" migrate' to see details")
			}
		}
	}
	return ctx.Prepare(CLI.User, CLI.Timezone)
}
