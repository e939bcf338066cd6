package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/praylist/internal/backup"
	"github.com/julianstephens/praylist/internal/cli"
	"github.com/julianstephens/praylist/internal/constants"
	apperrors "github.com/julianstephens/praylist/internal/errors"
	"github.com/julianstephens/praylist/internal/logger"
	"github.com/julianstephens/praylist/internal/storage"
	"github.com/julianstephens/praylist/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	DB      string `help:"Database file path." type:"path" default:"${db_path}" env:"PRAYLIST_DB"`
	Debug   bool   `help:"Enable debug logging to stderr." env:"PRAYLIST_DEBUG"`

	Add      cli.AddCmd      `cmd:"" help:"Add one or more names."`
	List     cli.ListCmd     `cmd:"" help:"List all names."`
	Rename   cli.RenameCmd   `cmd:"" help:"Rename names."`
	Seed     cli.SeedCmd     `cmd:"" help:"Add example names."`
	Active   cli.ActiveCmd   `cmd:"" help:"Show today's names." default:"1"`
	Pick     cli.PickCmd     `cmd:"" help:"Pick three new names to pray for."`
	Mark     cli.MarkCmd     `cmd:"" help:"Mark a name as prayed for."`
	Unprayed cli.UnprayedCmd `cmd:"" help:"Show names not yet prayed for this cycle."`
	Reset    cli.ResetCmd    `cmd:"" help:"Start a new cycle."`
	Import   cli.ImportCmd   `cmd:"" help:"Import names from a CSV file."`
	Export   cli.ExportCmd   `cmd:"" help:"Export all names to a CSV file."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate cli.ValidateCmd `cmd:"" help:"Check stored names for inconsistencies."`
	Backup   struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Keep a rotating list of names to pray for"),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, constants.DefaultConfigFile),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"db_path": constants.DefaultConfigPath,
		},
	)

	logs, err := logger.New(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(CLI.DB),
	})
	if err != nil {
		apperrors.Fatal(nil, err)
	}

	bg, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store := sqlite.NewStore(CLI.DB, sqlite.WithLogger(logs.Logger))
	if err := store.Load(bg); err != nil {
		apperrors.Fatal(logs.Logger, err, store, logs)
	}

	appCtx := cli.NewContext(bg, store,
		backup.NewManager(CLI.DB, backup.WithLogger(logs.Logger)),
		logs.Logger,
	)

	if err := ctx.Run(appCtx); err != nil {
		if storage.IsFault(err) {
			apperrors.Fatal(logs.Logger, err, store, logs)
		}
		logs.Debug("Command failed", "command", ctx.Command(), "error", err)
		store.Close()
		logs.Close()
		apperrors.Report(err)
		os.Exit(1)
	}

	if err := store.Close(); err != nil {
		logs.Warn("Failed to close database", "error", err)
	}
	logs.Close()
}
