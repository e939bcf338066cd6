package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/praylist/internal/constants"
)

// schemaReporter is implemented by stores backed by versioned migrations.
type schemaReporter interface {
	SchemaVersions(ctx context.Context) (current, latest int, err error)
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	ctx.println("Running diagnostics...")
	ctx.println()

	hasError := false
	report := func(name string, err error) {
		if err != nil {
			ctx.printf("❌ %s: FAIL\n", name)
			ctx.printf("   Error: %v\n", err)
			hasError = true
			return
		}
		ctx.printf("✓ %s: OK\n", name)
	}

	dbErr := checkDBReachable(ctx)
	report("Database reachable", dbErr)
	report("Schema version", checkSchemaVersion(ctx))

	if err := checkBackupsPresent(ctx); err != nil {
		ctx.printf("⚠ Backups present: WARNING\n")
		ctx.printf("   %v\n", err)
	} else {
		ctx.printf("✓ Backups present: OK\n")
	}

	if dbErr == nil {
		report("Data validation", checkValidation(ctx))
	} else {
		ctx.printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	report("Clock/timezone", checkClock(time.Now()))

	ctx.println()
	if hasError {
		ctx.println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *Context) error {
	if _, err := ctx.Store.ListNames(ctx); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	reporter, ok := ctx.Store.(schemaReporter)
	if !ok {
		return nil
	}

	current, latest, err := reporter.SchemaVersions(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	if ctx.Backup == nil {
		return fmt.Errorf("backups are not configured")
	}
	backups, err := ctx.Backup.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

// checkValidation runs the record validator over every stored name.
func checkValidation(ctx *Context) error {
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found - run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkClock(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
