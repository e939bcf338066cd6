package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/praylist/internal/constants"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	backupPath, err := ctx.Backup.CreateBackup(ctx)
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	backups, err := ctx.Backup.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.println("No backups found.")
		ctx.printf("Backups are stored in: %s\n", ctx.Backup.GetBackupDir())
		return nil
	}

	ctx.printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04:05")
		ctx.printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.printf("\nBackup directory: %s\n", ctx.Backup.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	backupPath := c.BackupFile
	if !filepath.IsAbs(backupPath) {
		possiblePath := filepath.Join(ctx.Backup.GetBackupDir(), c.BackupFile)
		if _, err := os.Stat(possiblePath); err == nil {
			backupPath = possiblePath
		}
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file not found: %s", backupPath)
	}

	if !c.Yes {
		ok, err := ctx.Confirm(
			fmt.Sprintf("Restore from %s?", filepath.Base(backupPath)),
			"This replaces your current names. A backup of the current database is taken first.",
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Restore cancelled.")
			return nil
		}
	}

	// The database file is replaced underneath the store.
	if err := ctx.Store.Close(); err != nil {
		ctx.Log.Warn("Failed to close database connection", "error", err)
	}

	safety, err := ctx.Backup.RestoreBackup(ctx, backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	if err := ctx.Store.Load(ctx); err != nil {
		return fmt.Errorf("failed to reopen restored database: %w", err)
	}

	ctx.println("✓ Database restored successfully!")
	if safety != "" {
		ctx.printf("Previous database saved as %s\n", filepath.Base(safety))
	}
	return nil
}
