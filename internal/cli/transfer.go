package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/praylist/internal/transfer"
)

type ImportCmd struct {
	File     string `arg:"" type:"existingfile" help:"CSV file of bare names or full records."`
	NoBackup bool   `help:"Skip the automatic backup taken before importing."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	rows, err := transfer.ReadFile(c.File)
	if err != nil {
		return err
	}

	if !c.NoBackup {
		ctx.PerformAutomaticBackup()
	}

	result, err := ctx.Store.BulkImport(ctx, rows)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	ctx.printf("✓ Imported %d %s from %s\n", result.Imported, result.Format, c.File)
	if len(result.Skipped) > 0 {
		ctx.printf("Skipped %d existing: %s\n", len(result.Skipped), strings.Join(result.Skipped, ", "))
	}
	return nil
}

type ExportCmd struct {
	File string `arg:"" type:"path" help:"Destination CSV file."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	records, err := ctx.Store.ExportAll(ctx)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := transfer.WriteFile(c.File, records); err != nil {
		return err
	}
	ctx.printf("✓ Exported %d names to %s\n", len(records), c.File)
	return nil
}
