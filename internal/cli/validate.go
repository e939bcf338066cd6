package cli

import (
	"fmt"
	"time"

	"github.com/julianstephens/praylist/internal/validation"
)

type ValidateCmd struct{}

func (cmd *ValidateCmd) Run(ctx *Context) error {
	ctx.println("Validating names...")
	result, err := validateStore(ctx)
	if err != nil {
		return err
	}

	ctx.println()
	ctx.println(result.FormatReport())

	if result.HasConflicts() {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}

func validateStore(ctx *Context) (validation.ValidationResult, error) {
	records, err := ctx.Store.ExportAll(ctx)
	if err != nil {
		return validation.ValidationResult{}, fmt.Errorf("failed to read names: %w", err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return validation.New().ValidateRecords(records, today), nil
}
