package cli

import (
	"fmt"
)

type PickCmd struct {
	Names []string `arg:"" optional:"" help:"Pick from these names instead of the unprayed ones."`
}

func (c *PickCmd) Run(ctx *Context) error {
	var (
		picked []string
		err    error
	)
	if len(c.Names) > 0 {
		picked, err = ctx.Store.PickRandom(ctx, c.Names)
	} else {
		picked, err = ctx.Store.Rotate(ctx)
	}
	if err != nil {
		return fmt.Errorf("pick failed: %w", err)
	}

	ctx.println("Picked:")
	for i, name := range picked {
		ctx.printf("  %d. %s\n", i+1, name)
	}
	return nil
}

type MarkCmd struct {
	Name string `arg:"" help:"Name to mark as prayed for."`
}

func (c *MarkCmd) Run(ctx *Context) error {
	if err := ctx.Store.MarkProcessed(ctx, c.Name); err != nil {
		return fmt.Errorf("failed to mark %q: %w", c.Name, err)
	}
	ctx.printf("✓ Prayed for %s\n", c.Name)
	return nil
}

type ActiveCmd struct{}

func (c *ActiveCmd) Run(ctx *Context) error {
	active, err := ctx.Store.GetActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to get active names: %w", err)
	}

	ctx.println("Today:")
	for i, a := range active {
		ctx.printf("  %d. [%s] %s\n", i+1, checkMark(a.PrayedFor), a.Name)
	}
	return nil
}

type UnprayedCmd struct{}

func (c *UnprayedCmd) Run(ctx *Context) error {
	records, err := ctx.Store.GetUnprayed(ctx)
	if err != nil {
		return fmt.Errorf("failed to get unprayed names: %w", err)
	}
	if len(records) == 0 {
		ctx.println("No names found")
		return nil
	}

	ctx.printf("Not yet prayed for this cycle (%d):\n", len(records))
	for _, rec := range records {
		ctx.printf("  %s\n", rec.Name)
	}
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		ok, err := ctx.Confirm("Start a new cycle?", "Every name will be marked as not yet prayed for.")
		if err != nil {
			return err
		}
		if !ok {
			ctx.println("Reset cancelled.")
			return nil
		}
	}

	if err := ctx.Store.ResetCycle(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	ctx.println("✓ New cycle started")
	return nil
}
