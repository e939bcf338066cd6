package cli

import (
	"fmt"

	"github.com/julianstephens/praylist/internal/constants"
)

type AddCmd struct {
	Names []string `arg:"" help:"Names to add."`
}

func (c *AddCmd) Run(ctx *Context) error {
	for _, name := range c.Names {
		if err := ctx.Store.Add(ctx, name); err != nil {
			return fmt.Errorf("failed to add %q: %w", name, err)
		}
		ctx.printf("✓ Added %s\n", name)
	}
	return nil
}

type ListCmd struct {
	Verbose bool `short:"v" help:"Show rotation state for each name."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if !c.Verbose {
		names, err := ctx.Store.ListNames(ctx)
		if err != nil {
			return fmt.Errorf("failed to list names: %w", err)
		}
		if len(names) == 0 {
			ctx.println("No names found")
			return nil
		}
		for _, name := range names {
			ctx.printf("  %s\n", name)
		}
		return nil
	}

	records, err := ctx.Store.ExportAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list names: %w", err)
	}
	if len(records) == 0 {
		ctx.println("No names found")
		return nil
	}

	ctx.println("Names:")
	for _, rec := range records {
		last := rec.Last.Format(constants.DateFormat)
		if rec.NeverPrayed() {
			last = "never"
		}
		active := ""
		if rec.Active {
			active = " (active)"
		}
		ctx.printf("  [%s] %s%s - prayed %d times, last %s, added %s\n",
			checkMark(rec.PrayedFor), rec.Name, active, rec.Count, last, rec.Created.Format(constants.DateFormat))
	}
	return nil
}

type RenameCmd struct {
	Pairs []string `arg:"" help:"Renames as OLD=NEW." placeholder:"OLD=NEW"`
}

func (c *RenameCmd) Run(ctx *Context) error {
	changes, err := parseRenames(c.Pairs)
	if err != nil {
		return err
	}
	if err := ctx.Store.Rename(ctx, changes); err != nil {
		return fmt.Errorf("rename failed: %w", err)
	}
	for _, pair := range c.Pairs {
		ctx.printf("✓ Renamed %s\n", pair)
	}
	return nil
}

type SeedCmd struct{}

func (c *SeedCmd) Run(ctx *Context) error {
	added, err := ctx.Store.SeedExamples(ctx)
	if err != nil {
		return fmt.Errorf("failed to add example names: %w", err)
	}
	ctx.printf("✓ Added %d example names\n", added)
	return nil
}
