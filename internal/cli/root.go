package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"

	"github.com/julianstephens/praylist/internal/backup"
	"github.com/julianstephens/praylist/internal/logger"
	"github.com/julianstephens/praylist/internal/storage"
)

// Context is bound to every command's Run method. It embeds the process
// context so it can be passed straight to the store.
type Context struct {
	context.Context

	Store  storage.Provider
	Backup *backup.Manager
	Log    *log.Logger
	Out    io.Writer

	// Confirm asks a yes/no question. Defaults to a huh prompt.
	Confirm func(title, description string) (bool, error)
}

func NewContext(ctx context.Context, store storage.Provider, mgr *backup.Manager, l *log.Logger) *Context {
	if l == nil {
		l = logger.Discard()
	}
	return &Context{
		Context: ctx,
		Store:   store,
		Backup:  mgr,
		Log:     l,
		Out:     os.Stdout,
		Confirm: confirm,
	}
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.Out, args...)
}

// PerformAutomaticBackup snapshots the database and only logs on failure.
func (c *Context) PerformAutomaticBackup() {
	if c.Backup == nil {
		return
	}
	path, err := c.Backup.CreateBackup(c)
	if err != nil {
		c.Log.Warn("Automatic backup failed", "error", err)
		return
	}
	c.Log.Debug("Automatic backup created", "path", path)
}

func confirm(title, description string) (bool, error) {
	var ok bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, fmt.Errorf("interactive form error: %w", err)
	}
	return ok, nil
}

// parseRenames turns "old=new" arguments into a rename map.
func parseRenames(pairs []string) (map[string]string, error) {
	changes := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		oldName, newName, ok := strings.Cut(pair, "=")
		oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
		if !ok || oldName == "" || newName == "" {
			return nil, fmt.Errorf("invalid rename %q: expected OLD=NEW", pair)
		}
		if _, dup := changes[oldName]; dup {
			return nil, fmt.Errorf("%q is renamed more than once", oldName)
		}
		changes[oldName] = newName
	}
	return changes, nil
}

func checkMark(done bool) string {
	if done {
		return "✓"
	}
	return " "
}
