package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/models"
	"github.com/julianstephens/praylist/internal/storage"
)

// Add inserts a new, never-prayed-for name.
func (s *Store) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return storage.ErrInvalidName
	}

	err := s.withTx(ctx, "add", func(tx *sql.Tx) error {
		ok, err := insert(ctx, tx, models.Record{
			Name:    name,
			Created: s.today(),
			Last:    constants.SentinelDate,
		})
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("Name added", "name", name)
	return nil
}

func (s *Store) Get(ctx context.Context, name string) (models.Record, error) {
	var rec models.Record
	err := s.withTx(ctx, "get", func(tx *sql.Tx) error {
		var err error
		rec, err = scanRecord(tx.QueryRowContext(ctx,
			"SELECT "+recordColumns+" FROM names WHERE name = ?", name))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
		}
		return err
	})
	return rec, err
}

// ListNames returns every name in table order.
func (s *Store) ListNames(ctx context.Context) ([]string, error) {
	var names []string
	err := s.withTx(ctx, "list", func(tx *sql.Tx) error {
		var err error
		names, err = queryNames(ctx, tx, "SELECT name FROM names ORDER BY rowid")
		return err
	})
	return names, err
}

func queryNames(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]string, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Rename applies old -> new name changes in a single transaction.
func (s *Store) Rename(ctx context.Context, changes map[string]string) error {
	olds := make([]string, 0, len(changes))
	for old := range changes {
		olds = append(olds, old)
	}
	sort.Strings(olds)

	return s.withTx(ctx, "rename", func(tx *sql.Tx) error {
		for _, old := range olds {
			next := strings.TrimSpace(changes[old])
			if next == "" {
				return storage.ErrInvalidName
			}
			if next == old {
				continue
			}

			var exists bool
			if err := tx.QueryRowContext(ctx,
				"SELECT EXISTS(SELECT 1 FROM names WHERE name = ?)", next).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("%w: %s", storage.ErrDuplicateKey, next)
			}

			result, err := tx.ExecContext(ctx, "UPDATE names SET name = ? WHERE name = ?", next, old)
			if err != nil {
				return err
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, old)
			}
			s.log.Info("Renamed", "from", old, "to", next)
		}
		return nil
	})
}

// exampleAges are the days since last prayed for the seeded example names.
var exampleAges = []int{10, 100, 1000, 10000}

// SeedExamples inserts the example names, skipping any that already exist,
// and returns how many were added.
func (s *Store) SeedExamples(ctx context.Context) (int, error) {
	today := s.today()
	added := 0
	err := s.withTx(ctx, "seed", func(tx *sql.Tx) error {
		added = 0
		for i, age := range exampleAges {
			ok, err := insert(ctx, tx, models.Record{
				Name:    fmt.Sprintf("Test person %d", i+5),
				Created: today,
				Last:    today.AddDate(0, 0, -age),
			})
			if err != nil {
				return err
			}
			if ok {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.log.Debug("Example records added", "count", added)
	return added, nil
}
