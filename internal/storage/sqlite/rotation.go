package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/models"
	"github.com/julianstephens/praylist/internal/storage"
)

// GetUnprayed returns the records not yet prayed for in this cycle. When
// fewer than constants.ActiveCount remain, the cycle is reset first, so the
// result may be the whole table.
func (s *Store) GetUnprayed(ctx context.Context) ([]models.Record, error) {
	const query = "SELECT " + recordColumns + " FROM names WHERE prayed_for = 0 ORDER BY rowid"

	var records []models.Record
	err := s.withTx(ctx, "get unprayed", func(tx *sql.Tx) error {
		var err error
		records, err = queryRecords(ctx, tx, query)
		if err != nil {
			return err
		}
		if len(records) >= constants.ActiveCount {
			return nil
		}

		if err := resetCycle(ctx, tx); err != nil {
			return err
		}
		s.log.Debug("Names reset", "unprayed", len(records))

		records, err = queryRecords(ctx, tx, query)
		return err
	})
	return records, err
}

// PickRandom clears the current selection and marks three distinct names,
// drawn uniformly from candidates, as active.
func (s *Store) PickRandom(ctx context.Context, candidates []string) ([]string, error) {
	distinct := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, name := range candidates {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		distinct = append(distinct, name)
	}
	if len(distinct) < constants.ActiveCount {
		return nil, fmt.Errorf("%w: have %d, need %d", storage.ErrTooFewCandidates, len(distinct), constants.ActiveCount)
	}

	picked := make([]string, 0, constants.ActiveCount)
	for _, i := range s.rng.Perm(len(distinct))[:constants.ActiveCount] {
		picked = append(picked, distinct[i])
	}

	err := s.withTx(ctx, "pick", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "UPDATE names SET active = 0 WHERE active = 1"); err != nil {
			return err
		}
		for _, name := range picked {
			result, err := tx.ExecContext(ctx, "UPDATE names SET active = 1 WHERE name = ?", name)
			if err != nil {
				return err
			}
			n, err := result.RowsAffected()
			if err != nil {
				return err
			}
			if n == 0 {
				return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("New names picked and made active", "names", picked)
	return picked, nil
}

func (s *Store) Rotate(ctx context.Context) ([]string, error) {
	unprayed, err := s.GetUnprayed(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(unprayed))
	for i, rec := range unprayed {
		names[i] = rec.Name
	}
	return s.PickRandom(ctx, names)
}

// MarkProcessed records that name was prayed for today.
func (s *Store) MarkProcessed(ctx context.Context, name string) error {
	err := s.withTx(ctx, "mark", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE names SET prayed_for = 1, last = ?, count = count + 1
			WHERE name = ?`,
			s.today().Format(constants.DateFormat), name)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %s", storage.ErrNotFound, name)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("Name marked as prayed", "name", name)
	return nil
}

func (s *Store) GetActive(ctx context.Context) ([]models.ActiveName, error) {
	var active []models.ActiveName
	err := s.withTx(ctx, "get active", func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			"SELECT name, prayed_for FROM names WHERE active = 1 ORDER BY rowid LIMIT ?",
			constants.ActiveCount)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var a models.ActiveName
			if err := rows.Scan(&a.Name, &a.PrayedFor); err != nil {
				return err
			}
			active = append(active, a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	for len(active) < constants.ActiveCount {
		active = append(active, models.ActiveName{Name: constants.PlaceholderName, Padding: true})
	}
	return active, nil
}

// ResetCycle starts a new rotation cycle.
func (s *Store) ResetCycle(ctx context.Context) error {
	err := s.withTx(ctx, "reset", func(tx *sql.Tx) error {
		return resetCycle(ctx, tx)
	})
	if err != nil {
		return err
	}

	s.log.Debug("Names reset")
	return nil
}

func resetCycle(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, "UPDATE names SET prayed_for = 0")
	return err
}
