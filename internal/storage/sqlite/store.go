package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/logger"
	"github.com/julianstephens/praylist/internal/migration"
	"github.com/julianstephens/praylist/internal/models"
	"github.com/julianstephens/praylist/internal/storage"
	"github.com/julianstephens/praylist/migrations"
)

const recordColumns = "name, active, prayed_for, created, last, count"

type Store struct {
	path  string
	db    *sql.DB
	clock clockwork.Clock
	rng   *rand.Rand
	log   *log.Logger
}

var _ storage.Provider = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithClock sets the clock used for "today".
func WithClock(c clockwork.Clock) Option {
	return func(s *Store) { s.clock = c }
}

// WithRand sets the random source used to pick names.
func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rng = r }
}

// WithLogger sets the logger. The store never closes it.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.log = l }
}

func NewStore(path string, opts ...Option) *Store {
	s := &Store{
		path:  path,
		clock: clockwork.NewRealClock(),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load opens the database, creating the file and its directory if needed,
// and ensures the schema is current. Calling it on an open store is a no-op.
func (s *Store) Load(ctx context.Context) error {
	if s.db != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	// One process, one connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return fmt.Errorf("failed to configure database: %w", err)
	}

	if err := s.runMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	s.db = db
	s.log.Debug("db connected", "path", s.path)
	return nil
}

func newRunner(db *sql.DB) (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(db, subFS), nil
}

func (s *Store) runMigrations(ctx context.Context, db *sql.DB) error {
	runner, err := newRunner(db)
	if err != nil {
		return err
	}
	_, err = runner.ApplyMigrations(ctx, func(msg string, keyvals ...interface{}) {
		s.log.Debug(msg, keyvals...)
	})
	return err
}

// SchemaVersions reports the database's schema version and the newest one
// this binary ships.
func (s *Store) SchemaVersions(ctx context.Context) (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, &storage.StorageError{Op: "schema versions", Err: storage.ErrClosed}
	}
	runner, err := newRunner(s.db)
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(ctx); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.log.Debug("db closed")
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying connection, nil before Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// withTx runs fn in a transaction. Any error rolls it back; unexpected ones
// come back as *storage.StorageError.
func (s *Store) withTx(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	if s.db == nil {
		return &storage.StorageError{Op: op, Err: storage.ErrClosed}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.Fault(op, err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("Rollback failed", "op", op, "error", rbErr)
		}
		err = storage.Fault(op, err)
		if storage.IsFault(err) {
			s.log.Error("Database error, rollback initiated", "op", op, "error", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		s.log.Error("Commit failed", "op", op, "error", err)
		return storage.Fault(op, err)
	}
	return nil
}

// today is the clock's calendar date, normalized to midnight UTC like every
// date read back from the table.
func (s *Store) today() time.Time {
	y, m, d := s.clock.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (models.Record, error) {
	var rec models.Record
	var created, last string
	if err := row.Scan(&rec.Name, &rec.Active, &rec.PrayedFor, &created, &last, &rec.Count); err != nil {
		return models.Record{}, err
	}

	var err error
	rec.Created, err = time.Parse(constants.DateFormat, created)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to parse created for %s: %w", rec.Name, err)
	}
	rec.Last, err = time.Parse(constants.DateFormat, last)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to parse last for %s: %w", rec.Name, err)
	}
	return rec, nil
}

func queryRecords(ctx context.Context, tx *sql.Tx, query string, args ...any) ([]models.Record, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// insert adds rec unless its name exists, reporting whether a row was written.
func insert(ctx context.Context, tx *sql.Tx, rec models.Record) (bool, error) {
	result, err := tx.ExecContext(ctx, `
		INSERT INTO names (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING`,
		rec.Name, rec.Active, rec.PrayedFor,
		rec.Created.Format(constants.DateFormat), rec.Last.Format(constants.DateFormat), rec.Count)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
