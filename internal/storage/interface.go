package storage

import (
	"context"

	"github.com/julianstephens/praylist/internal/models"
)

type Provider interface {
	// Lifecycle
	Load(ctx context.Context) error
	Close() error

	// Names
	Add(ctx context.Context, name string) error
	Get(ctx context.Context, name string) (models.Record, error)
	ListNames(ctx context.Context) ([]string, error)
	Rename(ctx context.Context, changes map[string]string) error
	SeedExamples(ctx context.Context) (int, error)

	// Rotation
	GetUnprayed(ctx context.Context) ([]models.Record, error)
	PickRandom(ctx context.Context, candidates []string) ([]string, error)
	// Rotate starts a new selection: GetUnprayed followed by PickRandom over
	// the result.
	Rotate(ctx context.Context) ([]string, error)
	MarkProcessed(ctx context.Context, name string) error
	// GetActive always returns constants.ActiveCount entries, padded with
	// placeholders when fewer names are active.
	GetActive(ctx context.Context) ([]models.ActiveName, error)
	ResetCycle(ctx context.Context) error

	// Transfer
	BulkImport(ctx context.Context, rows [][]string) (models.ImportResult, error)
	ExportAll(ctx context.Context) ([]models.Record, error)

	// Utils
	GetConfigPath() string
}
