package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/models"
	"github.com/julianstephens/praylist/internal/storage"
	"github.com/julianstephens/praylist/internal/transfer"
)

// BulkImport inserts rows of bare names or full records. Names that already
// exist are skipped and reported in the result; a malformed row aborts the
// whole import. Imported records are never active.
func (s *Store) BulkImport(ctx context.Context, rows [][]string) (models.ImportResult, error) {
	format, err := transfer.DetectFormat(rows)
	if err != nil {
		return models.ImportResult{}, storage.Fault("import", err)
	}

	records, err := s.decodeRows(format, rows)
	if err != nil {
		return models.ImportResult{}, storage.Fault("import", err)
	}

	importID := uuid.NewString()
	s.log.Debug("Attempting import", "import_id", importID, "format", format, "rows", len(records))

	var result models.ImportResult
	err = s.withTx(ctx, "import", func(tx *sql.Tx) error {
		result = models.ImportResult{Format: format}
		for _, rec := range records {
			ok, err := insert(ctx, tx, rec)
			if err != nil {
				return fmt.Errorf("insert %s: %w", rec.Name, err)
			}
			if !ok {
				s.log.Warn("Name already exists, skipping import", "import_id", importID, "name", rec.Name)
				result.Skipped = append(result.Skipped, rec.Name)
				continue
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return models.ImportResult{}, err
	}

	s.log.Debug("Import operation successful", "import_id", importID,
		"imported", result.Imported, "skipped", len(result.Skipped))
	return result, nil
}

func (s *Store) decodeRows(format models.ImportFormat, rows [][]string) ([]models.Record, error) {
	records := make([]models.Record, 0, len(rows))
	for i, row := range rows {
		var rec models.Record
		switch format {
		case models.ImportFormatNames:
			name, err := transfer.ParseName(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rec = models.Record{Name: name, Created: s.today(), Last: constants.SentinelDate}
		case models.ImportFormatRecords:
			var err error
			rec, err = transfer.ParseRecord(row)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			rec.Active = false
		}
		records = append(records, rec)
	}
	return records, nil
}

// ExportAll returns the whole table in scan order.
func (s *Store) ExportAll(ctx context.Context) ([]models.Record, error) {
	var records []models.Record
	err := s.withTx(ctx, "export", func(tx *sql.Tx) error {
		var err error
		records, err = queryRecords(ctx, tx, "SELECT "+recordColumns+" FROM names ORDER BY rowid")
		return err
	})
	return records, err
}
