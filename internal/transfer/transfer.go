// Package transfer reads and writes the CSV files used for import and export.
//
// An import file holds either one bare name per row or six fields per row in
// export order: name, active, prayedFor, created, last, count. Export files
// always use the six-field form with every field quoted.
package transfer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/models"
)

// RecordWidth is the number of fields in a full record row.
const RecordWidth = 6

// ErrMalformedRow is returned for rows that cannot be decoded.
var ErrMalformedRow = errors.New("malformed row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadRows parses CSV rows of any width. Blank rows are dropped and fields
// are trimmed.
func ReadRows(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse csv: %w", err)
		}

		blank := true
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
			if row[i] != "" {
				blank = false
			}
		}
		if blank {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DetectFormat decides the import format from the width of the first row.
func DetectFormat(rows [][]string) (models.ImportFormat, error) {
	if len(rows) == 0 {
		return models.ImportFormatNames, nil
	}
	switch len(rows[0]) {
	case 1:
		return models.ImportFormatNames, nil
	case RecordWidth:
		return models.ImportFormatRecords, nil
	default:
		return "", fmt.Errorf("%w: row 1 has %d fields, want 1 or %d", ErrMalformedRow, len(rows[0]), RecordWidth)
	}
}

// ParseName validates a bare-name row.
func ParseName(row []string) (string, error) {
	if len(row) != 1 {
		return "", fmt.Errorf("%w: got %d fields, want 1", ErrMalformedRow, len(row))
	}
	if row[0] == "" {
		return "", fmt.Errorf("%w: empty name", ErrMalformedRow)
	}
	return row[0], nil
}

// ParseRecord decodes a six-field row.
func ParseRecord(row []string) (models.Record, error) {
	if len(row) != RecordWidth {
		return models.Record{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRow, len(row), RecordWidth)
	}

	rec := models.Record{Name: row[0]}
	if rec.Name == "" {
		return models.Record{}, fmt.Errorf("%w: empty name", ErrMalformedRow)
	}

	var err error
	if rec.Active, err = strconv.ParseBool(row[1]); err != nil {
		return models.Record{}, fmt.Errorf("%w: active %q for %s", ErrMalformedRow, row[1], rec.Name)
	}
	if rec.PrayedFor, err = strconv.ParseBool(row[2]); err != nil {
		return models.Record{}, fmt.Errorf("%w: prayedFor %q for %s", ErrMalformedRow, row[2], rec.Name)
	}
	if rec.Created, err = time.Parse(constants.DateFormat, row[3]); err != nil {
		return models.Record{}, fmt.Errorf("%w: created %q for %s", ErrMalformedRow, row[3], rec.Name)
	}
	if rec.Last, err = time.Parse(constants.DateFormat, row[4]); err != nil {
		return models.Record{}, fmt.Errorf("%w: last %q for %s", ErrMalformedRow, row[4], rec.Name)
	}
	if rec.Count, err = strconv.Atoi(row[5]); err != nil || rec.Count < 0 {
		return models.Record{}, fmt.Errorf("%w: count %q for %s", ErrMalformedRow, row[5], rec.Name)
	}
	return rec, nil
}

// FormatBool renders a boolean the way export files spell it.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// FormatRecord renders a record as its six export fields.
func FormatRecord(rec models.Record) []string {
	return []string{
		rec.Name,
		FormatBool(rec.Active),
		FormatBool(rec.PrayedFor),
		rec.Created.Format(constants.DateFormat),
		rec.Last.Format(constants.DateFormat),
		strconv.Itoa(rec.Count),
	}
}

// WriteRecords writes every record as a quoted six-field row.
func WriteRecords(w io.Writer, records []models.Record) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		for i, field := range FormatRecord(rec) {
			if i > 0 {
				if err := bw.WriteByte(','); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(quote(field)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// encoding/csv only quotes when needed; export files quote every field.
func quote(field string) string {
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

// ReadFile reads the rows of the CSV file at path.
func ReadFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return ReadRows(f)
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, records []models.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := WriteRecords(f, records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return f.Close()
}
