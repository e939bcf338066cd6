package models

import (
	"time"

	"github.com/julianstephens/praylist/internal/constants"
)

// Record is one tracked name and its rotation state.
type Record struct {
	Name      string
	Active    bool
	PrayedFor bool
	Created   time.Time
	Last      time.Time
	Count     int
}

// NeverPrayed reports whether Last still holds the sentinel date.
func (r Record) NeverPrayed() bool {
	return r.Last.Equal(constants.SentinelDate)
}

// ActiveName is one entry of the active view.
type ActiveName struct {
	Name      string
	PrayedFor bool
	// Padding is set on entries that fill an empty active slot.
	Padding bool
}

// Placeholder reports whether the entry pads an empty active slot.
func (a ActiveName) Placeholder() bool {
	return a.Padding
}

// ImportFormat identifies the row shape of an import.
type ImportFormat string

const (
	ImportFormatNames   ImportFormat = "names"
	ImportFormatRecords ImportFormat = "records"
)

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Format   ImportFormat
	Imported int
	Skipped  []string
}
