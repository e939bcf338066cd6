package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/praylist/internal/constants"
	"github.com/julianstephens/praylist/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictTooManyActive     ConflictType = "too_many_active"
	ConflictSimilarNames      ConflictType = "similar_names"
	ConflictCountWithoutDate  ConflictType = "count_without_date"
	ConflictPrayedWithoutDate ConflictType = "prayed_without_date"
	ConflictFutureDate        ConflictType = "future_date"
)

// Conflict represents a detected problem in the stored names
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Names involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks records for states the store should never produce.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRecords checks records against today's date.
func (v *Validator) ValidateRecords(records []models.Record, today time.Time) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	var active []string
	for _, rec := range records {
		if rec.Active {
			active = append(active, rec.Name)
		}
	}
	if len(active) > constants.ActiveCount {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictTooManyActive,
			Description: fmt.Sprintf("%d names are active, at most %d allowed: %s", len(active), constants.ActiveCount, strings.Join(active, ", ")),
			Items:       active,
		})
	}

	// Names that only differ in case or spacing are probably the same person.
	similar := make(map[string][]string)
	for _, rec := range records {
		key := strings.ToLower(strings.Join(strings.Fields(rec.Name), " "))
		similar[key] = append(similar[key], rec.Name)
	}
	keys := make([]string, 0, len(similar))
	for key := range similar {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if names := similar[key]; len(names) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictSimilarNames,
				Description: fmt.Sprintf("Names look like duplicates: %q", names),
				Items:       names,
			})
		}
	}

	for _, rec := range records {
		if rec.NeverPrayed() {
			if rec.Count > 0 {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictCountWithoutDate,
					Description: fmt.Sprintf("\"%s\" was prayed for %d times but has no last date", rec.Name, rec.Count),
					Items:       []string{rec.Name},
				})
			}
			if rec.PrayedFor {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictPrayedWithoutDate,
					Description: fmt.Sprintf("\"%s\" is marked prayed for but has no last date", rec.Name),
					Items:       []string{rec.Name},
				})
			}
		}

		if rec.Created.After(today) || rec.Last.After(today) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictFutureDate,
				Description: fmt.Sprintf("\"%s\" has a date after today (%s)", rec.Name, today.Format(constants.DateFormat)),
				Items:       []string{rec.Name},
			})
		}
	}

	return result
}
