package ingest

import (
	"fmt"
	"time"
)

// Validation bounds. A day has 24 hours; more members than maxMembers in
// one sheet almost certainly means a mis-exported file.
const (
	maxHoursPerDay = 24
	maxMembers     = 1000

	// dateRangeDays bounds how far a date column may sit from the base
	// date before the sheet is considered mis-keyed.
	dateRangeDays = 90
)

// Validate runs all table checks in order: structure, members, hours,
// and (when base is non-zero) the date-range sanity check. The first
// failure is returned.
func Validate(t *Table, base time.Time) error {
	if err := ValidateStructure(t); err != nil {
		return err
	}
	if err := ValidateMembers(t); err != nil {
		return err
	}
	if err := ValidateHours(t); err != nil {
		return err
	}
	if !base.IsZero() {
		return ValidateDateRange(t, base)
	}
	return nil
}

// ValidateStructure rejects tables that cannot be analyzed at all:
// zero member rows, no usable date columns, or an all-empty member
// column.
func ValidateStructure(t *Table) error {
	if len(t.Members) == 0 {
		return &StructuralError{Msg: "table has no member rows"}
	}
	if len(t.Dates) == 0 {
		return &StructuralError{
			Msg:     "table has no parseable date columns",
			Columns: t.SkippedColumns,
		}
	}
	allEmpty := true
	for _, m := range t.Members {
		if m.ID != "" {
			allEmpty = false
			break
		}
	}
	if allEmpty {
		return &StructuralError{Msg: "member column is entirely empty"}
	}
	return nil
}

// ValidateMembers rejects empty or duplicate member identifiers and
// absurd member counts.
func ValidateMembers(t *Table) error {
	if len(t.Members) > maxMembers {
		return &DataQualityError{
			Msg: fmt.Sprintf("member count %d exceeds the %d-member limit", len(t.Members), maxMembers),
		}
	}
	seen := make(map[string]bool, len(t.Members))
	for i, m := range t.Members {
		if m.ID == "" {
			return &DataQualityError{Msg: fmt.Sprintf("row %d has an empty member identifier", i+2)}
		}
		if seen[m.ID] {
			return &DataQualityError{Member: m.ID, Msg: "duplicate member identifier"}
		}
		seen[m.ID] = true
	}
	return nil
}

// ValidateHours rejects negative cells and cells above the per-day bound.
func ValidateHours(t *Table) error {
	for _, m := range t.Members {
		for d, h := range m.Hours {
			col := d.Format(time.DateOnly)
			if h < 0 {
				return &DataQualityError{
					Member: m.ID, Column: col,
					Msg: fmt.Sprintf("hours cannot be negative, got %v", h),
				}
			}
			if h > maxHoursPerDay {
				return &DataQualityError{
					Member: m.ID, Column: col,
					Msg: fmt.Sprintf("%vh exceeds the %dh-per-day bound", h, maxHoursPerDay),
				}
			}
		}
	}
	return nil
}

// ValidateDateRange rejects tables whose date columns stray more than
// dateRangeDays from the base date in either direction.
func ValidateDateRange(t *Table, base time.Time) error {
	min := base.AddDate(0, 0, -dateRangeDays)
	max := base.AddDate(0, 0, dateRangeDays)

	var out []string
	for _, d := range t.Dates {
		if d.Before(min) || d.After(max) {
			out = append(out, d.Format(time.DateOnly))
		}
	}
	if len(out) > 0 {
		return &StructuralError{
			Msg:     fmt.Sprintf("date columns outside base date ±%d days", dateRangeDays),
			Columns: out,
		}
	}
	return nil
}
