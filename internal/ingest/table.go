package ingest

import (
	"time"

	"github.com/crewload/crewload/internal/workload"
)

// MemberRow is one member's parsed allocation: daily hours keyed by
// calendar date (midnight UTC).
type MemberRow struct {
	ID    string
	Hours map[time.Time]float64
}

// Table is a parsed allocation spreadsheet. Members and Dates preserve
// source order; SkippedColumns lists headers that did not parse as dates
// and were excluded from every week window.
//
// ZeroCells and EmptyCells count date-column cells holding an explicit 0
// and cells left blank. Both contribute nothing to any sum, but the
// distinction matters to the quality report: a typed zero is an entered
// answer, a blank is a missing one.
type Table struct {
	Members        []MemberRow
	Dates          []time.Time
	SkippedColumns []string
	ZeroCells      int
	EmptyCells     int
}

// WorkloadInput converts the table into the calculator's input form.
func (t *Table) WorkloadInput() workload.Input {
	rows := make([]workload.MemberHours, 0, len(t.Members))
	for _, m := range t.Members {
		rows = append(rows, workload.MemberHours{Member: m.ID, Hours: m.Hours})
	}
	return workload.Input{Rows: rows, Dates: t.Dates}
}
