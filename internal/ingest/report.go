package ingest

import "math"

// highHoursPerDay marks cells worth flagging in the quality report even
// though they pass validation (>16h days are legal but suspicious).
const highHoursPerDay = 16

// QualityReport summarises a table's shape and fill level without
// judging it. ZeroHourCells counts explicit zeros, EmptyCells counts
// blanks; CompletenessPct is the share of member×date cells holding a
// nonzero value.
type QualityReport struct {
	MemberCount     int     `json:"member_count"`
	DateColumns     int     `json:"date_columns"`
	SkippedColumns  int     `json:"skipped_columns"`
	NonzeroCells    int     `json:"nonzero_cells"`
	ZeroHourCells   int     `json:"zero_hour_cells"`
	EmptyCells      int     `json:"empty_cells"`
	HighHourCells   int     `json:"high_hour_cells"`
	CompletenessPct float64 `json:"completeness_pct"`
}

// Report computes the quality report for t.
func Report(t *Table) QualityReport {
	r := QualityReport{
		MemberCount:    len(t.Members),
		DateColumns:    len(t.Dates),
		SkippedColumns: len(t.SkippedColumns),
		ZeroHourCells:  t.ZeroCells,
		EmptyCells:     t.EmptyCells,
	}

	for _, m := range t.Members {
		for _, h := range m.Hours {
			if h != 0 {
				r.NonzeroCells++
			}
			if h > highHoursPerDay {
				r.HighHourCells++
			}
		}
	}

	totalCells := len(t.Members) * len(t.Dates)
	if totalCells > 0 {
		r.CompletenessPct = math.Round(float64(r.NonzeroCells)/float64(totalCells)*1000) / 10
	}
	return r
}
