package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/crewload/crewload/internal/workload"
)

// ReadCSV parses an allocation table from r. The first header cell names
// the member column; every following header is parsed as a YYYY-MM-DD
// date. Headers that fail to parse are skipped (and logged) so one stray
// column does not sink the run. Empty cells count as zero hours.
//
// A cell that is present but not numeric is a DataQualityError naming the
// member and column. Shape problems (no header, no rows) are
// StructuralErrors.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &StructuralError{Msg: "table is empty"}
	}
	if err != nil {
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}
	if len(header) < 2 {
		return nil, &StructuralError{Msg: "table needs a member column and at least one date column"}
	}

	t := &Table{}

	// Map each data column index to its parsed date, or zero if skipped.
	dates := make([]time.Time, len(header))
	for i, col := range header[1:] {
		name := strings.TrimSpace(col)
		d, perr := ParseDate(name)
		if perr != nil {
			t.SkippedColumns = append(t.SkippedColumns, name)
			continue
		}
		dates[i+1] = d
		t.Dates = append(t.Dates, d)
	}
	if len(t.SkippedColumns) > 0 {
		slog.Warn("ingest: skipping non-date columns",
			"count", len(t.SkippedColumns), "columns", t.SkippedColumns)
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row %d: %w", len(t.Members)+2, err)
		}

		id := strings.TrimSpace(record[0])
		row := MemberRow{ID: id, Hours: make(map[time.Time]float64)}

		for i := 1; i < len(record) && i < len(header); i++ {
			if dates[i].IsZero() {
				continue
			}
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				t.EmptyCells++
				continue
			}
			h, perr := strconv.ParseFloat(cell, 64)
			if perr != nil {
				return nil, &DataQualityError{
					Member: id,
					Column: header[i],
					Msg:    fmt.Sprintf("hour value %q is not numeric", cell),
				}
			}
			if h == 0 {
				t.ZeroCells++
				continue
			}
			row.Hours[dates[i]] = h
		}
		t.Members = append(t.Members, row)
	}

	slog.Info("ingest: table read",
		"members", len(t.Members),
		"date_columns", len(t.Dates),
		"skipped_columns", len(t.SkippedColumns),
	)
	return t, nil
}

// ParseDate parses a YYYY-MM-DD column header into a midnight-UTC date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return workload.Day(d), nil
}
