package ingest

import (
	"fmt"
	"strings"
)

// StructuralError reports a table whose shape makes analysis impossible:
// no rows, no usable date columns, or a missing member column.
type StructuralError struct {
	Msg     string
	Columns []string // offending columns, when applicable
}

func (e *StructuralError) Error() string {
	if len(e.Columns) == 0 {
		return "structural error: " + e.Msg
	}
	return fmt.Sprintf("structural error: %s: %s", e.Msg, strings.Join(e.Columns, ", "))
}

// DataQualityError reports a value-level problem in an otherwise
// well-shaped table. Member and Column identify the offending cell where
// known; either may be empty for table-wide problems.
type DataQualityError struct {
	Member string
	Column string
	Msg    string
}

func (e *DataQualityError) Error() string {
	var b strings.Builder
	b.WriteString("data quality error")
	if e.Member != "" {
		fmt.Fprintf(&b, " [member %q]", e.Member)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " [column %q]", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Msg)
	return b.String()
}
