// Package ingest reads allocation spreadsheets exported as CSV into
// typed tables and validates them before analysis.
//
// The expected shape is one member-identifier column followed by date
// columns headed YYYY-MM-DD, with non-negative hour values in the cells.
// Headers that do not parse as dates are dropped from every window and
// reported in Table.SkippedColumns rather than failing the read.
//
// Validation failures are typed: StructuralError for table-shape
// problems, DataQualityError for bad cell values or bad member
// identifiers. Both unwrap with errors.As and carry enough detail
// (column, member) for a caller to build a readable message.
package ingest
