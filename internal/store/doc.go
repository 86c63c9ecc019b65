// Package store persists finished analysis runs as timestamped JSON
// documents and reads them back for history listings.
//
// Each run lands in <base>/runs as
// <YYYYMMDD_HHMMSS>_<identifier>_analysis.json, written to a temp file
// and renamed into place so readers never observe a partial document.
// The clock is injectable so tests control filenames deterministically.
package store
