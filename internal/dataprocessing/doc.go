// Package dataprocessing turns a wide-format grid of side-by-side company
// time series into normalized per-company datasets.
//
// # Architecture
//
// The package is organized into three stages:
//
// 1. Grid loading: reads a CSV file, XLSX sheet or Google Sheet into a
// RawGrid without transformation, preserving blank cells.
//
// 2. Block splitting: scans the header row left to right and recovers the
// independent (Date, EPS, SharePrice) column triples, one per company,
// separated by blank columns.
//
// 3. Normalization: parses dates and numeric cells permissively, drops rows
// without a usable date, and sorts each series ascending by date.
//
// # Data Flow
//
//	CSV/XLSX/Sheet → RawGrid → SplitBlocks → NormalizeBlock → Dataset
//
// # Error Handling
//
// Loading an unreadable source is fatal and returns an error. Malformed
// individual cells never are: a bad date drops the row, a bad number becomes
// a nil value that flows downstream as a gap. A header row with no company
// names yields an empty Dataset, not an error.
package dataprocessing
