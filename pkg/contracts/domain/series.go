package domain

import (
	"strings"
	"time"
)

// RawGrid is a wide-format tabular grid as loaded from a CSV, XLSX sheet or
// Google Sheet: a header row followed by positionally aligned data rows.
// Blank cells are meaningful and preserved; rows shorter than the header row
// are treated as padded with blanks.
type RawGrid struct {
	Headers []string
	Rows    [][]string
}

// Cell returns the cell at (row, col), or the empty string when the row is
// shorter than the header row. It never panics on out-of-range columns.
func (g RawGrid) Cell(row, col int) string {
	if row < 0 || row >= len(g.Rows) {
		return ""
	}
	r := g.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Block layout constants. Each company occupies three data columns
// (Date, EPS, SharePrice) followed by one blank separator column.
const (
	BlockWidth  = 3
	BlockStride = 4
)

// CompanyBlock describes the column range of one company inside a RawGrid.
// Start is the index of the Date column; EPS and SharePrice follow at
// Start+1 and Start+2. The grid may end before Start+2, in which case the
// missing columns read as blank.
type CompanyBlock struct {
	Name  string `json:"name"`
	Start int    `json:"start"`
}

// DateColumn, EPSColumn and PriceColumn return the absolute column indexes
// of the block's three fields.
func (b CompanyBlock) DateColumn() int  { return b.Start }
func (b CompanyBlock) EPSColumn() int   { return b.Start + 1 }
func (b CompanyBlock) PriceColumn() int { return b.Start + 2 }

// Observation is a single dated row of one company's series. EPS and
// SharePrice are nil when the source cell was blank or unparseable; rows
// whose date cell fails to parse are dropped before an Observation exists.
type Observation struct {
	Date       time.Time `json:"date"`
	EPS        *float64  `json:"eps"`
	SharePrice *float64  `json:"share_price"`
}

// CompanySeries is the authoritative, normalized per-company dataset:
// observations sorted ascending by date. It is rebuilt wholesale on every
// load and never mutated afterwards.
type CompanySeries struct {
	Name         string        `json:"name"`
	Observations []Observation `json:"observations"`
}

// Empty reports whether the series has no observations.
func (s CompanySeries) Empty() bool { return len(s.Observations) == 0 }

// MinYear returns the calendar year of the earliest observation, or 0 for an
// empty series.
func (s CompanySeries) MinYear() int {
	if s.Empty() {
		return 0
	}
	return s.Observations[0].Date.Year()
}

// MaxYear returns the calendar year of the latest observation, or 0 for an
// empty series.
func (s CompanySeries) MaxYear() int {
	if s.Empty() {
		return 0
	}
	return s.Observations[len(s.Observations)-1].Date.Year()
}

// Dataset holds every company series parsed from one grid load. It is
// immutable after construction and safe to share across readers; a reload
// builds a fresh Dataset and swaps the pointer.
type Dataset struct {
	LoadID    string
	LoadedAt  time.Time
	Order     []string
	Companies map[string]CompanySeries
}

// Company returns the series for the given name.
func (d *Dataset) Company(name string) (CompanySeries, bool) {
	s, ok := d.Companies[name]
	return s, ok
}

// Names returns company names in order of first appearance in the header row.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.Order))
	copy(out, d.Order)
	return out
}

// Granularity selects the aggregation bucket size.
type Granularity string

const (
	Quarterly Granularity = "quarterly"
	Annual    Granularity = "annual"
)

// ParseGranularity parses a user-supplied granularity string.
func ParseGranularity(s string) (Granularity, bool) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case Quarterly:
		return Quarterly, true
	case Annual:
		return Annual, true
	}
	return "", false
}

// GrowthLabel returns the display label for period-over-period growth at
// this granularity.
func (g Granularity) GrowthLabel() string {
	if g == Annual {
		return "YoY"
	}
	return "QoQ"
}
