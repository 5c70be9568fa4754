package dataprocessing

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"epspulse/pkg/contracts/domain"
)

// dateLayouts are the textual date forms the normalizer accepts, tried in
// order. Time-of-day suffixes are tolerated because spreadsheet exports often
// carry them.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2-Jan-2006",
	"02-Jan-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
}

// parseDate attempts a permissive parse of a date cell. The second return
// value is false when no layout matches.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a numeric cell to a float, returning nil for blank or
// unparseable input. Thousands separators are stripped first, matching how
// spreadsheet exports format large values.
func parseNumber(s string) *float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// NormalizeBlock extracts one company's series from the grid. Rows whose
// date cell does not parse are dropped entirely; EPS and SharePrice cells
// that fail to parse become nil and flow downstream as gaps. The result is
// stably sorted ascending by date, so same-date rows keep their original
// relative order. Malformed input never produces an error.
func NormalizeBlock(grid domain.RawGrid, block domain.CompanyBlock) domain.CompanySeries {
	observations := make([]domain.Observation, 0, len(grid.Rows))

	for row := range grid.Rows {
		date, ok := parseDate(grid.Cell(row, block.DateColumn()))
		if !ok {
			continue
		}
		observations = append(observations, domain.Observation{
			Date:       date,
			EPS:        parseNumber(grid.Cell(row, block.EPSColumn())),
			SharePrice: parseNumber(grid.Cell(row, block.PriceColumn())),
		})
	}

	sort.SliceStable(observations, func(i, j int) bool {
		return observations[i].Date.Before(observations[j].Date)
	})

	return domain.CompanySeries{Name: block.Name, Observations: observations}
}
