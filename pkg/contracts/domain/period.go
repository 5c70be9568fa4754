package domain

import (
	"fmt"
	"time"
)

// Period is an aggregation bucket: a calendar year, or a calendar quarter
// when Quarter is 1-4 (0 means annual). Quarter boundaries follow the
// standard calendar (Jan-Mar = Q1).
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter,omitempty"`
}

// PeriodOf derives the bucket containing t at the given granularity.
func PeriodOf(t time.Time, g Granularity) Period {
	if g == Annual {
		return Period{Year: t.Year()}
	}
	return Period{Year: t.Year(), Quarter: (int(t.Month())-1)/3 + 1}
}

// End returns the last instant of the period in UTC. For quarters this is
// the final nanosecond of the quarter's last day, which places quarterly
// points at the period boundary on the chart x-axis regardless of when the
// underlying observation fell.
func (p Period) End() time.Time {
	if p.Quarter == 0 {
		return time.Date(p.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	}
	firstOfNext := time.Date(p.Year, time.Month(p.Quarter*3+1), 1, 0, 0, 0, 0, time.UTC)
	return firstOfNext.Add(-time.Nanosecond)
}

// String formats the period as "2023" or "2023Q1".
func (p Period) String() string {
	if p.Quarter == 0 {
		return fmt.Sprintf("%d", p.Year)
	}
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// AggregatedPoint is one chart point per distinct period: the last
// chronological observation of the bucket supplies EPS and SharePrice
// (either may be nil when the block had gaps). Date is the point's x-axis
// position: the picked observation's date for annual buckets, the quarter
// end instant for quarterly buckets.
type AggregatedPoint struct {
	Period     Period    `json:"period"`
	Date       time.Time `json:"date"`
	EPS        *float64  `json:"eps"`
	SharePrice *float64  `json:"share_price"`
}

// GrowthPoint is the period-over-period percent change between two
// consecutive AggregatedPoints, dated at the later point. A GrowthPoint only
// exists when both metrics computed to finite values; transitions with nil
// operands or a zero base are dropped, never emitted as null or infinity.
type GrowthPoint struct {
	Date           time.Time `json:"date"`
	EPSGrowthPct   float64   `json:"eps_growth_pct"`
	PriceGrowthPct float64   `json:"price_growth_pct"`
}
