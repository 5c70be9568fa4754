package growth

import (
	"sort"
	"time"

	"epspulse/pkg/contracts/domain"
)

// Params controls one aggregation pass. StartYear and EndYear filter
// observations by calendar year, inclusive on both ends. Now supplies the
// wall clock used for the annual trailing-year exclusion and is injected so
// callers and tests control it.
type Params struct {
	StartYear   int
	EndYear     int
	Granularity domain.Granularity
	Now         time.Time
}

// Aggregate buckets the series into periods and returns one point per
// distinct period, ascending by representative date.
//
// For annual granularity any observation falling in the current (therefore
// incomplete) calendar year is excluded, even when EndYear includes it.
// Quarterly granularity applies no such exclusion.
//
// Each bucket's EPS and SharePrice come from its last (max-date)
// observation; nil values carry through as gaps. The representative date is
// the picked observation's date for annual buckets and the quarter end
// instant for quarterly buckets.
//
// An empty filtered series yields an empty result, never an error.
func Aggregate(series domain.CompanySeries, p Params) []domain.AggregatedPoint {
	currentYear := p.Now.Year()

	last := make(map[domain.Period]domain.Observation)
	for _, obs := range series.Observations {
		year := obs.Date.Year()
		if year < p.StartYear || year > p.EndYear {
			continue
		}
		if p.Granularity == domain.Annual && year >= currentYear {
			continue
		}

		period := domain.PeriodOf(obs.Date, p.Granularity)
		prev, seen := last[period]
		// Input is sorted ascending, but guard against unsorted callers;
		// on equal dates the later observation wins.
		if !seen || !obs.Date.Before(prev.Date) {
			last[period] = obs
		}
	}

	points := make([]domain.AggregatedPoint, 0, len(last))
	for period, obs := range last {
		date := obs.Date
		if p.Granularity == domain.Quarterly {
			date = period.End()
		}
		points = append(points, domain.AggregatedPoint{
			Period:     period,
			Date:       date,
			EPS:        obs.EPS,
			SharePrice: obs.SharePrice,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}
