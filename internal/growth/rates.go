package growth

import (
	"math"

	"epspulse/pkg/contracts/domain"
)

// Rates computes period-over-period percent change between consecutive
// aggregated points. A point is emitted only when both the EPS and the price
// change are finite: a nil operand, a zero base, or a non-finite result
// drops the pair entirely, so the output never contains partial or infinite
// growth values. The emitted point carries the later point's date. Output
// length is at most len(points)-1.
func Rates(points []domain.AggregatedPoint) []domain.GrowthPoint {
	if len(points) < 2 {
		return []domain.GrowthPoint{}
	}

	out := make([]domain.GrowthPoint, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]

		epsPct, ok := pctChange(prev.EPS, curr.EPS)
		if !ok {
			continue
		}
		pricePct, ok := pctChange(prev.SharePrice, curr.SharePrice)
		if !ok {
			continue
		}

		out = append(out, domain.GrowthPoint{
			Date:           curr.Date,
			EPSGrowthPct:   epsPct,
			PriceGrowthPct: pricePct,
		})
	}

	return out
}

// pctChange returns (curr-prev)/prev*100, reporting ok=false for nil
// operands, a zero base, or a non-finite result.
func pctChange(prev, curr *float64) (float64, bool) {
	if prev == nil || curr == nil || *prev == 0 {
		return 0, false
	}
	pct := (*curr - *prev) / *prev * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}
