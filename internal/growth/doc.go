// Package growth computes calendar-aligned aggregates and period-over-period
// growth rates from a normalized company series.
//
// Aggregation buckets observations into calendar quarters or years, keeps the
// last observation of each bucket (matching how EPS and closing prices are
// reported), and excludes the in-progress current year from annual output so
// a partial year never shows as a misleadingly short final bar. Quarterly
// output keeps the current year: quarters are shown as they accrue.
//
// Growth is the percent change between consecutive aggregated points. A
// growth point is only emitted when both metrics compute to finite values;
// transitions with missing operands or a zero base are dropped outright
// rather than carried as nulls.
//
// The package is pure: it holds no state, does no I/O, and the same inputs
// always produce identical output, so a full recompute per user selection is
// cheap and deterministic.
package growth
