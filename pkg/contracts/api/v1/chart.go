// Package api contains API contract definitions for the EPS and share price
// visualization service. Version v1 represents the current stable API version.
package api

import (
	"time"

	"epspulse/pkg/contracts/domain"
)

// ChartRequest represents a chart data request for one company. FromYear and
// ToYear default to the company's observed min/max years when zero.
type ChartRequest struct {
	Company     string `json:"company" param:"company" validate:"required"`
	Granularity string `json:"granularity" query:"granularity" validate:"required,oneof=quarterly annual"`
	FromYear    int    `json:"from_year" query:"from" validate:"omitempty,min=1900,max=2200"`
	ToYear      int    `json:"to_year" query:"to" validate:"omitempty,min=1900,max=2200"`
}

// ChartResponse carries the two ordered series consumed by the chart layer:
// raw aggregated values and period-over-period growth rates.
type ChartResponse struct {
	Company     string                   `json:"company"`
	Granularity domain.Granularity       `json:"granularity"`
	GrowthLabel string                   `json:"growth_label"`
	FromYear    int                      `json:"from_year"`
	ToYear      int                      `json:"to_year"`
	NoData      bool                     `json:"no_data"`
	Points      []domain.AggregatedPoint `json:"points"`
	Growth      []domain.GrowthPoint     `json:"growth"`
}

// CompanyInfo summarizes one parsed company for selection UIs.
type CompanyInfo struct {
	Name         string `json:"name"`
	Observations int    `json:"observations"`
	MinYear      int    `json:"min_year"`
	MaxYear      int    `json:"max_year"`
}

// CompaniesResponse lists parsed companies in header order. Empty when the
// grid yielded no blocks; that is a valid state, not an error.
type CompaniesResponse struct {
	Companies []CompanyInfo `json:"companies"`
	LoadID    string        `json:"load_id"`
	LoadedAt  time.Time     `json:"loaded_at"`
}

// ReloadResponse reports the outcome of a dataset reload.
type ReloadResponse struct {
	LoadID    string    `json:"load_id"`
	LoadedAt  time.Time `json:"loaded_at"`
	Companies int       `json:"companies"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	LoadID    string    `json:"load_id,omitempty"`
	Companies int       `json:"companies"`
	Timestamp time.Time `json:"timestamp"`
}
