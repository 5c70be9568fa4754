package http

import (
	"context"

	v1 "epspulse/pkg/contracts/api/v1"
)

// DataServiceInterface is the service contract the data handler depends on.
// Keeping it here lets handler tests substitute a stub service.
type DataServiceInterface interface {
	Companies(ctx context.Context) (*v1.CompaniesResponse, error)
	Chart(ctx context.Context, req v1.ChartRequest) (*v1.ChartResponse, error)
	Load(ctx context.Context) error
}
