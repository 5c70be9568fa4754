package services

import "errors"

// Sentinel errors returned by the service layer; the transport layer maps
// them to API error responses.
var (
	ErrCompanyNotFound  = errors.New("company not found in dataset")
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	ErrInvalidRange     = errors.New("start year must not exceed end year")
	ErrBadGranularity   = errors.New("granularity must be quarterly or annual")
)
