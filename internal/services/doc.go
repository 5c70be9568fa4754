// Package services contains the application service layer. DataService owns
// the parsed dataset and orchestrates the aggregation pipeline per request;
// the transport layer stays a thin adapter over it.
package services
