package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"epspulse/internal/config"
	"epspulse/internal/dataprocessing"
	"epspulse/internal/growth"
	"epspulse/internal/validation"
	v1 "epspulse/pkg/contracts/api/v1"
	"epspulse/pkg/contracts/domain"
)

// ReloadNotifier receives dataset lifecycle events; the websocket hub
// implements it.
type ReloadNotifier interface {
	BroadcastReload(loadID string, companies int)
}

// DataService owns the immutable parsed dataset and runs the aggregation
// pipeline per request. The dataset pointer is swapped wholesale under the
// mutex on load; readers share it without locking beyond the pointer read,
// since a published Dataset is never mutated.
type DataService struct {
	cfg       config.DataConfig
	logger    *slog.Logger
	tracer    trace.Tracer
	notifier  ReloadNotifier
	now       func() time.Time
	validator *validation.FileValidator

	mu      sync.RWMutex
	dataset *domain.Dataset
}

// Option configures a DataService.
type Option func(*DataService)

// WithTracer sets the OpenTelemetry tracer used for pipeline spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *DataService) { s.tracer = tracer }
}

// WithNotifier sets the reload notifier.
func WithNotifier(n ReloadNotifier) Option {
	return func(s *DataService) { s.notifier = n }
}

// WithClock overrides the wall clock, used by tests to pin the
// trailing-period exclusion.
func WithClock(now func() time.Time) Option {
	return func(s *DataService) { s.now = now }
}

// NewDataService creates a data service for the configured grid source.
func NewDataService(cfg config.DataConfig, logger *slog.Logger, opts ...Option) *DataService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &DataService{
		cfg:       cfg,
		logger:    logger.With(slog.String("component", "data_service")),
		tracer:    noop.NewTracerProvider().Tracer("data_service"),
		now:       time.Now,
		validator: validation.NewFileValidator(logger),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load parses the configured grid source and swaps in a fresh dataset.
// A failed load leaves any previously loaded dataset in place.
func (s *DataService) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "dataset.load",
		trace.WithAttributes(attribute.String("source", s.cfg.Source)))
	defer span.End()

	grid, err := s.loadGrid(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load grid: %w", err)
	}

	dataset, err := dataprocessing.BuildDataset(ctx, grid, s.logger)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("build dataset: %w", err)
	}

	s.mu.Lock()
	s.dataset = dataset
	s.mu.Unlock()

	span.SetAttributes(attribute.Int("companies", len(dataset.Order)))
	s.logger.InfoContext(ctx, "dataset loaded",
		slog.String("load_id", dataset.LoadID),
		slog.String("source", s.cfg.Source),
		slog.Int("companies", len(dataset.Order)))

	if s.notifier != nil {
		s.notifier.BroadcastReload(dataset.LoadID, len(dataset.Order))
	}

	return nil
}

func (s *DataService) loadGrid(ctx context.Context) (domain.RawGrid, error) {
	switch s.cfg.Source {
	case "xlsx":
		if err := s.validator.ValidateExcelFile(s.cfg.Path); err != nil {
			return domain.RawGrid{}, err
		}
		return dataprocessing.LoadExcelGrid(s.cfg.Path, s.cfg.Sheet)
	case "sheets":
		return dataprocessing.LoadSheetGrid(ctx, s.cfg.SpreadsheetID, s.cfg.Range, s.cfg.APIKey)
	default:
		if err := s.validator.ValidateCSVFile(s.cfg.Path); err != nil {
			return domain.RawGrid{}, err
		}
		return dataprocessing.LoadCSVGrid(s.cfg.Path)
	}
}

// Dataset returns the currently loaded dataset, or nil before the first
// successful load.
func (s *DataService) Dataset() *domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Companies lists parsed companies in header order with their observed year
// bounds.
func (s *DataService) Companies(ctx context.Context) (*v1.CompaniesResponse, error) {
	dataset := s.Dataset()
	if dataset == nil {
		return nil, ErrDatasetNotLoaded
	}

	resp := &v1.CompaniesResponse{
		Companies: make([]v1.CompanyInfo, 0, len(dataset.Order)),
		LoadID:    dataset.LoadID,
		LoadedAt:  dataset.LoadedAt,
	}
	for _, name := range dataset.Order {
		series := dataset.Companies[name]
		resp.Companies = append(resp.Companies, v1.CompanyInfo{
			Name:         name,
			Observations: len(series.Observations),
			MinYear:      series.MinYear(),
			MaxYear:      series.MaxYear(),
		})
	}

	return resp, nil
}

// Chart runs the aggregation pipeline for one company. A company that exists
// but has no observations inside the requested range yields an empty
// response with NoData set, not an error.
func (s *DataService) Chart(ctx context.Context, req v1.ChartRequest) (*v1.ChartResponse, error) {
	ctx, span := s.tracer.Start(ctx, "dataset.chart",
		trace.WithAttributes(
			attribute.String("company", req.Company),
			attribute.String("granularity", req.Granularity)))
	defer span.End()

	dataset := s.Dataset()
	if dataset == nil {
		return nil, ErrDatasetNotLoaded
	}

	granularity, ok := domain.ParseGranularity(req.Granularity)
	if !ok {
		return nil, ErrBadGranularity
	}

	series, ok := dataset.Company(req.Company)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, req.Company)
	}

	from, to := req.FromYear, req.ToYear
	if from == 0 {
		from = series.MinYear()
	}
	if to == 0 {
		to = series.MaxYear()
	}
	if from > to {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidRange, from, to)
	}

	points := growth.Aggregate(series, growth.Params{
		StartYear:   from,
		EndYear:     to,
		Granularity: granularity,
		Now:         s.now(),
	})
	rates := growth.Rates(points)

	span.SetAttributes(attribute.Int("points", len(points)))
	s.logger.DebugContext(ctx, "chart computed",
		slog.String("company", req.Company),
		slog.String("granularity", string(granularity)),
		slog.Int("points", len(points)),
		slog.Int("growth_points", len(rates)))

	return &v1.ChartResponse{
		Company:     req.Company,
		Granularity: granularity,
		GrowthLabel: granularity.GrowthLabel(),
		FromYear:    from,
		ToYear:      to,
		NoData:      len(points) == 0,
		Points:      points,
		Growth:      rates,
	}, nil
}
