package http

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "epspulse/internal/errors"
	"epspulse/internal/services"
	v1 "epspulse/pkg/contracts/api/v1"
)

// DataHandler handles chart data HTTP requests.
type DataHandler struct {
	service      DataServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	validate     *validator.Validate
}

// NewDataHandler creates a new data handler.
func NewDataHandler(service DataServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DataHandler {
	return &DataHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "data_handler")),
		errorHandler: errorHandler,
		validate:     validator.New(),
	}
}

// Routes returns the data routes.
func (h *DataHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/companies", h.GetCompanies)
	r.Route("/companies/{company}", func(r chi.Router) {
		r.Use(h.CompanyCtx)
		r.Get("/chart", h.GetChart)
	})
	r.Post("/reload", h.Reload)

	return r
}

// CompanyCtx validates the company URL parameter.
func (h *DataHandler) CompanyCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if companyParam(r) == "" {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("company", "Company name is required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// companyParam extracts and unescapes the company path parameter.
func companyParam(r *http.Request) string {
	raw := chi.URLParam(r, "company")
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

// GetCompanies handles GET /api/companies.
func (h *DataHandler) GetCompanies(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.Companies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetChart handles GET /api/companies/{company}/chart.
func (h *DataHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	req := v1.ChartRequest{
		Company:     companyParam(r),
		Granularity: r.URL.Query().Get("granularity"),
	}

	var err error
	if req.FromYear, err = yearParam(r, "from"); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("from", "Invalid year"))
		return
	}
	if req.ToYear, err = yearParam(r, "to"); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("to", "Invalid year"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.NewWithDetails(
			http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed", err.Error()))
		return
	}

	resp, err := h.service.Chart(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "chart served",
		slog.String("company", resp.Company),
		slog.String("granularity", string(resp.Granularity)),
		slog.Int("points", len(resp.Points)))

	render.JSON(w, r, resp)
}

// Reload handles POST /api/reload.
func (h *DataHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Load(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "dataset reload failed", slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.DataLoadError(err))
		return
	}

	resp, err := h.service.Companies(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	render.JSON(w, r, v1.ReloadResponse{
		LoadID:    resp.LoadID,
		LoadedAt:  resp.LoadedAt,
		Companies: len(resp.Companies),
	})
}

// handleServiceError maps service sentinel errors to API errors.
func (h *DataHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrCompanyNotFound):
		h.errorHandler.HandleError(w, r, apierrors.ErrCompanyNotFound)
	case errors.Is(err, services.ErrDatasetNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.ErrDatasetNotLoaded)
	case errors.Is(err, services.ErrInvalidRange):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("from", err.Error()))
	case errors.Is(err, services.ErrBadGranularity):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("granularity", err.Error()))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// yearParam parses an optional integer year query parameter; absent means 0.
func yearParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
