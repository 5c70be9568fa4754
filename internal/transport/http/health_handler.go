package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"epspulse/internal/infrastructure"
	v1 "epspulse/pkg/contracts/api/v1"
	"epspulse/pkg/contracts/domain"
)

// DatasetProvider exposes the currently loaded dataset for health reporting.
type DatasetProvider interface {
	Dataset() *domain.Dataset
}

// HealthHandler reports service liveness and dataset state.
type HealthHandler struct {
	provider DatasetProvider
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(provider DatasetProvider, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		provider: provider,
		logger:   logger.With(slog.String("component", "health_handler")),
	}
}

// Routes returns the health routes.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/", h.GetHealth)
	return r
}

// GetHealth handles GET /api/health. The service is healthy even before the
// first load; the payload just reports zero companies then.
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := v1.HealthResponse{
		Status:    "healthy",
		Version:   infrastructure.ServiceVersion,
		Timestamp: time.Now().UTC(),
	}
	if dataset := h.provider.Dataset(); dataset != nil {
		resp.LoadID = dataset.LoadID
		resp.Companies = len(dataset.Order)
	}
	render.JSON(w, r, resp)
}
