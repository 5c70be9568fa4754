package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"epspulse/internal/config"
	apierrors "epspulse/internal/errors"
	"epspulse/internal/infrastructure"
	custommw "epspulse/internal/middleware"
	"epspulse/internal/services"
	handlers "epspulse/internal/transport/http"
	ws "epspulse/internal/websocket"
)

// Application holds the assembled server and its long-lived dependencies.
type Application struct {
	Config        *config.Config
	Router        *chi.Mux
	Server        *http.Server
	Hub           *ws.Hub
	DataService   *services.DataService
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
}

// New builds the application from environment and file configuration.
// The initial dataset load happens in Run, not here, so construction
// stays fast and a bad data file does not prevent startup.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}
	logger.Info("application starting",
		slog.String("service", infrastructure.ServiceName),
		slog.String("version", infrastructure.ServiceVersion),
		slog.String("data_source", cfg.Data.Source))

	providers, err := infrastructure.InitializeOTel(infrastructure.DefaultOTelConfig(), logger)
	if err != nil {
		return nil, fmt.Errorf("initialize telemetry: %w", err)
	}

	hub := ws.NewHub(logger)

	dataService := services.NewDataService(cfg.Data, logger,
		services.WithTracer(providers.Tracer),
		services.WithNotifier(hub),
	)

	app := &Application{
		Config:        cfg,
		Hub:           hub,
		DataService:   dataService,
		Logger:        logger,
		OTelProviders: providers,
	}
	app.setupRouter()

	app.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      app.Router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return app, nil
}

func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(custommw.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(custommw.StructuredLogger(a.Logger))
	r.Use(custommw.Recoverer(a.Logger))
	if a.Config.Server.RateLimitRPS > 0 {
		limiter := custommw.NewRateLimiter(
			a.Config.Server.RateLimitRPS,
			a.Config.Server.RateLimitBurst,
			a.Logger,
		)
		r.Use(limiter.Handler)
	}

	errorHandler := apierrors.NewErrorHandler(a.Logger)
	dataHandler := handlers.NewDataHandler(a.DataService, a.Logger, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.DataService, a.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/health", healthHandler.Routes())
		r.Mount("/data", dataHandler.Routes())
	})

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Get("/ws", func(w http.ResponseWriter, req *http.Request) {
		ws.ServeWS(a.Hub, w, req, a.Logger)
	})

	a.Router = r
}

// Run starts the hub and HTTP server, performs the initial dataset load
// and blocks until the context is cancelled or a shutdown signal arrives.
func (a *Application) Run(ctx context.Context) error {
	a.Hub.Start()

	loadCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ReadTimeout)
	if err := a.DataService.Load(loadCtx); err != nil {
		// Startup continues without data; /api/data/reload can recover
		// once the source is fixed.
		a.Logger.Error("initial dataset load failed",
			slog.String("source", a.Config.Data.Source),
			slog.String("error", err.Error()))
	}
	cancel()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("http server listening", slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-sigCh:
		a.Logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	case <-ctx.Done():
		a.Logger.Info("context cancelled, shutting down")
	}
	return a.Shutdown()
}

// Shutdown stops the server, hub and telemetry providers within the
// configured shutdown timeout.
func (a *Application) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout)
	defer cancel()

	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		a.Logger.Error("server shutdown failed", slog.String("error", err.Error()))
		firstErr = err
	}
	a.Hub.Stop()
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(ctx); err != nil {
			a.Logger.Error("telemetry shutdown failed", slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if firstErr == nil {
		a.Logger.Info("shutdown complete",
			slog.Duration("timeout", a.Config.Server.ShutdownTimeout))
	}
	infrastructure.CloseLogFile()
	return firstErr
}
