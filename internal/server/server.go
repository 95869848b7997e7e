package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/interviewqa/apiserver/config"
	"github.com/interviewqa/apiserver/internal/bootstrap"
	"github.com/interviewqa/apiserver/internal/handlers"
	"github.com/interviewqa/apiserver/internal/services"
	"github.com/interviewqa/apiserver/internal/storage"
)

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	app        *bootstrap.App
	objects    storage.ObjectStorage
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return nil, err
	}

	objects, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = app.Close(ctx)
		return nil, fmt.Errorf("init object storage: %w", err)
	}
	if objects != nil {
		if err := objects.EnsureBucket(ctx); err != nil {
			_ = app.Close(ctx)
			return nil, fmt.Errorf("ensure bucket: %w", err)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := newRouter(cfg, app, objects, registry)

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		app:        app,
		objects:    objects,
	}, nil
}

func newRouter(cfg config.Config, app *bootstrap.App, objects storage.ObjectStorage, registry *prometheus.Registry) *chi.Mux {
	metrics := handlers.NewMetrics(registry)
	authMiddleware := handlers.RequireAuth(app.Auth)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
		cors.Handler(cors.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Access-Token"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		metrics.Middleware,
	)
	router.Get("/healthz", handlers.Healthz)
	router.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}))
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, app.Auth)
	})
	router.Route("/jobs", func(r chi.Router) {
		handlers.JobRouter(r, app.Jobs, app.SubJobs, app.Questions, authMiddleware)
	})
	if objects != nil {
		imageService := services.NewImageService(objects, cfg.Storage.PublicURL)
		router.Route("/images", func(r chi.Router) {
			handlers.ImageRouter(r, imageService, authMiddleware)
		})
	} else {
		slog.Warn("object storage not configured, image uploads disabled")
	}
	return router
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server. It returns nil once Shutdown has been called.
func (s *Server) Start() error {
	slog.Info("http server listening", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and releases the store and storage clients.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if closer, ok := s.objects.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	if closeErr := s.app.Close(ctx); err == nil {
		err = closeErr
	}
	return err
}
