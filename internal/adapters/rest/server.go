package rest

import (
	"accomodate-service/internal/core/port"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Handlers - все группы обработчиков API.
type Handlers struct {
	Auth     *AuthHandlers
	Explorer *ExplorerHandlers
	Listings *ListingHandlers
	Geometry *GeometryHandlers
}

// Server - REST API сервер сервиса объявлений.
type Server struct {
	httpServer *http.Server
	// отменяется в Stop, чтобы долгие SSE-подключения завершились до Shutdown
	cancelRequests context.CancelFunc
	logger         port.LoggerPort
}

// NewRouter собирает роутер отдельно от сервера, чтобы его можно было гонять через httptest.
func NewRouter(cfg ServerConfig, h Handlers, authMW *AuthMiddleware, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// --- Публичные роуты ---
		r.Get("/health", h.Geometry.Health)
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)

		// --- Роуты сессии ---
		r.Group(func(r chi.Router) {
			r.Use(authMW.Authenticate)

			r.Post("/auth/logout", h.Auth.Logout)
			r.Get("/auth/me", h.Auth.Me)

			r.Get("/streets", h.Explorer.Streets)
			r.Route("/explorer", func(r chi.Router) {
				r.Get("/", h.Explorer.GetView)
				r.Put("/filters", h.Explorer.SetFilters)
				r.Put("/search", h.Explorer.SetSearch)
				r.Put("/street", h.Explorer.SelectStreet)
				r.Put("/selection", h.Explorer.SelectListing)
				r.Delete("/selection", h.Explorer.ClearSelection)
				r.Get("/clusters", h.Explorer.Clusters)
			})

			r.Route("/listings", func(r chi.Router) {
				r.Post("/", h.Listings.CreateListing)
				r.Get("/{listingID}", h.Listings.GetListing)
				r.Get("/{listingID}/form", h.Listings.GetListingForm)
				r.Put("/{listingID}", h.Listings.UpdateListing)
				r.Delete("/{listingID}", h.Listings.DeleteListing)
			})

			r.Get("/geometry", h.Geometry.GetGeometry)
			r.Post("/geometry/load", h.Geometry.LoadGeometry)
			r.Get("/events", h.Geometry.Subscribe)
		})
	})

	return r
}

func NewServer(cfg ServerConfig, h Handlers, authMW *AuthMiddleware, baseLogger port.LoggerPort) *Server {
	baseCtx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           NewRouter(cfg, h, authMW, baseLogger),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}

	return &Server{
		httpServer:     srv,
		cancelRequests: cancel,
		logger:         baseLogger.WithFields(port.Fields{"component": "rest_server"}),
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	s.cancelRequests()
	return s.httpServer.Shutdown(ctx)
}
