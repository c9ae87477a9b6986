// Package api provides the HTTP API server and handlers for the PageKeep application.
package api

import (
	"context"
	"encoding/json/v2"
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/ratelimit"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           *store.Store
	services        *Services
	router          *chi.Mux
	api             huma.API
	logger          *slog.Logger
	authRateLimiter *ratelimit.KeyedRateLimiter
	httpServer      *http.Server

	// instanceID identifies this server process, for log correlation
	// across restarts.
	instanceID string
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, st *store.Store, services *Services, authRateLimiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Attach the session to the request context before huma sees it.
	router.Use(authMiddleware(services.Auth))
	router.Use(loginRateLimit(authRateLimiter))

	humaConfig := huma.DefaultConfig("PageKeep API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	api := humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s := &Server{
		store:           st,
		services:        services,
		router:          router,
		api:             api,
		logger:          logger,
		authRateLimiter: authRateLimiter,
		instanceID:      uuid.NewString(),
		httpServer: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerAuthorRoutes()
	s.registerPublisherRoutes()
	s.registerBookRoutes()
	s.registerBorrowRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Start begins serving HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr, "instance_id", s.instanceID)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// loginRateLimit throttles login attempts per client IP. The 429 response is
// written directly because the limit trips before huma handles the request.
func loginRateLimit(limiter *ratelimit.KeyedRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost && r.URL.Path == "/api/login" {
				if !limiter.Allow(r.RemoteAddr) {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusTooManyRequests)
					body, err := json.Marshal(APIEnvelope{
						Version: EnvelopeVersion,
						Success: false,
						Error:   "too many login attempts, slow down",
					})
					if err == nil {
						_, _ = w.Write(body)
					}
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// === Common DTOs ===

// MessageResponse is a simple human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message" doc:"Confirmation message"`
}

// MessageOutput wraps MessageResponse for huma.
type MessageOutput struct {
	Body MessageResponse
}

// PageQuery holds the pagination query parameters shared by list endpoints.
// Out-of-range values are clamped rather than rejected.
type PageQuery struct {
	Limit  int `query:"limit" default:"10" doc:"Page size (clamped to 1-100)"`
	Offset int `query:"offset" doc:"Items to skip (clamped to >= 0)"`
}

// PageParams converts the query to store pagination parameters.
func (q PageQuery) PageParams() store.PageParams {
	return store.PageParams{Limit: q.Limit, Offset: q.Offset}
}

// PageResponse is the wire shape of one page of results.
type PageResponse[T any] struct {
	Items   []T  `json:"items" doc:"Items in this page"`
	Total   int  `json:"total" doc:"Total matching items"`
	Limit   int  `json:"limit" doc:"Applied page size"`
	Offset  int  `json:"offset" doc:"Applied offset"`
	HasMore bool `json:"has_more" doc:"Whether more items exist past this page"`
}

// mapPage converts a store page to its wire shape using the given item mapper.
func mapPage[D, T any](page *store.Page[D], mapItem func(*D) T) PageResponse[T] {
	items := make([]T, len(page.Items))
	for i, item := range page.Items {
		items[i] = mapItem(item)
	}
	return PageResponse[T]{
		Items:   items,
		Total:   page.Total,
		Limit:   page.Limit,
		Offset:  page.Offset,
		HasMore: page.HasMore,
	}
}
