package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagekeep/pagekeep-server/internal/errors"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/api/health",
		Summary:     "Health check",
		Description: "Reports whether the server and its data store are available.",
		Tags:        []string{"System"},
	}, s.handleHealthCheck)
}

// === DTOs ===

// HealthResponse reports service health.
type HealthResponse struct {
	Status     string `json:"status" doc:"Service status"`
	InstanceID string `json:"instance_id" doc:"ID of this server process"`
}

// HealthOutput wraps HealthResponse for huma.
type HealthOutput struct {
	Body HealthResponse
}

// === Handlers ===

func (s *Server) handleHealthCheck(ctx context.Context, _ *struct{}) (*HealthOutput, error) {
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("Health check failed", "error", err)
		return nil, errors.Unavailable("data store is not available")
	}
	return &HealthOutput{Body: HealthResponse{Status: "ok", InstanceID: s.instanceID}}, nil
}
