package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/pagekeep/pagekeep-server/internal/domain"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Admin login",
		Description: "Exchanges admin credentials for a session token.",
		Tags:        []string{"Auth"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID: "logout",
		Method:      http.MethodPost,
		Path:        "/api/logout",
		Summary:     "Admin logout",
		Description: "Revokes the session carried by the bearer token.",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLogout)

	huma.Register(s.api, huma.Operation{
		OperationID: "get-session",
		Method:      http.MethodGet,
		Path:        "/api/session",
		Summary:     "Current session",
		Description: "Returns the session behind the bearer token, if it is still live.",
		Tags:        []string{"Auth"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSession)
}

// === DTOs ===

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Username string `json:"username" doc:"Admin username"`
	Password string `json:"password" doc:"Admin password"`
}

// LoginInput wraps LoginRequest for huma.
type LoginInput struct {
	Body LoginRequest
}

// LoginResponse carries the session token issued on successful login.
type LoginResponse struct {
	Token     string    `json:"token" doc:"Bearer token for admin requests"`
	ExpiresAt time.Time `json:"expires_at" doc:"When the session expires"`
}

// LoginOutput wraps LoginResponse for huma.
type LoginOutput struct {
	Body LoginResponse
}

// AuthorizedInput carries the bearer token of an authenticated request.
type AuthorizedInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token"`
}

// SessionResponse describes a live admin session.
type SessionResponse struct {
	ID        string    `json:"id" doc:"Session ID"`
	CreatedAt time.Time `json:"created_at" doc:"When the session was created"`
	ExpiresAt time.Time `json:"expires_at" doc:"When the session expires"`
}

// SessionOutput wraps SessionResponse for huma.
type SessionOutput struct {
	Body SessionResponse
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	result, err := s.services.Auth.Login(ctx, input.Body.Username, input.Body.Password)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Body: LoginResponse{
		Token:     result.Token,
		ExpiresAt: result.Session.ExpiresAt,
	}}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *AuthorizedInput) (*MessageOutput, error) {
	token := bearerToken(input.Authorization)
	if token == "" {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	if err := s.services.Auth.Logout(ctx, token); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "logged out"}}, nil
}

func (s *Server) handleGetSession(ctx context.Context, input *AuthorizedInput) (*SessionOutput, error) {
	token := bearerToken(input.Authorization)
	if token == "" {
		return nil, huma.Error401Unauthorized("Authentication required")
	}

	session, err := s.services.Auth.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	return &SessionOutput{Body: mapSession(session)}, nil
}

// === Mappers ===

func mapSession(session *domain.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	}
}
