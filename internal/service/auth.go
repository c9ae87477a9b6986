package service

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/id"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

// AuthService handles the admin login flow and session verification.
// There is a single admin account, configured at startup; its password
// is held only as an Argon2id hash.
type AuthService struct {
	store         *store.Store
	tokens        *auth.TokenService
	logger        *slog.Logger
	adminUsername string
	adminHash     string
}

// NewAuthService creates a new auth service. adminHash must be an
// Argon2id encoded hash of the admin password.
func NewAuthService(s *store.Store, tokens *auth.TokenService, adminUsername, adminHash string, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:         s,
		tokens:        tokens,
		logger:        logger,
		adminUsername: adminUsername,
		adminHash:     adminHash,
	}
}

// LoginResult is a successful login: the bearer token and its session.
type LoginResult struct {
	Token   string
	Session *domain.Session
}

// Login checks the credentials, persists a new session, and returns a
// token bound to it. Wrong username and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	// Always run the password check so the two failure modes take the
	// same time.
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordOK, err := auth.VerifyPassword(s.adminHash, password)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to verify password")
	}
	if !usernameOK || !passwordOK {
		s.logger.Warn("failed login attempt", "username", username)
		return nil, errors.InvalidCredentials("invalid username or password")
	}

	session := &domain.Session{
		ExpiresAt: time.Now().Add(s.tokens.TokenDuration()),
	}
	session.ID = id.MustGenerate("ses")
	session.InitTimestamps()

	if err := s.store.Sessions.Create(ctx, session.ID, session); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to create session")
	}

	token, err := s.tokens.GenerateSessionToken(session.ID, s.adminUsername)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to generate token")
	}

	s.logger.Info("admin logged in", "session_id", session.ID)
	return &LoginResult{Token: token, Session: session}, nil
}

// Verify checks a bearer token and returns its live session.
// A token is only accepted while its session document exists and has
// not expired, so logout revokes tokens immediately.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokens.VerifySessionToken(token)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token")
	}

	session, err := s.store.Sessions.Get(ctx, claims.SessionID())
	if errors.Is(err, store.ErrNotFound) {
		return nil, errors.Unauthorized("session has been revoked")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to get session")
	}

	if session.IsExpired() {
		// Expired sessions are lazily cleaned up on first use.
		_ = s.store.Sessions.Delete(ctx, session.ID)
		return nil, errors.TokenExpired("session has expired")
	}

	return session, nil
}

// Logout deletes the session behind the token, revoking it.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.Verify(ctx, token)
	if err != nil {
		return err
	}

	if err := s.store.Sessions.Delete(ctx, session.ID); err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to delete session")
	}

	s.logger.Info("admin logged out", "session_id", session.ID)
	return nil
}
