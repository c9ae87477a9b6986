package api

import (
	"encoding/json/v2"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/ratelimit"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/tags"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

const (
	testAdminUsername = "admin"
	testAdminPassword = "correct horse battery staple"
)

// testEnvelope mirrors the success envelope for decoding responses.
type testEnvelope[T any] struct {
	Version int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
}

// testErrorEnvelope mirrors the detailed error envelope.
type testErrorEnvelope struct {
	Version int            `json:"v"`
	Success bool           `json:"success"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api     humatest.TestAPI
	cleanup func()
}

// setupTestServer creates a test server backed by a throwaway store.
func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWithLimiter(t, ratelimit.New(100, 50))
}

// setupTestServerWithLimiter allows tests to control the login rate limiter.
func setupTestServerWithLimiter(t *testing.T, limiter *ratelimit.KeyedRateLimiter) *testServer {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "pagekeep-api-test-*")
	require.NoError(t, err)

	st, err := store.New(filepath.Join(tmpDir, "db"), nil)
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{
			Port:         "0",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Auth: config.AuthConfig{
			TokenDuration: 15 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}

	authKey, err := auth.LoadOrGenerateKey(tmpDir)
	require.NoError(t, err)
	cfg.Auth.TokenKey = authKey

	tokenService, err := auth.NewTokenService(authKey, cfg.Auth.TokenDuration)
	require.NoError(t, err)

	adminHash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	logger := slog.New(slog.DiscardHandler)
	validator := validation.New()
	vocabulary := tags.NewVocabulary(config.DefaultTags)

	services := &Services{
		Auth:      service.NewAuthService(st, tokenService, testAdminUsername, adminHash, logger),
		Author:    service.NewAuthorService(st, validator, logger),
		Publisher: service.NewPublisherService(st, validator, logger),
		Book:      service.NewBookService(st, vocabulary, validator, logger),
		Borrow:    service.NewBorrowService(st, validator, logger),
	}

	s := NewServer(cfg, st, services, limiter, logger)

	cleanup := func() {
		limiter.Stop()
		_ = st.Close()
		_ = os.RemoveAll(tmpDir)
	}

	return &testServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		cleanup: cleanup,
	}
}

// loginAdmin logs in with the test admin credentials and returns the token.
func (ts *testServer) loginAdmin(t *testing.T) string {
	t.Helper()

	resp := ts.api.Post("/api/login", map[string]any{
		"username": testAdminUsername,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, resp.Code, "Login failed: %s", resp.Body.String())

	var envelope testEnvelope[LoginResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	require.NotEmpty(t, envelope.Data.Token)

	return envelope.Data.Token
}

// createAuthor creates an author through the API and returns it.
func (ts *testServer) createAuthor(t *testing.T, token, name string) AuthorResponse {
	t.Helper()

	resp := ts.api.Post("/api/authors",
		"Authorization: Bearer "+token,
		map[string]any{"name": name},
	)
	require.Equal(t, http.StatusCreated, resp.Code, "Create author failed: %s", resp.Body.String())

	var envelope testEnvelope[AuthorResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data
}

// createPublisher creates a publisher through the API and returns it.
func (ts *testServer) createPublisher(t *testing.T, token, name string) PublisherResponse {
	t.Helper()

	resp := ts.api.Post("/api/pubs",
		"Authorization: Bearer "+token,
		map[string]any{"name": name},
	)
	require.Equal(t, http.StatusCreated, resp.Code, "Create publisher failed: %s", resp.Body.String())

	var envelope testEnvelope[PublisherResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data
}

// createBook creates a book through the API and returns it.
func (ts *testServer) createBook(t *testing.T, token, title, authorID, publisherID string, bookTags ...string) BookResponse {
	t.Helper()

	body := map[string]any{
		"title":        title,
		"author_id":    authorID,
		"publisher_id": publisherID,
	}
	if len(bookTags) > 0 {
		body["tags"] = bookTags
	}

	resp := ts.api.Post("/api/books",
		"Authorization: Bearer "+token,
		body,
	)
	require.Equal(t, http.StatusCreated, resp.Code, "Create book failed: %s", resp.Body.String())

	var envelope testEnvelope[BookResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	return envelope.Data
}
