package service_test

import (
	"context"
	"crypto/rand"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/auth"
	"github.com/pagekeep/pagekeep-server/internal/config"
	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
	"github.com/pagekeep/pagekeep-server/internal/tags"
	"github.com/pagekeep/pagekeep-server/internal/validation"
)

type testEnv struct {
	store      *store.Store
	authors    *service.AuthorService
	publishers *service.PublisherService
	books      *service.BookService
	borrows    *service.BorrowService
	auth       *service.AuthService
}

const (
	testAdminUsername = "admin"
	testAdminPassword = "hunter2hunter2"
)

func setupServices(t *testing.T) *testEnv {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	logger := slog.New(slog.DiscardHandler)
	v := validation.New()
	vocab := tags.NewVocabulary(config.DefaultTags)

	key := make([]byte, 32)
	_, err = rand.Read(key)
	require.NoError(t, err)
	tokenSvc, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)

	adminHash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	return &testEnv{
		store:      s,
		authors:    service.NewAuthorService(s, v, logger),
		publishers: service.NewPublisherService(s, v, logger),
		books:      service.NewBookService(s, vocab, v, logger),
		borrows:    service.NewBorrowService(s, v, logger),
		auth:       service.NewAuthService(s, tokenSvc, testAdminUsername, adminHash, logger),
	}
}

func mustCreateAuthor(t *testing.T, env *testEnv, name string) *domain.Author {
	t.Helper()
	author, err := env.authors.Create(context.Background(), service.CreateAuthorInput{Name: name})
	require.NoError(t, err)
	return author
}

func mustCreatePublisher(t *testing.T, env *testEnv, name, city string) *domain.Publisher {
	t.Helper()
	publisher, err := env.publishers.Create(context.Background(), service.CreatePublisherInput{Name: name, City: city})
	require.NoError(t, err)
	return publisher
}

func mustCreateBook(t *testing.T, env *testEnv, title string, bookTags []string) *domain.Book {
	t.Helper()
	author := mustCreateAuthor(t, env, title+" author")
	publisher := mustCreatePublisher(t, env, title+" press", "")
	book, err := env.books.Create(context.Background(), service.CreateBookInput{
		Title:       title,
		AuthorID:    author.ID,
		PublisherID: publisher.ID,
		Tags:        bookTags,
	})
	require.NoError(t, err)
	return book
}
