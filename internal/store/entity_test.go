package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.New(t.TempDir(), nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func newTestAuthor(id, name string) *domain.Author {
	a := &domain.Author{Name: name}
	a.ID = id
	a.InitTimestamps()
	return a
}

func TestEntity_Create_Success(t *testing.T) {
	s := setupTestStore(t)

	author := newTestAuthor("author-1", "Ursula K. Le Guin")
	err := s.Authors.Create(context.Background(), "author-1", author)
	require.NoError(t, err)

	retrieved, err := s.Authors.Get(context.Background(), "author-1")
	require.NoError(t, err)
	require.Equal(t, author.ID, retrieved.ID)
	require.Equal(t, author.Name, retrieved.Name)
}

func TestEntity_Create_AlreadyExists(t *testing.T) {
	s := setupTestStore(t)

	author := newTestAuthor("author-1", "Ursula K. Le Guin")
	err := s.Authors.Create(context.Background(), "author-1", author)
	require.NoError(t, err)

	err = s.Authors.Create(context.Background(), "author-1", author)
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestEntity_Get_NotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Authors.Get(context.Background(), "author-missing")
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Update_Success(t *testing.T) {
	s := setupTestStore(t)

	author := newTestAuthor("author-1", "Ursula K. Le Guin")
	require.NoError(t, s.Authors.Create(context.Background(), "author-1", author))

	author.Name = "U. K. Le Guin"
	author.Touch()
	require.NoError(t, s.Authors.Update(context.Background(), "author-1", author))

	retrieved, err := s.Authors.Get(context.Background(), "author-1")
	require.NoError(t, err)
	require.Equal(t, "U. K. Le Guin", retrieved.Name)
}

func TestEntity_Update_NotFound(t *testing.T) {
	s := setupTestStore(t)

	author := newTestAuthor("author-1", "Ursula K. Le Guin")
	err := s.Authors.Update(context.Background(), "author-1", author)
	require.Error(t, err)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestEntity_Delete_Idempotent(t *testing.T) {
	s := setupTestStore(t)

	author := newTestAuthor("author-1", "Ursula K. Le Guin")
	require.NoError(t, s.Authors.Create(context.Background(), "author-1", author))

	require.NoError(t, s.Authors.Delete(context.Background(), "author-1"))

	_, err := s.Authors.Get(context.Background(), "author-1")
	require.ErrorIs(t, err, store.ErrNotFound)

	// Deleting again is not an error.
	require.NoError(t, s.Authors.Delete(context.Background(), "author-1"))
}

func TestEntity_Exists(t *testing.T) {
	s := setupTestStore(t)

	ok, err := s.Authors.Exists(context.Background(), "author-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Authors.Create(context.Background(), "author-1", newTestAuthor("author-1", "N. K. Jemisin")))

	ok, err = s.Authors.Exists(context.Background(), "author-1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEntity_Collect(t *testing.T) {
	s := setupTestStore(t)

	empty, err := s.Authors.Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for i, name := range []string{"A", "B", "C"} {
		a := newTestAuthor("author-"+name, name)
		a.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, s.Authors.Create(context.Background(), a.ID, a))
	}

	all, err := s.Authors.Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
}
