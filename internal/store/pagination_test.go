package store_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/store"
)

func TestPageParams_Clamp(t *testing.T) {
	cases := []struct {
		name       string
		in         store.PageParams
		wantLimit  int
		wantOffset int
	}{
		{"zero limit gets default", store.PageParams{Limit: 0, Offset: 0}, 10, 0},
		{"below minimum", store.PageParams{Limit: -5, Offset: 0}, 1, 0},
		{"above maximum", store.PageParams{Limit: 500, Offset: 0}, 100, 0},
		{"negative offset", store.PageParams{Limit: 20, Offset: -3}, 20, 0},
		{"in range untouched", store.PageParams{Limit: 25, Offset: 50}, 25, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.Clamp()
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
			assert.Equal(t, tc.wantOffset, tc.in.Offset)
		})
	}
}

func seedAuthors(t *testing.T, s *store.Store, n int) {
	t.Helper()
	base := time.Now()
	for i := 0; i < n; i++ {
		a := newTestAuthor(fmt.Sprintf("author-%03d", i), fmt.Sprintf("Author %03d", i))
		a.CreatedAt = base.Add(time.Duration(i) * time.Second)
		a.UpdatedAt = a.CreatedAt
		require.NoError(t, s.Authors.Create(context.Background(), a.ID, a))
	}
}

func TestListAuthors_Paging(t *testing.T) {
	s := setupTestStore(t)
	seedAuthors(t, s, 25)

	page, err := s.ListAuthors(context.Background(), store.AuthorQuery{
		Page: store.PageParams{Limit: 10, Offset: 0},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 25, page.Total)
	assert.True(t, page.HasMore)
	assert.Equal(t, "Author 000", page.Items[0].Name, "oldest first")

	page, err = s.ListAuthors(context.Background(), store.AuthorQuery{
		Page: store.PageParams{Limit: 10, Offset: 20},
	})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasMore)
	assert.Equal(t, "Author 020", page.Items[0].Name)
}

func TestListAuthors_OffsetBeyondEnd(t *testing.T) {
	s := setupTestStore(t)
	seedAuthors(t, s, 3)

	page, err := s.ListAuthors(context.Background(), store.AuthorQuery{
		Page: store.PageParams{Limit: 10, Offset: 100},
	})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.Total)
	assert.False(t, page.HasMore)
}

func TestListAuthors_QueryFilter(t *testing.T) {
	s := setupTestStore(t)

	for i, name := range []string{"Octavia Butler", "Ursula K. Le Guin", "Terry Pratchett"} {
		a := newTestAuthor(fmt.Sprintf("author-%d", i), name)
		a.CreatedAt = time.Now().Add(time.Duration(i) * time.Second)
		require.NoError(t, s.Authors.Create(context.Background(), a.ID, a))
	}

	page, err := s.ListAuthors(context.Background(), store.AuthorQuery{Q: "urSULA"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Ursula K. Le Guin", page.Items[0].Name)
	assert.Equal(t, 1, page.Total)

	page, err = s.ListAuthors(context.Background(), store.AuthorQuery{Q: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}

func TestListAuthors_StableOrderOnTies(t *testing.T) {
	s := setupTestStore(t)

	ts := time.Now()
	for _, id := range []string{"author-c", "author-a", "author-b"} {
		a := newTestAuthor(id, id)
		a.CreatedAt = ts
		a.UpdatedAt = ts
		require.NoError(t, s.Authors.Create(context.Background(), id, a))
	}

	page, err := s.ListAuthors(context.Background(), store.AuthorQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "author-a", page.Items[0].ID, "ID breaks timestamp ties")
	assert.Equal(t, "author-b", page.Items[1].ID)
	assert.Equal(t, "author-c", page.Items[2].ID)
}
