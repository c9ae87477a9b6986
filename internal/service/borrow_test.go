package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/domain"
	"github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/service"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

func TestBorrowService_Submit(t *testing.T) {
	env := setupServices(t)
	book := mustCreateBook(t, env, "The Left Hand of Darkness", nil)

	request, err := env.borrows.Submit(context.Background(), book.ID, service.SubmitBorrowInput{
		Name:  "A Reader",
		Email: "reader@example.com",
		Notes: "back in two weeks",
	})
	require.NoError(t, err)
	assert.Equal(t, book.ID, request.BookID)
	assert.Equal(t, "The Left Hand of Darkness", request.BookTitle, "title snapshotted")
	assert.Equal(t, domain.BorrowStatusPending, request.Status)
	assert.NotEmpty(t, request.ID)
}

func TestBorrowService_Submit_SnapshotSurvivesRename(t *testing.T) {
	env := setupServices(t)
	book := mustCreateBook(t, env, "Original Title", nil)

	request, err := env.borrows.Submit(context.Background(), book.ID, service.SubmitBorrowInput{
		Name:  "A Reader",
		Email: "reader@example.com",
	})
	require.NoError(t, err)

	newTitle := "Renamed Title"
	_, err = env.books.Update(context.Background(), book.ID, service.UpdateBookInput{Title: &newTitle})
	require.NoError(t, err)

	page, err := env.borrows.List(context.Background(), store.PageParams{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "Original Title", page.Items[0].BookTitle)
	assert.Equal(t, request.ID, page.Items[0].ID)
}

func TestBorrowService_Submit_Validation(t *testing.T) {
	env := setupServices(t)
	book := mustCreateBook(t, env, "Dune", nil)

	_, err := env.borrows.Submit(context.Background(), book.ID, service.SubmitBorrowInput{
		Name: "No Email",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))

	_, err = env.borrows.Submit(context.Background(), "book-missing", service.SubmitBorrowInput{
		Name:  "A Reader",
		Email: "reader@example.com",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
