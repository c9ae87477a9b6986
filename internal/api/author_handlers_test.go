package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAuthor_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/authors", map[string]any{"name": "Iain Banks"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreateAuthor_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)

	resp := ts.api.Post("/api/authors",
		"Authorization: Bearer "+token,
		map[string]any{"name": "  Ursula K. Le Guin  ", "email": "ursula@example.com"},
	)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var envelope testEnvelope[AuthorResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, "Ursula K. Le Guin", envelope.Data.Name)
	assert.Equal(t, "ursula@example.com", envelope.Data.Email)
	assert.False(t, envelope.Data.CreatedAt.IsZero())
}

func TestCreateAuthor_BlankName(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)

	resp := ts.api.Post("/api/authors",
		"Authorization: Bearer "+token,
		map[string]any{"name": "   ", "email": "nobody@example.com"},
	)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.Contains(t, envelope.Details, "name")
}

func TestGetAuthor_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/authors/aut-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestGetAuthor_PublicRead(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	created := ts.createAuthor(t, token, "Octavia Butler")

	// No token needed for reads.
	resp := ts.api.Get("/api/authors/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[AuthorResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, created.ID, envelope.Data.ID)
	assert.Equal(t, "Octavia Butler", envelope.Data.Name)
}

func TestListAuthors_Pagination(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	for _, name := range []string{"Asimov", "Bradbury", "Clarke", "Dick", "Ellison"} {
		ts.createAuthor(t, token, name)
	}

	resp := ts.api.Get("/api/authors?limit=2&offset=2")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[PageResponse[AuthorResponse]]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, 5, envelope.Data.Total)
	assert.Equal(t, 2, envelope.Data.Limit)
	assert.Equal(t, 2, envelope.Data.Offset)
	assert.True(t, envelope.Data.HasMore)
	require.Len(t, envelope.Data.Items, 2)
	// Oldest first, so offset 2 lands on the third created author.
	assert.Equal(t, "Clarke", envelope.Data.Items[0].Name)
	assert.Equal(t, "Dick", envelope.Data.Items[1].Name)
}

func TestListAuthors_NameFilter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	ts.createAuthor(t, token, "Terry Pratchett")
	ts.createAuthor(t, token, "Neil Gaiman")

	resp := ts.api.Get("/api/authors?q=prat")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[PageResponse[AuthorResponse]]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Terry Pratchett", envelope.Data.Items[0].Name)
}

func TestUpdateAuthor_Partial(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	created := ts.createAuthor(t, token, "Jim Butcher")

	resp := ts.api.Put("/api/authors/"+created.ID,
		"Authorization: Bearer "+token,
		map[string]any{"email": "jim@example.com"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[AuthorResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "Jim Butcher", envelope.Data.Name)
	assert.Equal(t, "jim@example.com", envelope.Data.Email)
}

func TestDeleteAuthor_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	created := ts.createAuthor(t, token, "Gone Soon")

	resp := ts.api.Delete("/api/authors/"+created.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/authors/" + created.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteAuthor_BlockedByBooks(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	author := ts.createAuthor(t, token, "Kept Author")
	publisher := ts.createPublisher(t, token, "Kept Press")
	ts.createBook(t, token, "Kept Title", author.ID, publisher.ID)

	resp := ts.api.Delete("/api/authors/"+author.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, "CONFLICT", envelope.Code)

	// Author survives the refused delete.
	resp = ts.api.Get("/api/authors/" + author.ID)
	assert.Equal(t, http.StatusOK, resp.Code)
}
