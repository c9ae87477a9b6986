package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePublisher_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Post("/api/pubs", map[string]any{"name": "Tor Books"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestCreatePublisher_WithCity(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)

	resp := ts.api.Post("/api/pubs",
		"Authorization: Bearer "+token,
		map[string]any{"name": "Gollancz", "city": "London"},
	)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var envelope testEnvelope[PublisherResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.NotEmpty(t, envelope.Data.ID)
	assert.Equal(t, "Gollancz", envelope.Data.Name)
	assert.Equal(t, "London", envelope.Data.City)
}

func TestListPublishers_CityFilter(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)

	for _, p := range []struct{ name, city string }{
		{"Tor Books", "New York"},
		{"Gollancz", "London"},
		{"Orbit UK", "London"},
	} {
		resp := ts.api.Post("/api/pubs",
			"Authorization: Bearer "+token,
			map[string]any{"name": p.name, "city": p.city},
		)
		require.Equal(t, http.StatusCreated, resp.Code)
	}

	resp := ts.api.Get("/api/pubs?city=london")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[PageResponse[PublisherResponse]]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, 2, envelope.Data.Total)
	require.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, "Gollancz", envelope.Data.Items[0].Name)
	assert.Equal(t, "Orbit UK", envelope.Data.Items[1].Name)
}

func TestUpdatePublisher_ClearsNothingWhenOmitted(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	created := ts.createPublisher(t, token, "Subterranean Press")

	resp := ts.api.Put("/api/pubs/"+created.ID,
		"Authorization: Bearer "+token,
		map[string]any{"city": "Burton"},
	)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[PublisherResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, "Subterranean Press", envelope.Data.Name)
	assert.Equal(t, "Burton", envelope.Data.City)
}

func TestDeletePublisher_BlockedByBooks(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	author := ts.createAuthor(t, token, "Alastair Reynolds")
	publisher := ts.createPublisher(t, token, "Gollancz")
	ts.createBook(t, token, "Revelation Space", author.ID, publisher.ID)

	resp := ts.api.Delete("/api/pubs/"+publisher.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusConflict, resp.Code)

	var envelope testErrorEnvelope
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Equal(t, "CONFLICT", envelope.Code)
}

func TestDeletePublisher_Success(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	token := ts.loginAdmin(t)
	publisher := ts.createPublisher(t, token, "Short Lived Press")

	resp := ts.api.Delete("/api/pubs/"+publisher.ID, "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	resp = ts.api.Get("/api/pubs/" + publisher.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
