package api

import (
	"encoding/json/v2"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)
	defer ts.cleanup()

	resp := ts.api.Get("/api/health")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[HealthResponse]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	assert.Equal(t, EnvelopeVersion, envelope.Version)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Data.Status)
	assert.NotEmpty(t, envelope.Data.InstanceID)
}
