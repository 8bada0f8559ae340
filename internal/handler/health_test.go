package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/testutil"
)

func checkHealth(t *testing.T, h *handler.HealthHandler) (int, handler.HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)
	require.NoError(t, h.CheckHealth(c))

	var body handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestCheckHealth(t *testing.T) {
	s := testutil.NewServer(t)
	h := handler.NewHealthHandler(s)

	status, body := checkHealth(t, h)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "test", body.Environment)

	t.Run("disabled check is skipped", func(t *testing.T) {
		s.Config.Observability.HealthChecks.Checks = []string{"redis"}
		t.Cleanup(func() { s.Config.Observability.HealthChecks.Checks = []string{"database", "redis"} })

		status, body := checkHealth(t, h)
		assert.Equal(t, http.StatusOK, status)
		assert.Empty(t, body.Checks)
	})

	t.Run("database down", func(t *testing.T) {
		require.NoError(t, s.DB.Close())

		status, body := checkHealth(t, h)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.Equal(t, "unhealthy", body.Status)
		assert.Equal(t, "unhealthy", body.Checks["database"].Status)
		assert.NotEmpty(t, body.Checks["database"].Error)
	})
}
