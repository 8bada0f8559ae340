package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/errs"
	loggerPkg "github.com/deppfellow/starwars-api/internal/logger"
	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/server"
)

func newTestEcho(t *testing.T, cfg *config.Config) (*echo.Echo, *middleware.Middlewares) {
	t.Helper()

	logger := zerolog.Nop()
	s := &server.Server{
		Config:        cfg,
		Logger:        &logger,
		LoggerService: &loggerPkg.LoggerService{},
	}

	mw := middleware.NewMiddlewares(s)

	e := echo.New()
	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler
	e.Pre(mw.Global.RemoveTrailingSlash())
	e.Use(middleware.RequestID(), mw.ContextEnhancer.EnhanceContext(), mw.RateLimit.Limit())
	return e, mw
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func serve(e *echo.Echo, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		for _, value := range v {
			req.Header.Add(k, value)
		}
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	e, _ := newTestEcho(t, config.Default())
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, middleware.GetRequestID(c))
	})

	rec := serve(e, http.MethodGet, "/ping", nil)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, rec.Header().Get(middleware.RequestIDHeader), rec.Body.String())

	rec = serve(e, http.MethodGet, "/ping", http.Header{middleware.RequestIDHeader: {"abc"}})
	assert.Equal(t, "abc", rec.Header().Get(middleware.RequestIDHeader))
}

func TestContextEnhancer(t *testing.T) {
	e, _ := newTestEcho(t, config.Default())
	e.GET("/users/:user_id", func(c echo.Context) error {
		assert.NotNil(t, zerolog.Ctx(c.Request().Context()))
		return c.String(http.StatusOK, middleware.GetUserID(c))
	})

	rec := serve(e, http.MethodGet, "/users/7/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
}

func TestGlobalErrorHandler(t *testing.T) {
	e, _ := newTestEcho(t, config.Default())
	e.GET("/app-error", func(c echo.Context) error {
		return errs.NewNotFoundError("Planet not found", true, nil)
	})
	e.GET("/miss", func(c echo.Context) error {
		return gorm.ErrRecordNotFound
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("connection reset by peer")
	})

	t.Run("application error", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/app-error", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Planet not found", body["error"])
		assert.Equal(t, "NOT_FOUND", body["code"])
		assert.EqualValues(t, 404, body["status"])
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/nowhere", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Route not found", decode(t, rec)["error"])
	})

	t.Run("driver miss", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/miss", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unexpected error hides its cause", func(t *testing.T) {
		rec := serve(e, http.MethodGet, "/boom", nil)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, "Internal Server Error", body["error"])
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateLimitBurst = 2

	e, _ := newTestEcho(t, cfg)
	e.GET("/planets", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/status", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for range 2 {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/planets", nil).Code)
	}

	rec := serve(e, http.MethodGet, "/planets", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "Rate limit exceeded", decode(t, rec)["error"])

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/status", nil).Code)
}

func TestRateLimitDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 0
	cfg.Server.RateLimitBurst = 0

	e, _ := newTestEcho(t, cfg)
	e.GET("/users", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	for range 5 {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/users", nil).Code)
	}
}

func TestIDParams(t *testing.T) {
	e, mw := newTestEcho(t, config.Default())
	e.GET("/favorite/planet/:planet_id/:user_id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, mw.Global.IDParams())

	for _, path := range []string{"/favorite/planet/0/1", "/favorite/planet/3/2/"} {
		assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, path, nil).Code, path)
	}

	for _, path := range []string{"/favorite/planet/x/1", "/favorite/planet/1/-1", "/favorite/planet/+1/1"} {
		rec := serve(e, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.Equal(t, "Route not found", decode(t, rec)["error"], path)
	}
}
