package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestTraceAttributes(t *testing.T) {
	var attrs map[string]interface{}
	collect := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			attrs = traceAttributes(c)
			return err
		}
	}

	e := echo.New()
	e.Use(collect, RequestID())
	e.GET("/users/:user_id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/users/2", nil)
	req.Header.Set(RequestIDHeader, "abc")
	req.Header.Set("User-Agent", "holonet")
	e.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "abc", attrs["request.id"])
	assert.Equal(t, "2", attrs["user.id"])
	assert.Equal(t, "holonet", attrs["http.user_agent"])
	assert.Equal(t, http.StatusOK, attrs["http.status_code"])
}
