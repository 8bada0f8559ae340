package validation_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/validation"
)

type idRequest struct {
	ID uint `param:"id" validate:"required,min=1"`
}

func (r *idRequest) Validate() error {
	return validation.Struct(r)
}

func bind(t *testing.T, raw string) (*idRequest, error) {
	t.Helper()

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/planet/"+raw, nil), httptest.NewRecorder())
	c.SetPath("/planet/:id")
	c.SetParamNames("id")
	c.SetParamValues(raw)

	req := &idRequest{}
	return req, validation.BindAndValidate(c, req)
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "got %T", err)
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	t.Run("valid id", func(t *testing.T) {
		req, err := bind(t, "42")
		require.NoError(t, err)
		assert.Equal(t, uint(42), req.ID)
	})

	t.Run("non numeric id", func(t *testing.T) {
		_, err := bind(t, "abc")
		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "BAD_REQUEST", httpErr.Code)
	})

	t.Run("negative id", func(t *testing.T) {
		_, err := bind(t, "-1")
		assert.Equal(t, http.StatusBadRequest, asHTTPError(t, err).Status)
	})

	t.Run("zero id reports the param name", func(t *testing.T) {
		_, err := bind(t, "0")
		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "Validation failed", httpErr.Message)
		require.Len(t, httpErr.Errors, 1)
		assert.Equal(t, errs.FieldError{Field: "id", Error: "is required"}, httpErr.Errors[0])
	})
}
