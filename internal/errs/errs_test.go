package errs_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/errs"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("not found serializes message under error", func(t *testing.T) {
		t.Parallel()

		b, err := json.Marshal(errs.NewNotFoundError("User not found", false, nil))
		require.NoError(t, err)

		var body map[string]any
		require.NoError(t, json.Unmarshal(b, &body))

		assert.Equal(t, "User not found", body["error"])
		assert.Equal(t, "NOT_FOUND", body["code"])
		assert.EqualValues(t, http.StatusNotFound, body["status"])
		assert.NotContains(t, body, "errors")
	})

	t.Run("custom code", func(t *testing.T) {
		t.Parallel()

		code := "FAVORITE_NOT_FOUND"
		e := errs.NewBadRequestError("The referenced favorite does not exist", true, &code, nil)

		assert.Equal(t, code, e.Code)
		assert.Equal(t, http.StatusBadRequest, e.Status)
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("service: %w", errs.NewNotFoundError("Planet not found", false, nil))

		var httpErr *errs.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.True(t, errors.Is(err, &errs.HTTPError{}))
	})

	t.Run("with message copies", func(t *testing.T) {
		t.Parallel()

		base := errs.NewNotFoundError("Resource not found", false, nil)
		custom := base.WithMessage("Character not found")

		assert.Equal(t, "Resource not found", base.Message)
		assert.Equal(t, "Character not found", custom.Message)
		assert.Equal(t, base.Code, custom.Code)
	})

	t.Run("internal errors hide details", func(t *testing.T) {
		t.Parallel()

		e := errs.NewInternalServerError()
		assert.Equal(t, "INTERNAL_SERVER_ERROR", e.Code)
		assert.Equal(t, "Internal Server Error", e.Error())
	})
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "TOO_MANY_REQUESTS", errs.MakeUpperCaseWithUnderscores("Too Many Requests"))
}
