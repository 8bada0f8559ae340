package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/errs"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)

	return httpErr
}

func TestHandleError(t *testing.T) {
	t.Parallel()

	t.Run("http errors pass through", func(t *testing.T) {
		t.Parallel()

		in := errs.NewNotFoundError("User not found", false, nil)
		assert.Same(t, in, HandleError(in))
	})

	t.Run("postgres foreign key violation", func(t *testing.T) {
		t.Parallel()

		err := HandleError(fmt.Errorf("insert favorite: %w", &pgconn.PgError{
			Code:           "23503",
			Severity:       "ERROR",
			TableName:      "favorites",
			ColumnName:     "planet_id",
			ConstraintName: "fk_favorites_planet",
		}))

		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "FAVORITE_NOT_FOUND", httpErr.Code)
		assert.Equal(t, "The referenced Planet does not exist", httpErr.Message)
	})

	t.Run("postgres unique violation names the column", func(t *testing.T) {
		t.Parallel()

		err := HandleError(&pgconn.PgError{
			Code:           "23505",
			Severity:       "ERROR",
			TableName:      "users",
			ConstraintName: "users_email_key",
		})

		httpErr := asHTTPError(t, err)
		assert.Equal(t, "USER_ALREADY_EXISTS", httpErr.Code)
		assert.Equal(t, "A User with this Email already exists", httpErr.Message)
		assert.True(t, httpErr.Override)
	})

	t.Run("postgres check violation", func(t *testing.T) {
		t.Parallel()

		err := HandleError(&pgconn.PgError{Code: "23514", TableName: "favorites", ConstraintName: "chk_favorites_single_target"})

		httpErr := asHTTPError(t, err)
		assert.Equal(t, "FAVORITE_INVALID", httpErr.Code)
	})

	t.Run("sqlite foreign key violation", func(t *testing.T) {
		t.Parallel()

		err := HandleError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey})

		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusBadRequest, httpErr.Status)
		assert.Equal(t, "RECORD_NOT_FOUND", httpErr.Code)
	})

	t.Run("record not found with table hint", func(t *testing.T) {
		t.Parallel()

		err := HandleError(fmt.Errorf("table:planets: id 42: %w", gorm.ErrRecordNotFound))

		httpErr := asHTTPError(t, err)
		assert.Equal(t, http.StatusNotFound, httpErr.Status)
		assert.Equal(t, "Planet not found", httpErr.Message)
	})

	t.Run("record not found without hint", func(t *testing.T) {
		t.Parallel()

		httpErr := asHTTPError(t, HandleError(gorm.ErrRecordNotFound))
		assert.Equal(t, "Resource not found", httpErr.Message)
	})

	t.Run("unknown errors become 500", func(t *testing.T) {
		t.Parallel()

		httpErr := asHTTPError(t, HandleError(errors.New("connection reset by peer")))
		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	})
}

func TestMapCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("42P01"))
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("idx_users_email"))
	assert.Empty(t, extractColumnForUniqueViolation("pk"))
}

func TestErrCode(t *testing.T) {
	t.Parallel()

	sqlErr := ConvertPgError(&pgconn.PgError{Code: "23502", ColumnName: "user_id"})
	assert.Equal(t, NotNullViolation, ErrCode(fmt.Errorf("wrapped: %w", sqlErr)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}
