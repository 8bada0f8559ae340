package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/validation"
)

type UserHandler struct {
	Handler
	users *service.UserService
}

func NewUserHandler(s *server.Server, users *service.UserService) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(s),
		users:   users,
	}
}

type GetUserRequest struct {
	UserID uint `param:"user_id"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

// List handles GET /users.
func (h *UserHandler) List(c echo.Context, _ *EmptyRequest) ([]model.User, error) {
	return h.users.List(c.Request().Context())
}

// Get handles GET /users/:user_id, embedding the user's favorites.
func (h *UserHandler) Get(c echo.Context, req *GetUserRequest) (*model.UserWithFavorites, error) {
	return h.users.Get(c.Request().Context(), req.UserID)
}
