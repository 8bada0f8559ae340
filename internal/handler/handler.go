// Package handler is the HTTP layer, the first stop after the router.
//
// Handlers bind and validate path parameters through the validation
// package, call the service layer and serialize its result.
package handler

import (
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
)

// Handlers groups every HTTP handler so the router receives a single value.
type Handlers struct {
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
	Users      *UserHandler
	Characters *CharacterHandler
	Planets    *PlanetHandler
	Favorites  *FavoriteHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
		Users:      NewUserHandler(s, services.Users),
		Characters: NewCharacterHandler(s, services.Characters),
		Planets:    NewPlanetHandler(s, services.Planets),
		Favorites:  NewFavoriteHandler(s, services.Favorites),
	}
}

// MessageResponse is the body of successful writes.
type MessageResponse struct {
	Message string `json:"message"`
}

// EmptyRequest is the request of routes without parameters.
type EmptyRequest struct{}

func (*EmptyRequest) Validate() error {
	return nil
}
