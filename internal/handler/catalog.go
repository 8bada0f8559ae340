package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/validation"
)

type CharacterHandler struct {
	Handler
	characters *service.CharacterService
}

func NewCharacterHandler(s *server.Server, characters *service.CharacterService) *CharacterHandler {
	return &CharacterHandler{
		Handler:    NewHandler(s),
		characters: characters,
	}
}

type GetCharacterRequest struct {
	CharacterID uint `param:"character_id"`
}

func (r *GetCharacterRequest) Validate() error {
	return validation.Struct(r)
}

func (h *CharacterHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Character, error) {
	return h.characters.List(c.Request().Context())
}

func (h *CharacterHandler) Get(c echo.Context, req *GetCharacterRequest) (*model.Character, error) {
	return h.characters.Get(c.Request().Context(), req.CharacterID)
}

type PlanetHandler struct {
	Handler
	planets *service.PlanetService
}

func NewPlanetHandler(s *server.Server, planets *service.PlanetService) *PlanetHandler {
	return &PlanetHandler{
		Handler: NewHandler(s),
		planets: planets,
	}
}

type GetPlanetRequest struct {
	PlanetID uint `param:"planet_id"`
}

func (r *GetPlanetRequest) Validate() error {
	return validation.Struct(r)
}

func (h *PlanetHandler) List(c echo.Context, _ *EmptyRequest) ([]model.Planet, error) {
	return h.planets.List(c.Request().Context())
}

func (h *PlanetHandler) Get(c echo.Context, req *GetPlanetRequest) (*model.Planet, error) {
	return h.planets.Get(c.Request().Context(), req.PlanetID)
}
