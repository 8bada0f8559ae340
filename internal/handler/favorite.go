package handler

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/server"
	"github.com/deppfellow/starwars-api/internal/service"
	"github.com/deppfellow/starwars-api/internal/validation"
)

type FavoriteHandler struct {
	Handler
	favorites *service.FavoriteService
}

func NewFavoriteHandler(s *server.Server, favorites *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		Handler:   NewHandler(s),
		favorites: favorites,
	}
}

type FavoritePlanetRequest struct {
	PlanetID uint `param:"planet_id"`
	UserID   uint `param:"user_id"`
}

func (r *FavoritePlanetRequest) Validate() error {
	return validation.Struct(r)
}

type FavoriteCharacterRequest struct {
	CharacterID uint `param:"character_id"`
	UserID      uint `param:"user_id"`
}

func (r *FavoriteCharacterRequest) Validate() error {
	return validation.Struct(r)
}

func (h *FavoriteHandler) AddPlanet(c echo.Context, req *FavoritePlanetRequest) (*MessageResponse, error) {
	return h.add(c, req.UserID, model.PlanetTarget(req.PlanetID))
}

func (h *FavoriteHandler) AddCharacter(c echo.Context, req *FavoriteCharacterRequest) (*MessageResponse, error) {
	return h.add(c, req.UserID, model.CharacterTarget(req.CharacterID))
}

func (h *FavoriteHandler) RemovePlanet(c echo.Context, req *FavoritePlanetRequest) (*MessageResponse, error) {
	return h.remove(c, req.UserID, model.PlanetTarget(req.PlanetID))
}

func (h *FavoriteHandler) RemoveCharacter(c echo.Context, req *FavoriteCharacterRequest) (*MessageResponse, error) {
	return h.remove(c, req.UserID, model.CharacterTarget(req.CharacterID))
}

func (h *FavoriteHandler) add(c echo.Context, userID uint, target model.FavoriteTarget) (*MessageResponse, error) {
	if _, err := h.favorites.Add(c.Request().Context(), userID, target); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: fmt.Sprintf("Favorite %s added successfully", target.Kind)}, nil
}

func (h *FavoriteHandler) remove(c echo.Context, userID uint, target model.FavoriteTarget) (*MessageResponse, error) {
	if err := h.favorites.Remove(c.Request().Context(), userID, target); err != nil {
		return nil, err
	}
	return &MessageResponse{Message: fmt.Sprintf("Favorite %s removed successfully", target.Kind)}, nil
}
