package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/sqlerr"
)

type CharacterService struct {
	repos *repository.Repositories
}

func NewCharacterService(repos *repository.Repositories) *CharacterService {
	return &CharacterService{repos: repos}
}

func (s *CharacterService) List(ctx context.Context) ([]model.Character, error) {
	characters, err := s.repos.Characters.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return characters, nil
}

func (s *CharacterService) Get(ctx context.Context, id uint) (*model.Character, error) {
	character, err := s.repos.Characters.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("Character not found", true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return character, nil
}

type PlanetService struct {
	repos *repository.Repositories
}

func NewPlanetService(repos *repository.Repositories) *PlanetService {
	return &PlanetService{repos: repos}
}

func (s *PlanetService) List(ctx context.Context) ([]model.Planet, error) {
	planets, err := s.repos.Planets.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return planets, nil
}

func (s *PlanetService) Get(ctx context.Context, id uint) (*model.Planet, error) {
	planet, err := s.repos.Planets.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("Planet not found", true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return planet, nil
}
