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

type UserService struct {
	repos *repository.Repositories
}

func NewUserService(repos *repository.Repositories) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}
	return users, nil
}

// Get returns the user with its favorites embedded.
func (s *UserService) Get(ctx context.Context, id uint) (*model.UserWithFavorites, error) {
	user, err := s.repos.Users.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.NewNotFoundError("User not found", true, nil)
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	favorites, err := s.repos.Favorites.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	return &model.UserWithFavorites{User: *user, Favorites: favorites}, nil
}
