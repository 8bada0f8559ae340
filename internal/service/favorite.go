package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/errs"
	"github.com/deppfellow/starwars-api/internal/lib/job"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/sqlerr"
)

type FavoriteService struct {
	logger *zerolog.Logger
	repos  *repository.Repositories
	// jobs is nil when background jobs are disabled.
	jobs job.Enqueuer
}

func NewFavoriteService(logger *zerolog.Logger, repos *repository.Repositories, jobs job.Enqueuer) *FavoriteService {
	return &FavoriteService{
		logger: logger,
		repos:  repos,
		jobs:   jobs,
	}
}

// Add links the user to target. Both must exist; duplicates are allowed.
//
// The existence checks and the insert share one transaction. The
// notification is enqueued after commit and its failure only gets logged.
func (s *FavoriteService) Add(ctx context.Context, userID uint, target model.FavoriteTarget) (*model.Favorite, error) {
	notFound := errs.NewNotFoundError(fmt.Sprintf("User or %s not found", target.Kind.Label()), true, nil)

	var (
		favorite *model.Favorite
		payload  job.FavoriteAddedPayload
	)

	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		user, err := tx.Users.GetByID(ctx, userID)
		if err != nil {
			return err
		}

		targetName, err := lookupTargetName(ctx, tx, target)
		if err != nil {
			return err
		}

		favorite, err = tx.Favorites.Create(ctx, user.ID, target)
		if err != nil {
			return err
		}

		payload = job.FavoriteAddedPayload{
			UserID:     user.ID,
			Email:      user.Email,
			Username:   user.Username,
			Kind:       string(target.Kind),
			TargetID:   target.ID,
			TargetName: targetName,
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, sqlerr.HandleError(err)
	}

	s.notify(ctx, payload)

	return favorite, nil
}

// Remove deletes the oldest favorite linking the user to target.
func (s *FavoriteService) Remove(ctx context.Context, userID uint, target model.FavoriteTarget) error {
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		favorite, err := tx.Favorites.FindFirst(ctx, userID, target)
		if err != nil {
			return err
		}
		return tx.Favorites.Delete(ctx, favorite.ID)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFoundError(fmt.Sprintf("Favorite %s not found", target.Kind), true, nil)
	}
	if err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

func lookupTargetName(ctx context.Context, tx *repository.Repositories, target model.FavoriteTarget) (string, error) {
	switch target.Kind {
	case model.FavoriteKindPlanet:
		planet, err := tx.Planets.GetByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		return planet.Name, nil
	case model.FavoriteKindCharacter:
		character, err := tx.Characters.GetByID(ctx, target.ID)
		if err != nil {
			return "", err
		}
		return character.Name, nil
	default:
		return "", model.ErrInvalidFavoriteTarget
	}
}

func (s *FavoriteService) notify(ctx context.Context, payload job.FavoriteAddedPayload) {
	if s.jobs == nil {
		return
	}

	log := loggerFrom(ctx, s.logger)

	task, err := job.NewFavoriteAddedTask(payload)
	if err != nil {
		log.Error().Err(err).Msg("failed to build favorite added task")
		return
	}

	info, err := s.jobs.Enqueue(task)
	if err != nil {
		log.Error().Err(err).Uint("user_id", payload.UserID).Msg("failed to enqueue favorite added task")
		return
	}

	log.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued favorite added task")
}
