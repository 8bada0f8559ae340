package service

import (
	"github.com/deppfellow/starwars-api/internal/lib/job"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/server"
)

type Services struct {
	Users      *UserService
	Characters *CharacterService
	Planets    *PlanetService
	Favorites  *FavoriteService
	Job        *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	// A nil *asynq.Client must not become a non-nil Enqueuer.
	var enqueuer job.Enqueuer
	if s.Job != nil {
		enqueuer = s.Job.Client
	}

	return &Services{
		Users:      NewUserService(repos),
		Characters: NewCharacterService(repos),
		Planets:    NewPlanetService(repos),
		Favorites:  NewFavoriteService(s.Logger, repos, enqueuer),
		Job:        s.Job,
	}, nil
}
