// Package repository handles all interactions with the database.
//
// It holds the GORM queries that fetch and persist rows, abstracting
// storage away from the service layer. Misses are returned as
// gorm.ErrRecordNotFound wrapped with a "table:<name>:" prefix so
// sqlerr.HandleError can name the missing entity.
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	db *gorm.DB

	Users      *UserRepository
	Characters *CharacterRepository
	Planets    *PlanetRepository
	Favorites  *FavoriteRepository
}

// NewRepositories constructs the repository container on the server's database.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.DB)
}

// New builds every repository on db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		db:         db,
		Users:      NewUserRepository(db),
		Characters: NewCharacterRepository(db),
		Planets:    NewPlanetRepository(db),
		Favorites:  NewFavoriteRepository(db),
	}
}

// Transaction runs fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
