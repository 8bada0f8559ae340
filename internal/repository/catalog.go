package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/model"
)

// catalog implements the read-only queries shared by the catalog tables.
type catalog[T any] struct {
	db    *gorm.DB
	table string
}

// List returns every row ordered by id.
func (c catalog[T]) List(ctx context.Context) ([]T, error) {
	rows := make([]T, 0)
	if err := c.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("table:%s: list: %w", c.table, err)
	}
	return rows, nil
}

// GetByID returns one row, or a wrapped gorm.ErrRecordNotFound.
func (c catalog[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var row T
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, fmt.Errorf("table:%s: id %d: %w", c.table, id, err)
	}
	return &row, nil
}

// Exists reports whether a row with id is present.
func (c catalog[T]) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("table:%s: id %d: %w", c.table, id, err)
	}
	return count > 0, nil
}

type UserRepository struct {
	catalog[model.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{catalog[model.User]{db: db, table: "users"}}
}

type CharacterRepository struct {
	catalog[model.Character]
}

func NewCharacterRepository(db *gorm.DB) *CharacterRepository {
	return &CharacterRepository{catalog[model.Character]{db: db, table: "characters"}}
}

type PlanetRepository struct {
	catalog[model.Planet]
}

func NewPlanetRepository(db *gorm.DB) *PlanetRepository {
	return &PlanetRepository{catalog[model.Planet]{db: db, table: "planets"}}
}
