package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/model"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// ListByUser returns the user's favorites ordered by id.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]model.Favorite, error) {
	var records []model.FavoriteRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("table:favorites: user %d: %w", userID, err)
	}

	favorites := make([]model.Favorite, 0, len(records))
	for _, record := range records {
		f, err := record.Favorite()
		if err != nil {
			return nil, err
		}
		favorites = append(favorites, f)
	}
	return favorites, nil
}

// Create stores a new favorite. Duplicates are allowed.
func (r *FavoriteRepository) Create(ctx context.Context, userID uint, target model.FavoriteTarget) (*model.Favorite, error) {
	record, err := model.NewFavoriteRecord(userID, target)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, fmt.Errorf("table:favorites: create: %w", err)
	}

	f, err := record.Favorite()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindFirst returns the oldest favorite linking userID to target.
func (r *FavoriteRepository) FindFirst(ctx context.Context, userID uint, target model.FavoriteTarget) (*model.Favorite, error) {
	column, err := model.TargetColumn(target.Kind)
	if err != nil {
		return nil, err
	}

	var record model.FavoriteRecord
	err = r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where(column+" = ?", target.ID).
		Order("id").
		First(&record).Error
	if err != nil {
		return nil, fmt.Errorf("table:favorites: user %d %s %d: %w", userID, target.Kind, target.ID, err)
	}

	f, err := record.Favorite()
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Delete removes one favorite by id.
func (r *FavoriteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.FavoriteRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("table:favorites: delete %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("table:favorites: delete %d: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
