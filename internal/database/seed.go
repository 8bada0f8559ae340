package database

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/model"
)

var seedUsers = []model.User{
	{Email: "luke@rebellion.org", Username: "luke", IsActive: true},
	{Email: "leia@rebellion.org", Username: "leia", IsActive: true},
	{Email: "han@falcon.space", Username: "han", IsActive: false},
}

var seedCharacters = []model.Character{
	{Name: "Luke Skywalker", Gender: "male", BirthYear: "19BBY", Height: "172", Mass: "77", HairColor: "blond", EyeColor: "blue", SkinColor: "fair"},
	{Name: "C-3PO", Gender: "n/a", BirthYear: "112BBY", Height: "167", Mass: "75", HairColor: "n/a", EyeColor: "yellow", SkinColor: "gold"},
	{Name: "R2-D2", Gender: "n/a", BirthYear: "33BBY", Height: "96", Mass: "32", HairColor: "n/a", EyeColor: "red", SkinColor: "white, blue"},
	{Name: "Darth Vader", Gender: "male", BirthYear: "41.9BBY", Height: "202", Mass: "136", HairColor: "none", EyeColor: "yellow", SkinColor: "white"},
	{Name: "Leia Organa", Gender: "female", BirthYear: "19BBY", Height: "150", Mass: "49", HairColor: "brown", EyeColor: "brown", SkinColor: "light"},
}

var seedPlanets = []model.Planet{
	{Name: "Tatooine", Climate: "arid", Terrain: "desert", Population: "200000", Diameter: "10465", Gravity: "1 standard", RotationPeriod: "23", OrbitalPeriod: "304"},
	{Name: "Alderaan", Climate: "temperate", Terrain: "grasslands, mountains", Population: "2000000000", Diameter: "12500", Gravity: "1 standard", RotationPeriod: "24", OrbitalPeriod: "364"},
	{Name: "Yavin IV", Climate: "temperate, tropical", Terrain: "jungle, rainforests", Population: "1000", Diameter: "10200", Gravity: "1 standard", RotationPeriod: "24", OrbitalPeriod: "4818"},
	{Name: "Hoth", Climate: "frozen", Terrain: "tundra, ice caves, mountain ranges", Population: "unknown", Diameter: "7200", Gravity: "1.1 standard", RotationPeriod: "23", OrbitalPeriod: "549"},
	{Name: "Dagobah", Climate: "murky", Terrain: "swamp, jungles", Population: "unknown", Diameter: "8900", Gravity: "N/A", RotationPeriod: "23", OrbitalPeriod: "341"},
}

// SeedResult reports how many rows each table received.
type SeedResult struct {
	Users      int
	Characters int
	Planets    int
}

// Seed fills the catalog tables with sample data. Each table is only
// seeded when it is empty, so running it twice is harmless.
func Seed(ctx context.Context, db *Database) (SeedResult, error) {
	var result SeedResult

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error

		if result.Users, err = seedTable(tx, seedUsers); err != nil {
			return fmt.Errorf("seeding users: %w", err)
		}
		if result.Characters, err = seedTable(tx, seedCharacters); err != nil {
			return fmt.Errorf("seeding characters: %w", err)
		}
		if result.Planets, err = seedTable(tx, seedPlanets); err != nil {
			return fmt.Errorf("seeding planets: %w", err)
		}
		return nil
	})

	return result, err
}

func seedTable[T any](tx *gorm.DB, rows []T) (int, error) {
	var count int64
	if err := tx.Model(new(T)).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	// Copy so the package-level templates never receive generated ids.
	batch := make([]T, len(rows))
	copy(batch, rows)

	if err := tx.Create(&batch).Error; err != nil {
		return 0, err
	}
	return len(batch), nil
}
