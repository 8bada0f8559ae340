package database_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/database"
	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/testutil"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "/tmp/test.db?_foreign_keys=on", database.SQLiteDSN("/tmp/test.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", database.SQLiteDSN("file:x?mode=memory"))
}

func TestNewSQLite(t *testing.T) {
	cfg := testutil.NewConfig(t)
	logger := zerolog.Nop()

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	defer db.Close()

	assert.Equal(t, database.DialectSQLite, db.Dialect())
	assert.NoError(t, db.Ping(context.Background()))
}

func TestMigrateAndSeed(t *testing.T) {
	ctx := context.Background()
	cfg := testutil.NewConfig(t)
	logger := zerolog.Nop()

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, database.Migrate(ctx, &logger, cfg, db))
	// Migrating an up-to-date schema is a no-op.
	require.NoError(t, database.Migrate(ctx, &logger, cfg, db))

	first, err := database.Seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Users)
	assert.Equal(t, 5, first.Characters)
	assert.Equal(t, 5, first.Planets)

	second, err := database.Seed(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, database.SeedResult{}, second)

	var inactive model.User
	require.NoError(t, db.DB.Where("username = ?", "han").First(&inactive).Error)
	assert.False(t, inactive.IsActive)
}

func TestFavoriteConstraints(t *testing.T) {
	ctx := context.Background()
	cfg := testutil.NewConfig(t)
	db := testutil.NewDatabase(t, cfg)

	planet := uint(testutil.PlanetTatooine)
	character := uint(testutil.CharacterR2D2)

	t.Run("both targets rejected", func(t *testing.T) {
		err := db.DB.WithContext(ctx).Create(&model.FavoriteRecord{
			UserID: testutil.UserLuke, PlanetID: &planet, CharacterID: &character,
		}).Error
		assert.Error(t, err)
	})

	t.Run("no target rejected", func(t *testing.T) {
		err := db.DB.WithContext(ctx).Create(&model.FavoriteRecord{UserID: testutil.UserLuke}).Error
		assert.Error(t, err)
	})

	t.Run("unknown user rejected", func(t *testing.T) {
		err := db.DB.WithContext(ctx).Create(&model.FavoriteRecord{UserID: testutil.MissingID, PlanetID: &planet}).Error
		assert.Error(t, err)
	})

	t.Run("deleting a planet cascades to favorites", func(t *testing.T) {
		require.NoError(t, db.DB.WithContext(ctx).Delete(&model.Planet{}, testutil.PlanetAlderaan).Error)

		var count int64
		require.NoError(t, db.DB.Model(&model.FavoriteRecord{}).Where("planet_id = ?", testutil.PlanetAlderaan).Count(&count).Error)
		assert.Zero(t, count)
	})
}
