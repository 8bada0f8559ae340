package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/model"
	"github.com/deppfellow/starwars-api/internal/repository"
	"github.com/deppfellow/starwars-api/internal/testutil"
)

func newRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	return repository.NewRepositories(testutil.NewServer(t))
}

func TestCatalogRepositories(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	t.Run("list is ordered by id", func(t *testing.T) {
		users, err := repos.Users.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 3)
		assert.Equal(t, []string{"luke", "leia", "han"}, []string{users[0].Username, users[1].Username, users[2].Username})

		planets, err := repos.Planets.List(ctx)
		require.NoError(t, err)
		assert.Len(t, planets, 3)

		characters, err := repos.Characters.List(ctx)
		require.NoError(t, err)
		assert.Len(t, characters, 3)
	})

	t.Run("get by id", func(t *testing.T) {
		c, err := repos.Characters.GetByID(ctx, testutil.CharacterVader)
		require.NoError(t, err)
		assert.Equal(t, "Darth Vader", c.Name)
	})

	t.Run("miss is tagged with the table", func(t *testing.T) {
		_, err := repos.Planets.GetByID(ctx, testutil.MissingID)
		require.Error(t, err)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
		assert.Contains(t, err.Error(), "table:planets:")
	})

	t.Run("exists", func(t *testing.T) {
		ok, err := repos.Users.Exists(ctx, testutil.UserHan)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repos.Users.Exists(ctx, testutil.MissingID)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestFavoriteRepository(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	t.Run("list by user", func(t *testing.T) {
		favs, err := repos.Favorites.ListByUser(ctx, testutil.UserLuke)
		require.NoError(t, err)
		require.Len(t, favs, 2)
		assert.Equal(t, model.PlanetTarget(testutil.PlanetTatooine), favs[0].Target)
		assert.Equal(t, model.CharacterTarget(testutil.CharacterR2D2), favs[1].Target)

		favs, err = repos.Favorites.ListByUser(ctx, testutil.UserHan)
		require.NoError(t, err)
		assert.NotNil(t, favs)
		assert.Empty(t, favs)
	})

	t.Run("duplicates are kept and the oldest is found first", func(t *testing.T) {
		target := model.PlanetTarget(testutil.PlanetHoth)

		first, err := repos.Favorites.Create(ctx, testutil.UserHan, target)
		require.NoError(t, err)
		second, err := repos.Favorites.Create(ctx, testutil.UserHan, target)
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)

		found, err := repos.Favorites.FindFirst(ctx, testutil.UserHan, target)
		require.NoError(t, err)
		assert.Equal(t, first.ID, found.ID)

		require.NoError(t, repos.Favorites.Delete(ctx, found.ID))

		found, err = repos.Favorites.FindFirst(ctx, testutil.UserHan, target)
		require.NoError(t, err)
		assert.Equal(t, second.ID, found.ID)
	})

	t.Run("find first miss", func(t *testing.T) {
		_, err := repos.Favorites.FindFirst(ctx, testutil.UserLeia, model.CharacterTarget(testutil.CharacterLuke))
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("delete miss", func(t *testing.T) {
		err := repos.Favorites.Delete(ctx, testutil.MissingID)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	repos := newRepos(t)

	boom := errors.New("boom")
	err := repos.Transaction(ctx, func(tx *repository.Repositories) error {
		_, err := tx.Favorites.Create(ctx, testutil.UserLeia, model.CharacterTarget(testutil.CharacterVader))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = repos.Favorites.FindFirst(ctx, testutil.UserLeia, model.CharacterTarget(testutil.CharacterVader))
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
