// Package testutil builds throwaway databases and servers for tests.
//
// Every database is a private in-memory SQLite store, migrated from the
// models and loaded with the YAML fixtures under fixtures/.
package testutil

import (
	"context"
	"embed"
	"fmt"
	"testing"

	"github.com/go-testfixtures/testfixtures/v3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/config"
	"github.com/deppfellow/starwars-api/internal/database"
	loggerPkg "github.com/deppfellow/starwars-api/internal/logger"
	"github.com/deppfellow/starwars-api/internal/server"
)

//go:embed fixtures/*.yml
var fixtures embed.FS

// Fixture ids, mirroring fixtures/*.yml.
const (
	UserLuke = 1
	UserLeia = 2
	UserHan  = 3

	CharacterLuke  = 1
	CharacterR2D2  = 2
	CharacterVader = 3

	PlanetTatooine = 1
	PlanetAlderaan = 2
	PlanetHoth     = 3

	// MissingID is never used by a fixture row.
	MissingID = 999
)

// NewConfig returns the default config pointed at a fresh in-memory SQLite store.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Primary.Env = "test"
	cfg.Database.SQLitePath = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	cfg.Server.RateLimit = 1000
	cfg.Server.RateLimitBurst = 1000
	cfg.Observability.Environment = "test"
	cfg.Observability.Logging.Level = "error"

	return cfg
}

// NewDatabase opens cfg's store, migrates it and loads the fixtures.
// The connection is closed when the test ends.
func NewDatabase(t *testing.T, cfg *config.Config) *database.Database {
	t.Helper()

	logger := zerolog.Nop()

	db, err := database.New(cfg, &logger, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(context.Background(), &logger, cfg, db))
	LoadFixtures(t, db)

	return db
}

// LoadFixtures replaces the content of every table with the fixture rows.
func LoadFixtures(t *testing.T, db *database.Database) {
	t.Helper()

	sqlDB, err := db.DB.DB()
	require.NoError(t, err)

	loader, err := testfixtures.New(
		testfixtures.Database(sqlDB),
		testfixtures.Dialect("sqlite"),
		testfixtures.FS(fixtures),
		testfixtures.Directory("fixtures"),
		testfixtures.DangerousSkipTestDatabaseCheck(),
	)
	require.NoError(t, err)
	require.NoError(t, loader.Load())
}

// NewServer returns a Server backed by a fixture database, without Redis.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	cfg := NewConfig(t)
	logger := zerolog.Nop()

	return &server.Server{
		Config:        cfg,
		Logger:        &logger,
		LoggerService: &loggerPkg.LoggerService{},
		DB:            NewDatabase(t, cfg),
	}
}
