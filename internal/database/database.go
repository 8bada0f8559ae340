// Package database establishes the connection to the relational store.
//
// It opens a GORM handle on one of two drivers:
//   - PostgreSQL, when DATABASE_URL is set. The pgx driver is configured
//     directly so its tracers (New Relic nrpgx5, pgx tracelog + zerolog in
//     the local env) are attached, then handed to GORM through pgx's stdlib.
//   - SQLite, otherwise, using a local file.
//
// It also owns schema migrations and the sample data seed.
package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	pgxzero "github.com/jackc/pgx-zerolog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/newrelic/go-agent/v3/integrations/nrpgx5"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/deppfellow/starwars-api/internal/config"
	loggerConfig "github.com/deppfellow/starwars-api/internal/logger"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// DatabasePingTimeout is how many seconds to wait for the first ping.
const DatabasePingTimeout = 10

// Database wraps the GORM handle and a logger.
type Database struct {
	DB      *gorm.DB
	dialect string
	log     *zerolog.Logger
}

// multiTracer chains pgx tracers: pgx accepts a single Tracer in ConnConfig,
// but New Relic and local SQL logging may both be wanted.
type multiTracer struct {
	tracers []any
}

func (mt *multiTracer) TraceQueryStart(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryStart(context.Context, *pgx.Conn, pgx.TraceQueryStartData) context.Context
		}); ok {
			ctx = t.TraceQueryStart(ctx, conn, data)
		}
	}
	return ctx
}

func (mt *multiTracer) TraceQueryEnd(ctx context.Context, conn *pgx.Conn, data pgx.TraceQueryEndData) {
	for _, tracer := range mt.tracers {
		if t, ok := tracer.(interface {
			TraceQueryEnd(context.Context, *pgx.Conn, pgx.TraceQueryEndData)
		}); ok {
			t.TraceQueryEnd(ctx, conn, data)
		}
	}
}

// New opens the configured store, applies pool settings and pings it.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	gormConfig := &gorm.Config{
		Logger: NewGormLogger(*logger, cfg.Observability.Logging.SlowQueryThreshold, cfg.Primary.Env == "local"),
	}

	var (
		db      *gorm.DB
		dialect string
		err     error
	)

	if cfg.Database.UsesPostgres() {
		dialect = DialectPostgres
		db, err = openPostgres(cfg, logger, loggerService, gormConfig)
	} else {
		dialect = DialectSQLite
		db, err = gorm.Open(sqlite.Open(SQLiteDSN(cfg.Database.SQLitePath)), gormConfig)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", dialect, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if dialect == DialectSQLite {
		// SQLite serializes writers anyway; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)
		sqlDB.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleTime) * time.Second)
	}

	database := &Database{
		DB:      db,
		dialect: dialect,
		log:     logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = database.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("dialect", dialect).Msg("connected to the database")

	return database, nil
}

// openPostgres parses the URL with pgx so tracers can be attached, then
// wraps the resulting *sql.DB in GORM's postgres dialector.
func openPostgres(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService, gormConfig *gorm.Config) (*gorm.DB, error) {
	connConfig, err := pgx.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %w", err)
	}

	if loggerService.GetApplication() != nil {
		connConfig.Tracer = nrpgx5.NewTracer()
	}

	// Local env only: every statement is logged.
	if cfg.Primary.Env == "local" {
		globalLevel := logger.GetLevel()
		localTracer := &tracelog.TraceLog{
			Logger:   pgxzero.NewLogger(loggerConfig.NewPgxLogger(globalLevel)),
			LogLevel: tracelog.LogLevel(loggerConfig.GetPgxTraceLogLevel(globalLevel)),
		}

		if connConfig.Tracer != nil {
			connConfig.Tracer = &multiTracer{
				tracers: []any{connConfig.Tracer, localTracer},
			}
		} else {
			connConfig.Tracer = localTracer
		}
	}

	sqlDB := stdlib.OpenDB(*connConfig)

	return gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormConfig)
}

// SQLiteDSN turns a file path (or file: URI) into a DSN with foreign keys enforced.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

// Dialect returns "postgres" or "sqlite".
func (db *Database) Dialect() string {
	return db.dialect
}

// Ping checks the underlying connection.
func (db *Database) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool.
func (db *Database) Close() error {
	db.log.Info().Msg("closing database connection pool")

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
