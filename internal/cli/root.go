// Package cli is the starwars-api command line: serve (the default),
// migrate and seed.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/starwars-api/internal/config"
	loggerPkg "github.com/deppfellow/starwars-api/internal/logger"
)

// app carries what every command needs, filled in before any command runs.
type app struct {
	cfg           *config.Config
	logger        *zerolog.Logger
	loggerService *loggerPkg.LoggerService
}

func (a *app) load(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	loggerService := loggerPkg.NewLoggerService(cfg.Observability)
	logger := loggerPkg.NewLogger(cfg.Observability, loggerService)

	a.cfg = cfg
	a.logger = &logger
	a.loggerService = loggerService

	return nil
}

// NewCLI builds the root command with every subcommand attached.
func NewCLI() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "starwars-api",
		Short: "Star Wars users, characters, planets and favorites over HTTP.",
		Long: `Serves the Star Wars favorites API.
Without a subcommand it behaves like "serve".
Configuration comes from the environment (DATABASE_URL, PORT, STARWARS_*) or a .env file.`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		PersistentPreRunE:     a.load,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}

	rootCmd.AddCommand(newServeCmd(a))
	rootCmd.AddCommand(newMigrateCmd(a))
	rootCmd.AddCommand(newSeedCmd(a))

	return rootCmd
}

// Execute runs the CLI until it finishes or SIGINT/SIGTERM arrives.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCLI().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
