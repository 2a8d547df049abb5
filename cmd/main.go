package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/veyrascripts/gallery/internal/config"
	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/repository"
	"github.com/veyrascripts/gallery/internal/repository/postgres"
	"github.com/veyrascripts/gallery/internal/service"
)

type rootOptions struct {
	envFile string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gallery",
		Short:         "Userscript gallery server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	root.AddCommand(newServeCmd(opts), newSeedCmd(opts), newExportCmd(opts))
	return root
}

// openScriptsService connects to the database, migrating it if needed, and
// returns the service along with a function releasing the connection.
func openScriptsService(ctx context.Context, cfg config.Config, views service.ViewInvalidator, publisher events.Publisher) (*service.ScriptsService, func(), error) {
	db, err := repository.InitDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	scriptsService := service.NewScriptsService(postgres.NewPostgresScriptsRepository(db), views, publisher)
	return scriptsService, func() { repository.CloseDB(db) }, nil
}

// cliPublisher forwards command-line mutations to NATS when it is configured.
func cliPublisher(cfg config.Config) (events.Publisher, error) {
	if cfg.NATSURL == "" {
		return &events.NoopPublisher{}, nil
	}
	return events.NewNATSPublisher(cfg.NATSURL)
}
