package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/config"
	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/live"
	"github.com/veyrascripts/gallery/internal/service"
	"github.com/veyrascripts/gallery/internal/views"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gallery HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.ListenAddr = listen
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (overrides LISTEN_ADDR)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	node, err := live.NewNode()
	if err != nil {
		return err
	}
	publisher := events.Fanout{node}

	cache := views.NewCache(cfg.ViewCacheTTL)

	if cfg.NATSURL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			node.Close()
			return err
		}
		publisher = append(publisher, natsPublisher)

		if _, err := natsPublisher.Subscribe(refreshOnRemote(ctx, cache, node)); err != nil {
			publisher.Close()
			return err
		}
	}
	defer publisher.Close()

	scriptsService, closeDB, err := openScriptsService(ctx, cfg, cache, publisher)
	if err != nil {
		return err
	}
	defer closeDB()

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: newRouter(cfg, scriptsService, cache, node),
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[%v] listening on %v", colors.Created("http"), cfg.ListenAddr)
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Printf("[%v] shutting down", colors.Removed("http"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// refreshOnRemote applies a mutation made by another process, such as
// `gallery seed`, to this server's cached views and live pages.
func refreshOnRemote(ctx context.Context, cache service.ViewInvalidator, node events.Publisher) func(topic string, event any) {
	return func(topic string, event any) {
		cache.Invalidate(views.Gallery, views.Admin)
		if err := node.Publish(ctx, topic, event); err != nil {
			log.Printf("[%v] relay %s: %v", colors.Warning("events"), topic, err)
		}
	}
}
