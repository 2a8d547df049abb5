package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/veyrascripts/gallery/internal/catalog"
	"github.com/veyrascripts/gallery/internal/colors"
	"github.com/veyrascripts/gallery/internal/config"
	"github.com/veyrascripts/gallery/internal/events"
	"github.com/veyrascripts/gallery/internal/storage"
	"github.com/veyrascripts/gallery/internal/storage/bucket"
	"github.com/veyrascripts/gallery/internal/storage/local"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	var toS3 bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSONL snapshot of every script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			return export(cmd.Context(), cfg, toS3)
		},
	}
	cmd.Flags().BoolVar(&toS3, "s3", false, "upload the snapshot to EXPORT_S3_BUCKET instead of EXPORT_DIR")
	return cmd
}

func export(ctx context.Context, cfg config.Config, toS3 bool) error {
	files, err := exportDestination(ctx, cfg, toS3)
	if err != nil {
		return err
	}

	scriptsService, closeDB, err := openScriptsService(ctx, cfg, nil, &events.NoopPublisher{})
	if err != nil {
		return err
	}
	defer closeDB()

	name, err := catalog.Snapshot(ctx, scriptsService, files, time.Now())
	if err != nil {
		return err
	}
	log.Printf("[%v] %v", colors.Created("exported"), name)
	return nil
}

func exportDestination(ctx context.Context, cfg config.Config, toS3 bool) (storage.FilesStorage, error) {
	if !toS3 {
		return local.NewLocalFilesStorage(cfg.ExportDir, exportExtension), nil
	}

	if cfg.ExportS3.Bucket == "" {
		return nil, errors.New("--s3 requires EXPORT_S3_BUCKET")
	}
	client, err := bucket.NewClient(ctx, cfg.ExportS3.Region, cfg.ExportS3.Endpoint)
	if err != nil {
		return nil, err
	}
	return bucket.NewBucketFilesStorage(client, cfg.ExportS3.Bucket, exportPrefix, exportExtension), nil
}
