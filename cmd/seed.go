package main

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veyrascripts/gallery/internal/catalog"
	"github.com/veyrascripts/gallery/internal/config"
	"github.com/veyrascripts/gallery/internal/storage"
	"github.com/veyrascripts/gallery/internal/storage/bucket"
	"github.com/veyrascripts/gallery/internal/storage/local"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var fromS3 bool

	cmd := &cobra.Command{
		Use:   "seed <file.toml>",
		Short: "Create or overwrite scripts from a TOML catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.envFile)
			if err != nil {
				return err
			}
			return seed(cmd.Context(), cfg, args[0], fromS3)
		},
	}
	cmd.Flags().BoolVar(&fromS3, "s3", false, "read the catalog from the export bucket instead of the local disk")
	return cmd
}

func seed(ctx context.Context, cfg config.Config, path string, fromS3 bool) error {
	files, name, err := seedSource(ctx, cfg, path, fromS3)
	if err != nil {
		return err
	}

	r, err := files.Open(ctx, name)
	if err != nil {
		return err
	}
	defer r.Close()

	scripts, err := catalog.DecodeTOML(r)
	if err != nil {
		return err
	}

	publisher, err := cliPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	scriptsService, closeDB, err := openScriptsService(ctx, cfg, nil, publisher)
	if err != nil {
		return err
	}
	defer closeDB()

	_, _, err = catalog.Seed(ctx, scriptsService, scripts)
	return err
}

func seedSource(ctx context.Context, cfg config.Config, path string, fromS3 bool) (storage.FilesStorage, string, error) {
	if !fromS3 {
		return local.NewLocalFilesStorage(filepath.Dir(path), ""), filepath.Base(path), nil
	}

	if cfg.ExportS3.Bucket == "" {
		return nil, "", errors.New("--s3 requires EXPORT_S3_BUCKET")
	}
	client, err := bucket.NewClient(ctx, cfg.ExportS3.Region, cfg.ExportS3.Endpoint)
	if err != nil {
		return nil, "", err
	}
	return bucket.NewBucketFilesStorage(client, cfg.ExportS3.Bucket, "", ""), path, nil
}
