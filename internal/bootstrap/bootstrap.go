// Package bootstrap opens the record store and upload store selected by
// configuration.
package bootstrap

import (
	"context"
	"fmt"

	"gellies-store/internal/config"
	"gellies-store/internal/database"
	"gellies-store/internal/repository"
	"gellies-store/internal/upload"

	"github.com/rs/zerolog"
)

// Store is an open record store.
type Store struct {
	*repository.Set
	Driver string
	close  func(ctx context.Context) error
}

// Close releases the underlying connection.
func (s *Store) Close(ctx context.Context) error {
	return s.close(ctx)
}

// OpenStore connects to the configured backend, creates its schema or
// indexes, and returns the repositories bound to it.
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &Store{
			Set:    repository.NewPostgresSet(pool, logger),
			Driver: config.StorePostgres,
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case config.StoreMongo:
		client, db, err := database.NewMongoClient(ctx, cfg.Mongo, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize mongodb: %w", err)
		}
		if err := database.MigrateMongo(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, fmt.Errorf("failed to create mongodb indexes: %w", err)
		}
		return &Store{
			Set:    repository.NewMongoSet(db, logger),
			Driver: config.StoreMongo,
			close:  client.Disconnect,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// Uploads is an upload store plus the directory to serve statically, empty
// when files are not on local disk.
type Uploads struct {
	upload.Store
	ServeDir string
}

// OpenUploads creates the configured upload store. If the S3 store cannot be
// initialised it falls back to the local directory.
func OpenUploads(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Uploads, error) {
	if cfg.Upload.Driver == config.UploadS3 {
		store, err := upload.NewS3Store(ctx, upload.S3Options{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Prefix:          cfg.S3.Prefix,
			Endpoint:        cfg.S3.Endpoint,
			PublicURL:       cfg.S3.PublicURL,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		}, logger)
		if err == nil {
			return &Uploads{Store: store}, nil
		}
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 upload store, falling back to local file system")
	}

	store, err := upload.NewLocalStore(cfg.Upload.Dir, cfg.Upload.URLPrefix, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize upload store: %w", err)
	}

	return &Uploads{Store: store, ServeDir: cfg.Upload.Dir}, nil
}
