package main

import (
	"context"
	"fmt"

	"github.com/glucoscope/glucoscope/internal/objstore"
	"github.com/glucoscope/glucoscope/internal/observability"
	"github.com/glucoscope/glucoscope/internal/platform"
	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/config"
)

// openStore builds the configured record store. The returned func releases
// any connections it holds.
func openStore(ctx context.Context, cfg *config.Config, metrics *observability.Metrics) (store.Store, func(), error) {
	var (
		st      store.Store
		closeFn = func() {}
	)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := platform.OpenPostgres(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		st = store.NewPostgres(db)
		closeFn = func() { db.Close() }

	case config.BackendBlob:
		client, closeClient, err := openObjectStore(ctx, cfg.Blob)
		if err != nil {
			return nil, nil, err
		}
		st = store.NewBlob(client)
		closeFn = closeClient

	default:
		st = store.NewMemory()
	}

	// Memory already serves reads from a map.
	if cfg.Store.CacheSize > 0 && cfg.Store.Backend != config.BackendMemory {
		st = store.NewCached(st, cfg.Store.CacheSize, metrics)
	}
	return st, closeFn, nil
}

func openObjectStore(ctx context.Context, cfg config.BlobConfig) (objstore.Client, func(), error) {
	switch cfg.Provider {
	case config.ProviderS3:
		c, err := objstore.NewS3(ctx, objstore.S3Config{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			Endpoint:  cfg.Endpoint,
			AccessKey: cfg.AccessKey,
			SecretKey: cfg.SecretKey,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create s3 client: %w", err)
		}
		return c, func() {}, nil

	case config.ProviderGCS:
		c, err := objstore.NewGCS(ctx, cfg.Bucket)
		if err != nil {
			return nil, nil, fmt.Errorf("create gcs client: %w", err)
		}
		return c, func() { c.Close() }, nil

	default:
		return objstore.NewLocal(cfg.Dir), func() {}, nil
	}
}
