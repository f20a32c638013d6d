// Package cmd holds the fundboard subcommands.
package cmd

import (
	"context"
	"fmt"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"

	"github.com/epeers/fundboard/config"
	"github.com/epeers/fundboard/internal/cache"
	"github.com/epeers/fundboard/internal/database"
	"github.com/epeers/fundboard/internal/repository"
	"github.com/epeers/fundboard/internal/services"
)

// Register the subcommands.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "server")

	c.Register(&ingestCmd{}, "data")
	c.Register(&showCmd{}, "data")
}

// openStore connects the blob backend selected by the configuration. The
// returned func releases it.
func openStore(ctx context.Context, cfg *config.Config) (repository.BlobRepository, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresBlobRepository(db.Pool), db.Close, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewSQLiteBlobRepository(db), func() { db.Close() }, nil

	case config.BackendFile:
		return repository.NewFileBlobRepository(cfg.DataDir), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}

// openService loads the configuration and wires a DocumentService on top of
// the configured store.
func openService(ctx context.Context) (*services.DocumentService, *config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	log.SetLevel(cfg.LogLevel)

	blobs, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	svc := services.NewDocumentService(blobs, cache.NewDocumentCache(cfg.CacheTTL), cfg.DocumentKey)
	return svc, cfg, closeStore, nil
}
