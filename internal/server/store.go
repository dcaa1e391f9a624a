package server

import (
	"context"
	"fmt"
	"log"

	"cloud.google.com/go/storage"
	"github.com/shinyyama/message-board/internal/config"
	"github.com/shinyyama/message-board/internal/db"
	"github.com/shinyyama/message-board/internal/repository"
	"google.golang.org/api/option"
)

// OpenRepository builds the message store selected by STORE_BACKEND. The
// returned close func releases backend connections.
func OpenRepository(ctx context.Context, cfg *config.Config) (repository.MessageRepository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StoreBackend {
	case config.BackendMemory:
		return repository.NewMemoryRepository(), noop, nil
	case config.BackendMySQL:
		conn, err := db.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect db: %w", err)
		}
		repo := repository.NewGormRepository(conn)
		if err := repo.Migrate(); err != nil {
			log.Printf("auto migrate error: %v", err)
		}
		sqlDB, err := conn.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("sql db: %w", err)
		}
		return repo, sqlDB.Close, nil
	case config.BackendGCS:
		var opts []option.ClientOption
		if cfg.GoogleCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.GoogleCredentialsFile))
		}
		client, err := storage.NewClient(ctx, opts...)
		if err != nil {
			return nil, nil, fmt.Errorf("init storage: %w", err)
		}
		return repository.NewGCSRepository(client, cfg.StorageBucket, cfg.StorageObject), client.Close, nil
	case config.BackendFile, "":
		return repository.NewFileRepository(cfg.DataFile), noop, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
