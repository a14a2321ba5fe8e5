package database

import (
	"context"
	"log"

	"github.com/Dafin1723/fikri-production/internal/config"
)

// Connect opens the configured PostgreSQL database and applies pending
// migrations. With no DATABASE_URL and EMBEDDED_DATABASE=true an embedded
// server is started first; the caller must Stop it after closing the client.
func Connect(ctx context.Context, cfg *config.Config) (*DatabaseClient, *EmbeddedServer, error) {
	dsn := cfg.DatabaseURL

	var embedded *EmbeddedServer
	if dsn == "" && cfg.EmbeddedDatabase {
		var err error
		embedded, err = StartEmbedded()
		if err != nil {
			return nil, nil, err
		}
		dsn = embedded.DSN()
	}

	stopEmbedded := func() {
		if embedded == nil {
			return
		}
		if err := embedded.Stop(); err != nil {
			log.Printf("Warning: failed to stop embedded database: %v", err)
		}
	}

	client, err := NewDatabaseClient(dsn)
	if err != nil {
		stopEmbedded()
		return nil, nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		client.Close()
		stopEmbedded()
		return nil, nil, err
	}
	log.Println("Migrations completed successfully")

	return client, embedded, nil
}
