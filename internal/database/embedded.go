package database

import (
	"fmt"
	"log"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
)

const (
	embeddedDataPath = "./db_data"
	embeddedPort     = 5433
	embeddedDatabase = "print_orders"
	embeddedUser     = "postgres"
	embeddedPassword = "postgres"
)

// EmbeddedServer is a PostgreSQL process managed by the application, used
// when no external DATABASE_URL is configured.
type EmbeddedServer struct {
	pg   *embeddedpostgres.EmbeddedPostgres
	port uint32
}

func StartEmbedded() (*EmbeddedServer, error) {
	return startEmbedded(embeddedPort, embeddedDataPath, "")
}

// startEmbedded starts a server on port keeping its data in dataPath. An
// empty runtimePath uses the library default.
func startEmbedded(port uint32, dataPath, runtimePath string) (*EmbeddedServer, error) {
	log.Println("Starting embedded PostgreSQL...")

	cfg := embeddedpostgres.DefaultConfig().
		DataPath(dataPath).
		Port(port).
		Database(embeddedDatabase).
		Username(embeddedUser).
		Password(embeddedPassword)
	if runtimePath != "" {
		cfg = cfg.RuntimePath(runtimePath)
	}

	pg := embeddedpostgres.NewDatabase(cfg)
	if err := pg.Start(); err != nil {
		return nil, fmt.Errorf("failed to start embedded database: %w", err)
	}

	log.Printf("Embedded PostgreSQL started on port %d", port)
	return &EmbeddedServer{pg: pg, port: port}, nil
}

func (e *EmbeddedServer) DSN() string {
	return fmt.Sprintf(
		"host=localhost port=%d user=%s password=%s dbname=%s sslmode=disable",
		e.port, embeddedUser, embeddedPassword, embeddedDatabase,
	)
}

func (e *EmbeddedServer) Stop() error {
	log.Println("Stopping embedded PostgreSQL...")
	return e.pg.Stop()
}
