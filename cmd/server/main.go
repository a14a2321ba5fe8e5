package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Dafin1723/fikri-production/internal/config"
	"github.com/Dafin1723/fikri-production/internal/database"
	"github.com/Dafin1723/fikri-production/internal/handlers"
	"github.com/Dafin1723/fikri-production/internal/middleware"
	"github.com/Dafin1723/fikri-production/internal/services"
	"github.com/Dafin1723/fikri-production/internal/supabase"
	"github.com/Dafin1723/fikri-production/internal/uploads"
)

type store interface {
	services.OrderStore
	services.PosterStore
	Close() error
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Storage
	var (
		db       store
		embedded *database.EmbeddedServer
	)
	switch cfg.StorageDriver {
	case "memory":
		log.Println("Warning: using in-memory storage. Orders are lost on restart.")
		db = database.NewMemoryStore()
	default:
		client, server, err := database.Connect(context.Background(), cfg)
		if err != nil {
			log.Fatalf("Failed to initialize database: %v", err)
		}
		db, embedded = client, server
	}

	// File sinks
	attachments, images, err := newSinks(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize file storage: %v", err)
	}

	// Services
	orderService := services.NewOrderService(db, attachments, services.WithLocation(cfg.Location))
	posterService := services.NewPosterService(db, images)

	gate, err := middleware.NewAdminGate(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize admin gate: %v", err)
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Orders:          orderService,
		Posters:         posterService,
		Gate:            gate,
		ShopName:        cfg.ShopName,
		Location:        cfg.Location,
		MaxRequestBytes: cfg.MaxRequestBytes,
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	sig := <-shutdown
	log.Printf("Received signal %v, shutting down", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if err := db.Close(); err != nil {
		log.Printf("Database close error: %v", err)
	}
	if embedded != nil {
		if err := embedded.Stop(); err != nil {
			log.Printf("Embedded database stop error: %v", err)
		}
	}

	log.Println("Shutdown complete")
}

// newSinks returns the attachment and poster image sinks for the
// configured backend.
func newSinks(cfg *config.Config) (uploads.Sink, uploads.Sink, error) {
	if cfg.StorageBackend == "supabase" {
		attachments := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket, "orders")
		images := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket, "posters")
		return attachments, images, nil
	}

	attachments, err := uploads.NewLocalSink(cfg.UploadDir)
	if err != nil {
		return nil, nil, err
	}
	images, err := uploads.NewLocalSink(cfg.PosterDir)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("Storing attachments in %s and poster images in %s", attachments.Dir(), images.Dir())
	return attachments, images, nil
}
