package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/joho/godotenv"

	"brewbyte-backend/config"
	"brewbyte-backend/internal/api"
	"brewbyte-backend/internal/db"
	"brewbyte-backend/internal/memory"
	"brewbyte-backend/internal/notify"
	"brewbyte-backend/internal/realtime"
	"brewbyte-backend/internal/session"
	"brewbyte-backend/internal/store"
	"brewbyte-backend/internal/suggest"
)

func main() {
	logger := log.New(os.Stdout, "cafe-backend ", log.LstdFlags)

	// Secrets come from the environment; a .env file is a convenience for
	// local development and its absence is not an error.
	if err := godotenv.Load(); err == nil {
		logger.Println(".env file loaded")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Realtime.APIKey == "" {
		logger.Fatalf("OPENAI_API_KEY must be set; the realtime voice API cannot mint sessions without it")
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	sessions := session.NewManager(appStore, cfg.Session)
	go sessions.Run(ctx)

	memoryClient := memory.NewClient(cfg.Memory)
	if memoryClient == nil {
		logger.Println("memory service not configured; personalization disabled")
	}

	// A typed nil *memory.Client must not become a non-nil interface value.
	var facts suggest.FactsRetriever
	if memoryClient != nil {
		facts = memoryClient
	}
	generator := suggest.NewGenerator(appStore, sessions, facts)

	realtimeClient := realtime.NewClient(cfg.Realtime)

	var webpushOptions *webpush.Options
	var pool *notify.WorkerPool
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notify.NewWorkerPool(cfg.WorkerPool.Size, gormDB, webpushOptions)
		pool.Start(ctx)
		logger.Printf("notification worker pool started (size %d)", cfg.WorkerPool.Size)
	} else {
		logger.Println("VAPID keys not configured; push notifications disabled")
	}

	handler := api.NewHandler(appStore, sessions, generator, realtimeClient, memoryClient, pool, webpushOptions)
	router := api.SetupRouter(handler, cfg.Server)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
