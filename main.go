package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lifetrack/lifetrack-be/internal/api"
	"github.com/lifetrack/lifetrack-be/internal/auth"
	"github.com/lifetrack/lifetrack-be/internal/config"
	"github.com/lifetrack/lifetrack-be/internal/database"
	"github.com/lifetrack/lifetrack-be/internal/logger"
	"github.com/lifetrack/lifetrack-be/internal/monitoring"
	"github.com/lifetrack/lifetrack-be/internal/services"
	"github.com/lifetrack/lifetrack-be/internal/storage"
	"github.com/lifetrack/lifetrack-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up the object storage client, if configured
	var store *storage.Client
	if cfg.Storage.Endpoint != "" {
		store, err = storage.New(cfg.Storage)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize storage client")
		}
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	eventService := services.NewEventService(db, hub)
	userService := services.NewUserService(db, eventService)
	taskService := services.NewTaskService(db)
	kanbanService := services.NewKanbanService(db)
	healthService := services.NewHealthService(db)

	// Set up and run the background stats updater
	statUpdater := monitoring.NewStatUpdater(eventService)
	go statUpdater.Run()

	// Set up and run the maintenance janitor
	janitor := monitoring.NewJanitor(eventService, cfg.CleanupSchedule, cfg.EventRetentionDays)
	if err := janitor.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start janitor")
	}

	// Set up router
	router := api.NewRouter(api.RouterDeps{
		Tokens:         tokens,
		UserService:    userService,
		TaskService:    taskService,
		KanbanService:  kanbanService,
		HealthService:  healthService,
		EventService:   eventService,
		Storage:        store,
		Hub:            hub,
		Stats:          statUpdater,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	statUpdater.Stop()
	janitor.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
