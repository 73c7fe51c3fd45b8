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

	"github.com/ecxhq/identity-be/internal/api"
	"github.com/ecxhq/identity-be/internal/auth"
	"github.com/ecxhq/identity-be/internal/config"
	"github.com/ecxhq/identity-be/internal/database"
	"github.com/ecxhq/identity-be/internal/logger"
	"github.com/ecxhq/identity-be/internal/monitoring"
	"github.com/ecxhq/identity-be/internal/services"
	"github.com/ecxhq/identity-be/internal/store"
	"github.com/ecxhq/identity-be/internal/websocket"
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

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up token signing
	tokens := auth.NewTokenIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	// Set up services
	accounts := store.NewSQLiteStore(db)
	eventService := services.NewEventService(db, hub)
	logService := services.NewLogService(db)
	accountService := services.NewAccountService(accounts, tokens, eventService)

	// Set up and run the background retention job
	retention := monitoring.NewRetention(logService, eventService, cfg.LogRetentionDays)
	go retention.Run()

	// Set up router
	router := api.NewRouter(api.Deps{
		Hub:            hub,
		Accounts:       accounts,
		AccountService: accountService,
		EventService:   eventService,
		LogService:     logService,
		Tokens:         tokens,
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

	retention.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
