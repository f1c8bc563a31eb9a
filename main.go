package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/devconnect-be/internal/api"
	"github.com/isdelr/devconnect-be/internal/auth"
	"github.com/isdelr/devconnect-be/internal/config"
	"github.com/isdelr/devconnect-be/internal/database"
	"github.com/isdelr/devconnect-be/internal/logger"
	"github.com/isdelr/devconnect-be/internal/monitoring"
	"github.com/isdelr/devconnect-be/internal/services"
	"github.com/isdelr/devconnect-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel)

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

	// Set up services
	userService := services.NewUserService(db)
	profileService := services.NewProfileService(db)
	postService := services.NewPostService(db)

	tokens := auth.NewTokenCodec(cfg.JWTSecret, cfg.JWTExpiry)

	// Set up and run the background maintenance scheduler
	scheduler, err := monitoring.NewScheduler(db, postService, profileService, cfg.MaintenanceCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create maintenance scheduler")
	}
	go scheduler.Run()

	// Set up router
	router := api.NewRouter(api.Dependencies{
		Users:          userService,
		Profiles:       profileService,
		Posts:          postService,
		Tokens:         tokens,
		Hub:            hub,
		Health:         monitoring.NewHealthChecker(db),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("env", cfg.Env).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	scheduler.Stop()
	hub.Stop() // closes open feed connections

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
