// main.go
package main

import (
	"context"
	"log"
	"time"

	"driver-montblanc/cmd"
	"driver-montblanc/internal/data/repository"
	"driver-montblanc/internal/gateway"
	"driver-montblanc/internal/wire"
	"driver-montblanc/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Initialize all repositories (in-memory, nothing survives a restart)
	sessionTTL := time.Duration(config.Session.TTLMinutes) * time.Minute
	repos := repository.NewRepository(sessionTTL, logger)

	// Evict expired sessions in the background
	cleanupInterval := time.Duration(config.Session.CleanupMinutes) * time.Minute
	stopCleanup := repos.Session.StartCleanup(cleanupInterval)
	defer stopCleanup()

	// Connect external gateways (Stripe, Telegram, Maps, Gemini)
	gateways := gateway.New(context.Background(), config, logger)
	defer gateways.Close()

	// Wire all dependencies
	app := wire.Wiring(repos, gateways, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
