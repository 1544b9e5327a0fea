package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"contapf-server/config"
	"contapf-server/logging"
	"contapf-server/repository"
	"contapf-server/routes"
	"contapf-server/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logging.InitLog(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}

	// Load account types and optional seed fixtures
	configLoader := config.NewConfigLoader(cfg.ConfigDir)
	if err := configLoader.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config from %s: %v", cfg.ConfigDir, err)
	}

	seed := configLoader.GetSeedAccounts()
	if seed == nil {
		seed = repository.DefaultSeed()
	}

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(seed)
	log.Infof("Account repository seeded with %d accounts", accountRepo.Count())

	qrService := services.NewAccountQRService(cfg.QRBaseURL)

	// Setup routes
	router := routes.SetupRoutes(accountRepo, configLoader, qrService, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server
	go func() {
		log.Infof("Server starting on port :%s (%s)", cfg.Port, cfg.Environment)
		log.Infof("API Base URL: http://localhost:%s/api/accounts", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
