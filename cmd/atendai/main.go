package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atendai/atendai/internal/api"
	"github.com/atendai/atendai/internal/config"
	"github.com/atendai/atendai/internal/llm"
	"github.com/atendai/atendai/internal/repository"
	"github.com/atendai/atendai/internal/service"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Initialize repositories
	nicheRepo := repository.NewNicheRepository(db)
	convRepo := repository.NewConversationRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Seed the default niche catalog on first boot
	if err := nicheRepo.Seed(); err != nil {
		logger.Fatal("Failed to seed niche catalog", zap.Error(err))
	}

	// AI gateway client; when no key is configured the reply engine falls
	// back to the deterministic template path
	gateway := llm.NewGateway(cfg.Gateway.BaseURL, cfg.Gateway.Timeout)
	if cfg.Gateway.APIKey != "" {
		settings, err := settingsRepo.Get()
		if err != nil {
			logger.Fatal("Failed to load settings", zap.Error(err))
		}
		if settings.APIKey == "" {
			settings.APIKey = cfg.Gateway.APIKey
			if err := settingsRepo.Save(settings); err != nil {
				logger.Fatal("Failed to store gateway API key", zap.Error(err))
			}
		}
	}

	// Initialize the reply pipeline
	machine := service.NewOnboardingMachine(cfg.Chat.SkipPhrases)
	engine := service.NewReplyEngine(gateway, logger)

	chatService := service.NewChatService(
		nicheRepo,
		convRepo,
		settingsRepo,
		machine,
		engine,
		cfg.Chat.TypingDelay,
		logger,
	)

	adminService := service.NewAdminService(
		nicheRepo,
		convRepo,
		settingsRepo,
		gateway,
		cfg.Admin,
	)

	widgetService := service.NewWidgetService(
		nicheRepo,
		settingsRepo,
		chatService,
	)

	// Setup router
	router := api.SetupRouter(adminService, widgetService, api.RouterConfig{
		JWTSecret:    adminService.JWTSecret(),
		AllowOrigins: []string{"*"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting AtendAI server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
