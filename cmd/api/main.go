package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gellies-store/internal/auth"
	"gellies-store/internal/bootstrap"
	"gellies-store/internal/config"
	"gellies-store/internal/handler"
	"gellies-store/internal/middleware"
	"gellies-store/internal/router"
	"gellies-store/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().
		Str("store", cfg.Store.Driver).
		Str("uploads", cfg.Upload.Driver).
		Msg("starting gellies-store API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the record store
	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer closeCancel()
		if err := store.Close(closeCtx); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	// Initialize upload store with local fallback
	uploads, err := bootstrap.OpenUploads(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// Initialize services
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	authService := service.NewAuthService(store.Users, hasher, logger)
	productService := service.NewProductService(store.Products, uploads, logger)
	transactionService := service.NewTransactionService(store.Transactions, store.Products, logger)

	// Initialize HTTP handlers
	opts := handler.Options{ExposeErrors: cfg.Server.ExposeErrors}
	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService, opts, logger),
		Product:     handler.NewProductHandler(productService, cfg.Upload.MaxBytes, opts, logger),
		Transaction: handler.NewTransactionHandler(transactionService, opts, logger),
		Health:      handler.NewHealthHandler(store.Store, logger),
	}

	// Initialize router
	mux := router.New(handlers, router.Options{
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		UploadDir:       uploads.ServeDir,
		UploadURLPrefix: cfg.Upload.URLPrefix,
		Metrics:         middleware.NewMetrics(),
	}, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
