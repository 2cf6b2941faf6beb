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

	"pdf-book-reader/internal/config"
	"pdf-book-reader/internal/handler"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}
	// Wiring
	container := config.NewContainer()
	cfg := container.GetConfig()
	logger := container.GetLogger()

	// Handlers
	readerHandler := handler.NewReaderHandler(
		container.GetReaderService(),
		cfg.GetMaxFileSize(),
		logger,
	)
	requestLogger := handler.NewRequestLogger(logger)

	// Router
	router := handler.NewRouter(
		readerHandler,
		requestLogger.Middleware,
		cfg.GetAllowedOrigins(),
	)

	server := &http.Server{
		Addr:              ":" + cfg.GetServerPort(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := g.Wait()
	if closeErr := container.GetReaderService().Close(); closeErr != nil {
		logger.Error("Failed to release document", closeErr)
	}
	if err != nil {
		logger.Error("Server stopped with error", err)
		os.Exit(1)
	}

	logger.Info("Server exited")
}
