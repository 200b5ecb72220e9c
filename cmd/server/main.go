package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/limitless-llc/checkout-relay/internal/config"
	"github.com/limitless-llc/checkout-relay/internal/dedup"
	"github.com/limitless-llc/checkout-relay/internal/handlers"
	"github.com/limitless-llc/checkout-relay/internal/mail"
	"github.com/limitless-llc/checkout-relay/internal/service"
	"github.com/limitless-llc/checkout-relay/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting checkout relay server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
		"mail_api", cfg.Mail.APIURL,
		"allowed_origins", cfg.CORS.AllowedOrigins,
	)

	// Wire the pipeline: mail client, duplicate detector, checkout service
	mailClient := mail.NewClient(cfg.Mail)
	detector := dedup.NewDetector()
	checkoutService := service.NewCheckoutService(mailClient, detector, log)

	// Initialize handlers and router
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, log)
	r := handlers.NewRouter(cfg, checkoutHandler, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
