package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"device-checkin-web/internal/audit"
	"device-checkin-web/internal/backend"
	"device-checkin-web/internal/config"
	"device-checkin-web/internal/handler"
	"device-checkin-web/internal/router"
	"device-checkin-web/internal/session"
)

func main() {
	// A local .env is optional; the environment wins
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := log.Default()

	// Initialize the backend REST client
	client := backend.New(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	}, logger)

	// Initialize the audit recorder with its worker
	recorder := audit.NewRecorder(client, audit.Config{
		QueueSize:   cfg.Audit.QueueSize,
		PostTimeout: cfg.Audit.PostTimeout,
	}, logger)

	// Initialize the session manager
	sessions := session.NewManager([]byte(cfg.Session.Secret))

	// Initialize the page handler
	h := handler.NewHandler(client, recorder, sessions, cfg, logger)

	// Setup router with the middleware chain
	r := router.NewRouter(h, sessions, cfg, logger)

	// Configure server with security settings
	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	// Channel to listen for interrupt signal to gracefully shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %d, backend %s", cfg.Port, cfg.Backend.BaseURL)
		log.Printf("Security: Rate limit=%d RPS, Burst=%d, Timeout=%v",
			cfg.Security.RateLimitRPS,
			cfg.Security.RateLimitBurst,
			cfg.Security.RequestTimeout,
		)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until we receive a signal
	<-done
	log.Println("Server is shutting down...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Security.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	} else {
		log.Println("Server exited gracefully")
	}

	// Drain pending audit events before exit
	recorder.Close()
}
