package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shayrooms/hotel-booking-backend/internal/app"
	"github.com/shayrooms/hotel-booking-backend/internal/config"
	"github.com/shayrooms/hotel-booking-backend/internal/db"
	"github.com/shayrooms/hotel-booking-backend/internal/event"
	"github.com/shayrooms/hotel-booking-backend/internal/pkg/storage"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Connect DB
	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	// Local store for invoice PDFs and room images
	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}

	// Wire modules
	container, err := app.NewContainer(cfg, pool, store)
	if err != nil {
		log.Fatalf("failed to init application: %v", err)
	}

	// Booking event consumer; optional, the API works fine without a broker.
	if cfg.RabbitMQURL != "" {
		go func() {
			if err := event.StartBookingConsumer(cfg.RabbitMQURL); err != nil {
				log.Printf("booking consumer stopped: %v", err)
			}
		}()
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	// Run server in separate goroutine
	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Wait for Ctrl+C
	<-ctx.Done()
	log.Println("shutdown signal received")

	// Create a shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server first so no new side effects are queued, then let
	// the dispatcher drain pending invoice and email jobs.
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}
	container.Dispatcher.Shutdown(shutdownCtx)

	log.Println("server exited gracefully")
}
