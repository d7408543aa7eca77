// Package main provides a reference AG-UI HTTP server that exposes the demo
// store via the AG-UI protocol over Server-Sent Events (SSE).
//
// Every client of GET /events receives a STATE_SNAPSHOT followed by
// STATE_DELTA events as the store changes, plus STEP_STARTED / STEP_FINISHED
// around todo loads and CUSTOM events for other actions. It uses only the Go
// standard library for HTTP.
//
// Configuration is via environment variables:
//
//	AGUI_PORT            - Server port (default: 8080)
//	AGUI_LOG_LEVEL       - debug, info, warn or error (default: info)
//	AGUI_ALLOWED_ORIGIN  - CORS origin (default: *)
//	REDUCE_LOAD_DELAY    - Simulated todo backend latency (default: 500ms)
//
// Usage:
//
//	go run ./cmd/aguiserver
//	curl -N localhost:8080/events
//	curl -d '{"type":"todos/add","payload":"buy milk"}' localhost:8080/dispatch
//	curl -d '{"list":"inbox"}' localhost:8080/load
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spetersoncode/reduce/event"
	"github.com/spetersoncode/reduce/internal/demo"
)

func main() {
	// Load configuration
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Create the store and fan its action events out to stream clients
	app := demo.New(demo.SeedLoader(cfg.LoadDelay), logger)
	actions := event.NewBroadcaster()
	go actions.Run(ctx, app.Events)

	mux := NewMux(app, actions, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		<-ctx.Done()

		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("AG-UI server starting on :%s", cfg.Port)
	log.Printf("Events:   GET  http://localhost:%s/events", cfg.Port)
	log.Printf("Dispatch: POST http://localhost:%s/dispatch", cfg.Port)
	log.Printf("Load:     POST http://localhost:%s/load", cfg.Port)
	log.Printf("Health:   GET  http://localhost:%s/health", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}

// NewMux wires the server routes.
func NewMux(app *demo.App, actions *event.Broadcaster, cfg *Config) *http.ServeMux {
	dispatch := NewDispatchHandler(app)

	mux := http.NewServeMux()
	mux.Handle("/events", corsMiddleware(cfg.AllowedOrigin, NewEventsHandler(app, actions)))
	mux.Handle("/dispatch", corsMiddleware(cfg.AllowedOrigin, http.HandlerFunc(dispatch.Dispatch)))
	mux.Handle("/load", corsMiddleware(cfg.AllowedOrigin, http.HandlerFunc(dispatch.Load)))
	mux.HandleFunc("/health", healthHandler)
	return mux
}
