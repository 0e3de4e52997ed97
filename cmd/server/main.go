/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the leave entitlement engine server. Handles
  configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Load override configs from YAML (if -overrides given)
  4. Wire lifecycle service + API handler
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port       HTTP server port (default: 8080)
  -db         SQLite database path (default: leave.db)
              Use ":memory:" for an in-memory database
  -overrides  Path to an override-config YAML file; entries are upserted
              into the store at boot

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexgate/leave-engine/api"
	"github.com/lexgate/leave-engine/factory"
	"github.com/lexgate/leave-engine/leave"
	"github.com/lexgate/leave-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "leave.db", "SQLite database path")
	overridesPath := flag.String("overrides", "", "Override-config YAML file (optional)")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Seed override configs from YAML
	if *overridesPath != "" {
		configs, err := factory.LoadOverrides(*overridesPath)
		if err != nil {
			log.Fatalf("Failed to load override configs: %v", err)
		}
		for _, cfg := range configs {
			if err := store.SaveOverrideConfig(context.Background(), cfg); err != nil {
				log.Fatalf("Failed to save override config for %s: %v", cfg.EmployeeID, err)
			}
		}
		log.Printf("Loaded %d override config(s) from %s", len(configs), *overridesPath)
	}

	// Wire service and router
	service := leave.NewService(store, store, store)
	handler := api.NewHandler(service)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on http://localhost:%d", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
