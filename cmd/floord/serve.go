package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"restaurant-floor-backend/internal/api"
	"restaurant-floor-backend/internal/db"
	"restaurant-floor-backend/internal/floor"
	"restaurant-floor-backend/internal/persist"
	"restaurant-floor-backend/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(log.New(os.Stdout, "floord ", log.LstdFlags))
	},
}

func serve(logger *log.Logger) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB, cfg.Database.SnapshotKey)
	initial, found, err := appStore.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("failed to load floor snapshot: %w", err)
	}
	floorStore := floor.NewStore(floor.State{})
	if found {
		if _, err := floorStore.Dispatch(floor.LoadState{State: initial}); err != nil {
			return fmt.Errorf("stored floor snapshot is inconsistent: %w", err)
		}
		logger.Printf("floor restored: %d tables, %d walls, %d menu items, %d archived orders",
			len(initial.Tables), len(initial.Walls), len(initial.MenuItems), len(initial.Orders))
	} else {
		logger.Println("no stored floor, starting empty")
	}

	// Every committed change is saved in the background.
	writer := persist.NewWriter(appStore, cfg.Persist.Buffer)
	writer.Start(ctx)
	floorStore.Subscribe(writer.Enqueue)

	router := api.NewRouter(floorStore, appStore, cfg)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Println("Shutdown signal received, stopping services...")
	case err := <-serveErr:
		return fmt.Errorf("HTTP server ListenAndServe: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}

	// Stop the writer, then save the final state synchronously.
	cancel()
	if err := writer.Flush(shutdownCtx, floorStore.Snapshot()); err != nil {
		return fmt.Errorf("failed to save final floor snapshot: %w", err)
	}

	logger.Println("Server gracefully stopped")
	return nil
}
