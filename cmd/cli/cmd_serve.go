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

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/geocode"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/heating"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/telemetry"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/weather"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HeatControl server",
	Long:  `Start the HeatControl server to record temperatures and drive heating decisions.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := configFromContext(cmd.Context())
	if cfg.Server.JWTSecret == "" || cfg.Server.JWTSecret == "change_me_in_production" {
		return errors.New("JWT_SECRET environment variable is not set or has an invalid value")
	}

	dbManager := dbManagerFromContext(cmd.Context())

	// Run migrations
	if err := dbManager.Init(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	samples := telemetry.NewPostgresStore(dbManager.GetDB())
	engine := heating.NewEngine(dbManager, samples)

	weatherClient := weather.NewClient(cfg.Weather.BaseURL)
	refreshService := weather.NewRefreshService(dbManager, weatherClient, samples, cfg.Weather.RefreshInterval)
	refreshService.Start()

	geocoder := geocode.NewClient(geocode.DefaultBaseURL, "HeatControlAPI/1.0")

	// Setup Router
	routeManager := NewRouteManager(dbManager, samples, engine, weatherClient, geocoder, cfg)
	routeManager.Setup()

	addr := ":" + cfg.Server.Port

	server := &http.Server{
		Handler:      handlers.LoggingHandler(os.Stdout, routeManager.Router),
		Addr:         addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received")

		refreshService.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting HeatControl server on %s...", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
