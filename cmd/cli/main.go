package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/CarodoesCoding/HeatControlAPI/pkg/config"
	"github.com/CarodoesCoding/HeatControlAPI/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "heatcontrol",
	Short: "HeatControl - Smart Heating Control System",
	Long: `HeatControl manages per-room heating schedules, records temperature
readings and outdoor weather, and decides when heating should be on.`,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	dbManager, err := database.NewDatabaseManager(cfg.Database)
	if err != nil {
		fmt.Printf("Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer dbManager.Close()

	ctx := context.WithValue(context.Background(), dbManagerContextKey, dbManager)
	ctx = context.WithValue(ctx, configContextKey, cfg)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

type cliContextKey string

const (
	dbManagerContextKey cliContextKey = "dbManager"
	configContextKey    cliContextKey = "config"
)

func dbManagerFromContext(ctx context.Context) *database.DatabaseManager {
	return ctx.Value(dbManagerContextKey).(*database.DatabaseManager)
}

func configFromContext(ctx context.Context) *config.Config {
	return ctx.Value(configContextKey).(*config.Config)
}
