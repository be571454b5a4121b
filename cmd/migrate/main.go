package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/lunefall/rewardengine/internal/database"
	"github.com/lunefall/rewardengine/internal/logger"
)

// Standalone migration runner for environments where the service itself
// should not apply schema changes on startup.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate <up|down|status>")
		os.Exit(2)
	}
	subcmd := os.Args[1]

	_ = godotenv.Load()
	logger.Init(logger.ProductionConfig())

	connString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_NAME", "rewardengine"),
	)

	pool, err := database.NewPool(connString, database.DefaultMaxConnections,
		database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()

	switch subcmd {
	case "up":
		err = database.Migrate(ctx, pool)
	case "down":
		err = database.MigrateDown(ctx, pool)
	case "status":
		err = database.MigrationStatus(ctx, pool)
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q: want up, down or status\n", subcmd)
		os.Exit(2)
	}

	if err != nil {
		slog.Error("Migration command failed", "command", subcmd, "error", err)
		os.Exit(1)
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
