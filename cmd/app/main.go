package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lunefall/rewardengine/internal/bootstrap"
	"github.com/lunefall/rewardengine/internal/concurrency"
	"github.com/lunefall/rewardengine/internal/config"
	"github.com/lunefall/rewardengine/internal/database"
	"github.com/lunefall/rewardengine/internal/domain"
	"github.com/lunefall/rewardengine/internal/gacha"
	"github.com/lunefall/rewardengine/internal/inventory"
	"github.com/lunefall/rewardengine/internal/reward"
	"github.com/lunefall/rewardengine/internal/rewardlog"
	"github.com/lunefall/rewardengine/internal/roster"
	"github.com/lunefall/rewardengine/internal/scheduler"
	"github.com/lunefall/rewardengine/internal/server"
	"github.com/lunefall/rewardengine/internal/wallet"
	"github.com/lunefall/rewardengine/internal/worker"
)

// ShutdownTimeout is the maximum time allowed for in-flight requests to drain.
const ShutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()
	slog.Info(bootstrap.LogMsgConfigurationLoaded, "port", cfg.Port)

	ctx := context.Background()

	dbPool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections,
		database.DefaultMaxConnIdleTime, database.DefaultMaxConnLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if err := database.Migrate(ctx, dbPool); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	registry, err := bootstrap.LoadRegistry(cfg)
	if err != nil {
		slog.Error(bootstrap.ErrMsgFailedToLoadRegistry, "error", err)
		os.Exit(1)
	}

	eventBus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		slog.Error("Event system initialization failed", "error", err)
		os.Exit(1)
	}

	repos := bootstrap.InitializeRepositories(dbPool)

	// Wallet and roster own the reward types that live outside the inventory.
	granters := map[domain.RewardType]inventory.Granter{
		domain.RewardCurrency:  wallet.NewService(repos.Reward),
		domain.RewardCharacter: roster.NewService(repos.Reward),
	}

	// Draws and grants serialize on the same per-user locks so neither path
	// can commit against a stale capacity baseline.
	locks := concurrency.NewLockManager()
	inventoryService := inventory.NewService(repos.Reward, registry, granters, publisher, locks)
	expander := reward.NewExpander(registry, reward.DefaultRand(), cfg.MaxExpandDepth)
	gachaService := gacha.NewService(repos.Reward, registry, inventoryService, expander,
		reward.DefaultRand(), locks, publisher)
	auditService := rewardlog.NewService(repos.RewardLog)

	if err := bootstrap.RegisterEventHandlers(eventBus, auditService); err != nil {
		slog.Error("Event handler registration failed", "error", err)
		os.Exit(1)
	}

	// Periodic audit log retention cleanup.
	workerPool := worker.NewPool(1, 4)
	workerPool.Start()
	defer workerPool.Stop()
	sched := scheduler.New(workerPool)
	defer sched.Stop()
	sched.Schedule(cfg.CleanupInterval,
		rewardlog.NewCleanupJob(auditService, cfg.RewardLogRetentionDays))

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, dbPool,
		inventoryService, gachaService, expander, repos.RewardLog)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, ShutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, srv)
}
