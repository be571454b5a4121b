package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/lunefall/rewardengine/internal/event"
	"github.com/lunefall/rewardengine/internal/metrics"
	"github.com/lunefall/rewardengine/internal/rewardlog"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (per-event business counters)
// - Reward log (persists resolution events for audit)
func RegisterEventHandlers(bus event.Bus, auditService rewardlog.Service) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if err := auditService.Subscribe(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSubscribeRewardLog, err)
	}
	slog.Info(LogMsgRewardLogInitialized)

	return nil
}
