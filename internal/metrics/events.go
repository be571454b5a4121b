package metrics

import (
	"context"

	"github.com/lunefall/rewardengine/internal/event"
	"github.com/lunefall/rewardengine/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events the collector records
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RewardGranted,
		event.RewardRejected,
		event.GachaDrawCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}

	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.RewardGranted:
		payload, err := event.DecodePayload[event.RewardGrantedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		for _, reward := range payload.Rewards {
			RewardsGranted.WithLabelValues(reward.Type).Inc()
		}

	case event.RewardRejected:
		payload, err := event.DecodePayload[event.RewardRejectedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		GrantRejections.WithLabelValues(payload.Reason).Inc()

	case event.GachaDrawCompleted:
		payload, err := event.DecodePayload[event.GachaDrawCompletedPayloadV1](evt.Payload)
		if err != nil {
			log.Debug(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		for _, mode := range payload.Modes {
			GachaDraws.WithLabelValues(payload.GachaKey, mode).Inc()
			switch mode {
			case "pity_normal":
				GachaGuarantees.WithLabelValues(payload.GachaKey, GuaranteeKindNormal).Inc()
			case "pity_special":
				GachaGuarantees.WithLabelValues(payload.GachaKey, GuaranteeKindSpecial).Inc()
			}
		}
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
