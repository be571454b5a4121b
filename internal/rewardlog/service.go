package rewardlog

import (
	"context"
	"encoding/json"

	"github.com/lunefall/rewardengine/internal/event"
	"github.com/lunefall/rewardengine/internal/logger"
)

// Service persists an audit trail of resolution events: every committed
// grant, every rejection and every completed draw lands as one row.
type Service interface {
	// Subscribe registers the audit logger on the bus
	Subscribe(bus event.Bus) error

	// CleanupOldEntries removes rows older than the retention period
	CleanupOldEntries(ctx context.Context, retentionDays int) (int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new reward audit service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Subscribe(bus event.Bus) error {
	eventTypes := []event.Type{
		event.RewardGranted,
		event.RewardRejected,
		event.GachaDrawCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, s.handleEvent)
	}

	return nil
}

func (s *service) handleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	payload, err := toMap(evt.Payload)
	if err != nil {
		log.Debug(LogMsgPayloadNotLoggable, "type", evt.Type, "error", err)
		return nil
	}

	var userID *string
	if uid, ok := payload["user_id"].(string); ok {
		userID = &uid
	}

	var metadata map[string]interface{}
	if m, ok := evt.Metadata.(map[string]interface{}); ok {
		metadata = m
	}

	if err := s.repo.LogEvent(ctx, string(evt.Type), userID, payload, metadata); err != nil {
		log.Error(LogMsgLogEventFailed, "error", err, "type", evt.Type)
		return err
	}

	log.Debug(LogMsgEventLogged, "type", evt.Type, "user_id", userID)
	return nil
}

func (s *service) CleanupOldEntries(ctx context.Context, retentionDays int) (int64, error) {
	return s.repo.CleanupOldEntries(ctx, retentionDays)
}

// toMap flattens a typed payload to the generic shape the audit table stores.
func toMap(payload interface{}) (map[string]interface{}, error) {
	if m, ok := payload.(map[string]interface{}); ok {
		return m, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
