package service

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/shift-planner/internal/events"
	"github.com/spec-kit/shift-planner/internal/persistence"
)

const (
	activityLogKey = "shift-planner:activity"
	activityLogCap = 1000
)

// NotificationService records domain events to the structured log and a
// capped Redis activity feed.
type NotificationService struct {
	dispatcher events.Dispatcher
	redis      *persistence.Redis
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, redis *persistence.Redis, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		redis:      redis,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventStaffRegistered, n.record)
	n.dispatcher.Subscribe(events.EventStaffRemoved, n.record)
	n.dispatcher.Subscribe(events.EventScheduleGenerated, n.record)
	n.dispatcher.Subscribe(events.EventAssignmentChanged, n.record)
}

func (n *NotificationService) record(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type),
		zap.String("event_id", event.ID),
		zap.Any("payload", event.Payload),
	)
	n.appendToFeed(ctx, event)
	return nil
}

func (n *NotificationService) appendToFeed(ctx context.Context, event events.Event) {
	if n.redis == nil || n.redis.Client == nil {
		return
	}
	entry, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn("failed to encode activity entry", zap.Error(err))
		return
	}
	pipe := n.redis.Client.Pipeline()
	pipe.LPush(ctx, activityLogKey, entry)
	pipe.LTrim(ctx, activityLogKey, 0, activityLogCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		n.logger.Warn("failed to append activity entry", zap.Error(err))
	}
}

// RecentActivity returns up to limit most recent activity entries, newest
// first, as raw JSON documents.
func (n *NotificationService) RecentActivity(ctx context.Context, limit int) ([]json.RawMessage, error) {
	if n.redis == nil || n.redis.Client == nil {
		return nil, nil
	}
	if limit <= 0 || limit > activityLogCap {
		limit = 50
	}
	entries, err := n.redis.Client.LRange(ctx, activityLogKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]json.RawMessage, 0, len(entries))
	for _, entry := range entries {
		out = append(out, json.RawMessage(entry))
	}
	return out, nil
}
