package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/events"
)

// notificationQueueKey is the Redis list the worker drains.
const notificationQueueKey = "listing:notifications"

// NotificationService turns domain events into queued notifications.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	redis      *redis.Client
}

// NewNotificationService creates the service. The redis client may be nil, in
// which case events are only logged.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, redisClient *redis.Client) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		redis:      redisClient,
	}
}

// RegisterHandlers subscribes to the events worth notifying on.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventUserRegistered, n.handleEvent)
	n.dispatcher.Subscribe(events.EventPropertyCreated, n.handleEvent)
	n.dispatcher.Subscribe(events.EventPropertyVerified, n.handleEvent)
	n.dispatcher.Subscribe(events.EventPropertyDocsUploaded, n.handleEvent)
}

func (n *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	n.logger.Info("domain event",
		zap.String("event_type", string(event.Type)),
		zap.Int64("property_id", event.PropertyID),
		zap.Int64("actor_id", event.Actor.UserID),
	)
	return n.enqueue(ctx, event)
}

func (n *NotificationService) enqueue(ctx context.Context, event events.Event) error {
	if n.redis == nil {
		return nil
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := n.redis.LPush(ctx, notificationQueueKey, body).Err(); err != nil {
		n.logger.Warn("failed to enqueue notification", zap.Error(err))
		return err
	}
	return nil
}

// DequeueBlocking pops the next queued notification, waiting up to the given
// timeout. Used by the notification worker.
func (n *NotificationService) DequeueBlocking(ctx context.Context, timeoutSeconds int) (*events.Event, error) {
	if n.redis == nil {
		return nil, nil
	}
	res, err := n.redis.BRPop(ctx, time.Duration(timeoutSeconds)*time.Second, notificationQueueKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	// BRPop returns [key, value]
	if len(res) != 2 {
		return nil, nil
	}
	var event events.Event
	if err := json.Unmarshal([]byte(res[1]), &event); err != nil {
		return nil, err
	}
	return &event, nil
}
