package worker

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/listing-service/internal/events"
	"github.com/spec-kit/listing-service/internal/service"
)

// dequeueRetryDelay keeps the drain loop from spinning while Redis is down.
const dequeueRetryDelay = time.Second

// dequeueTimeoutSeconds is how long each blocking pop waits for work.
const dequeueTimeoutSeconds = 5

type dequeuer interface {
	DequeueBlocking(ctx context.Context, timeoutSeconds int) (*events.Event, error)
}

// StartNotificationWorker registers event handlers and drains the queue in
// the background until the context is cancelled.
func StartNotificationWorker(ctx context.Context, notificationService *service.NotificationService, logger *zap.Logger) {
	if notificationService == nil {
		return
	}
	notificationService.RegisterHandlers()

	go drain(ctx, notificationService, logger, dequeueRetryDelay)
}

func drain(ctx context.Context, queue dequeuer, logger *zap.Logger, retryDelay time.Duration) {
	for {
		event, err := queue.DequeueBlocking(ctx, dequeueTimeoutSeconds)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			logger.Warn("notification dequeue failed", zap.Error(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(retryDelay):
			}
			continue
		}
		if event == nil {
			if ctx.Err() != nil {
				return
			}
			continue
		}
		logger.Info("notification delivered",
			zap.String("event_type", string(event.Type)),
			zap.Int64("property_id", event.PropertyID),
		)
	}
}
