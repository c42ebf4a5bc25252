// Package events carries activity-log entries from request handlers to the
// admin live feed over an in-process watermill pub/sub.
package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"pathways-backend-go/internal/models"
)

const TopicActivity = "activity.logged"

type Bus struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

func NewBus(logger *slog.Logger) *Bus {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &Bus{pubsub: pubsub, logger: logger}
}

// PublishActivity never fails the caller; the feed is best effort.
func (b *Bus) PublishActivity(entry models.ActivityLog) {
	if b == nil {
		return
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		b.logger.Warn("activity event encode failed", "error", err)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set("action", entry.Action)
	if err := b.pubsub.Publish(TopicActivity, msg); err != nil {
		b.logger.Warn("activity event publish failed", "error", err)
	}
}

// SubscribeActivity delivers decoded entries to handle until ctx is cancelled.
func (b *Bus) SubscribeActivity(ctx context.Context, handle func(models.ActivityLog)) error {
	messages, err := b.pubsub.Subscribe(ctx, TopicActivity)
	if err != nil {
		return err
	}
	go func() {
		for msg := range messages {
			var entry models.ActivityLog
			if err := json.Unmarshal(msg.Payload, &entry); err != nil {
				b.logger.Warn("activity event decode failed", "error", err, "message_id", msg.UUID)
				msg.Ack()
				continue
			}
			handle(entry)
			msg.Ack()
		}
	}()
	return nil
}

func (b *Bus) Close() error {
	return b.pubsub.Close()
}
