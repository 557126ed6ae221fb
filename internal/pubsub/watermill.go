package pubsub

import (
	"context"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/vintechs/portal/internal/logging"
)

// WatermillBridge implements Bus on watermill's in-process GoChannel.
// Messages published while nobody subscribes to the topic are dropped.
type WatermillBridge struct {
	pub message.Publisher
	sub message.Subscriber
	now func() time.Time
}

var _ Bus = (*WatermillBridge)(nil)

// Metadata keys carrying Message fields through watermill.
const (
	metaKeyTopic       = "topic"
	metaKeySubject     = "subject"
	metaKeyRequestID   = "request_id"
	metaKeyPublishedAt = "published_at"
)

// NewWatermillBridge creates the in-memory bus.
func NewWatermillBridge() *WatermillBridge {
	logger := watermill.NewStdLogger(false, false)
	goChannel := gochannel.NewGoChannel(gochannel.Config{}, logger)

	return &WatermillBridge{
		pub: goChannel,
		sub: goChannel,
		now: time.Now,
	}
}

func (wb *WatermillBridge) toWatermill(ctx context.Context, msg Message) *message.Message {
	if msg.ID == "" {
		msg.ID = watermill.NewUUID()
	}
	if msg.RequestID == "" {
		msg.RequestID = logging.RequestID(ctx)
	}
	if msg.PublishedAt.IsZero() {
		msg.PublishedAt = wb.now().UTC()
	}

	wmMsg := message.NewMessage(msg.ID, msg.Payload)
	wmMsg.Metadata.Set(metaKeyTopic, msg.Topic)
	wmMsg.Metadata.Set(metaKeySubject, msg.Subject)
	wmMsg.Metadata.Set(metaKeyRequestID, msg.RequestID)
	wmMsg.Metadata.Set(metaKeyPublishedAt, msg.PublishedAt.Format(time.RFC3339Nano))
	return wmMsg
}

func fromWatermill(wmMsg *message.Message) Message {
	publishedAt, _ := time.Parse(time.RFC3339Nano, wmMsg.Metadata.Get(metaKeyPublishedAt))
	return Message{
		ID:          wmMsg.UUID,
		Topic:       wmMsg.Metadata.Get(metaKeyTopic),
		Subject:     wmMsg.Metadata.Get(metaKeySubject),
		Payload:     wmMsg.Payload,
		RequestID:   wmMsg.Metadata.Get(metaKeyRequestID),
		PublishedAt: publishedAt,
	}
}

// Publish implements Publisher. A request id found in ctx travels with the
// message.
func (wb *WatermillBridge) Publish(ctx context.Context, msg Message) error {
	return wb.pub.Publish(msg.Topic, wb.toWatermill(ctx, msg))
}

// Subscribe implements Subscriber. Handlers see a context whose logger and
// request id are those of the publishing request.
func (wb *WatermillBridge) Subscribe(ctx context.Context, topic string, handler Handler) error {
	messages, err := wb.sub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for wmMsg := range messages {
			msg := fromWatermill(wmMsg)
			logger := slog.Default().With("request_id", msg.RequestID, "msg_id", msg.ID, "topic", topic)
			msgCtx := logging.WithRequestID(logging.WithLogger(ctx, logger), msg.RequestID)

			if err := handler(msgCtx, msg); err != nil {
				// Handlers are best effort; a nack would redeliver forever.
				logger.ErrorContext(msgCtx, "Failed to handle message", "error", err)
			}
			wmMsg.Ack()
		}
		slog.Debug("Subscription message loop ended", "topic", topic)
	}()
	return nil
}

// Close shuts the bus down and ends every subscription.
func (wb *WatermillBridge) Close() error {
	return wb.sub.Close()
}
