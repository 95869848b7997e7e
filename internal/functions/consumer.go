package functions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/interviewqa/apiserver/internal/mq"
)

// Consumer reads invocations from a channel and publishes each reply to the
// invocation's reply_to channel, or the default reply channel.
type Consumer struct {
	backend      mq.Backend
	dispatcher   *Dispatcher
	channel      string
	replyChannel string
	logger       *slog.Logger
}

func NewConsumer(backend mq.Backend, dispatcher *Dispatcher, channel, replyChannel string, logger *slog.Logger) *Consumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		backend:      backend,
		dispatcher:   dispatcher,
		channel:      channel,
		replyChannel: replyChannel,
		logger:       logger,
	}
}

// Run blocks until ctx is done or the subscription fails.
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("consuming invocations", "channel", c.channel, "reply_channel", c.replyChannel)
	return c.backend.Subscribe(ctx, c.channel, c.handle)
}

// handle acknowledges every invocation it could answer. Only a failed reply
// publish is returned, so the broker redelivers the invocation.
func (c *Consumer) handle(ctx context.Context, msg mq.Message) error {
	var resp Response
	var inv Invocation
	if err := json.Unmarshal(msg.Data, &inv); err != nil {
		c.logger.Warn("malformed invocation", "message_id", msg.ID, "err", err)
		resp = Response{
			StatusCode: http.StatusBadRequest,
			Body:       map[string]string{"message": "invalid invocation"},
		}
	} else {
		resp = c.dispatcher.Invoke(ctx, inv)
	}

	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	replyTo := msg.Attributes[mq.AttrReplyTo]
	if replyTo == "" {
		replyTo = c.replyChannel
	}
	attrs := map[string]string{}
	if correlationID := msg.Attributes[mq.AttrCorrelationID]; correlationID != "" {
		attrs[mq.AttrCorrelationID] = correlationID
	}

	if _, err := c.backend.Publish(ctx, replyTo, data, attrs); err != nil {
		c.logger.Error("publish reply failed", "message_id", msg.ID, "reply_to", replyTo, "err", err)
		return err
	}
	c.logger.Debug("invocation handled",
		"operation", inv.Operation,
		"status", resp.StatusCode,
		"message_id", msg.ID,
	)
	return nil
}
