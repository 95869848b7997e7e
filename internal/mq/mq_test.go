package mq

import (
	"context"
	"testing"

	"cloud.google.com/go/pubsub"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"

	"github.com/interviewqa/apiserver/config"
)

func TestDeliveryAttributes(t *testing.T) {
	attrs := deliveryAttributes(amqp.Delivery{
		Headers: amqp.Table{
			"trace":        []byte("abc"),
			"attempt":      int32(2),
			AttrReplyTo:    "from-header",
			"content-lang": "en",
		},
		ReplyTo:       "replies",
		CorrelationId: "corr-1",
	})

	assert.Equal(t, "abc", attrs["trace"])
	assert.Equal(t, "2", attrs["attempt"])
	assert.Equal(t, "en", attrs["content-lang"])
	assert.Equal(t, "replies", attrs[AttrReplyTo])
	assert.Equal(t, "corr-1", attrs[AttrCorrelationID])
}

func TestDeliveryAttributesWithoutProperties(t *testing.T) {
	attrs := deliveryAttributes(amqp.Delivery{Headers: amqp.Table{AttrReplyTo: "from-header"}})
	assert.Equal(t, "from-header", attrs[AttrReplyTo])
	_, ok := attrs[AttrCorrelationID]
	assert.False(t, ok)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(context.Background(), config.MQConfig{Backend: "kafka"})
	assert.EqualError(t, err, `unknown mq backend "kafka"`)
}

func TestNewRabbitMQRequiresURL(t *testing.T) {
	_, err := New(context.Background(), config.MQConfig{Backend: BackendRabbitMQ})
	assert.EqualError(t, err, "rabbitmq url is required")
}

func TestNewPublishingCarriesReplyProperties(t *testing.T) {
	p := newPublishing([]byte(`{"statusCode":200}`), map[string]string{
		AttrReplyTo:       "replies",
		AttrCorrelationID: "corr-1",
	})

	assert.Equal(t, "application/json", p.ContentType)
	assert.Equal(t, amqp.Persistent, p.DeliveryMode)
	assert.NotEmpty(t, p.MessageId)
	assert.Equal(t, "replies", p.ReplyTo)
	assert.Equal(t, "corr-1", p.CorrelationId)
	assert.Equal(t, "corr-1", p.Headers[AttrCorrelationID])
}

func TestEnsureQueueRejectsEmptyName(t *testing.T) {
	r := &RabbitMQClient{declared: map[string]bool{}}
	assert.EqualError(t, r.ensureQueue("  "), "rabbitmq channel is required")
}

func TestFromPubSubNeverReturnsNilAttributes(t *testing.T) {
	msg := fromPubSub(&pubsub.Message{ID: "m-1", Data: []byte("{}")})
	assert.Equal(t, "m-1", msg.ID)
	assert.NotNil(t, msg.Attributes)
}

func TestSubscriptionSuffixDefault(t *testing.T) {
	assert.Equal(t, "-sub", subscriptionSuffix(""))
	assert.Equal(t, ".consumer", subscriptionSuffix(".consumer"))
}

func TestNewPubSubRequiresProject(t *testing.T) {
	_, err := New(context.Background(), config.MQConfig{Backend: BackendPubSub})
	assert.EqualError(t, err, "pubsub project id is required")
}
