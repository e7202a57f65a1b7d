package kafka

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/nguyentranbao-ct/shop-catalog/internal/config"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPublisherDisabled(t *testing.T) {
	publisher, err := NewPublisher(&config.Config{})
	require.NoError(t, err)
	assert.Nil(t, publisher)
}

func TestBroadcastProductsPublishesEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	publisher := &Publisher{producer: producer, topic: "catalog-events"}

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "catalog-events", msg.Topic)

		payload, err := msg.Value.Encode()
		require.NoError(t, err)

		var event catalogEvent
		require.NoError(t, json.Unmarshal(payload, &event))
		assert.Equal(t, "catalog_updated", event.Event)
		assert.Equal(t, 1, event.Count)
		require.Len(t, event.Products, 1)
		assert.Equal(t, "Pen", event.Products[0].Title)
		assert.False(t, event.Timestamp.IsZero())
		return nil
	})

	publisher.BroadcastProducts(context.Background(), []models.Product{
		{ID: "1", Title: "Pen", Code: "P1", Price: 1.5},
	})

	require.NoError(t, producer.Close())
}

func TestBroadcastProductsSwallowsSendErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	publisher := &Publisher{producer: producer, topic: "catalog-events"}

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	// Must not panic or propagate: the triggering mutation already committed.
	publisher.BroadcastProducts(context.Background(), []models.Product{})

	require.NoError(t, producer.Close())
}
