// Package kafka publishes catalog change events so other services can follow
// the catalog without polling. Disabled by default; gated on KAFKA_ENABLED.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/nguyentranbao-ct/shop-catalog/internal/config"
	"github.com/nguyentranbao-ct/shop-catalog/internal/models"
	"github.com/nguyentranbao-ct/shop-catalog/internal/usecase"
)

var _ usecase.CatalogBroadcaster = (*Publisher)(nil)

type catalogEvent struct {
	Event     string           `json:"event"`
	Count     int              `json:"count"`
	Products  []models.Product `json:"products"`
	Timestamp time.Time        `json:"timestamp"`
}

type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a sync producer. Returns nil (a no-op sink for the
// fanout) when kafka is disabled.
func NewPublisher(conf *config.Config) (*Publisher, error) {
	if !conf.Kafka.Enabled {
		return nil, nil
	}

	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(conf.Kafka.Brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Publisher{
		producer: producer,
		topic:    conf.Kafka.Topic,
	}, nil
}

// BroadcastProducts publishes the refreshed catalog. Failures are logged,
// never propagated: the mutation that triggered the event already committed.
func (p *Publisher) BroadcastProducts(ctx context.Context, products []models.Product) {
	event := catalogEvent{
		Event:     "catalog_updated",
		Count:     len(products),
		Products:  products,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Errorw(ctx, "encode catalog event", "error", err)
		return
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		log.Errorw(ctx, "publish catalog event", "topic", p.topic, "error", err)
		return
	}
	log.Debugw(ctx, "published catalog event",
		"topic", p.topic, "partition", partition, "offset", offset, "count", len(products))
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
