package util

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"marketplace/pkg/metrics"
)

// KafkaProducer wraps a Kafka writer for publishing domain events
// (PRODUCT_CREATED, PRODUCT_DELETED, REVIEW_CREATED).
type KafkaProducer struct {
	topic  string
	writer *kafka.Writer
}

// NewKafkaProducer creates a new Kafka producer.
// brokers is a list of Kafka brokers in "host:port" form.
func NewKafkaProducer(brokers []string, topic string) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchSize:    100,
		BatchTimeout: 10 * time.Second,
	}

	return &KafkaProducer{topic: topic, writer: writer}
}

// PublishMessage sends a message to Kafka.
// key is used for partitioning, usually the entity id so that events for
// one entity keep their order.
func (p *KafkaProducer) PublishMessage(ctx context.Context, key string, value []byte) error {
	timer := metrics.NewKafkaProduceTimer("marketplace", p.topic)

	message := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		timer.Error()
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	timer.Success()
	return nil
}

// Close closes the Kafka writer and releases its resources.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
