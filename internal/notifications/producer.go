package notifications

import (
	"context"
	"fmt"
	"time"

	"wildquest/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes notifications to the Kafka bus.
type Producer interface {
	Publish(ctx context.Context, notification *Notification) error
	Close() error
}

type ProducerConfig struct {
	Brokers           []string
	NotificationTopic string
	DeadLetterTopic   string
	RetryMax          int
	Timeout           time.Duration
}

func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:           []string{"localhost:9092"},
		NotificationTopic: "booking-notifications",
		DeadLetterTopic:   "booking-notifications-dlq",
		RetryMax:          3,
		Timeout:           10 * time.Second,
	}
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	log      *logger.Logger
}

// NewKafkaProducer creates an idempotent sync producer. Booking flows
// publish only after their transaction commits, so a producer failure
// never rolls back a booking.
func NewKafkaProducer(config *ProducerConfig, log *logger.Logger) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log.Info("kafka notification producer started", "brokers", config.Brokers, "topic", config.NotificationTopic)
	return &kafkaProducer{producer: producer, config: config, log: log}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, notification *Notification) error {
	notification.Status = StatusQueued
	notification.UpdatedAt = time.Now()

	payload, err := notification.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.config.NotificationTopic,
		Key:   sarama.StringEncoder(notification.GetPartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("notification_id"), Value: []byte(notification.ID.String())},
			{Key: []byte("notification_type"), Value: []byte(notification.Type)},
			{Key: []byte("created_at"), Value: []byte(notification.CreatedAt.Format(time.RFC3339))},
		},
		Timestamp: notification.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		notification.MarkFailed(err)
		return fmt.Errorf("failed to publish notification: %w", err)
	}

	p.log.Debug("notification published",
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *kafkaProducer) Close() error {
	if p.producer == nil {
		return nil
	}
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}
