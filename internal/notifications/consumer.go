package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"wildquest/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer drains the notification topic and delivers emails.
type Consumer interface {
	Start(ctx context.Context, numWorkers int) error
	Stop() error
	HealthCheck(ctx context.Context) error
}

type ConsumerConfig struct {
	Brokers              []string
	GroupID              string
	Topics               []string
	SessionTimeout       time.Duration
	HeartbeatInterval    time.Duration
	MaxProcessingTime    time.Duration
	OffsetOldest         bool
	MaxRetries           int
	RetryBackoffDuration time.Duration
}

func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:              []string{"localhost:9092"},
		GroupID:              "wildquest-notifications",
		Topics:               []string{"booking-notifications"},
		SessionTimeout:       30 * time.Second,
		HeartbeatInterval:    3 * time.Second,
		MaxProcessingTime:    5 * time.Minute,
		OffsetOldest:         false,
		MaxRetries:           3,
		RetryBackoffDuration: time.Second,
	}
}

type kafkaConsumer struct {
	group  sarama.ConsumerGroup
	config *ConsumerConfig
	sender EmailSender
	log    *logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKafkaConsumer(config *ConsumerConfig, sender EmailSender, log *logger.Logger) (Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = config.SessionTimeout
	saramaConfig.Consumer.Group.Heartbeat.Interval = config.HeartbeatInterval
	saramaConfig.Consumer.MaxProcessingTime = config.MaxProcessingTime
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = time.Second
	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	group, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &kafkaConsumer{
		group:  group,
		config: config,
		sender: sender,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

func (c *kafkaConsumer) Start(ctx context.Context, numWorkers int) error {
	c.log.Info("starting notification workers", "workers", numWorkers, "topics", c.config.Topics)

	go c.drainErrors()

	for i := 0; i < numWorkers; i++ {
		c.wg.Add(1)
		go func(workerID int) {
			defer c.wg.Done()
			c.runWorker(ctx, workerID)
		}(i)
	}
	return nil
}

func (c *kafkaConsumer) runWorker(ctx context.Context, workerID int) {
	handler := &groupHandler{
		workerID: workerID,
		sender:   c.sender,
		config:   c.config,
		log:      c.log,
	}

	for {
		select {
		case <-ctx.Done():
			c.log.Info("notification worker shutting down", "worker", workerID)
			return
		case <-c.ctx.Done():
			return
		default:
			if err := c.group.Consume(ctx, c.config.Topics, handler); err != nil {
				c.log.Error("consumer error", "worker", workerID, "error", err)
				time.Sleep(time.Second)
			}
		}
	}
}

func (c *kafkaConsumer) drainErrors() {
	for err := range c.group.Errors() {
		c.log.Error("consumer group error", "error", err)
	}
}

func (c *kafkaConsumer) Stop() error {
	c.cancel()
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	c.wg.Wait()
	c.log.Info("notification consumer stopped")
	return nil
}

func (c *kafkaConsumer) HealthCheck(ctx context.Context) error {
	select {
	case <-c.ctx.Done():
		return fmt.Errorf("consumer is stopped")
	default:
		if c.sender == nil {
			return fmt.Errorf("email sender not configured")
		}
		return nil
	}
}

type groupHandler struct {
	workerID int
	sender   EmailSender
	config   *ConsumerConfig
	log      *logger.Logger
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}
			if err := h.processMessage(session.Context(), message); err != nil {
				h.log.Error("failed to process notification",
					"worker", h.workerID,
					"partition", message.Partition,
					"offset", message.Offset,
					"error", err,
				)
			}
			// mark either way; delivery retries happened inside
			// processMessage and a poison message must not wedge the
			// partition
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *groupHandler) processMessage(ctx context.Context, message *sarama.ConsumerMessage) error {
	var notification Notification
	if err := json.Unmarshal(message.Value, &notification); err != nil {
		return fmt.Errorf("failed to unmarshal notification: %w", err)
	}

	notification.Status = StatusSending

	if err := h.sendWithRetry(ctx, &notification); err != nil {
		notification.MarkFailed(err)
		return err
	}

	notification.MarkSent()
	h.log.Debug("notification delivered",
		"worker", h.workerID,
		"type", notification.Type,
		"recipient", notification.RecipientEmail,
	)
	return nil
}

func (h *groupHandler) sendWithRetry(ctx context.Context, notification *Notification) error {
	backoff := h.config.RetryBackoffDuration

	var lastErr error
	for attempt := 0; attempt <= h.config.MaxRetries; attempt++ {
		lastErr = h.sender.Send(ctx, notification)
		if lastErr == nil {
			return nil
		}
		notification.RetryCount = attempt + 1

		if attempt == h.config.MaxRetries {
			break
		}

		delay := backoff * time.Duration(1<<attempt)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
