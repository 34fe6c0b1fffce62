package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Config selects the event sink. An empty broker list disables publishing.
type Config struct {
	Brokers      string        `env:"KAFKA_BROKERS"`
	Topic        string        `env:"KAFKA_TOPIC" env-default:"sportsbook.events"`
	WriteTimeout time.Duration `env:"KAFKA_WRITE_TIMEOUT" env-default:"2s"`
}

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer  MessageWriter
	timeout time.Duration
}

var _ Publisher = (*KafkaPublisher)(nil)

// NewPublisher returns a kafka-backed publisher, or a NopPublisher when no
// brokers are configured.
func NewPublisher(cfg Config) Publisher {
	if strings.TrimSpace(cfg.Brokers) == "" {
		return NopPublisher{}
	}
	return NewKafkaPublisher(NewWriter(cfg.Brokers, cfg.Topic), cfg.WriteTimeout)
}

// NewWriter creates a writer that balances by least bytes.
func NewWriter(brokers, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(strings.Split(brokers, ",")...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

func NewKafkaPublisher(w MessageWriter, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{writer: w, timeout: timeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", e.Type, err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.Key),
			Value: value,
			Time:  e.OccurredAt,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(e.Type)},
			},
		})
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write kafka messages: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
