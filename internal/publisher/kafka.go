package publisher

import (
	"context"
	"encoding/json"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event, id string, payload interface{}) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	// user-created-<id> or exercise-added-<id>
	msg := kafka.Message{
		Key:   []byte(messageKey(event, id)),
		Value: value,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Msgf("Error writing %s event for %s", event, id)
		return err
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
