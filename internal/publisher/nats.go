package publisher

import (
	"context"
	"encoding/json"
	"github.com/nats-io/nats.go"
)

const subjectPrefix = "exercise."

type natsConn interface {
	Publish(subj string, data []byte) error
	Close()
}

type NatsPublisher struct {
	nc natsConn
}

// ConnectNats dials the server and wraps the connection.
func ConnectNats(url string) (*NatsPublisher, error) {
	nc, err := nats.Connect(url, nats.Name("exercise-tracker-service"))
	if err != nil {
		return nil, err
	}
	logger.Info().Msgf("Connected to NATS at %s", url)
	return &NatsPublisher{nc: nc}, nil
}

func (p *NatsPublisher) Publish(ctx context.Context, event, id string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	subject := subjectPrefix + event
	if err := p.nc.Publish(subject, data); err != nil {
		logger.Error().Err(err).Msgf("Error publishing %s for %s", subject, id)
		return err
	}

	return nil
}

func (p *NatsPublisher) Close() error {
	p.nc.Close()
	return nil
}
