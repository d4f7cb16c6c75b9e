package publisher

import (
	"context"
	"github.com/rs/zerolog"
	"os"
	"strings"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

const (
	EventUserCreated   = "user.created"
	EventExerciseAdded = "exercise.added"
)

// Publisher announces domain events. Payloads are JSON encoded.
type Publisher interface {
	Publish(ctx context.Context, event, id string, payload interface{}) error
	Close() error
}

// messageKey turns ("user.created", "42") into "user-created-42".
func messageKey(event, id string) string {
	return strings.ReplaceAll(event, ".", "-") + "-" + id
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event, id string, payload interface{}) error {
	return nil
}

func (NoopPublisher) Close() error { return nil }
