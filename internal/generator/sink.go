package generator

import (
	"context"

	"github.com/iliyamo/revticket-testdata/internal/testdata"
)

// publisher is satisfied by *queue.Publisher.
type publisher interface {
	Publish(ctx context.Context, queue string, v any) error
}

// QueueSink forwards the payload to a RabbitMQ queue so other tooling can
// replay it.
type QueueSink struct {
	Publisher publisher
	Queue     string
}

func (s QueueSink) Name() string { return "rabbitmq:" + s.Queue }

func (s QueueSink) Publish(ctx context.Context, p testdata.Payload) error {
	return s.Publisher.Publish(ctx, s.Queue, p)
}
