package notify

import (
	"context"

	"go.uber.org/zap"
)

// LogPublisher only logs the event. It is the local default.
type LogPublisher struct{ log *zap.Logger }

func NewLogPublisher(log *zap.Logger) *LogPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, id string) error {
	p.log.Info("person created", zap.String("id", id))
	return nil
}

func (p *LogPublisher) Close() error { return nil }
