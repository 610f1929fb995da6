package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

// ErrBreakerOpen is returned while the breaker short-circuits produces.
var ErrBreakerOpen = errors.New("notify: kafka breaker open")

type BreakerSettings struct {
	MaxFailures uint32
	OpenFor     time.Duration
}

// producer is the part of *kgo.Client the publisher needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// KafkaPublisher produces the person id, as key and value, to one topic.
type KafkaPublisher struct {
	client  producer
	topic   string
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewKafkaPublisher(brokers []string, topic string, bs BreakerSettings, log *zap.Logger) (*KafkaPublisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ClientID("person-registry"),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka client: %w", err)
	}
	return newKafkaPublisher(client, topic, bs, log), nil
}

func newKafkaPublisher(client producer, topic string, bs BreakerSettings, log *zap.Logger) *KafkaPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	if bs.MaxFailures == 0 {
		bs.MaxFailures = 5
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:    "kafka:" + topic,
		Timeout: bs.OpenFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= bs.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &KafkaPublisher{client: client, topic: topic, breaker: cb}
}

func (p *KafkaPublisher) Publish(ctx context.Context, id string) error {
	_, err := p.breaker.Execute(func() (struct{}, error) {
		rec := &kgo.Record{Topic: p.topic, Key: []byte(id), Value: []byte(id)}
		return struct{}{}, p.client.ProduceSync(ctx, rec).FirstErr()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", ErrBreakerOpen, err)
	}
	return err
}

func (p *KafkaPublisher) State() gobreaker.State { return p.breaker.State() }

// Status is the breaker state, reported by the admin health endpoint.
func (p *KafkaPublisher) Status() string { return p.breaker.State().String() }

func (p *KafkaPublisher) Close() error {
	p.client.Close()
	return nil
}
