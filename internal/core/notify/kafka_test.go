package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	calls   int
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	f.calls++
	out := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if f.err == nil {
			f.records = append(f.records, r)
		}
		out = append(out, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return out
}

func (f *fakeProducer) Close() {}

func TestKafkaPublishKeysByID(t *testing.T) {
	prod := &fakeProducer{}
	p := newKafkaPublisher(prod, "person.created", BreakerSettings{MaxFailures: 3, OpenFor: time.Minute}, zap.NewNop())

	require.NoError(t, p.Publish(context.Background(), "p-1"))
	require.Len(t, prod.records, 1)
	assert.Equal(t, "person.created", prod.records[0].Topic)
	assert.Equal(t, "p-1", string(prod.records[0].Key))
	assert.Equal(t, "p-1", string(prod.records[0].Value))
}

func TestKafkaBreakerOpensAfterFailures(t *testing.T) {
	prod := &fakeProducer{err: errors.New("broker unreachable")}
	p := newKafkaPublisher(prod, "person.created", BreakerSettings{MaxFailures: 2, OpenFor: time.Minute}, zap.NewNop())

	for i := 0; i < 2; i++ {
		err := p.Publish(context.Background(), "p-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrBreakerOpen)
	}
	assert.Equal(t, gobreaker.StateOpen, p.State())

	err := p.Publish(context.Background(), "p-2")
	assert.ErrorIs(t, err, ErrBreakerOpen)
	assert.Equal(t, 2, prod.calls)
}

func TestAsyncStatusReportsBreaker(t *testing.T) {
	prod := &fakeProducer{err: errors.New("broker unreachable")}
	p := newKafkaPublisher(prod, "person.created", BreakerSettings{MaxFailures: 1, OpenFor: time.Minute}, zap.NewNop())
	a := NewAsync(p, "kafka", time.Second, zap.NewNop())
	assert.Equal(t, "closed", p.Status())
	assert.Equal(t, "closed", a.Status())

	require.Error(t, p.Publish(context.Background(), "p-1"))
	assert.Equal(t, "open", a.Status())

	require.NoError(t, a.Close(context.Background()))
	assert.Equal(t, "stopped", a.Status())
}

func TestAsyncStatusWithoutBreaker(t *testing.T) {
	a := NewAsync(NewLogPublisher(zap.NewNop()), "log", time.Second, zap.NewNop())
	assert.Equal(t, "ok", a.Status())
}
