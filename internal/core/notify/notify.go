package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Publisher delivers one "person created" event synchronously.
type Publisher interface {
	Publish(ctx context.Context, id string) error
	Close() error
}

var notifications = prometheus.NewCounterVec(
	prometheus.CounterOpts{Name: "person_notifications_total", Help: "Person created notifications by outcome"},
	[]string{"driver", "result"},
)

func init() { prometheus.MustRegister(notifications) }

const (
	resultOK      = "ok"
	resultError   = "error"
	resultPanic   = "panic"
	resultDropped = "dropped"
)

// Async implements domain.Notifier on top of a Publisher. Each event is
// published on its own goroutine with a context detached from the caller,
// bounded by timeout. Outcomes are logged and counted, never returned.
type Async struct {
	pub     Publisher
	driver  string
	timeout time.Duration
	log     *zap.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// statuser is implemented by publishers with a state worth reporting.
type statuser interface{ Status() string }

// Status describes the publisher for health checks: the breaker state for
// Kafka, "stopped" after Close, "ok" otherwise.
func (a *Async) Status() string {
	a.mu.RLock()
	closed := a.closed
	a.mu.RUnlock()
	if closed {
		return "stopped"
	}
	if s, ok := a.pub.(statuser); ok {
		return s.Status()
	}
	return "ok"
}

func NewAsync(pub Publisher, driver string, timeout time.Duration, log *zap.Logger) *Async {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Async{pub: pub, driver: driver, timeout: timeout, log: log.Named("notify")}
}

func (a *Async) NotifyCreated(ctx context.Context, id string) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		notifications.WithLabelValues(a.driver, resultDropped).Inc()
		a.log.Warn("notifier closed, dropping event", zap.String("id", id))
		return
	}
	a.wg.Add(1)
	go a.deliver(context.WithoutCancel(ctx), id)
}

func (a *Async) deliver(parent context.Context, id string) {
	defer a.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			notifications.WithLabelValues(a.driver, resultPanic).Inc()
			a.log.Error("publish panicked", zap.String("id", id), zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(parent, a.timeout)
	defer cancel()
	if err := a.pub.Publish(ctx, id); err != nil {
		notifications.WithLabelValues(a.driver, resultError).Inc()
		a.log.Warn("publish failed", zap.String("id", id), zap.String("driver", a.driver), zap.Error(err))
		return
	}
	notifications.WithLabelValues(a.driver, resultOK).Inc()
	a.log.Debug("published", zap.String("id", id), zap.String("driver", a.driver))
}

// Close stops accepting events, waits for in-flight ones until ctx ends,
// then closes the publisher.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return fmt.Errorf("drain notifications: %w", ctx.Err())
	}
	return a.pub.Close()
}
