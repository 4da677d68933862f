// Package messaging implements the in-process event bus that delivers
// enrollment events to subscribers.
package messaging

import (
	"errors"
	"sync"
	"time"

	"github.com/alem-hub/enrollment/internal/domain/shared"
	"github.com/alem-hub/enrollment/pkg/logger"
	"github.com/alem-hub/enrollment/pkg/retry"
)

// ErrEventBusClosed is returned when publishing to or subscribing on a closed bus.
var ErrEventBusClosed = errors.New("event bus is closed")

// ══════════════════════════════════════════════════════════════════════════════
// IN-MEMORY EVENT BUS
// ══════════════════════════════════════════════════════════════════════════════

// InMemoryEventBus is a simple in-memory implementation of shared.EventBus.
type InMemoryEventBus struct {
	mu          sync.RWMutex
	handlers    map[shared.EventType][]shared.EventHandler
	allHandlers []shared.EventHandler
	asyncMode   bool
	workerPool  chan struct{}
	log         *logger.Logger
	metrics     *EventBusMetrics
	closed      bool
	wg          sync.WaitGroup
}

// InMemoryEventBusConfig contains configuration for InMemoryEventBus.
type InMemoryEventBusConfig struct {
	// AsyncMode enables asynchronous event processing
	AsyncMode bool

	// WorkerPoolSize is the number of concurrent workers for async processing
	WorkerPoolSize int

	// Logger for structured logging
	Logger *logger.Logger

	// EnableMetrics enables metrics collection
	EnableMetrics bool
}

// DefaultInMemoryEventBusConfig returns sensible defaults.
func DefaultInMemoryEventBusConfig() InMemoryEventBusConfig {
	return InMemoryEventBusConfig{
		AsyncMode:      false,
		WorkerPoolSize: 10,
		EnableMetrics:  true,
	}
}

// NewInMemoryEventBus creates a new in-memory event bus.
func NewInMemoryEventBus(config InMemoryEventBusConfig) *InMemoryEventBus {
	if config.Logger == nil {
		config.Logger = logger.Nop()
	}
	if config.WorkerPoolSize <= 0 {
		config.WorkerPoolSize = 10
	}

	bus := &InMemoryEventBus{
		handlers:    make(map[shared.EventType][]shared.EventHandler),
		allHandlers: make([]shared.EventHandler, 0),
		asyncMode:   config.AsyncMode,
		workerPool:  make(chan struct{}, config.WorkerPoolSize),
		log:         config.Logger.With(logger.Component("event_bus")),
	}

	if config.EnableMetrics {
		bus.metrics = NewEventBusMetrics()
	}

	return bus
}

// Subscribe registers a handler for a specific event type.
func (b *InMemoryEventBus) Subscribe(eventType shared.EventType, handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.log.Debug("subscribed handler", logger.String("event_type", string(eventType)))

	return nil
}

// SubscribeAll registers a handler for all events.
func (b *InMemoryEventBus) SubscribeAll(handler shared.EventHandler) error {
	if handler == nil {
		return errors.New("handler cannot be nil")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrEventBusClosed
	}

	b.allHandlers = append(b.allHandlers, handler)
	b.log.Debug("subscribed global handler")

	return nil
}

// Publish sends an event to all subscribed handlers. Handler errors are
// logged and counted, never returned. Errors returned here are permanent.
func (b *InMemoryEventBus) Publish(event shared.Event) error {
	if event == nil {
		return retry.Permanent(errors.New("event cannot be nil"))
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return retry.Permanent(ErrEventBusClosed)
	}

	handlers := make([]shared.EventHandler, 0, len(b.handlers[event.EventType()])+len(b.allHandlers))
	handlers = append(handlers, b.handlers[event.EventType()]...)
	handlers = append(handlers, b.allHandlers...)
	if b.asyncMode {
		// registered under the read lock so Close waits for it
		b.wg.Add(len(handlers))
	}
	b.mu.RUnlock()

	if b.metrics != nil {
		b.metrics.RecordPublish(event.EventType())
	}

	if len(handlers) == 0 {
		b.log.Debug("no handlers for event", logger.String("event_type", string(event.EventType())))
		return nil
	}

	for _, handler := range handlers {
		if b.asyncMode {
			go b.executeAsync(event, handler)
			continue
		}
		b.execute(event, handler)
	}

	return nil
}

func (b *InMemoryEventBus) executeAsync(event shared.Event, handler shared.EventHandler) {
	defer b.wg.Done()

	b.workerPool <- struct{}{}
	defer func() { <-b.workerPool }()

	b.execute(event, handler)
}

func (b *InMemoryEventBus) execute(event shared.Event, handler shared.EventHandler) {
	start := time.Now()
	err := handler(event)
	duration := time.Since(start)

	if b.metrics != nil {
		b.metrics.RecordHandlerExecution(event.EventType(), duration, err == nil)
	}

	if err != nil {
		b.log.Error("handler error",
			logger.String("event_type", string(event.EventType())),
			logger.Duration("duration", duration),
			logger.Err(err))
	}
}

// Close stops accepting events and waits for pending handlers.
func (b *InMemoryEventBus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.wg.Wait()

	b.log.Info("event bus closed")
	return nil
}

// Metrics returns the current metrics, or nil when disabled.
func (b *InMemoryEventBus) Metrics() *EventBusMetrics {
	return b.metrics
}

// ══════════════════════════════════════════════════════════════════════════════
// METRICS
// ══════════════════════════════════════════════════════════════════════════════

// EventBusMetrics counts published events and handler executions.
type EventBusMetrics struct {
	mu            sync.Mutex
	published     map[shared.EventType]int64
	handled       map[shared.EventType]int64
	failed        map[shared.EventType]int64
	totalDuration time.Duration
}

// NewEventBusMetrics creates empty metrics.
func NewEventBusMetrics() *EventBusMetrics {
	return &EventBusMetrics{
		published: make(map[shared.EventType]int64),
		handled:   make(map[shared.EventType]int64),
		failed:    make(map[shared.EventType]int64),
	}
}

// RecordPublish counts one published event.
func (m *EventBusMetrics) RecordPublish(eventType shared.EventType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published[eventType]++
}

// RecordHandlerExecution counts one handler run.
func (m *EventBusMetrics) RecordHandlerExecution(eventType shared.EventType, d time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handled[eventType]++
	if !success {
		m.failed[eventType]++
	}
	m.totalDuration += d
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Published map[shared.EventType]int64
	Handled   map[shared.EventType]int64
	Failed    map[shared.EventType]int64
}

// Snapshot returns a copy of the counters.
func (m *EventBusMetrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := func(src map[shared.EventType]int64) map[shared.EventType]int64 {
		dst := make(map[shared.EventType]int64, len(src))
		for k, v := range src {
			dst[k] = v
		}
		return dst
	}
	return MetricsSnapshot{
		Published: cp(m.published),
		Handled:   cp(m.handled),
		Failed:    cp(m.failed),
	}
}
