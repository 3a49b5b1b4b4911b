package events

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// ===============================
// EVENT INTERFACE
// ===============================

// Event represents a domain event
type Event interface {
	GetEventID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetUserID() int64
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	UserID    int64     `json:"user_id"`
}

// GetEventID returns the event ID
func (e *BaseEvent) GetEventID() string { return e.EventID }

// GetEventType returns the event type
func (e *BaseEvent) GetEventType() string { return e.EventType }

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// GetUserID returns the user the event concerns
func (e *BaseEvent) GetUserID() int64 { return e.UserID }

func newBaseEvent(eventType string, userID int64) BaseEvent {
	id, _ := uuid.NewV4()
	return BaseEvent{
		EventID:   id.String(),
		EventType: eventType,
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// Handler processes one event. Returning an error only logs it; handlers must
// be safe to skip, since events carry notifications, not state.
type Handler func(ctx context.Context, event Event) error

// ===============================
// IN-MEMORY BUS
// ===============================

// Bus is an in-process pub/sub dispatcher. Publishing is non-blocking up to
// the queue capacity; beyond it events are dropped with a warning rather than
// stalling the request path.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	queue    chan envelope
	stop     chan struct{}
	done     chan struct{}
	logger   *zap.Logger
}

type envelope struct {
	ctx   context.Context
	event Event
}

// NewBus creates and starts an event bus
func NewBus(queueSize int, logger *zap.Logger) *Bus {
	if queueSize <= 0 {
		queueSize = 256
	}
	b := &Bus{
		handlers: make(map[string][]Handler),
		queue:    make(chan envelope, queueSize),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger,
	}
	go b.dispatchLoop()
	return b
}

// Subscribe registers a handler for one event type
func (b *Bus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
	b.mu.Unlock()
}

// Publish enqueues an event for asynchronous delivery
func (b *Bus) Publish(ctx context.Context, event Event) {
	select {
	case b.queue <- envelope{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		b.logger.Warn("Event queue full, dropping event",
			zap.String("event_type", event.GetEventType()),
			zap.String("event_id", event.GetEventID()),
		)
	}
}

// Close stops the dispatcher after draining queued events
func (b *Bus) Close() {
	close(b.stop)
	<-b.done
}

func (b *Bus) dispatchLoop() {
	defer close(b.done)
	for {
		select {
		case env := <-b.queue:
			b.dispatch(env)
		case <-b.stop:
			for {
				select {
				case env := <-b.queue:
					b.dispatch(env)
				default:
					return
				}
			}
		}
	}
}

func (b *Bus) dispatch(env envelope) {
	b.mu.RLock()
	handlers := b.handlers[env.event.GetEventType()]
	b.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(env.ctx, env.event); err != nil {
			b.logger.Error("Event handler failed",
				zap.String("event_type", env.event.GetEventType()),
				zap.String("event_id", env.event.GetEventID()),
				zap.Error(err),
			)
		}
	}
}
