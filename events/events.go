package events

import (
	"context"
	"sync"

	"cardbot/models"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeAccountCreated  EventType = "account_created"
	EventTypePackOpened      EventType = "pack_opened"
	EventTypeTradeResolved   EventType = "trade_resolved"
	EventTypeAccrualComplete EventType = "accrual_complete"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// AccountCreatedEvent represents a lazily created account
type AccountCreatedEvent struct {
	UserID int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// PackOpenedEvent represents a pack that was opened, free or purchased
type PackOpenedEvent struct {
	UserID int64
	Cards  []*models.Card
	Price  int64 // 0 for free packs
	IsFree bool
}

func (e PackOpenedEvent) Type() EventType {
	return EventTypePackOpened
}

// TradeResolvedEvent represents a trade offer reaching a terminal state.
// Emitted after the owning transaction commits; subscribers use it for
// best-effort notification only.
type TradeResolvedEvent struct {
	OfferID    int64
	FromUserID int64
	ToUserID   int64
	ItemID     int64
	Status     models.TradeStatus
}

func (e TradeResolvedEvent) Type() EventType {
	return EventTypeTradeResolved
}

// AccrualCompleteEvent represents one finished income sweep
type AccrualCompleteEvent struct {
	TotalCredited    int64
	AccountsCredited int
}

func (e AccrualCompleteEvent) Type() EventType {
	return EventTypeAccrualComplete
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers. Handlers run
// asynchronously; a panicking handler never takes down the caller.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h Handler) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType": event.Type(),
						"panic":     r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler)
	}
}

// TransactionalBus stashes events published during a unit of work and
// flushes them to the real bus only after the transaction commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

// NewTransactionalBus creates a transactional bus backed by the real bus
func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

// Publish stashes an event until Flush or Discard
func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush emits all pending events. Called after a successful commit.
// Events outlive the transaction, so they get a fresh context.
func (b *TransactionalBus) Flush() {
	ctx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(ctx, ev)
	}
	b.pending = nil
}

// Discard drops all pending events. Called after a rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
