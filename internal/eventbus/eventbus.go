package eventbus

import (
	"log"
	"runtime/debug"
	"sync"

	"gigboard/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventBalanceUpdated            = domain.EventBalanceUpdated
	EventNotificationsUpdated      = domain.EventNotificationsUpdated
	EventConversationsUpdated      = domain.EventConversationsUpdated
	EventOrderRequested            = domain.EventOrderRequested
	EventOrderPlaced               = domain.EventOrderPlaced
	EventOrderStatusRequested      = domain.EventOrderStatusRequested
	EventOrderStatusChanged        = domain.EventOrderStatusChanged
	EventMessageSendRequested      = domain.EventMessageSendRequested
	EventMessageSent               = domain.EventMessageSent
	EventNotificationReadRequested = domain.EventNotificationReadRequested
	EventBalanceRequestSubmitted   = domain.EventBalanceRequestSubmitted
	EventBalanceRequestCreated     = domain.EventBalanceRequestCreated
	EventCashoutRequested          = domain.EventCashoutRequested
	EventCashoutCreated            = domain.EventCashoutCreated
	EventRefreshRequested          = domain.EventRefreshRequested
	EventError                     = domain.EventError
	EventConfigLoaded              = domain.EventConfigLoaded
	EventConfigSaved               = domain.EventConfigSaved
)

// Re-export domain event types
type BalanceUpdatedEvent = domain.BalanceUpdatedEvent
type NotificationsUpdatedEvent = domain.NotificationsUpdatedEvent
type ConversationsUpdatedEvent = domain.ConversationsUpdatedEvent
type OrderRequestedEvent = domain.OrderRequestedEvent
type OrderPlacedEvent = domain.OrderPlacedEvent
type OrderStatusRequestedEvent = domain.OrderStatusRequestedEvent
type OrderStatusChangedEvent = domain.OrderStatusChangedEvent
type MessageSendRequestedEvent = domain.MessageSendRequestedEvent
type MessageSentEvent = domain.MessageSentEvent
type NotificationReadRequestedEvent = domain.NotificationReadRequestedEvent
type BalanceRequestSubmittedEvent = domain.BalanceRequestSubmittedEvent
type BalanceRequestCreatedEvent = domain.BalanceRequestCreatedEvent
type CashoutRequestedEvent = domain.CashoutRequestedEvent
type CashoutCreatedEvent = domain.CashoutCreatedEvent
type RefreshRequestedEvent = domain.RefreshRequestedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
}

// New creates a new event bus
func New() EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers
func (b *bus) Publish(event DomainEvent) {
	// Skip logging for high-frequency events
	switch event.Type() {
	case EventBalanceUpdated, EventNotificationsUpdated, EventConversationsUpdated:
	default:
		log.Printf("EventBus: Publishing event %s", event.Type())
	}

	select {
	case b.eventChan <- event:
	default:
		log.Printf("Event bus channel full, dropping event: %v", event.Type())
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher and drops undelivered events
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without the lock held
			handlersCopy := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlersCopy[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlersCopy {
				go func(h EventHandler, eventType EventType) {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("Event handler panic for %s: %v\nStack: %s", eventType, r, debug.Stack())
						}
					}()
					h(event)
				}(handler, event.Type())
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}
