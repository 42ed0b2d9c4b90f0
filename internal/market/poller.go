package market

import (
	"context"
	"log"
	"time"

	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
)

// Feed is the read side of the API the poller refreshes from
type Feed interface {
	Balance(ctx context.Context) (*domain.Balance, error)
	Notifications(ctx context.Context) ([]domain.Notification, int, error)
	Conversations(ctx context.Context) ([]domain.Conversation, int, error)
}

// Poller publishes balance, notification and conversation updates on fixed
// intervals. Ticks are independent; a slow call delays only its own loop.
type Poller struct {
	feed            Feed
	bus             eventbus.EventBus
	balanceInterval time.Duration
	inboxInterval   time.Duration
	refresh         chan struct{}
}

// NewPoller creates a poller. A RefreshRequestedEvent triggers an immediate
// refresh of everything.
func NewPoller(feed Feed, bus eventbus.EventBus, balanceInterval, inboxInterval time.Duration) *Poller {
	p := &Poller{
		feed:            feed,
		bus:             bus,
		balanceInterval: balanceInterval,
		inboxInterval:   inboxInterval,
		refresh:         make(chan struct{}, 1),
	}

	bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
		select {
		case p.refresh <- struct{}{}:
		default:
		}
	})

	return p
}

// Run refreshes once and then keeps refreshing until ctx is done
func (p *Poller) Run(ctx context.Context) {
	p.RefreshBalance(ctx)
	p.RefreshInbox(ctx)

	balance := time.NewTicker(p.balanceInterval)
	defer balance.Stop()
	inbox := time.NewTicker(p.inboxInterval)
	defer inbox.Stop()

	for {
		select {
		case <-balance.C:
			p.RefreshBalance(ctx)
		case <-inbox.C:
			p.RefreshInbox(ctx)
		case <-p.refresh:
			p.RefreshBalance(ctx)
			p.RefreshInbox(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RefreshBalance fetches the balance and publishes it
func (p *Poller) RefreshBalance(ctx context.Context) error {
	b, err := p.feed.Balance(ctx)
	if err != nil {
		log.Printf("Error fetching balance: %v", err)
		return err
	}
	p.bus.Publish(eventbus.BalanceUpdatedEvent{Balance: *b})
	return nil
}

// RefreshInbox fetches notifications and conversations and publishes both
func (p *Poller) RefreshInbox(ctx context.Context) error {
	notes, unread, err := p.feed.Notifications(ctx)
	if err != nil {
		log.Printf("Error loading notifications: %v", err)
		return err
	}
	p.bus.Publish(eventbus.NotificationsUpdatedEvent{Notifications: notes, UnreadCount: unread})

	convs, total, err := p.feed.Conversations(ctx)
	if err != nil {
		log.Printf("Error loading conversations: %v", err)
		return err
	}
	p.bus.Publish(eventbus.ConversationsUpdatedEvent{Conversations: convs, TotalUnread: total})
	return nil
}
