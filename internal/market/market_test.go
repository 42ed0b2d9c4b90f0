package market

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
)

type fakeMarket struct {
	mu        sync.Mutex
	err       error
	available float64
	sent      []string
	cashouts  []domain.CashoutInput
	readIDs   []int
	readAll   int
	balance   float64
}

func (f *fakeMarket) CreateOrder(_ context.Context, gigID int, _ string) (*domain.OrderResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.OrderResult{OrderID: 100 + gigID, NewBalance: 42}, nil
}

func (f *fakeMarket) UpdateOrderStatus(_ context.Context, _ int, status string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "Order status updated to " + status, nil
}

func (f *fakeMarket) SendMessage(_ context.Context, _ int, text string) (*domain.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return &domain.Message{ID: len(f.sent), Message: text, IsOwn: true}, nil
}

func (f *fakeMarket) MarkNotificationRead(_ context.Context, id int) error {
	f.readIDs = append(f.readIDs, id)
	return nil
}

func (f *fakeMarket) MarkAllNotificationsRead(context.Context) error {
	f.readAll++
	return nil
}

func (f *fakeMarket) RequestBalance(context.Context, float64, string) error { return f.err }

func (f *fakeMarket) AvailableEarnings(context.Context) (*domain.AvailableEarnings, error) {
	return &domain.AvailableEarnings{AvailableEarnings: f.available}, nil
}

func (f *fakeMarket) RequestCashout(_ context.Context, in domain.CashoutInput) error {
	f.cashouts = append(f.cashouts, in)
	return nil
}

func (f *fakeMarket) Balance(context.Context) (*domain.Balance, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Balance{Balance: f.balance, Username: "rahim"}, nil
}

func (f *fakeMarket) Notifications(context.Context) ([]domain.Notification, int, error) {
	return []domain.Notification{{ID: 1}}, 1, nil
}

func (f *fakeMarket) Conversations(context.Context) ([]domain.Conversation, int, error) {
	return []domain.Conversation{{OrderID: 9, UnreadCount: 2}}, 2, nil
}

func waitFor[T eventbus.DomainEvent](t *testing.T, bus eventbus.EventBus, typ eventbus.EventType) <-chan T {
	t.Helper()
	ch := make(chan T, 8)
	bus.Subscribe(typ, func(e eventbus.DomainEvent) {
		if ev, ok := e.(T); ok {
			ch <- ev
		}
	})
	return ch
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
	var zero T
	return zero
}

func TestValidateMessage(t *testing.T) {
	_, err := ValidateMessage("   \n")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	text, err := ValidateMessage("  hello ")
	require.NoError(t, err)
	assert.Equal(t, "hello", text)
}

func TestValidateCashout(t *testing.T) {
	ok := domain.CashoutInput{Amount: 100, PaymentMethod: "bkash", PaymentDetails: "017"}
	assert.NoError(t, ValidateCashout(ok, 100))

	tests := []struct {
		name string
		in   domain.CashoutInput
		want error
	}{
		{"zero", domain.CashoutInput{Amount: 0, PaymentMethod: "bkash", PaymentDetails: "017"}, ErrInvalidAmount},
		{"negative", domain.CashoutInput{Amount: -5, PaymentMethod: "bkash", PaymentDetails: "017"}, ErrInvalidAmount},
		{"nan", domain.CashoutInput{Amount: math.NaN(), PaymentMethod: "bkash", PaymentDetails: "017"}, ErrInvalidAmount},
		{"no method", domain.CashoutInput{Amount: 5, PaymentDetails: "017"}, ErrMissingPayment},
		{"too much", domain.CashoutInput{Amount: 101, PaymentMethod: "bkash", PaymentDetails: "017"}, ErrExceedsAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateCashout(tt.in, 100), tt.want)
		})
	}
}

func TestSendEmptyMessageNeverCallsAPI(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	api := &fakeMarket{}
	s := NewService(api, bus, time.Second)

	err := s.SendMessage(context.Background(), 1, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
	assert.Empty(t, api.sent)
}

func TestOrderRequestedPublishesOrderPlaced(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	placed := waitFor[eventbus.OrderPlacedEvent](t, bus, eventbus.EventOrderPlaced)
	refresh := waitFor[eventbus.RefreshRequestedEvent](t, bus, eventbus.EventRefreshRequested)
	NewService(&fakeMarket{}, bus, time.Second)

	bus.Publish(eventbus.OrderRequestedEvent{GigID: 7, Requirements: "asap"})

	ev := receive(t, placed)
	assert.Equal(t, 7, ev.GigID)
	assert.Equal(t, 107, ev.Result.OrderID)
	receive(t, refresh)
}

func TestFailedRequestPublishesError(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	errs := waitFor[eventbus.ErrorEvent](t, bus, eventbus.EventError)
	NewService(&fakeMarket{err: errors.New("Insufficient Taka")}, bus, time.Second)

	bus.Publish(eventbus.OrderRequestedEvent{GigID: 1})

	ev := receive(t, errs)
	assert.Equal(t, "Order failed", ev.Message)
	assert.EqualError(t, ev.Err, "Insufficient Taka")
}

func TestMarkRead(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	api := &fakeMarket{}
	s := NewService(api, bus, time.Second)
	ctx := context.Background()

	require.NoError(t, s.MarkRead(ctx, 5))
	require.NoError(t, s.MarkRead(ctx, 0))
	assert.Equal(t, []int{5}, api.readIDs)
	assert.Equal(t, 1, api.readAll)
}

func TestCashoutChecksAvailableEarnings(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	api := &fakeMarket{available: 300}
	s := NewService(api, bus, time.Second)
	ctx := context.Background()

	err := s.Cashout(ctx, domain.CashoutInput{Amount: 400, PaymentMethod: "nagad", PaymentDetails: "018"})
	assert.ErrorIs(t, err, ErrExceedsAvailable)
	assert.Empty(t, api.cashouts)

	require.NoError(t, s.Cashout(ctx, domain.CashoutInput{Amount: 300, PaymentMethod: "nagad", PaymentDetails: "018"}))
	assert.Len(t, api.cashouts, 1)
}

func TestRequestBalanceRejectsBadAmount(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	s := NewService(&fakeMarket{}, bus, time.Second)

	assert.ErrorIs(t, s.RequestBalance(context.Background(), 0, ""), ErrInvalidAmount)
	assert.NoError(t, s.RequestBalance(context.Background(), 10, "note"))
}

func TestPollerPublishesOnStartAndTick(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	balances := waitFor[eventbus.BalanceUpdatedEvent](t, bus, eventbus.EventBalanceUpdated)
	notes := waitFor[eventbus.NotificationsUpdatedEvent](t, bus, eventbus.EventNotificationsUpdated)
	convs := waitFor[eventbus.ConversationsUpdatedEvent](t, bus, eventbus.EventConversationsUpdated)

	p := NewPoller(&fakeMarket{balance: 1234}, bus, 20*time.Millisecond, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	assert.Equal(t, 1234.0, receive(t, balances).Balance.Balance)
	assert.Equal(t, 1, receive(t, notes).UnreadCount)
	assert.Equal(t, 2, receive(t, convs).TotalUnread)

	// second balance comes from the ticker
	assert.Equal(t, "rahim", receive(t, balances).Balance.Username)
}

func TestPollerErrorPublishesNothing(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()
	p := NewPoller(&fakeMarket{err: errors.New("offline")}, bus, time.Hour, time.Hour)

	assert.Error(t, p.RefreshBalance(context.Background()))
}
