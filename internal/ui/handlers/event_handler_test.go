package handlers

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"gigboard/internal/api"
	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
	"gigboard/internal/ui/state"
)

func TestHeaderCountersFollowPollers(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, "Taka")

	h.HandleEvent(eventbus.BalanceUpdatedEvent{Balance: domain.Balance{Balance: 250}})
	h.HandleEvent(eventbus.NotificationsUpdatedEvent{Notifications: []domain.Notification{{ID: 1}}, UnreadCount: 1})
	h.HandleEvent(eventbus.ConversationsUpdatedEvent{Conversations: []domain.Conversation{{OrderID: 3}}, TotalUnread: 4})

	if assert.NotNil(t, s.Balance) {
		assert.Equal(t, 250.0, s.Balance.Balance)
	}
	assert.Equal(t, 1, s.UnreadNotifications)
	assert.Len(t, s.Notifications, 1)
	assert.Equal(t, 4, s.UnreadMessages)
	assert.Empty(t, s.StatusMessage)
}

func TestOrderPlacedUpdatesBalance(t *testing.T) {
	s := state.NewAppState()
	s.Balance = &domain.Balance{Balance: 2000}
	h := NewEventHandler(s, "Taka")

	reload := h.HandleEvent(eventbus.OrderPlacedEvent{GigID: 1, Result: domain.OrderResult{OrderID: 9, NewBalance: 500}})

	assert.Equal(t, 500.0, s.Balance.Balance)
	assert.Equal(t, "Order placed successfully! New balance: 500.00 Taka", s.StatusMessage)
	assert.False(t, s.StatusIsError)
	assert.Equal(t, []state.Resource{state.ResBuyerOrders}, reload)
}

func TestStatusChangeReloadsOrdersAndThread(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, "")

	reload := h.HandleEvent(eventbus.OrderStatusChangedEvent{OrderID: 2, Status: domain.OrderDelivered, Message: "Order status updated"})

	assert.Equal(t, "Order status updated", s.StatusMessage)
	assert.ElementsMatch(t, []state.Resource{state.ResBuyerOrders, state.ResSellerOrders, state.ResThread}, reload)
}

func TestMessageSentAppendsToOpenThreadOnly(t *testing.T) {
	s := state.NewAppState()
	s.Thread = &domain.Thread{OrderInfo: domain.OrderInfo{ID: 5}}
	h := NewEventHandler(s, "")

	h.HandleEvent(eventbus.MessageSentEvent{OrderID: 6, Message: domain.Message{Message: "elsewhere"}})
	assert.Empty(t, s.Thread.Messages)

	h.HandleEvent(eventbus.MessageSentEvent{OrderID: 5, Message: domain.Message{Message: "hello", IsOwn: true}})
	if assert.Len(t, s.Thread.Messages, 1) {
		assert.Equal(t, "hello", s.Thread.Messages[0].Message)
	}
	assert.Equal(t, "Message sent", s.StatusMessage)
}

func TestWalletRequestsReloadWallet(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, "")

	assert.Equal(t, []state.Resource{state.ResWallet}, h.HandleEvent(eventbus.BalanceRequestCreatedEvent{Amount: 100}))
	assert.Contains(t, s.StatusMessage, "Balance request submitted")

	assert.Equal(t, []state.Resource{state.ResWallet}, h.HandleEvent(eventbus.CashoutCreatedEvent{Amount: 100}))
	assert.Contains(t, s.StatusMessage, "Cashout request submitted")
}

func TestErrorEventShowsServerMessage(t *testing.T) {
	s := state.NewAppState()
	h := NewEventHandler(s, "")

	err := fmt.Errorf("place order: %w", &api.APIError{Status: 400, Message: "Insufficient balance"})
	h.HandleEvent(eventbus.ErrorEvent{Message: "Failed to place order", Err: err})

	assert.Equal(t, "Failed to place order: Insufficient balance", s.StatusMessage)
	assert.True(t, s.StatusIsError)
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "", ErrorText(nil))
	assert.Equal(t, "please log in again", ErrorText(&api.APIError{Status: 401}))
	assert.Equal(t, "please log in again", ErrorText(fmt.Errorf("wrapped: %w", api.ErrUnauthorized)))
	assert.Equal(t, "boom", ErrorText(errors.New("boom")))
}
