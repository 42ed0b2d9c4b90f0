package handlers

import (
	"errors"
	"fmt"

	"gigboard/internal/api"
	"gigboard/internal/eventbus"
	"gigboard/internal/ui/state"
	"gigboard/internal/ui/views"
)

// EventHandler applies domain events to the app state
type EventHandler struct {
	state    *state.AppState
	currency string
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, currency string) *EventHandler {
	return &EventHandler{state: appState, currency: currency}
}

// HandleEvent processes a domain event and returns the resources the UI
// should load again
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) []state.Resource {
	switch e := event.(type) {
	case eventbus.BalanceUpdatedEvent:
		b := e.Balance
		h.state.Balance = &b

	case eventbus.NotificationsUpdatedEvent:
		h.state.Notifications = e.Notifications
		h.state.UnreadNotifications = e.UnreadCount

	case eventbus.ConversationsUpdatedEvent:
		h.state.Conversations = e.Conversations
		h.state.UnreadMessages = e.TotalUnread

	case eventbus.OrderPlacedEvent:
		if h.state.Balance != nil {
			h.state.Balance.Balance = e.Result.NewBalance
		}
		h.state.SetStatus(fmt.Sprintf("Order placed successfully! New balance: %s",
			views.Money(e.Result.NewBalance, h.currency)), false)
		return []state.Resource{state.ResBuyerOrders}

	case eventbus.OrderStatusChangedEvent:
		h.state.SetStatus(e.Message, false)
		return []state.Resource{state.ResBuyerOrders, state.ResSellerOrders, state.ResThread}

	case eventbus.MessageSentEvent:
		if t := h.state.Thread; t != nil && t.OrderInfo.ID == e.OrderID {
			t.Messages = append(t.Messages, e.Message)
		}
		h.state.SetStatus("Message sent", false)

	case eventbus.BalanceRequestCreatedEvent:
		h.state.SetStatus("Balance request submitted successfully! Admin will review your request.", false)
		return []state.Resource{state.ResWallet}

	case eventbus.CashoutCreatedEvent:
		h.state.SetStatus("Cashout request submitted successfully! Admin will process your payment.", false)
		return []state.Resource{state.ResWallet}

	case eventbus.ErrorEvent:
		h.state.SetStatus(fmt.Sprintf("%s: %s", e.Message, ErrorText(e.Err)), true)
	}

	return nil
}

// ErrorText returns the server's message for API errors and the error
// string otherwise
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnauthorized) {
		return "please log in again"
	}
	return err.Error()
}
