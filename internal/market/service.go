// Package market runs the marketplace side effects requested by the UI
// (orders, messages, wallet requests) and keeps background counters fresh.
package market

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gigboard/internal/domain"
	"gigboard/internal/eventbus"
)

// Validation errors checked before anything is sent
var (
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrInvalidAmount    = errors.New("amount must be greater than 0")
	ErrExceedsAvailable = errors.New("amount exceeds available earnings")
	ErrMissingPayment   = errors.New("payment method and details are required")
)

// Marketplace is the subset of the API client the service writes through
type Marketplace interface {
	CreateOrder(ctx context.Context, gigID int, requirements string) (*domain.OrderResult, error)
	UpdateOrderStatus(ctx context.Context, orderID int, status string) (string, error)
	SendMessage(ctx context.Context, orderID int, text string) (*domain.Message, error)
	MarkNotificationRead(ctx context.Context, id int) error
	MarkAllNotificationsRead(ctx context.Context) error
	RequestBalance(ctx context.Context, amount float64, note string) error
	AvailableEarnings(ctx context.Context) (*domain.AvailableEarnings, error)
	RequestCashout(ctx context.Context, in domain.CashoutInput) error
}

// Service turns request events into API calls and publishes the outcome
type Service struct {
	api     Marketplace
	bus     eventbus.EventBus
	timeout time.Duration
}

// NewService creates the service and subscribes it to request events
func NewService(api Marketplace, bus eventbus.EventBus, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Service{api: api, bus: bus, timeout: timeout}

	bus.Subscribe(eventbus.EventOrderRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.OrderRequestedEvent); ok {
			s.run(func(ctx context.Context) error {
				return s.PlaceOrder(ctx, event.GigID, event.Requirements)
			}, "Order failed")
		}
	})

	bus.Subscribe(eventbus.EventOrderStatusRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.OrderStatusRequestedEvent); ok {
			s.run(func(ctx context.Context) error {
				return s.ChangeOrderStatus(ctx, event.OrderID, event.Status)
			}, "Status update failed")
		}
	})

	bus.Subscribe(eventbus.EventMessageSendRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.MessageSendRequestedEvent); ok {
			s.run(func(ctx context.Context) error {
				return s.SendMessage(ctx, event.OrderID, event.Text)
			}, "Message not sent")
		}
	})

	bus.Subscribe(eventbus.EventNotificationReadRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.NotificationReadRequestedEvent); ok {
			s.run(func(ctx context.Context) error {
				return s.MarkRead(ctx, event.ID)
			}, "Could not mark notification read")
		}
	})

	bus.Subscribe(eventbus.EventBalanceRequestSubmitted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.BalanceRequestSubmittedEvent); ok {
			s.run(func(ctx context.Context) error {
				return s.RequestBalance(ctx, event.Amount, event.Note)
			}, "Balance request failed")
		}
	})

	bus.Subscribe(eventbus.EventCashoutRequested, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CashoutRequestedEvent); ok {
			s.run(func(ctx context.Context) error {
				return s.Cashout(ctx, event.Input)
			}, "Cashout request failed")
		}
	})

	return s
}

// run executes fn with the service timeout and reports a failure on the bus
func (s *Service) run(fn func(ctx context.Context) error, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		log.Printf("%s: %v", message, err)
		s.bus.Publish(eventbus.ErrorEvent{Message: message, Err: err})
	}
}

// PlaceOrder orders a gig and publishes the new balance
func (s *Service) PlaceOrder(ctx context.Context, gigID int, requirements string) error {
	res, err := s.api.CreateOrder(ctx, gigID, strings.TrimSpace(requirements))
	if err != nil {
		return err
	}
	log.Printf("Placed order %d for gig %d", res.OrderID, gigID)

	s.bus.Publish(eventbus.OrderPlacedEvent{GigID: gigID, Result: *res})
	s.bus.Publish(eventbus.RefreshRequestedEvent{})
	return nil
}

// ChangeOrderStatus moves an order to status. Whether the transition is
// allowed is decided by the server.
func (s *Service) ChangeOrderStatus(ctx context.Context, orderID int, status string) error {
	msg, err := s.api.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return err
	}
	s.bus.Publish(eventbus.OrderStatusChangedEvent{OrderID: orderID, Status: status, Message: msg})
	return nil
}

// ValidateMessage trims text and rejects an empty message
func ValidateMessage(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyMessage
	}
	return text, nil
}

// SendMessage posts a non-empty message to an order thread
func (s *Service) SendMessage(ctx context.Context, orderID int, text string) error {
	text, err := ValidateMessage(text)
	if err != nil {
		return err
	}
	msg, err := s.api.SendMessage(ctx, orderID, text)
	if err != nil {
		return err
	}
	s.bus.Publish(eventbus.MessageSentEvent{OrderID: orderID, Message: *msg})
	return nil
}

// MarkRead marks one notification read, or all of them when id is 0
func (s *Service) MarkRead(ctx context.Context, id int) error {
	var err error
	if id == 0 {
		err = s.api.MarkAllNotificationsRead(ctx)
	} else {
		err = s.api.MarkNotificationRead(ctx, id)
	}
	if err != nil {
		return err
	}
	s.bus.Publish(eventbus.RefreshRequestedEvent{})
	return nil
}

// ValidateAmount rejects zero, negative and NaN amounts
func ValidateAmount(amount float64) error {
	if !(amount > 0) {
		return ErrInvalidAmount
	}
	return nil
}

// RequestBalance files a top-up request
func (s *Service) RequestBalance(ctx context.Context, amount float64, note string) error {
	if err := ValidateAmount(amount); err != nil {
		return err
	}
	if err := s.api.RequestBalance(ctx, amount, strings.TrimSpace(note)); err != nil {
		return err
	}
	s.bus.Publish(eventbus.BalanceRequestCreatedEvent{Amount: amount})
	return nil
}

// ValidateCashout checks a cashout form against the available earnings
func ValidateCashout(in domain.CashoutInput, available float64) error {
	if err := ValidateAmount(in.Amount); err != nil {
		return err
	}
	if strings.TrimSpace(in.PaymentMethod) == "" || strings.TrimSpace(in.PaymentDetails) == "" {
		return ErrMissingPayment
	}
	if in.Amount > available {
		return fmt.Errorf("%w (%.2f available)", ErrExceedsAvailable, available)
	}
	return nil
}

// Cashout validates against fresh available earnings and files the request
func (s *Service) Cashout(ctx context.Context, in domain.CashoutInput) error {
	avail, err := s.api.AvailableEarnings(ctx)
	if err != nil {
		return err
	}
	if err := ValidateCashout(in, avail.AvailableEarnings); err != nil {
		return err
	}
	if err := s.api.RequestCashout(ctx, in); err != nil {
		return err
	}
	s.bus.Publish(eventbus.CashoutCreatedEvent{Amount: in.Amount})
	return nil
}
