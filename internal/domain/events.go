package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventBalanceUpdated            EventType = "BalanceUpdated"
	EventNotificationsUpdated      EventType = "NotificationsUpdated"
	EventConversationsUpdated      EventType = "ConversationsUpdated"
	EventOrderRequested            EventType = "OrderRequested"
	EventOrderPlaced               EventType = "OrderPlaced"
	EventOrderStatusRequested      EventType = "OrderStatusRequested"
	EventOrderStatusChanged        EventType = "OrderStatusChanged"
	EventMessageSendRequested      EventType = "MessageSendRequested"
	EventMessageSent               EventType = "MessageSent"
	EventNotificationReadRequested EventType = "NotificationReadRequested"
	EventBalanceRequestSubmitted   EventType = "BalanceRequestSubmitted"
	EventBalanceRequestCreated     EventType = "BalanceRequestCreated"
	EventCashoutRequested          EventType = "CashoutRequested"
	EventCashoutCreated            EventType = "CashoutCreated"
	EventRefreshRequested          EventType = "RefreshRequested"
	EventError                     EventType = "Error"
	EventConfigLoaded              EventType = "ConfigLoaded"
	EventConfigSaved               EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// BalanceUpdatedEvent carries a fresh balance reading
type BalanceUpdatedEvent struct {
	Balance Balance
}

func (e BalanceUpdatedEvent) Type() EventType { return EventBalanceUpdated }

// NotificationsUpdatedEvent carries the latest notifications page
type NotificationsUpdatedEvent struct {
	Notifications []Notification
	UnreadCount   int
}

func (e NotificationsUpdatedEvent) Type() EventType { return EventNotificationsUpdated }

// ConversationsUpdatedEvent carries the latest conversation list
type ConversationsUpdatedEvent struct {
	Conversations []Conversation
	TotalUnread   int
}

func (e ConversationsUpdatedEvent) Type() EventType { return EventConversationsUpdated }

// OrderRequestedEvent asks for an order to be placed on a gig
type OrderRequestedEvent struct {
	GigID        int
	Requirements string
}

func (e OrderRequestedEvent) Type() EventType { return EventOrderRequested }

// OrderPlacedEvent is emitted when the server accepted an order
type OrderPlacedEvent struct {
	GigID  int
	Result OrderResult
}

func (e OrderPlacedEvent) Type() EventType { return EventOrderPlaced }

// OrderStatusRequestedEvent asks for an order status transition
type OrderStatusRequestedEvent struct {
	OrderID int
	Status  string
}

func (e OrderStatusRequestedEvent) Type() EventType { return EventOrderStatusRequested }

// OrderStatusChangedEvent is emitted when a status transition succeeded
type OrderStatusChangedEvent struct {
	OrderID int
	Status  string
	Message string
}

func (e OrderStatusChangedEvent) Type() EventType { return EventOrderStatusChanged }

// MessageSendRequestedEvent asks for a message to be sent on an order thread
type MessageSendRequestedEvent struct {
	OrderID int
	Text    string
}

func (e MessageSendRequestedEvent) Type() EventType { return EventMessageSendRequested }

// MessageSentEvent is emitted after a message was stored
type MessageSentEvent struct {
	OrderID int
	Message Message
}

func (e MessageSentEvent) Type() EventType { return EventMessageSent }

// NotificationReadRequestedEvent marks one notification read, or all of them when ID is 0
type NotificationReadRequestedEvent struct {
	ID int
}

func (e NotificationReadRequestedEvent) Type() EventType { return EventNotificationReadRequested }

// BalanceRequestSubmittedEvent asks for a balance top-up
type BalanceRequestSubmittedEvent struct {
	Amount float64
	Note   string
}

func (e BalanceRequestSubmittedEvent) Type() EventType { return EventBalanceRequestSubmitted }

// BalanceRequestCreatedEvent is emitted when a top-up request was filed
type BalanceRequestCreatedEvent struct {
	Amount float64
}

func (e BalanceRequestCreatedEvent) Type() EventType { return EventBalanceRequestCreated }

// CashoutRequestedEvent asks for a payout of seller earnings
type CashoutRequestedEvent struct {
	Input CashoutInput
}

func (e CashoutRequestedEvent) Type() EventType { return EventCashoutRequested }

// CashoutCreatedEvent is emitted when a cashout request was filed
type CashoutCreatedEvent struct {
	Amount float64
}

func (e CashoutCreatedEvent) Type() EventType { return EventCashoutCreated }

// RefreshRequestedEvent asks the pollers to refresh immediately
type RefreshRequestedEvent struct{}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	BaseURL  string
	Username string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct{}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
