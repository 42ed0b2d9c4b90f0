package api

import (
	"context"
	"fmt"
	"net/url"

	"gigboard/internal/domain"
)

// ListGigs returns the gig list for q. An empty or "all" filter sends no
// filter parameter.
func (c *Client) ListGigs(ctx context.Context, q domain.GigQuery) ([]domain.Gig, error) {
	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Filter != "" && q.Filter != domain.FilterAll {
		params.Set("filter", q.Filter)
	}

	var out struct {
		Gigs []domain.Gig `json:"gigs"`
	}
	if err := c.getJSON(ctx, "/api/gigs/", params, &out); err != nil {
		return nil, fmt.Errorf("failed to load gigs: %w", err)
	}
	return out.Gigs, nil
}

// GetGig returns the full record of one gig
func (c *Client) GetGig(ctx context.Context, id int) (*domain.GigDetail, error) {
	var out domain.GigDetail
	if err := c.getJSON(ctx, fmt.Sprintf("/api/gigs/%d/", id), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load gig %d: %w", id, err)
	}
	return &out, nil
}

// Categories returns every gig category
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var out struct {
		Categories []domain.Category `json:"categories"`
	}
	if err := c.getJSON(ctx, "/api/categories/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	return out.Categories, nil
}

// MyGigs returns the gigs owned by the current user
func (c *Client) MyGigs(ctx context.Context) ([]domain.MyGig, error) {
	var out struct {
		Gigs []domain.MyGig `json:"gigs"`
	}
	if err := c.getJSON(ctx, "/api/my-gigs/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load my gigs: %w", err)
	}
	return out.Gigs, nil
}

// CreateOrder places an order on a gig, paying from the user's balance
func (c *Client) CreateOrder(ctx context.Context, gigID int, requirements string) (*domain.OrderResult, error) {
	body := map[string]any{"gig_id": gigID, "requirements": requirements}
	var out domain.OrderResult
	if err := c.postJSON(ctx, "/api/orders/create/", body, &out); err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}
	return &out, nil
}

// BuyerOrders returns the orders the current user placed
func (c *Client) BuyerOrders(ctx context.Context) ([]domain.Order, error) {
	return c.orders(ctx, "/api/orders/buyer/")
}

// SellerOrders returns the orders placed on the current user's gigs
func (c *Client) SellerOrders(ctx context.Context) ([]domain.Order, error) {
	return c.orders(ctx, "/api/orders/seller/")
}

func (c *Client) orders(ctx context.Context, path string) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}
	return out.Orders, nil
}

// UpdateOrderStatus moves an order to status and returns the server's message
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID int, status string) (string, error) {
	var out struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/api/orders/%d/status/", orderID)
	if err := c.postJSON(ctx, path, map[string]string{"status": status}, &out); err != nil {
		return "", fmt.Errorf("failed to update order %d: %w", orderID, err)
	}
	return out.Message, nil
}

// Conversations returns the order threads and the total unread count
func (c *Client) Conversations(ctx context.Context) ([]domain.Conversation, int, error) {
	var out struct {
		Conversations []domain.Conversation `json:"conversations"`
		TotalUnread   int                   `json:"total_unread"`
	}
	if err := c.getJSON(ctx, "/api/conversations/", nil, &out); err != nil {
		return nil, 0, fmt.Errorf("failed to load conversations: %w", err)
	}
	return out.Conversations, out.TotalUnread, nil
}

// Messages returns an order's thread. Loading it marks it read on the server.
func (c *Client) Messages(ctx context.Context, orderID int) (*domain.Thread, error) {
	var out domain.Thread
	if err := c.getJSON(ctx, fmt.Sprintf("/api/orders/%d/messages/", orderID), nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	return &out, nil
}

// SendMessage posts text to an order thread
func (c *Client) SendMessage(ctx context.Context, orderID int, text string) (*domain.Message, error) {
	var out struct {
		MessageID int    `json:"message_id"`
		Sender    string `json:"sender"`
		Message   string `json:"message"`
		CreatedAt string `json:"created_at"`
	}
	path := fmt.Sprintf("/api/orders/%d/send-message/", orderID)
	if err := c.postJSON(ctx, path, map[string]string{"message": text}, &out); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	return &domain.Message{
		ID:        out.MessageID,
		Sender:    out.Sender,
		Message:   out.Message,
		CreatedAt: out.CreatedAt,
		IsOwn:     true,
	}, nil
}

// Notifications returns the latest notifications and the unread count
func (c *Client) Notifications(ctx context.Context) ([]domain.Notification, int, error) {
	var out struct {
		Notifications []domain.Notification `json:"notifications"`
		UnreadCount   int                   `json:"unread_count"`
	}
	if err := c.getJSON(ctx, "/api/notifications/", nil, &out); err != nil {
		return nil, 0, fmt.Errorf("failed to load notifications: %w", err)
	}
	return out.Notifications, out.UnreadCount, nil
}

// MarkNotificationRead marks one notification read
func (c *Client) MarkNotificationRead(ctx context.Context, id int) error {
	if err := c.postJSON(ctx, fmt.Sprintf("/api/notifications/%d/read/", id), nil, nil); err != nil {
		return fmt.Errorf("failed to mark notification %d read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification read
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.postJSON(ctx, "/api/notifications/mark-all-read/", nil, nil); err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// Balance returns the current user's balance
func (c *Client) Balance(ctx context.Context) (*domain.Balance, error) {
	var out domain.Balance
	if err := c.getJSON(ctx, "/api/user/balance/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load balance: %w", err)
	}
	return &out, nil
}

// SellerEarnings returns the seller earnings breakdown
func (c *Client) SellerEarnings(ctx context.Context) (*domain.Earnings, error) {
	var out domain.Earnings
	if err := c.getJSON(ctx, "/api/seller/earnings/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load earnings: %w", err)
	}
	return &out, nil
}

// RequestBalance files a balance top-up request
func (c *Client) RequestBalance(ctx context.Context, amount float64, note string) error {
	body := map[string]any{"amount": amount, "note": note}
	if err := c.postJSON(ctx, "/api/balance-request/", body, nil); err != nil {
		return fmt.Errorf("failed to request balance: %w", err)
	}
	return nil
}

// BalanceRequests returns the user's top-up requests
func (c *Client) BalanceRequests(ctx context.Context) ([]domain.BalanceRequest, error) {
	var out struct {
		Requests []domain.BalanceRequest `json:"requests"`
	}
	if err := c.getJSON(ctx, "/api/balance-requests/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load balance requests: %w", err)
	}
	return out.Requests, nil
}

// AvailableEarnings returns what the seller can still cash out
func (c *Client) AvailableEarnings(ctx context.Context) (*domain.AvailableEarnings, error) {
	var out domain.AvailableEarnings
	if err := c.getJSON(ctx, "/api/available-earnings/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load available earnings: %w", err)
	}
	return &out, nil
}

// RequestCashout files a cashout request
func (c *Client) RequestCashout(ctx context.Context, in domain.CashoutInput) error {
	if err := c.postJSON(ctx, "/api/cashout-request/", in, nil); err != nil {
		return fmt.Errorf("failed to request cashout: %w", err)
	}
	return nil
}

// CashoutRequests returns the seller's cashout requests
func (c *Client) CashoutRequests(ctx context.Context) ([]domain.CashoutRequest, error) {
	var out struct {
		Requests []domain.CashoutRequest `json:"requests"`
	}
	if err := c.getJSON(ctx, "/api/cashout-requests/", nil, &out); err != nil {
		return nil, fmt.Errorf("failed to load cashout requests: %w", err)
	}
	return out.Requests, nil
}
