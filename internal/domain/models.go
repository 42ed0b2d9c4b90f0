package domain

// Gig is a sellable service listing as returned by the gig list endpoint
type Gig struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	SellerName   string  `json:"seller_name"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
	DeliveryTime int     `json:"delivery_time"` // days
}

// GigDetail is the full record returned by the gig detail endpoint
type GigDetail struct {
	Gig
	SellerID  int    `json:"seller_id"`
	CreatedAt string `json:"created_at"`
}

// GigQuery selects which gigs the list endpoint returns
type GigQuery struct {
	Category string
	Filter   string // one of the Filter* constants, "" means all
}

// Named gig list filters understood by the server
const (
	FilterAll      = "all"
	FilterTopRated = "top-rated"
	FilterNew      = "new"
)

// Filters lists the named filters in display order
var Filters = []string{FilterAll, FilterTopRated, FilterNew}

// Category is a gig category
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// MyGig is a gig owned by the current user
type MyGig struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	Category     string  `json:"category"`
	DeliveryTime int     `json:"delivery_time"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

// Order statuses
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderDelivered  = "delivered"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Order is an order seen from either the buyer or the seller side.
// BuyerName/Requirements are only set on the seller side, SellerName and
// DeliveryTime only on the buyer side.
type Order struct {
	ID           int     `json:"id"`
	GigTitle     string  `json:"gig_title"`
	SellerName   string  `json:"seller_name,omitempty"`
	BuyerName    string  `json:"buyer_name,omitempty"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
	DeliveryTime int     `json:"delivery_time,omitempty"`
	Requirements string  `json:"requirements,omitempty"`
}

// OrderResult is the outcome of placing an order
type OrderResult struct {
	OrderID    int     `json:"order_id"`
	NewBalance float64 `json:"new_balance"`
	Message    string  `json:"message"`
}

// Conversation summarizes the message thread of one order
type Conversation struct {
	OrderID         int    `json:"order_id"`
	GigTitle        string `json:"gig_title"`
	OtherUser       string `json:"other_user"`
	LastMessage     string `json:"last_message"`
	LastMessageTime string `json:"last_message_time"`
	UnreadCount     int    `json:"unread_count"`
	Status          string `json:"status"`
}

// Message is a single message in an order thread
type Message struct {
	ID        int    `json:"id"`
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	CreatedAt string `json:"created_at"`
	IsOwn     bool   `json:"is_own"`
}

// OrderInfo is the order header shown above a message thread
type OrderInfo struct {
	ID        int     `json:"id"`
	GigTitle  string  `json:"gig_title"`
	OtherUser string  `json:"other_user"`
	Status    string  `json:"status"`
	Price     float64 `json:"price"`
}

// Thread is an order's messages together with its header
type Thread struct {
	Messages  []Message `json:"messages"`
	OrderInfo OrderInfo `json:"order_info"`
}

// Notification types
const (
	NotificationOrderPlaced     = "order_placed"
	NotificationOrderAccepted   = "order_accepted"
	NotificationOrderDelivered  = "order_delivered"
	NotificationOrderCompleted  = "order_completed"
	NotificationOrderCancelled  = "order_cancelled"
	NotificationMessageReceived = "message_received"
	NotificationReviewReceived  = "review_received"
)

// Notification is a user notification
type Notification struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
	OrderID   *int   `json:"order_id"`
}

// Balance is the current user's credit balance
type Balance struct {
	Balance  float64 `json:"balance"`
	Username string  `json:"username"`
}

// GigEarnings aggregates completed orders of one gig
type GigEarnings struct {
	GigTitle    string  `json:"gig_title"`
	OrdersCount int     `json:"orders_count"`
	TotalEarned float64 `json:"total_earned"`
}

// RecentEarning is one completed sale
type RecentEarning struct {
	OrderID     int     `json:"order_id"`
	GigTitle    string  `json:"gig_title"`
	Amount      float64 `json:"amount"`
	Buyer       string  `json:"buyer"`
	CompletedAt string  `json:"completed_at"`
}

// Earnings is the seller earnings breakdown
type Earnings struct {
	TotalEarnings  float64         `json:"total_earnings"`
	TotalOrders    int             `json:"total_orders"`
	EarningsByGig  []GigEarnings   `json:"earnings_by_gig"`
	RecentEarnings []RecentEarning `json:"recent_earnings"`
}

// AvailableEarnings is what a seller can still cash out
type AvailableEarnings struct {
	TotalEarnings     float64 `json:"total_earnings"`
	TotalCashedOut    float64 `json:"total_cashed_out"`
	AvailableEarnings float64 `json:"available_earnings"`
}

// Request statuses shared by balance and cashout requests
const (
	RequestPending  = "pending"
	RequestApproved = "approved"
	RequestRejected = "rejected"
)

// BalanceRequest asks an admin to top up the user's balance
type BalanceRequest struct {
	ID        int     `json:"id"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
	AdminNote string  `json:"admin_note"`
	Status    string  `json:"status"`
	CreatedAt string  `json:"created_at"`
}

// CashoutRequest asks an admin to pay out seller earnings
type CashoutRequest struct {
	ID             int     `json:"id"`
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	PaymentDetails string  `json:"payment_details"`
	Note           string  `json:"note"`
	AdminNote      string  `json:"admin_note"`
	Status         string  `json:"status"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

// CashoutInput is the form submitted for a cashout
type CashoutInput struct {
	Amount         float64 `json:"amount"`
	PaymentMethod  string  `json:"payment_method"`
	PaymentDetails string  `json:"payment_details"`
	Note           string  `json:"note"`
}
