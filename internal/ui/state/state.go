package state

import (
	"strings"

	"gigboard/internal/domain"
	"gigboard/internal/ui/input/types"
)

// Resource names a piece of server data a panel shows
type Resource int

const (
	ResGigs Resource = iota
	ResCategories
	ResBuyerOrders
	ResSellerOrders
	ResMyGigs
	ResWallet
	ResThread
	ResDetail
)

// Wallet groups everything the wallet panel shows
type Wallet struct {
	Earnings        *domain.Earnings
	Available       *domain.AvailableEarnings
	BalanceRequests []domain.BalanceRequest
	Cashouts        []domain.CashoutRequest
}

// Form is a multi-field prompt filled one field at a time
type Form struct {
	Mode   types.Mode
	Fields []string
	Values []string
}

// Step returns the index of the field being filled
func (f *Form) Step() int {
	return len(f.Values)
}

// Done reports whether every field has a value
func (f *Form) Done() bool {
	return len(f.Values) >= len(f.Fields)
}

// Prompt returns the label of the field being filled
func (f *Form) Prompt() string {
	if f.Done() {
		return ""
	}
	return f.Fields[f.Step()]
}

// AppState contains all the application state
type AppState struct {
	Panel         types.Panel
	SelectedIndex int
	// Cursor remembers the selected row of every panel
	Cursor         map[types.Panel]int
	ViewportOffset int
	ViewportHeight int

	// Header counters kept fresh by the pollers
	Balance             *domain.Balance
	Notifications       []domain.Notification
	UnreadNotifications int
	Conversations       []domain.Conversation
	UnreadMessages      int

	// Panel data
	Categories    []domain.Category
	CategoryIndex int // 0 is "all categories", n is Categories[n-1]
	FilterIndex   int // index into domain.Filters
	BuyerOrders   []domain.Order
	SellerOrders  []domain.Order
	MyGigs        []domain.MyGig
	Wallet        Wallet

	// Popups
	Detail   *domain.GigDetail
	Thread   *domain.Thread
	ShowHelp bool

	// Pending input
	PendingGig   *domain.Gig
	Requirements string
	Form         *Form

	Loading       map[Resource]bool
	Errors        map[Resource]error
	StatusMessage string
	StatusIsError bool
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Cursor:         make(map[types.Panel]int),
		ViewportHeight: 20,
		Loading:        make(map[Resource]bool),
		Errors:         make(map[Resource]error),
	}
}

// SetPanel switches panels, remembering the cursor of the old one
func (s *AppState) SetPanel(p types.Panel) {
	if p == s.Panel {
		return
	}
	s.Cursor[s.Panel] = s.SelectedIndex
	s.Panel = p
	s.SelectedIndex = s.Cursor[p]
	s.ViewportOffset = 0
}

// HasPopup reports whether a popup covers the panel
func (s *AppState) HasPopup() bool {
	return s.Detail != nil || s.Thread != nil || s.ShowHelp
}

// ClosePopup closes the top-most popup
func (s *AppState) ClosePopup() {
	switch {
	case s.ShowHelp:
		s.ShowHelp = false
	case s.Thread != nil:
		s.Thread = nil
	default:
		s.Detail = nil
	}
}

// Category returns the selected category name, "" for all
func (s *AppState) Category() string {
	if s.CategoryIndex <= 0 || s.CategoryIndex > len(s.Categories) {
		return ""
	}
	return s.Categories[s.CategoryIndex-1].Name
}

// Filter returns the selected named filter
func (s *AppState) Filter() string {
	return domain.Filters[s.FilterIndex%len(domain.Filters)]
}

// Query builds the gig query from the category and filter selection
func (s *AppState) Query() domain.GigQuery {
	return domain.GigQuery{Category: s.Category(), Filter: s.Filter()}
}

// CycleFilter selects the next named filter
func (s *AppState) CycleFilter() {
	s.FilterIndex = (s.FilterIndex + 1) % len(domain.Filters)
}

// CycleCategory moves the category selection by delta, wrapping through "all"
func (s *AppState) CycleCategory(delta int) {
	n := len(s.Categories) + 1
	s.CategoryIndex = ((s.CategoryIndex+delta)%n + n) % n
}

// SelectCategory selects a category by name, ignoring case. Unknown names
// select all categories.
func (s *AppState) SelectCategory(name string) bool {
	for i, c := range s.Categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			s.CategoryIndex = i + 1
			return true
		}
	}
	s.CategoryIndex = 0
	return false
}

// SelectFilter selects a named filter; unknown names select "all"
func (s *AppState) SelectFilter(name string) bool {
	for i, f := range domain.Filters {
		if f == name {
			s.FilterIndex = i
			return true
		}
	}
	s.FilterIndex = 0
	return false
}

// PanelLen returns the number of selectable rows of a list panel. The gig
// grid is owned by the catalog controller and the wallet has no rows.
func (s *AppState) PanelLen() int {
	switch s.Panel {
	case types.PanelOrders:
		return len(s.BuyerOrders)
	case types.PanelSales:
		return len(s.SellerOrders)
	case types.PanelMyGigs:
		return len(s.MyGigs)
	case types.PanelInbox:
		return len(s.Conversations)
	case types.PanelNotifications:
		return len(s.Notifications)
	}
	return 0
}

// OrderIDAt returns the order behind row i of the current panel, 0 if none
func (s *AppState) OrderIDAt(i int) int {
	if i < 0 {
		return 0
	}
	switch s.Panel {
	case types.PanelOrders:
		if i < len(s.BuyerOrders) {
			return s.BuyerOrders[i].ID
		}
	case types.PanelSales:
		if i < len(s.SellerOrders) {
			return s.SellerOrders[i].ID
		}
	case types.PanelInbox:
		if i < len(s.Conversations) {
			return s.Conversations[i].OrderID
		}
	case types.PanelNotifications:
		if i < len(s.Notifications) && s.Notifications[i].OrderID != nil {
			return *s.Notifications[i].OrderID
		}
	}
	return 0
}

// ApprovedCashouts returns the cashout history: approved requests only
func (s *AppState) ApprovedCashouts() []domain.CashoutRequest {
	var out []domain.CashoutRequest
	for _, c := range s.Wallet.Cashouts {
		if c.Status == domain.RequestApproved {
			out = append(out, c)
		}
	}
	return out
}

// SetStatus shows a message in the status line
func (s *AppState) SetStatus(msg string, isError bool) {
	s.StatusMessage = msg
	s.StatusIsError = isError
}

// ClampSelection keeps the cursor inside a list of n rows
func (s *AppState) ClampSelection(n int) {
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}
