package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeOrderConfirm
	ModeRequirements
	ModeCompose
	ModeBalanceRequest
	ModeCashout
)

// Panel identifies one of the top-level screens
type Panel int

const (
	PanelGigs Panel = iota
	PanelOrders
	PanelSales
	PanelMyGigs
	PanelInbox
	PanelNotifications
	PanelWallet
)

// Panels lists the panels in tab order
var Panels = []Panel{PanelGigs, PanelOrders, PanelSales, PanelMyGigs, PanelInbox, PanelNotifications, PanelWallet}

// Title returns the tab label of the panel
func (p Panel) Title() string {
	switch p {
	case PanelGigs:
		return "Gigs"
	case PanelOrders:
		return "My Orders"
	case PanelSales:
		return "Sales"
	case PanelMyGigs:
		return "My Gigs"
	case PanelInbox:
		return "Messages"
	case PanelNotifications:
		return "Notifications"
	case PanelWallet:
		return "Wallet"
	}
	return "?"
}

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Context provides read-only access to model state needed for input handling
type Context interface {
	CurrentIndex() int
	TotalItems() int
	CurrentPanel() Panel
	// CurrentOrderID is the order behind the highlighted row, 0 if none
	CurrentOrderID() int
	SearchTerm() string
	HasPopup() bool
	CanShowMore() bool
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Enter is called when entering this mode
	Enter(ctx Context) []Action

	// Exit is called when leaving this mode
	Exit(ctx Context) []Action

	// Name returns the mode name for display
	Name() string
}
