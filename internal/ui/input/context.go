package input

import (
	"gigboard/internal/ui/input/types"
	"gigboard/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
	// GigCount and ShowMore describe the rendered gig grid
	GigCount int
	ShowMore bool
	Term     string
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of rows in the current panel
func (c *ModelContext) TotalItems() int {
	if c.State.Panel == types.PanelGigs {
		return c.GigCount
	}
	return c.State.PanelLen()
}

// CurrentPanel returns the visible panel
func (c *ModelContext) CurrentPanel() types.Panel {
	return c.State.Panel
}

// CurrentOrderID returns the order of the open thread, or the one behind the
// highlighted row
func (c *ModelContext) CurrentOrderID() int {
	if c.State.Thread != nil {
		return c.State.Thread.OrderInfo.ID
	}
	return c.State.OrderIDAt(c.State.SelectedIndex)
}

// SearchTerm returns the active gig search term
func (c *ModelContext) SearchTerm() string {
	return c.Term
}

// HasPopup reports whether a detail, thread or help popup is open
func (c *ModelContext) HasPopup() bool {
	return c.State.HasPopup()
}

// CanShowMore reports whether the gig grid has another page
func (c *ModelContext) CanShowMore() bool {
	return c.ShowMore
}
