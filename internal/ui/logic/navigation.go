package logic

// Navigator handles navigation and viewport management for a flat list
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	totalItems     int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the navigator's state
func (n *Navigator) UpdateState(selectedIndex, viewportOffset, viewportHeight, totalItems int) {
	n.selectedIndex = selectedIndex
	n.viewportOffset = viewportOffset
	n.viewportHeight = viewportHeight
	n.totalItems = totalItems
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// GetMaxIndex returns the maximum selectable index, -1 for an empty list
func (n *Navigator) GetMaxIndex() int {
	return n.totalItems - 1
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move moves the selection by delta rows, stopping at the ends
func (n *Navigator) Move(delta int) (int, int) {
	return n.SetSelectedIndex(n.selectedIndex + delta)
}

// PageUp moves the selection up by one page
func (n *Navigator) PageUp() (int, int) {
	return n.Move(-n.pageSize())
}

// PageDown moves the selection down by one page
func (n *Navigator) PageDown() (int, int) {
	return n.Move(n.pageSize())
}

// Home selects the first row
func (n *Navigator) Home() (int, int) {
	return n.SetSelectedIndex(0)
}

// End selects the last row
func (n *Navigator) End() (int, int) {
	return n.SetSelectedIndex(n.GetMaxIndex())
}

// pageSize leaves one row of overlap between pages
func (n *Navigator) pageSize() int {
	if n.viewportHeight > 2 {
		return n.viewportHeight - 1
	}
	return 1
}

// ensureSelectedVisible clamps the selection and scrolls the viewport so the
// selected row is inside it
func (n *Navigator) ensureSelectedVisible() {
	if n.selectedIndex > n.GetMaxIndex() {
		n.selectedIndex = n.GetMaxIndex()
	}
	if n.selectedIndex < 0 {
		n.selectedIndex = 0
	}

	height := n.viewportHeight
	if height < 1 {
		height = 1
	}

	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	if n.selectedIndex >= n.viewportOffset+height {
		n.viewportOffset = n.selectedIndex - height + 1
	}

	// Never leave blank rows below the last item
	maxOffset := n.totalItems - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}
