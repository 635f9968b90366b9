package logic

// Navigator handles cursor movement and viewport management for the result
// list. When the list scrolls, a line at the top and bottom is given to the
// "more above" and "more below" indicators.
type Navigator struct {
	selectedIndex  int
	viewportOffset int
	viewportHeight int
	itemCount      int
}

// NewNavigator creates a new navigator
func NewNavigator() *Navigator {
	return &Navigator{}
}

// UpdateState updates the list size and the lines available to it, keeping
// the selection in range and on screen
func (n *Navigator) UpdateState(itemCount, viewportHeight int) {
	n.itemCount = max(itemCount, 0)
	n.viewportHeight = max(viewportHeight, 0)
	n.ensureSelectedVisible()
}

// Reset moves the selection back to the first item
func (n *Navigator) Reset() {
	n.selectedIndex = 0
	n.viewportOffset = 0
}

// GetSelectedIndex returns the current selected index
func (n *Navigator) GetSelectedIndex() int {
	return n.selectedIndex
}

// GetViewportOffset returns the current viewport offset
func (n *Navigator) GetViewportOffset() int {
	return n.viewportOffset
}

// SetSelectedIndex sets the selected index and ensures it's visible
func (n *Navigator) SetSelectedIndex(index int) (int, int) {
	n.selectedIndex = index
	n.ensureSelectedVisible()
	return n.selectedIndex, n.viewportOffset
}

// Move applies a navigation direction: up, down, pageup, pagedown, home or end
func (n *Navigator) Move(direction string) {
	page := max(n.visibleRows(n.viewportOffset), 1)
	switch direction {
	case "up":
		n.SetSelectedIndex(n.selectedIndex - 1)
	case "down":
		n.SetSelectedIndex(n.selectedIndex + 1)
	case "pageup":
		n.SetSelectedIndex(n.selectedIndex - page)
	case "pagedown":
		n.SetSelectedIndex(n.selectedIndex + page)
	case "home":
		n.SetSelectedIndex(0)
	case "end":
		n.SetSelectedIndex(n.itemCount - 1)
	}
}

// VisibleRange returns the half-open range of items on screen
func (n *Navigator) VisibleRange() (int, int) {
	return n.viewportOffset, min(n.viewportOffset+n.visibleRows(n.viewportOffset), n.itemCount)
}

// visibleRows is the number of items that fit when the list starts at offset
func (n *Navigator) visibleRows(offset int) int {
	if n.viewportHeight == 0 || n.itemCount <= n.viewportHeight {
		return n.itemCount
	}
	rows := n.viewportHeight
	if offset > 0 {
		rows-- // top indicator
	}
	if offset+rows < n.itemCount {
		rows-- // bottom indicator
	}
	return max(rows, 1)
}

func (n *Navigator) ensureSelectedVisible() {
	if n.itemCount == 0 {
		n.selectedIndex, n.viewportOffset = 0, 0
		return
	}
	n.selectedIndex = min(max(n.selectedIndex, 0), n.itemCount-1)
	n.viewportOffset = min(max(n.viewportOffset, 0), n.itemCount-1)

	// If selected item is above viewport, scroll up
	if n.selectedIndex < n.viewportOffset {
		n.viewportOffset = n.selectedIndex
	}
	// If selected item is below viewport, scroll down
	for n.selectedIndex >= n.viewportOffset+n.visibleRows(n.viewportOffset) {
		n.viewportOffset++
	}
	// Don't leave blank lines at the bottom when the list shrinks
	for n.viewportOffset > 0 {
		prev := n.viewportOffset - 1
		if prev+n.visibleRows(prev) < n.itemCount {
			break
		}
		n.viewportOffset = prev
	}
}
