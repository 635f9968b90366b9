package ui

// stateMsg signals that the store published a new snapshot
type stateMsg struct{}

// storeClosedMsg signals that the store subscription has ended
type storeClosedMsg struct{}

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}
