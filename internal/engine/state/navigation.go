// Package state holds the cursor state of an active screen.
package state

// Navigation tracks the vertical entry cursor and the lateral action cursor
// of one screen. Both cursors are clamped to their limits.
type Navigation struct {
	Position        int
	LateralPosition int
	verticalLimit   int
	lateralLimit    int
}

// NewNavigation sizes the cursors for entries rows and actions buttons.
func NewNavigation(entries, actions int) *Navigation {
	return &Navigation{verticalLimit: entries, lateralLimit: actions}
}

// Up moves the entry cursor up and reports whether it moved.
func (n *Navigation) Up() bool {
	return n.moveVertical(-1)
}

// Down moves the entry cursor down and reports whether it moved.
func (n *Navigation) Down() bool {
	return n.moveVertical(1)
}

func (n *Navigation) Left() bool {
	return n.moveLateral(-1)
}

func (n *Navigation) Right() bool {
	return n.moveLateral(1)
}

// ResetLateral puts the action cursor back on the first action.
func (n *Navigation) ResetLateral() {
	n.LateralPosition = 0
}

// SetLateral selects action index, ignoring out of range values.
func (n *Navigation) SetLateral(index int) bool {
	if index < 0 || index >= n.lateralLimit {
		return false
	}
	n.LateralPosition = index
	return true
}

// SetPosition selects entry index, ignoring out of range values.
func (n *Navigation) SetPosition(index int) bool {
	if index < 0 || index >= n.verticalLimit {
		return false
	}
	n.Position = index
	return true
}

func (n *Navigation) moveVertical(delta int) bool {
	old := n.Position
	n.Position = clamp(n.Position+delta, n.verticalLimit)
	return old != n.Position
}

func (n *Navigation) moveLateral(delta int) bool {
	old := n.LateralPosition
	n.LateralPosition = clamp(n.LateralPosition+delta, n.lateralLimit)
	return old != n.LateralPosition
}

func clamp(pos, limit int) int {
	if pos >= limit {
		pos = limit - 1
	}
	if pos < 0 {
		pos = 0
	}
	return pos
}
