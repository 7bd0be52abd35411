package main

// listNav is the selection cursor shared by the list-style overlays
// (buffer picker, outline). Movement clamps at both ends; the item
// count is passed per move because the backing list can change while
// the overlay is open.
type listNav struct {
	Selected int
}

// Up moves the selection up, clamping at 0.
func (n *listNav) Up() {
	if n.Selected > 0 {
		n.Selected--
	}
}

// Down moves the selection down, clamping at count-1.
func (n *listNav) Down(count int) {
	if n.Selected < count-1 {
		n.Selected++
	}
}

// Picker manages the buffer-switching overlay state.
type Picker struct {
	Active bool
	listNav
}

// Show activates the picker with the given buffer pre-selected.
func (p *Picker) Show(currentIndex int) {
	p.Active = true
	p.Selected = currentIndex
}

// Hide deactivates the picker.
func (p *Picker) Hide() {
	p.Active = false
}
