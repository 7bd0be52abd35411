package main

// MinColumnWidth is the narrowest the text column can be adjusted to.
const MinColumnWidth = 20

// ColumnAdjust manages the column width adjustment overlay. Because the
// column width is the wrap width, every Increase/Decrease reflows the
// document the same way a terminal resize does.
type ColumnAdjust struct {
	Active    bool
	Width     int // Current adjusted width
	OrigWidth int // Width before opening (for cancel/restore)
}

// Show activates the adjuster seeded with the current width.
func (c *ColumnAdjust) Show(currentWidth int) {
	c.Active = true
	c.Width = currentWidth
	c.OrigWidth = currentWidth
}

// Hide deactivates the adjuster.
func (c *ColumnAdjust) Hide() {
	c.Active = false
}

// Increase bumps the width by 1, clamped to maxWidth.
func (c *ColumnAdjust) Increase(maxWidth int) {
	if c.Width < maxWidth {
		c.Width++
	}
}

// Decrease shrinks the width by 1, clamped to MinColumnWidth.
func (c *ColumnAdjust) Decrease() {
	if c.Width > MinColumnWidth {
		c.Width--
	}
}

// Cancel restores the width the adjuster opened with.
func (c *ColumnAdjust) Cancel() int {
	c.Width = c.OrigWidth
	return c.Width
}
