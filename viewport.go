package main

// DefaultColumnWidth is the target text column width in character cells.
var DefaultColumnWidth = 72

// Viewport manages the visible window into the wrapped document. All
// scrolling is counted in visual rows: one logical line that wraps over
// four rows consumes four scroll steps, exactly as drawn.
type Viewport struct {
	Width          int // Terminal width in cells
	Height         int // Terminal height (status bar uses the last row)
	ColWidth       int // Text column width; this is the wrap width
	LeftMargin     int // Left margin for centring (includes the gutter)
	TargetColWidth int // User-adjustable target column width
	GutterWidth    int // Cells reserved for line numbers, 0 when disabled
}

func NewViewport(termWidth, termHeight int) *Viewport {
	v := &Viewport{
		Width:          termWidth,
		Height:         termHeight,
		TargetColWidth: DefaultColumnWidth,
	}
	v.recalcLayout()
	return v
}

func (v *Viewport) recalcLayout() {
	target := v.TargetColWidth
	if target <= 0 {
		target = DefaultColumnWidth
	}
	avail := v.Width - v.GutterWidth
	if avail < 1 {
		avail = 1
	}
	if avail >= target {
		v.ColWidth = target
		v.LeftMargin = v.GutterWidth + (avail-target)/2
	} else {
		v.ColWidth = avail
		v.LeftMargin = v.GutterWidth
	}
}

// Resize updates the viewport for new terminal dimensions. The caller
// must treat this like an edit: the wrap width may have changed, so every
// wrap cache needs invalidating.
func (v *Viewport) Resize(termWidth, termHeight int) {
	v.Width = termWidth
	v.Height = termHeight
	v.recalcLayout()
}

// SetGutter reserves cells for the line-number gutter.
func (v *Viewport) SetGutter(cells int) {
	if cells < 0 {
		cells = 0
	}
	if cells != v.GutterWidth {
		v.GutterWidth = cells
		v.recalcLayout()
	}
}

// SetTargetWidth changes the target column width, which changes the wrap
// width. Same contract as Resize: invalidate wrap caches afterwards.
func (v *Viewport) SetTargetWidth(w int) {
	v.TargetColWidth = w
	v.recalcLayout()
}

// VisibleRows returns the number of text rows visible above the status
// bar. When scrolled to the very top, one row is given up as padding so
// the text clears the terminal chrome.
func (v *Viewport) VisibleRows(scrollTop int) int {
	vis := v.Height - 1
	if scrollTop == 0 && vis > 1 {
		vis--
	}
	return vis
}

// EnsureVisible adjusts scrollTop so the given visual row is on screen,
// clamped to [0, totalRows-visible]. The cursor-reveal path after every
// move and edit.
func (v *Viewport) EnsureVisible(row, totalRows int, scrollTop *int) {
	vis := v.VisibleRows(*scrollTop)
	if vis <= 0 {
		return
	}
	if row < *scrollTop {
		*scrollTop = row
	}
	if row >= *scrollTop+vis {
		*scrollTop = row - vis + 1
	}
	maxTop := totalRows - vis
	if maxTop < 0 {
		maxTop = 0
	}
	if *scrollTop > maxTop {
		*scrollTop = maxTop
	}
	if *scrollTop < 0 {
		*scrollTop = 0
	}
}

// PageSize returns how many visual rows PageUp/PageDown travel.
func (v *Viewport) PageSize(scrollTop int) int {
	return v.VisibleRows(scrollTop)
}
