package main

import "testing"

func TestViewportCentresColumn(t *testing.T) {
	vp := NewViewport(100, 24)
	if vp.ColWidth != DefaultColumnWidth {
		t.Errorf("col width: %d", vp.ColWidth)
	}
	if vp.LeftMargin != (100-DefaultColumnWidth)/2 {
		t.Errorf("left margin: %d", vp.LeftMargin)
	}
}

func TestViewportNarrowTerminal(t *testing.T) {
	vp := NewViewport(50, 24)
	if vp.ColWidth != 50 {
		t.Errorf("narrow terminal should use full width, got %d", vp.ColWidth)
	}
	if vp.LeftMargin != 0 {
		t.Errorf("left margin: %d", vp.LeftMargin)
	}
}

func TestViewportGutterReservesCells(t *testing.T) {
	vp := NewViewport(100, 24)
	vp.SetGutter(5)
	if vp.LeftMargin < 5 {
		t.Errorf("margin must include the gutter, got %d", vp.LeftMargin)
	}
	if vp.ColWidth != DefaultColumnWidth {
		t.Errorf("wide terminal keeps target width, got %d", vp.ColWidth)
	}

	vp.Resize(60, 24)
	if vp.ColWidth != 55 {
		t.Errorf("gutter should shrink the text column, got %d", vp.ColWidth)
	}
}

func TestVisibleRowsTopPadding(t *testing.T) {
	vp := NewViewport(80, 24)
	if got := vp.VisibleRows(0); got != 22 {
		t.Errorf("at top: %d rows", got)
	}
	if got := vp.VisibleRows(5); got != 23 {
		t.Errorf("scrolled: %d rows", got)
	}
}

func TestEnsureVisibleScrollsDown(t *testing.T) {
	vp := NewViewport(80, 24)
	scrollTop := 0
	vp.EnsureVisible(50, 100, &scrollTop)
	vis := vp.VisibleRows(scrollTop)
	if 50 < scrollTop || 50 >= scrollTop+vis {
		t.Errorf("row 50 not visible with scrollTop=%d vis=%d", scrollTop, vis)
	}
}

func TestEnsureVisibleScrollsUp(t *testing.T) {
	vp := NewViewport(80, 24)
	scrollTop := 80
	vp.EnsureVisible(10, 100, &scrollTop)
	if scrollTop != 10 {
		t.Errorf("scrollTop should land on the row, got %d", scrollTop)
	}
}

func TestEnsureVisibleClampsToTotal(t *testing.T) {
	vp := NewViewport(80, 24)
	scrollTop := 95
	vp.EnsureVisible(99, 100, &scrollTop)
	vis := vp.VisibleRows(scrollTop)
	if scrollTop > 100-vis {
		t.Errorf("scrollTop %d leaves blank space below (vis %d)", scrollTop, vis)
	}

	// Fewer rows than the screen: never scroll at all.
	scrollTop = 3
	vp.EnsureVisible(2, 5, &scrollTop)
	if scrollTop != 0 {
		t.Errorf("short document should clamp scrollTop to 0, got %d", scrollTop)
	}
}

func TestSetTargetWidth(t *testing.T) {
	vp := NewViewport(100, 24)
	vp.SetTargetWidth(40)
	if vp.ColWidth != 40 {
		t.Errorf("col width: %d", vp.ColWidth)
	}
	if vp.LeftMargin != 30 {
		t.Errorf("left margin: %d", vp.LeftMargin)
	}
}
