package wrap

import "testing"

func TestRangeRectsSingleRow(t *testing.T) {
	c, doc := buildCache(t, []string{"hello world"}, 80)
	rects := c.RangeRects(doc, 0, 2, 0, 7)
	if len(rects) != 1 {
		t.Fatalf("got %d rects, want 1: %v", len(rects), rects)
	}
	if rects[0] != (Rect{Row: 0, StartCol: 2, EndCol: 7}) {
		t.Errorf("rect = %v", rects[0])
	}
}

func TestRangeRectsAcrossWrappedSegments(t *testing.T) {
	// "aaaa " / "bbbb " / "cccc": a selection spanning the wrap boundary
	// renders as one rect per row, clipped at segment edges.
	c, doc := buildCache(t, []string{"aaaa bbbb cccc"}, 5)
	rects := c.RangeRects(doc, 0, 2, 0, 12)
	if len(rects) != 3 {
		t.Fatalf("got %d rects, want 3: %v", len(rects), rects)
	}
	want := []Rect{
		{Row: 0, StartCol: 2, EndCol: 5},
		{Row: 1, StartCol: 0, EndCol: 5},
		{Row: 2, StartCol: 0, EndCol: 2},
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect %d = %v, want %v", i, rects[i], want[i])
		}
	}
}

func TestRangeRectsMultiLine(t *testing.T) {
	c, doc := buildCache(t, []string{"first", "second line", "third"}, 80)
	rects := c.RangeRects(doc, 0, 3, 2, 2)
	if len(rects) != 3 {
		t.Fatalf("got %d rects, want 3: %v", len(rects), rects)
	}
	if rects[0] != (Rect{Row: 0, StartCol: 3, EndCol: 5}) {
		t.Errorf("first rect = %v", rects[0])
	}
	if rects[1] != (Rect{Row: 1, StartCol: 0, EndCol: 11}) {
		t.Errorf("interior rect = %v, want full line", rects[1])
	}
	if rects[2] != (Rect{Row: 2, StartCol: 0, EndCol: 2}) {
		t.Errorf("last rect = %v", rects[2])
	}
}

func TestRangeRectsEmptyInteriorLine(t *testing.T) {
	// An empty line inside the range still gets a (zero-width) rect so
	// the renderer can mark the row as selected.
	c, doc := buildCache(t, []string{"top", "", "bottom"}, 80)
	rects := c.RangeRects(doc, 0, 0, 2, 6)
	if len(rects) != 3 {
		t.Fatalf("got %d rects, want 3: %v", len(rects), rects)
	}
	if rects[1].Row != 1 || rects[1].StartCol != 0 || rects[1].EndCol != 0 {
		t.Errorf("empty line rect = %v, want zero-width on row 1", rects[1])
	}
}

func TestRangeRectsNormalizesReversedRange(t *testing.T) {
	c, doc := buildCache(t, []string{"hello world"}, 80)
	forward := c.RangeRects(doc, 0, 2, 0, 7)
	backward := c.RangeRects(doc, 0, 7, 0, 2)
	if len(forward) != len(backward) {
		t.Fatalf("reversed range differs: %v vs %v", forward, backward)
	}
	for i := range forward {
		if forward[i] != backward[i] {
			t.Errorf("rect %d: %v vs %v", i, forward[i], backward[i])
		}
	}
}

func TestRangeRectsCollapsedIsEmpty(t *testing.T) {
	c, doc := buildCache(t, []string{"hello"}, 80)
	if rects := c.RangeRects(doc, 0, 3, 0, 3); rects != nil {
		t.Errorf("collapsed range produced %v", rects)
	}
}

func TestRangeRectsClampsToDocument(t *testing.T) {
	c, doc := buildCache(t, []string{"abc", "def"}, 80)
	rects := c.RangeRects(doc, 0, 0, 9, 99)
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2: %v", len(rects), rects)
	}
	if rects[1].EndCol != 3 {
		t.Errorf("clamped end col = %d, want 3", rects[1].EndCol)
	}
}

func TestRangeRectsInvalidCacheFullWidthRows(t *testing.T) {
	doc := &testDoc{lines: []string{"abc", "defgh"}}
	c := New()
	rects := c.RangeRects(doc, 0, 1, 1, 4)
	if len(rects) != 2 {
		t.Fatalf("got %d rects, want 2: %v", len(rects), rects)
	}
	if rects[0] != (Rect{Row: 0, StartCol: 1, EndCol: 3}) {
		t.Errorf("rect 0 = %v", rects[0])
	}
	if rects[1] != (Rect{Row: 1, StartCol: 0, EndCol: 4}) {
		t.Errorf("rect 1 = %v", rects[1])
	}
}
