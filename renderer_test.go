package main

import (
	"strings"
	"testing"
)

func testFrame(rows []FrameRow) Frame {
	return Frame{
		Rows:        rows,
		Width:       80,
		Height:      24,
		ColWidth:    72,
		LeftMargin:  4,
		TabWidth:    4,
		CursorRow:   1,
		CursorCol:   5,
		StatusLeft:  " test",
		StatusRight: "DEFAULT ",
		Highlighter: PlainHighlighter{},
	}
}

func TestRenderFrameContainsRows(t *testing.T) {
	r := NewRenderer()
	out := r.RenderFrame(testFrame([]FrameRow{
		{Text: "first row"},
		{Text: "second row"},
	}))
	if !strings.Contains(out, "first row") || !strings.Contains(out, "second row") {
		t.Errorf("rows missing from frame: %q", out)
	}
	if !strings.Contains(out, "\x1b[2J") {
		t.Error("frame should clear the screen")
	}
	if !strings.Contains(out, "DEFAULT") {
		t.Error("status bar missing")
	}
}

func TestRenderFrameTopPaddingShiftsRows(t *testing.T) {
	r := NewRenderer()
	f := testFrame([]FrameRow{{Text: "x"}})
	f.TopPadding = true
	out := r.RenderFrame(f)
	if !strings.Contains(out, "\x1b[2;1H") {
		t.Errorf("first row should draw on screen row 2: %q", out)
	}
}

func TestRenderFrameGutterNumbers(t *testing.T) {
	r := NewRenderer()
	f := testFrame([]FrameRow{
		{Text: "one", LineNumber: 1},
		{Text: "one wrapped"},
	})
	f.GutterWidth = 4
	out := r.RenderFrame(f)
	if !strings.Contains(out, "  1 ") {
		t.Errorf("gutter number missing: %q", out)
	}
}

func TestRenderOverlayRowSelection(t *testing.T) {
	r := NewRenderer()
	out := r.renderOverlayRow("hello world", []Overlay{{Start: 0, End: 5, Style: OverlaySelection}}, 4, 72)
	if !strings.Contains(out, "\x1b[7mh") {
		t.Errorf("selection should start reverse video: %q", out)
	}
	if !strings.Contains(out, "\x1b[0m world") {
		t.Errorf("style must end at the overlay boundary: %q", out)
	}
}

func TestRenderOverlayRowZeroWidthSelection(t *testing.T) {
	r := NewRenderer()
	out := r.renderOverlayRow("", []Overlay{{Start: 0, End: 0, Style: OverlaySelection}}, 4, 72)
	if !strings.Contains(out, "\x1b[7m \x1b[0m") {
		t.Errorf("empty selected line should show one reversed cell: %q", out)
	}
}

func TestRenderOverlayRowSpell(t *testing.T) {
	r := NewRenderer()
	out := r.renderOverlayRow("teh cat", []Overlay{{Start: 0, End: 3, Style: OverlaySpell}}, 4, 72)
	if !strings.Contains(out, "\x1b[4;31m") {
		t.Errorf("spell error should be underlined: %q", out)
	}
}

func TestRenderOverlayRowSelectionBeatsSpell(t *testing.T) {
	r := NewRenderer()
	out := r.renderOverlayRow("teh", []Overlay{
		{Start: 0, End: 3, Style: OverlaySpell},
		{Start: 0, End: 3, Style: OverlaySelection},
	}, 4, 72)
	if !strings.Contains(out, "\x1b[7m") {
		t.Errorf("selection should win: %q", out)
	}
	if strings.Contains(out, "\x1b[4;31m") {
		t.Errorf("spell style should be suppressed under selection: %q", out)
	}
}

func TestExpandTabs(t *testing.T) {
	if got := expandTabs("a\tb", 4); got != "a   b" {
		t.Errorf("tab expansion: %q", got)
	}
	if got := expandTabs("\tx", 4); got != "    x" {
		t.Errorf("leading tab: %q", got)
	}
	if got := expandTabs("no tabs", 4); got != "no tabs" {
		t.Errorf("no tabs: %q", got)
	}
}

func TestVisibleLen(t *testing.T) {
	if got := visibleLen("hello"); got != 5 {
		t.Errorf("plain: %d", got)
	}
	if got := visibleLen("\x1b[7mhi\x1b[0m"); got != 2 {
		t.Errorf("escapes should not count: %d", got)
	}
	if got := visibleLen("héllo"); got != 5 {
		t.Errorf("unicode: %d", got)
	}
}

func TestRenderStatusBarPadsToWidth(t *testing.T) {
	r := NewRenderer()
	f := testFrame(nil)
	f.StatusLeft = " left"
	f.StatusRight = "right "
	out := r.RenderFrame(f)
	idx := strings.Index(out, " left")
	if idx < 0 {
		t.Fatalf("status left missing: %q", out)
	}
	rest := out[idx:]
	if !strings.Contains(rest, "right ") {
		t.Errorf("status right missing: %q", rest)
	}
}

func TestRenderPickerShowsBuffers(t *testing.T) {
	r := NewRenderer()
	ebs := []*EditorBuffer{NewEditorBuffer("a.md"), NewEditorBuffer("b.md")}
	p := &Picker{Active: true, listNav: listNav{Selected: 1}}
	out := r.RenderPicker(ebs, p, 0, testFrame(nil))
	if !strings.Contains(out, "a.md") || !strings.Contains(out, "b.md") {
		t.Errorf("picker should list buffers: %q", out)
	}
	if !strings.Contains(out, "* a.md") {
		t.Errorf("current buffer should be marked: %q", out)
	}
}

func TestRenderOutlineIndentsByLevel(t *testing.T) {
	r := NewRenderer()
	o := &Outline{Active: true, Items: []OutlineItem{
		{Level: 1, Title: "Top"},
		{Level: 2, Title: "Nested"},
	}}
	out := r.RenderOutline(o, testFrame(nil))
	if !strings.Contains(out, "Top") || !strings.Contains(out, "  Nested") {
		t.Errorf("outline: %q", out)
	}
}
