package main

import "testing"

// testApp builds an App with a viewport but no live terminal, enough to
// exercise motion, selection, and mouse mapping.
func testApp(lines ...string) *App {
	cfg := DefaultConfig()
	a := NewApp(nil, cfg)
	a.viewport = NewViewport(80, 24)
	a.viewport.SetTargetWidth(10)
	eb := a.currentBuf()
	eb.buf.Lines = append([]string(nil), lines...)
	return a
}

func TestMoveVerticalWithinWrappedLine(t *testing.T) {
	a := testApp("aaaa bbbb cccc")
	eb := a.currentBuf()
	// Width 10 wraps as "aaaa bbbb " / "cccc".
	eb.cursorCol = 2

	a.moveVertical(1)
	if eb.cursorLine != 0 {
		t.Fatalf("cursor left the logical line: %d", eb.cursorLine)
	}
	if eb.cursorCol != 12 {
		t.Errorf("cursor col: %d", eb.cursorCol)
	}
}

func TestMoveVerticalStickyColumn(t *testing.T) {
	a := testApp("abcdefgh", "hi", "abcdefgh")
	eb := a.currentBuf()
	eb.cursorCol = 6

	a.moveVertical(1)
	if eb.cursorLine != 1 || eb.cursorCol != 2 {
		t.Fatalf("on short line: %d:%d", eb.cursorLine, eb.cursorCol)
	}
	if eb.desiredCol != 6 {
		t.Errorf("desired column lost: %d", eb.desiredCol)
	}

	a.moveVertical(1)
	if eb.cursorLine != 2 || eb.cursorCol != 6 {
		t.Errorf("column should return: %d:%d", eb.cursorLine, eb.cursorCol)
	}
}

func TestHorizontalMotionResetsSticky(t *testing.T) {
	a := testApp("abcdef", "ab", "abcdef")
	eb := a.currentBuf()
	eb.cursorCol = 5

	a.moveVertical(1)
	if eb.desiredCol != 5 {
		t.Fatalf("desired: %d", eb.desiredCol)
	}
	a.moveHorizontal(-1)
	if eb.desiredCol != -1 {
		t.Error("horizontal motion should reset the sticky column")
	}
}

func TestMoveVerticalClampsAtEdges(t *testing.T) {
	a := testApp("one", "two")
	eb := a.currentBuf()

	a.moveVertical(-1)
	if eb.cursorLine != 0 {
		t.Errorf("moved above top: %d", eb.cursorLine)
	}
	a.moveVertical(100)
	if eb.cursorLine != 1 {
		t.Errorf("page down should land on the last line: %d", eb.cursorLine)
	}
}

func TestMoveVerticalAtEdgeKeepsColumn(t *testing.T) {
	a := testApp("aaaa bbbb cccc")
	eb := a.currentBuf()
	// Cursor on the last visual row ("cccc") with a stale sticky column
	// left over from earlier motion.
	eb.cursorCol = 13
	eb.desiredCol = 1

	a.moveVertical(1)
	if eb.cursorLine != 0 || eb.cursorCol != 13 {
		t.Errorf("down on the last row moved the cursor: %d:%d", eb.cursorLine, eb.cursorCol)
	}
	if eb.desiredCol != 1 {
		t.Errorf("desired column changed without vertical motion: %d", eb.desiredCol)
	}
}

func TestMoveVerticalWrapOffIsLogical(t *testing.T) {
	a := testApp("aaaa bbbb cccc", "x")
	a.softWrap = false
	eb := a.currentBuf()
	eb.cursorCol = 12

	a.moveVertical(1)
	if eb.cursorLine != 1 {
		t.Errorf("wrap off: one logical line per step, got line %d", eb.cursorLine)
	}
	if eb.cursorCol != 1 {
		t.Errorf("clamped col: %d", eb.cursorCol)
	}
	if eb.desiredCol != 12 {
		t.Errorf("desired survives wrap-off motion: %d", eb.desiredCol)
	}
}

func TestSelectionDeleteYanksLines(t *testing.T) {
	a := testApp("one", "two", "three")
	eb := a.currentBuf()
	a.mode = ModeSelect
	eb.anchorLine = 0
	eb.cursorLine = 1

	a.deleteSelection()
	if len(eb.buf.Lines) != 1 || eb.buf.Lines[0] != "three" {
		t.Errorf("buffer: %v", eb.buf.Lines)
	}
	if len(a.yankBuffer) != 2 {
		t.Errorf("yank: %v", a.yankBuffer)
	}
	if a.mode != ModeDefault || eb.anchorLine != -1 {
		t.Error("selection should end after delete")
	}

	a.undoAction()
	if len(eb.buf.Lines) != 3 {
		t.Errorf("undo should restore lines: %v", eb.buf.Lines)
	}
}

func TestSelectionRangeNormalizesReversed(t *testing.T) {
	a := testApp("a", "b", "c")
	eb := a.currentBuf()
	eb.anchorLine = 2
	eb.cursorLine = 0

	start, end, ok := a.selectionRange()
	if !ok || start != 0 || end != 2 {
		t.Errorf("range: %d-%d ok=%v", start, end, ok)
	}
}

func TestPasteMultipleLines(t *testing.T) {
	a := testApp("top", "bottom")
	a.yankBuffer = []string{"x", "y"}
	a.pasteBelow()
	eb := a.currentBuf()
	want := []string{"top", "x", "y", "bottom"}
	for i, w := range want {
		if eb.buf.Lines[i] != w {
			t.Fatalf("after paste: %v", eb.buf.Lines)
		}
	}
	if eb.cursorLine != 1 {
		t.Errorf("cursor: %d", eb.cursorLine)
	}
}

func TestMouseClickMapsThroughWrap(t *testing.T) {
	a := testApp("aaaa bbbb cccc")
	eb := a.currentBuf()
	eb.scrollTop = 0

	// Row 1 is padding; row 2 is visual row 0, row 3 is visual row 1
	// ("cccc", logical cols 10..13).
	termCol := a.viewport.LeftMargin + 2 + 1
	line, col, ok := a.mouseToBufferPos(3, termCol)
	if !ok {
		t.Fatal("click should land in text")
	}
	if line != 0 || col != 12 {
		t.Errorf("mapped to %d:%d", line, col)
	}
}

func TestMouseClickBelowTextGoesToEnd(t *testing.T) {
	a := testApp("short")
	line, col, ok := a.mouseToBufferPos(10, 5)
	if !ok {
		t.Fatal("click below text should still map")
	}
	if line != 0 || col != 5 {
		t.Errorf("mapped to %d:%d", line, col)
	}
}

func TestMouseClickStatusBarIgnored(t *testing.T) {
	a := testApp("x")
	if _, _, ok := a.mouseToBufferPos(24, 1); ok {
		t.Error("status bar click should be ignored")
	}
}

func TestWrapToggleCommand(t *testing.T) {
	a := testApp("aaaa bbbb cccc")
	if !a.softWrap {
		t.Fatal("wrap should start on")
	}
	a.executeCommand("wrap")
	if a.softWrap {
		t.Error(":wrap should toggle off")
	}
	a.executeCommand("wrap")
	if !a.softWrap {
		t.Error(":wrap should toggle back on")
	}
	if a.currentBuf().wrapCache.Valid() {
		t.Error("re-enabling wrap must invalidate the cache for a fresh reflow")
	}
}

func TestSearchJumpAndCycle(t *testing.T) {
	a := testApp("one match here", "another match", "no hits")
	eb := a.currentBuf()
	eb.runSearch("match")
	if len(eb.searchMatches) != 2 {
		t.Fatalf("matches: %+v", eb.searchMatches)
	}

	a.jumpToNearestMatch()
	if eb.cursorLine != 0 || eb.cursorCol != 4 {
		t.Errorf("first jump: %d:%d", eb.cursorLine, eb.cursorCol)
	}

	a.nextSearchMatch(1)
	if eb.cursorLine != 1 {
		t.Errorf("n should advance: %d", eb.cursorLine)
	}
	a.nextSearchMatch(1)
	if eb.cursorLine != 0 {
		t.Errorf("n should wrap around: %d", eb.cursorLine)
	}
}

func TestOLineInsertUndoable(t *testing.T) {
	a := testApp("only")
	eb := a.currentBuf()

	a.handleDefaultKey(Key{Type: KeyRune, Rune: 'O'})
	if len(eb.buf.Lines) != 2 || eb.buf.Lines[0] != "" {
		t.Fatalf("after O: %v", eb.buf.Lines)
	}
	if a.mode != ModeEdit {
		t.Error("O should enter edit mode")
	}

	a.mode = ModeDefault
	a.undoAction()
	if len(eb.buf.Lines) != 1 || eb.buf.Lines[0] != "only" {
		t.Errorf("after undo: %v", eb.buf.Lines)
	}
}
