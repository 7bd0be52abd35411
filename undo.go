package main

// editKind describes the kind of recorded edit.
type editKind int

const (
	editInsertText editKind = iota // one or more coalesced characters on a line
	editDeleteChar                 // a single deleted character
	editSplitLine                  // newline inserted (line split)
	editJoinLine                   // newline deleted (lines joined)
	editDeleteRows                 // whole lines removed (dd, line-select d)
	editInsertRows                 // whole lines inserted (o, O, paste)
)

// edit is one undoable step. Lines holds whole-line content for row
// operations; Text holds inline content for character operations.
// wholeBuffer marks a row deletion that covered every line, leaving the
// single empty placeholder; its undo replaces that placeholder instead
// of inserting beside it.
type edit struct {
	kind        editKind
	line        int
	col         int
	text        string
	lines       []string
	wholeBuffer bool

	// Cursor position before the edit, restored on undo.
	cursorLine int
	cursorCol  int
}

// UndoStack records edits and replays their inverses. Consecutive
// character inserts at adjacent positions coalesce into one step so a
// typed word undoes as a unit. All replay goes through Buffer mutators,
// which keeps the revision counter honest: an undo invalidates wrap
// caches exactly like a fresh edit.
type UndoStack struct {
	undos []edit
	redos []edit
	open  *typingRun
}

// typingRun is an in-progress coalesced insert.
type typingRun struct {
	line    int
	col     int
	nextCol int
	chars   []rune
}

func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

func (u *UndoStack) push(e edit) {
	u.closeRun()
	u.undos = append(u.undos, e)
	u.redos = nil
}

// closeRun flushes the open typing run into a single recorded edit.
func (u *UndoStack) closeRun() {
	if u.open == nil {
		return
	}
	r := u.open
	u.open = nil
	u.undos = append(u.undos, edit{
		kind:       editInsertText,
		line:       r.line,
		col:        r.col,
		text:       string(r.chars),
		cursorLine: r.line,
		cursorCol:  r.col,
	})
}

// RecordInsertChar notes a typed character, extending the current run
// when the insert continues directly after the previous one.
func (u *UndoStack) RecordInsertChar(line, col int, ch rune) {
	u.redos = nil
	if r := u.open; r != nil {
		if line == r.line && col == r.nextCol {
			r.chars = append(r.chars, ch)
			r.nextCol++
			return
		}
		u.closeRun()
	}
	u.open = &typingRun{line: line, col: col, nextCol: col + 1, chars: []rune{ch}}
}

// RecordDeleteChar notes a deleted character at line:col.
func (u *UndoStack) RecordDeleteChar(line, col int, ch rune, curLine, curCol int) {
	u.push(edit{
		kind: editDeleteChar, line: line, col: col, text: string(ch),
		cursorLine: curLine, cursorCol: curCol,
	})
}

// RecordSplitLine notes a newline inserted at line:col.
func (u *UndoStack) RecordSplitLine(line, col int, curLine, curCol int) {
	u.push(edit{
		kind: editSplitLine, line: line, col: col,
		cursorLine: curLine, cursorCol: curCol,
	})
}

// RecordJoinLine notes lines line and line+1 joined; col is the join
// point needed to re-split on undo.
func (u *UndoStack) RecordJoinLine(line, col int, curLine, curCol int) {
	u.push(edit{
		kind: editJoinLine, line: line, col: col,
		cursorLine: curLine, cursorCol: curCol,
	})
}

// RecordDeleteRows notes whole lines removed starting at line.
// wholeBuffer must be true only when the deletion spanned the entire
// buffer; the surviving line after such a delete is the placeholder, not
// content.
func (u *UndoStack) RecordDeleteRows(line int, lines []string, wholeBuffer bool, curLine, curCol int) {
	u.push(edit{
		kind: editDeleteRows, line: line, lines: lines, wholeBuffer: wholeBuffer,
		cursorLine: curLine, cursorCol: curCol,
	})
}

// RecordInsertRows notes whole lines inserted starting at line.
func (u *UndoStack) RecordInsertRows(line int, lines []string, curLine, curCol int) {
	u.push(edit{
		kind: editInsertRows, line: line, lines: lines,
		cursorLine: curLine, cursorCol: curCol,
	})
}

// applyForward replays an edit in its original direction. Returns the
// cursor position after the edit.
func applyForward(buf *Buffer, e edit) (int, int) {
	switch e.kind {
	case editInsertText:
		runes := []rune(e.text)
		for i, ch := range runes {
			buf.InsertChar(e.line, e.col+i, ch)
		}
		return e.line, e.col + len(runes)
	case editDeleteChar:
		buf.DeleteCharForward(e.line, e.col)
		return e.line, e.col
	case editSplitLine:
		buf.InsertNewline(e.line, e.col)
		return e.line + 1, 0
	case editJoinLine:
		buf.JoinLines(e.line)
		return e.line, e.col
	case editDeleteRows:
		buf.DeleteLines(e.line, e.line+len(e.lines)-1)
		return e.cursorLine, e.cursorCol
	case editInsertRows:
		buf.InsertLines(e.line, e.lines)
		return e.line + len(e.lines) - 1, 0
	}
	return e.cursorLine, e.cursorCol
}

// applyInverse replays the inverse of an edit.
func applyInverse(buf *Buffer, e edit) {
	switch e.kind {
	case editInsertText:
		for range e.text {
			buf.DeleteCharForward(e.line, e.col)
		}
	case editDeleteChar:
		buf.InsertChar(e.line, e.col, []rune(e.text)[0])
	case editSplitLine:
		buf.JoinLines(e.line)
	case editJoinLine:
		buf.InsertNewline(e.line, e.col)
	case editDeleteRows:
		if e.wholeBuffer {
			// The delete left the empty placeholder; restore over it. A
			// surviving empty line that merely looks like the
			// placeholder must be kept, so this never keys off buffer
			// content.
			buf.SetLine(0, e.lines[0])
			buf.InsertLines(1, e.lines[1:])
		} else {
			buf.InsertLines(e.line, e.lines)
		}
	case editInsertRows:
		buf.DeleteLines(e.line, e.line+len(e.lines)-1)
	}
}

// Undo reverts the most recent edit. Returns the cursor position to
// restore and whether anything was undone.
func (u *UndoStack) Undo(buf *Buffer) (line, col int, ok bool) {
	u.closeRun()
	if len(u.undos) == 0 {
		return 0, 0, false
	}
	e := u.undos[len(u.undos)-1]
	u.undos = u.undos[:len(u.undos)-1]
	u.redos = append(u.redos, e)
	applyInverse(buf, e)
	return e.cursorLine, e.cursorCol, true
}

// Redo re-applies the most recently undone edit.
func (u *UndoStack) Redo(buf *Buffer) (line, col int, ok bool) {
	if len(u.redos) == 0 {
		return 0, 0, false
	}
	e := u.redos[len(u.redos)-1]
	u.redos = u.redos[:len(u.redos)-1]
	u.undos = append(u.undos, e)
	line, col = applyForward(buf, e)
	return line, col, true
}

// Len returns the number of pending undo steps.
func (u *UndoStack) Len() int {
	n := len(u.undos)
	if u.open != nil {
		n++
	}
	return n
}
