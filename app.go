package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mwhitaker/weft/internal/wrap"
)

// Mode represents the editor mode.
type Mode int

const (
	ModeDefault Mode = iota
	ModeEdit
	ModeSelect
)

// App is the top-level editor state.
type App struct {
	buffers       []*EditorBuffer
	currentBuffer int

	config    Config
	viewport  *Viewport
	renderer  *Renderer
	statusBar *StatusBar
	terminal  *Terminal
	picker    *Picker
	outline   *Outline
	colAdjust *ColumnAdjust
	watcher   *FileWatcher
	spell     *SpellChecker
	mode      Mode

	softWrap bool

	leaderPending bool     // Space was pressed, awaiting second key.
	dPending      bool     // 'd' was pressed, awaiting second 'd' for dd.
	gPending      bool     // 'g' was pressed, awaiting second 'g' for gg.
	yPending      bool     // 'y' was pressed, awaiting second 'y' for yy.
	yankBuffer    []string // Shared yank buffer for yy/dd/p/P and line-select.
	quit          bool
	quitAfterSave bool // Set by :wq on unnamed buffers.
}

// currentBuf returns the active EditorBuffer.
func (a *App) currentBuf() *EditorBuffer {
	return a.buffers[a.currentBuffer]
}

func NewApp(filenames []string, cfg Config) *App {
	app := &App{
		config:    cfg,
		renderer:  NewRenderer(),
		statusBar: NewStatusBar(),
		picker:    &Picker{},
		outline:   &Outline{},
		colAdjust: &ColumnAdjust{},
		mode:      ModeDefault,
		softWrap:  cfg.SoftWrap,
	}
	if len(filenames) == 0 {
		app.buffers = []*EditorBuffer{NewEditorBuffer("")}
	} else {
		for _, f := range filenames {
			app.buffers = append(app.buffers, NewEditorBuffer(f))
		}
	}
	return app
}

func (a *App) Run() error {
	// Load all buffers.
	for _, eb := range a.buffers {
		if err := eb.buf.Load(); err != nil {
			return err
		}
		eb.ScheduleSpellCheck()
	}

	// Spellcheck is optional: no dictionary, no squiggles.
	a.spell, _ = NewSpellChecker(a.config.Dictionary)

	// Watch open files for outside modification.
	if w, err := NewFileWatcher(); err == nil {
		a.watcher = w
		defer w.Close()
		for _, eb := range a.buffers {
			w.Add(eb.Filename())
		}
	}

	// Set up terminal.
	t, err := NewTerminal()
	if err != nil {
		return err
	}
	a.terminal = t
	defer t.Restore()

	a.viewport = NewViewport(t.width, t.height)
	a.viewport.SetTargetWidth(a.config.ColumnWidth)
	a.updateGutter()

	// Reader goroutine so the event loop can also select on resize,
	// file-change, and spellcheck timer channels.
	events := make(chan InputEvent, 1)
	readErrs := make(chan error, 1)
	go func() {
		for {
			ev, err := t.ReadEvent()
			if err != nil {
				readErrs <- err
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	a.render()

	watchChanges := func() <-chan string {
		if a.watcher == nil {
			return nil
		}
		return a.watcher.Changes()
	}

	for !a.quit {
		select {
		case <-t.SigwinchChan():
			if t.Resize() {
				a.viewport.Resize(t.width, t.height)
				a.invalidateWraps()
			}
			a.render()

		case path := <-watchChanges():
			a.handleFileChanged(path)
			a.render()

		case <-ticker.C:
			eb := a.currentBuf()
			wasPending := eb.spellCheckPending
			eb.PerformSpellCheck(a.spell)
			// Redraw only when a pending check actually ran.
			if wasPending && !eb.spellCheckPending {
				a.render()
			}

		case err := <-readErrs:
			return err

		case ev := <-events:
			a.handleInput(ev)
			if !a.quit {
				a.render()
			}
		}
	}

	return nil
}

// invalidateWraps marks every buffer's wrap cache stale. Called when the
// wrap width changes: resize, column adjust, gutter toggle.
func (a *App) invalidateWraps() {
	for _, eb := range a.buffers {
		eb.wrapCache.Invalidate()
	}
}

// updateGutter sizes the line-number gutter for the current buffer.
func (a *App) updateGutter() {
	if !a.config.LineNumbers {
		a.viewport.SetGutter(0)
		return
	}
	digits := 1
	for n := a.currentBuf().buf.LineCount(); n >= 10; n /= 10 {
		digits++
	}
	a.viewport.SetGutter(digits + 2)
}

// handleFileChanged reloads a clean buffer whose file changed on disk,
// or warns when the buffer is dirty.
func (a *App) handleFileChanged(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return
	}
	for _, eb := range a.buffers {
		if eb.Filename() == "" {
			continue
		}
		ebAbs, err := filepath.Abs(eb.Filename())
		if err != nil || ebAbs != abs {
			continue
		}
		if eb.IsDirty() {
			a.statusBar.SetMessage("File changed on disk (unsaved changes kept): " + truncatePath(eb.Filename()))
			return
		}
		if err := eb.buf.Load(); err != nil {
			a.statusBar.SetMessage("Reload failed: " + err.Error())
			return
		}
		eb.edited()
		eb.clampCursor()
		a.statusBar.SetMessage("Reloaded " + truncatePath(eb.Filename()))
		return
	}
}

func (a *App) handleInput(event InputEvent) {
	// Clear any temporary status message on input.
	a.statusBar.ClearMessage()

	if event.Kind == EventMouse {
		a.handleMouse(event.Mouse)
		return
	}

	key := event.Key

	// Overlays capture input while active.
	if a.outline.Active {
		a.handleOutlineKey(key)
		return
	}
	if a.picker.Active {
		a.handlePickerKey(key)
		return
	}
	if a.colAdjust.Active {
		a.handleColumnAdjustKey(key)
		return
	}
	if a.statusBar.Prompt != PromptNone {
		a.handlePromptKey(key)
		return
	}

	switch a.mode {
	case ModeDefault:
		a.handleDefaultKey(key)
	case ModeEdit:
		a.handleEditKey(key)
	case ModeSelect:
		a.handleSelectKey(key)
	}
}

func (a *App) handleMouse(mouse MouseEvent) {
	if a.outline.Active || a.picker.Active || a.colAdjust.Active || a.statusBar.Prompt != PromptNone {
		return
	}

	switch mouse.Button {
	case MouseWheelUp:
		if mouse.Press {
			a.moveVertical(-3)
		}
	case MouseWheelDown:
		if mouse.Press {
			a.moveVertical(3)
		}
	case MouseLeft:
		if !mouse.Press {
			return
		}
		line, col, ok := a.mouseToBufferPos(mouse.Row, mouse.Col)
		if ok {
			eb := a.currentBuf()
			eb.cursorLine = line
			eb.cursorCol = col
			eb.desiredCol = -1
		}
	}
}

func (a *App) handleDefaultKey(key Key) {
	// Leader key sequence: Space followed by a second key.
	if a.leaderPending {
		a.leaderPending = false
		if key.Type == KeyRune {
			switch key.Rune {
			case 'b':
				a.picker.Show(a.currentBuffer)
				return
			case 'h', 'H':
				a.showOutline()
				return
			case 'c':
				a.colAdjust.Show(a.viewport.TargetColWidth)
				return
			}
		}
		// Unknown leader combo — ignore.
		return
	}

	// dd operator: 'd' followed by 'd'.
	if a.dPending {
		a.dPending = false
		if key.Type == KeyRune && key.Rune == 'd' {
			a.deleteWholeLine()
		}
		return
	}

	// gg operator: 'g' followed by 'g'.
	if a.gPending {
		a.gPending = false
		if key.Type == KeyRune && key.Rune == 'g' {
			a.jumpToTop()
		}
		return
	}

	// yy operator: 'y' followed by 'y'.
	if a.yPending {
		a.yPending = false
		if key.Type == KeyRune && key.Rune == 'y' {
			a.yankLine()
		}
		return
	}

	eb := a.currentBuf()
	switch key.Type {
	case KeyRune:
		switch key.Rune {
		case ' ':
			a.leaderPending = true
		case 'i':
			a.mode = ModeEdit
		case ':':
			a.statusBar.StartPrompt(PromptCommand)
		case '/':
			a.statusBar.StartPrompt(PromptSearch)
		case 'h':
			a.moveHorizontal(-1)
		case 'j':
			a.moveVertical(1)
		case 'k':
			a.moveVertical(-1)
		case 'l':
			a.moveHorizontal(1)
		case 'w':
			eb.cursorLine, eb.cursorCol = nextWordStart(eb.buf, eb.cursorLine, eb.cursorCol)
			eb.desiredCol = -1
		case 'b':
			eb.cursorLine, eb.cursorCol = prevWordStart(eb.buf, eb.cursorLine, eb.cursorCol)
			eb.desiredCol = -1
		case 'v':
			eb.anchorLine = eb.cursorLine
			a.mode = ModeSelect
		case 'o':
			eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
			a.insertNewline()
			a.mode = ModeEdit
		case 'O':
			eb.buf.InsertLine(eb.cursorLine, "")
			eb.undo.RecordInsertRows(eb.cursorLine, []string{""}, eb.cursorLine, eb.cursorCol)
			eb.cursorCol = 0
			a.afterEdit()
			a.mode = ModeEdit
		case 'd':
			a.dPending = true
		case 'y':
			a.yPending = true
		case 'p':
			a.pasteBelow()
		case 'P':
			a.pasteAbove()
		case 'u':
			a.undoAction()
		case 'g':
			a.gPending = true
		case 'G':
			a.jumpToBottom()
		case 'A':
			eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
			eb.desiredCol = -1
			a.mode = ModeEdit
		case 'n':
			a.nextSearchMatch(1)
		case 'N':
			a.nextSearchMatch(-1)
		case '^':
			a.jumpFirstNonBlank()
		case '$':
			eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
			eb.desiredCol = -1
		}
	case KeyUp:
		a.moveVertical(-1)
	case KeyDown:
		a.moveVertical(1)
	case KeyLeft:
		a.moveHorizontal(-1)
	case KeyRight:
		a.moveHorizontal(1)
	case KeyHome:
		eb.cursorCol = 0
		eb.desiredCol = -1
	case KeyEnd:
		eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
		eb.desiredCol = -1
	case KeyCtrlD:
		a.moveVertical(a.viewport.PageSize(eb.scrollTop) / 2)
	case KeyCtrlU:
		a.moveVertical(-a.viewport.PageSize(eb.scrollTop) / 2)
	case KeyPgDn:
		a.moveVertical(a.viewport.PageSize(eb.scrollTop))
	case KeyPgUp:
		a.moveVertical(-a.viewport.PageSize(eb.scrollTop))
	case KeyCtrlZ:
		a.undoAction()
	case KeyCtrlY, KeyCtrlR:
		a.redoAction()
	}
}

func (a *App) handleEditKey(key Key) {
	// Clear any pending operators from Default mode.
	a.dPending = false
	a.gPending = false
	a.yPending = false

	eb := a.currentBuf()
	switch key.Type {
	case KeyEscape:
		a.mode = ModeDefault
	case KeyRune:
		a.insertChar(key.Rune)
	case KeyEnter:
		a.insertNewline()
	case KeyBackspace:
		a.deleteChar()
	case KeyDelete:
		a.deleteCharForward()
	case KeyUp:
		a.moveVertical(-1)
	case KeyDown:
		a.moveVertical(1)
	case KeyLeft:
		a.moveHorizontal(-1)
	case KeyRight:
		a.moveHorizontal(1)
	case KeyHome:
		eb.cursorCol = 0
		eb.desiredCol = -1
	case KeyEnd:
		eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
		eb.desiredCol = -1
	case KeyPgDn:
		a.moveVertical(a.viewport.PageSize(eb.scrollTop))
	case KeyPgUp:
		a.moveVertical(-a.viewport.PageSize(eb.scrollTop))
	case KeyCtrlZ:
		a.undoAction()
	case KeyCtrlY, KeyCtrlR:
		a.redoAction()
	}
}

// handleSelectKey drives line-select mode: the selection spans whole
// lines from the anchor to the cursor.
func (a *App) handleSelectKey(key Key) {
	eb := a.currentBuf()
	switch key.Type {
	case KeyEscape:
		eb.anchorLine = -1
		a.mode = ModeDefault
	case KeyUp:
		a.moveVertical(-1)
	case KeyDown:
		a.moveVertical(1)
	case KeyPgDn:
		a.moveVertical(a.viewport.PageSize(eb.scrollTop))
	case KeyPgUp:
		a.moveVertical(-a.viewport.PageSize(eb.scrollTop))
	case KeyRune:
		switch key.Rune {
		case 'j':
			a.moveVertical(1)
		case 'k':
			a.moveVertical(-1)
		case 'G':
			a.jumpToBottom()
		case 'd':
			a.deleteSelection()
		case 'y':
			a.yankSelection()
		case 'v':
			eb.anchorLine = -1
			a.mode = ModeDefault
		}
	}
}

func (a *App) handleColumnAdjustKey(key Key) {
	maxWidth := a.viewport.Width - a.viewport.GutterWidth
	apply := func(w int) {
		a.viewport.SetTargetWidth(w)
		a.invalidateWraps()
	}
	switch key.Type {
	case KeyEscape:
		apply(a.colAdjust.Cancel())
		a.colAdjust.Hide()
	case KeyEnter:
		a.colAdjust.Hide()
	case KeyLeft:
		a.colAdjust.Decrease()
		apply(a.colAdjust.Width)
	case KeyRight:
		a.colAdjust.Increase(maxWidth)
		apply(a.colAdjust.Width)
	case KeyRune:
		switch key.Rune {
		case 'h', '-':
			a.colAdjust.Decrease()
			apply(a.colAdjust.Width)
		case 'l', '+', '=':
			a.colAdjust.Increase(maxWidth)
			apply(a.colAdjust.Width)
		}
	}
}

func (a *App) handlePickerKey(key Key) {
	switch key.Type {
	case KeyEscape:
		a.picker.Hide()
	case KeyUp:
		a.picker.Up()
	case KeyDown:
		a.picker.Down(len(a.buffers))
	case KeyRune:
		switch key.Rune {
		case 'k':
			a.picker.Up()
		case 'j':
			a.picker.Down(len(a.buffers))
		}
	case KeyEnter:
		a.currentBuffer = a.picker.Selected
		a.picker.Hide()
		a.updateGutter()
	}
}

func (a *App) handleOutlineKey(key Key) {
	switch key.Type {
	case KeyEscape:
		a.outline.Hide()
	case KeyUp:
		a.outline.Up()
	case KeyDown:
		a.outline.Down(len(a.outline.Items))
	case KeyRune:
		switch key.Rune {
		case 'k':
			a.outline.Up()
		case 'j':
			a.outline.Down(len(a.outline.Items))
		}
	case KeyEnter:
		a.jumpToOutlineItem()
		a.outline.Hide()
	}
}

func (a *App) showOutline() {
	eb := a.currentBuf()

	if !IsMarkdownFile(eb.buf.Filename) {
		a.statusBar.SetMessage("Outline only available for markdown files")
		return
	}

	items := ExtractHeadings(eb.buf)
	if len(items) == 0 {
		a.statusBar.SetMessage("No headings found")
		return
	}

	a.outline.Show(items)
}

func (a *App) jumpToOutlineItem() {
	if a.outline.Selected < 0 || a.outline.Selected >= len(a.outline.Items) {
		return
	}

	item := a.outline.Items[a.outline.Selected]
	eb := a.currentBuf()
	eb.cursorLine = item.BufferLine
	eb.cursorCol = 0
	eb.desiredCol = -1
}

func (a *App) handlePromptKey(key Key) {
	eb := a.currentBuf()
	switch a.statusBar.Prompt {
	case PromptSaveNew:
		text, done, cancelled := a.statusBar.HandlePromptKey(key)
		if cancelled {
			a.quitAfterSave = false
			return
		}
		if done && text != "" {
			eb.buf.Save(text)
			eb.highlighter = DetectHighlighter(eb.buf.Filename)
			if a.watcher != nil {
				a.watcher.Add(eb.buf.Filename)
			}
			if a.quitAfterSave {
				a.closeCurrentBuffer()
				a.quitAfterSave = false
			}
		}

	case PromptCommand:
		text, done, cancelled := a.statusBar.HandlePromptKey(key)
		if cancelled {
			return
		}
		if done {
			a.executeCommand(text)
		}

	case PromptSearch:
		text, done, cancelled := a.statusBar.HandlePromptKey(key)
		if cancelled {
			eb.clearSearch()
			return
		}
		if done {
			eb.runSearch(text)
			if len(eb.searchMatches) == 0 {
				if text != "" {
					a.statusBar.SetMessage("No matches for: " + text)
				}
				return
			}
			a.jumpToNearestMatch()
		}
	}
}

// jumpToNearestMatch positions the cursor on the first match at or after
// the cursor, wrapping to the first match in the file.
func (a *App) jumpToNearestMatch() {
	eb := a.currentBuf()
	for i, m := range eb.searchMatches {
		if m.Line > eb.cursorLine || (m.Line == eb.cursorLine && m.StartCol >= eb.cursorCol) {
			eb.searchCurrentIdx = i
			a.jumpToMatch(i)
			return
		}
	}
	a.jumpToMatch(0)
}

// nextSearchMatch advances the current match by dir (+1/-1), wrapping.
func (a *App) nextSearchMatch(dir int) {
	eb := a.currentBuf()
	n := len(eb.searchMatches)
	if !eb.searchActive || n == 0 {
		return
	}
	idx := (eb.searchCurrentIdx + dir + n) % n
	a.jumpToMatch(idx)
}

func (a *App) jumpToMatch(idx int) {
	eb := a.currentBuf()
	if idx < 0 || idx >= len(eb.searchMatches) {
		return
	}
	m := eb.searchMatches[idx]
	eb.searchCurrentIdx = idx
	eb.cursorLine = m.Line
	eb.cursorCol = m.StartCol
	eb.desiredCol = -1
}

func (a *App) executeCommand(cmd string) {
	eb := a.currentBuf()
	cmd = strings.TrimSpace(cmd)

	switch {
	case cmd == "q":
		if eb.buf.Dirty {
			a.statusBar.SetMessage("Unsaved changes. Use :q! to discard, or :w to save.")
		} else {
			a.closeCurrentBuffer()
		}

	case cmd == "q!":
		a.closeCurrentBuffer()

	case cmd == "w":
		a.save()

	case strings.HasPrefix(cmd, "w "):
		filename := strings.TrimSpace(cmd[2:])
		if filename != "" {
			eb.buf.Save(filename)
			eb.highlighter = DetectHighlighter(eb.buf.Filename)
			if a.watcher != nil {
				a.watcher.Add(eb.buf.Filename)
			}
		}

	case cmd == "wq":
		if eb.buf.Filename == "" {
			a.quitAfterSave = true
			a.statusBar.StartPrompt(PromptSaveNew)
		} else {
			eb.buf.Save("")
			a.closeCurrentBuffer()
		}

	case strings.HasPrefix(cmd, "e "):
		filename := strings.TrimSpace(cmd[2:])
		if filename == "" {
			a.statusBar.SetMessage("Usage: :e <filename>")
			return
		}
		a.currentBuffer = a.openBuffer(filename)
		a.updateGutter()

	case cmd == "e":
		a.statusBar.SetMessage("Usage: :e <filename>")

	case cmd == "wrap":
		a.softWrap = !a.softWrap
		// Re-enabling always reflows at the current width; caches were
		// not maintained while wrap was off.
		a.invalidateWraps()
		eb.desiredCol = -1

	case cmd == "nu", cmd == "numbers":
		a.config.LineNumbers = !a.config.LineNumbers
		a.updateGutter()
		a.invalidateWraps()

	case strings.HasPrefix(cmd, "rename "):
		newName := strings.TrimSpace(cmd[7:])
		if newName == "" {
			return
		}
		oldName := eb.buf.Filename
		if oldName == "" {
			// Unnamed buffer — behaves like :w <filename>.
			eb.buf.Save(newName)
		} else {
			if err := os.Rename(oldName, newName); err != nil {
				a.statusBar.SetMessage("Rename failed: " + err.Error())
				return
			}
			eb.buf.Filename = newName
		}
		eb.highlighter = DetectHighlighter(eb.buf.Filename)
		if a.watcher != nil {
			a.watcher.Add(eb.buf.Filename)
		}

	default:
		a.statusBar.SetMessage("Unknown command: " + cmd)
	}
}

// openBuffer opens a file or switches to it if already open. Returns the
// buffer index.
func (a *App) openBuffer(filename string) int {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}

	for i, eb := range a.buffers {
		existingPath, err2 := filepath.Abs(eb.buf.Filename)
		if err2 != nil {
			existingPath = eb.buf.Filename
		}
		if existingPath == absPath {
			return i
		}
	}

	eb := NewEditorBuffer(filename)
	eb.buf.Load()
	eb.ScheduleSpellCheck()
	a.buffers = append(a.buffers, eb)
	if a.watcher != nil {
		a.watcher.Add(filename)
	}
	return len(a.buffers) - 1
}

// closeCurrentBuffer removes the current buffer. If it's the last one, quit.
func (a *App) closeCurrentBuffer() {
	if len(a.buffers) == 1 {
		a.quit = true
		return
	}
	a.buffers = append(a.buffers[:a.currentBuffer], a.buffers[a.currentBuffer+1:]...)
	if a.currentBuffer >= len(a.buffers) {
		a.currentBuffer = len(a.buffers) - 1
	}
	a.updateGutter()
}

func (a *App) save() {
	eb := a.currentBuf()
	if eb.buf.Filename == "" {
		a.statusBar.StartPrompt(PromptSaveNew)
		return
	}
	eb.buf.Save("")
}

// afterEdit runs the shared post-mutation path: invalidate the wrap
// cache, reset the sticky column, reclamp the cursor.
func (a *App) afterEdit() {
	eb := a.currentBuf()
	eb.edited()
	eb.clampCursor()
	a.updateGutter()
}

// insertChar inserts a character at the cursor and advances the cursor.
func (a *App) insertChar(ch rune) {
	eb := a.currentBuf()
	eb.buf.InsertChar(eb.cursorLine, eb.cursorCol, ch)
	eb.undo.RecordInsertChar(eb.cursorLine, eb.cursorCol, ch)
	eb.cursorCol++
	a.afterEdit()
}

// insertNewline splits the current line at the cursor.
func (a *App) insertNewline() {
	eb := a.currentBuf()
	eb.undo.RecordSplitLine(eb.cursorLine, eb.cursorCol, eb.cursorLine, eb.cursorCol)
	eb.buf.InsertNewline(eb.cursorLine, eb.cursorCol)
	eb.cursorLine++
	eb.cursorCol = 0
	a.afterEdit()
}

// deleteChar deletes the character before the cursor (backspace).
func (a *App) deleteChar() {
	eb := a.currentBuf()
	if eb.cursorCol == 0 && eb.cursorLine == 0 {
		return
	}

	if eb.cursorCol > 0 {
		ch, _ := eb.buf.DeleteChar(eb.cursorLine, eb.cursorCol)
		if ch == 0 {
			return
		}
		eb.undo.RecordDeleteChar(eb.cursorLine, eb.cursorCol-1, ch, eb.cursorLine, eb.cursorCol)
		eb.cursorCol--
	} else {
		// At column 0: join with the previous line.
		prevLineLen := eb.buf.LineLen(eb.cursorLine - 1)
		saveLine := eb.cursorLine
		saveCol := eb.cursorCol

		eb.buf.JoinLines(eb.cursorLine - 1)
		eb.undo.RecordJoinLine(eb.cursorLine-1, prevLineLen, saveLine, saveCol)

		eb.cursorLine--
		eb.cursorCol = prevLineLen
	}
	a.afterEdit()
}

// deleteCharForward deletes the character at the cursor position (Del key).
func (a *App) deleteCharForward() {
	eb := a.currentBuf()
	lineLen := eb.buf.LineLen(eb.cursorLine)

	if eb.cursorCol < lineLen {
		ch := eb.buf.DeleteCharForward(eb.cursorLine, eb.cursorCol)
		if ch != 0 {
			eb.undo.RecordDeleteChar(eb.cursorLine, eb.cursorCol, ch, eb.cursorLine, eb.cursorCol)
		}
	} else if eb.cursorLine < eb.buf.LineCount()-1 {
		// At end of line: join with next line.
		eb.buf.JoinLines(eb.cursorLine)
		eb.undo.RecordJoinLine(eb.cursorLine, lineLen, eb.cursorLine, eb.cursorCol)
	} else {
		return
	}
	a.afterEdit()
}

// wrapWidth is the width every wrap cache in this app is built at.
func (a *App) wrapWidth() int {
	return a.viewport.ColWidth
}

// moveHorizontal moves the cursor one position left or right in logical
// coordinates, crossing line boundaries. Horizontal motion drops the
// sticky column.
func (a *App) moveHorizontal(delta int) {
	eb := a.currentBuf()
	eb.desiredCol = -1
	if delta < 0 {
		if eb.cursorCol > 0 {
			eb.cursorCol--
		} else if eb.cursorLine > 0 {
			eb.cursorLine--
			eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
		}
		return
	}
	if eb.cursorCol < eb.buf.LineLen(eb.cursorLine) {
		eb.cursorCol++
	} else if eb.cursorLine < eb.buf.LineCount()-1 {
		eb.cursorLine++
		eb.cursorCol = 0
	}
}

// moveVertical moves the cursor by delta visual rows when soft wrap is
// on, or delta logical lines when it is off. The target is clamped into
// range so page motion lands on the first or last row instead of
// refusing to move.
func (a *App) moveVertical(delta int) {
	eb := a.currentBuf()

	if !a.softWrap {
		if eb.desiredCol < 0 {
			eb.desiredCol = eb.cursorCol
		}
		target := eb.cursorLine + delta
		if target < 0 {
			target = 0
		}
		if target >= eb.buf.LineCount() {
			target = eb.buf.LineCount() - 1
		}
		if target == eb.cursorLine {
			return
		}
		eb.cursorLine = target
		eb.cursorCol = eb.desiredCol
		if max := eb.buf.LineLen(target); eb.cursorCol > max {
			eb.cursorCol = max
		}
		return
	}

	eb.ensureWrap(a.wrapWidth(), a.config.TabWidth)
	row, vcol := eb.wrapCache.ToVisual(eb.cursorLine, eb.cursorCol)
	target := row + delta
	if target < 0 {
		target = 0
	}
	if total := eb.wrapCache.TotalRows(); target >= total {
		target = total - 1
	}
	if target == row {
		// Already on the edge row; the cursor must not shift sideways
		// toward a remembered column when there is no vertical motion.
		if eb.desiredCol < 0 {
			eb.desiredCol = vcol
		}
		return
	}
	line, col, desired, moved := eb.wrapCache.MoveVertical(eb.buf, eb.cursorLine, eb.cursorCol, eb.desiredCol, target-row)
	eb.desiredCol = desired
	if moved {
		eb.cursorLine = line
		eb.cursorCol = col
	}
}

func (a *App) jumpToTop() {
	eb := a.currentBuf()
	eb.cursorLine = 0
	eb.cursorCol = 0
	eb.desiredCol = -1
}

func (a *App) jumpToBottom() {
	eb := a.currentBuf()
	eb.cursorLine = eb.buf.LineCount() - 1
	eb.cursorCol = 0
	eb.desiredCol = -1
}

func (a *App) jumpFirstNonBlank() {
	eb := a.currentBuf()
	eb.desiredCol = -1
	for i, r := range []rune(eb.buf.Line(eb.cursorLine)) {
		if r != ' ' && r != '\t' {
			eb.cursorCol = i
			return
		}
	}
	eb.cursorCol = 0
}

func (a *App) yankLine() {
	eb := a.currentBuf()
	a.yankBuffer = []string{eb.buf.Line(eb.cursorLine)}
	a.statusBar.SetMessage("Yanked line")
}

func (a *App) pasteBelow() {
	if len(a.yankBuffer) == 0 {
		return
	}
	eb := a.currentBuf()
	lines := append([]string(nil), a.yankBuffer...)
	eb.buf.InsertLines(eb.cursorLine+1, lines)
	eb.undo.RecordInsertRows(eb.cursorLine+1, lines, eb.cursorLine, eb.cursorCol)
	eb.cursorLine++
	eb.cursorCol = 0
	a.afterEdit()
}

func (a *App) pasteAbove() {
	if len(a.yankBuffer) == 0 {
		return
	}
	eb := a.currentBuf()
	lines := append([]string(nil), a.yankBuffer...)
	eb.buf.InsertLines(eb.cursorLine, lines)
	eb.undo.RecordInsertRows(eb.cursorLine, lines, eb.cursorLine, eb.cursorCol)
	eb.cursorCol = 0
	a.afterEdit()
}

func (a *App) undoAction() {
	eb := a.currentBuf()
	line, col, ok := eb.undo.Undo(eb.buf)
	if ok {
		eb.cursorLine = line
		eb.cursorCol = col
		a.afterEdit()
	}
}

func (a *App) redoAction() {
	eb := a.currentBuf()
	line, col, ok := eb.undo.Redo(eb.buf)
	if ok {
		eb.cursorLine = line
		eb.cursorCol = col
		a.afterEdit()
	}
}

// deleteWholeLine deletes the entire current line (dd operation).
func (a *App) deleteWholeLine() {
	eb := a.currentBuf()
	whole := eb.buf.LineCount() == 1
	content := eb.buf.DeleteLine(eb.cursorLine)
	a.yankBuffer = []string{content} // Cut semantics.
	eb.undo.RecordDeleteRows(eb.cursorLine, []string{content}, whole, eb.cursorLine, eb.cursorCol)
	a.afterEdit()
}

// selectionRange returns the normalized whole-line selection, or ok
// false when no selection is active.
func (a *App) selectionRange() (start, end int, ok bool) {
	eb := a.currentBuf()
	if eb.anchorLine < 0 {
		return 0, 0, false
	}
	start, end = eb.anchorLine, eb.cursorLine
	if start > end {
		start, end = end, start
	}
	return start, end, true
}

// deleteSelection deletes the selected lines (line-select d).
func (a *App) deleteSelection() {
	eb := a.currentBuf()
	start, end, ok := a.selectionRange()
	if !ok {
		return
	}
	whole := start == 0 && end == eb.buf.LineCount()-1
	lines := eb.buf.DeleteLines(start, end)
	a.yankBuffer = append([]string(nil), lines...)
	eb.undo.RecordDeleteRows(start, lines, whole, eb.cursorLine, eb.cursorCol)
	eb.cursorLine = start
	eb.cursorCol = 0
	eb.anchorLine = -1
	a.mode = ModeDefault
	a.afterEdit()
	a.statusBar.SetMessage(fmt.Sprintf("Deleted %d lines", len(lines)))
}

// yankSelection copies the selected lines (line-select y).
func (a *App) yankSelection() {
	eb := a.currentBuf()
	start, end, ok := a.selectionRange()
	if !ok {
		return
	}
	a.yankBuffer = nil
	for i := start; i <= end; i++ {
		a.yankBuffer = append(a.yankBuffer, eb.buf.Line(i))
	}
	eb.anchorLine = -1
	a.mode = ModeDefault
	a.statusBar.SetMessage(fmt.Sprintf("Yanked %d lines", len(a.yankBuffer)))
}

// mouseToBufferPos converts terminal mouse coordinates to a logical
// buffer position. ok is false when the click lands outside the text
// area.
func (a *App) mouseToBufferPos(termRow, termCol int) (int, int, bool) {
	eb := a.currentBuf()
	vp := a.viewport

	topPadding := 0
	if eb.scrollTop == 0 {
		topPadding = 1
	}

	// Click on status bar or above text area — ignore.
	if termRow >= vp.Height || termRow < 1+topPadding {
		return 0, 0, false
	}

	row := eb.scrollTop + (termRow - 1 - topPadding)
	clickCells := termCol - 1 - vp.LeftMargin
	if clickCells < 0 {
		clickCells = 0
	}

	if a.softWrap {
		eb.ensureWrap(a.wrapWidth(), a.config.TabWidth)
		if row >= eb.wrapCache.TotalRows() {
			// Click below the text — end of last line.
			last := eb.buf.LineCount() - 1
			return last, eb.buf.LineLen(last), true
		}
		seg, ok := eb.wrapCache.RowSegment(row)
		if !ok {
			return 0, 0, false
		}
		runes := []rune(eb.buf.Line(seg.Line))
		idx := cellsToRuneOffset(runes[seg.Start:seg.End()], clickCells, a.config.TabWidth)
		return seg.Line, seg.Start + idx, true
	}

	if row >= eb.buf.LineCount() {
		last := eb.buf.LineCount() - 1
		return last, eb.buf.LineLen(last), true
	}
	runes := []rune(eb.buf.Line(row))
	return row, cellsToRuneOffset(runes, clickCells, a.config.TabWidth), true
}

// cellsToRuneOffset walks runes from display column zero until the click
// cell is reached, honoring tab stops.
func cellsToRuneOffset(runes []rune, cells, tabWidth int) int {
	if tabWidth < 1 {
		tabWidth = 1
	}
	col := 0
	for i, r := range runes {
		w := 1
		if r == '\t' {
			w = tabWidth - col%tabWidth
		}
		if cells < col+w {
			return i
		}
		col += w
	}
	return len(runes)
}

func (a *App) render() {
	eb := a.currentBuf()
	vp := a.viewport
	tab := a.config.TabWidth

	var cursorRow, cursorVcol, totalRows int
	if a.softWrap {
		eb.ensureWrap(a.wrapWidth(), tab)
		cursorRow, cursorVcol = eb.wrapCache.ToVisual(eb.cursorLine, eb.cursorCol)
		totalRows = eb.wrapCache.TotalRows()
	} else {
		cursorRow, cursorVcol = eb.cursorLine, eb.cursorCol
		totalRows = eb.buf.LineCount()
	}

	vp.EnsureVisible(cursorRow, totalRows, &eb.scrollTop)
	topPadding := eb.scrollTop == 0
	vis := vp.VisibleRows(eb.scrollTop)

	rects := a.overlayRects(eb)

	var rows []FrameRow
	for i := 0; i < vis; i++ {
		row := eb.scrollTop + i
		if row >= totalRows {
			rows = append(rows, FrameRow{})
			continue
		}
		rows = append(rows, a.frameRow(eb, row, rects))
	}

	// Cursor position in screen cells; the visual column is measured in
	// display cells from the row's start.
	pad := 0
	if topPadding {
		pad = 1
	}
	var segPrefix string
	if a.softWrap {
		if seg, ok := eb.wrapCache.RowSegment(cursorRow); ok {
			runes := []rune(eb.buf.Line(seg.Line))
			segPrefix = string(runes[seg.Start : seg.Start+cursorVcol])
		}
	} else {
		runes := []rune(eb.buf.Line(eb.cursorLine))
		if cursorVcol > len(runes) {
			cursorVcol = len(runes)
		}
		segPrefix = string(runes[:cursorVcol])
	}
	cursorCells := wrap.Width(segPrefix, tab)
	if cursorCells >= vp.ColWidth {
		cursorCells = vp.ColWidth - 1
	}

	bufferInfo := ""
	if len(a.buffers) > 1 {
		bufferInfo = fmt.Sprintf("[%d/%d]", a.currentBuffer+1, len(a.buffers))
	}

	statusLeft := a.statusBar.FormatLeft(eb.Filename(), eb.IsDirty(), bufferInfo, eb.SpellErrorCount())
	if a.colAdjust.Active {
		statusLeft = fmt.Sprintf(" Column width: %d  (h/l adjust, Enter apply, Esc cancel)", a.colAdjust.Width)
	}
	statusRight := a.statusBar.FormatRight(a.mode, eb.cursorLine, eb.cursorCol, a.softWrap,
		eb.searchActive, eb.searchCurrentIdx, len(eb.searchMatches))

	frame := Frame{
		Rows:        rows,
		TopPadding:  topPadding,
		Width:       vp.Width,
		Height:      vp.Height,
		ColWidth:    vp.ColWidth,
		LeftMargin:  vp.LeftMargin,
		GutterWidth: vp.GutterWidth,
		TabWidth:    tab,
		CursorRow:   cursorRow - eb.scrollTop + 1 + pad,
		CursorCol:   vp.LeftMargin + cursorCells + 1,
		StatusLeft:  statusLeft,
		StatusRight: statusRight,
		Highlighter: eb.highlighter,
	}

	out := a.renderer.RenderFrame(frame)
	if a.picker.Active {
		out += a.renderer.RenderPicker(a.buffers, a.picker, a.currentBuffer, frame)
	}
	if a.outline.Active {
		out += a.renderer.RenderOutline(a.outline, frame)
	}

	os.Stdout.WriteString(out)
}

// overlaySets holds per-style highlight rectangles for one frame.
type overlaySets struct {
	selection     []wrap.Rect
	search        []wrap.Rect
	searchCurrent []wrap.Rect
	spell         []wrap.Rect
}

// overlayRects decomposes every logical-coordinate highlight (selection,
// search matches, spell errors) into per-row rectangles for this frame.
func (a *App) overlayRects(eb *EditorBuffer) overlaySets {
	var sets overlaySets
	cache := eb.wrapCache

	rectsFor := func(startLine, startCol, endLine, endCol int) []wrap.Rect {
		if a.softWrap {
			return cache.RangeRects(eb.buf, startLine, startCol, endLine, endCol)
		}
		// Wrap off: one logical line per row, so logical spans already
		// are row spans.
		var out []wrap.Rect
		for line := startLine; line <= endLine && line < eb.buf.LineCount(); line++ {
			lo, hi := 0, eb.buf.LineLen(line)
			if line == startLine {
				lo = startCol
			}
			if line == endLine && endCol < hi {
				hi = endCol
			}
			out = append(out, wrap.Rect{Row: line, StartCol: lo, EndCol: hi})
		}
		return out
	}

	if start, end, ok := a.selectionRange(); ok && a.mode == ModeSelect {
		sets.selection = rectsFor(start, 0, end, eb.buf.LineLen(end))
	}
	if eb.searchActive {
		for i, m := range eb.searchMatches {
			r := rectsFor(m.Line, m.StartCol, m.Line, m.EndCol)
			if i == eb.searchCurrentIdx {
				sets.searchCurrent = append(sets.searchCurrent, r...)
			} else {
				sets.search = append(sets.search, r...)
			}
		}
	}
	for _, se := range eb.spellErrors {
		sets.spell = append(sets.spell, rectsFor(se.Line, se.StartCol, se.Line, se.EndCol)...)
	}
	return sets
}

// frameRow resolves one visual row into its text, gutter number, and
// overlays.
func (a *App) frameRow(eb *EditorBuffer, row int, sets overlaySets) FrameRow {
	var (
		text    string
		lineNum int
		segRow  wrap.Segment
	)
	if a.softWrap {
		seg, ok := eb.wrapCache.RowSegment(row)
		if !ok {
			return FrameRow{}
		}
		segRow = seg
		runes := []rune(eb.buf.Line(seg.Line))
		text = string(runes[seg.Start:seg.End()])
		if !seg.Continuation {
			lineNum = seg.Line + 1
		}
	} else {
		text = eb.buf.Line(row)
		lineNum = row + 1
		segRow = wrap.Segment{Row: row}
	}

	var overlays []Overlay
	overlays = append(overlays, segmentOverlays(segRow, sets.selection, OverlaySelection)...)
	overlays = append(overlays, segmentOverlays(segRow, sets.search, OverlaySearch)...)
	overlays = append(overlays, segmentOverlays(segRow, sets.searchCurrent, OverlaySearchCurrent)...)
	overlays = append(overlays, segmentOverlays(segRow, sets.spell, OverlaySpell)...)

	if !a.config.LineNumbers {
		lineNum = 0
	}
	return FrameRow{Text: text, LineNumber: lineNum, Overlays: overlays}
}
