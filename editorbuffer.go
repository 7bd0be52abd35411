package main

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/mwhitaker/weft/internal/wrap"
)

// EditorBuffer holds all per-view state: text, undo history, cursor,
// scroll, highlighter, and this view's own wrap cache. The cache is never
// shared — two views of the same file at different widths each wrap
// independently.
type EditorBuffer struct {
	buf         *Buffer
	undo        *UndoStack
	highlighter Highlighter
	wrapCache   *wrap.Cache

	cursorLine int
	cursorCol  int
	desiredCol int // sticky visual column for vertical motion; -1 unset
	scrollTop  int // first visible visual row

	// Line-select state; anchorLine is -1 when no selection is active.
	anchorLine int

	// Spell checking state.
	spellErrors       []SpellError
	spellCheckPending bool
	lastEdit          time.Time

	// Search state.
	searchActive     bool
	searchQuery      string
	searchMatches    []SearchMatch
	searchCurrentIdx int
}

// SearchMatch is a single match in logical coordinates.
type SearchMatch struct {
	Line     int
	StartCol int // rune index
	EndCol   int // rune index, exclusive
}

// NewEditorBuffer creates an EditorBuffer for the given filename.
func NewEditorBuffer(filename string) *EditorBuffer {
	return &EditorBuffer{
		buf:         NewBuffer(filename),
		undo:        NewUndoStack(),
		highlighter: DetectHighlighter(filename),
		wrapCache:   wrap.New(),
		desiredCol:  -1,
		anchorLine:  -1,
	}
}

// ensureWrap rebuilds this view's wrap cache if it is stale for the
// current document revision, wrap width, or tab width. Queries never
// rebuild implicitly; every mapping consumer goes through here first.
func (eb *EditorBuffer) ensureWrap(width, tabWidth int) {
	if eb.wrapCache.NeedsRebuild(eb.buf.Revision(), width, tabWidth) {
		eb.wrapCache.Rebuild(eb.buf, width, tabWidth)
	}
}

// edited notes a mutation: invalidates the wrap cache (O(1); the rebuild
// is lazy), resets the sticky column, and schedules a spell check.
func (eb *EditorBuffer) edited() {
	eb.wrapCache.Invalidate()
	eb.desiredCol = -1
	eb.clearSearch()
	eb.ScheduleSpellCheck()
}

// clampCursor pulls the cursor back inside the document after an edit
// that may have removed its line or shortened it.
func (eb *EditorBuffer) clampCursor() {
	if eb.cursorLine >= eb.buf.LineCount() {
		eb.cursorLine = eb.buf.LineCount() - 1
	}
	if eb.cursorLine < 0 {
		eb.cursorLine = 0
	}
	if eb.cursorCol > eb.buf.LineLen(eb.cursorLine) {
		eb.cursorCol = eb.buf.LineLen(eb.cursorLine)
	}
	if eb.cursorCol < 0 {
		eb.cursorCol = 0
	}
}

// Filename returns the buffer's filename.
func (eb *EditorBuffer) Filename() string {
	return eb.buf.Filename
}

// IsDirty returns whether the buffer has unsaved changes.
func (eb *EditorBuffer) IsDirty() bool {
	return eb.buf.Dirty
}

// WordCount returns the buffer's word count.
func (eb *EditorBuffer) WordCount() int {
	return eb.buf.WordCount()
}

// clearSearch drops any active search match state.
func (eb *EditorBuffer) clearSearch() {
	eb.searchActive = false
	eb.searchQuery = ""
	eb.searchMatches = nil
	eb.searchCurrentIdx = -1
}

// runSearch finds all occurrences of query and records them in logical
// coordinates. Matching is a plain substring scan per line.
func (eb *EditorBuffer) runSearch(query string) {
	eb.clearSearch()
	if query == "" {
		return
	}
	eb.searchActive = true
	eb.searchQuery = query
	qRunes := len([]rune(query))
	for i := 0; i < eb.buf.LineCount(); i++ {
		line := eb.buf.Line(i)
		from := 0
		for {
			idx := strings.Index(line[from:], query)
			if idx < 0 {
				break
			}
			byteStart := from + idx
			runeStart := len([]rune(line[:byteStart]))
			eb.searchMatches = append(eb.searchMatches, SearchMatch{
				Line:     i,
				StartCol: runeStart,
				EndCol:   runeStart + qRunes,
			})
			from = byteStart + len(query)
		}
	}
	if len(eb.searchMatches) > 0 {
		eb.searchCurrentIdx = 0
	}
}

// ShouldSpellCheck reports whether this buffer gets spell checking.
// Only prose files are checked.
func (eb *EditorBuffer) ShouldSpellCheck() bool {
	if eb.buf.Filename == "" {
		return false
	}
	ext := strings.ToLower(filepath.Ext(eb.buf.Filename))
	return ext == ".md" || ext == ".txt" || ext == ".markdown"
}

// SpellErrorCount returns the number of cached spell errors.
func (eb *EditorBuffer) SpellErrorCount() int {
	return len(eb.spellErrors)
}

// ScheduleSpellCheck marks that a spell check should run after the
// debounce window.
func (eb *EditorBuffer) ScheduleSpellCheck() {
	if !eb.ShouldSpellCheck() {
		return
	}
	eb.spellCheckPending = true
	eb.lastEdit = time.Now()
}

// PerformSpellCheck runs the pending check once 300ms have passed since
// the last edit, so typing does not re-check on every keystroke.
func (eb *EditorBuffer) PerformSpellCheck(sc *SpellChecker) {
	if sc == nil || !eb.spellCheckPending {
		return
	}
	if time.Since(eb.lastEdit) < 300*time.Millisecond {
		return
	}
	eb.spellCheckPending = false
	eb.spellErrors = nil
	for i := 0; i < eb.buf.LineCount(); i++ {
		eb.spellErrors = append(eb.spellErrors, sc.CheckLine(i, eb.buf.Line(i))...)
	}
}
