package wrap

import "sort"

// Document is the read-only surface the cache needs from the text buffer.
// Line and LineLen are rune-based, matching cursor columns. Revision must
// increase on every mutation so the cache can detect staleness.
type Document interface {
	Line(i int) string
	LineCount() int
	LineLen(i int) int
	Revision() uint64
}

// Segment is one wrap span annotated with its place in the overall layout.
type Segment struct {
	Span
	Line         int  // owning logical line
	Row          int  // global visual row index
	Continuation bool // false only for the first segment of its line
}

// lineSpan locates one logical line's segments inside the flat arena.
type lineSpan struct {
	first int // index of the line's first segment (== its first visual row)
	count int
}

// Cache holds the wrapped layout of one document at one width, and answers
// logical↔visual coordinate queries. Each editor view owns exactly one
// Cache; it is never shared across views or goroutines.
//
// Segments are stored in a flat slice ordered by visual row (so Row equals
// the slice index), with a parallel per-line index. That gives O(1)
// visual→logical and O(log k) logical→visual where k is the segment count
// of one line.
type Cache struct {
	segs  []Segment
	lines []lineSpan

	width    int
	tabWidth int
	revision uint64
	valid    bool
}

// New returns an empty, invalid cache. Callers must Rebuild before the
// mapping queries return anything other than the identity fallback.
func New() *Cache {
	return &Cache{}
}

// Rebuild wraps every line of doc at the given width and tab width,
// assigning globally increasing visual rows, and marks the cache valid.
// Runs in O(total runes in doc).
func (c *Cache) Rebuild(doc Document, width, tabWidth int) {
	n := doc.LineCount()
	c.segs = c.segs[:0]
	if cap(c.lines) < n {
		c.lines = make([]lineSpan, n)
	} else {
		c.lines = c.lines[:n]
	}

	row := 0
	for i := 0; i < n; i++ {
		spans := Line(doc.Line(i), width, tabWidth)
		c.lines[i] = lineSpan{first: row, count: len(spans)}
		for j, sp := range spans {
			c.segs = append(c.segs, Segment{
				Span:         sp,
				Line:         i,
				Row:          row,
				Continuation: j > 0,
			})
			row++
		}
	}

	c.width = width
	c.tabWidth = tabWidth
	c.revision = doc.Revision()
	c.valid = true
}

// NeedsRebuild reports whether the cache is stale for the given document
// revision, wrap width, and tab width. A tab width change reflows tab
// stops, so it invalidates exactly like a resize.
func (c *Cache) NeedsRebuild(revision uint64, width, tabWidth int) bool {
	return !c.valid || c.revision != revision || c.width != width || c.tabWidth != tabWidth
}

// Invalidate marks the cache stale without discarding its storage. Cheap
// enough to call on every keystroke; the rebuild happens lazily on the
// next query that needs it.
func (c *Cache) Invalidate() {
	c.valid = false
}

// Valid reports whether the cache reflects some document revision.
func (c *Cache) Valid() bool { return c.valid }

// Width returns the wrap width the cache was built at.
func (c *Cache) Width() int { return c.width }

// TotalRows returns the number of visual rows in the wrapped document.
func (c *Cache) TotalRows() int {
	if !c.valid {
		// Identity fallback: one row per logical line of the last build.
		return len(c.lines)
	}
	return len(c.segs)
}

// segsFor returns the segments of one logical line, already clamped.
func (c *Cache) segsFor(line int) []Segment {
	ls := c.lines[line]
	return c.segs[ls.first : ls.first+ls.count]
}

// clampLine clamps a logical line index into range. Returns -1 when the
// cache holds no lines at all.
func (c *Cache) clampLine(line int) int {
	if len(c.lines) == 0 {
		return -1
	}
	if line < 0 {
		return 0
	}
	if line >= len(c.lines) {
		return len(c.lines) - 1
	}
	return line
}

// ToVisual maps a logical (line, col) cursor position to its visual row
// and in-row column. Out-of-range input clamps to the nearest valid
// position; an invalid cache degrades to the identity mapping.
func (c *Cache) ToVisual(line, col int) (row, vcol int) {
	if !c.valid {
		return line, col
	}
	line = c.clampLine(line)
	if line < 0 {
		return 0, 0
	}
	segs := c.segsFor(line)
	last := segs[len(segs)-1]
	if col < 0 {
		col = 0
	}
	if col > last.End() {
		col = last.End()
	}
	// First segment whose end is past col; col == line length lands on
	// the last segment so an end-of-line cursor stays on its own row.
	i := sort.Search(len(segs)-1, func(i int) bool { return col < segs[i].End() })
	return segs[i].Row, col - segs[i].Start
}

// ToLogical maps a visual (row, vcol) position back to logical
// coordinates, clamping an over-long visual column to the segment length.
func (c *Cache) ToLogical(row, vcol int) (line, col int) {
	if !c.valid {
		return row, vcol
	}
	if len(c.segs) == 0 {
		return 0, 0
	}
	if row < 0 {
		row = 0
	}
	if row >= len(c.segs) {
		row = len(c.segs) - 1
	}
	seg := c.segs[row]
	if vcol < 0 {
		vcol = 0
	}
	if vcol > seg.Len {
		vcol = seg.Len
	}
	return seg.Line, seg.Start + vcol
}

// LineStartRow returns the visual row of a line's first segment — the row
// a gutter line number belongs on.
func (c *Cache) LineStartRow(line int) int {
	if !c.valid {
		return line
	}
	line = c.clampLine(line)
	if line < 0 {
		return 0
	}
	return c.lines[line].first
}

// RowLine returns the logical line that owns a visual row.
func (c *Cache) RowLine(row int) int {
	line, _ := c.ToLogical(row, 0)
	return line
}

// IsContinuation reports whether a visual row is a continuation of its
// logical line rather than its first segment.
func (c *Cache) IsContinuation(row int) bool {
	if !c.valid || len(c.segs) == 0 {
		return false
	}
	if row < 0 {
		row = 0
	}
	if row >= len(c.segs) {
		row = len(c.segs) - 1
	}
	return c.segs[row].Continuation
}

// RowCount returns how many visual rows a logical line occupies.
func (c *Cache) RowCount(line int) int {
	if !c.valid {
		return 1
	}
	line = c.clampLine(line)
	if line < 0 {
		return 0
	}
	return c.lines[line].count
}

// RowSegment returns the segment rendered on a visual row, for the
// renderer to slice the line text with. ok is false when the cache is
// invalid or empty.
func (c *Cache) RowSegment(row int) (Segment, bool) {
	if !c.valid || len(c.segs) == 0 {
		return Segment{}, false
	}
	if row < 0 || row >= len(c.segs) {
		return Segment{}, false
	}
	return c.segs[row], true
}
