package wrap

// Rect is one highlight rectangle on a single visual row. StartCol and
// EndCol are rune offsets within that row's segment (EndCol exclusive).
// A zero-width rect marks a row crossed by a selection that has no
// characters there, such as an empty line inside a multi-line range.
type Rect struct {
	Row      int
	StartCol int
	EndCol   int
}

// RangeRects decomposes a logical range into one rectangle per visual row
// it crosses, clipped at segment boundaries. The range is normalized if
// reversed, and clamped to the document; interior lines are covered for
// their full length. A collapsed range yields no rects. An invalid cache
// yields one full-width rect per logical line, matching the identity
// mapping used everywhere else.
func (c *Cache) RangeRects(doc Document, startLine, startCol, endLine, endCol int) []Rect {
	if endLine < startLine || (endLine == startLine && endCol < startCol) {
		startLine, startCol, endLine, endCol = endLine, endCol, startLine, startCol
	}
	if startLine == endLine && startCol == endCol {
		return nil
	}

	n := doc.LineCount()
	if n == 0 {
		return nil
	}
	startLine = clamp(startLine, 0, n-1)
	endLine = clamp(endLine, 0, n-1)

	var rects []Rect
	for line := startLine; line <= endLine; line++ {
		lo, hi := 0, doc.LineLen(line)
		if line == startLine {
			lo = clamp(startCol, 0, hi)
		}
		if line == endLine {
			hi = clamp(endCol, lo, hi)
		}

		if !c.valid {
			rects = append(rects, Rect{Row: line, StartCol: lo, EndCol: hi})
			continue
		}

		segs := c.segsFor(clampMust(c, line))
		if lo == hi {
			// The selection crosses this line without covering any
			// runes; still emit a marker on the row holding column lo.
			row, vcol := c.ToVisual(line, lo)
			rects = append(rects, Rect{Row: row, StartCol: vcol, EndCol: vcol})
			continue
		}
		for _, seg := range segs {
			s := maxInt(lo, seg.Start)
			e := minInt(hi, seg.End())
			if s < e {
				rects = append(rects, Rect{Row: seg.Row, StartCol: s - seg.Start, EndCol: e - seg.Start})
			}
		}
	}
	return rects
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampMust(c *Cache, line int) int {
	if l := c.clampLine(line); l >= 0 {
		return l
	}
	return 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
