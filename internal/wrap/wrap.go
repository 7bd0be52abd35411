package wrap

import "unicode"

// Span is one contiguous rune range of a logical line that fits on one
// rendered row. Start and Len are rune indices, not bytes, so they line up
// with cursor columns everywhere else in the editor.
type Span struct {
	Start int
	Len   int
}

// End returns the exclusive end column of the span.
func (s Span) End() int { return s.Start + s.Len }

// runeWidth returns the visual width of r when it starts at column col.
// A tab advances to the next multiple of tabWidth; everything else counts
// as one column. Wide and combining runes are deliberately treated as
// width 1 — keeping the policy in one function so it can change later
// without touching the wrapping loop.
func runeWidth(r rune, col, tabWidth int) int {
	if r == '\t' {
		if tabWidth < 1 {
			tabWidth = 1
		}
		return tabWidth - col%tabWidth
	}
	return 1
}

// isBreak reports whether r is a legal break point for word wrapping.
func isBreak(r rune) bool {
	return unicode.IsSpace(r)
}

// Line soft-wraps a single logical line into spans no wider than width
// visual columns. Breaks prefer the last whitespace seen in the current
// span, keeping the whitespace on the completed span; a word wider than
// the whole width is force-broken. An empty line yields one zero-length
// span, and every span holds at least one rune, so the scan always makes
// progress no matter how small the width is.
func Line(text string, width, tabWidth int) []Span {
	if width < 1 {
		width = 1
	}
	if tabWidth < 1 {
		tabWidth = 1
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return []Span{{Start: 0, Len: 0}}
	}

	spans := make([]Span, 0, 1+len(runes)/width)
	segStart := 0
	col := 0
	lastBreak := -1 // index of the most recent whitespace in this span

	for i := 0; i < len(runes); {
		w := runeWidth(runes[i], col, tabWidth)
		if col+w > width && i > segStart {
			cut := i
			if lastBreak >= segStart {
				// Break after the whitespace so it stays on this span.
				cut = lastBreak + 1
			}
			spans = append(spans, Span{Start: segStart, Len: cut - segStart})
			segStart = cut
			// Re-measure from the cut: tabs recompute their stop
			// relative to column 0 of the new span.
			i = cut
			col = 0
			lastBreak = -1
			continue
		}
		if isBreak(runes[i]) {
			lastBreak = i
		}
		col += w
		i++
	}

	return append(spans, Span{Start: segStart, Len: len(runes) - segStart})
}

// Width measures the visual width of text starting at column 0.
func Width(text string, tabWidth int) int {
	col := 0
	for _, r := range text {
		col += runeWidth(r, col, tabWidth)
	}
	return col
}
