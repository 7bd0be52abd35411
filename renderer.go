package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mwhitaker/weft/internal/wrap"
)

// OverlayStyle selects the ANSI styling for a highlighted span of a row.
type OverlayStyle int

const (
	OverlaySelection     OverlayStyle = iota // reverse video
	OverlaySearch                            // yellow background
	OverlaySearchCurrent                     // bright yellow background
	OverlaySpell                             // red underline
)

// Overlay is a styled span of one row, in rune offsets relative to the
// row's segment start. Start == End marks a zero-width span, drawn as a
// single highlighted cell (an empty line inside a selection).
type Overlay struct {
	Start int
	End   int
	Style OverlayStyle
}

// FrameRow is one visual row ready to draw: the raw segment text (tabs
// unexpanded) plus any overlays on it. LineNumber is 1-based and 0 on
// continuation rows, where the gutter stays blank.
type FrameRow struct {
	Text       string
	LineNumber int
	Overlays   []Overlay
}

// Frame is a fully resolved screen: the visible rows in order, layout
// metrics, cursor placement in screen cells, and status bar text.
type Frame struct {
	Rows       []FrameRow
	TopPadding bool

	Width       int
	Height      int
	ColWidth    int
	LeftMargin  int
	GutterWidth int
	TabWidth    int

	CursorRow int // 1-based screen row
	CursorCol int // 1-based screen column

	StatusLeft  string
	StatusRight string

	Highlighter Highlighter
}

// Renderer builds a frame buffer and writes it to the terminal in one go.
type Renderer struct {
	buf strings.Builder
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderFrame draws the full screen: wrapped rows, gutter, status bar,
// and cursor placement.
func (r *Renderer) RenderFrame(f Frame) string {
	r.buf.Reset()

	// Hide cursor during drawing.
	r.buf.WriteString("\x1b[?25l")

	// Clear screen and move to top-left.
	r.buf.WriteString("\x1b[2J\x1b[H")

	topPadding := 0
	if f.TopPadding {
		topPadding = 1
	}
	marginStr := ""
	if textMargin := f.LeftMargin - f.GutterWidth; textMargin > 0 {
		marginStr = strings.Repeat(" ", textMargin)
	}

	for i, row := range f.Rows {
		r.buf.WriteString(fmt.Sprintf("\x1b[%d;1H", i+1+topPadding))
		if f.GutterWidth > 0 {
			r.buf.WriteString(r.gutterCell(row.LineNumber, f.GutterWidth))
		}
		r.buf.WriteString(marginStr)
		if len(row.Overlays) > 0 {
			r.buf.WriteString(r.renderOverlayRow(row.Text, row.Overlays, f.TabWidth, f.ColWidth))
		} else {
			text := expandTabs(row.Text, f.TabWidth)
			text = f.Highlighter.Highlight(text)
			r.buf.WriteString(TruncateVisible(text, f.ColWidth))
		}
	}

	r.renderStatusBar(f.Width, f.Height, f.StatusLeft, f.StatusRight)

	r.buf.WriteString(fmt.Sprintf("\x1b[%d;%dH", f.CursorRow, f.CursorCol))
	r.buf.WriteString("\x1b[?25h")

	return r.buf.String()
}

// gutterCell formats one line number right-aligned in the gutter, or a
// blank gutter on continuation rows.
func (r *Renderer) gutterCell(lineNumber, gutterWidth int) string {
	if lineNumber <= 0 {
		return strings.Repeat(" ", gutterWidth)
	}
	return fmt.Sprintf("\x1b[90m%*d \x1b[0m", gutterWidth-1, lineNumber)
}

// expandTabs replaces tabs with spaces to the next tab stop. Display
// columns restart at zero on every row, matching how the wrap width was
// measured.
func expandTabs(text string, tabWidth int) string {
	if !strings.ContainsRune(text, '\t') {
		return text
	}
	if tabWidth < 1 {
		tabWidth = 1
	}
	var b strings.Builder
	col := 0
	for _, r := range text {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}

// sgr escape codes per overlay style.
func overlaySGR(s OverlayStyle) string {
	switch s {
	case OverlaySelection:
		return "\x1b[7m"
	case OverlaySearch:
		return "\x1b[48;5;58m"
	case OverlaySearchCurrent:
		return "\x1b[30;48;5;220m"
	case OverlaySpell:
		return "\x1b[4;31m"
	}
	return ""
}

// overlayAt returns the highest-priority overlay covering rune index i,
// selection winning over search winning over spell.
func overlayAt(overlays []Overlay, i int) (OverlayStyle, bool) {
	found := false
	var best OverlayStyle
	for _, ov := range overlays {
		if i < ov.Start || i >= ov.End {
			continue
		}
		if !found || ov.Style < best {
			best = ov.Style
			found = true
		}
	}
	return best, found
}

// renderOverlayRow draws a row rune by rune, switching styles at overlay
// boundaries. Rows with overlays skip syntax highlighting; the two sets
// of escape codes do not compose.
func (r *Renderer) renderOverlayRow(text string, overlays []Overlay, tabWidth, colWidth int) string {
	if tabWidth < 1 {
		tabWidth = 1
	}
	var b strings.Builder
	runes := []rune(text)
	col := 0
	styled := false

	for i, ch := range runes {
		if col >= colWidth {
			break
		}
		style, ok := overlayAt(overlays, i)
		if ok {
			b.WriteString(overlaySGR(style))
			styled = true
		} else if styled {
			b.WriteString("\x1b[0m")
			styled = false
		}
		if ch == '\t' {
			n := tabWidth - col%tabWidth
			if col+n > colWidth {
				n = colWidth - col
			}
			b.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		b.WriteRune(ch)
		col++
	}
	if styled {
		b.WriteString("\x1b[0m")
	}

	// A zero-width selection span (empty line inside a selection) shows
	// as one reversed cell.
	for _, ov := range overlays {
		if ov.Style == OverlaySelection && ov.Start == ov.End && col < colWidth {
			b.WriteString("\x1b[7m \x1b[0m")
			break
		}
	}
	return b.String()
}

func (r *Renderer) renderStatusBar(width, height int, left, right string) {
	r.buf.WriteString(fmt.Sprintf("\x1b[%d;1H", height))
	// Reverse video for status bar.
	r.buf.WriteString("\x1b[7m")

	leftLen := visibleLen(left)
	rightLen := visibleLen(right)

	if leftLen+rightLen >= width {
		maxLeft := width - rightLen - 1
		if maxLeft < 0 {
			maxLeft = 0
		}
		left = TruncateVisible(left, maxLeft)
		leftLen = visibleLen(left)
	}

	gap := width - leftLen - rightLen
	if gap < 0 {
		gap = 0
	}

	r.buf.WriteString(left)
	// Re-assert reverse video in case the left side carried a reset.
	r.buf.WriteString("\x1b[7m")
	r.buf.WriteString(strings.Repeat(" ", gap))
	r.buf.WriteString(right)

	r.buf.WriteString("\x1b[0m")
}

// visibleLen counts display cells, skipping ANSI escape sequences.
func visibleLen(s string) int {
	n := 0
	i := 0
	for i < len(s) {
		if s[i] == 0x1b {
			j := i + 1
			if j < len(s) && s[j] == '[' {
				j++
				for j < len(s) && (s[j] < 0x40 || s[j] > 0x7e) {
					j++
				}
				if j < len(s) {
					j++
				}
			}
			i = j
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		n++
		i += size
	}
	return n
}

// RenderPicker draws the buffer switcher as a centred overlay box.
func (r *Renderer) RenderPicker(buffers []*EditorBuffer, p *Picker, current int, f Frame) string {
	var b strings.Builder

	boxWidth := 40
	if boxWidth > f.Width-4 {
		boxWidth = f.Width - 4
	}
	startRow := f.Height/2 - len(buffers)/2 - 1
	if startRow < 1 {
		startRow = 1
	}
	startCol := (f.Width - boxWidth) / 2

	for i, eb := range buffers {
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH", startRow+i, startCol))
		name := truncatePath(eb.Filename())
		if eb.IsDirty() {
			name += " +"
		}
		marker := "  "
		if i == current {
			marker = "* "
		}
		line := marker + name
		if visibleLen(line) > boxWidth-2 {
			line = TruncateVisible(line, boxWidth-2)
		}
		pad := boxWidth - visibleLen(line)
		if pad < 0 {
			pad = 0
		}
		if i == p.Selected {
			b.WriteString("\x1b[7m " + line + strings.Repeat(" ", pad) + " \x1b[0m")
		} else {
			b.WriteString("\x1b[48;5;236m " + line + strings.Repeat(" ", pad) + " \x1b[0m")
		}
	}
	return b.String()
}

// RenderOutline draws the heading outline as a centred overlay box.
func (r *Renderer) RenderOutline(o *Outline, f Frame) string {
	var b strings.Builder

	if len(o.Items) == 0 {
		msg := " No headings "
		row := f.Height / 2
		col := (f.Width - len(msg)) / 2
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH\x1b[48;5;236m%s\x1b[0m", row, col, msg))
		return b.String()
	}

	boxWidth := 50
	if boxWidth > f.Width-4 {
		boxWidth = f.Width - 4
	}
	maxItems := f.Height - 4
	items := o.Items
	first := 0
	if len(items) > maxItems {
		// Keep the selection in view.
		first = o.Selected - maxItems/2
		if first < 0 {
			first = 0
		}
		if first+maxItems > len(items) {
			first = len(items) - maxItems
		}
		items = items[first : first+maxItems]
	}
	startRow := f.Height/2 - len(items)/2 - 1
	if startRow < 1 {
		startRow = 1
	}
	startCol := (f.Width - boxWidth) / 2

	for i, item := range items {
		b.WriteString(fmt.Sprintf("\x1b[%d;%dH", startRow+i, startCol))
		line := strings.Repeat("  ", item.Level-1) + item.Title
		if visibleLen(line) > boxWidth-2 {
			line = TruncateVisible(line, boxWidth-2)
		}
		pad := boxWidth - visibleLen(line)
		if pad < 0 {
			pad = 0
		}
		if first+i == o.Selected {
			b.WriteString("\x1b[7m " + line + strings.Repeat(" ", pad) + " \x1b[0m")
		} else {
			b.WriteString("\x1b[48;5;236m " + line + strings.Repeat(" ", pad) + " \x1b[0m")
		}
	}
	return b.String()
}

// segmentOverlays clips logical-coordinate spans onto one row's segment,
// producing overlays in segment-relative rune offsets.
func segmentOverlays(seg wrap.Segment, rects []wrap.Rect, style OverlayStyle) []Overlay {
	var out []Overlay
	for _, rect := range rects {
		if rect.Row != seg.Row {
			continue
		}
		out = append(out, Overlay{Start: rect.StartCol, End: rect.EndCol, Style: style})
	}
	return out
}
