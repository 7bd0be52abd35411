package main

import "strings"

// OutlineItem is one markdown heading in the document.
type OutlineItem struct {
	Level      int
	Title      string
	BufferLine int
}

// Outline manages the document outline overlay state.
type Outline struct {
	Active bool
	Items  []OutlineItem
	listNav
}

// Show activates the outline with the given items.
func (o *Outline) Show(items []OutlineItem) {
	o.Active = true
	o.Items = items
	o.Selected = 0
}

// Hide deactivates the outline.
func (o *Outline) Hide() {
	o.Active = false
	o.Items = nil
	o.Selected = 0
}

// ExtractHeadings scans the buffer for markdown ATX headings.
func ExtractHeadings(buf *Buffer) []OutlineItem {
	var items []OutlineItem
	for i := 0; i < buf.LineCount(); i++ {
		line := buf.Line(i)
		trimmed := strings.TrimLeft(line, "#")
		level := len(line) - len(trimmed)
		if level < 1 || level > 6 {
			continue
		}
		if !strings.HasPrefix(trimmed, " ") {
			continue
		}
		title := strings.TrimSpace(trimmed)
		if title == "" {
			continue
		}
		items = append(items, OutlineItem{Level: level, Title: title, BufferLine: i})
	}
	return items
}
