package main

import (
	"os"
	"strings"
	"unicode"
)

// Buffer holds the text content as a slice of hard lines (split on \n).
// Every mutation bumps a revision counter; the wrap caches key their
// validity off it, so a stale layout can never be mistaken for current.
type Buffer struct {
	Lines    []string
	Dirty    bool
	Filename string

	revision uint64
}

func NewBuffer(filename string) *Buffer {
	return &Buffer{
		Lines:    []string{""},
		Filename: filename,
	}
}

// touch records a mutation: marks the buffer dirty and bumps the revision.
func (b *Buffer) touch() {
	b.Dirty = true
	b.revision++
}

// Revision returns the monotonically increasing mutation counter.
func (b *Buffer) Revision() uint64 {
	return b.revision
}

// Load reads the file into the buffer, replacing its content.
func (b *Buffer) Load() error {
	if b.Filename == "" {
		return nil
	}
	data, err := os.ReadFile(b.Filename)
	if err != nil {
		if os.IsNotExist(err) {
			// New file — start with an empty buffer.
			b.Lines = []string{""}
			b.revision++
			return nil
		}
		return err
	}
	text := string(data)
	// Strip trailing newline to avoid a phantom empty line.
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		b.Lines = []string{""}
	} else {
		b.Lines = strings.Split(text, "\n")
	}
	b.Dirty = false
	b.revision++
	return nil
}

// Save writes the buffer to the given filename (or current filename).
func (b *Buffer) Save(filename string) error {
	if filename != "" {
		b.Filename = filename
	}
	if b.Filename == "" {
		return nil // Caller should prompt for a name.
	}
	content := strings.Join(b.Lines, "\n") + "\n"
	if err := os.WriteFile(b.Filename, []byte(content), 0644); err != nil {
		return err
	}
	b.Dirty = false
	return nil
}

// InsertChar inserts a character at the given line and column position.
func (b *Buffer) InsertChar(line, col int, ch rune) {
	if line < 0 || line >= len(b.Lines) {
		return
	}
	runes := []rune(b.Lines[line])
	if col < 0 {
		col = 0
	}
	if col > len(runes) {
		col = len(runes)
	}
	newRunes := make([]rune, 0, len(runes)+1)
	newRunes = append(newRunes, runes[:col]...)
	newRunes = append(newRunes, ch)
	newRunes = append(newRunes, runes[col:]...)
	b.Lines[line] = string(newRunes)
	b.touch()
}

// DeleteChar deletes the character before the given position (backspace).
// Returns the deleted rune and whether a line join occurred.
func (b *Buffer) DeleteChar(line, col int) (rune, bool) {
	if line < 0 || line >= len(b.Lines) {
		return 0, false
	}
	if col > 0 {
		runes := []rune(b.Lines[line])
		if col > len(runes) {
			col = len(runes)
		}
		ch := runes[col-1]
		newRunes := make([]rune, 0, len(runes)-1)
		newRunes = append(newRunes, runes[:col-1]...)
		newRunes = append(newRunes, runes[col:]...)
		b.Lines[line] = string(newRunes)
		b.touch()
		return ch, false
	}
	// col == 0: join with the previous line.
	if line == 0 {
		return 0, false
	}
	b.JoinLines(line - 1)
	return '\n', true
}

// DeleteCharForward deletes the character at the given position (Del key).
// Returns the deleted rune, or 0 if nothing was deleted.
func (b *Buffer) DeleteCharForward(line, col int) rune {
	if line < 0 || line >= len(b.Lines) {
		return 0
	}
	runes := []rune(b.Lines[line])
	if col < 0 || col >= len(runes) {
		return 0
	}
	ch := runes[col]
	b.Lines[line] = string(append(runes[:col], runes[col+1:]...))
	b.touch()
	return ch
}

// InsertNewline splits the line at the given position.
func (b *Buffer) InsertNewline(line, col int) {
	if line < 0 || line >= len(b.Lines) {
		return
	}
	runes := []rune(b.Lines[line])
	if col < 0 {
		col = 0
	}
	if col > len(runes) {
		col = len(runes)
	}
	before := string(runes[:col])
	after := string(runes[col:])
	b.Lines[line] = before
	newLines := make([]string, 0, len(b.Lines)+1)
	newLines = append(newLines, b.Lines[:line+1]...)
	newLines = append(newLines, after)
	newLines = append(newLines, b.Lines[line+1:]...)
	b.Lines = newLines
	b.touch()
}

// JoinLines joins line[idx] with line[idx+1].
func (b *Buffer) JoinLines(idx int) {
	if idx < 0 || idx+1 >= len(b.Lines) {
		return
	}
	b.Lines[idx] += b.Lines[idx+1]
	b.Lines = append(b.Lines[:idx+1], b.Lines[idx+2:]...)
	b.touch()
}

// InsertLine inserts content as a whole new line at the given index.
func (b *Buffer) InsertLine(idx int, content string) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(b.Lines) {
		idx = len(b.Lines)
	}
	newLines := make([]string, 0, len(b.Lines)+1)
	newLines = append(newLines, b.Lines[:idx]...)
	newLines = append(newLines, content)
	newLines = append(newLines, b.Lines[idx:]...)
	b.Lines = newLines
	b.touch()
}

// DeleteLine removes the line at idx and returns its content. The buffer
// always keeps at least one (possibly empty) line.
func (b *Buffer) DeleteLine(idx int) string {
	if idx < 0 || idx >= len(b.Lines) {
		return ""
	}
	content := b.Lines[idx]
	if len(b.Lines) == 1 {
		b.Lines[0] = ""
	} else {
		b.Lines = append(b.Lines[:idx], b.Lines[idx+1:]...)
	}
	b.touch()
	return content
}

// DeleteLines removes lines [start, end] inclusive and returns them.
func (b *Buffer) DeleteLines(start, end int) []string {
	if start < 0 {
		start = 0
	}
	if end >= len(b.Lines) {
		end = len(b.Lines) - 1
	}
	if start > end {
		return nil
	}
	removed := make([]string, end-start+1)
	copy(removed, b.Lines[start:end+1])
	if start == 0 && end == len(b.Lines)-1 {
		b.Lines = []string{""}
	} else {
		b.Lines = append(b.Lines[:start], b.Lines[end+1:]...)
	}
	b.touch()
	return removed
}

// InsertLines inserts whole lines starting at idx.
func (b *Buffer) InsertLines(idx int, lines []string) {
	if len(lines) == 0 {
		return
	}
	if idx < 0 {
		idx = 0
	}
	if idx > len(b.Lines) {
		idx = len(b.Lines)
	}
	newLines := make([]string, 0, len(b.Lines)+len(lines))
	newLines = append(newLines, b.Lines[:idx]...)
	newLines = append(newLines, lines...)
	newLines = append(newLines, b.Lines[idx:]...)
	b.Lines = newLines
	b.touch()
}

// SetLine replaces the content of one line. Used by undo/redo so that
// history replay still bumps the revision.
func (b *Buffer) SetLine(idx int, content string) {
	if idx < 0 || idx >= len(b.Lines) {
		return
	}
	b.Lines[idx] = content
	b.touch()
}

// Line returns the text of a line, or "" when out of range.
func (b *Buffer) Line(idx int) string {
	if idx < 0 || idx >= len(b.Lines) {
		return ""
	}
	return b.Lines[idx]
}

// LineLen returns the rune-length of a given line.
func (b *Buffer) LineLen(line int) int {
	return len([]rune(b.Line(line)))
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// WordCount counts whitespace-separated words across the buffer.
func (b *Buffer) WordCount() int {
	count := 0
	for _, line := range b.Lines {
		inWord := false
		for _, r := range line {
			if unicode.IsSpace(r) {
				inWord = false
			} else if !inWord {
				inWord = true
				count++
			}
		}
	}
	return count
}
