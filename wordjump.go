package main

import "unicode"

// nextWordStart returns the position of the next word start after
// line:col, crossing line boundaries. Returns the input unchanged at
// the end of the buffer.
func nextWordStart(buf *Buffer, line, col int) (int, int) {
	runes := []rune(buf.Line(line))

	// Skip the rest of the current word, then any whitespace.
	i := col
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	if i < len(runes) {
		return line, i
	}

	// Wrap to the first word of a following line.
	for l := line + 1; l < buf.LineCount(); l++ {
		lr := []rune(buf.Line(l))
		j := 0
		for j < len(lr) && unicode.IsSpace(lr[j]) {
			j++
		}
		if j < len(lr) {
			return l, j
		}
	}
	return line, col
}

// prevWordStart returns the position of the previous word start before
// line:col, crossing line boundaries.
func prevWordStart(buf *Buffer, line, col int) (int, int) {
	runes := []rune(buf.Line(line))
	if col > len(runes) {
		col = len(runes)
	}

	i := col - 1
	for i >= 0 && unicode.IsSpace(runes[i]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	if i >= 0 && i < col && i < len(runes) && !unicode.IsSpace(runes[i]) {
		return line, i
	}

	// Wrap to the last word of a preceding line.
	for l := line - 1; l >= 0; l-- {
		lr := []rune(buf.Line(l))
		j := len(lr) - 1
		for j >= 0 && unicode.IsSpace(lr[j]) {
			j--
		}
		if j < 0 {
			continue
		}
		for j > 0 && !unicode.IsSpace(lr[j-1]) {
			j--
		}
		return l, j
	}
	return line, col
}
