package main

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Highlighter applies syntax colouring to a single rendered row of text.
type Highlighter interface {
	Highlight(line string) string
}

// PlainHighlighter returns text unchanged.
type PlainHighlighter struct{}

func (PlainHighlighter) Highlight(line string) string { return line }

// MarkdownHighlighter applies ANSI colour codes to markdown syntax.
// It operates per rendered row, so an inline span cut by a wrap boundary
// only colours the part on this row — acceptable for a lightweight pass.
type MarkdownHighlighter struct{}

var (
	// Line-level patterns.
	reHeading = regexp.MustCompile(`^#{1,6}\s`)
	reQuote   = regexp.MustCompile(`^>\s`)
	reHR      = regexp.MustCompile(`^(---+|\*\*\*+|___+)\s*$`)

	// Inline patterns.
	reBold = regexp.MustCompile(`(\*\*|__)(.+?)(\*\*|__)`)
	reCode = regexp.MustCompile("`([^`]+?)`")
	reLink = regexp.MustCompile(`\[([^\]]+?)\]\(([^\)]+?)\)`)
)

func (MarkdownHighlighter) Highlight(line string) string {
	// Line-level rules: if matched, style the entire row.
	if reHR.MatchString(line) {
		return "\x1b[90m" + line + "\x1b[0m"
	}
	if reHeading.MatchString(line) {
		return "\x1b[1;34m" + line + "\x1b[0m"
	}
	if reQuote.MatchString(line) {
		return "\x1b[90m" + line + "\x1b[0m"
	}

	result := line
	result = reBold.ReplaceAllString(result, "$1\x1b[1;33m$2\x1b[22;39m$3")
	result = reCode.ReplaceAllString(result, "\x1b[36m`$1`\x1b[39m")
	result = reLink.ReplaceAllString(result, "\x1b[4;34m$1\x1b[24;39m")
	return result
}

// DetectHighlighter picks a highlighter from the file extension.
func DetectHighlighter(filename string) Highlighter {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return MarkdownHighlighter{}
	default:
		return PlainHighlighter{}
	}
}

// IsMarkdownFile reports whether the outline view applies to this file.
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown"
}

// TruncateVisible cuts text to at most width visible cells, skipping ANSI
// escape sequences when counting. A reset is appended if anything was cut
// after an escape so styling cannot leak into the next row.
func TruncateVisible(text string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	cells := 0
	sawEscape := false
	i := 0
	for i < len(text) {
		if text[i] == 0x1b {
			// Copy the whole CSI sequence without counting it.
			j := i + 1
			if j < len(text) && text[j] == '[' {
				j++
				for j < len(text) && (text[j] < 0x40 || text[j] > 0x7e) {
					j++
				}
				if j < len(text) {
					j++
				}
			}
			b.WriteString(text[i:j])
			sawEscape = true
			i = j
			continue
		}
		if cells >= width {
			if sawEscape {
				b.WriteString("\x1b[0m")
			}
			return b.String()
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		b.WriteString(text[i : i+size])
		cells++
		i += size
	}
	return b.String()
}
