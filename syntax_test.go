package main

import (
	"strings"
	"testing"
)

func TestDetectHighlighter(t *testing.T) {
	if _, ok := DetectHighlighter("notes.md").(MarkdownHighlighter); !ok {
		t.Error("markdown file should get the markdown highlighter")
	}
	if _, ok := DetectHighlighter("main.go").(PlainHighlighter); !ok {
		t.Error("other files should get the plain highlighter")
	}
	if _, ok := DetectHighlighter("").(PlainHighlighter); !ok {
		t.Error("unnamed buffers should get the plain highlighter")
	}
}

func TestMarkdownHeading(t *testing.T) {
	h := MarkdownHighlighter{}
	out := h.Highlight("## Title")
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("heading should be styled: %q", out)
	}
	if !strings.Contains(out, "## Title") {
		t.Errorf("heading text must survive: %q", out)
	}
}

func TestMarkdownPlainTextUntouched(t *testing.T) {
	h := MarkdownHighlighter{}
	out := h.Highlight("just a plain sentence")
	if out != "just a plain sentence" {
		t.Errorf("plain text should pass through: %q", out)
	}
}

func TestMarkdownInlineCode(t *testing.T) {
	h := MarkdownHighlighter{}
	out := h.Highlight("run `go vet` first")
	if !strings.Contains(out, "`go vet`") {
		t.Errorf("code span text must survive: %q", out)
	}
	if !strings.Contains(out, "\x1b[36m") {
		t.Errorf("code span should be coloured: %q", out)
	}
}

func TestTruncateVisiblePlain(t *testing.T) {
	if got := TruncateVisible("hello world", 5); got != "hello" {
		t.Errorf("truncated: %q", got)
	}
	if got := TruncateVisible("hi", 5); got != "hi" {
		t.Errorf("short string should pass through: %q", got)
	}
	if got := TruncateVisible("abc", 0); got != "" {
		t.Errorf("zero width: %q", got)
	}
}

func TestTruncateVisibleSkipsEscapes(t *testing.T) {
	in := "\x1b[1;34mhello\x1b[0m world"
	got := TruncateVisible(in, 5)
	if !strings.Contains(got, "hello") {
		t.Errorf("visible text cut short: %q", got)
	}
	if strings.Contains(got, "world") {
		t.Errorf("should stop at 5 cells: %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Errorf("styling must not leak past a cut: %q", got)
	}
}

func TestTruncateVisibleUnicode(t *testing.T) {
	got := TruncateVisible("héllo", 3)
	if got != "hél" {
		t.Errorf("unicode truncation: %q", got)
	}
}

func TestIsMarkdownFile(t *testing.T) {
	if !IsMarkdownFile("a.md") || !IsMarkdownFile("b.markdown") {
		t.Error("md extensions should be markdown")
	}
	if IsMarkdownFile("a.txt") || IsMarkdownFile("") {
		t.Error("non-md should not be markdown")
	}
}
