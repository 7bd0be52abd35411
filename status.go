package main

import (
	"fmt"
	"path/filepath"
)

// PromptType indicates what kind of prompt is active.
type PromptType int

const (
	PromptNone    PromptType = iota
	PromptSaveNew            // "Save as: " for unnamed buffer on first save
	PromptCommand            // ":" command input
	PromptSearch             // "/" search input
)

// StatusBar generates status bar text and handles prompt state.
type StatusBar struct {
	Prompt        PromptType
	PromptText    string // User input during prompts.
	StatusMessage string // Temporary message (e.g. error from command mode).
}

func NewStatusBar() *StatusBar {
	return &StatusBar{}
}

// FormatLeft returns the left-aligned portion of the status bar.
// bufferInfo is an optional "[2/3]" indicator when multiple buffers are
// open.
func (s *StatusBar) FormatLeft(filename string, dirty bool, bufferInfo string, spellErrorCount int) string {
	switch s.Prompt {
	case PromptSaveNew:
		return fmt.Sprintf(" Save as: %s", s.PromptText)
	case PromptCommand:
		return fmt.Sprintf(" :%s", s.PromptText)
	case PromptSearch:
		return fmt.Sprintf(" /%s", s.PromptText)
	}

	if s.StatusMessage != "" {
		return " " + s.StatusMessage
	}

	name := truncatePath(filename)

	// Dirty filenames get a bold orange background inside the reverse
	// video bar.
	if dirty {
		name = "\x1b[1;48;5;208m" + name + "\x1b[22;49m"
	}

	spellIndicator := ""
	if spellErrorCount > 0 {
		spellIndicator = " \x1b[48;5;9m●\x1b[49m"
	}

	if bufferInfo != "" {
		return fmt.Sprintf(" %s%s %s", name, spellIndicator, bufferInfo)
	}
	return fmt.Sprintf(" %s%s", name, spellIndicator)
}

// FormatRight returns the right-aligned portion of the status bar:
// search progress, spell errors, cursor position, wrap state, and mode.
func (s *StatusBar) FormatRight(mode Mode, line, col int, softWrap bool, searchActive bool, searchIdx, searchCount int) string {
	if s.Prompt != PromptNone {
		return ""
	}
	modeStr := ""
	switch mode {
	case ModeDefault:
		modeStr = "DEFAULT"
	case ModeEdit:
		modeStr = "EDIT"
	case ModeSelect:
		modeStr = "SELECT"
	}

	searchStr := ""
	if searchActive && searchCount > 0 {
		searchStr = fmt.Sprintf("%d/%d matches  ", searchIdx+1, searchCount)
	}

	wrapStr := "wrap"
	if !softWrap {
		wrapStr = "nowrap"
	}

	return fmt.Sprintf("%s%d:%d  %s  %s ", searchStr, line+1, col+1, wrapStr, modeStr)
}

// StartPrompt begins a prompt of the given type.
func (s *StatusBar) StartPrompt(pt PromptType) {
	s.Prompt = pt
	s.PromptText = ""
}

// ClearPrompt resets the prompt state.
func (s *StatusBar) ClearPrompt() {
	s.Prompt = PromptNone
	s.PromptText = ""
}

// SetMessage sets a temporary status message.
func (s *StatusBar) SetMessage(msg string) {
	s.StatusMessage = msg
}

// ClearMessage clears the temporary status message.
func (s *StatusBar) ClearMessage() {
	s.StatusMessage = ""
}

// truncatePath shortens a file path to parent/basename.
func truncatePath(filename string) string {
	if filename == "" {
		return "[unnamed]"
	}
	dir := filepath.Base(filepath.Dir(filename))
	base := filepath.Base(filename)
	if dir == "." || dir == "/" {
		return base
	}
	return dir + "/" + base
}

// HandlePromptKey processes a keypress during an active prompt.
// Returns (input string, done bool, cancelled bool).
func (s *StatusBar) HandlePromptKey(key Key) (string, bool, bool) {
	switch key.Type {
	case KeyEscape:
		s.ClearPrompt()
		return "", false, true
	case KeyEnter:
		text := s.PromptText
		s.ClearPrompt()
		return text, true, false
	case KeyBackspace:
		if len(s.PromptText) > 0 {
			runes := []rune(s.PromptText)
			s.PromptText = string(runes[:len(runes)-1])
		}
		return "", false, false
	case KeyRune:
		s.PromptText += string(key.Rune)
		return "", false, false
	}
	return "", false, false
}
