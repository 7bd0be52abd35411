package main

import (
	"os"
	"strings"
	"unicode"

	"github.com/sajari/fuzzy"
)

// defaultDictionaries are tried in order when the config names none.
var defaultDictionaries = []string{
	"/usr/share/dict/words",
	"/usr/dict/words",
}

// SpellError is a misspelled word location in logical coordinates. The
// renderer clips each error to the wrap segments it crosses, the same
// decomposition used for selections.
type SpellError struct {
	Line     int
	StartCol int // rune index
	EndCol   int // rune index, exclusive
	Word     string
}

// SpellChecker wraps a fuzzy model trained on a word list.
type SpellChecker struct {
	model *fuzzy.Model
}

// NewSpellChecker builds a checker from the word list at path, or the
// first system dictionary found when path is empty. Returns nil without
// error when no dictionary exists: spellcheck is a quiet no-op then.
func NewSpellChecker(path string) (*SpellChecker, error) {
	candidates := defaultDictionaries
	if path != "" {
		candidates = []string{path}
	}
	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		return newSpellCheckerFromWords(strings.Split(string(data), "\n")), nil
	}
	return nil, nil
}

// newSpellCheckerFromWords trains a model directly; the test seam.
func newSpellCheckerFromWords(words []string) *SpellChecker {
	model := fuzzy.NewModel()
	// Depth 2 trades a little accuracy for much faster training.
	model.SetDepth(2)
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word != "" {
			model.TrainWord(strings.ToLower(word))
		}
	}
	return &SpellChecker{model: model}
}

// CheckWord returns true if the word is spelled correctly.
func (sc *SpellChecker) CheckWord(word string) bool {
	if word == "" {
		return true
	}
	lower := strings.ToLower(word)
	// SpellCheck returns the input when it is in the dictionary, a
	// correction when it is close to one, and "" when unknown.
	return sc.model.SpellCheck(lower) == lower
}

// wordSpan is a word and its rune position in a line.
type wordSpan struct {
	word     string
	startCol int
	endCol   int
}

// extractWords tokenizes a line into words with rune positions. Words
// are runs of letters plus interior apostrophes.
func extractWords(line string) []wordSpan {
	var words []wordSpan
	runes := []rune(line)

	inWord := false
	var startCol int
	var current strings.Builder

	for i, r := range runes {
		isLetter := unicode.IsLetter(r)
		isApostrophe := r == '\''

		if isLetter || (isApostrophe && inWord) {
			if !inWord {
				startCol = i
				inWord = true
				current.Reset()
			}
			current.WriteRune(r)
		} else if inWord {
			words = append(words, wordSpan{current.String(), startCol, i})
			inWord = false
		}
	}
	if inWord {
		words = append(words, wordSpan{current.String(), startCol, len(runes)})
	}
	return words
}

// CheckLine checks one line and returns its spelling errors.
func (sc *SpellChecker) CheckLine(lineNum int, line string) []SpellError {
	var errs []SpellError
	for _, ws := range extractWords(line) {
		wordRunes := []rune(ws.word)
		// Very short words and all-caps acronyms are skipped; fuzzy
		// matching is useless on both.
		if len(wordRunes) <= 2 {
			continue
		}
		allUpper := true
		for _, r := range wordRunes {
			if unicode.IsLetter(r) && !unicode.IsUpper(r) {
				allUpper = false
				break
			}
		}
		if allUpper {
			continue
		}

		if !sc.CheckWord(ws.word) {
			errs = append(errs, SpellError{
				Line:     lineNum,
				StartCol: ws.startCol,
				EndCol:   ws.endCol,
				Word:     ws.word,
			})
		}
	}
	return errs
}
