package main

import "testing"

func testChecker() *SpellChecker {
	return newSpellCheckerFromWords([]string{
		"the", "quick", "brown", "fox", "jumps", "over", "lazy", "dog",
		"hello", "world", "editor",
	})
}

func TestCheckWordKnown(t *testing.T) {
	sc := testChecker()
	if !sc.CheckWord("hello") {
		t.Error("known word flagged")
	}
	if !sc.CheckWord("Hello") {
		t.Error("capitalised known word flagged")
	}
}

func TestCheckWordUnknown(t *testing.T) {
	sc := testChecker()
	if sc.CheckWord("zzqqxx") {
		t.Error("gibberish accepted")
	}
}

func TestCheckLineFindsPositions(t *testing.T) {
	sc := testChecker()
	errs := sc.CheckLine(3, "the quikc brown fox")
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %v", errs)
	}
	e := errs[0]
	if e.Line != 3 || e.Word != "quikc" {
		t.Errorf("error: %+v", e)
	}
	if e.StartCol != 4 || e.EndCol != 9 {
		t.Errorf("positions: %d-%d", e.StartCol, e.EndCol)
	}
}

func TestCheckLineSkipsShortAndAcronyms(t *testing.T) {
	sc := testChecker()
	if errs := sc.CheckLine(0, "an ok xy"); len(errs) != 0 {
		t.Errorf("short words should be skipped: %v", errs)
	}
	if errs := sc.CheckLine(0, "the HTTP dog"); len(errs) != 0 {
		t.Errorf("acronyms should be skipped: %v", errs)
	}
}

func TestExtractWordsApostrophe(t *testing.T) {
	words := extractWords("don't stop")
	if len(words) != 2 {
		t.Fatalf("words: %v", words)
	}
	if words[0].word != "don't" || words[0].startCol != 0 || words[0].endCol != 5 {
		t.Errorf("first word: %+v", words[0])
	}
	if words[1].word != "stop" || words[1].startCol != 6 {
		t.Errorf("second word: %+v", words[1])
	}
}

func TestExtractWordsUnicodePositions(t *testing.T) {
	words := extractWords("héllo world")
	if len(words) != 2 {
		t.Fatalf("words: %v", words)
	}
	// Rune positions, not byte positions.
	if words[1].startCol != 6 {
		t.Errorf("second word start: %d", words[1].startCol)
	}
}

func TestNewSpellCheckerMissingDictionary(t *testing.T) {
	sc, err := NewSpellChecker("/nonexistent/word/list")
	if err != nil {
		t.Fatalf("missing dictionary should not error: %v", err)
	}
	if sc != nil {
		t.Error("missing dictionary should disable spellcheck")
	}
}
