package vflow

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

// Text is measured in columns: one column per narrow rune, two per wide (CJK)
// rune, as a terminal lays it out. Pixel hosts multiply by their glyph width.

// TextWrapMode specifies how text should be wrapped.
type TextWrapMode int

const (
	// WrapNone keeps each paragraph on one line.
	WrapNone TextWrapMode = iota
	// WrapModeWord wraps at word boundaries (default for Latin text).
	WrapModeWord
	// WrapModeChar wraps at character boundaries (for CJK or dense text).
	WrapModeChar
	// WrapModeAuto detects text type and chooses appropriate mode.
	WrapModeAuto
)

// TextWidth returns the display width of s in columns.
func TextWidth(s string) int {
	return runewidth.StringWidth(s)
}

// WrapText wraps text to fit within maxCols columns using mode. Explicit line
// breaks always start a new line. An empty string yields no lines.
func WrapText(text string, maxCols int, mode TextWrapMode) []string {
	if text == "" {
		return nil
	}
	paragraphs := strings.Split(text, "\n")
	if mode == WrapNone || maxCols <= 0 {
		return paragraphs
	}

	var lines []string
	for _, p := range paragraphs {
		m := mode
		if m == WrapModeAuto {
			if containsCJK(p) {
				m = WrapModeChar
			} else {
				m = WrapModeWord
			}
		}
		var wrapped []string
		if m == WrapModeChar {
			wrapped = wrapByChar(p, maxCols)
		} else {
			wrapped = wrapByWord(p, maxCols)
		}
		if len(wrapped) == 0 {
			wrapped = []string{""}
		}
		lines = append(lines, wrapped...)
	}
	return lines
}

// wrapByWord wraps text at word boundaries. Words longer than a line are
// broken by character.
func wrapByWord(text string, maxCols int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	var current string

	for _, word := range words {
		if TextWidth(word) > maxCols {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			parts := wrapByChar(word, maxCols)
			lines = append(lines, parts[:len(parts)-1]...)
			current = parts[len(parts)-1]
			continue
		}

		test := current
		if test != "" {
			test += " "
		}
		test += word

		if TextWidth(test) > maxCols && current != "" {
			lines = append(lines, current)
			current = word
		} else {
			current = test
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// wrapByChar wraps text at character boundaries.
func wrapByChar(text string, maxCols int) []string {
	if text == "" {
		return nil
	}

	var lines []string
	var current strings.Builder
	width := 0

	for _, r := range text {
		rw := runewidth.RuneWidth(r)
		if width+rw > maxCols && width > 0 {
			lines = append(lines, current.String())
			current.Reset()
			width = 0
		}
		current.WriteRune(r)
		width += rw
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

// containsCJK returns true if the string contains any CJK characters.
func containsCJK(text string) bool {
	for _, r := range text {
		if isCJKRune(r) {
			return true
		}
	}
	return false
}

// isCJKRune returns true if the rune is a CJK character.
func isCJKRune(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.In(r, unicode.Bopomofo) ||
		unicode.In(r, unicode.Yi)
}

// TruncateText cuts text to maxCols columns, ending with ".." when cut.
func TruncateText(text string, maxCols int) string {
	if maxCols <= 0 {
		return ""
	}
	if TextWidth(text) <= maxCols {
		return text
	}
	if maxCols <= 2 {
		return runewidth.Truncate(text, maxCols, "")
	}
	return runewidth.Truncate(text, maxCols, "..")
}
