package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/vflow"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cols  int
		mode  vflow.TextWrapMode
		lines []string
	}{
		{"empty", "", 10, vflow.WrapModeWord, nil},
		{"no wrap keeps paragraphs", "one two\nthree", 3, vflow.WrapNone, []string{"one two", "three"}},
		{"word", "aaaa bbbb cccc dddd", 11, vflow.WrapModeWord, []string{"aaaa bbbb", "cccc dddd"}},
		{"long word breaks", "abcdefghij", 4, vflow.WrapModeWord, []string{"abcd", "efgh", "ij"}},
		{"char", "abcdef", 4, vflow.WrapModeChar, []string{"abcd", "ef"}},
		{"wide runes", "日本語です", 4, vflow.WrapModeChar, []string{"日本", "語で", "す"}},
		{"auto picks char for CJK", "日本語です", 4, vflow.WrapModeAuto, []string{"日本", "語で", "す"}},
		{"auto picks word for latin", "ab cd ef", 5, vflow.WrapModeAuto, []string{"ab cd", "ef"}},
		{"blank paragraph", "a\n\nb", 5, vflow.WrapModeWord, []string{"a", "", "b"}},
		{"zero cols", "a b c", 0, vflow.WrapModeWord, []string{"a b c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.lines, vflow.WrapText(tt.text, tt.cols, tt.mode))
		})
	}
}

func TestTextWidthAndTruncate(t *testing.T) {
	assert.Equal(t, 5, vflow.TextWidth("hello"))
	assert.Equal(t, 6, vflow.TextWidth("日本語"))

	assert.Equal(t, "hello", vflow.TruncateText("hello", 5))
	assert.Equal(t, "hel..", vflow.TruncateText("hello world", 5))
	assert.Equal(t, "he", vflow.TruncateText("hello", 2))
	assert.Equal(t, "", vflow.TruncateText("hello", 0))
	assert.LessOrEqual(t, vflow.TextWidth(vflow.TruncateText("日本語です", 5)), 5)
}

func TestLabelSizes(t *testing.T) {
	l := vflow.NewLabel("hello\nworld!")
	assert.Equal(t, 6*8+2*4.0, l.PrefWidth(-1))
	assert.Equal(t, 2*20+2*4.0, l.PrefHeight(1000))

	l.Wrap = vflow.WrapModeWord
	l.Text = "aaaa bbbb cccc dddd"
	// (100 - 8) / 8 = 11 columns
	assert.Equal(t, []string{"aaaa bbbb", "cccc dddd"}, l.Lines(11))
	assert.Equal(t, 2*20+2*4.0, l.PrefHeight(100))

	l.Text = ""
	assert.Equal(t, []string{""}, l.Lines(10))
	assert.Equal(t, 20+2*4.0, l.PrefHeight(100))
}
