package vflow

import (
	"fmt"
	"math"
	"reflect"
)

// Node is a visual a cell can host as its graphic. Layout and painting of
// nodes belong to the host; the engine only asks for preferred sizes.
type Node interface {
	PrefWidth(height float64) float64
	PrefHeight(width float64) float64
}

// Painter is implemented by nodes that can draw themselves into a DrawList.
type Painter interface {
	Paint(dl *DrawList, bounds Rect)
}

// Liner is implemented by nodes that can render as terminal lines.
type Liner interface {
	Lines(cols int) []string
}

// Label is a block of text measured in columns and lines.
//
// CharWidth and LineHeight convert columns and lines to pixels; a terminal
// host uses 1 for both.
type Label struct {
	Text       string
	Color      uint32
	Wrap       TextWrapMode
	CharWidth  float64
	LineHeight float64
	Padding    float64
}

// NewLabel creates a single-line label with 8px glyphs on 20px lines.
func NewLabel(text string) *Label {
	return &Label{
		Text:       text,
		Color:      ColorWhite,
		CharWidth:  OptCharWidth.Default(),
		LineHeight: OptLineHeight.Default(),
		Padding:    OptPadding.Default(),
	}
}

func (l *Label) cols(width float64) int {
	if l.CharWidth <= 0 {
		return 0
	}
	return int(math.Floor((width - 2*l.Padding) / l.CharWidth))
}

// Lines returns the label text broken for cols columns.
func (l *Label) Lines(cols int) []string {
	lines := WrapText(l.Text, cols, l.Wrap)
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}

// PrefWidth returns the width of the widest line plus padding.
func (l *Label) PrefWidth(height float64) float64 {
	widest := 0
	for _, line := range WrapText(l.Text, 0, WrapNone) {
		widest = max(widest, TextWidth(line))
	}
	return float64(widest)*l.CharWidth + 2*l.Padding
}

// PrefHeight returns the height of the label wrapped to width.
func (l *Label) PrefHeight(width float64) float64 {
	n := len(l.Lines(l.cols(width)))
	return float64(n)*l.LineHeight + 2*l.Padding
}

// Paint draws each line with the bitmap font, clipped to bounds.
func (l *Label) Paint(dl *DrawList, bounds Rect) {
	glyph := float32(l.CharWidth)
	lh := float32(l.LineHeight)
	pad := float32(l.Padding)
	cols := l.cols(float64(bounds.W))

	dl.PushClipRect(bounds.X, bounds.Y, bounds.X+bounds.W, bounds.Y+bounds.H)
	for i, line := range l.Lines(cols) {
		y := bounds.Y + pad + float32(i)*lh + (lh-glyph)/2
		if y > bounds.Y+bounds.H {
			break
		}
		dl.AddText(bounds.X+pad, y, TruncateText(line, max(cols, 0)), l.Color, 1, glyph, glyph)
	}
	dl.PopClipRect()
}

// itemText converts an item to display text: a converter if given, then
// fmt.Stringer, then error, then %v.
func itemText(item any, convert func(any) string) string {
	if convert != nil {
		return convert(item)
	}
	if absent(item) {
		return ""
	}
	switch v := item.(type) {
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// absent reports whether item is nil or a typed nil (pointer, map, slice,
// func, chan or interface).
func absent(item any) bool {
	if item == nil {
		return true
	}
	switch v := reflect.ValueOf(item); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// labelSpec carries the label metrics a view hands to its default cells.
type labelSpec struct {
	charWidth  float64
	lineHeight float64
	padding    float64
	wrap       TextWrapMode
	color      uint32
	convert    func(any) string
}

func labelSpecFrom(o options) labelSpec {
	return labelSpec{
		charWidth:  GetOpt(o, OptCharWidth),
		lineHeight: GetOpt(o, OptLineHeight),
		padding:    GetOpt(o, OptPadding),
		wrap:       GetOpt(o, OptWrap),
		color:      GetOpt(o, OptStyle).TextColor,
		convert:    GetOpt(o, OptConverter),
	}
}

// label reuses l, or builds one, to show text.
func (s labelSpec) label(l *Label, text string) *Label {
	if l == nil {
		l = &Label{}
	}
	l.Text = text
	l.Color = s.color
	l.Wrap = s.wrap
	l.CharWidth = s.charWidth
	l.LineHeight = s.lineHeight
	l.Padding = s.padding
	return l
}

// defaultGraphic is the stock renderer: an item that already is a Node is
// shown as is, a nil item gets no graphic, anything else becomes a Label.
func (s labelSpec) defaultGraphic(item any, reuse *Label) (Node, *Label) {
	if absent(item) {
		return nil, reuse
	}
	switch v := item.(type) {
	case Node:
		return v, reuse
	default:
		l := s.label(reuse, itemText(v, s.convert))
		return l, l
	}
}

// emptyHeight is the length of a row without a graphic.
func (s labelSpec) emptyHeight() float64 {
	return s.lineHeight + 2*s.padding
}
