package vflow

// Scroller is the part of an engine a ScrollBar drives.
type Scroller interface {
	Position() float64
	SetPosition(p float64)
	CellCount() int
	Window() Window
	ViewportLength() float64
	ScrollPixels(delta float64) float64
}

// ScrollBar maps an engine's normalized position onto a track.
//
// The engine has no total content length, only a position in [0, 1] and the
// realized window, so the thumb size is estimated from the share of items
// realized. Dragging the thumb writes the position straight back; clicking
// the track pages by one viewport.
type ScrollBar struct {
	target   Scroller
	minThumb float64

	dragging       bool
	dragStart      float64
	dragStartValue float64
}

// NewScrollBar creates a scrollbar for target. Options: OptMinThumb.
func NewScrollBar(target Scroller, opts ...Option) *ScrollBar {
	return &ScrollBar{
		target:   target,
		minThumb: nonNegative(ApplyAndGet(opts, OptMinThumb)),
	}
}

// Value returns the scroll position in [0, 1].
func (sb *ScrollBar) Value() float64 { return sb.target.Position() }

// VisibleAmount estimates the visible share of the content in (0, 1].
func (sb *ScrollBar) VisibleAmount() float64 {
	n := sb.target.CellCount()
	if n == 0 {
		return 1
	}
	w := sb.target.Window().Len()
	if w == 0 {
		return 1
	}
	return clamp64(float64(w)/float64(n), 0, 1)
}

// Needed reports whether the content overflows, so the bar should be shown.
func (sb *ScrollBar) Needed() bool {
	return sb.VisibleAmount() < 1
}

// Thumb returns the thumb offset and length on a track of the given length.
func (sb *ScrollBar) Thumb(track float64) (pos, size float64) {
	if track <= 0 {
		return 0, 0
	}
	size = min(max(sb.minThumb, track*sb.VisibleAmount()), track)
	pos = sb.Value() * (track - size)
	return pos, size
}

// Press handles a click at trackPos: on the thumb it starts a drag, on the
// track before or after the thumb it pages. It reports whether a drag began.
func (sb *ScrollBar) Press(trackPos, track float64) bool {
	pos, size := sb.Thumb(track)
	switch {
	case trackPos < pos:
		sb.target.ScrollPixels(-sb.target.ViewportLength())
	case trackPos > pos+size:
		sb.target.ScrollPixels(sb.target.ViewportLength())
	default:
		sb.dragging = true
		sb.dragStart = trackPos
		sb.dragStartValue = sb.Value()
		return true
	}
	return false
}

// DragTo moves the thumb with the pointer during a drag.
func (sb *ScrollBar) DragTo(trackPos, track float64) {
	if !sb.dragging {
		return
	}
	_, size := sb.Thumb(track)
	free := track - size
	if free <= 0 {
		return
	}
	sb.target.SetPosition(sb.dragStartValue + (trackPos-sb.dragStart)/free)
}

// Release ends a drag.
func (sb *ScrollBar) Release() { sb.dragging = false }

// Dragging reports whether a thumb drag is in progress.
func (sb *ScrollBar) Dragging() bool { return sb.dragging }

// Paint draws a vertical bar in r.
func (sb *ScrollBar) Paint(dl *DrawList, r Rect, style Style) {
	dl.AddRect(r.X, r.Y, r.W, r.H, style.ScrollbarBgColor)
	pos, size := sb.Thumb(float64(r.H))
	dl.AddRect(r.X, r.Y+float32(pos), r.W, float32(size), style.ScrollbarGrabColor)
}

// Glyphs renders a vertical bar of rows terminal rows.
func (sb *ScrollBar) Glyphs(rows int) []string {
	out := make([]string, rows)
	pos, size := sb.Thumb(float64(rows))
	start := int(pos + 0.5)
	end := max(int(pos+size+0.5), start+1)
	for i := range out {
		if i >= start && i < end {
			out[i] = "█"
		} else {
			out[i] = "│"
		}
	}
	return out
}
