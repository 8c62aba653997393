package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/vflow"
)

func TestScrollBarThumb(t *testing.T) {
	e, _ := newTestEngine(100, 20, 100)
	sb := vflow.NewScrollBar(e)

	assert.True(t, sb.Needed())
	assert.InDelta(t, 0.05, sb.VisibleAmount(), 1e-9)

	pos, size := sb.Thumb(100)
	assert.Equal(t, 0.0, pos)
	assert.Equal(t, 20.0, size, "minimum thumb")

	pos, size = sb.Thumb(1000)
	assert.Equal(t, 0.0, pos)
	assert.InDelta(t, 50, size, 1e-9)

	e.MoveToLast()
	e.Layout()
	pos, size = sb.Thumb(1000)
	assert.InDelta(t, 950, pos, 1e-9)
	assert.InDelta(t, 50, size, 1e-9)

	pos, size = sb.Thumb(0)
	assert.Equal(t, 0.0, pos+size)
}

func TestScrollBarNotNeeded(t *testing.T) {
	e, _ := newTestEngine(3, 20, 100)
	assert.False(t, vflow.NewScrollBar(e).Needed())

	empty, _ := newTestEngine(0, 20, 100)
	assert.Equal(t, 1.0, vflow.NewScrollBar(empty).VisibleAmount())
}

func TestScrollBarTrackPaging(t *testing.T) {
	e, _ := newTestEngine(100, 20, 100)
	sb := vflow.NewScrollBar(e)

	assert.False(t, sb.Press(60, 100))
	e.Layout()
	assert.Equal(t, 5, firstFull(t, e))

	assert.False(t, sb.Press(0, 100))
	e.Layout()
	assert.Equal(t, 0, firstFull(t, e))
	assert.False(t, sb.Dragging())
}

func TestScrollBarDrag(t *testing.T) {
	e, _ := newTestEngine(100, 20, 100)
	sb := vflow.NewScrollBar(e)

	assert.True(t, sb.Press(10, 100))
	assert.True(t, sb.Dragging())

	sb.DragTo(50, 100)
	assert.InDelta(t, 0.5, sb.Value(), 1e-9)
	sb.DragTo(500, 100)
	assert.Equal(t, 1.0, sb.Value())

	sb.Release()
	sb.DragTo(10, 100)
	assert.Equal(t, 1.0, sb.Value())
}

func TestScrollBarGlyphs(t *testing.T) {
	e, _ := newTestEngine(100, 20, 100)
	sb := vflow.NewScrollBar(e, vflow.WithOpt(vflow.OptMinThumb, 1.0))

	assert.Equal(t, []string{"█", "│", "│", "│"}, sb.Glyphs(10)[:4])

	e.MoveToLast()
	e.Layout()
	g := sb.Glyphs(10)
	assert.Equal(t, "█", g[9])
	assert.Equal(t, "│", g[0])
}

func TestScrollBarPaint(t *testing.T) {
	e, _ := newTestEngine(100, 20, 100)
	sb := vflow.NewScrollBar(e)

	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)
	sb.Paint(dl, vflow.Rect{X: 190, Y: 0, W: 10, H: 100}, vflow.DefaultStyle())
	assert.Len(t, dl.VtxBuffer, 8)
}
