package vflow

import "math"

// SizeFunc returns the pixel length of the item at index along the scroll axis.
type SizeFunc func(index int) float64

// PositionMapper translates between a normalized scroll position, pixel
// offsets and item indices when items have variable sizes.
//
// The position is a single scalar in [0, 1]: 0 puts the first item flush with
// the start of the viewport, 1 puts the last item flush with its end. Pixel
// offsets are always derived from (position, itemCount, viewportSize, sizeOf)
// and never stored.
//
// The zero value is usable: it has no items, an empty viewport and reports a
// size of 0 for every item.
type PositionMapper struct {
	position     float64
	itemCount    int
	viewportSize float64
	sizeOf       SizeFunc
}

// NewPositionMapper creates a mapper that measures items with sizeOf.
func NewPositionMapper(sizeOf SizeFunc) *PositionMapper {
	return &PositionMapper{sizeOf: sizeOf}
}

// Position returns the current normalized position.
func (m *PositionMapper) Position() float64 { return m.position }

// ItemCount returns the number of items the mapper spans.
func (m *PositionMapper) ItemCount() int { return m.itemCount }

// SetItemCount sets the number of items. Negative counts are treated as 0.
func (m *PositionMapper) SetItemCount(n int) {
	if n < 0 {
		n = 0
	}
	m.itemCount = n
}

// ViewportSize returns the viewport length along the scroll axis.
func (m *PositionMapper) ViewportSize() float64 { return m.viewportSize }

// SetViewportSize sets the viewport length along the scroll axis.
func (m *PositionMapper) SetViewportSize(size float64) {
	m.viewportSize = nonNegative(size)
}

// SetSizeFunc replaces the size lookup.
func (m *PositionMapper) SetSizeFunc(sizeOf SizeFunc) { m.sizeOf = sizeOf }

// sizeAt looks up the size of an in-range item, treating bad values as 0.
func (m *PositionMapper) sizeAt(index int) float64 {
	if m.sizeOf == nil || index < 0 || index >= m.itemCount {
		return 0
	}
	return nonNegative(m.sizeOf(index))
}

// fractionalIndex splits position into the current cell and the fraction of
// it that lies before the position line. The fraction is 1 at position 1.
func (m *PositionMapper) fractionalIndex(position float64) (int, float64) {
	f := position * float64(m.itemCount)
	// index/count*count is not always exact in floating point
	ci := int(math.Floor(f + indexEpsilon*math.Max(1, f)))
	if ci > m.itemCount-1 {
		ci = m.itemCount - 1
	}
	if ci < 0 {
		ci = 0
	}
	fraction := f - float64(ci)
	if fraction < 0 {
		fraction = 0
	}
	return ci, fraction
}

const indexEpsilon = 1e-9

// ViewportOffset returns the offset, relative to the viewport start, by which
// the item under position must be shifted so it lines up proportionally with
// the viewport. The leading edge of item CurrentIndex() sits at
// -ViewportOffset(position).
func (m *PositionMapper) ViewportOffset(position float64) float64 {
	if m.itemCount == 0 {
		return 0
	}
	p := clamp64(position, 0, 1)
	ci, fraction := m.fractionalIndex(p)
	pixelOffset := 0.0
	if fraction > 0 {
		pixelOffset = m.sizeAt(ci) * fraction
	}
	return pixelOffset - m.viewportSize*p
}

// OffsetForCell returns the viewport-relative offset the index would have if it
// were placed at position 0.
func (m *PositionMapper) OffsetForCell(index int) float64 {
	if m.itemCount <= 0 {
		return 0
	}
	i := clampIndex(index, 0, m.itemCount)
	return -(m.viewportSize * float64(i) / float64(m.itemCount))
}

// AdjustPosition sets the position, clamped to [0, 1].
func (m *PositionMapper) AdjustPosition(target float64) {
	m.position = clamp64(target, 0, 1)
}

// AdjustPositionToIndex moves the position to the start of index.
func (m *PositionMapper) AdjustPositionToIndex(index int) {
	if m.itemCount <= 0 {
		m.position = 0
		return
	}
	i := clampIndex(index, 0, m.itemCount)
	m.position = float64(i) / float64(m.itemCount)
}

// cellSpan is how far the content travels, in pixels, while the position line
// crosses the item at index.
func (m *PositionMapper) cellSpan(index int) float64 {
	span := m.sizeAt(index) + (m.OffsetForCell(index+1) - m.OffsetForCell(index))
	return nonNegative(span)
}

// AdjustByPixelAmount scrolls the content by delta pixels (positive moves
// towards the end) and returns the number of pixels actually consumed.
//
// The walk is cell by cell from the current fractional index, so its cost is
// proportional to the number of cells crossed. When the walk runs off either
// end of the sequence the position stops at 0 or 1.
func (m *PositionMapper) AdjustByPixelAmount(delta float64) float64 {
	if delta == 0 || m.itemCount == 0 || math.IsNaN(delta) {
		return 0
	}
	n := float64(m.itemCount)
	ci, fraction := m.fractionalIndex(m.position)

	if delta > 0 {
		remaining, moved := delta, 0.0
		for ci < m.itemCount {
			span := m.cellSpan(ci)
			left := span * (1 - fraction)
			if span > 0 && remaining <= left {
				fraction += remaining / span
				m.position = clamp64((float64(ci)+fraction)/n, 0, 1)
				return delta
			}
			remaining -= left
			moved += left
			ci++
			fraction = 0
		}
		m.position = 1
		if math.IsInf(delta, 1) {
			return moved
		}
		return delta - remaining
	}

	remaining, moved := -delta, 0.0
	for ci >= 0 {
		span := m.cellSpan(ci)
		have := span * fraction
		if span > 0 && remaining <= have {
			fraction -= remaining / span
			m.position = clamp64((float64(ci)+fraction)/n, 0, 1)
			return delta
		}
		remaining -= have
		moved += have
		ci--
		fraction = 1
	}
	m.position = 0
	if math.IsInf(delta, -1) {
		return -moved
	}
	return delta + remaining
}

// AdjustByPixelChunk measures delta from the start of the sequence rather than
// from the current position.
func (m *PositionMapper) AdjustByPixelChunk(delta float64) float64 {
	m.position = 0
	return m.AdjustByPixelAmount(delta)
}

// CurrentIndex returns the index of the item under the position line.
func (m *PositionMapper) CurrentIndex() int {
	if m.itemCount <= 0 {
		return 0
	}
	ci, _ := m.fractionalIndex(m.position)
	return ci
}
