package vflow

// fitEpsilon absorbs float noise when testing whether a cell is fully inside
// the viewport.
const fitEpsilon = 1e-6

func (e *Engine[C]) fullyVisible(s slot[C]) bool {
	return s.offset >= -fitEpsilon && s.offset+s.length <= e.viewportLength+fitEpsilon
}

func (e *Engine[C]) partlyVisible(s slot[C]) bool {
	return s.offset+s.length > 0 && s.offset < e.viewportLength
}

// Show brings index fully into view with the smallest move: an item before the
// viewport is aligned to its start, an item after it to its end. An item
// already fully visible does not move the content. Indices are clamped.
func (e *Engine[C]) Show(index int) {
	e.layoutIfNeeded()
	if e.cellCount == 0 {
		return
	}
	index = clampIndex(index, 0, e.cellCount-1)

	alignStart := true
	if s, ok := e.slotFor(index); ok {
		if e.fullyVisible(s) {
			return
		}
		alignStart = s.offset < 0
	} else if !e.window.Empty() && index > e.window.Last {
		alignStart = false
	}

	if alignStart {
		e.alignStart(index)
	} else {
		e.alignEnd(index)
	}
	e.markDirty(StateRecomputing)
}

// ScrollTo places index at the start of the viewport, as far as the content
// allows.
func (e *Engine[C]) ScrollTo(index int) {
	e.layoutIfNeeded()
	if e.cellCount == 0 {
		return
	}
	e.alignStart(clampIndex(index, 0, e.cellCount-1))
	e.markDirty(StateRecomputing)
}

// ScrollToOffset scrolls to an absolute pixel offset from the start of the
// content.
func (e *Engine[C]) ScrollToOffset(pixels float64) {
	if e.cellCount == 0 {
		return
	}
	e.mapper.AdjustByPixelChunk(pixels)
	e.markDirty(StateRecomputing)
}

// ScrollPixels scrolls by delta pixels (positive towards the end) and returns
// the pixels actually consumed. Content that fits the viewport does not
// scroll.
func (e *Engine[C]) ScrollPixels(delta float64) float64 {
	e.layoutIfNeeded()
	if e.cellCount == 0 || delta == 0 || !e.overflows() {
		return 0
	}
	consumed := e.mapper.AdjustByPixelAmount(delta)
	if consumed != 0 {
		e.markDirty(StateRecomputing)
	}
	return consumed
}

// overflows reports whether the content is longer than the viewport.
func (e *Engine[C]) overflows() bool {
	if len(e.slots) == 0 {
		return e.cellCount > 0
	}
	if e.window.First > 0 || e.window.Last < e.cellCount-1 {
		return true
	}
	first, last := e.slots[0], e.slots[len(e.slots)-1]
	return first.offset < -fitEpsilon || last.offset+last.length > e.viewportLength+fitEpsilon
}

// ShowAsFirst scrolls so that cell's leading edge meets the viewport start.
func (e *Engine[C]) ShowAsFirst(cell C) {
	e.layoutIfNeeded()
	s, ok := e.slotOf(cell)
	if !ok {
		if idx := cell.Index(); idx >= 0 {
			e.ScrollTo(idx)
		}
		return
	}
	e.mapper.AdjustByPixelAmount(s.offset)
	e.markDirty(StateRecomputing)
}

// ShowAsLast scrolls so that cell's trailing edge meets the viewport end.
func (e *Engine[C]) ShowAsLast(cell C) {
	e.layoutIfNeeded()
	s, ok := e.slotOf(cell)
	if !ok {
		if idx := cell.Index(); idx >= 0 && idx < e.cellCount {
			e.alignEnd(idx)
			e.markDirty(StateRecomputing)
		}
		return
	}
	e.mapper.AdjustByPixelAmount(s.offset + s.length - e.viewportLength)
	e.markDirty(StateRecomputing)
}

// ScrollPageDown pages towards the end relative to anchor, the currently
// focused index, and returns the new anchor.
//
// When the last fully visible item is not the anchor it becomes the new
// anchor and nothing scrolls, even if the anchor lies beyond the viewport.
// Otherwise the anchor is moved to the viewport start and the new last
// visible item is returned; that result is past the anchor unless the anchor
// is the last item. Returns -1 when empty.
func (e *Engine[C]) ScrollPageDown(anchor int) int {
	e.layoutIfNeeded()
	n := e.cellCount
	if n == 0 {
		return -1
	}
	anchor = clampIndex(anchor, 0, n-1)

	if last, ok := e.lastSlot(); ok && last.index != anchor {
		return last.index
	}

	if s, ok := e.slotFor(anchor); ok && s.ok {
		e.ShowAsFirst(s.cell)
	} else {
		e.ScrollTo(anchor)
	}
	e.Layout()

	next := anchor
	if last, ok := e.lastSlot(); ok {
		next = last.index
	}
	if next <= anchor {
		next = min(anchor+1, n-1)
		e.Show(next)
		e.Layout()
	}
	return next
}

// ScrollPageUp is the mirror of ScrollPageDown towards the start.
func (e *Engine[C]) ScrollPageUp(anchor int) int {
	e.layoutIfNeeded()
	n := e.cellCount
	if n == 0 {
		return -1
	}
	anchor = clampIndex(anchor, 0, n-1)

	if first, ok := e.firstSlot(); ok && first.index != anchor {
		return first.index
	}

	if s, ok := e.slotFor(anchor); ok && s.ok {
		e.ShowAsLast(s.cell)
	} else {
		e.alignEnd(anchor)
		e.markDirty(StateRecomputing)
	}
	e.Layout()

	next := anchor
	if first, ok := e.firstSlot(); ok {
		next = first.index
	}
	if next >= anchor {
		next = max(anchor-1, 0)
		e.Show(next)
		e.Layout()
	}
	return next
}

// MoveToFirst scrolls to the very start.
func (e *Engine[C]) MoveToFirst() {
	if e.cellCount == 0 {
		return
	}
	e.Show(0)
	e.mapper.AdjustPosition(0)
	e.markDirty(StateRecomputing)
}

// MoveToLast scrolls to the very end.
func (e *Engine[C]) MoveToLast() {
	if e.cellCount == 0 {
		return
	}
	e.Show(e.cellCount - 1)
	e.mapper.AdjustPosition(1)
	e.markDirty(StateRecomputing)
}

// =============================================================================
// Visible cell queries
// =============================================================================

// FirstVisibleCell returns the first realized cell at least partly in view.
func (e *Engine[C]) FirstVisibleCell() (C, bool) {
	e.layoutIfNeeded()
	for _, s := range e.slots {
		if s.ok && e.partlyVisible(s) {
			return s.cell, true
		}
	}
	var zero C
	return zero, false
}

// LastVisibleCell returns the last realized cell at least partly in view.
func (e *Engine[C]) LastVisibleCell() (C, bool) {
	e.layoutIfNeeded()
	for i := len(e.slots) - 1; i >= 0; i-- {
		if s := e.slots[i]; s.ok && e.partlyVisible(s) {
			return s.cell, true
		}
	}
	var zero C
	return zero, false
}

// FirstVisibleCellWithinViewport returns the first cell entirely in view.
func (e *Engine[C]) FirstVisibleCellWithinViewport() (C, bool) {
	e.layoutIfNeeded()
	for _, s := range e.slots {
		if s.ok && e.fullyVisible(s) {
			return s.cell, true
		}
	}
	var zero C
	return zero, false
}

// LastVisibleCellWithinViewport returns the last cell entirely in view.
func (e *Engine[C]) LastVisibleCellWithinViewport() (C, bool) {
	e.layoutIfNeeded()
	for i := len(e.slots) - 1; i >= 0; i-- {
		if s := e.slots[i]; s.ok && e.fullyVisible(s) {
			return s.cell, true
		}
	}
	var zero C
	return zero, false
}

// lastSlot is the last fully visible slot, falling back to the last partly
// visible one. Slots whose cell failed to build still count.
func (e *Engine[C]) lastSlot() (slot[C], bool) {
	for i := len(e.slots) - 1; i >= 0; i-- {
		if e.fullyVisible(e.slots[i]) {
			return e.slots[i], true
		}
	}
	for i := len(e.slots) - 1; i >= 0; i-- {
		if e.partlyVisible(e.slots[i]) {
			return e.slots[i], true
		}
	}
	return slot[C]{}, false
}

func (e *Engine[C]) firstSlot() (slot[C], bool) {
	for _, s := range e.slots {
		if e.fullyVisible(s) {
			return s, true
		}
	}
	for _, s := range e.slots {
		if e.partlyVisible(s) {
			return s, true
		}
	}
	return slot[C]{}, false
}

func (e *Engine[C]) slotOf(cell C) (slot[C], bool) {
	for _, s := range e.slots {
		if s.ok && sameCell(s.cell, cell) {
			return s, true
		}
	}
	return slot[C]{}, false
}

// alignStart positions the mapper so index starts at the viewport start.
func (e *Engine[C]) alignStart(index int) {
	e.mapper.AdjustPositionToIndex(index)
	e.mapper.AdjustByPixelAmount(-e.mapper.OffsetForCell(index))
}

// alignEnd positions the mapper so index ends at the viewport end.
func (e *Engine[C]) alignEnd(index int) {
	e.mapper.AdjustPositionToIndex(index)
	e.mapper.AdjustByPixelAmount(-e.mapper.OffsetForCell(index) - (e.viewportLength - e.sizeOf(index)))
}
