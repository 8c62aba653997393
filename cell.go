package vflow

// Cell is a recyclable visual handle bound to at most one item index.
//
// The engine binds a cell with UpdateIndex(i), unbinds it with
// UpdateIndex(-1) and places it with Resize and Relocate. PrefWidth and
// PrefHeight are only consulted when the container supplies no item sizes.
// Implementations usually embed CellBase and override UpdateIndex to refresh
// their content for the new item.
type Cell interface {
	// Index returns the bound item index, or -1 when the cell is empty.
	Index() int
	// UpdateIndex binds the cell to index (or unbinds it with -1) and
	// reconfigures its content.
	UpdateIndex(index int)

	Visible() bool
	SetVisible(visible bool)

	// Resize and Relocate are host primitives with synchronous effect.
	Resize(width, height float64)
	Relocate(x, y float64)

	PrefWidth(height float64) float64
	PrefHeight(width float64) float64
}

// Disposable is implemented by cells that hold resources to release when the
// pool destroys them.
type Disposable interface {
	Dispose()
}

// CellBase implements the bookkeeping half of Cell.
// The zero value is an unbound, invisible cell.
type CellBase struct {
	slot    int // index+1, 0 when unbound
	visible bool
	bounds  [4]float64 // x, y, w, h
}

// Index returns the bound item index, or -1 when unbound.
func (c *CellBase) Index() int { return c.slot - 1 }

// UpdateIndex records the bound index.
func (c *CellBase) UpdateIndex(index int) {
	if index < 0 {
		c.slot = 0
		return
	}
	c.slot = index + 1
}

// Empty reports whether the cell is unbound.
func (c *CellBase) Empty() bool { return c.slot == 0 }

// Visible reports whether the cell is shown.
func (c *CellBase) Visible() bool { return c.visible }

// SetVisible shows or hides the cell.
func (c *CellBase) SetVisible(visible bool) { c.visible = visible }

// Resize records the cell size.
func (c *CellBase) Resize(width, height float64) {
	c.bounds[2] = width
	c.bounds[3] = height
}

// Relocate records the cell position relative to the viewport.
func (c *CellBase) Relocate(x, y float64) {
	c.bounds[0] = x
	c.bounds[1] = y
}

// Bounds returns the last size and position given by the engine.
func (c *CellBase) Bounds() Rect {
	return Rect{
		X: float32(c.bounds[0]),
		Y: float32(c.bounds[1]),
		W: float32(c.bounds[2]),
		H: float32(c.bounds[3]),
	}
}
