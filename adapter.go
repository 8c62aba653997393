package vflow

// ContainerAdapter is what a virtualized container (list, tree, table rows)
// supplies to drive an Engine.
//
// ItemCount is read on every change notification; CreateCell is called
// lazily whenever the pool has no free cell to recycle. A CreateCell failure
// leaves that one slot empty for the current layout pass.
type ContainerAdapter[C Cell] interface {
	ItemCount() int
	CreateCell() (C, error)
}

// ItemSizer is implemented by adapters that know item sizes along the scroll
// axis without realizing a cell. Negative sizes are treated as 0.
type ItemSizer interface {
	SizeOf(index int) float64
}

// LayoutObserver is implemented by adapters that want to know when a layout
// pass has placed the realized cells.
type LayoutObserver interface {
	CellsLaidOut(window Window)
}

// ChangeReason tells the engine why its container changed.
type ChangeReason int

const (
	// ItemsChanged means the backing collection was mutated. Indices may have
	// shifted; the engine re-reads the item count.
	ItemsChanged ChangeReason = iota
	// ViewportResized means the viewport changed size.
	ViewportResized
	// CellFactoryChanged means cells must be rebuilt from scratch.
	CellFactoryChanged
)

func (r ChangeReason) String() string {
	switch r {
	case ItemsChanged:
		return "items-changed"
	case ViewportResized:
		return "viewport-resized"
	case CellFactoryChanged:
		return "cell-factory-changed"
	default:
		return "unknown"
	}
}
