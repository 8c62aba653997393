package vflow

import "fmt"

// CellFactory creates a new, unbound cell.
type CellFactory[C Cell] func() (C, error)

// CellPool owns the cells realized by one engine and recycles them by index.
//
// Free cells are kept on a stack: the most recently released cell is the
// first one handed out again, so a cell scrolled out of view is rebound to the
// index scrolling in rather than a new one being built. Cells are destroyed
// only by Prune, RecreateAll and SetFactory.
//
// A pool is not safe for concurrent use; it belongs to the engine's UI thread.
type CellPool[C Cell] struct {
	factory CellFactory[C]
	cells   []C       // every managed cell
	free    []C       // unbound cells, most recently released last
	bound   map[int]C // index -> cell
	created int
}

// NewCellPool creates a pool that builds cells with factory.
func NewCellPool[C Cell](factory CellFactory[C]) *CellPool[C] {
	return &CellPool[C]{
		factory: factory,
		bound:   make(map[int]C),
	}
}

// sameCell reports whether a and b are the same cell handle.
func sameCell[C Cell](a, b C) bool {
	return any(a) == any(b)
}

// Acquire returns a cell bound to index.
//
// A cell already bound to index is returned as is; otherwise the most
// recently released cell is rebound, and only when none is free is a new cell
// created. UpdateIndex is called exactly once per Acquire. Factory errors and
// panics come back wrapped in ErrCellFactory and leave the pool unchanged.
func (p *CellPool[C]) Acquire(index int) (C, error) {
	if c, ok := p.bound[index]; ok {
		c.UpdateIndex(index)
		return c, nil
	}

	var c C
	if n := len(p.free); n > 0 {
		c = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		created, err := p.create()
		if err != nil {
			return c, err
		}
		c = created
		p.cells = append(p.cells, c)
		p.created++
	}

	p.bound[index] = c
	c.UpdateIndex(index)
	return c, nil
}

// Reserve builds cells until at least n are free.
func (p *CellPool[C]) Reserve(n int) error {
	for len(p.free) < n {
		c, err := p.create()
		if err != nil {
			return err
		}
		c.SetVisible(false)
		p.cells = append(p.cells, c)
		p.free = append(p.free, c)
		p.created++
	}
	return nil
}

// create calls the factory, turning a panic into an error.
func (p *CellPool[C]) create() (c C, err error) {
	if p.factory == nil {
		return c, fmt.Errorf("%w: no factory", ErrCellFactory)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrCellFactory, r)
		}
	}()
	c, err = p.factory()
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrCellFactory, err)
	}
	return c, nil
}

// Release unbinds cell, hides it and returns it to the free stack.
// Releasing a cell the pool does not hold bound is a no-op.
func (p *CellPool[C]) Release(cell C) {
	index := cell.Index()
	b, ok := p.bound[index]
	if !ok || !sameCell(b, cell) {
		return
	}
	delete(p.bound, index)
	cell.UpdateIndex(-1)
	cell.SetVisible(false)
	p.free = append(p.free, cell)
}

// ReconfigureAll re-runs UpdateIndex on every bound cell without rebinding.
// Use it when item content may have changed but the count did not.
func (p *CellPool[C]) ReconfigureAll() {
	for index, c := range p.bound {
		c.UpdateIndex(index)
	}
}

// RecreateAll destroys every managed cell and empties the pool.
func (p *CellPool[C]) RecreateAll() {
	for _, c := range p.cells {
		destroyCell(c)
	}
	p.cells = nil
	p.free = nil
	p.bound = make(map[int]C)
}

// SetFactory swaps the cell factory. Cells built by the old factory are
// destroyed.
func (p *CellPool[C]) SetFactory(factory CellFactory[C]) {
	p.factory = factory
	p.RecreateAll()
}

// Prune destroys free cells until at most keepFree remain. The oldest free
// cells go first.
func (p *CellPool[C]) Prune(keepFree int) int {
	if keepFree < 0 {
		keepFree = 0
	}
	excess := len(p.free) - keepFree
	if excess <= 0 {
		return 0
	}
	doomed := p.free[:excess]
	for _, c := range doomed {
		destroyCell(c)
		for i, m := range p.cells {
			if sameCell(m, c) {
				p.cells = append(p.cells[:i], p.cells[i+1:]...)
				break
			}
		}
	}
	p.free = append(p.free[:0], p.free[excess:]...)
	return excess
}

func destroyCell[C Cell](c C) {
	c.SetVisible(false)
	if d, ok := any(c).(Disposable); ok {
		d.Dispose()
	}
}

// Bound returns the cell bound to index, if any.
func (p *CellPool[C]) Bound(index int) (C, bool) {
	c, ok := p.bound[index]
	return c, ok
}

// Each calls fn for every managed cell, bound or free.
func (p *CellPool[C]) Each(fn func(C)) {
	for _, c := range p.cells {
		fn(c)
	}
}

// Len returns the number of managed cells.
func (p *CellPool[C]) Len() int { return len(p.cells) }

// FreeLen returns the number of unbound cells waiting for reuse.
func (p *CellPool[C]) FreeLen() int { return len(p.free) }

// BoundLen returns the number of cells currently bound to an index.
func (p *CellPool[C]) BoundLen() int { return len(p.bound) }

// Created returns how many cells the factory has built over the pool's life.
func (p *CellPool[C]) Created() int { return p.created }
