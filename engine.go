package vflow

import (
	"fmt"
	"log/slog"
)

// Orientation is the scroll axis of an engine.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// State is the engine's layout state.
type State int

const (
	// StateClean means the realized cells match the current position.
	StateClean State = iota
	// StateItemCountDirty means the container changed since the last pass.
	StateItemCountDirty
	// StateRecomputing means the position or viewport changed since the last pass.
	StateRecomputing
)

func (s State) String() string {
	switch s {
	case StateClean:
		return "clean"
	case StateItemCountDirty:
		return "item-count-dirty"
	case StateRecomputing:
		return "recomputing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// maxWindowCells bounds one window when items report a size of 0.
const maxWindowCells = 4096

// slot is one position in the realized window. A slot whose cell could not be
// created keeps its space but has ok == false.
type slot[C Cell] struct {
	cell   C
	ok     bool
	index  int
	offset float64 // leading edge, relative to the viewport start
	length float64
}

// Engine virtualizes a sequence of items onto a small set of recycled cells.
//
// The engine owns the scroll position, the cell pool and the ordered list of
// realized cells. Containers drive it through OnContainerChanged and the
// navigation methods; the host drives it by calling Layout, either directly
// once per frame or through a Scheduler passed with WithScheduler.
//
// Engine is not safe for concurrent use.
type Engine[C Cell] struct {
	adapter  ContainerAdapter[C]
	sizer    ItemSizer
	observer LayoutObserver

	mapper *PositionMapper
	pool   *CellPool[C]

	orientation   Orientation
	fixedCellSize float64
	scheduler     LayoutRequester
	logger        *slog.Logger

	cellCount     int
	lastCellCount int

	viewportLength  float64
	viewportBreadth float64

	state            State
	needsRecreate    bool
	needsReconfigure bool
	shrunk           bool
	inLayout         bool

	slots  []slot[C]
	window Window

	scratch      C
	hasScratch   bool
	scratchError bool
}

// NewEngine creates an engine for adapter.
//
// Options: OptOrientation, OptFixedCellSize, OptScheduler, OptLogger.
// The only construction error is ErrNilAdapter.
func NewEngine[C Cell](adapter ContainerAdapter[C], opts ...Option) (*Engine[C], error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	o := applyOptions(opts)

	e := &Engine[C]{
		adapter:       adapter,
		orientation:   GetOpt(o, OptOrientation),
		fixedCellSize: nonNegative(GetOpt(o, OptFixedCellSize)),
		scheduler:     GetOpt(o, OptScheduler),
		logger:        GetOpt(o, OptLogger),
		window:        emptyWindow,
	}
	if e.logger == nil {
		e.logger = flowLogger
	}
	if s, ok := adapter.(ItemSizer); ok {
		e.sizer = s
	}
	if obs, ok := adapter.(LayoutObserver); ok {
		e.observer = obs
	}
	e.mapper = NewPositionMapper(e.sizeOf)
	e.pool = NewCellPool(adapter.CreateCell)

	e.cellCount = nonNegativeInt(adapter.ItemCount())
	e.lastCellCount = e.cellCount
	e.mapper.SetItemCount(e.cellCount)
	e.markDirty(StateRecomputing)
	return e, nil
}

// MustEngine is like NewEngine but panics on error.
func MustEngine[C Cell](adapter ContainerAdapter[C], opts ...Option) *Engine[C] {
	e, err := NewEngine(adapter, opts...)
	if err != nil {
		panic(err)
	}
	return e
}

// State returns the current layout state.
func (e *Engine[C]) State() State { return e.state }

// Orientation returns the scroll axis.
func (e *Engine[C]) Orientation() Orientation { return e.orientation }

// CellCount returns the item count the engine lays out.
func (e *Engine[C]) CellCount() int { return e.cellCount }

// Position returns the normalized scroll position.
func (e *Engine[C]) Position() float64 { return e.mapper.Position() }

// CurrentIndex returns the index under the position line.
func (e *Engine[C]) CurrentIndex() int { return e.mapper.CurrentIndex() }

// ViewportLength returns the viewport size along the scroll axis.
func (e *Engine[C]) ViewportLength() float64 { return e.viewportLength }

// ViewportBreadth returns the viewport size across the scroll axis.
func (e *Engine[C]) ViewportBreadth() float64 { return e.viewportBreadth }

// Window returns the indices realized by the last layout pass.
func (e *Engine[C]) Window() Window { return e.window }

// Pool exposes the cell pool, mostly for inspection.
func (e *Engine[C]) Pool() *CellPool[C] { return e.pool }

// SizeOf returns the size of item index along the scroll axis.
func (e *Engine[C]) SizeOf(index int) float64 {
	if index < 0 || index >= e.cellCount {
		return 0
	}
	return e.sizeOf(index)
}

// =============================================================================
// Notifications
// =============================================================================

// OnContainerChanged is the single entry point for container notifications.
// Treating any change as "recompute everything" is always correct.
func (e *Engine[C]) OnContainerChanged(reason ChangeReason) {
	e.logger.Debug("container changed", "reason", reason, "state", e.state)
	switch reason {
	case ItemsChanged:
		e.needsReconfigure = true
		e.SetCellCount(e.adapter.ItemCount())
		e.markDirty(StateItemCountDirty)
	case ViewportResized:
		e.markDirty(StateRecomputing)
	case CellFactoryChanged:
		e.needsRecreate = true
		e.markDirty(StateItemCountDirty)
	default:
		e.needsRecreate = true
		e.markDirty(StateItemCountDirty)
	}
}

// SetCellCount sets the number of items. Negative counts are treated as 0.
func (e *Engine[C]) SetCellCount(n int) {
	n = nonNegativeInt(n)
	if n == e.cellCount {
		return
	}
	e.cellCount = n
	e.mapper.SetItemCount(n)
	e.markDirty(StateItemCountDirty)
}

// SetViewportSize sets the viewport length (along the scroll axis) and
// breadth (across it).
func (e *Engine[C]) SetViewportSize(length, breadth float64) {
	length = nonNegative(length)
	breadth = nonNegative(breadth)
	if length == e.viewportLength && breadth == e.viewportBreadth {
		return
	}
	if length < e.viewportLength {
		e.shrunk = true
	}
	e.viewportLength = length
	e.viewportBreadth = breadth
	e.mapper.SetViewportSize(length)
	e.OnContainerChanged(ViewportResized)
}

// Resize sets the viewport from its width and height.
func (e *Engine[C]) Resize(width, height float64) {
	if e.orientation == Horizontal {
		e.SetViewportSize(width, height)
		return
	}
	e.SetViewportSize(height, width)
}

// SetPosition moves the normalized scroll position.
func (e *Engine[C]) SetPosition(p float64) {
	if p == e.mapper.Position() {
		return
	}
	e.mapper.AdjustPosition(p)
	e.markDirty(StateRecomputing)
}

// RecreateCells destroys every cell and rebuilds the window on the next pass.
func (e *Engine[C]) RecreateCells() {
	e.needsRecreate = true
	e.markDirty(StateRecomputing)
}

// ReconfigureCells rebinds every realized cell to its current index on the
// next pass, refreshing content without touching the window.
func (e *Engine[C]) ReconfigureCells() {
	e.needsReconfigure = true
	e.markDirty(StateRecomputing)
}

// Dispose destroys every cell and withdraws any pending layout request.
func (e *Engine[C]) Dispose() {
	if c, ok := e.scheduler.(layoutCanceler); ok {
		c.Cancel(e)
	}
	e.dropScratch()
	e.pool.RecreateAll()
	e.slots = nil
	e.window = emptyWindow
	e.state = StateClean
}

func (e *Engine[C]) markDirty(s State) {
	// a pending container change outranks a position change
	if e.state != StateItemCountDirty {
		e.state = s
	}
	if e.scheduler != nil && !e.inLayout {
		e.scheduler.RequestLayout(e)
	}
}

func (e *Engine[C]) layoutIfNeeded() {
	if e.state != StateClean {
		e.Layout()
	}
}

// =============================================================================
// Sizing
// =============================================================================

func (e *Engine[C]) sizeOf(index int) float64 {
	if e.sizer != nil {
		return nonNegative(e.sizer.SizeOf(index))
	}
	if e.fixedCellSize > 0 {
		return e.fixedCellSize
	}
	return e.measure(index)
}

// measure binds the private scratch cell to index and asks for its preferred
// length. The scratch cell is never placed or counted as realized.
func (e *Engine[C]) measure(index int) float64 {
	if !e.ensureScratch() {
		return 0
	}
	e.scratch.UpdateIndex(index)
	var size float64
	if e.orientation == Horizontal {
		size = e.scratch.PrefWidth(e.viewportBreadth)
	} else {
		size = e.scratch.PrefHeight(e.viewportBreadth)
	}
	e.scratch.UpdateIndex(-1)
	return nonNegative(size)
}

func (e *Engine[C]) ensureScratch() bool {
	if e.hasScratch {
		return true
	}
	if e.scratchError {
		return false
	}
	c, err := e.pool.create()
	if err != nil {
		e.scratchError = true
		e.logger.Warn("measuring cell unavailable, items sized 0", "err", err)
		return false
	}
	c.SetVisible(false)
	e.scratch = c
	e.hasScratch = true
	return true
}

func (e *Engine[C]) dropScratch() {
	if e.hasScratch {
		destroyCell(e.scratch)
	}
	var zero C
	e.scratch = zero
	e.hasScratch = false
	e.scratchError = false
}

// =============================================================================
// Layout
// =============================================================================

// Layout runs one layout pass: it applies pending container changes, computes
// the window for the current position and reconciles, binds and places the
// realized cells. After Layout returns the state is StateClean.
func (e *Engine[C]) Layout() {
	if e.inLayout {
		return
	}
	e.inLayout = true
	defer func() { e.inLayout = false }()

	prev := e.state
	e.state = StateRecomputing

	countChanged := e.cellCount != e.lastCellCount
	if countChanged {
		e.reanchor()
	}
	switch {
	case e.needsRecreate || countChanged:
		e.recreate()
	case e.needsReconfigure:
		e.pool.ReconfigureAll()
	}
	e.needsRecreate = false
	e.needsReconfigure = false
	e.lastCellCount = e.cellCount

	if e.cellCount == 0 {
		e.mapper.AdjustPosition(0)
	}

	plan := e.computeWindow()
	e.reconcile(plan)
	e.place()

	if e.shrunk {
		if n := e.pool.Prune(0); n > 0 {
			e.logger.Debug("pruned cells", "count", n)
		}
		e.shrunk = false
	}

	e.state = StateClean
	e.logger.Debug("layout",
		"from", prev,
		"count", e.cellCount,
		"first", e.window.First,
		"last", e.window.Last,
		"position", e.mapper.Position(),
		"cells", e.pool.Len(),
	)
	if e.observer != nil {
		e.observer.CellsLaidOut(e.window)
	}
}

// reanchor keeps the previously first realized item at its old offset after
// the item count changed. When that item no longer exists the view snaps to
// the end.
func (e *Engine[C]) reanchor() {
	p := e.mapper.Position()
	if p == 0 || p == 1 {
		return
	}
	if len(e.slots) == 0 {
		return
	}
	first := e.slots[0]
	if first.index >= e.cellCount {
		e.mapper.AdjustPosition(1)
		return
	}
	e.mapper.AdjustPositionToIndex(first.index)
	e.mapper.AdjustByPixelAmount(-e.mapper.OffsetForCell(first.index) - first.offset)
}

func (e *Engine[C]) recreate() {
	e.dropScratch()
	e.pool.RecreateAll()
	e.slots = nil
}

// computeWindow walks from the current index towards both ends until the
// viewport is covered, then pins the content to the start or the end when it
// would otherwise leave a gap. It may move the position.
func (e *Engine[C]) computeWindow() []slot[C] {
	n := e.cellCount
	vlen := e.viewportLength
	if n == 0 || vlen <= 0 {
		return nil
	}

	ci := e.mapper.CurrentIndex()
	start := -e.mapper.ViewportOffset(e.mapper.Position())

	// leading cells, collected backwards
	plan := []slot[C]{{index: ci, offset: start, length: e.sizeOf(ci)}}
	top := start
	for i := ci - 1; i >= 0 && top > fitEpsilon && len(plan) < maxWindowCells; i-- {
		l := e.sizeOf(i)
		top -= l
		plan = append(plan, slot[C]{index: i, offset: top, length: l})
	}
	for i, j := 0, len(plan)-1; i < j; i, j = i+1, j-1 {
		plan[i], plan[j] = plan[j], plan[i]
	}

	if plan[0].index == 0 && plan[0].offset > 0 {
		shiftSlots(plan, -plan[0].offset)
		e.mapper.AdjustPosition(0)
	}

	// trailing cells
	last := plan[len(plan)-1]
	bottom := last.offset + last.length
	for i := last.index + 1; i < n && bottom < vlen-fitEpsilon && len(plan) < maxWindowCells; i++ {
		l := e.sizeOf(i)
		plan = append(plan, slot[C]{index: i, offset: bottom, length: l})
		bottom += l
	}

	// gap after the last item: pull the content down
	if plan[len(plan)-1].index == n-1 && bottom < vlen-fitEpsilon && (plan[0].index > 0 || plan[0].offset < 0) {
		shiftSlots(plan, vlen-bottom)
		top = plan[0].offset
		var lead []slot[C]
		for i := plan[0].index - 1; i >= 0 && top > fitEpsilon && len(lead)+len(plan) < maxWindowCells; i-- {
			l := e.sizeOf(i)
			top -= l
			lead = append(lead, slot[C]{index: i, offset: top, length: l})
		}
		if len(lead) > 0 {
			for i, j := 0, len(lead)-1; i < j; i, j = i+1, j-1 {
				lead[i], lead[j] = lead[j], lead[i]
			}
			plan = append(lead, plan...)
		}
		if plan[0].index == 0 && plan[0].offset >= 0 {
			// everything fits
			shiftSlots(plan, -plan[0].offset)
			e.mapper.AdjustPosition(0)
		} else {
			e.mapper.AdjustPosition(1)
		}
	}

	// drop cells left entirely outside after the shifts
	for len(plan) > 1 && plan[0].offset+plan[0].length <= fitEpsilon {
		plan = plan[1:]
	}
	for len(plan) > 1 && plan[len(plan)-1].offset >= vlen-fitEpsilon {
		plan = plan[:len(plan)-1]
	}
	return plan
}

func shiftSlots[C Cell](s []slot[C], d float64) {
	for i := range s {
		s[i].offset += d
	}
}

// reconcile binds cells to the planned slots. Cells whose index stays in the
// window are kept as they are; the rest are released before any acquire so
// they can be recycled within the same pass.
func (e *Engine[C]) reconcile(plan []slot[C]) {
	w := emptyWindow
	if len(plan) > 0 {
		w = Window{First: plan[0].index, Last: plan[len(plan)-1].index}
	}

	for _, s := range e.slots {
		if s.ok && !w.Contains(s.index) {
			e.pool.Release(s.cell)
		}
	}

	for i := range plan {
		idx := plan[i].index
		if c, ok := e.pool.Bound(idx); ok {
			plan[i].cell = c
			plan[i].ok = true
			continue
		}
		c, err := e.pool.Acquire(idx)
		if err != nil {
			e.logger.Warn("cell creation failed", "index", idx, "err", err)
			continue
		}
		plan[i].cell = c
		plan[i].ok = true
	}

	e.slots = plan
	e.window = w
}

func (e *Engine[C]) place() {
	for _, s := range e.slots {
		if !s.ok {
			continue
		}
		if e.orientation == Horizontal {
			s.cell.Resize(s.length, e.viewportBreadth)
			s.cell.Relocate(s.offset, 0)
		} else {
			s.cell.Resize(e.viewportBreadth, s.length)
			s.cell.Relocate(0, s.offset)
		}
		s.cell.SetVisible(true)
	}
}

// Cells returns the realized cells in index order.
func (e *Engine[C]) Cells() []C {
	e.layoutIfNeeded()
	cells := make([]C, 0, len(e.slots))
	for _, s := range e.slots {
		if s.ok {
			cells = append(cells, s.cell)
		}
	}
	return cells
}

// EachCell calls fn for every realized cell with its offset and length along
// the scroll axis.
func (e *Engine[C]) EachCell(fn func(cell C, offset, length float64)) {
	e.layoutIfNeeded()
	for _, s := range e.slots {
		if s.ok {
			fn(s.cell, s.offset, s.length)
		}
	}
}

// VisibleCell returns the realized cell for index, if any.
func (e *Engine[C]) VisibleCell(index int) (C, bool) {
	e.layoutIfNeeded()
	if s, ok := e.slotFor(index); ok && s.ok {
		return s.cell, true
	}
	var zero C
	return zero, false
}

func (e *Engine[C]) slotFor(index int) (slot[C], bool) {
	if !e.window.Contains(index) {
		return slot[C]{}, false
	}
	i := index - e.window.First
	if i < 0 || i >= len(e.slots) {
		return slot[C]{}, false
	}
	return e.slots[i], true
}

func nonNegativeInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
