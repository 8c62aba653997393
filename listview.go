package vflow

// ListCell is the cell a ListView realizes for one item.
type ListCell[T any] struct {
	CellBase
	view    *ListView[T]
	item    T
	graphic Node
	label   *Label // reused by the default renderer
}

// UpdateIndex binds the cell to item index and rebuilds its graphic.
func (c *ListCell[T]) UpdateIndex(index int) {
	c.CellBase.UpdateIndex(index)
	var zero T
	if index < 0 || index >= c.view.items.Len() {
		c.item = zero
		c.graphic = nil
		return
	}
	c.item = c.view.items.At(index)
	c.graphic = c.view.render(c, c.item)
}

// Item returns the bound item.
func (c *ListCell[T]) Item() T { return c.item }

// Graphic returns the node showing the item, or nil for an empty cell.
func (c *ListCell[T]) Graphic() Node { return c.graphic }

// PrefWidth returns the graphic's preferred width.
func (c *ListCell[T]) PrefWidth(height float64) float64 {
	if c.graphic == nil {
		return 0
	}
	return c.graphic.PrefWidth(height)
}

// PrefHeight returns the graphic's preferred height at width.
func (c *ListCell[T]) PrefHeight(width float64) float64 {
	if c.graphic == nil {
		return c.view.labels.emptyHeight()
	}
	return c.graphic.PrefHeight(width)
}

// Lines renders the cell for a terminal host.
func (c *ListCell[T]) Lines(cols int) []string {
	if l, ok := c.graphic.(Liner); ok {
		return l.Lines(cols)
	}
	return []string{""}
}

// ListView shows an ObservableList through a vertical engine.
//
// Usage:
//
//	items := vflow.NewObservableList(names...)
//	list := vflow.NewListView(items, vflow.WithWrap(vflow.WrapModeWord))
//	list.Resize(300, 400)
//
//	// each frame:
//	list.Layout()
//	list.Paint(dl, vflow.Vec2{X: 10, Y: 10})
type ListView[T any] struct {
	items    *ObservableList[T]
	unsub    func()
	engine   *Engine[*ListCell[T]]
	renderer func(item T) Node
	factory  func() (*ListCell[T], error)
	labels   labelSpec
	style    Style
}

// NewListView creates a list over items. A nil list is replaced by an empty
// one. Options: every engine option plus OptConverter, OptWrap, OptStyle and
// CellMetrics.
func NewListView[T any](items *ObservableList[T], opts ...Option) *ListView[T] {
	if items == nil {
		items = NewObservableList[T]()
	}
	o := applyOptions(opts)
	lv := &ListView[T]{
		items:  items,
		labels: labelSpecFrom(o),
		style:  GetOpt(o, OptStyle),
	}
	lv.engine = MustEngine[*ListCell[T]](lv, opts...)
	lv.unsub = items.Subscribe(func(ListChange[T]) {
		lv.engine.OnContainerChanged(ItemsChanged)
	})
	return lv
}

// ItemCount implements ContainerAdapter.
func (lv *ListView[T]) ItemCount() int { return lv.items.Len() }

// CreateCell implements ContainerAdapter.
func (lv *ListView[T]) CreateCell() (*ListCell[T], error) {
	if lv.factory != nil {
		c, err := lv.factory()
		if err != nil {
			return nil, err
		}
		c.view = lv
		return c, nil
	}
	return &ListCell[T]{view: lv}, nil
}

func (lv *ListView[T]) render(c *ListCell[T], item T) Node {
	if lv.renderer != nil {
		return lv.renderer(item)
	}
	g, l := lv.labels.defaultGraphic(any(item), c.label)
	c.label = l
	return g
}

// SetRenderer replaces the item-to-graphic conversion. A nil renderer
// restores the default one. Every cell is rebuilt.
func (lv *ListView[T]) SetRenderer(fn func(item T) Node) {
	lv.renderer = fn
	lv.engine.OnContainerChanged(CellFactoryChanged)
}

// SetCellFactory replaces how cells are built. A nil factory restores the
// default one. Every cell is rebuilt.
func (lv *ListView[T]) SetCellFactory(fn func() (*ListCell[T], error)) {
	lv.factory = fn
	lv.engine.OnContainerChanged(CellFactoryChanged)
}

// Items returns the backing list.
func (lv *ListView[T]) Items() *ObservableList[T] { return lv.items }

// Engine returns the engine driving the list.
func (lv *ListView[T]) Engine() *Engine[*ListCell[T]] { return lv.engine }

// Layout runs a layout pass if anything changed.
func (lv *ListView[T]) Layout() { lv.engine.layoutIfNeeded() }

// Resize sets the viewport size.
func (lv *ListView[T]) Resize(width, height float64) { lv.engine.Resize(width, height) }

// Show scrolls the minimum needed to make index fully visible.
func (lv *ListView[T]) Show(index int) { lv.engine.Show(index) }

// ScrollTo scrolls index to the top.
func (lv *ListView[T]) ScrollTo(index int) { lv.engine.ScrollTo(index) }

// Dispose detaches the list from its items and destroys its cells.
func (lv *ListView[T]) Dispose() {
	if lv.unsub != nil {
		lv.unsub()
		lv.unsub = nil
	}
	lv.engine.Dispose()
}

// Paint draws the realized cells with origin as the viewport's top-left corner.
func (lv *ListView[T]) Paint(dl *DrawList, origin Vec2) {
	e := lv.engine
	w, h := float32(e.ViewportBreadth()), float32(e.ViewportLength())
	if e.Orientation() == Horizontal {
		w, h = h, w
	}
	dl.AddRect(origin.X, origin.Y, w, h, lv.style.BackgroundColor)
	dl.PushClipRect(origin.X, origin.Y, origin.X+w, origin.Y+h)
	for _, c := range e.Cells() {
		r := c.Bounds().Translate(origin.X, origin.Y)
		if c.Index()%2 == 1 && lv.style.RowBgAltColor != 0 {
			dl.AddRect(r.X, r.Y, r.W, r.H, lv.style.RowBgAltColor)
		}
		if p, ok := c.graphic.(Painter); ok {
			p.Paint(dl, r)
		}
	}
	dl.PopClipRect()
	dl.AddRectOutline(origin.X, origin.Y, w, h, lv.style.BorderColor, 1)
}
