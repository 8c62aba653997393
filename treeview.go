package vflow

import (
	"slices"
	"strings"
)

// TreeItem is one node of a tree shown by a TreeView.
//
// Structural changes (adding, removing, expanding, collapsing) anywhere under
// a root notify the TreeView showing that root.
type TreeItem[T any] struct {
	Value T

	parent   *TreeItem[T]
	children []*TreeItem[T]
	expanded bool
	onChange func()
}

// NewTreeItem creates a collapsed item holding value.
func NewTreeItem[T any](value T, children ...*TreeItem[T]) *TreeItem[T] {
	t := &TreeItem[T]{Value: value}
	for _, c := range children {
		c.detach()
		c.parent = t
	}
	t.children = append(t.children, children...)
	return t
}

// Add appends children and returns t.
func (t *TreeItem[T]) Add(children ...*TreeItem[T]) *TreeItem[T] {
	for _, c := range children {
		c.detach()
		c.parent = t
	}
	t.children = append(t.children, children...)
	t.changed()
	return t
}

// Remove detaches child from t. It reports false if child is not a child of t.
func (t *TreeItem[T]) Remove(child *TreeItem[T]) bool {
	i := slices.Index(t.children, child)
	if i < 0 {
		return false
	}
	t.children = slices.Delete(t.children, i, i+1)
	child.parent = nil
	t.changed()
	return true
}

func (t *TreeItem[T]) detach() {
	if t.parent != nil {
		t.parent.Remove(t)
	}
}

// Children returns the child items. The slice must not be modified.
func (t *TreeItem[T]) Children() []*TreeItem[T] { return t.children }

// Parent returns the parent item, or nil for a root.
func (t *TreeItem[T]) Parent() *TreeItem[T] { return t.parent }

// Leaf reports whether t has no children.
func (t *TreeItem[T]) Leaf() bool { return len(t.children) == 0 }

// Expanded reports whether t shows its children.
func (t *TreeItem[T]) Expanded() bool { return t.expanded }

// SetExpanded expands or collapses t.
func (t *TreeItem[T]) SetExpanded(expanded bool) {
	if t.expanded == expanded {
		return
	}
	t.expanded = expanded
	t.changed()
}

// Toggle flips the expanded state.
func (t *TreeItem[T]) Toggle() { t.SetExpanded(!t.expanded) }

// ExpandAll expands t and every descendant.
func (t *TreeItem[T]) ExpandAll() {
	var walk func(*TreeItem[T])
	walk = func(n *TreeItem[T]) {
		n.expanded = true
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(t)
	t.changed()
}

// SetValue replaces the value and notifies the tree.
func (t *TreeItem[T]) SetValue(v T) {
	t.Value = v
	t.changed()
}

// Depth returns how many ancestors t has.
func (t *TreeItem[T]) Depth() int {
	d := 0
	for p := t.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

func (t *TreeItem[T]) changed() {
	root := t
	for root.parent != nil {
		root = root.parent
	}
	if root.onChange != nil {
		root.onChange()
	}
}

// TreeCell is the cell a TreeView realizes for one visible row.
type TreeCell[T any] struct {
	CellBase
	view    *TreeView[T]
	item    *TreeItem[T]
	level   int
	graphic Node
	label   *Label
}

// UpdateIndex binds the cell to visible row index.
func (c *TreeCell[T]) UpdateIndex(index int) {
	c.CellBase.UpdateIndex(index)
	item, level := c.view.row(index)
	c.item = item
	c.level = level
	if item == nil {
		c.graphic = nil
		return
	}
	c.graphic = c.view.render(c, item)
}

// Item returns the bound tree item, or nil when empty.
func (c *TreeCell[T]) Item() *TreeItem[T] { return c.item }

// Level returns the indent level of the bound row.
func (c *TreeCell[T]) Level() int { return c.level }

// Graphic returns the node showing the item's value.
func (c *TreeCell[T]) Graphic() Node { return c.graphic }

// leading is the space before the graphic: indent plus disclosure column.
func (c *TreeCell[T]) leading() float64 {
	return float64(c.level)*c.view.indent + c.view.disclosureWidth
}

// PrefWidth returns the indented width of the row.
func (c *TreeCell[T]) PrefWidth(height float64) float64 {
	w := c.leading()
	if c.graphic != nil {
		w += c.graphic.PrefWidth(height)
	}
	return w
}

// PrefHeight returns the height of the row when the graphic gets what is left
// of width after the indent.
func (c *TreeCell[T]) PrefHeight(width float64) float64 {
	h := c.view.labels.emptyHeight()
	if c.graphic != nil {
		h = max(h, c.graphic.PrefHeight(width-c.leading()))
	}
	return h
}

func (c *TreeCell[T]) disclosure() (*Label, bool) {
	if c.item == nil || c.item.Leaf() {
		return nil, false
	}
	if c.item.Expanded() {
		return c.view.expandedArrow, true
	}
	return c.view.collapsedArrow, true
}

// Lines renders the row for a terminal host; continuation lines are indented
// to the graphic's column.
func (c *TreeCell[T]) Lines(cols int) []string {
	lead := int(c.leading())
	prefix := strings.Repeat(" ", int(float64(c.level)*c.view.indent))
	if arrow, ok := c.disclosure(); ok {
		prefix += arrow.Text
	}
	prefix += strings.Repeat(" ", max(lead-TextWidth(prefix), 0))

	var body []string
	if l, ok := c.graphic.(Liner); ok {
		body = l.Lines(cols - lead)
	}
	if len(body) == 0 {
		return []string{prefix}
	}
	out := make([]string, len(body))
	pad := strings.Repeat(" ", lead)
	for i, line := range body {
		if i == 0 {
			out[i] = prefix + line
		} else {
			out[i] = pad + line
		}
	}
	return out
}

// TreeView shows the expanded part of a tree as a flat list of rows.
//
// The disclosure column width is owned by the view: it is the widest of the
// view's two arrow glyphs, so rows of one tree line up regardless of what
// other trees show.
type TreeView[T any] struct {
	root     *TreeItem[T]
	showRoot bool

	rows      []*TreeItem[T]
	levels    []int
	rowsDirty bool

	engine   *Engine[*TreeCell[T]]
	renderer func(item *TreeItem[T]) Node
	labels   labelSpec
	style    Style
	indent   float64

	collapsedArrow  *Label
	expandedArrow   *Label
	disclosureWidth float64
}

// NewTreeView creates a view of root. Options: every engine option plus
// OptIndent, OptShowRoot, OptConverter, OptWrap, OptStyle and CellMetrics.
func NewTreeView[T any](root *TreeItem[T], opts ...Option) *TreeView[T] {
	o := applyOptions(opts)
	tv := &TreeView[T]{
		showRoot:  GetOpt(o, OptShowRoot),
		labels:    labelSpecFrom(o),
		style:     GetOpt(o, OptStyle),
		indent:    nonNegative(GetOpt(o, OptIndent)),
		rowsDirty: true,
	}
	tv.SetDisclosure("▸", "▾")
	tv.attach(root)
	tv.engine = MustEngine[*TreeCell[T]](tv, opts...)
	return tv
}

func (tv *TreeView[T]) attach(root *TreeItem[T]) {
	if tv.root != nil {
		tv.root.onChange = nil
	}
	tv.root = root
	if root != nil {
		root.onChange = tv.invalidate
	}
	tv.rowsDirty = true
}

func (tv *TreeView[T]) invalidate() {
	tv.rowsDirty = true
	if tv.engine != nil {
		tv.engine.OnContainerChanged(ItemsChanged)
	}
}

// SetRoot shows a different tree.
func (tv *TreeView[T]) SetRoot(root *TreeItem[T]) {
	tv.attach(root)
	tv.engine.SetPosition(0)
	tv.engine.OnContainerChanged(ItemsChanged)
}

// Root returns the tree root.
func (tv *TreeView[T]) Root() *TreeItem[T] { return tv.root }

// SetDisclosure sets the arrow glyphs for collapsed and expanded rows and
// recomputes the disclosure column width.
func (tv *TreeView[T]) SetDisclosure(collapsed, expanded string) {
	noPad := tv.labels
	noPad.padding = 0
	noPad.wrap = WrapNone
	noPad.color = tv.style.DisclosureColor
	tv.collapsedArrow = noPad.label(nil, collapsed)
	tv.expandedArrow = noPad.label(nil, expanded)
	tv.disclosureWidth = max(tv.collapsedArrow.PrefWidth(-1), tv.expandedArrow.PrefWidth(-1)) + tv.labels.charWidth
	if tv.engine != nil {
		tv.engine.OnContainerChanged(CellFactoryChanged)
	}
}

// DisclosureWidth returns the width reserved for the expand/collapse arrow.
func (tv *TreeView[T]) DisclosureWidth() float64 { return tv.disclosureWidth }

// SetRenderer replaces the item-to-graphic conversion. A nil renderer
// restores the default one.
func (tv *TreeView[T]) SetRenderer(fn func(item *TreeItem[T]) Node) {
	tv.renderer = fn
	tv.engine.OnContainerChanged(CellFactoryChanged)
}

func (tv *TreeView[T]) render(c *TreeCell[T], item *TreeItem[T]) Node {
	if tv.renderer != nil {
		return tv.renderer(item)
	}
	g, l := tv.labels.defaultGraphic(any(item.Value), c.label)
	c.label = l
	return g
}

func (tv *TreeView[T]) ensureRows() {
	if !tv.rowsDirty {
		return
	}
	tv.rows = tv.rows[:0]
	tv.levels = tv.levels[:0]
	var visit func(n *TreeItem[T], level int)
	visit = func(n *TreeItem[T], level int) {
		tv.rows = append(tv.rows, n)
		tv.levels = append(tv.levels, level)
		if n.expanded {
			for _, c := range n.children {
				visit(c, level+1)
			}
		}
	}
	if tv.root != nil {
		if tv.showRoot {
			visit(tv.root, 0)
		} else {
			for _, c := range tv.root.children {
				visit(c, 0)
			}
		}
	}
	tv.rowsDirty = false
}

func (tv *TreeView[T]) row(index int) (*TreeItem[T], int) {
	tv.ensureRows()
	if index < 0 || index >= len(tv.rows) {
		return nil, 0
	}
	return tv.rows[index], tv.levels[index]
}

// ItemCount implements ContainerAdapter: the number of visible rows.
func (tv *TreeView[T]) ItemCount() int {
	tv.ensureRows()
	return len(tv.rows)
}

// CreateCell implements ContainerAdapter.
func (tv *TreeView[T]) CreateCell() (*TreeCell[T], error) {
	return &TreeCell[T]{view: tv}, nil
}

// Row returns the item shown at visible row index, or nil.
func (tv *TreeView[T]) Row(index int) *TreeItem[T] {
	item, _ := tv.row(index)
	return item
}

// RowIndex returns the visible row of item, or -1 when it is hidden.
func (tv *TreeView[T]) RowIndex(item *TreeItem[T]) int {
	tv.ensureRows()
	return slices.Index(tv.rows, item)
}

// Toggle expands or collapses the item at visible row index.
func (tv *TreeView[T]) Toggle(index int) {
	if item := tv.Row(index); item != nil && !item.Leaf() {
		item.Toggle()
	}
}

// Reveal expands every ancestor of item and scrolls it into view.
func (tv *TreeView[T]) Reveal(item *TreeItem[T]) {
	for p := item.parent; p != nil; p = p.parent {
		p.expanded = true
	}
	tv.invalidate()
	if i := tv.RowIndex(item); i >= 0 {
		tv.engine.Show(i)
	}
}

// Engine returns the engine driving the tree.
func (tv *TreeView[T]) Engine() *Engine[*TreeCell[T]] { return tv.engine }

// Layout runs a layout pass if anything changed.
func (tv *TreeView[T]) Layout() { tv.engine.layoutIfNeeded() }

// Resize sets the viewport size.
func (tv *TreeView[T]) Resize(width, height float64) { tv.engine.Resize(width, height) }

// Show scrolls the minimum needed to make row index fully visible.
func (tv *TreeView[T]) Show(index int) { tv.engine.Show(index) }

// Dispose detaches the view from its tree and destroys its cells.
func (tv *TreeView[T]) Dispose() {
	if tv.root != nil {
		tv.root.onChange = nil
	}
	tv.engine.Dispose()
}

// Paint draws the realized rows with origin as the viewport's top-left corner.
func (tv *TreeView[T]) Paint(dl *DrawList, origin Vec2) {
	e := tv.engine
	w, h := float32(e.ViewportBreadth()), float32(e.ViewportLength())
	dl.AddRect(origin.X, origin.Y, w, h, tv.style.BackgroundColor)
	dl.PushClipRect(origin.X, origin.Y, origin.X+w, origin.Y+h)
	for _, c := range e.Cells() {
		r := c.Bounds().Translate(origin.X, origin.Y)
		if c.Index()%2 == 1 && tv.style.RowBgAltColor != 0 {
			dl.AddRect(r.X, r.Y, r.W, r.H, tv.style.RowBgAltColor)
		}
		x := r.X + float32(float64(c.level)*tv.indent)
		if c.item != nil && !c.item.Leaf() {
			tv.paintArrow(dl, x, r.Y, c.item.Expanded())
		}
		lead := float32(c.leading())
		if p, ok := c.graphic.(Painter); ok {
			p.Paint(dl, Rect{X: r.X + lead, Y: r.Y, W: r.W - lead, H: r.H})
		}
	}
	dl.PopClipRect()
	dl.AddRectOutline(origin.X, origin.Y, w, h, tv.style.BorderColor, 1)
}

// paintArrow draws the disclosure triangle centered on the first line.
func (tv *TreeView[T]) paintArrow(dl *DrawList, x, y float32, expanded bool) {
	size := float32(tv.labels.charWidth)
	cx := x + float32(tv.disclosureWidth)/2
	cy := y + float32(tv.labels.padding+tv.labels.lineHeight/2)
	half := size / 2
	color := tv.style.DisclosureColor
	if expanded {
		dl.AddTriangle(cx-half, cy-half/2, cx+half, cy-half/2, cx, cy+half/2, color)
		return
	}
	dl.AddTriangle(cx-half/2, cy-half, cx+half/2, cy, cx-half/2, cy+half, color)
}
