package term

import (
	"math"

	"github.com/go-theft-auto/vflow"
)

// Target is what the Model's Navigator and ScrollBar drive. Every
// *vflow.Engine satisfies it.
type Target interface {
	vflow.Navigable
	vflow.Scroller
}

// Surface is a container the terminal can host. Sizes are in glyphs: build
// views with vflow.CellMetrics(1, 1, 0).
type Surface interface {
	Resize(width, height float64)
	Layout()
	Target() Target
	// Header returns a line drawn above the rows, or "".
	Header(cols int) string
	// Paint writes realized rows into screen; marks receive the item index
	// shown on each line, -1 for none.
	Paint(screen []string, marks []int, cols int)
}

// Binder is implemented by surfaces with keys of their own.
type Binder interface {
	Bind(nav *vflow.Navigator)
}

type lineCell interface {
	vflow.Cell
	Bounds() vflow.Rect
	Lines(cols int) []string
}

// paintCells copies each realized cell's lines to the rows it covers.
// Lines scrolled off either edge are dropped.
func paintCells[C lineCell](e *vflow.Engine[C], screen []string, marks []int, cols int) {
	for i := range marks {
		marks[i] = -1
	}
	for _, c := range e.Cells() {
		top := int(math.Round(float64(c.Bounds().Y)))
		for j, line := range c.Lines(cols) {
			y := top + j
			if y < 0 || y >= len(screen) {
				continue
			}
			screen[y] = vflow.TruncateText(line, cols)
			marks[y] = c.Index()
		}
	}
}

// ListSurface hosts a ListView.
type ListSurface[T any] struct {
	List *vflow.ListView[T]
}

func (s ListSurface[T]) Resize(width, height float64) { s.List.Resize(width, height) }
func (s ListSurface[T]) Layout() { s.List.Layout() }
func (s ListSurface[T]) Target() Target { return s.List.Engine() }
func (s ListSurface[T]) Header(int) string { return "" }

func (s ListSurface[T]) Paint(screen []string, marks []int, cols int) {
	paintCells(s.List.Engine(), screen, marks, cols)
}

// TreeSurface hosts a TreeView. Enter and Space toggle the anchor row.
type TreeSurface[T any] struct {
	Tree *vflow.TreeView[T]
}

func (s TreeSurface[T]) Resize(width, height float64) { s.Tree.Resize(width, height) }
func (s TreeSurface[T]) Layout() { s.Tree.Layout() }
func (s TreeSurface[T]) Target() Target { return s.Tree.Engine() }
func (s TreeSurface[T]) Header(int) string { return "" }

func (s TreeSurface[T]) Paint(screen []string, marks []int, cols int) {
	paintCells(s.Tree.Engine(), screen, marks, cols)
}

func (s TreeSurface[T]) Bind(nav *vflow.Navigator) {
	toggle := func() { s.Tree.Toggle(nav.Anchor()) }
	nav.Bind("toggle", vflow.KeyCheck(vflow.KeyEnter), toggle)
	nav.Bind("toggle-space", vflow.KeyCheck(vflow.KeySpace), toggle)
}

// TableSurface hosts a TableView. Left and Right scroll the columns.
type TableSurface[R any] struct {
	Table *vflow.TableView[R]
	// Step is the horizontal scroll per key press in glyphs; 0 means 8.
	Step float64
}

func (s TableSurface[R]) Resize(width, height float64) { s.Table.Resize(width, height) }
func (s TableSurface[R]) Layout() { s.Table.Layout() }
func (s TableSurface[R]) Target() Target { return s.Table.RowEngine() }
func (s TableSurface[R]) Header(cols int) string { return s.Table.HeaderLine(cols) }

func (s TableSurface[R]) Paint(screen []string, marks []int, cols int) {
	paintCells(s.Table.RowEngine(), screen, marks, cols)
}

func (s TableSurface[R]) Bind(nav *vflow.Navigator) {
	step := s.Step
	if step <= 0 {
		step = 8
	}
	nav.Bind("columns-left", vflow.KeyCheck(vflow.KeyLeft), func() { s.Table.ScrollColumns(-step) })
	nav.Bind("columns-right", vflow.KeyCheck(vflow.KeyRight), func() { s.Table.ScrollColumns(step) })
}
