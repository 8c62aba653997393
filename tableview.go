package vflow

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ColumnFlags control how a column is sized.
type ColumnFlags uint32

const (
	ColumnFlagsNone ColumnFlags = 0

	ColumnWidthFixed   ColumnFlags = 1 << 0 // InitWidth, never changes
	ColumnWidthStretch ColumnFlags = 1 << 1 // share of the leftover width, InitWidth is the weight
	ColumnWidthAuto    ColumnFlags = 1 << 2 // widest of title and bound content (default)
)

// TableColumn defines a table column.
type TableColumn[R any] struct {
	Title     string
	Value     func(row R) string // nil = the row's text
	Flags     ColumnFlags
	InitWidth float64 // initial/fixed width (0 = auto)
	MinWidth  float64
	MaxWidth  float64 // 0 = unlimited

	width float64 // computed
}

// Width returns the width from the last column layout.
func (c *TableColumn[R]) Width() float64 { return c.width }

func (c *TableColumn[R]) stretches() bool {
	fixed := c.Flags&ColumnWidthFixed != 0 && c.InitWidth > 0
	return c.Flags&ColumnWidthStretch != 0 && !fixed
}

func (c *TableColumn[R]) text(row R, convert func(any) string) string {
	if c.Value != nil {
		return c.Value(row)
	}
	return itemText(any(row), convert)
}

// HeaderCell is a cell of the column engine: one column header.
type HeaderCell[R any] struct {
	CellBase
	table  *TableView[R]
	column *TableColumn[R]
}

// UpdateIndex binds the header to column index.
func (h *HeaderCell[R]) UpdateIndex(index int) {
	h.CellBase.UpdateIndex(index)
	h.column = nil
	if index >= 0 && index < len(h.table.columns) {
		h.column = h.table.columns[index]
	}
}

// Column returns the bound column.
func (h *HeaderCell[R]) Column() *TableColumn[R] { return h.column }

// PrefWidth returns the computed column width.
func (h *HeaderCell[R]) PrefWidth(height float64) float64 {
	if h.column == nil {
		return 0
	}
	return h.column.width
}

// PrefHeight returns the header height.
func (h *HeaderCell[R]) PrefHeight(width float64) float64 { return h.table.rowHeight }

// TableRow is a cell of the row engine: one row across the realized columns.
type TableRow[R any] struct {
	CellBase
	table *TableView[R]
	row   R
}

// UpdateIndex binds the row cell to row index and records its content
// widths for auto-sized columns.
func (r *TableRow[R]) UpdateIndex(index int) {
	r.CellBase.UpdateIndex(index)
	var zero R
	if index < 0 || index >= r.table.rows.Len() {
		r.row = zero
		return
	}
	r.row = r.table.rows.At(index)
	r.table.trackContent(r.row)
}

// Row returns the bound row value.
func (r *TableRow[R]) Row() R { return r.row }

// Text returns the text of column col for the bound row.
func (r *TableRow[R]) Text(col int) string {
	if col < 0 || col >= len(r.table.columns) {
		return ""
	}
	return r.table.columns[col].text(r.row, r.table.labels.convert)
}

// PrefWidth returns the total column width.
func (r *TableRow[R]) PrefWidth(height float64) float64 { return r.table.totalWidth() }

// PrefHeight returns the fixed row height.
func (r *TableRow[R]) PrefHeight(width float64) float64 { return r.table.rowHeight }

// Lines renders the row's realized columns for a terminal host.
func (r *TableRow[R]) Lines(cols int) []string {
	return []string{r.table.columnLine(cols, r.Text)}
}

// columnStrip adapts the table's columns to a horizontal engine.
type columnStrip[R any] struct {
	t *TableView[R]
}

func (s columnStrip[R]) ItemCount() int { return len(s.t.columns) }

func (s columnStrip[R]) CreateCell() (*HeaderCell[R], error) {
	return &HeaderCell[R]{table: s.t}, nil
}

// SizeOf is the column width, so the column engine never measures.
func (s columnStrip[R]) SizeOf(index int) float64 {
	if index < 0 || index >= len(s.t.columns) {
		return 0
	}
	if s.t.widthsDirty {
		s.t.computeColumnWidths()
	}
	return s.t.columns[index].width
}

// TableView shows rows of an ObservableList under a header of columns.
//
// Rows are virtualized by a vertical engine, columns by a horizontal one
// whose item sizes are the column widths; a row paints only the columns the
// column engine has realized.
type TableView[R any] struct {
	rows    *ObservableList[R]
	unsub   func()
	columns []*TableColumn[R]

	rowEngine *Engine[*TableRow[R]]
	colEngine *Engine[*HeaderCell[R]]

	labels    labelSpec
	style     Style
	rowHeight float64

	width, height float64
	contentWidths []float64 // widest bound text per column
	widthsDirty   bool
	cellLabel     *Label
}

// NewTableView creates a table over rows. It returns ErrNoColumns when no
// columns are given.
func NewTableView[R any](rows *ObservableList[R], columns []*TableColumn[R], opts ...Option) (*TableView[R], error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if rows == nil {
		rows = NewObservableList[R]()
	}
	o := applyOptions(opts)
	t := &TableView[R]{
		rows:          rows,
		columns:       columns,
		labels:        labelSpecFrom(o),
		style:         GetOpt(o, OptStyle),
		contentWidths: make([]float64, len(columns)),
		widthsDirty:   true,
	}
	t.labels.wrap = WrapNone
	t.rowHeight = t.labels.lineHeight + 2*t.labels.padding
	t.cellLabel = t.labels.label(nil, "")

	rowOpts := append(slices.Clone(opts), VerticalFlow(), FixedCellSize(t.rowHeight))
	rowEngine, err := NewEngine[*TableRow[R]](t, rowOpts...)
	if err != nil {
		return nil, fmt.Errorf("vflow: table rows: %w", err)
	}
	colOpts := append(slices.Clone(opts), HorizontalFlow())
	colEngine, err := NewEngine[*HeaderCell[R]](columnStrip[R]{t: t}, colOpts...)
	if err != nil {
		return nil, fmt.Errorf("vflow: table columns: %w", err)
	}
	t.rowEngine = rowEngine
	t.colEngine = colEngine

	t.unsub = rows.Subscribe(func(ListChange[R]) {
		t.rowEngine.OnContainerChanged(ItemsChanged)
	})
	return t, nil
}

// ItemCount implements ContainerAdapter for the rows.
func (t *TableView[R]) ItemCount() int { return t.rows.Len() }

// CreateCell implements ContainerAdapter for the rows.
func (t *TableView[R]) CreateCell() (*TableRow[R], error) {
	return &TableRow[R]{table: t}, nil
}

// Rows returns the backing list.
func (t *TableView[R]) Rows() *ObservableList[R] { return t.rows }

// Columns returns the column definitions.
func (t *TableView[R]) Columns() []*TableColumn[R] { return t.columns }

// RowEngine returns the vertical engine.
func (t *TableView[R]) RowEngine() *Engine[*TableRow[R]] { return t.rowEngine }

// ColumnEngine returns the horizontal engine.
func (t *TableView[R]) ColumnEngine() *Engine[*HeaderCell[R]] { return t.colEngine }

// RowHeight returns the height of a row and of the header.
func (t *TableView[R]) RowHeight() float64 { return t.rowHeight }

// Resize sets the table size, header included.
func (t *TableView[R]) Resize(width, height float64) {
	t.width = nonNegative(width)
	t.height = nonNegative(height)
	t.widthsDirty = true
	t.rowEngine.Resize(t.width, nonNegative(t.height-t.rowHeight))
	t.colEngine.Resize(t.width, t.rowHeight)
}

// Layout lays out rows first, since binding rows can widen auto columns,
// then the columns.
func (t *TableView[R]) Layout() {
	t.rowEngine.layoutIfNeeded()
	if t.widthsDirty {
		t.computeColumnWidths()
		t.colEngine.OnContainerChanged(ViewportResized)
	}
	t.colEngine.layoutIfNeeded()
}

// ScrollColumns scrolls horizontally by dx pixels and returns the pixels
// consumed.
func (t *TableView[R]) ScrollColumns(dx float64) float64 {
	t.Layout()
	return t.colEngine.ScrollPixels(dx)
}

// ShowColumn scrolls column index fully into view.
func (t *TableView[R]) ShowColumn(index int) {
	t.Layout()
	t.colEngine.Show(index)
}

// ShowRow scrolls row index fully into view.
func (t *TableView[R]) ShowRow(index int) { t.rowEngine.Show(index) }

// Dispose detaches the table from its rows and destroys all cells.
func (t *TableView[R]) Dispose() {
	if t.unsub != nil {
		t.unsub()
		t.unsub = nil
	}
	t.rowEngine.Dispose()
	t.colEngine.Dispose()
}

func (t *TableView[R]) trackContent(row R) {
	for i, c := range t.columns {
		if c.Flags&(ColumnWidthFixed|ColumnWidthStretch) != 0 {
			continue
		}
		w := t.textWidth(c.text(row, t.labels.convert))
		if w > t.contentWidths[i] {
			t.contentWidths[i] = w
			t.widthsDirty = true
		}
	}
}

// textWidth is the auto width of a column showing s, one glyph of gap included.
func (t *TableView[R]) textWidth(s string) float64 {
	return float64(TextWidth(s)+1)*t.labels.charWidth + 2*t.labels.padding
}

func (t *TableView[R]) totalWidth() float64 {
	total := 0.0
	for _, c := range t.columns {
		total += c.width
	}
	return total
}

// computeColumnWidths sizes fixed and auto columns first, then shares what
// is left of the table width among stretch columns by weight.
func (t *TableView[R]) computeColumnWidths() {
	used := 0.0
	stretchWeight := 0.0

	for i, col := range t.columns {
		switch {
		case col.Flags&ColumnWidthFixed != 0 && col.InitWidth > 0:
			col.width = col.InitWidth
		case col.stretches():
			col.width = 0
			stretchWeight += stretchWeightOf(col.InitWidth)
			continue
		default:
			col.width = max(t.textWidth(col.Title), t.contentWidths[i], col.InitWidth)
		}
		col.width = clampWidth(col.width, col.MinWidth, col.MaxWidth)
		used += col.width
	}

	remaining := t.width - used
	for _, col := range t.columns {
		if !col.stretches() {
			continue
		}
		w := 0.0
		if remaining > 0 && stretchWeight > 0 {
			w = remaining * stretchWeightOf(col.InitWidth) / stretchWeight
		}
		col.width = clampWidth(w, col.MinWidth, col.MaxWidth)
	}
	t.widthsDirty = false
}

func stretchWeightOf(w float64) float64 {
	if w <= 0 {
		return 1
	}
	return w
}

func clampWidth(w, minW, maxW float64) float64 {
	if minW > 0 && w < minW {
		w = minW
	}
	if maxW > 0 && w > maxW {
		w = maxW
	}
	return w
}

// columnLine lays the realized columns out on one terminal line of cols
// columns. Each column keeps one column of gap on its right.
func (t *TableView[R]) columnLine(cols int, textOf func(col int) string) string {
	var b strings.Builder
	at := 0
	t.colEngine.EachCell(func(h *HeaderCell[R], offset, length float64) {
		start := int(math.Round(offset))
		width := int(math.Round(length))
		text := textOf(h.Index())
		if start < 0 {
			text = skipColumns(text, -start)
			width += start
			start = 0
		}
		if start >= cols || width <= 0 {
			return
		}
		width = min(width, cols-start)
		cell := TruncateText(text, width-1)
		if cell == "" {
			return
		}
		if start > at {
			b.WriteString(strings.Repeat(" ", start-at))
			at = start
		}
		b.WriteString(cell)
		at += TextWidth(cell)
	})
	return b.String()
}

// HeaderLine renders the header for a terminal host.
func (t *TableView[R]) HeaderLine(cols int) string {
	t.Layout()
	return t.columnLine(cols, func(col int) string { return t.columns[col].Title })
}

// skipColumns drops the first n display columns of s.
func skipColumns(s string, n int) string {
	skipped := 0
	for i, r := range s {
		if skipped >= n {
			return s[i:]
		}
		skipped += runewidth.RuneWidth(r)
	}
	return ""
}

// Paint draws the header and the realized rows with origin as the table's
// top-left corner.
func (t *TableView[R]) Paint(dl *DrawList, origin Vec2) {
	t.Layout()
	w, h := float32(t.width), float32(t.height)
	rh := float32(t.rowHeight)

	dl.AddRect(origin.X, origin.Y, w, h, t.style.BackgroundColor)
	dl.PushClipRect(origin.X, origin.Y, origin.X+w, origin.Y+h)

	// header
	dl.AddRect(origin.X, origin.Y, w, rh, t.style.HeaderBgColor)
	t.colEngine.EachCell(func(hc *HeaderCell[R], offset, length float64) {
		x := origin.X + float32(offset)
		l := t.labels.label(t.cellLabel, hc.column.Title)
		l.Color = t.style.headerText()
		l.Paint(dl, Rect{X: x, Y: origin.Y, W: float32(length), H: rh})
		dl.AddRect(x+float32(length)-1, origin.Y, 1, h, t.style.BorderColor)
	})

	// rows
	body := origin.Y + rh
	dl.PushClipRect(origin.X, body, origin.X+w, origin.Y+h)
	for _, row := range t.rowEngine.Cells() {
		r := row.Bounds().Translate(origin.X, body)
		if row.Index()%2 == 1 && t.style.RowBgAltColor != 0 {
			dl.AddRect(r.X, r.Y, r.W, r.H, t.style.RowBgAltColor)
		}
		t.colEngine.EachCell(func(hc *HeaderCell[R], offset, length float64) {
			l := t.labels.label(t.cellLabel, row.Text(hc.Index()))
			l.Paint(dl, Rect{X: origin.X + float32(offset), Y: r.Y, W: float32(length), H: r.H})
		})
	}
	dl.PopClipRect()

	dl.PopClipRect()
	dl.AddRectOutline(origin.X, origin.Y, w, h, t.style.BorderColor, 1)
}
