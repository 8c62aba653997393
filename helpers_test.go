package vflow_test

import (
	"errors"
	"io"
	"log/slog"

	"github.com/go-theft-auto/vflow"
)

// testCell records how the engine and pool drive it.
type testCell struct {
	vflow.CellBase
	id       int
	pref     float64
	updates  int
	disposed bool
}

func (c *testCell) UpdateIndex(index int) {
	c.CellBase.UpdateIndex(index)
	c.updates++
}

func (c *testCell) PrefWidth(float64) float64  { return c.pref }
func (c *testCell) PrefHeight(float64) float64 { return c.pref }
func (c *testCell) Dispose()                   { c.disposed = true }

var errBoom = errors.New("boom")

// testAdapter is a container with sized items that records layout passes.
type testAdapter struct {
	count   int
	size    func(int) float64
	fail    map[int]bool // creation ordinals that fail
	created []*testCell
	laidOut []vflow.Window
}

func newTestAdapter(count int, size float64) *testAdapter {
	return &testAdapter{
		count: count,
		size:  func(int) float64 { return size },
	}
}

func (a *testAdapter) ItemCount() int { return a.count }

func (a *testAdapter) CreateCell() (*testCell, error) {
	n := len(a.created)
	if a.fail[n] {
		a.created = append(a.created, nil)
		return nil, errBoom
	}
	c := &testCell{id: n}
	a.created = append(a.created, c)
	return c, nil
}

func (a *testAdapter) SizeOf(index int) float64 { return a.size(index) }

func (a *testAdapter) CellsLaidOut(w vflow.Window) { a.laidOut = append(a.laidOut, w) }

// prefAdapter has no ItemSizer; the engine measures its cells.
type prefAdapter struct {
	count   int
	pref    float64
	created int
}

func (a *prefAdapter) ItemCount() int { return a.count }

func (a *prefAdapter) CreateCell() (*testCell, error) {
	a.created++
	return &testCell{id: a.created, pref: a.pref}, nil
}

func quietLogger() vflow.Option {
	return vflow.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestEngine builds a vertical engine over count items of size px in a
// 200 x viewport area and runs the first layout.
func newTestEngine(count int, size, viewport float64, opts ...vflow.Option) (*vflow.Engine[*testCell], *testAdapter) {
	a := newTestAdapter(count, size)
	e, err := vflow.NewEngine[*testCell](a, append([]vflow.Option{quietLogger()}, opts...)...)
	if err != nil {
		panic(err)
	}
	e.Resize(200, viewport)
	e.Layout()
	return e, a
}

// cellSpans returns index -> (offset, length) for every realized cell.
func cellSpans(e *vflow.Engine[*testCell]) map[int][2]float64 {
	spans := make(map[int][2]float64)
	e.EachCell(func(c *testCell, offset, length float64) {
		spans[c.Index()] = [2]float64{offset, length}
	})
	return spans
}
