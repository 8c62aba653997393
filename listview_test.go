package vflow_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
)

func numberedItems(n int) *vflow.ObservableList[string] {
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	return vflow.NewObservableList(items...)
}

func cellTexts[T any](lv *vflow.ListView[T]) []string {
	var out []string
	for _, c := range lv.Engine().Cells() {
		out = append(out, c.Lines(80)[0])
	}
	return out
}

func TestListViewRealizesVisibleItems(t *testing.T) {
	lv := vflow.NewListView(numberedItems(1000), quietLogger())
	lv.Resize(200, 100)
	lv.Layout()

	// default rows are 20px lines with 4px padding
	assert.Equal(t, vflow.Window{First: 0, Last: 3}, lv.Engine().Window())
	assert.Equal(t, []string{"item 0", "item 1", "item 2", "item 3"}, cellTexts(lv))

	c, ok := lv.Engine().VisibleCell(2)
	require.True(t, ok)
	assert.Equal(t, "item 2", c.Item())
	label, ok := c.Graphic().(*vflow.Label)
	require.True(t, ok)
	assert.Equal(t, "item 2", label.Text)

	lv.ScrollTo(500)
	lv.Layout()
	assert.Equal(t, "item 500", cellTexts(lv)[0])
}

func TestListViewFollowsMutations(t *testing.T) {
	items := numberedItems(3)
	lv := vflow.NewListView(items, quietLogger())
	lv.Resize(200, 100)
	lv.Layout()

	items.Insert(0, "first")
	assert.Equal(t, vflow.StateItemCountDirty, lv.Engine().State())
	lv.Layout()
	assert.Equal(t, 4, lv.Engine().CellCount())
	assert.Equal(t, []string{"first", "item 0", "item 1", "item 2"}, cellTexts(lv))

	items.Replace(1, "changed")
	lv.Layout()
	assert.Equal(t, "changed", cellTexts(lv)[1])

	items.Clear()
	lv.Layout()
	assert.Empty(t, lv.Engine().Cells())
	assert.True(t, lv.Engine().Window().Empty())
}

func TestListViewCoalescesThroughScheduler(t *testing.T) {
	sched := vflow.NewScheduler()
	items := numberedItems(10)
	lv := vflow.NewListView(items, quietLogger(), vflow.WithScheduler(sched))
	lv.Resize(200, 100)
	sched.Flush()

	for i := range 50 {
		items.Add(fmt.Sprintf("more %d", i))
	}
	assert.Equal(t, 1, sched.Pending())
	assert.Equal(t, 1, sched.Flush())
	assert.Equal(t, 60, lv.Engine().CellCount())
}

func TestListViewWrappedRowsHaveVariableHeight(t *testing.T) {
	items := vflow.NewObservableList("short", "aaaa bbbb cccc dddd", "short")
	lv := vflow.NewListView(items, quietLogger(),
		vflow.WithWrap(vflow.WrapModeWord),
		vflow.CellMetrics(8, 20, 4),
	)
	lv.Resize(100, 200)
	lv.Layout()

	e := lv.Engine()
	assert.Equal(t, 28.0, e.SizeOf(0))
	assert.Equal(t, 48.0, e.SizeOf(1))

	c, ok := e.VisibleCell(2)
	require.True(t, ok)
	assert.Equal(t, float32(28+48), c.Bounds().Y)
	assert.Equal(t, []string{"aaaa bbbb", "cccc dddd"}, mustCell(t, e, 1).Lines(11))
}

func mustCell[T any](t *testing.T, e *vflow.Engine[*vflow.ListCell[T]], i int) *vflow.ListCell[T] {
	t.Helper()
	c, ok := e.VisibleCell(i)
	require.True(t, ok)
	return c
}

func TestListViewEmptyItemHasNoGraphic(t *testing.T) {
	items := vflow.NewObservableList[any]("a", nil, 42)
	lv := vflow.NewListView(items, quietLogger())
	lv.Resize(200, 200)
	lv.Layout()

	e := lv.Engine()
	assert.Nil(t, mustCell(t, e, 1).Graphic())
	assert.Equal(t, 28.0, e.SizeOf(1), "empty rows keep one line")
	assert.Equal(t, "42", mustCell(t, e, 2).Lines(10)[0])
}

type contact struct{ name string }

func (c *contact) String() string { return c.name }

func TestListViewNilPointerItems(t *testing.T) {
	items := vflow.NewObservableList(&contact{"ada"}, nil, &contact{"bob"})
	lv := vflow.NewListView(items, quietLogger())
	lv.Resize(200, 200)
	require.NotPanics(t, lv.Layout)

	e := lv.Engine()
	assert.Nil(t, mustCell(t, e, 1).Graphic())
	assert.Equal(t, 28.0, e.SizeOf(1))
	assert.Equal(t, "bob", mustCell(t, e, 2).Lines(10)[0])

	// a typed nil Node is absent too
	nodes := vflow.NewObservableList(&vflow.Label{Text: "x"}, (*vflow.Label)(nil))
	nv := vflow.NewListView(nodes, quietLogger())
	nv.Resize(200, 200)
	require.NotPanics(t, nv.Layout)
	assert.Nil(t, mustCell(t, nv.Engine(), 1).Graphic())
}

func TestListViewConverter(t *testing.T) {
	type user struct{ name string }
	items := vflow.NewObservableList(user{"ada"}, user{"bob"})
	lv := vflow.NewListView(items, quietLogger(), vflow.WithConverter(func(v any) string {
		return "@" + v.(user).name
	}))
	lv.Resize(200, 100)
	lv.Layout()
	assert.Equal(t, []string{"@ada", "@bob"}, cellTexts(lv))
}

func TestListViewRenderer(t *testing.T) {
	lv := vflow.NewListView(numberedItems(20), quietLogger())
	lv.Resize(200, 100)
	lv.Layout()
	old := lv.Engine().Cells()

	lv.SetRenderer(func(s string) vflow.Node { return vflow.NewLabel(strings.ToUpper(s)) })
	lv.Layout()
	assert.Equal(t, "ITEM 0", cellTexts(lv)[0])
	assert.NotSame(t, old[0], lv.Engine().Cells()[0], "cells rebuilt")

	lv.SetRenderer(nil)
	lv.Layout()
	assert.Equal(t, "item 0", cellTexts(lv)[0])
}

func TestListViewCellFactoryFailure(t *testing.T) {
	lv := vflow.NewListView(numberedItems(20), quietLogger())
	lv.Resize(200, 100)

	built := 0
	lv.SetCellFactory(func() (*vflow.ListCell[string], error) {
		built++
		if built == 3 {
			return nil, errors.New("no more cells")
		}
		return &vflow.ListCell[string]{}, nil
	})
	lv.Layout()

	// the first build is the measuring cell, the third fails
	assert.Equal(t, vflow.Window{First: 0, Last: 3}, lv.Engine().Window())
	assert.Len(t, lv.Engine().Cells(), 3)
	_, ok := lv.Engine().VisibleCell(1)
	assert.False(t, ok)
}

func TestListViewDispose(t *testing.T) {
	items := numberedItems(20)
	lv := vflow.NewListView(items, quietLogger())
	lv.Resize(200, 100)
	lv.Layout()

	lv.Dispose()
	items.Add("ignored")
	assert.Equal(t, 20, lv.Engine().CellCount())
	assert.Equal(t, 0, lv.Engine().Pool().Len())
}

func TestListViewPaint(t *testing.T) {
	lv := vflow.NewListView(numberedItems(100), quietLogger())
	lv.Resize(200, 100)
	lv.Layout()

	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)
	lv.Paint(dl, vflow.Vec2{X: 10, Y: 10})
	dl.Finalize()

	assert.NotEmpty(t, dl.CmdBuffer)
	assert.NotEmpty(t, dl.VtxBuffer)
	for _, v := range dl.VtxBuffer {
		assert.GreaterOrEqual(t, v.Pos[1], float32(10))
	}
}
