package vflow_test

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
)

type person struct {
	name string
	age  int
}

func people(n int) *vflow.ObservableList[person] {
	rows := make([]person, n)
	for i := range rows {
		rows[i] = person{name: fmt.Sprintf("user%d", i), age: 20 + i%50}
	}
	return vflow.NewObservableList(rows...)
}

func peopleColumns() []*vflow.TableColumn[person] {
	return []*vflow.TableColumn[person]{
		{Title: "Name", Value: func(p person) string { return p.name }},
		{Title: "Age", Value: func(p person) string { return strconv.Itoa(p.age) }, Flags: vflow.ColumnWidthFixed, InitWidth: 5},
		{Title: "Notes", Value: func(person) string { return "-" }, Flags: vflow.ColumnWidthStretch, MinWidth: 20},
	}
}

// newTermTable uses one-column glyphs and lines, as the terminal host does.
func newTermTable(t *testing.T, rows *vflow.ObservableList[person], width float64) *vflow.TableView[person] {
	t.Helper()
	tv, err := vflow.NewTableView(rows, peopleColumns(), quietLogger(), vflow.CellMetrics(1, 1, 0))
	require.NoError(t, err)
	tv.Resize(width, 6)
	tv.Layout()
	return tv
}

func TestTableViewNoColumns(t *testing.T) {
	_, err := vflow.NewTableView[person](people(3), nil)
	require.ErrorIs(t, err, vflow.ErrNoColumns)
}

func TestTableViewColumnWidths(t *testing.T) {
	tv := newTermTable(t, people(100), 40)

	cols := tv.Columns()
	// "user0".."user4" are bound: 5 glyphs plus one of gap
	assert.Equal(t, 6.0, cols[0].Width())
	assert.Equal(t, 5.0, cols[1].Width())
	assert.Equal(t, 29.0, cols[2].Width())

	assert.Equal(t, 1.0, tv.RowHeight())
	assert.Equal(t, vflow.Window{First: 0, Last: 4}, tv.RowEngine().Window())
	assert.Equal(t, vflow.Window{First: 0, Last: 2}, tv.ColumnEngine().Window())

	assert.Equal(t, "Name  Age  Notes", tv.HeaderLine(40))
	row, ok := tv.RowEngine().VisibleCell(3)
	require.True(t, ok)
	assert.Equal(t, []string{"user3 23   -"}, row.Lines(40))
	assert.Equal(t, "23", row.Text(1))
	assert.Equal(t, "", row.Text(7))
}

func TestTableViewAutoWidthGrows(t *testing.T) {
	rows := people(10)
	tv := newTermTable(t, rows, 40)
	require.Equal(t, 6.0, tv.Columns()[0].Width())

	rows.Replace(0, person{name: "a much longer name", age: 1})
	tv.Layout()
	assert.Equal(t, 19.0, tv.Columns()[0].Width())
}

func TestTableViewStretchWeights(t *testing.T) {
	cols := []*vflow.TableColumn[person]{
		{Title: "A", Flags: vflow.ColumnWidthFixed, InitWidth: 20},
		{Title: "B", Flags: vflow.ColumnWidthStretch, InitWidth: 1},
		{Title: "C", Flags: vflow.ColumnWidthStretch, InitWidth: 3},
		{Title: "D", Flags: vflow.ColumnWidthStretch, MaxWidth: 10},
	}
	tv, err := vflow.NewTableView(people(1), cols, quietLogger())
	require.NoError(t, err)
	tv.Resize(220, 100)
	tv.Layout()

	// 200px left over, shared 1:3:1
	assert.Equal(t, 20.0, cols[0].Width())
	assert.Equal(t, 40.0, cols[1].Width())
	assert.Equal(t, 120.0, cols[2].Width())
	assert.Equal(t, 10.0, cols[3].Width(), "clamped to MaxWidth")
}

func TestTableViewScrollColumns(t *testing.T) {
	tv := newTermTable(t, people(100), 12)

	// Name 6 + Age 5 + Notes 20 in 12 columns
	consumed := tv.ScrollColumns(6)
	assert.InDelta(t, 6, consumed, 1e-9)
	tv.Layout()
	assert.Equal(t, "Age  Notes", tv.HeaderLine(12))

	tv.ShowColumn(0)
	tv.Layout()
	assert.Equal(t, "Name  Age", tv.HeaderLine(12))
}

func TestTableViewRowsFollowMutations(t *testing.T) {
	rows := people(3)
	tv := newTermTable(t, rows, 40)

	rows.Add(person{name: "late", age: 99})
	tv.Layout()
	assert.Equal(t, 4, tv.RowEngine().CellCount())

	tv.ShowRow(3)
	tv.Layout()
	c, ok := tv.RowEngine().VisibleCell(3)
	require.True(t, ok)
	assert.Equal(t, "late", c.Row().name)

	tv.Dispose()
	rows.Add(person{name: "ignored"})
	assert.Equal(t, 4, tv.RowEngine().CellCount())
}

func TestTableViewPaint(t *testing.T) {
	tv, err := vflow.NewTableView(people(1000), peopleColumns(), quietLogger())
	require.NoError(t, err)
	tv.Resize(400, 300)

	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)
	tv.Paint(dl, vflow.Vec2{X: 5, Y: 5})
	dl.Finalize()
	assert.NotEmpty(t, dl.CmdBuffer)
	assert.Less(t, tv.RowEngine().Pool().Len(), 20, "only visible rows are realized")
}
