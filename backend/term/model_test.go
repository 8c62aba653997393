package term_test

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
	"github.com/go-theft-auto/vflow/backend/term"
)

func termOpts(sched *vflow.Scheduler) []vflow.Option {
	return []vflow.Option{
		vflow.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		vflow.CellMetrics(1, 1, 0),
		vflow.WithScheduler(sched),
	}
}

func newListModel(t *testing.T, n, width, height int) *term.Model {
	t.Helper()
	items := make([]string, n)
	for i := range items {
		items[i] = fmt.Sprintf("item %d", i)
	}
	sched := vflow.NewScheduler()
	list := vflow.NewListView(vflow.NewObservableList(items...), termOpts(sched)...)
	m := term.New(term.ListSurface[string]{List: list}, sched)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

func lines(m *term.Model) []string {
	return strings.Split(m.View(), "\n")
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestModelRendersRealizedRows(t *testing.T) {
	m := newListModel(t, 100, 20, 6)

	out := lines(m)
	require.Len(t, out, 6)
	for i := range 5 {
		assert.Contains(t, out[i], fmt.Sprintf("item %d", i))
	}
	assert.Contains(t, out[5], "1/100")
}

func TestModelEmptyBeforeSize(t *testing.T) {
	sched := vflow.NewScheduler()
	list := vflow.NewListView(vflow.NewObservableList("a"), termOpts(sched)...)
	m := term.New(term.ListSurface[string]{List: list}, sched)
	assert.Empty(t, m.View())
}

func TestModelKeys(t *testing.T) {
	m := newListModel(t, 100, 20, 6)

	m.Update(key(tea.KeyDown))
	assert.Equal(t, 1, m.Navigator().Anchor())

	m.Update(key(tea.KeyEnd))
	assert.Equal(t, 99, m.Navigator().Anchor())
	out := lines(m)
	assert.Contains(t, out[4], "item 99")
	assert.Contains(t, out[5], "100/100")

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, m.Navigator().Anchor())
	assert.Contains(t, lines(m)[0], "item 0")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
}

func TestModelWheelScrollsRows(t *testing.T) {
	m := newListModel(t, 100, 20, 6)

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	assert.Contains(t, lines(m)[0], "item 3")
	assert.Equal(t, 0, m.Navigator().Anchor(), "wheel keeps the anchor")

	m.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	assert.Contains(t, lines(m)[0], "item 0")
}

func TestModelScrollBarTrackPages(t *testing.T) {
	m := newListModel(t, 100, 20, 6)

	m.Update(tea.MouseMsg{X: 19, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m.Update(tea.MouseMsg{X: 19, Y: 4, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	assert.Contains(t, lines(m)[0], "item 5")
}

func TestModelFollowsListMutations(t *testing.T) {
	sched := vflow.NewScheduler()
	items := vflow.NewObservableList("a", "b")
	list := vflow.NewListView(items, termOpts(sched)...)
	m := term.New(term.ListSurface[string]{List: list}, sched)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 6})

	items.Insert(0, "first")
	assert.Equal(t, 1, sched.Pending())
	m.Update(nil)
	assert.Contains(t, lines(m)[0], "first")
	assert.Contains(t, lines(m)[5], "1/3")
}

func TestModelTreeToggle(t *testing.T) {
	sched := vflow.NewScheduler()
	root := vflow.NewTreeItem("root", vflow.NewTreeItem("a"), vflow.NewTreeItem("b"))
	tree := vflow.NewTreeView(root, append(termOpts(sched), vflow.WithIndent(2))...)
	m := term.New(term.TreeSurface[string]{Tree: tree}, sched)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 6})

	assert.Contains(t, lines(m)[0], "▸ root")

	m.Update(key(tea.KeyEnter))
	out := lines(m)
	assert.Contains(t, out[0], "▾ root")
	assert.Contains(t, out[1], "a")
	assert.Contains(t, out[2], "b")
	assert.Contains(t, out[5], "1/3")
}

type record struct {
	name string
	age  int
}

func TestModelTableHeaderAndColumns(t *testing.T) {
	sched := vflow.NewScheduler()
	rows := vflow.NewObservableList(record{"user0", 20}, record{"user1", 21})
	cols := []*vflow.TableColumn[record]{
		{Title: "Name", Value: func(r record) string { return r.name }},
		{Title: "Age", Value: func(r record) string { return strconv.Itoa(r.age) }, Flags: vflow.ColumnWidthFixed, InitWidth: 5},
		{Title: "Notes", Value: func(record) string { return "-" }, Flags: vflow.ColumnWidthStretch, MinWidth: 20},
	}
	table, err := vflow.NewTableView(rows, cols, termOpts(sched)...)
	require.NoError(t, err)
	m := term.New(term.TableSurface[record]{Table: table, Step: 6}, sched)
	m.Update(tea.WindowSizeMsg{Width: 13, Height: 6})

	out := lines(m)
	require.Len(t, out, 6)
	assert.Contains(t, out[0], "Name")
	assert.Contains(t, out[1], "user0")
	assert.Contains(t, out[2], "user1")

	m.Update(key(tea.KeyRight))
	out = lines(m)
	assert.NotContains(t, out[0], "Name")
	assert.Contains(t, out[0], "Age")
	assert.Contains(t, out[1], "20")
}
