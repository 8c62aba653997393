package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-theft-auto/vflow"
)

type sampleTree struct {
	root, a, a1, a2, b *vflow.TreeItem[string]
}

func newSampleTree() sampleTree {
	s := sampleTree{
		a1: vflow.NewTreeItem("a1"),
		a2: vflow.NewTreeItem("a2"),
		b:  vflow.NewTreeItem("b"),
	}
	s.a = vflow.NewTreeItem("a", s.a1, s.a2)
	s.root = vflow.NewTreeItem("root", s.a, s.b)
	return s
}

// newTermTree uses one-column glyphs and lines, as the terminal host does.
func newTermTree(root *vflow.TreeItem[string], opts ...vflow.Option) *vflow.TreeView[string] {
	opts = append([]vflow.Option{quietLogger(), vflow.CellMetrics(1, 1, 0), vflow.WithIndent(2)}, opts...)
	tv := vflow.NewTreeView(root, opts...)
	tv.Resize(40, 10)
	tv.Layout()
	return tv
}

func treeLines(t *testing.T, tv *vflow.TreeView[string]) []string {
	t.Helper()
	var out []string
	for _, c := range tv.Engine().Cells() {
		out = append(out, c.Lines(40)...)
	}
	return out
}

func TestTreeViewExpandCollapse(t *testing.T) {
	s := newSampleTree()
	tv := newTermTree(s.root)

	assert.Equal(t, 1, tv.Engine().CellCount())
	assert.Equal(t, []string{"▸ root"}, treeLines(t, tv))

	s.root.SetExpanded(true)
	assert.Equal(t, vflow.StateItemCountDirty, tv.Engine().State())
	tv.Layout()
	assert.Equal(t, []string{"▾ root", "  ▸ a", "    b"}, treeLines(t, tv))

	tv.Toggle(1)
	tv.Layout()
	assert.Equal(t, []string{"▾ root", "  ▾ a", "      a1", "      a2", "    b"}, treeLines(t, tv))
	assert.Same(t, s.a1, tv.Row(2))
	assert.Equal(t, 3, tv.RowIndex(s.a2))

	c, ok := tv.Engine().VisibleCell(2)
	require.True(t, ok)
	assert.Equal(t, 2, c.Level())
	assert.Same(t, s.a1, c.Item())

	tv.Toggle(2) // leaf, no-op
	tv.Toggle(1)
	tv.Layout()
	assert.Equal(t, 3, tv.Engine().CellCount())
	assert.Equal(t, -1, tv.RowIndex(s.a1))
}

func TestTreeViewHideRoot(t *testing.T) {
	s := newSampleTree()
	tv := newTermTree(s.root, vflow.HideRoot())

	assert.Equal(t, []string{"▸ a", "  b"}, treeLines(t, tv))
}

func TestTreeViewStructuralChanges(t *testing.T) {
	s := newSampleTree()
	s.root.ExpandAll()
	tv := newTermTree(s.root)
	require.Equal(t, 5, tv.Engine().CellCount())

	s.root.Remove(s.b)
	tv.Layout()
	assert.Equal(t, 4, tv.Engine().CellCount())
	assert.Nil(t, s.b.Parent())

	// moving an item detaches it from its old parent
	s.a.Add(s.b)
	s.root.Add(s.a2)
	tv.Layout()
	assert.Equal(t, []*vflow.TreeItem[string]{s.a1, s.b}, s.a.Children())
	assert.Equal(t, 2, s.b.Depth())
	assert.Equal(t, 5, tv.Engine().CellCount())

	s.a1.SetValue("renamed")
	tv.Layout()
	assert.Equal(t, "      renamed", treeLines(t, tv)[2])
}

func TestTreeViewReveal(t *testing.T) {
	s := newSampleTree()
	tv := newTermTree(s.root)

	tv.Reveal(s.a2)
	tv.Layout()
	assert.True(t, s.root.Expanded())
	assert.True(t, s.a.Expanded())
	_, ok := tv.Engine().VisibleCell(tv.RowIndex(s.a2))
	assert.True(t, ok)
}

func TestTreeViewSetRoot(t *testing.T) {
	s := newSampleTree()
	s.root.ExpandAll()
	tv := newTermTree(s.root)

	other := vflow.NewTreeItem("other")
	tv.SetRoot(other)
	tv.Layout()
	assert.Equal(t, 1, tv.Engine().CellCount())
	assert.Same(t, other, tv.Root())

	// the old tree no longer drives the view
	s.root.SetExpanded(false)
	assert.Equal(t, vflow.StateClean, tv.Engine().State())
}

func TestTreeViewDisclosureWidthIsPerView(t *testing.T) {
	s := newSampleTree()
	one := vflow.NewTreeView(s.root, quietLogger())
	two := vflow.NewTreeView(vflow.NewTreeItem("x"), quietLogger())

	assert.Equal(t, 16.0, one.DisclosureWidth())
	two.SetDisclosure("[+]", "[-]")
	assert.Equal(t, 32.0, two.DisclosureWidth())
	assert.Equal(t, 16.0, one.DisclosureWidth())
}

func TestTreeViewCellWidth(t *testing.T) {
	s := newSampleTree()
	s.root.ExpandAll()
	tv := vflow.NewTreeView(s.root, quietLogger())
	tv.Resize(300, 400)
	tv.Layout()

	c, ok := tv.Engine().VisibleCell(2)
	require.True(t, ok)
	// two indents, the disclosure column and "a1" with padding
	assert.Equal(t, 2*16+16+(2*8+2*4.0), c.PrefWidth(-1))

	dl := vflow.AcquireDrawList()
	defer vflow.ReleaseDrawList(dl)
	tv.Paint(dl, vflow.Vec2{})
	assert.NotEmpty(t, dl.VtxBuffer)
}
