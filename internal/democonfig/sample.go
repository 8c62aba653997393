package democonfig

import (
	"fmt"
	"strings"

	"github.com/go-theft-auto/vflow"
)

var words = []string{
	"cell", "flow", "viewport", "window", "layout", "pool", "anchor",
	"offset", "scroll", "index", "realized", "recycled", "measure", "pixel",
}

// SampleLines returns n deterministic lines of varying length, so wrapped
// rows take one to several lines.
func SampleLines(n int) []string {
	out := make([]string, n)
	var b strings.Builder
	for i := range out {
		b.Reset()
		fmt.Fprintf(&b, "%06d", i)
		// 1..24 words, spread by a cheap hash
		count := 1 + (i*7919)%24
		for w := range count {
			b.WriteByte(' ')
			b.WriteString(words[(i+w*31)%len(words)])
		}
		out[i] = b.String()
	}
	return out
}

// SampleTree builds a tree of roughly n items, fanout children per node.
func SampleTree(n, fanout int) *vflow.TreeItem[string] {
	fanout = max(fanout, 1)
	root := vflow.NewTreeItem("root")
	root.SetExpanded(true)
	queue := []*vflow.TreeItem[string]{root}
	for made := 1; made < n && len(queue) > 0; {
		parent := queue[0]
		queue = queue[1:]
		for c := 0; c < fanout && made < n; c++ {
			child := vflow.NewTreeItem(fmt.Sprintf("%s/%d", parent.Value, c))
			parent.Add(child)
			queue = append(queue, child)
			made++
		}
	}
	return root
}

// Row is a table demo record.
type Row struct {
	ID    int
	Name  string
	Words int
}

// SampleRows returns n table rows derived from SampleLines.
func SampleRows(n int) []Row {
	lines := SampleLines(n)
	rows := make([]Row, n)
	for i, l := range lines {
		f := strings.Fields(l)
		rows[i] = Row{ID: i, Name: strings.Join(f[1:min(len(f), 3)], " "), Words: len(f) - 1}
	}
	return rows
}
