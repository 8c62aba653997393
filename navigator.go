package vflow

// Navigable is the part of an engine keyboard and wheel navigation drives.
type Navigable interface {
	CellCount() int
	Show(index int)
	ScrollPageDown(anchor int) int
	ScrollPageUp(anchor int) int
	MoveToFirst()
	MoveToLast()
	ScrollPixels(delta float64) float64
}

// InputCheck returns true if a binding's input happened this frame.
type InputCheck func(in *InputState) bool

// KeyCheck triggers on a key press and its repeats.
func KeyCheck(k Key) InputCheck {
	return func(in *InputState) bool { return in.KeyRepeated(k) }
}

// binding is one named input-to-action entry.
type binding struct {
	name  string
	check InputCheck
	run   func()
}

// Navigator turns an InputState into engine navigation and keeps the anchor,
// the index keyboard paging is relative to.
//
// Up/Down move the anchor by one, PageUp/PageDown page relative to it,
// Home/End jump to the ends and the wheel scrolls by pixels without moving
// the anchor. Hosts add their own keys with Bind.
//
// Usage:
//
//	nav := vflow.NewNavigator(list.Engine())
//	nav.Bind("toggle", vflow.KeyCheck(vflow.KeyEnter), func() {
//	    tree.Toggle(nav.Anchor())
//	})
//
//	// each frame, after collecting input:
//	nav.Handle(input)
type Navigator struct {
	target    Navigable
	anchor    int
	wheelStep float64
	bindings  []binding
	onChange  func(anchor int)
}

// NewNavigator creates a navigator for target. Options: OptWheelStep.
func NewNavigator(target Navigable, opts ...Option) *Navigator {
	n := &Navigator{
		target:    target,
		wheelStep: ApplyAndGet(opts, OptWheelStep),
	}
	n.bindings = []binding{
		{"up", KeyCheck(KeyUp), func() { n.SetAnchor(n.anchor - 1) }},
		{"down", KeyCheck(KeyDown), func() { n.SetAnchor(n.anchor + 1) }},
		{"page-up", KeyCheck(KeyPageUp), func() { n.setAnchor(n.target.ScrollPageUp(n.anchor)) }},
		{"page-down", KeyCheck(KeyPageDown), func() { n.setAnchor(n.target.ScrollPageDown(n.anchor)) }},
		{"home", KeyCheck(KeyHome), func() {
			n.target.MoveToFirst()
			n.setAnchor(0)
		}},
		{"end", KeyCheck(KeyEnd), func() {
			n.target.MoveToLast()
			n.setAnchor(n.target.CellCount() - 1)
		}},
	}
	return n
}

// Bind adds an action run when check reports true. Later bindings run after
// the built-in ones.
func (n *Navigator) Bind(name string, check InputCheck, run func()) {
	n.bindings = append(n.bindings, binding{name: name, check: check, run: run})
}

// OnAnchorChange registers a callback for anchor moves.
func (n *Navigator) OnAnchorChange(fn func(anchor int)) { n.onChange = fn }

// Anchor returns the anchor index, or -1 when the target is empty.
func (n *Navigator) Anchor() int {
	if n.target.CellCount() == 0 {
		return -1
	}
	return clampIndex(n.anchor, 0, n.target.CellCount()-1)
}

// SetAnchor moves the anchor, clamped, and scrolls it into view.
func (n *Navigator) SetAnchor(index int) {
	count := n.target.CellCount()
	if count == 0 {
		return
	}
	index = clampIndex(index, 0, count-1)
	n.target.Show(index)
	n.setAnchor(index)
}

func (n *Navigator) setAnchor(index int) {
	if index < 0 {
		return
	}
	if index == n.anchor {
		return
	}
	n.anchor = index
	if n.onChange != nil {
		n.onChange(index)
	}
}

// Handle applies this frame's input and reports whether anything ran.
func (n *Navigator) Handle(in *InputState) bool {
	if in == nil {
		return false
	}
	if count := n.target.CellCount(); count > 0 && n.anchor > count-1 {
		n.setAnchor(count - 1)
	}

	handled := false
	for _, b := range n.bindings {
		if b.check(in) {
			b.run()
			handled = true
		}
	}
	if in.MouseWheelY != 0 {
		// wheel up scrolls towards the start
		if n.target.ScrollPixels(-float64(in.MouseWheelY)*n.wheelStep) != 0 {
			handled = true
		}
	}
	return handled
}
