package vflow

// Window is the contiguous range of item indices realized as cells.
//
// Usage:
//
//	w := engine.Window()
//	for i := w.First; i <= w.Last; i++ {
//	    if cell, ok := engine.VisibleCell(i); ok {
//	        // paint cell
//	    }
//	}
type Window struct {
	First int // First realized index (inclusive)
	Last  int // Last realized index (inclusive)
}

// emptyWindow is the window of an empty sequence.
var emptyWindow = Window{First: 0, Last: -1}

// Empty reports whether the window holds no indices.
func (w Window) Empty() bool {
	return w.Last < w.First
}

// Len returns the number of indices in the window.
func (w Window) Len() int {
	if w.Empty() {
		return 0
	}
	return w.Last - w.First + 1
}

// Contains returns true if index lies inside the window.
func (w Window) Contains(index int) bool {
	return index >= w.First && index <= w.Last
}
