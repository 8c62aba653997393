package vflow

import "slices"

// ListChangeType is the kind of mutation an ObservableList reports.
type ListChangeType int

const (
	ListAdd ListChangeType = iota
	ListUpdate
	ListRemove
	ListClear
	ListSet // full replacement
)

func (t ListChangeType) String() string {
	switch t {
	case ListAdd:
		return "add"
	case ListUpdate:
		return "update"
	case ListRemove:
		return "remove"
	case ListClear:
		return "clear"
	case ListSet:
		return "set"
	default:
		return "unknown"
	}
}

// ListChange describes one mutation of an ObservableList.
type ListChange[T any] struct {
	Type  ListChangeType
	Index int
	Count int // items added or removed
	Item  T   // for Add/Update, the new value
	Old   T   // for Update/Remove, the old value
}

// ObservableList is a live, mutable item sequence that notifies listeners
// after every change. Views subscribe to it and turn each change into
// OnContainerChanged(ItemsChanged) on their engine.
type ObservableList[T any] struct {
	items     []T
	listeners []func(ListChange[T])
}

// NewObservableList creates a list holding items. The slice is not copied.
func NewObservableList[T any](items ...T) *ObservableList[T] {
	return &ObservableList[T]{items: items}
}

// Items returns all items. The slice must not be modified.
func (o *ObservableList[T]) Items() []T { return o.items }

// Len returns the number of items.
func (o *ObservableList[T]) Len() int { return len(o.items) }

// At returns the item at index i, or zero value if out of bounds.
func (o *ObservableList[T]) At(i int) T {
	if i < 0 || i >= len(o.items) {
		var zero T
		return zero
	}
	return o.items[i]
}

// Set replaces all items.
func (o *ObservableList[T]) Set(items []T) *ObservableList[T] {
	o.items = items
	o.notify(ListChange[T]{Type: ListSet, Count: len(items)})
	return o
}

// Add appends items.
func (o *ObservableList[T]) Add(items ...T) *ObservableList[T] {
	if len(items) == 0 {
		return o
	}
	idx := len(o.items)
	o.items = append(o.items, items...)
	o.notify(ListChange[T]{Type: ListAdd, Index: idx, Count: len(items), Item: items[0]})
	return o
}

// Insert inserts an item at index i. The index is clamped.
func (o *ObservableList[T]) Insert(i int, item T) *ObservableList[T] {
	i = clampIndex(i, 0, len(o.items))
	o.items = slices.Insert(o.items, i, item)
	o.notify(ListChange[T]{Type: ListAdd, Index: i, Count: 1, Item: item})
	return o
}

// RemoveAt removes the item at index i.
func (o *ObservableList[T]) RemoveAt(i int) *ObservableList[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	o.items = slices.Delete(o.items, i, i+1)
	o.notify(ListChange[T]{Type: ListRemove, Index: i, Count: 1, Old: old})
	return o
}

// RemoveRange removes items [from, to).
func (o *ObservableList[T]) RemoveRange(from, to int) *ObservableList[T] {
	from = clampIndex(from, 0, len(o.items))
	to = clampIndex(to, from, len(o.items))
	if from == to {
		return o
	}
	old := o.items[from]
	o.items = slices.Delete(o.items, from, to)
	o.notify(ListChange[T]{Type: ListRemove, Index: from, Count: to - from, Old: old})
	return o
}

// Update modifies the item at index i in place.
func (o *ObservableList[T]) Update(i int, fn func(*T)) *ObservableList[T] {
	if i < 0 || i >= len(o.items) {
		return o
	}
	old := o.items[i]
	fn(&o.items[i])
	o.notify(ListChange[T]{Type: ListUpdate, Index: i, Count: 1, Item: o.items[i], Old: old})
	return o
}

// Replace sets the item at index i.
func (o *ObservableList[T]) Replace(i int, item T) *ObservableList[T] {
	return o.Update(i, func(p *T) { *p = item })
}

// Clear removes all items.
func (o *ObservableList[T]) Clear() *ObservableList[T] {
	n := len(o.items)
	o.items = o.items[:0]
	o.notify(ListChange[T]{Type: ListClear, Count: n})
	return o
}

// Subscribe adds a change listener and returns an unsubscribe function.
func (o *ObservableList[T]) Subscribe(fn func(ListChange[T])) func() {
	o.listeners = append(o.listeners, fn)
	idx := len(o.listeners) - 1
	return func() {
		// Zero out to allow GC, don't reorder
		o.listeners[idx] = nil
	}
}

func (o *ObservableList[T]) notify(c ListChange[T]) {
	for _, fn := range o.listeners {
		if fn != nil {
			fn(c)
		}
	}
}
