package vflow

import "reflect"

// Layouter is anything that can run a layout pass.
type Layouter interface {
	Layout()
}

// LayoutRequester is the host's layout-request mechanism. A request never
// runs synchronously; the host runs it on its next tick.
type LayoutRequester interface {
	RequestLayout(l Layouter)
}

// layoutCanceler is implemented by requesters that can drop a pending request.
type layoutCanceler interface {
	Cancel(l Layouter)
}

// Scheduler coalesces layout requests and runs them once per tick.
//
// Requesting layout for the same Layouter several times before Flush runs it
// once: notifications collapse into a single recompute that reads final
// state. Requests made while flushing are deferred to the next tick.
//
// Requests are keyed by Layouter identity, so pass pointers. A Layouter whose
// value is not comparable cannot be recognized again: each request for it is
// queued separately and Cancel ignores it.
//
// Usage:
//
//	sched := vflow.NewScheduler()
//	list := vflow.NewListView(items, vflow.WithScheduler(sched))
//
//	// once per frame:
//	sched.Flush()
type Scheduler struct {
	pending []Layouter
	queued  map[Layouter]bool
	ticks   uint64
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{queued: make(map[Layouter]bool)}
}

// RequestLayout queues l for the next Flush unless it is already queued.
func (s *Scheduler) RequestLayout(l Layouter) {
	if l == nil {
		return
	}
	if !keyable(l) {
		s.pending = append(s.pending, l)
		return
	}
	if s.queued[l] {
		return
	}
	s.queued[l] = true
	s.pending = append(s.pending, l)
}

// keyable reports whether l can be used as a map key without panicking.
func keyable(l Layouter) bool {
	return reflect.ValueOf(l).Comparable()
}

// Cancel drops a pending request, e.g. when a container leaves the view tree
// before the next tick.
func (s *Scheduler) Cancel(l Layouter) {
	if l == nil || !keyable(l) || !s.queued[l] {
		return
	}
	delete(s.queued, l)
	for i, p := range s.pending {
		if keyable(p) && p == l {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			break
		}
	}
}

// Pending returns the number of queued layout requests.
func (s *Scheduler) Pending() int { return len(s.pending) }

// Flush runs every queued layout once, in request order, and returns how many
// ran. Call this once per frame.
func (s *Scheduler) Flush() int {
	s.ticks++
	batch := s.pending
	s.pending = nil
	for _, l := range batch {
		if keyable(l) {
			delete(s.queued, l)
		}
	}
	for _, l := range batch {
		l.Layout()
	}
	return len(batch)
}

// Ticks returns how many times Flush has run.
func (s *Scheduler) Ticks() uint64 { return s.ticks }
