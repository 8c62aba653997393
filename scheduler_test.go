package vflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-theft-auto/vflow"
)

type countingLayouter struct {
	name  string
	runs  int
	log   *[]string
	again func()
}

func (l *countingLayouter) Layout() {
	l.runs++
	*l.log = append(*l.log, l.name)
	if l.again != nil {
		l.again()
	}
}

func TestSchedulerCoalescesAndOrders(t *testing.T) {
	var log []string
	a := &countingLayouter{name: "a", log: &log}
	b := &countingLayouter{name: "b", log: &log}
	s := vflow.NewScheduler()

	s.RequestLayout(b)
	s.RequestLayout(a)
	s.RequestLayout(b)
	s.RequestLayout(nil)
	assert.Equal(t, 2, s.Pending())

	assert.Equal(t, 2, s.Flush())
	assert.Equal(t, []string{"b", "a"}, log)
	assert.Equal(t, 1, b.runs)
	assert.Equal(t, uint64(1), s.Ticks())
}

func TestSchedulerDefersRequestsMadeWhileFlushing(t *testing.T) {
	var log []string
	s := vflow.NewScheduler()
	a := &countingLayouter{name: "a", log: &log}
	a.again = func() {
		if a.runs == 1 {
			s.RequestLayout(a)
		}
	}

	s.RequestLayout(a)
	assert.Equal(t, 1, s.Flush())
	assert.Equal(t, 1, a.runs)
	assert.Equal(t, 1, s.Pending())

	assert.Equal(t, 1, s.Flush())
	assert.Equal(t, 2, a.runs)
	assert.Equal(t, 0, s.Pending())
}

func TestSchedulerCancel(t *testing.T) {
	var log []string
	a := &countingLayouter{name: "a", log: &log}
	b := &countingLayouter{name: "b", log: &log}
	s := vflow.NewScheduler()

	s.RequestLayout(a)
	s.RequestLayout(b)
	s.Cancel(a)
	s.Cancel(a)
	assert.Equal(t, 1, s.Pending())

	s.Flush()
	assert.Equal(t, []string{"b"}, log)

	// a cancelled layouter can be queued again
	s.RequestLayout(a)
	assert.Equal(t, 1, s.Pending())
}

type sliceLayouter struct {
	tags []string
	runs *int
}

func (l sliceLayouter) Layout() { *l.runs++ }

func TestSchedulerNonComparableLayouter(t *testing.T) {
	runs := 0
	l := sliceLayouter{tags: []string{"x"}, runs: &runs}
	s := vflow.NewScheduler()

	assert.NotPanics(t, func() {
		s.RequestLayout(l)
		s.RequestLayout(l)
		s.Cancel(l)
	})
	assert.Equal(t, 2, s.Pending(), "value layouters are not coalesced")

	assert.NotPanics(t, func() { s.Flush() })
	assert.Equal(t, 2, runs)
	assert.Equal(t, 0, s.Pending())
}
