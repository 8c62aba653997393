/*
Package vflow provides a virtualized cell flow: a scrollable container that
shows an arbitrarily large item sequence with a small, bounded set of
recycled cells.

# Overview

The engine never measures the whole sequence. Its scroll state is a single
normalized position in [0, 1]; the PositionMapper converts that position to a
current index and a pixel offset using only the sizes of the cells it walks
over. Items may have different sizes. When the viewport moves, cells that
leave the window are released to a CellPool and rebound to the items coming
into view.

Three adapters drive the engine from live collections:

	ListView[T]   one cell per element of an ObservableList[T]
	TreeView[T]   one cell per visible row of a TreeItem[T] hierarchy
	TableView[R]  one row engine plus a horizontal column engine

# Quick Start

	items := vflow.NewObservableList[string]()
	for i := range 100_000 {
	    items.Add(fmt.Sprintf("item %d", i))
	}

	sched := vflow.NewScheduler()
	list := vflow.NewListView(items, vflow.WithScheduler(sched))
	list.Resize(400, 600)
	nav := vflow.NewNavigator(list.Engine())

	// Host loop
	for running {
	    nav.Handle(input)   // keys and wheel drive the engine
	    sched.Flush()       // one coalesced layout per dirty container
	    list.Paint(dl, origin)
	}

Mutations to the ObservableList mark the engine dirty; the layout runs on the
next Flush, not once per mutation.

# Layout Cycle

	collection change -> OnContainerChanged(ItemsChanged)
	                  -> state ItemCountDirty, RequestLayout
	scheduler tick    -> Engine.Layout
	                  -> PositionMapper window -> CellPool reconcile
	                  -> Resize/Relocate cells -> LayoutObserver.CellsLaidOut

A dirty state is never downgraded: a count change followed by a resize still
lays out as a count change.

# Navigation

	Show(i)              scroll the minimum amount to make item i fully visible
	ScrollTo(i)          align item i with the start of the viewport
	ScrollToOffset(px)   move by a pixel amount, one viewport at a time
	ScrollPixels(px)     move by a pixel amount; returns pixels consumed
	ScrollPageDown(a)    page forward from anchor a; returns the new anchor
	ScrollPageUp(a)      page backward from anchor a
	MoveToFirst/Last     jump to the ends

Invalid indices are clamped and an empty sequence makes every operation a
no-op. Paging on an empty sequence returns -1.

# Keyboard Shortcuts (Navigator)

	Up / Down        Move the anchor by one item
	Page Up / Down   Page relative to the anchor
	Home / End       Jump to the first / last item
	Mouse Wheel      Scroll by OptWheelStep pixels per notch

# Logging

Engines log through log/slog. Layout passes are logged at debug level; enable
them with SetDebug(true) or VFLOW_DEBUG=1. Cell factory failures are logged at
warn level and leave the affected slot empty.

# Hosts

backend/opengl paints DrawLists produced by the views' Paint methods.
backend/term renders realized cells as terminal lines inside a bubbletea
program; cmd/vflowterm wraps it in a command line tool. In the terminal, build
views with CellMetrics(1, 1, 0) so one pixel is one glyph.
*/
package vflow
