package vflow

import "errors"

var (
	// ErrNilAdapter is returned when an engine is built without a container adapter.
	ErrNilAdapter = errors.New("vflow: nil container adapter")

	// ErrCellFactory wraps failures (errors and panics) raised while creating a cell.
	ErrCellFactory = errors.New("vflow: cell factory failed")

	// ErrNoColumns is returned when a table is built without columns.
	ErrNoColumns = errors.New("vflow: table has no columns")
)
