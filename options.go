package vflow

import "log/slog"

// Option configures an engine or a container view.
type Option func(*options)

// options holds all configuration via the extensions map.
// All options use the unified OptKey system for type safety.
type options struct {
	extensions map[string]any
}

// OptKey is a typed key for options.
// All options (built-in and custom) use this system for consistency.
//
// Example:
//
//	// Define option keys (built-in ones are already defined below)
//	var OptRowStripe = vflow.NewOptKey("rowStripe", false)
//
//	// Set options
//	list := vflow.NewListView(items, vflow.WithOpt(OptRowStripe, true))
//
//	// Read in a custom view
//	stripe := vflow.ApplyAndGet(opts, OptRowStripe)
type OptKey[T any] struct {
	name string
	def  T
}

// NewOptKey creates a typed option key with a default value.
// The default is returned when the option is not set.
func NewOptKey[T any](name string, defaultValue T) OptKey[T] {
	return OptKey[T]{name: name, def: defaultValue}
}

// Name returns the key name (useful for debugging).
func (k OptKey[T]) Name() string { return k.name }

// Default returns the default value for this key.
func (k OptKey[T]) Default() T { return k.def }

// WithOpt sets an option value using a typed key.
func WithOpt[T any](key OptKey[T], value T) Option {
	return func(o *options) {
		if o.extensions == nil {
			o.extensions = make(map[string]any)
		}
		o.extensions[key.name] = value
	}
}

// GetOpt retrieves an option value with type safety.
// Returns the key's default value if not set.
func GetOpt[T any](o options, key OptKey[T]) T {
	if o.extensions == nil {
		return key.def
	}
	v, ok := o.extensions[key.name]
	if !ok {
		return key.def
	}
	typed, ok := v.(T)
	if !ok {
		return key.def
	}
	return typed
}

// HasOpt returns true if the option was explicitly set.
func HasOpt[T any](o options, key OptKey[T]) bool {
	if o.extensions == nil {
		return false
	}
	_, ok := o.extensions[key.name]
	return ok
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// ApplyAndGet applies options and returns a single value.
// Use this in external packages that build their own containers.
func ApplyAndGet[T any](opts []Option, key OptKey[T]) T {
	return GetOpt(applyOptions(opts), key)
}

// ApplyAndCheck returns the option value and whether it was explicitly set.
func ApplyAndCheck[T any](opts []Option, key OptKey[T]) (T, bool) {
	o := applyOptions(opts)
	return GetOpt(o, key), HasOpt(o, key)
}

// =============================================================================
// Built-in Option Keys
// =============================================================================

// --- Engine Options ---
var (
	OptOrientation   = NewOptKey("orientation", Vertical)
	OptFixedCellSize = NewOptKey[float64]("fixedCellSize", 0) // 0 = measure
	OptScheduler     = NewOptKey[LayoutRequester]("scheduler", nil)
	OptLogger        = NewOptKey[*slog.Logger]("logger", nil)
)

// --- View Options ---
var (
	OptConverter  = NewOptKey[func(any) string]("converter", nil)
	OptLineHeight = NewOptKey[float64]("lineHeight", 20)
	OptCharWidth  = NewOptKey[float64]("charWidth", 8)
	OptIndent     = NewOptKey[float64]("indent", 16)    // tree level indent
	OptShowRoot   = NewOptKey("showRoot", true)         // tree
	OptPadding    = NewOptKey[float64]("padding", 4)    // label inset
	OptMinThumb   = NewOptKey[float64]("minThumb", 20)  // scrollbar
	OptWheelStep  = NewOptKey[float64]("wheelStep", 40) // navigator, px per notch
	OptWrap       = NewOptKey("wrap", WrapNone)
	OptStyle      = NewOptKey("style", DefaultStyle())
)

// =============================================================================
// Convenience Option Functions (wrap WithOpt for common cases)
// =============================================================================

// VerticalFlow lays cells out top to bottom.
func VerticalFlow() Option { return WithOpt(OptOrientation, Vertical) }

// HorizontalFlow lays cells out left to right.
func HorizontalFlow() Option { return WithOpt(OptOrientation, Horizontal) }

// FixedCellSize skips measuring: every item is px long along the scroll axis.
func FixedCellSize(px float64) Option { return WithOpt(OptFixedCellSize, px) }

// WithScheduler routes layout requests through s.
// Without a scheduler the host must call Layout itself once per frame.
func WithScheduler(s LayoutRequester) Option { return WithOpt(OptScheduler, s) }

// WithLogger replaces the package logger for one engine.
func WithLogger(l *slog.Logger) Option { return WithOpt(OptLogger, l) }

// WithConverter sets the item-to-text conversion used by default cells.
func WithConverter(fn func(any) string) Option { return WithOpt(OptConverter, fn) }

// WithLineHeight sets the default label height.
func WithLineHeight(px float64) Option { return WithOpt(OptLineHeight, px) }

// WithIndent sets the per-level indent of tree rows.
func WithIndent(px float64) Option { return WithOpt(OptIndent, px) }

// HideRoot hides the root item of a tree; its children become top level.
func HideRoot() Option { return WithOpt(OptShowRoot, false) }

// WithWrap makes default labels wrap to the cell width, giving rows
// variable heights.
func WithWrap(mode TextWrapMode) Option { return WithOpt(OptWrap, mode) }

// WithStyle sets the paint colors.
func WithStyle(s Style) Option { return WithOpt(OptStyle, s) }

// WithWheelStep sets how many pixels one wheel notch scrolls.
func WithWheelStep(px float64) Option { return WithOpt(OptWheelStep, px) }

// CellMetrics sets the glyph width, line height and label padding of default
// cells. A terminal host uses CellMetrics(1, 1, 0).
func CellMetrics(charWidth, lineHeight, padding float64) Option {
	return func(o *options) {
		WithOpt(OptCharWidth, charWidth)(o)
		WithOpt(OptLineHeight, lineHeight)(o)
		WithOpt(OptPadding, padding)(o)
	}
}
