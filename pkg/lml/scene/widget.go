// Package scene provides the in-memory widget model the LML engine
// builds against: a small set of widget kinds, the builder used to stage
// constructor parameters, and the container adapters that encapsulate
// each kind's child-append policy.
//
// These widgets carry state only; rendering is left to front ends such
// as the terminal renderer.
package scene

// Widget is a node in the constructed UI tree.
type Widget interface {
	// ID returns the widget's template-assigned identifier, if any.
	ID() string
	// SetID assigns the widget's identifier.
	SetID(id string)
	// Set stores arbitrary metadata on the widget. The engine uses it
	// for cell and tree-node bookkeeping.
	Set(key string, value any)
	// Get retrieves metadata stored with Set, or nil.
	Get(key string) any
}

// Layout is implemented by widgets with a deferred finalize step. Pack
// runs exactly once when the widget's tag closes.
type Layout interface {
	Pack()
}

// Base supplies the common Widget plumbing; concrete widgets embed it.
type Base struct {
	id   string
	data map[string]any

	Visible  bool
	Disabled bool
}

// NewBase returns a Base with default flags set.
func NewBase() Base {
	return Base{Visible: true}
}

func (b *Base) ID() string      { return b.id }
func (b *Base) SetID(id string) { b.id = id }

func (b *Base) SetVisible(visible bool)   { b.Visible = visible }
func (b *Base) SetDisabled(disabled bool) { b.Disabled = disabled }

func (b *Base) Set(key string, value any) {
	if b.data == nil {
		b.data = make(map[string]any)
	}
	b.data[key] = value
}

func (b *Base) Get(key string) any {
	if b.data == nil {
		return nil
	}
	return b.data[key]
}
