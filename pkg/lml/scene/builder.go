package scene

// Builder stages constructor parameters for a widget before it is
// instantiated. Each tag creates a fresh builder, fills it from the
// tag's building attributes, hands it to the widget creator, and
// discards it.
type Builder struct {
	StyleName string
	Text      string

	// Float range parameters for progress bars and sliders.
	Min      float64
	Max      float64
	StepSize float64
	Vertical bool
}

// NewBuilder returns a builder with the default style selected.
func NewBuilder() *Builder {
	return &Builder{
		StyleName: "default",
		Max:       1,
		StepSize:  0.01,
	}
}
