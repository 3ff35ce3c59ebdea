package scene

// Label is a text-bearing widget. Plain text between its tags appends,
// optionally multi-line.
type Label struct {
	Base
	Style     string
	Text      string
	Multiline bool
}

func NewLabel(text, style string) *Label {
	return &Label{Base: NewBase(), Text: text, Style: style}
}

// SetText replaces the label's text.
func (l *Label) SetText(text string) { l.Text = text }

// Append adds a line of text, separated by a newline when the label is
// multiline and already holds text.
func (l *Label) Append(text string) {
	if l.Text == "" {
		l.Text = text
		return
	}
	if l.Multiline {
		l.Text += "\n"
	}
	l.Text += text
}

// TextButton is a clickable label.
type TextButton struct {
	Base
	Style    string
	Text     string
	OnChange string // action reference invoked on state change
}

func NewTextButton(text, style string) *TextButton {
	return &TextButton{Base: NewBase(), Text: text, Style: style}
}

// SetText replaces the button's label text.
func (b *TextButton) SetText(text string) { b.Text = text }

// SetOnChange records the action reference fired on state change.
func (b *TextButton) SetOnChange(action string) { b.OnChange = action }

// Group lays out its children in a single row or column.
type Group struct {
	Base
	Vertical bool
	Children []Widget

	packed bool
}

func NewGroup(vertical bool) *Group {
	return &Group{Base: NewBase(), Vertical: vertical}
}

func (g *Group) AddChild(child Widget) {
	g.Children = append(g.Children, child)
}

func (g *Group) Pack() { g.packed = true }

// Packed reports whether the group's layout was finalized.
func (g *Group) Packed() bool { return g.packed }

// Cell holds one table child together with its layout configuration.
type Cell struct {
	Widget    Widget
	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64
	Align     string
	Colspan   int
	Grow      bool
	EndRow    bool // this cell terminates its row
}

// Pad sets all four paddings at once.
func (c *Cell) Pad(value float64) {
	c.PadLeft, c.PadRight, c.PadTop, c.PadBottom = value, value, value, value
}

// Table arranges children in rows of cells.
type Table struct {
	Base
	Style string
	Cells []*Cell

	// Outer padding, applied when pad attributes target the table
	// itself rather than one of its cells.
	PadLeft   float64
	PadRight  float64
	PadTop    float64
	PadBottom float64

	packed bool
}

func NewTable(style string) *Table {
	return &Table{Base: NewBase(), Style: style}
}

// Add appends a child in a fresh cell and returns the cell for
// configuration.
func (t *Table) Add(child Widget) *Cell {
	cell := &Cell{Widget: child, Colspan: 1}
	t.Cells = append(t.Cells, cell)
	return cell
}

// Row marks the most recently added cell as the end of its row.
func (t *Table) Row() {
	if len(t.Cells) > 0 {
		t.Cells[len(t.Cells)-1].EndRow = true
	}
}

// Rows groups the table's cells into rows, honoring EndRow markers.
func (t *Table) Rows() [][]*Cell {
	var rows [][]*Cell
	var row []*Cell
	for _, cell := range t.Cells {
		row = append(row, cell)
		if cell.EndRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func (t *Table) Pack() { t.packed = true }

// Packed reports whether the table's layout was finalized.
func (t *Table) Packed() bool { return t.packed }

// Node wraps a widget for display inside a Tree.
type Node struct {
	Widget   Widget
	Expanded bool
	Children []*Node
}

// Add appends a child node.
func (n *Node) Add(child *Node) {
	n.Children = append(n.Children, child)
}

// Tree displays a hierarchy of nodes.
type Tree struct {
	Base
	Style string
	Nodes []*Node
}

func NewTree(style string) *Tree {
	return &Tree{Base: NewBase(), Style: style}
}

// Add appends a root-level node.
func (t *Tree) Add(node *Node) {
	t.Nodes = append(t.Nodes, node)
}

// ScrollPane scrolls a single child.
type ScrollPane struct {
	Base
	Style string
	Child Widget
}

func NewScrollPane(style string) *ScrollPane {
	return &ScrollPane{Base: NewBase(), Style: style}
}

// ProgressBar displays a value within a float range.
type ProgressBar struct {
	Base
	Style    string
	Min      float64
	Max      float64
	StepSize float64
	Value    float64
	Vertical bool
}

func NewProgressBar(min, max, step float64, vertical bool, style string) *ProgressBar {
	return &ProgressBar{Base: NewBase(), Min: min, Max: max, StepSize: step, Vertical: vertical, Style: style}
}

// Range exposes the embedded range state, so handlers can treat
// ProgressBar and Slider uniformly.
func (p *ProgressBar) Range() *ProgressBar { return p }

// Slider is an interactive ProgressBar.
type Slider struct {
	ProgressBar
	OnChange string // action reference invoked on value change
}

func NewSlider(min, max, step float64, vertical bool, style string) *Slider {
	return &Slider{ProgressBar: *NewProgressBar(min, max, step, vertical, style)}
}

// SetOnChange records the action reference fired on value change.
func (s *Slider) SetOnChange(action string) { s.OnChange = action }
