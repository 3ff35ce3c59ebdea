package scene

import "fmt"

// Adapter encapsulates a container kind's child-append policy. The
// engine resolves an adapter once per widget and uses it for every
// structural child and synthesized text child, so widget-kind dispatch
// lives in exactly one table instead of scattered type switches.
type Adapter interface {
	// Append attaches child to parent following the container's policy.
	Append(parent, child Widget) error
	// AppendText attaches plain text to parent: text-bearing widgets
	// append it, containers receive a synthesized label child.
	AppendText(parent Widget, text string) error
}

type adapterEntry struct {
	match   func(Widget) bool
	adapter Adapter
}

// AdapterTable maps widget kinds to adapters. Entries registered later
// take precedence, so hosts can override the built-in policies.
type AdapterTable struct {
	entries []adapterEntry
}

// NewAdapterTable returns a table with the built-in container kinds
// registered: label-like, group-like, table-like, tree-like and
// single-child panes.
func NewAdapterTable() *AdapterTable {
	t := &AdapterTable{}
	t.Register(isLabel, labelAdapter{})
	t.Register(isButton, buttonAdapter{})
	t.Register(isGroup, groupAdapter{})
	t.Register(isTable, tableAdapter{})
	t.Register(isTree, treeAdapter{})
	t.Register(isScrollPane, scrollAdapter{})
	return t
}

// Register adds an adapter for every widget matched by match. Later
// registrations win over earlier ones.
func (t *AdapterTable) Register(match func(Widget) bool, adapter Adapter) {
	t.entries = append([]adapterEntry{{match, adapter}}, t.entries...)
}

const adapterKey = "lml.adapter"

// For resolves the adapter for w, or nil if w accepts no children. The
// resolution result is cached on the widget.
func (t *AdapterTable) For(w Widget) Adapter {
	if w == nil {
		return nil
	}
	if cached, ok := w.Get(adapterKey).(Adapter); ok {
		return cached
	}
	for _, entry := range t.entries {
		if entry.match(w) {
			w.Set(adapterKey, entry.adapter)
			return entry.adapter
		}
	}
	return nil
}

func isLabel(w Widget) bool      { _, ok := w.(*Label); return ok }
func isButton(w Widget) bool     { _, ok := w.(*TextButton); return ok }
func isGroup(w Widget) bool      { _, ok := w.(*Group); return ok }
func isTable(w Widget) bool      { _, ok := w.(*Table); return ok }
func isTree(w Widget) bool       { _, ok := w.(*Tree); return ok }
func isScrollPane(w Widget) bool { _, ok := w.(*ScrollPane); return ok }

const (
	cellKey = "lml.cell"
	nodeKey = "lml.node"
)

// CellFor returns the pending table cell configured for child, creating
// it when absent. Cell-scoped attributes configure this cell before the
// child is attached to its table.
func CellFor(child Widget) *Cell {
	if cell, ok := child.Get(cellKey).(*Cell); ok {
		return cell
	}
	cell := &Cell{Colspan: 1}
	child.Set(cellKey, cell)
	return cell
}

// NodeFor returns the pending tree node wrapping child, creating it when
// absent.
func NodeFor(child Widget) *Node {
	if node, ok := child.Get(nodeKey).(*Node); ok {
		return node
	}
	node := &Node{}
	child.Set(nodeKey, node)
	return node
}

type labelAdapter struct{}

func (labelAdapter) Append(parent, child Widget) error {
	return fmt.Errorf("labels cannot hold child widgets")
}

func (labelAdapter) AppendText(parent Widget, text string) error {
	parent.(*Label).Append(text)
	return nil
}

type buttonAdapter struct{}

func (buttonAdapter) Append(parent, child Widget) error {
	return fmt.Errorf("buttons cannot hold child widgets")
}

func (buttonAdapter) AppendText(parent Widget, text string) error {
	button := parent.(*TextButton)
	if button.Text != "" {
		text = button.Text + text
	}
	button.SetText(text)
	return nil
}

type groupAdapter struct{}

func (groupAdapter) Append(parent, child Widget) error {
	parent.(*Group).AddChild(child)
	return nil
}

func (groupAdapter) AppendText(parent Widget, text string) error {
	parent.(*Group).AddChild(NewLabel(text, "default"))
	return nil
}

type tableAdapter struct{}

func (tableAdapter) Append(parent, child Widget) error {
	table := parent.(*Table)
	cell := CellFor(child)
	cell.Widget = child
	table.Cells = append(table.Cells, cell)
	return nil
}

func (tableAdapter) AppendText(parent Widget, text string) error {
	return tableAdapter{}.Append(parent, NewLabel(text, "default"))
}

type treeAdapter struct{}

func (treeAdapter) Append(parent, child Widget) error {
	tree := parent.(*Tree)
	node := NodeFor(child)
	node.Widget = child
	tree.Add(node)
	return nil
}

func (treeAdapter) AppendText(parent Widget, text string) error {
	return treeAdapter{}.Append(parent, NewLabel(text, "default"))
}

type scrollAdapter struct{}

func (scrollAdapter) Append(parent, child Widget) error {
	pane := parent.(*ScrollPane)
	if pane.Child != nil {
		return fmt.Errorf("scroll pane already holds a child")
	}
	pane.Child = child
	return nil
}

func (scrollAdapter) AppendText(parent Widget, text string) error {
	return scrollAdapter{}.Append(parent, NewLabel(text, "default"))
}
