package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapterTableCoversContainers(t *testing.T) {
	table := NewAdapterTable()

	group := NewGroup(true)
	child := NewLabel("hi", "default")
	require.NotNil(t, table.For(group))
	require.NoError(t, table.For(group).Append(group, child))
	assert.Equal(t, []Widget{child}, group.Children)

	tbl := NewTable("default")
	require.NotNil(t, table.For(tbl))
	require.NoError(t, table.For(tbl).Append(tbl, NewLabel("a", "default")))
	require.NoError(t, table.For(tbl).Append(tbl, NewLabel("b", "default")))
	assert.Len(t, tbl.Cells, 2)

	tree := NewTree("default")
	require.NotNil(t, table.For(tree))
	require.NoError(t, table.For(tree).Append(tree, NewLabel("leaf", "default")))
	require.Len(t, tree.Nodes, 1)
	assert.Equal(t, "leaf", tree.Nodes[0].Widget.(*Label).Text)
}

func TestAdapterResolutionCached(t *testing.T) {
	table := NewAdapterTable()
	group := NewGroup(false)
	first := table.For(group)
	require.NotNil(t, first)
	assert.Equal(t, first, table.For(group))
}

func TestNonContainersResolveToNil(t *testing.T) {
	table := NewAdapterTable()
	assert.Nil(t, table.For(NewSlider(0, 1, 0.1, false, "default")))
	assert.Nil(t, table.For(nil))
}

func TestScrollPaneSingleChild(t *testing.T) {
	table := NewAdapterTable()
	pane := NewScrollPane("default")
	adapter := table.For(pane)
	require.NotNil(t, adapter)
	require.NoError(t, adapter.Append(pane, NewLabel("a", "default")))
	assert.Error(t, adapter.Append(pane, NewLabel("b", "default")))
}

func TestLabelAdapterAppendsText(t *testing.T) {
	table := NewAdapterTable()
	label := NewLabel("first", "default")
	label.Multiline = true
	adapter := table.For(label)
	require.NotNil(t, adapter)
	assert.Error(t, adapter.Append(label, NewLabel("x", "default")))
	require.NoError(t, adapter.AppendText(label, "second"))
	assert.Equal(t, "first\nsecond", label.Text)
}

func TestCustomAdapterOverridesBuiltin(t *testing.T) {
	table := NewAdapterTable()
	table.Register(func(w Widget) bool {
		_, ok := w.(*Group)
		return ok
	}, treeishGroup{})
	group := NewGroup(true)
	require.NoError(t, table.For(group).AppendText(group, "text"))
	assert.Empty(t, group.Children, "override adapter should have swallowed the text")
}

type treeishGroup struct{}

func (treeishGroup) Append(parent, child Widget) error        { return nil }
func (treeishGroup) AppendText(parent Widget, _ string) error { return nil }

func TestPendingCellConfiguration(t *testing.T) {
	child := NewLabel("x", "default")
	cell := CellFor(child)
	cell.Pad(4)
	cell.EndRow = true

	tbl := NewTable("default")
	table := NewAdapterTable()
	require.NoError(t, table.For(tbl).Append(tbl, child))

	require.Len(t, tbl.Cells, 1)
	got := tbl.Cells[0]
	assert.Equal(t, child, got.Widget)
	assert.Equal(t, 4.0, got.PadLeft)
	assert.True(t, got.EndRow)

	rows := tbl.Rows()
	require.Len(t, rows, 1)
}
