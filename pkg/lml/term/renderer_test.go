package term

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lmllang/lml/pkg/lml/scene"
	"github.com/lmllang/lml/pkg/lml/skin"
)

func TestRenderLabel(t *testing.T) {
	r := New(nil)
	out := r.Render(scene.NewLabel("hello", "default"))
	assert.Contains(t, out, "hello")
}

func TestRenderHiddenWidgetIsEmpty(t *testing.T) {
	r := New(nil)
	label := scene.NewLabel("secret", "default")
	label.SetVisible(false)
	assert.Empty(t, r.Render(label))
}

func TestRenderButtonBrackets(t *testing.T) {
	r := New(nil)
	out := r.Render(scene.NewTextButton("OK", "default"))
	assert.Contains(t, out, "[ OK ]")
}

func TestRenderGroupStacksChildren(t *testing.T) {
	r := New(nil)
	group := scene.NewGroup(true)
	group.AddChild(scene.NewLabel("one", "default"))
	group.AddChild(scene.NewLabel("two", "default"))
	out := r.Render(group)
	require.Contains(t, out, "one")
	require.Contains(t, out, "two")
	assert.Less(t, strings.Index(out, "one"), strings.Index(out, "two"))
}

func TestRenderTableRows(t *testing.T) {
	r := New(nil)
	table := scene.NewTable("default")
	table.Add(scene.NewLabel("a", "default"))
	table.Row()
	table.Add(scene.NewLabel("b", "default"))
	out := r.Render(table)
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
}

func TestRenderTreeGlyphs(t *testing.T) {
	r := New(nil)
	tree := scene.NewTree("default")
	tree.Add(&scene.Node{Widget: scene.NewLabel("first", "default")})
	tree.Add(&scene.Node{Widget: scene.NewLabel("last", "default")})
	out := r.Render(tree)
	assert.Contains(t, out, "├── first")
	assert.Contains(t, out, "└── last")
}

func TestRenderBarFill(t *testing.T) {
	r := New(nil)
	bar := scene.NewProgressBar(0, 100, 1, false, "default")
	bar.Value = 50
	out := r.Render(bar)
	assert.Contains(t, out, " 50%")
	assert.Equal(t, barWidth/2, strings.Count(out, "█"))

	bar.Value = 200 // clamped
	assert.Contains(t, r.Render(bar), "100%")
}

func TestRenderUsesSkinStyles(t *testing.T) {
	sk, err := skin.Parse([]byte(`
styles:
  label:
    default:
      padding: 1
`))
	require.NoError(t, err)
	r := New(sk)
	out := r.Render(scene.NewLabel("pad", "default"))
	// Vertical padding yields extra lines around the text.
	assert.True(t, strings.Count(out, "\n") >= 2, "expected padded output, got %q", out)
}

func TestOutline(t *testing.T) {
	group := scene.NewGroup(true)
	label := scene.NewLabel("hi", "default")
	label.SetID("greeting")
	group.AddChild(label)
	table := scene.NewTable("default")
	table.Add(scene.NewTextButton("go", "default"))
	group.AddChild(table)

	out := Outline([]scene.Widget{group})
	assert.Equal(t, `group (vertical)
  label #greeting "hi"
  table (1 cells)
    button "go"
`, out)
}
