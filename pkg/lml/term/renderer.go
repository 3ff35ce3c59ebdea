// Package term renders widget trees as styled terminal output. It is
// the reference backend for parsed templates: every built-in widget
// kind has a rendering, styled through the session's skin.
package term

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lmllang/lml/pkg/lml/scene"
	"github.com/lmllang/lml/pkg/lml/skin"
)

const barWidth = 20

// Renderer draws widget trees using skin styles.
type Renderer struct {
	sk *skin.Skin
}

// New returns a renderer drawing with the given skin. A nil skin falls
// back to the default skin.
func New(sk *skin.Skin) *Renderer {
	if sk == nil {
		sk = skin.Default()
	}
	return &Renderer{sk: sk}
}

// RenderAll renders root widgets stacked vertically.
func (r *Renderer) RenderAll(widgets []scene.Widget) string {
	var parts []string
	for _, w := range widgets {
		if rendered := r.Render(w); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Render draws a single widget tree. Invisible widgets render as "".
func (r *Renderer) Render(w scene.Widget) string {
	switch v := w.(type) {
	case *scene.Label:
		if !v.Visible {
			return ""
		}
		return r.style("label", v.Style).Render(v.Text)
	case *scene.TextButton:
		if !v.Visible {
			return ""
		}
		text := "[ " + v.Text + " ]"
		if v.Disabled {
			return r.style("button", v.Style).Faint(true).Render(text)
		}
		return r.style("button", v.Style).Render(text)
	case *scene.Group:
		return r.renderGroup(v)
	case *scene.Table:
		return r.renderTable(v)
	case *scene.Tree:
		return r.renderTree(v)
	case *scene.ScrollPane:
		if !v.Visible || v.Child == nil {
			return ""
		}
		return r.style("scrollpane", v.Style).Render(r.Render(v.Child))
	case *scene.Slider:
		if !v.Visible {
			return ""
		}
		return r.style("slider", v.Style).Render(renderBar(&v.ProgressBar))
	case *scene.ProgressBar:
		if !v.Visible {
			return ""
		}
		return r.style("progressbar", v.Style).Render(renderBar(v))
	}
	return ""
}

func (r *Renderer) renderGroup(g *scene.Group) string {
	if !g.Visible {
		return ""
	}
	var parts []string
	for _, child := range g.Children {
		if rendered := r.Render(child); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	if g.Vertical {
		return lipgloss.JoinVertical(lipgloss.Left, parts...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (r *Renderer) renderTable(t *scene.Table) string {
	if !t.Visible {
		return ""
	}
	var rows []string
	for _, row := range t.Rows() {
		var cells []string
		for _, cell := range row {
			rendered := r.Render(cell.Widget)
			if rendered == "" {
				continue
			}
			cellStyle := lipgloss.NewStyle().
				PaddingLeft(int(cell.PadLeft)).
				PaddingRight(int(cell.PadRight)).
				PaddingTop(int(cell.PadTop)).
				PaddingBottom(int(cell.PadBottom))
			cells = append(cells, cellStyle.Render(rendered))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return r.style("table", t.Style).
		PaddingLeft(int(t.PadLeft)).
		PaddingRight(int(t.PadRight)).
		PaddingTop(int(t.PadTop)).
		PaddingBottom(int(t.PadBottom)).
		Render(body)
}

func (r *Renderer) renderTree(t *scene.Tree) string {
	if !t.Visible {
		return ""
	}
	var sb strings.Builder
	for i, node := range t.Nodes {
		r.renderNode(&sb, node, "", i == len(t.Nodes)-1)
	}
	return r.style("tree", t.Style).Render(strings.TrimRight(sb.String(), "\n"))
}

func (r *Renderer) renderNode(sb *strings.Builder, node *scene.Node, prefix string, last bool) {
	branch, childPrefix := "├── ", prefix+"│   "
	if last {
		branch, childPrefix = "└── ", prefix+"    "
	}
	rendered := r.Render(node.Widget)
	sb.WriteString(prefix + branch + rendered + "\n")
	for i, child := range node.Children {
		r.renderNode(sb, child, childPrefix, i == len(node.Children)-1)
	}
}

// renderBar draws a range widget as a fixed-width value bar.
func renderBar(bar *scene.ProgressBar) string {
	span := bar.Max - bar.Min
	fraction := 0.0
	if span > 0 {
		fraction = (bar.Value - bar.Min) / span
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*barWidth + 0.5)
	return fmt.Sprintf("[%s%s] %3.0f%%",
		strings.Repeat("█", filled),
		strings.Repeat("░", barWidth-filled),
		fraction*100)
}

// style resolves the skin style for a widget kind and converts it to a
// lipgloss style.
func (r *Renderer) style(kind, name string) lipgloss.Style {
	style := lipgloss.NewStyle()
	resolved, ok := r.sk.Style(kind, name)
	if !ok {
		return style
	}
	if resolved.FontColor != "" {
		style = style.Foreground(lipgloss.Color(resolved.FontColor))
	}
	if resolved.Background != "" {
		style = style.Background(lipgloss.Color(resolved.Background))
	}
	if resolved.Bold {
		style = style.Bold(true)
	}
	if resolved.Padding > 0 {
		style = style.Padding(int(resolved.Padding))
	}
	if border := borderFor(resolved.Border); border != nil {
		style = style.Border(*border)
	}
	return style
}

func borderFor(name string) *lipgloss.Border {
	var border lipgloss.Border
	switch name {
	case "normal":
		border = lipgloss.NormalBorder()
	case "rounded":
		border = lipgloss.RoundedBorder()
	case "double":
		border = lipgloss.DoubleBorder()
	case "thick":
		border = lipgloss.ThickBorder()
	default:
		return nil
	}
	return &border
}
