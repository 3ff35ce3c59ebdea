package term

import (
	"fmt"
	"strings"

	"github.com/lmllang/lml/pkg/lml/scene"
)

// Outline writes a plain structural view of widget trees, one widget
// per line, indented by depth. It carries no styling, so it is stable
// across terminals and suits template checking and diffing.
func Outline(widgets []scene.Widget) string {
	var sb strings.Builder
	for _, w := range widgets {
		outlineWidget(&sb, w, 0)
	}
	return sb.String()
}

func outlineWidget(sb *strings.Builder, w scene.Widget, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := w.(type) {
	case *scene.Label:
		fmt.Fprintf(sb, "%slabel%s %q\n", indent, idSuffix(v), v.Text)
	case *scene.TextButton:
		fmt.Fprintf(sb, "%sbutton%s %q\n", indent, idSuffix(v), v.Text)
	case *scene.Group:
		orientation := "horizontal"
		if v.Vertical {
			orientation = "vertical"
		}
		fmt.Fprintf(sb, "%sgroup%s (%s)\n", indent, idSuffix(v), orientation)
		for _, child := range v.Children {
			outlineWidget(sb, child, depth+1)
		}
	case *scene.Table:
		fmt.Fprintf(sb, "%stable%s (%d cells)\n", indent, idSuffix(v), len(v.Cells))
		for _, cell := range v.Cells {
			outlineWidget(sb, cell.Widget, depth+1)
		}
	case *scene.Tree:
		fmt.Fprintf(sb, "%stree%s (%d nodes)\n", indent, idSuffix(v), len(v.Nodes))
		for _, node := range v.Nodes {
			outlineNode(sb, node, depth+1)
		}
	case *scene.ScrollPane:
		fmt.Fprintf(sb, "%sscrollPane%s\n", indent, idSuffix(v))
		if v.Child != nil {
			outlineWidget(sb, v.Child, depth+1)
		}
	case *scene.Slider:
		fmt.Fprintf(sb, "%sslider%s (%g..%g, value %g)\n", indent, idSuffix(v), v.Min, v.Max, v.Value)
	case *scene.ProgressBar:
		fmt.Fprintf(sb, "%sprogressBar%s (%g..%g, value %g)\n", indent, idSuffix(v), v.Min, v.Max, v.Value)
	default:
		fmt.Fprintf(sb, "%s%T\n", indent, w)
	}
}

func outlineNode(sb *strings.Builder, node *scene.Node, depth int) {
	outlineWidget(sb, node.Widget, depth)
	for _, child := range node.Children {
		outlineNode(sb, child, depth+1)
	}
}

func idSuffix(w scene.Widget) string {
	if id := w.ID(); id != "" {
		return " #" + id
	}
	return ""
}
