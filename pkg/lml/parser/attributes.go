package parser

import (
	"strings"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/scene"
)

// WidgetAttribute mutates a widget from raw markup text. Handlers parse
// via the shared parser utilities and are effectful only on the target.
type WidgetAttribute func(p *Parser, tag Tag, w scene.Widget, raw string) error

// CellAttribute mutates the layout cell a widget occupies inside a
// table. It runs only when the widget is in a cell context.
type CellAttribute func(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, raw string) error

// AttributeRegistry maps attribute names, case-insensitively, to
// handlers in two scopes: cell-scoped handlers apply to widgets inside a
// table cell and take precedence; widget-scoped handlers apply anywhere.
type AttributeRegistry struct {
	widget map[string]WidgetAttribute
	cell   map[string]CellAttribute
}

// NewAttributeRegistry returns an empty registry.
func NewAttributeRegistry() *AttributeRegistry {
	return &AttributeRegistry{
		widget: make(map[string]WidgetAttribute),
		cell:   make(map[string]CellAttribute),
	}
}

// Register binds a widget-scoped handler, last write wins.
func (r *AttributeRegistry) Register(name string, handler WidgetAttribute) {
	r.widget[strings.ToLower(name)] = handler
}

// RegisterCell binds a cell-scoped handler, last write wins.
func (r *AttributeRegistry) RegisterCell(name string, handler CellAttribute) {
	r.cell[strings.ToLower(name)] = handler
}

// Dispatch resolves and invokes the handler for an attribute. Resolution
// order: the cell-scoped handler when the widget sits in a cell, then
// the widget-scoped handler. When neither exists the dispatch fails with
// an unknown-attribute error naming the tag and attribute, surfaced as a
// parse error rather than a silent skip.
func (r *AttributeRegistry) Dispatch(p *Parser, tag Tag, w scene.Widget, cell *scene.Cell, name, raw string) error {
	key := strings.ToLower(name)
	if cell != nil {
		if handler, ok := r.cell[key]; ok {
			return handler(p, tag, w, cell, raw)
		}
	}
	if handler, ok := r.widget[key]; ok {
		return handler(p, tag, w, raw)
	}
	return lmlerrors.UnknownAttribute(tag.Name(), name)
}
