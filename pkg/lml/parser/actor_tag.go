package parser

import (
	"strings"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/scene"
	"github.com/lmllang/lml/pkg/lml/syntax"
)

// ActorSpec describes an actor tag kind: how to stage its builder, how
// to construct the widget, and the composed strategies replacing the
// open/child/text/close behavior when the defaults do not fit.
type ActorSpec struct {
	// Builder returns a fresh staging builder. Nil means scene.NewBuilder.
	Builder func() *scene.Builder
	// Create constructs the widget from the staged builder. Required.
	Create func(p *Parser, b *scene.Builder) (scene.Widget, error)
	// OnChild overrides the adapter-based child policy.
	OnChild ChildPolicy
	// OnText overrides the adapter-based plain text policy.
	OnText TextPolicy
	// OnClose overrides the default finalizer (Pack for Layout widgets).
	OnClose CloseFunc
}

// actorTag produces a widget and participates in the widget tree.
type actorTag struct {
	baseTag
	widget scene.Widget
	spec   ActorSpec
	closed bool
}

func (t *actorTag) Widget() scene.Widget { return t.widget }
func (t *actorTag) IsMacro() bool        { return false }

func (t *actorTag) HandleChild(child Tag) {
	if child.Widget() == nil {
		return
	}
	if t.spec.OnChild != nil {
		t.spec.OnChild(t.parser, t, child)
		return
	}
	adapter := t.parser.adapters.For(t.widget)
	if adapter == nil {
		t.parser.AddError(lmlerrors.Nesting(t.name, "tag %q cannot hold child %q", t.name, child.Name()))
		return
	}
	if err := adapter.Append(t.widget, child.Widget()); err != nil {
		t.parser.AddError(lmlerrors.Nesting(t.name, "cannot add child %q: %v", child.Name(), err))
	}
}

func (t *actorTag) HandleText(text string) {
	if t.spec.OnText != nil {
		t.spec.OnText(t.parser, t, text)
		return
	}
	parsed := t.parser.ParseString(text, t.widget)
	if parsed == "" {
		return
	}
	adapter := t.parser.adapters.For(t.widget)
	if adapter == nil {
		t.parser.AddError(lmlerrors.Nesting(t.name, "tag %q cannot hold plain text", t.name))
		return
	}
	if err := adapter.AppendText(t.widget, parsed); err != nil {
		t.parser.AddError(lmlerrors.Nesting(t.name, "cannot add text: %v", err))
	}
}

func (t *actorTag) Close() {
	if t.closed {
		return
	}
	t.closed = true
	if t.spec.OnClose != nil {
		t.spec.OnClose(t.parser, t)
		return
	}
	if layout, ok := t.widget.(scene.Layout); ok {
		layout.Pack()
	}
}

// ActorProvider builds a Provider from an ActorSpec. The provider splits
// the raw tag data into attribute tokens, runs the builder attribute
// pass, constructs the widget, and dispatches the remaining named
// attributes.
func ActorProvider(spec ActorSpec) Provider {
	return func(p *Parser, parent Tag, rawTagData string) (Tag, error) {
		tokens := p.Syntax().SplitAttributes(rawTagData)
		name := tokens[0]
		t := &actorTag{
			baseTag: baseTag{
				parser:     p,
				parent:     parent,
				name:       name,
				rawData:    rawTagData,
				attributes: tokens[1:],
			},
			spec: spec,
		}

		builder := scene.NewBuilder()
		if spec.Builder != nil {
			builder = spec.Builder()
		}

		// Builder attributes are consumed here; the rest are dispatched
		// against the widget once it exists.
		type namedAttribute struct{ key, value string }
		var pending []namedAttribute
		assign := string(p.Syntax().AttributeAssign)
		for _, raw := range t.attributes {
			key, value := syntax.SplitInTwo(raw, assign)
			if value == "" && !strings.Contains(raw, assign) {
				p.AddError(lmlerrors.Parse("malformed attribute %q on tag %q: expected name%svalue", raw, name, assign))
				continue
			}
			if apply := builderAttribute(key); apply != nil {
				if err := apply(p, builder, value); err != nil {
					return nil, lmlerrors.Construction(name, "attribute %q: %v", key, err)
				}
				continue
			}
			pending = append(pending, namedAttribute{key, value})
		}

		widget, err := spec.Create(p, builder)
		if err != nil {
			return nil, lmlerrors.Construction(name, "%v", err)
		}
		t.widget = widget

		var cell *scene.Cell
		if parent != nil {
			if _, inTable := parent.Widget().(*scene.Table); inTable {
				cell = scene.CellFor(widget)
			}
		}
		for _, attr := range pending {
			if err := p.attributes.Dispatch(p, t, widget, cell, attr.key, attr.value); err != nil {
				if le, ok := err.(*lmlerrors.Error); ok {
					p.AddError(le)
				} else {
					p.AddError(lmlerrors.Parse("attribute %q on tag %q: %v", attr.key, name, err))
				}
			}
		}
		return t, nil
	}
}

// builderAttributes stage constructor parameters before the widget
// exists. They are shared by every actor tag kind and consumed before
// regular attribute dispatch.
func builderAttribute(name string) func(*Parser, *scene.Builder, string) error {
	switch strings.ToLower(name) {
	case "style", "stylename":
		return func(p *Parser, b *scene.Builder, raw string) error {
			b.StyleName = p.ParseString(raw, nil)
			return nil
		}
	case "min":
		return func(p *Parser, b *scene.Builder, raw string) error {
			value, err := p.ParseFloat(raw, nil)
			b.Min = value
			return err
		}
	case "max":
		return func(p *Parser, b *scene.Builder, raw string) error {
			value, err := p.ParseFloat(raw, nil)
			b.Max = value
			return err
		}
	case "stepsize", "step":
		return func(p *Parser, b *scene.Builder, raw string) error {
			value, err := p.ParseFloat(raw, nil)
			b.StepSize = value
			return err
		}
	case "vertical":
		return func(p *Parser, b *scene.Builder, raw string) error {
			value, err := p.ParseBool(raw, nil)
			b.Vertical = value
			return err
		}
	case "text":
		return func(p *Parser, b *scene.Builder, raw string) error {
			b.Text = p.ParseString(raw, nil)
			return nil
		}
	}
	return nil
}
