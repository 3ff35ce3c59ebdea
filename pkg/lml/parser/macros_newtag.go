package parser

import (
	"fmt"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/scene"
)

// newTagMacro registers new actor tags from within a template. It takes
// at least two positional attributes: an array of tag names and an
// action reference that produces a widget from a builder. A third
// attribute may reference an action producing a custom builder.
//
// The registered provider behaves like the built-in container tags: if
// the produced widget is a recognized container kind its children and
// plain text are handled through the container adapter table, and a
// widget with a pack step is packed on close. Registration outlives the
// current parse for any session sharing this tag registry.
func newTagMacro(p *Parser, m *MacroTag, body string) error {
	attributes := m.Attributes()
	if len(attributes) < 2 {
		return lmlerrors.Macro(m.Name(),
			"cannot register a new tag without two attributes: tag names array and a builder-consuming widget creator")
	}
	names := p.ParseArray(attributes[0], m.Widget())
	if len(names) == 0 {
		return lmlerrors.Macro(m.Name(), "macro %q received an empty tag names array", m.Name())
	}
	creator := p.ParseAction(attributes[1], m.Widget())
	if creator == nil {
		return lmlerrors.Macro(m.Name(),
			"cannot resolve widget creator action %q: expected a registered action consuming a builder and producing a widget",
			attributes[1])
	}
	var builderCreator Action
	if len(attributes) > 2 {
		builderCreator = p.ParseAction(attributes[2], m.Widget())
		if builderCreator == nil {
			return lmlerrors.Macro(m.Name(), "cannot resolve builder creator action %q", attributes[2])
		}
	}

	p.tags.RegisterTag(ActorProvider(ActorSpec{
		Builder: func() *scene.Builder {
			if builderCreator != nil {
				if builder, ok := builderCreator(nil).(*scene.Builder); ok {
					return builder
				}
			}
			return scene.NewBuilder()
		},
		Create: func(p *Parser, b *scene.Builder) (scene.Widget, error) {
			widget, ok := creator(b).(scene.Widget)
			if !ok {
				return nil, fmt.Errorf("action did not produce a widget")
			}
			return widget, nil
		},
	}), names...)
	return nil
}
