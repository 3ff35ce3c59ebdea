package parser

import (
	"strings"

	"github.com/lmllang/lml/pkg/lml/scene"
	"github.com/lmllang/lml/pkg/lml/syntax"
)

// MacroFunc performs a macro's work when its tag closes. body holds the
// raw, unparsed text between the macro's tags ("" for self-closing
// invocations). Results are typically spliced back into the template
// stream via Splice.
type MacroFunc func(p *Parser, m *MacroTag, body string) error

// MacroTag is a tag that performs parse-time control flow instead of
// producing a widget. Its raw arguments are positional, so named
// attribute parsing is disabled, and its Widget delegates to the nearest
// ancestor.
type MacroTag struct {
	baseTag
	fn MacroFunc
}

// MacroProvider builds a Provider that constructs MacroTags running fn.
func MacroProvider(fn MacroFunc) Provider {
	return func(p *Parser, parent Tag, rawTagData string) (Tag, error) {
		tokens := p.Syntax().SplitAttributes(rawTagData)
		return &MacroTag{
			baseTag: baseTag{
				parser:     p,
				parent:     parent,
				name:       tokens[0],
				rawData:    rawTagData,
				attributes: tokens[1:],
			},
			fn: fn,
		}, nil
	}
}

func (m *MacroTag) Widget() scene.Widget {
	if m.parent == nil {
		return nil
	}
	return m.parent.Widget()
}

func (m *MacroTag) IsMacro() bool { return true }

// HandleChild should not happen for macros; any stray child is passed
// up to the parent tag.
func (m *MacroTag) HandleChild(child Tag) {
	if m.parent != nil {
		m.parent.HandleChild(child)
	}
}

// HandleText is unused: the parse loop hands macros their body raw.
func (m *MacroTag) HandleText(text string) {}

// Close is a no-op; macro work runs through run when the body is known.
func (m *MacroTag) Close() {}

// run executes the macro against its raw body.
func (m *MacroTag) run(body string) error {
	return m.fn(m.parser, m, body)
}

// Splice appends macro output to the template reader, labelled with the
// macro's name for diagnostics.
func (m *MacroTag) Splice(text string) error {
	return m.parser.rd.Append(text, "'"+m.name+"' macro result")
}

// SplitBody divides the raw body around this macro's else divider tag
// (e.g. <@name:else/>). The third result reports whether a divider was
// present.
func (m *MacroTag) SplitBody(body string) (onTrue, onFalse string, hasElse bool) {
	syn := m.parser.Syntax()
	divider := string(syn.TagOpen) + string(syn.MacroMarker) + m.name + syn.ElseMarker
	first, rest := syntax.SplitInTwo(body, divider)
	if rest == "" && len(first) == len(body) {
		return body, "", false
	}
	// Skip the divider tag's own closing characters ("/>" or ">").
	if i := strings.IndexByte(rest, syn.TagClose); i >= 0 {
		rest = rest[i+1:]
	}
	return first, rest, true
}
