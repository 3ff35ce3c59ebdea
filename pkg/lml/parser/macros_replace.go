package parser

import (
	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/syntax"
)

// replaceMacro rewrites its body with a private argument map built from
// its name=value attributes and feeds the result back into the template
// stream for re-parsing as ordinary markup.
//
// The private map is scoped to this invocation only: the document-level
// argument namespace is never consulted and never mutated, so macro
// arguments cannot leak into or be shadowed by global ones. Placeholders
// the map does not know stay untouched for later passes.
func replaceMacro(p *Parser, m *MacroTag, body string) error {
	private := make(map[string]string, len(m.Attributes()))
	assign := string(p.Syntax().AttributeAssign)
	for _, attribute := range m.Attributes() {
		name, value := syntax.SplitInTwo(attribute, assign)
		if name == "" {
			return lmlerrors.Macro(m.Name(), "macro %q: malformed argument %q", m.Name(), attribute)
		}
		private[name] = syntax.StripQuotes(value)
	}
	return m.Splice(p.Syntax().Substitute(body, private))
}

// argumentMacro assigns a document-level argument from inside a
// template: two positional attributes, the argument name and its value.
func argumentMacro(p *Parser, m *MacroTag, body string) error {
	attributes := m.Attributes()
	if len(attributes) != 2 {
		return lmlerrors.Macro(m.Name(),
			"macro %q expects exactly two attributes: argument name and value, got %d", m.Name(), len(attributes))
	}
	name := p.ParseString(attributes[0], m.Widget())
	value := p.ParseString(attributes[1], m.Widget())
	p.SetArgument(name, value)
	return nil
}
