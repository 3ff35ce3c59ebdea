// Package parser implements the LML parser session: the tokenize →
// dispatch → build loop over template text, the registries it owns (tag
// providers, attribute handlers, actions), and the services tags and
// macros call back into.
//
// A session is single-threaded: macro expansion and tag construction
// happen synchronously, in document order. Sessions may share registries
// (so tags registered by one parse resolve in later parses), but shared
// registries must not be mutated from concurrent sessions without
// external synchronization.
package parser

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/reader"
	"github.com/lmllang/lml/pkg/lml/scene"
	"github.com/lmllang/lml/pkg/lml/skin"
	"github.com/lmllang/lml/pkg/lml/syntax"
	"github.com/lmllang/lml/pkg/logging"
)

// Parser is an LML parser session. It owns all mutable registry state;
// there are no ambient globals.
type Parser struct {
	syn        *syntax.Syntax
	rd         *reader.Reader
	tags       *TagRegistry
	attributes *AttributeRegistry
	actions    *ActionRegistry
	adapters   *scene.AdapterTable
	sk         *skin.Skin
	classpath  fs.FS
	maxDepth   int
	args       map[string]string
	errs       []*lmlerrors.Error
	log        zerolog.Logger
}

// Option configures a parser session.
type Option func(*Parser)

// WithSyntax overrides the default markup syntax.
func WithSyntax(s *syntax.Syntax) Option {
	return func(p *Parser) { p.syn = s }
}

// WithSkin sets the skin styles available to builders and renderers.
func WithSkin(s *skin.Skin) Option {
	return func(p *Parser) { p.sk = s }
}

// WithClasspath sets the filesystem searched by classpath imports,
// typically an embed.FS holding bundled templates.
func WithClasspath(fsys fs.FS) Option {
	return func(p *Parser) { p.classpath = fsys }
}

// WithTagRegistry shares an existing tag registry with this session, so
// tags registered dynamically by earlier parses stay resolvable.
func WithTagRegistry(r *TagRegistry) Option {
	return func(p *Parser) { p.tags = r }
}

// WithAttributeRegistry shares an existing attribute registry.
func WithAttributeRegistry(r *AttributeRegistry) Option {
	return func(p *Parser) { p.attributes = r }
}

// WithActions shares an existing action registry.
func WithActions(r *ActionRegistry) Option {
	return func(p *Parser) { p.actions = r }
}

// WithAdapters shares an existing container adapter table.
func WithAdapters(t *scene.AdapterTable) Option {
	return func(p *Parser) { p.adapters = t }
}

// WithMaxDepth bounds template nesting (macro splices plus imports).
func WithMaxDepth(depth int) Option {
	return func(p *Parser) { p.maxDepth = depth }
}

// New creates a parser session with the built-in tags, macros and
// attributes registered.
func New(opts ...Option) *Parser {
	p := &Parser{
		syn:  syntax.Default(),
		args: make(map[string]string),
		log:  logging.GetLogger("parser"),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.tags == nil {
		p.tags = DefaultTagRegistry()
	}
	if p.attributes == nil {
		p.attributes = DefaultAttributeRegistry()
	}
	if p.actions == nil {
		p.actions = NewActionRegistry()
	}
	if p.adapters == nil {
		p.adapters = scene.NewAdapterTable()
	}
	if p.sk == nil {
		p.sk = skin.Default()
	}
	return p
}

// Syntax returns the session's syntax configuration.
func (p *Parser) Syntax() *syntax.Syntax { return p.syn }

// Skin returns the session's skin.
func (p *Parser) Skin() *skin.Skin { return p.sk }

// Tags returns the session's tag provider registry.
func (p *Parser) Tags() *TagRegistry { return p.tags }

// Attributes returns the session's attribute dispatch table.
func (p *Parser) Attributes() *AttributeRegistry { return p.attributes }

// Actions returns the session's action registry.
func (p *Parser) Actions() *ActionRegistry { return p.actions }

// Adapters returns the session's container adapter table.
func (p *Parser) Adapters() *scene.AdapterTable { return p.adapters }

// SetArgument binds a document-level argument available to placeholder
// substitution in every template this session parses.
func (p *Parser) SetArgument(name, value string) {
	p.args[name] = value
}

// Argument returns a document-level argument value.
func (p *Parser) Argument(name string) (string, bool) {
	value, ok := p.args[name]
	return value, ok
}

// Reset clears the session's document arguments and collected errors.
// Registries are kept, so dynamically registered tags stay resolvable.
func (p *Parser) Reset() {
	p.args = make(map[string]string)
	p.errs = nil
}

// Arguments returns a copy of the document-level argument map.
func (p *Parser) Arguments() map[string]string {
	args := make(map[string]string, len(p.args))
	for name, value := range p.args {
		args[name] = value
	}
	return args
}

// Errors returns the recoverable errors collected by the last parse.
func (p *Parser) Errors() []*lmlerrors.Error { return p.errs }

// AddError records a recoverable parse error, stamped with the current
// template source and line.
func (p *Parser) AddError(err *lmlerrors.Error) {
	if p.rd != nil {
		err.WithSource(p.rd.Label(), p.rd.Line())
	}
	p.log.Warn().Str("source", err.Source).Str("tag", err.Tag).Msg(err.Message)
	p.errs = append(p.errs, err)
}

// fail stamps and returns a fatal error, aborting the parse.
func (p *Parser) fail(err *lmlerrors.Error) error {
	if p.rd != nil {
		err.WithSource(p.rd.Label(), p.rd.Line())
	}
	err.Fatal = true
	return err
}

// Parse parses template text and returns the root widgets it produces.
func (p *Parser) Parse(template string) ([]scene.Widget, error) {
	return p.run(template, "template", nil, false)
}

// ParseFile parses the template file at path. Relative imports resolve
// against the file's directory.
func (p *Parser) ParseFile(path string) ([]scene.Widget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, p.fail(lmlerrors.Import("", "cannot read template %q: %v", path, err))
	}
	// The label must match what relative imports of the same file
	// produce, or cycle detection misses self-imports.
	return p.run(string(data), filepath.ToSlash(filepath.Clean(path)), nil, true)
}

// ParseInto parses template text and appends the produced root widgets
// to the caller-supplied root via its container adapter.
func (p *Parser) ParseInto(root scene.Widget, template string) error {
	_, err := p.run(template, "template", root, false)
	return err
}

func (p *Parser) run(template, label string, root scene.Widget, file bool) ([]scene.Widget, error) {
	p.errs = nil
	p.rd = reader.New()
	if p.maxDepth > 0 {
		p.rd.SetMaxDepth(p.maxDepth)
	}
	var err error
	if file {
		err = p.rd.AppendFile(template, label)
	} else {
		err = p.rd.Append(template, label)
	}
	if err != nil {
		return nil, p.fail(lmlerrors.Import("", "%v", err))
	}
	return p.loop(root)
}

// loop drives the tokenize → dispatch → build cycle until the reader is
// exhausted.
func (p *Parser) loop(root scene.Widget) ([]scene.Widget, error) {
	var roots []scene.Widget
	var stack []Tag
	var text strings.Builder

	current := func() Tag {
		if len(stack) == 0 {
			return nil
		}
		return stack[len(stack)-1]
	}
	attach := func(t Tag) {
		if t.IsMacro() || t.Widget() == nil {
			return
		}
		if parent := current(); parent != nil {
			parent.HandleChild(t)
			return
		}
		if root != nil {
			if adapter := p.adapters.For(root); adapter != nil {
				if err := adapter.Append(root, t.Widget()); err != nil {
					p.AddError(lmlerrors.Nesting(t.Name(), "cannot add root child: %v", err))
				}
				return
			}
			p.AddError(lmlerrors.Nesting(t.Name(), "supplied root cannot hold children"))
			return
		}
		roots = append(roots, t.Widget())
	}
	flushText := func() {
		raw := text.String()
		text.Reset()
		if strings.TrimSpace(raw) == "" {
			return
		}
		for _, line := range strings.Split(raw, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if tag := current(); tag != nil {
				tag.HandleText(line)
				continue
			}
			parsed := p.ParseString(line, root)
			if parsed == "" {
				continue
			}
			if root != nil {
				if adapter := p.adapters.For(root); adapter != nil {
					if err := adapter.AppendText(root, parsed); err != nil {
						p.AddError(lmlerrors.Nesting("", "cannot add root text: %v", err))
					}
					continue
				}
			}
			roots = append(roots, scene.NewLabel(parsed, "default"))
		}
	}

	for {
		c, ok := p.rd.Next()
		if !ok {
			break
		}
		if c != p.syn.TagOpen {
			text.WriteByte(c)
			continue
		}
		if next, ok := p.rd.Peek(); ok && next == '!' {
			if err := p.skipComment(); err != nil {
				return roots, err
			}
			continue
		}
		raw, ok := p.readTagData()
		if !ok {
			p.AddError(lmlerrors.Parse("unterminated tag near end of template"))
			break
		}
		flushText()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			p.AddError(lmlerrors.Parse("empty tag"))
			continue
		}

		if trimmed[0] == p.syn.ClosingMarker {
			name := strings.TrimSpace(trimmed[1:])
			name = strings.TrimPrefix(name, string(p.syn.MacroMarker))
			tag := current()
			if tag == nil || !strings.EqualFold(tag.Name(), name) {
				p.AddError(lmlerrors.Nesting(name, "closing tag %q does not match any open tag", name))
				continue
			}
			stack = stack[:len(stack)-1]
			tag.Close()
			p.log.Debug().Str("tag", tag.Name()).Msg("close tag")
			attach(tag)
			continue
		}

		selfClosing := false
		if trimmed[len(trimmed)-1] == p.syn.ClosingMarker {
			selfClosing = true
			trimmed = strings.TrimSpace(trimmed[:len(trimmed)-1])
		}
		if trimmed == "" {
			p.AddError(lmlerrors.Parse("empty tag"))
			continue
		}

		if trimmed[0] == p.syn.MacroMarker {
			if err := p.openMacro(current(), trimmed[1:], selfClosing); err != nil {
				return roots, err
			}
			continue
		}

		name := firstToken(trimmed)
		provider := p.tags.Tag(name)
		if provider == nil {
			return roots, p.fail(lmlerrors.UnknownTag(name))
		}
		p.log.Debug().Str("tag", name).Msg("open tag")
		tag, err := provider(p, current(), trimmed)
		if err != nil {
			le, ok := err.(*lmlerrors.Error)
			if !ok {
				le = lmlerrors.Construction(name, "%v", err)
			}
			if le.Fatal {
				return roots, p.fail(le)
			}
			// The tag's construction failed; drop its whole subtree.
			p.AddError(le)
			if !selfClosing {
				if err := p.skipSubtree(name); err != nil {
					return roots, err
				}
			}
			continue
		}
		if selfClosing {
			tag.Close()
			attach(tag)
			continue
		}
		stack = append(stack, tag)
	}

	flushText()
	for len(stack) > 0 {
		tag := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p.AddError(lmlerrors.Nesting(tag.Name(), "tag %q was never closed", tag.Name()))
		tag.Close()
		attach(tag)
	}
	return roots, nil
}

// openMacro constructs a macro tag, captures its raw body, and runs it.
func (p *Parser) openMacro(parent Tag, rawTagData string, selfClosing bool) error {
	name := firstToken(rawTagData)
	provider := p.tags.Macro(name)
	if provider == nil {
		return p.fail(lmlerrors.UnknownMacro(name))
	}
	p.log.Debug().Str("macro", name).Msg("open macro")
	tag, err := provider(p, parent, rawTagData)
	if err != nil {
		return p.failFrom(err, name)
	}
	macro, ok := tag.(*MacroTag)
	if !ok {
		return p.fail(lmlerrors.Macro(name, "provider for macro %q did not produce a macro tag", name))
	}
	body := ""
	if !selfClosing {
		body, err = p.readRawBody(name)
		if err != nil {
			return err
		}
	}
	if err := macro.run(body); err != nil {
		return p.failFrom(err, name)
	}
	return nil
}

// failFrom promotes an arbitrary error to a stamped fatal parse error.
func (p *Parser) failFrom(err error, tag string) error {
	if le, ok := err.(*lmlerrors.Error); ok {
		return p.fail(le)
	}
	return p.fail(lmlerrors.Macro(tag, "%v", err))
}

// readTagData consumes characters up to the tag closing marker,
// honoring quotes, and returns the raw tag text.
func (p *Parser) readTagData() (string, bool) {
	var sb strings.Builder
	var quote byte
	for {
		c, ok := p.rd.Next()
		if !ok {
			return sb.String(), false
		}
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case syntax.IsQuote(c):
			quote = c
		case c == p.syn.TagClose:
			return sb.String(), true
		}
		sb.WriteByte(c)
	}
}

// skipComment consumes an HTML-style comment after its opening '<' has
// been read. Returns once "-->" is seen.
func (p *Parser) skipComment() error {
	var last3 [3]byte
	for {
		c, ok := p.rd.Next()
		if !ok {
			p.AddError(lmlerrors.Parse("unterminated comment"))
			return nil
		}
		last3[0], last3[1], last3[2] = last3[1], last3[2], c
		if last3 == [3]byte{'-', '-', p.syn.TagClose} {
			return nil
		}
	}
}

// readRawBody consumes the raw body of a macro tag up to its matching
// closing tag, tracking nested invocations of the same macro name.
func (p *Parser) readRawBody(name string) (string, error) {
	var body strings.Builder
	depth := 1
	for {
		c, ok := p.rd.Next()
		if !ok {
			return "", p.fail(lmlerrors.Macro(name, "macro %q is never closed", name))
		}
		if c != p.syn.TagOpen {
			body.WriteByte(c)
			continue
		}
		if next, ok := p.rd.Peek(); ok && next == '!' {
			if err := p.skipComment(); err != nil {
				return "", err
			}
			continue
		}
		raw, ok := p.readTagData()
		if !ok {
			return "", p.fail(lmlerrors.Macro(name, "macro %q is never closed", name))
		}
		trimmed := strings.TrimSpace(raw)
		macroName := strings.TrimPrefix(trimmed, string(p.syn.MacroMarker))
		if strings.HasPrefix(trimmed, string(p.syn.ClosingMarker)) {
			closing := strings.TrimSpace(trimmed[1:])
			closing = strings.TrimPrefix(closing, string(p.syn.MacroMarker))
			if strings.EqualFold(closing, name) {
				depth--
				if depth == 0 {
					return body.String(), nil
				}
			}
		} else if strings.EqualFold(firstToken(macroName), name) && !strings.HasSuffix(trimmed, string(p.syn.ClosingMarker)) {
			depth++
		}
		body.WriteByte(p.syn.TagOpen)
		body.WriteString(raw)
		body.WriteByte(p.syn.TagClose)
	}
}

// skipSubtree discards tags and text up to the closing tag matching
// name, used after a tag's construction fails.
func (p *Parser) skipSubtree(name string) error {
	_, err := p.readRawBody(name)
	return err
}

func firstToken(raw string) string {
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			return raw[:i]
		}
	}
	return raw
}
