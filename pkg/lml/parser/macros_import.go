package parser

import (
	"io"
	"os"
	"path"
	"strings"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
)

// Resolver locates template sources for import macros. The three
// built-in strategies share this contract: bundled-filesystem lookup,
// absolute paths, and paths relative to the importing template. The
// returned label is the canonical name of the resolved source; it tags
// the spliced text for diagnostics and drives cyclic-import detection.
type Resolver interface {
	Resolve(nameOrPath string) (stream io.ReadCloser, label string, err error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(nameOrPath string) (io.ReadCloser, string, error)

func (f ResolverFunc) Resolve(nameOrPath string) (io.ReadCloser, string, error) {
	return f(nameOrPath)
}

// classpathResolver reads templates bundled with the application,
// typically from an embed.FS.
func (p *Parser) classpathResolver() Resolver {
	return ResolverFunc(func(name string) (io.ReadCloser, string, error) {
		if p.classpath == nil {
			return nil, "", os.ErrNotExist
		}
		name = strings.TrimPrefix(name, "/")
		stream, err := p.classpath.Open(name)
		return stream, name, err
	})
}

// absoluteResolver reads templates by absolute filesystem path.
func (p *Parser) absoluteResolver() Resolver {
	return ResolverFunc(func(name string) (io.ReadCloser, string, error) {
		stream, err := os.Open(name)
		return stream, path.Clean(name), err
	})
}

// relativeResolver reads templates relative to the file currently being
// parsed, falling back to the classpath when the session was not started
// from a file.
func (p *Parser) relativeResolver() Resolver {
	return ResolverFunc(func(name string) (io.ReadCloser, string, error) {
		base := p.rd.FileLabel()
		if base == "" {
			return p.classpathResolver().Resolve(name)
		}
		resolved := path.Join(path.Dir(base), name)
		stream, err := os.Open(resolved)
		return stream, resolved, err
	})
}

// importMacro builds a MacroFunc splicing an external template into the
// parse stream at the import site. The first attribute names the
// template; an optional second attribute names a placeholder in the
// imported text that is replaced by the macro's raw body (so imports can
// be parameterized with content).
//
// The resolved stream is fully read and closed before control returns to
// the parse loop, also on failure. The spliced text carries the import
// origin as its diagnostic label; importing a template that is still
// being read is detected as a cycle and fails fatally.
func importMacro(resolve func(p *Parser) Resolver) MacroFunc {
	return func(p *Parser, m *MacroTag, body string) error {
		attributes := m.Attributes()
		if len(attributes) == 0 || len(attributes) > 2 {
			return lmlerrors.Macro(m.Name(),
				"macro %q expects a template path and optionally a content argument name, got %d attributes",
				m.Name(), len(attributes))
		}
		templateName := p.ParseString(attributes[0], m.Widget())
		content, label, err := readAll(resolve(p), templateName)
		if err != nil {
			return lmlerrors.Import(m.Name(), "cannot import %q: %v", templateName, err)
		}
		if len(attributes) == 2 {
			contentArg := p.ParseString(attributes[1], m.Widget())
			content = p.Syntax().Substitute(content, map[string]string{contentArg: body})
		}
		if err := p.rd.AppendFile(content, label); err != nil {
			return lmlerrors.Import(m.Name(), "%v", err)
		}
		return nil
	}
}

// readAll resolves, fully reads and releases a template source.
func readAll(resolver Resolver, name string) (string, string, error) {
	stream, label, err := resolver.Resolve(name)
	if err != nil {
		return "", "", err
	}
	defer stream.Close()
	data, err := io.ReadAll(stream)
	if err != nil {
		return "", "", err
	}
	return string(data), label, nil
}
