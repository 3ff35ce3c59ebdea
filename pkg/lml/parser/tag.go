package parser

import "github.com/lmllang/lml/pkg/lml/scene"

// Tag is a node in the parse tree: either an actor tag that produces a
// widget, or a macro tag that rewrites the template stream. Tags are
// created by providers at open-tag time, mutated while their body is
// read, and finalized exactly once by Close.
type Tag interface {
	// Name returns the raw tag name.
	Name() string
	// Parent returns the enclosing tag, nil at document root.
	Parent() Tag
	// Widget returns the produced widget. Macro tags delegate to the
	// nearest ancestor's widget and may return nil at the root.
	Widget() scene.Widget
	// Attributes returns the ordered raw attribute tokens.
	Attributes() []string
	// IsMacro reports whether this is a macro tag.
	IsMacro() bool
	// HandleChild absorbs a closed child tag according to the tag's
	// add-child policy. Rejections are recorded as recoverable errors.
	HandleChild(child Tag)
	// HandleText receives a run of plain text between child tags.
	HandleText(text string)
	// Close finalizes the tag. Subsequent calls are no-ops.
	Close()
}

// ChildPolicy decides how a tag absorbs a closed child tag.
type ChildPolicy func(p *Parser, tag Tag, child Tag)

// TextPolicy decides how a tag absorbs plain text between child tags.
type TextPolicy func(p *Parser, tag Tag, text string)

// CloseFunc runs deferred finalization when a tag closes.
type CloseFunc func(p *Parser, tag Tag)

// baseTag carries the state shared by actor and macro tags.
type baseTag struct {
	parser     *Parser
	parent     Tag
	name       string
	rawData    string
	attributes []string
}

func (t *baseTag) Name() string         { return t.name }
func (t *baseTag) Parent() Tag          { return t.parent }
func (t *baseTag) Attributes() []string { return t.attributes }
