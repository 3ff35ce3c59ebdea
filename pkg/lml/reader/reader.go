// Package reader implements the template reader: a stack of labelled
// text sources consumed by the parse loop. Macros and imports splice
// text by pushing new sources; the reader drains the most recently
// pushed source first, so spliced text is read before the text that
// produced it.
package reader

import "fmt"

// DefaultMaxDepth bounds the source stack. Exceeding it means a runaway
// macro or a cyclic import; the reader fails rather than letting the
// parse recurse without bound.
const DefaultMaxDepth = 128

type source struct {
	text  string
	pos   int
	line  int
	label string
	file  bool // pushed by an import; participates in cycle detection
}

// Reader reads characters from a stack of template sources.
type Reader struct {
	sources  []*source
	maxDepth int
}

// New returns an empty reader with the default depth bound.
func New() *Reader {
	return &Reader{maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the source stack bound. Values below 1 are ignored.
func (r *Reader) SetMaxDepth(depth int) {
	if depth > 0 {
		r.maxDepth = depth
	}
}

// Append pushes text to be read next, tagged with a diagnostic label
// identifying its origin (a file name, or e.g. "'if' macro result").
func (r *Reader) Append(text, label string) error {
	return r.push(text, label, false)
}

// AppendFile pushes imported template text. Unlike Append it checks the
// label against sources already being read: importing a template that is
// still on the stack is a cycle and fails immediately.
func (r *Reader) AppendFile(text, label string) error {
	for _, src := range r.sources {
		if src.file && src.label == label {
			return fmt.Errorf("cyclic import of %q", label)
		}
	}
	return r.push(text, label, true)
}

func (r *Reader) push(text, label string, file bool) error {
	if len(r.sources) >= r.maxDepth {
		return fmt.Errorf("template nesting exceeds %d sources while reading %q", r.maxDepth, label)
	}
	r.sources = append(r.sources, &source{text: text, line: 1, label: label, file: file})
	return nil
}

// current drops exhausted sources and returns the active one, or nil.
func (r *Reader) current() *source {
	for len(r.sources) > 0 {
		src := r.sources[len(r.sources)-1]
		if src.pos < len(src.text) {
			return src
		}
		r.sources = r.sources[:len(r.sources)-1]
	}
	return nil
}

// HasNext reports whether any unread text remains.
func (r *Reader) HasNext() bool {
	return r.current() != nil
}

// Next consumes and returns the next character. The second result is
// false when the reader is exhausted.
func (r *Reader) Next() (byte, bool) {
	src := r.current()
	if src == nil {
		return 0, false
	}
	c := src.text[src.pos]
	src.pos++
	if c == '\n' {
		src.line++
	}
	return c, true
}

// Peek returns the next character without consuming it.
func (r *Reader) Peek() (byte, bool) {
	src := r.current()
	if src == nil {
		return 0, false
	}
	return src.text[src.pos], true
}

// Label returns the diagnostic label of the source being read, or "".
func (r *Reader) Label() string {
	if src := r.current(); src != nil {
		return src.label
	}
	return ""
}

// Line returns the 1-based line number within the current source, or 0.
func (r *Reader) Line() int {
	if src := r.current(); src != nil {
		return src.line
	}
	return 0
}

// FileLabel returns the label of the innermost file-backed source, which
// is the template whose directory relative imports resolve against.
func (r *Reader) FileLabel() string {
	r.current() // drop exhausted sources first
	for i := len(r.sources) - 1; i >= 0; i-- {
		if r.sources[i].file {
			return r.sources[i].label
		}
	}
	return ""
}

// Depth returns the number of sources currently stacked.
func (r *Reader) Depth() int {
	r.current()
	return len(r.sources)
}
