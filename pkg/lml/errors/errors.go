// Package errors provides structured error types for the LML template engine.
//
// This package defines Error, a unified error type covering both recoverable
// parse problems (collected on the session, parsing continues) and fatal ones
// (document structure is unrecoverable, the parse aborts).
package errors

import (
	"fmt"
	"strings"
)

// Class categorizes errors for filtering and reporting.
type Class string

const (
	ClassParse            Class = "parse"        // Malformed markup syntax
	ClassUnknownTag       Class = "unknown-tag"  // No provider registered for a tag name
	ClassUnknownAttribute Class = "unknown-attr" // No handler registered for an attribute name
	ClassMacro            Class = "macro"        // Malformed macro invocation (arity, bad action reference)
	ClassImport           Class = "import"       // Missing template resource or cyclic import
	ClassNesting          Class = "nesting"      // Child tag rejected by its parent
	ClassSubstitution     Class = "substitution" // Argument placeholder problems
)

// Error represents any error reported by the LML parser.
type Error struct {
	Class     Class    // Error category
	Code      string   // Error code (e.g., "TAG-0001")
	Message   string   // Human-readable message
	Hints     []string // Suggestions for fixing
	Tag       string   // Offending tag name, if known
	Attribute string   // Offending attribute name, if known
	Source    string   // Template source label (file name or macro origin)
	Line      int      // 1-based line within the source (0 if unknown)
	Fatal     bool     // True when the whole parse must abort
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.String()
}

// String returns a formatted single-line representation of the error.
func (e *Error) String() string {
	var sb strings.Builder

	if e.Source != "" {
		sb.WriteString(e.Source)
		sb.WriteString(": ")
	}
	if e.Line > 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line)
	}
	sb.WriteString(e.Message)
	if e.Tag != "" {
		fmt.Fprintf(&sb, " (tag: %q", e.Tag)
		if e.Attribute != "" {
			fmt.Fprintf(&sb, ", attribute: %q", e.Attribute)
		}
		sb.WriteString(")")
	}
	for _, hint := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(hint)
	}
	return sb.String()
}

// PrettyString returns a multi-line formatted string for display.
func (e *Error) PrettyString() string {
	var sb strings.Builder

	if e.Fatal {
		sb.WriteString("Template error")
	} else {
		sb.WriteString("Template warning")
	}
	if e.Source != "" {
		sb.WriteString(":\n  in: ")
		sb.WriteString(e.Source)
		if e.Line > 0 {
			fmt.Fprintf(&sb, "\n  at: line %d", e.Line)
		}
		sb.WriteString("\n  ")
	} else {
		sb.WriteString(":\n  ")
	}
	sb.WriteString(e.Message)
	if e.Tag != "" {
		fmt.Fprintf(&sb, "\n  tag: %s", e.Tag)
	}
	if e.Attribute != "" {
		fmt.Fprintf(&sb, "\n  attribute: %s", e.Attribute)
	}
	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("Use: ")
		} else {
			sb.WriteString(" or: ")
		}
		sb.WriteString(hint)
	}
	return sb.String()
}

// WithSource attaches a template source label and line to the error,
// unless one is already recorded. Returns the error for chaining.
func (e *Error) WithSource(source string, line int) *Error {
	if e.Source == "" {
		e.Source = source
		e.Line = line
	}
	return e
}

// UnknownTag reports a tag name with no registered provider. Fatal:
// without knowing how to interpret a tag, the parse cannot continue.
func UnknownTag(tag string) *Error {
	return &Error{
		Class:   ClassUnknownTag,
		Code:    "TAG-0001",
		Message: fmt.Sprintf("no tag provider registered for %q", tag),
		Tag:     tag,
		Fatal:   true,
		Hints:   []string{"register a provider for this name, or define it with the newTag macro"},
	}
}

// UnknownMacro reports a macro name with no registered provider. Fatal,
// same reasoning as UnknownTag.
func UnknownMacro(tag string) *Error {
	return &Error{
		Class:   ClassUnknownTag,
		Code:    "TAG-0002",
		Message: fmt.Sprintf("no macro registered for %q", tag),
		Tag:     tag,
		Fatal:   true,
	}
}

// UnknownAttribute reports an attribute name with no registered handler
// for the tag's scope. Recoverable: the attribute is skipped, but the
// error is surfaced so template typos are caught early.
func UnknownAttribute(tag, attribute string) *Error {
	return &Error{
		Class:     ClassUnknownAttribute,
		Code:      "ATTR-0001",
		Message:   fmt.Sprintf("unknown attribute %q on tag %q", attribute, tag),
		Tag:       tag,
		Attribute: attribute,
	}
}

// Macro reports a malformed macro invocation: wrong arity or an
// unresolvable action reference. Fatal for the parse.
func Macro(tag, format string, args ...any) *Error {
	return &Error{
		Class:   ClassMacro,
		Code:    "MACRO-0001",
		Message: fmt.Sprintf(format, args...),
		Tag:     tag,
		Fatal:   true,
	}
}

// Import reports a template import failure: missing resource, read
// error, or a cyclic import. Fatal for the parse.
func Import(tag, format string, args ...any) *Error {
	return &Error{
		Class:   ClassImport,
		Code:    "IMPORT-0001",
		Message: fmt.Sprintf(format, args...),
		Tag:     tag,
		Fatal:   true,
	}
}

// Nesting reports a child tag rejected by its parent. Recoverable: the
// offending subtree is dropped and parsing continues.
func Nesting(tag, format string, args ...any) *Error {
	return &Error{
		Class:   ClassNesting,
		Code:    "NEST-0001",
		Message: fmt.Sprintf(format, args...),
		Tag:     tag,
	}
}

// Parse reports malformed markup. Recoverable unless promoted by the caller.
func Parse(format string, args ...any) *Error {
	return &Error{
		Class:   ClassParse,
		Code:    "PARSE-0001",
		Message: fmt.Sprintf(format, args...),
	}
}

// Construction reports a widget that could not be built from its tag,
// typically a missing required builder input. Fatal only for the tag's
// subtree; the parser drops the subtree and records the error.
func Construction(tag, format string, args ...any) *Error {
	return &Error{
		Class:   ClassParse,
		Code:    "PARSE-0002",
		Message: fmt.Sprintf(format, args...),
		Tag:     tag,
	}
}
