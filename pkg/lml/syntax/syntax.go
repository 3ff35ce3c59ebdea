// Package syntax holds the configurable LML markup syntax and the
// text-level primitives shared by the parser and the macro subsystem:
// argument substitution, attribute splitting and entity unescaping.
package syntax

import "strings"

// Syntax is the parser-wide syntax configuration. All special characters
// of the markup language live here rather than being hard-coded, so
// hosts can restyle the language without touching the engine.
type Syntax struct {
	TagOpen       byte // marks the start of a tag, usually '<'
	TagClose      byte // marks the end of a tag, usually '>'
	ClosingMarker byte // marks a closing tag after TagOpen, usually '/'
	MacroMarker   byte // distinguishes macro tags, usually '@'

	ArgumentOpen  byte // opens an argument placeholder, usually '{'
	ArgumentClose byte // closes an argument placeholder, usually '}'

	AttributeSeparator byte // separates attributes inside a tag, usually ' '
	AttributeAssign    byte // separates attribute name from value, usually '='
	ArraySeparator     byte // separates array elements, usually ';'
	RangeOpen          byte // opens an array range suffix, usually '['
	RangeClose         byte // closes an array range suffix, usually ']'
	ActionMarker       byte // prefixes action references, usually '$'

	ElseMarker string // divides a conditional macro body, usually ":else"
}

// Default returns the standard LML syntax.
func Default() *Syntax {
	return &Syntax{
		TagOpen:            '<',
		TagClose:           '>',
		ClosingMarker:      '/',
		MacroMarker:        '@',
		ArgumentOpen:       '{',
		ArgumentClose:      '}',
		AttributeSeparator: ' ',
		AttributeAssign:    '=',
		ArraySeparator:     ';',
		RangeOpen:          '[',
		RangeClose:         ']',
		ActionMarker:       '$',
		ElseMarker:         ":else",
	}
}

// IsQuote reports whether c is a recognized quotation character.
func IsQuote(c byte) bool {
	return c == '"' || c == '\''
}

// isSeparator reports whether c separates attributes. When the configured
// separator is a space, any ASCII whitespace splits.
func (s *Syntax) isSeparator(c byte) bool {
	if s.AttributeSeparator == ' ' {
		return c == ' ' || c == '\t' || c == '\n' || c == '\r'
	}
	return c == s.AttributeSeparator
}

// SplitAttributes splits raw tag data into an ordered list of attribute
// tokens. Separators inside quotes or inside argument-placeholder
// delimiters do not split; runs of separators produce no empty tokens.
func (s *Syntax) SplitAttributes(raw string) []string {
	var tokens []string
	var sb strings.Builder
	var quote byte
	depth := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case quote != 0:
			sb.WriteByte(c)
			if c == quote {
				quote = 0
			}
		case IsQuote(c):
			quote = c
			sb.WriteByte(c)
		case c == s.ArgumentOpen:
			depth++
			sb.WriteByte(c)
		case c == s.ArgumentClose:
			if depth > 0 {
				depth--
			}
			sb.WriteByte(c)
		case depth == 0 && s.isSeparator(c):
			if sb.Len() > 0 {
				tokens = append(tokens, sb.String())
				sb.Reset()
			}
		default:
			sb.WriteByte(c)
		}
	}
	if sb.Len() > 0 {
		tokens = append(tokens, sb.String())
	}
	return tokens
}

// Unescape decodes the entities LML allows inside macro equations, where
// literal comparison characters would otherwise terminate the tag.
func Unescape(raw string) string {
	return entityReplacer.Replace(raw)
}

var entityReplacer = strings.NewReplacer(
	"&gt;", ">",
	"&lt;", "<",
	"&amp;", "&",
	"&quot;", `"`,
)

// StripQuotes removes one pair of matching quotation characters wrapping
// the value, if present.
func StripQuotes(value string) string {
	if len(value) >= 2 && IsQuote(value[0]) && value[len(value)-1] == value[0] {
		return value[1 : len(value)-1]
	}
	return value
}
