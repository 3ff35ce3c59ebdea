package syntax

import "strings"

// Substitute replaces every recognized argument placeholder in text with
// its value from args. A placeholder is the ArgumentOpen character, an
// argument name, then the ArgumentClose character.
//
// The scan is a single left-to-right pass. On an opening delimiter the
// scanner speculatively accumulates a candidate name; if a closing
// delimiter completes a name present in args, the value is emitted and
// scanning resumes after the closing delimiter. If the name is unknown,
// or no closing delimiter exists before end of input, the opening
// delimiter is emitted literally and scanning resumes one character past
// it, so overlapping candidates are still considered. Unterminated
// placeholders therefore pass through as literal text rather than
// failing. Replacement values are never re-scanned, and name lookup is
// exact-match.
func (s *Syntax) Substitute(text string, args map[string]string) string {
	if len(args) == 0 || strings.IndexByte(text, s.ArgumentOpen) < 0 {
		return text
	}
	var out strings.Builder
	out.Grow(len(text))
	var name strings.Builder
scan:
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == s.ArgumentOpen {
			name.Reset()
			for j := i + 1; j < len(text); j++ {
				nc := text[j]
				if nc == s.ArgumentClose {
					if value, ok := args[name.String()]; ok {
						out.WriteString(value)
						i = j
						continue scan
					}
				}
				name.WriteByte(nc)
			}
		}
		out.WriteByte(c)
	}
	return out.String()
}
