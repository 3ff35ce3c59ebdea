package syntax

import "testing"

func TestSubstitute(t *testing.T) {
	args := map[string]string{
		"name":  "World",
		"empty": "",
		"x":     "{x}",
	}
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text, no placeholders", "plain text, no placeholders"},
		{"hello {name}", "hello World"},
		{"{name}{name}", "WorldWorld"},
		{"{unknown}", "{unknown}"},
		{"{empty}!", "!"},
		// Unterminated placeholder passes through as literal text.
		{"{name", "{name"},
		// Overlapping candidates: the outer scan fails, but the scan
		// resumes one character past the opening delimiter and finds
		// the inner placeholder.
		{"{{name}", "{World"},
		// Replacement values are never re-scanned in the same pass.
		{"{x}", "{x}"},
		{"a{x}b{x}c", "a{x}b{x}c"},
		// Case-sensitive lookup.
		{"{Name}", "{Name}"},
	}
	s := Default()
	for _, tt := range tests {
		if got := s.Substitute(tt.input, args); got != tt.expected {
			t.Errorf("Substitute(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSubstituteIdempotentWithoutPlaceholders(t *testing.T) {
	s := Default()
	input := "no delimiters at all"
	if got := s.Substitute(input, map[string]string{"no": "yes"}); got != input {
		t.Errorf("Substitute changed placeholder-free text: %q", got)
	}
	if got := s.Substitute("{name}", nil); got != "{name}" {
		t.Errorf("Substitute with empty map changed text: %q", got)
	}
}

func TestSplitInTwo(t *testing.T) {
	tests := []struct {
		content   string
		separator string
		first     string
		second    string
	}{
		{"a::b::c", "::", "a", "b::c"},
		{"abc", "::", "abc", ""},
		{"::abc", "::", "", "abc"},
		{"abc::", "::", "abc", ""},
		{"", "::", "", ""},
		{"key=value", "=", "key", "value"},
		// Separator matching ignores case.
		{"bodyELSEmore", "else", "body", "more"},
	}
	for _, tt := range tests {
		first, second := SplitInTwo(tt.content, tt.separator)
		if first != tt.first || second != tt.second {
			t.Errorf("SplitInTwo(%q, %q) = (%q, %q), want (%q, %q)",
				tt.content, tt.separator, first, second, tt.first, tt.second)
		}
	}
}

func TestSplitAttributes(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"", nil},
		{"   ", nil},
		{"one two three", []string{"one", "two", "three"}},
		{"style=dark  text=hi", []string{"style=dark", "text=hi"}},
		// Separators inside quotes do not split.
		{`text="hello world" pad=4`, []string{`text="hello world"`, "pad=4"}},
		// Separators inside placeholder delimiters do not split.
		{"text={some arg} pad=4", []string{"text={some arg}", "pad=4"}},
		{"{a b} {c d}", []string{"{a b}", "{c d}"}},
		// Mixed whitespace splits when the separator is a space.
		{"a\tb\nc", []string{"a", "b", "c"}},
	}
	s := Default()
	for _, tt := range tests {
		got := s.SplitAttributes(tt.input)
		if len(got) != len(tt.expected) {
			t.Errorf("SplitAttributes(%q) = %v, want %v", tt.input, got, tt.expected)
			continue
		}
		for i := range got {
			if got[i] != tt.expected[i] {
				t.Errorf("SplitAttributes(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.expected[i])
			}
		}
	}
}

func TestUnescape(t *testing.T) {
	if got := Unescape("3 &gt; 2 &amp;&amp; 1 &lt; 2"); got != "3 > 2 && 1 < 2" {
		t.Errorf("Unescape = %q", got)
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"quoted"`, "quoted"},
		{"'quoted'", "quoted"},
		{`"mismatched'`, `"mismatched'`},
		{"plain", "plain"},
		{`""`, ""},
		{`"`, `"`},
	}
	for _, tt := range tests {
		if got := StripQuotes(tt.input); got != tt.expected {
			t.Errorf("StripQuotes(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
