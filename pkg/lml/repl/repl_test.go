package repl

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lmllang/lml/pkg/lml/parser"
)

func TestNeedsMoreInput(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{`<label>done</label>`, false},
		{`<label text=x/>`, false},
		{`<table>`, true},
		{`<table><label>x</label>`, true},
		{`<label text="unclosed`, true},
		{`plain text`, false},
		{`<@if true><label>x</label></@if>`, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, needsMoreInput(tt.input), "input %q", tt.input)
	}
}

func TestCompletions(t *testing.T) {
	p := parser.New()
	assert.Contains(t, completions(p, "<lab"), "label")
	assert.Contains(t, completions(p, "<@imp"), "@import")
	assert.Contains(t, completions(p, ":t"), ":tags")
	assert.Empty(t, completions(p, "<label "))
}

func TestHandleCommand(t *testing.T) {
	p := parser.New()
	var out bytes.Buffer

	treeMode := handleCommand(":tree", p, &out, false)
	assert.True(t, treeMode)

	out.Reset()
	handleCommand(":set title Hello World", p, &out, false)
	value, ok := p.Argument("title")
	assert.True(t, ok)
	assert.Equal(t, "Hello World", value)

	out.Reset()
	handleCommand(":args", p, &out, false)
	assert.Contains(t, out.String(), "title = Hello World")

	out.Reset()
	handleCommand(":reset", p, &out, false)
	_, ok = p.Argument("title")
	assert.False(t, ok)

	out.Reset()
	handleCommand(":tags", p, &out, false)
	assert.Contains(t, out.String(), "label")
	assert.Contains(t, out.String(), "import")

	out.Reset()
	handleCommand(":bogus", p, &out, false)
	assert.True(t, strings.Contains(out.String(), "Unknown command"))
}
