// Package repl provides an interactive template console with line
// editing, history, and tab completion over the registered tag and
// macro names. Each entered template is parsed and rendered in place,
// against a session that keeps its registries and document arguments
// between inputs.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/lmllang/lml/pkg/lml/parser"
	"github.com/lmllang/lml/pkg/lml/term"
)

const PROMPT = ">> "
const CONTINUATION_PROMPT = ".. "

const LOGO = `
█░░ █▀▄▀█ █░░
█▄▄ █░▀░█ █▄▄ `

// Start runs the REPL until EOF or an exit command.
func Start(out io.Writer, p *parser.Parser, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return completions(p, input)
	})

	historyFile := filepath.Join(os.TempDir(), ".lml_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintf(out, "%s", LOGO)
	fmt.Fprintln(out, "v", version)
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit")
	fmt.Fprintln(out, "Use Tab for completion, ↑↓ for history")
	fmt.Fprintln(out, "Type ':help' for REPL commands")
	fmt.Fprintln(out, "")

	renderer := term.New(p.Skin())
	treeMode := false
	var inputBuffer strings.Builder

	for {
		currentPrompt := PROMPT
		if inputBuffer.Len() > 0 {
			currentPrompt = CONTINUATION_PROMPT
		}
		input, err := line.Prompt(currentPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if inputBuffer.Len() > 0 {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				inputBuffer.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(out, "Error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if inputBuffer.Len() == 0 && (trimmed == "exit" || trimmed == "quit" || trimmed == ":quit" || trimmed == ":q") {
			fmt.Fprintln(out, "Goodbye!")
			return
		}

		if inputBuffer.Len() == 0 && strings.HasPrefix(trimmed, ":") {
			treeMode = handleCommand(trimmed, p, out, treeMode)
			continue
		}

		if inputBuffer.Len() == 0 && trimmed == "" {
			continue
		}

		if inputBuffer.Len() > 0 {
			inputBuffer.WriteString("\n")
		}
		inputBuffer.WriteString(input)

		fullInput := inputBuffer.String()
		if needsMoreInput(fullInput) {
			continue
		}
		inputBuffer.Reset()

		if trimmed != "" {
			line.AppendHistory(fullInput)
		}

		roots, err := p.Parse(fullInput)
		if err != nil {
			printFatal(out, err)
			continue
		}
		for _, warning := range p.Errors() {
			fmt.Fprintln(out, warning.PrettyString())
		}
		if len(roots) == 0 {
			fmt.Fprintln(out, "(no widgets)")
			continue
		}
		if treeMode {
			io.WriteString(out, term.Outline(roots))
		} else {
			fmt.Fprintln(out, renderer.RenderAll(roots))
		}
	}
}

// handleCommand handles REPL meta-commands that start with ':'. Returns
// the (possibly toggled) tree mode.
func handleCommand(cmd string, p *parser.Parser, out io.Writer, treeMode bool) bool {
	switch {
	case cmd == ":help" || cmd == ":h" || cmd == ":?":
		fmt.Fprintln(out, "REPL Commands:")
		fmt.Fprintln(out, "  :help, :h, :?       Show this help")
		fmt.Fprintln(out, "  :tags               List registered tags and macros")
		fmt.Fprintln(out, "  :args               Show document arguments")
		fmt.Fprintln(out, "  :set NAME VALUE     Set a document argument")
		fmt.Fprintln(out, "  :tree               Toggle tree output mode")
		fmt.Fprintln(out, "  :reset              Clear document arguments")
		fmt.Fprintln(out, "  exit, quit, :quit   Exit the REPL")
		return treeMode

	case cmd == ":tags":
		fmt.Fprintln(out, "Tags:   "+strings.Join(p.Tags().TagNames(), " "))
		fmt.Fprintln(out, "Macros: "+strings.Join(p.Tags().MacroNames(), " "))
		return treeMode

	case cmd == ":args":
		printArguments(p, out)
		return treeMode

	case strings.HasPrefix(cmd, ":set"):
		fields := strings.Fields(cmd)
		if len(fields) < 3 {
			fmt.Fprintln(out, "Usage: :set NAME VALUE")
			return treeMode
		}
		p.SetArgument(fields[1], strings.Join(fields[2:], " "))
		fmt.Fprintf(out, "%s = %s\n", fields[1], strings.Join(fields[2:], " "))
		return treeMode

	case cmd == ":reset":
		p.Reset()
		fmt.Fprintln(out, "Document arguments cleared")
		return treeMode

	case cmd == ":tree":
		if !treeMode {
			fmt.Fprintln(out, "Tree output mode ON")
		} else {
			fmt.Fprintln(out, "Tree output mode OFF (rendered output)")
		}
		return !treeMode

	default:
		fmt.Fprintf(out, "Unknown command: %s (type :help for commands)\n", cmd)
		return treeMode
	}
}

func printArguments(p *parser.Parser, out io.Writer) {
	args := p.Arguments()
	if len(args) == 0 {
		fmt.Fprintln(out, "(no document arguments)")
		return
	}
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s = %s\n", name, args[name])
	}
}

// completions suggests tag names, macro names (with the macro marker)
// and REPL commands matching the word being typed.
func completions(p *parser.Parser, input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	last := input[len(input)-1]
	if last == ' ' || last == '\t' {
		return nil
	}
	words := strings.Fields(input)
	lastWord := words[len(words)-1]
	lastWord = strings.TrimLeft(lastWord, "</")

	var candidates []string
	candidates = append(candidates, p.Tags().TagNames()...)
	for _, name := range p.Tags().MacroNames() {
		candidates = append(candidates, "@"+name)
	}
	candidates = append(candidates, ":help", ":tags", ":args", ":set", ":tree", ":reset", ":quit")

	var matches []string
	for _, word := range candidates {
		if strings.HasPrefix(word, lastWord) {
			matches = append(matches, word)
		}
	}
	return matches
}

// needsMoreInput reports whether the buffered input still has unclosed
// tags, so multi-line templates can be entered naturally.
func needsMoreInput(input string) bool {
	depth := 0
	var quote byte
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		switch ch {
		case '"', '\'':
			quote = ch
		case '<':
			if i+1 >= len(input) {
				return true
			}
			switch {
			case input[i+1] == '/':
				depth--
			case input[i+1] == '!':
				// comments do not affect nesting
			default:
				end := findTagEnd(input, i)
				if end < 0 {
					return true
				}
				if input[end-1] != '/' {
					depth++
				}
				i = end
			}
		}
	}
	return depth > 0
}

// findTagEnd finds the position of the closing '>' for a tag starting
// at pos, honoring quotes. Returns -1 when the tag is not closed yet.
func findTagEnd(input string, pos int) int {
	var quote byte
	for i := pos + 1; i < len(input); i++ {
		ch := input[i]
		if quote != 0 {
			if ch == quote {
				quote = 0
			}
			continue
		}
		if ch == '"' || ch == '\'' {
			quote = ch
			continue
		}
		if ch == '>' {
			return i
		}
	}
	return -1
}

func printFatal(out io.Writer, err error) {
	type pretty interface{ PrettyString() string }
	if p, ok := err.(pretty); ok {
		fmt.Fprintln(out, p.PrettyString())
		return
	}
	fmt.Fprintf(out, "Error: %v\n", err)
}
