package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lmllang/lml/pkg/lml/syntax"
)

// ParseString resolves raw attribute or text data to a string: quotes
// are stripped, document-level arguments substituted, and action
// references invoked against the subject widget.
func (p *Parser) ParseString(raw string, subject any) string {
	value := syntax.StripQuotes(strings.TrimSpace(raw))
	value = p.syn.Substitute(value, p.args)
	if len(value) > 1 && value[0] == p.syn.ActionMarker {
		if action := p.actions.Get(value[1:]); action != nil {
			result := action(subject)
			if result == nil {
				return "null"
			}
			return fmt.Sprint(result)
		}
	}
	return value
}

// ParseFloat resolves raw data to a float.
func (p *Parser) ParseFloat(raw string, subject any) (float64, error) {
	value := p.ParseString(raw, subject)
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as a number", value)
	}
	return parsed, nil
}

// ParseInt resolves raw data to an integer.
func (p *Parser) ParseInt(raw string, subject any) (int, error) {
	value := p.ParseString(raw, subject)
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("cannot parse %q as an integer", value)
	}
	return parsed, nil
}

// ParseBool resolves raw data to a boolean. Accepts true/false and 1/0.
func (p *Parser) ParseBool(raw string, subject any) (bool, error) {
	value := p.ParseString(raw, subject)
	switch {
	case strings.EqualFold(value, "true"), value == "1":
		return true, nil
	case strings.EqualFold(value, "false"), value == "0":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse %q as a boolean", value)
}

// alignments recognized by ParseAlign.
var alignments = map[string]bool{
	"left": true, "right": true, "top": true, "bottom": true,
	"center": true, "fill": true,
}

// ParseAlign resolves raw data to an alignment name.
func (p *Parser) ParseAlign(raw string, subject any) (string, error) {
	value := strings.ToLower(p.ParseString(raw, subject))
	if !alignments[value] {
		return "", fmt.Errorf("unknown alignment %q", value)
	}
	return value, nil
}

// ParseArray resolves raw data to a list of strings. Elements are
// separated by the array separator; an element with a range suffix, like
// name[0,2], expands to name0 name1 name2.
func (p *Parser) ParseArray(raw string, subject any) []string {
	var result []string
	for _, element := range strings.Split(syntax.StripQuotes(strings.TrimSpace(raw)), string(p.syn.ArraySeparator)) {
		element = strings.TrimSpace(element)
		if element == "" {
			continue
		}
		if expanded, ok := p.expandRange(element); ok {
			result = append(result, expanded...)
			continue
		}
		result = append(result, p.ParseString(element, subject))
	}
	return result
}

// expandRange expands base[from,to] array elements.
func (p *Parser) expandRange(element string) ([]string, bool) {
	if len(element) == 0 || element[len(element)-1] != p.syn.RangeClose {
		return nil, false
	}
	open := strings.IndexByte(element, p.syn.RangeOpen)
	if open < 0 {
		return nil, false
	}
	base := element[:open]
	bounds := strings.Split(element[open+1:len(element)-1], ",")
	if len(bounds) != 2 {
		return nil, false
	}
	from, err1 := strconv.Atoi(strings.TrimSpace(bounds[0]))
	to, err2 := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err1 != nil || err2 != nil {
		return nil, false
	}
	var result []string
	step := 1
	if to < from {
		step = -1
	}
	for i := from; ; i += step {
		result = append(result, base+strconv.Itoa(i))
		if i == to {
			break
		}
	}
	return result, true
}

// ParseAction resolves an action reference (with or without the action
// marker prefix) to the registered action, or nil when absent.
func (p *Parser) ParseAction(reference string, subject any) Action {
	name := strings.TrimSpace(reference)
	if len(name) > 0 && name[0] == p.syn.ActionMarker {
		name = name[1:]
	}
	return p.actions.Get(name)
}

// IsAction reports whether raw data references a registered action.
func (p *Parser) IsAction(raw string) bool {
	return p.ParseAction(raw, nil) != nil
}

// InvokeAction resolves and invokes an action reference against the
// subject. The second result reports whether the action existed.
func (p *Parser) InvokeAction(reference string, subject any) (any, bool) {
	action := p.ParseAction(reference, subject)
	if action == nil {
		return nil, false
	}
	return action(subject), true
}
