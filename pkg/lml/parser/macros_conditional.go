package parser

import (
	"fmt"
	"strconv"
	"strings"

	lmlerrors "github.com/lmllang/lml/pkg/lml/errors"
	"github.com/lmllang/lml/pkg/lml/syntax"
)

// anyNotNullMacro evaluates a short-circuiting disjunction over its
// positional attributes. Each attribute resolving to a registered action
// is invoked and its result tested; otherwise the literal text is
// tested. Zero attributes evaluate to false. The body (or the else part)
// is spliced back into the template stream accordingly.
func anyNotNullMacro(p *Parser, m *MacroTag, body string) error {
	condition := false
	for _, attribute := range m.Attributes() {
		if p.IsAction(attribute) {
			result, _ := p.InvokeAction(attribute, m.Widget())
			if !resultNullOrFalse(result) {
				condition = true
				break
			}
			continue
		}
		resolved := p.ParseString(attribute, m.Widget())
		if !stringNullOrFalse(resolved) {
			condition = true
			break
		}
	}
	return spliceConditional(m, body, condition)
}

// ifMacro evaluates a simple equation over its positional attributes:
// either a single value tested for truthiness, or a binary comparison
// value OP value with ==, !=, <, >, <=, >=. Comparison is numeric when
// both sides parse as numbers, lexicographic otherwise.
func ifMacro(p *Parser, m *MacroTag, body string) error {
	attributes := m.Attributes()
	var condition bool
	switch len(attributes) {
	case 0:
		condition = false
	case 1:
		condition = truthy(p, m, attributes[0])
	case 3:
		// Comparison characters clash with tag syntax, so equations
		// arrive entity-escaped; decode every token, not just the
		// operator.
		left := syntax.Unescape(p.ParseString(attributes[0], m.Widget()))
		op := syntax.Unescape(attributes[1])
		right := syntax.Unescape(p.ParseString(attributes[2], m.Widget()))
		result, err := compare(left, op, right)
		if err != nil {
			return lmlerrors.Macro(m.Name(), "macro %q: %v", m.Name(), err)
		}
		condition = result
	default:
		return lmlerrors.Macro(m.Name(),
			"macro %q expects a single value or a binary comparison, got %d attributes", m.Name(), len(attributes))
	}
	return spliceConditional(m, body, condition)
}

func truthy(p *Parser, m *MacroTag, attribute string) bool {
	if p.IsAction(attribute) {
		result, _ := p.InvokeAction(attribute, m.Widget())
		return !resultNullOrFalse(result)
	}
	return !stringNullOrFalse(p.ParseString(attribute, m.Widget()))
}

func spliceConditional(m *MacroTag, body string, condition bool) error {
	onTrue, onFalse, _ := m.SplitBody(body)
	if condition {
		return m.Splice(onTrue)
	}
	if onFalse != "" {
		return m.Splice(onFalse)
	}
	return nil
}

func stringNullOrFalse(text string) bool {
	text = strings.TrimSpace(text)
	return text == "" || strings.EqualFold(text, "null") || strings.EqualFold(text, "false")
}

func resultNullOrFalse(result any) bool {
	if result == nil {
		return true
	}
	if b, ok := result.(bool); ok {
		return !b
	}
	if s, ok := result.(string); ok {
		return stringNullOrFalse(s)
	}
	return false
}

func compare(left, op, right string) (bool, error) {
	lf, lerr := strconv.ParseFloat(left, 64)
	rf, rerr := strconv.ParseFloat(right, 64)
	numeric := lerr == nil && rerr == nil
	switch op {
	case "==", "=":
		if numeric {
			return lf == rf, nil
		}
		return left == right, nil
	case "!=":
		if numeric {
			return lf != rf, nil
		}
		return left != right, nil
	case "<":
		if numeric {
			return lf < rf, nil
		}
		return left < right, nil
	case ">":
		if numeric {
			return lf > rf, nil
		}
		return left > right, nil
	case "<=":
		if numeric {
			return lf <= rf, nil
		}
		return left <= right, nil
	case ">=":
		if numeric {
			return lf >= rf, nil
		}
		return left >= right, nil
	}
	return false, fmt.Errorf("unknown comparison operator %q", op)
}
