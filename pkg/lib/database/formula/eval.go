package formula

import (
	"strconv"
	"strings"

	"github.com/Ketchio-dev/note-web-sub000/core/domain"
	"github.com/Ketchio-dev/note-web-sub000/pkg/lib/logging"
)

var log = logging.Logger("noteweb-formula")

// Evaluate parses and evaluates a formula against the page's properties,
// keyed by property name. It never panics: a syntax error, an unknown
// property, an uncoercible operand or division by zero all yield the none
// value so a single broken formula cannot take down a view render.
func Evaluate(expr string, props map[string]domain.Value) domain.Value {
	if strings.TrimSpace(expr) == "" {
		return domain.None()
	}
	node, err := Parse(expr)
	if err != nil {
		log.Debugf("formula parse failed: %v", err)
		return domain.None()
	}
	return Eval(node, props)
}

// Eval evaluates a parsed formula. Errors propagate as the none value.
func Eval(node Node, props map[string]domain.Value) domain.Value {
	switch n := node.(type) {
	case *NumberNode:
		return domain.Float64(n.Value)
	case *StringNode:
		return domain.String(n.Value)
	case *PropNode:
		v, ok := props[n.Name]
		if !ok {
			return domain.None()
		}
		return v
	case *UnaryNode:
		f, ok := Eval(n.Operand, props).CoerceFloat()
		if !ok {
			return domain.None()
		}
		return domain.Float64(-f)
	case *BinaryNode:
		return evalBinary(n, props)
	}
	return domain.None()
}

func evalBinary(n *BinaryNode, props map[string]domain.Value) domain.Value {
	left := Eval(n.Left, props)
	right := Eval(n.Right, props)

	switch n.Op {
	case TokenPlus:
		// Two strings concatenate, anything numeric adds.
		ls, lok := left.String()
		rs, rok := right.String()
		if lok && rok {
			if lf, ok := left.CoerceFloat(); ok {
				if rf, ok := right.CoerceFloat(); ok {
					return domain.Float64(lf + rf)
				}
			}
			return domain.String(ls + rs)
		}
		return evalArith(left, right, func(a, b float64) (float64, bool) {
			return a + b, true
		})
	case TokenMinus:
		return evalArith(left, right, func(a, b float64) (float64, bool) {
			return a - b, true
		})
	case TokenStar:
		return evalArith(left, right, func(a, b float64) (float64, bool) {
			return a * b, true
		})
	case TokenSlash:
		return evalArith(left, right, func(a, b float64) (float64, bool) {
			if b == 0 {
				return 0, false
			}
			return a / b, true
		})
	case TokenEq:
		return evalEquality(left, right, false)
	case TokenNeq:
		return evalEquality(left, right, true)
	case TokenLt, TokenLte, TokenGt, TokenGte:
		return evalRelational(n.Op, left, right)
	}
	return domain.None()
}

func evalArith(left, right domain.Value, f func(a, b float64) (float64, bool)) domain.Value {
	lf, ok := left.CoerceFloat()
	if !ok {
		return domain.None()
	}
	rf, ok := right.CoerceFloat()
	if !ok {
		return domain.None()
	}
	res, ok := f(lf, rf)
	if !ok {
		return domain.None()
	}
	return domain.Float64(res)
}

// evalEquality compares same-kind operands. Numeric strings compare
// numerically against numbers; otherwise mixed kinds are none rather than a
// silent false.
func evalEquality(left, right domain.Value, negate bool) domain.Value {
	eq, ok := valuesEqual(left, right)
	if !ok {
		return domain.None()
	}
	if negate {
		eq = !eq
	}
	return domain.Bool(eq)
}

func valuesEqual(left, right domain.Value) (eq, ok bool) {
	if lb, lok := left.Bool(); lok {
		if rb, rok := right.Bool(); rok {
			return lb == rb, true
		}
		return false, false
	}
	if lf, lok := left.CoerceFloat(); lok {
		if rf, rok := right.CoerceFloat(); rok {
			return lf == rf, true
		}
	}
	if ls, lok := left.String(); lok {
		if rs, rok := right.String(); rok {
			return ls == rs, true
		}
	}
	return false, false
}

func evalRelational(op TokenType, left, right domain.Value) domain.Value {
	cmp, ok := valuesCompare(left, right)
	if !ok {
		return domain.None()
	}
	switch op {
	case TokenLt:
		return domain.Bool(cmp < 0)
	case TokenLte:
		return domain.Bool(cmp <= 0)
	case TokenGt:
		return domain.Bool(cmp > 0)
	case TokenGte:
		return domain.Bool(cmp >= 0)
	}
	return domain.None()
}

func valuesCompare(left, right domain.Value) (cmp int, ok bool) {
	if lf, lok := left.CoerceFloat(); lok {
		if rf, rok := right.CoerceFloat(); rok {
			switch {
			case lf < rf:
				return -1, true
			case lf > rf:
				return 1, true
			}
			return 0, true
		}
	}
	if ls, lok := left.String(); lok {
		if rs, rok := right.String(); rok {
			return strings.Compare(ls, rs), true
		}
	}
	return 0, false
}

// FormatResult renders a formula or rollup value for display. None is an
// empty string, numbers drop trailing zeros, booleans render as literal
// text, lists join with a comma.
func FormatResult(v domain.Value) string {
	if !v.Ok() {
		return ""
	}
	if b, ok := v.Bool(); ok {
		return strconv.FormatBool(b)
	}
	if f, ok := v.Float(); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if s, ok := v.String(); ok {
		return s
	}
	if list, ok := v.StringList(); ok {
		return strings.Join(list, ", ")
	}
	if list, ok := v.FloatList(); ok {
		parts := make([]string, 0, len(list))
		for _, f := range list {
			parts = append(parts, strconv.FormatFloat(f, 'f', -1, 64))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}
