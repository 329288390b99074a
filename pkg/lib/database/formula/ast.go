package formula

import "fmt"

// Node is a parsed formula expression node.
type Node interface {
	String() string
}

// NumberNode is a numeric literal.
type NumberNode struct {
	Value float64
}

func (n *NumberNode) String() string {
	return fmt.Sprintf("%v", n.Value)
}

// StringNode is a string literal.
type StringNode struct {
	Value string
}

func (n *StringNode) String() string {
	return fmt.Sprintf("%q", n.Value)
}

// PropNode references a property of the current page by name, written
// prop("Name") in the source.
type PropNode struct {
	Name string
}

func (n *PropNode) String() string {
	return fmt.Sprintf("prop(%q)", n.Name)
}

// UnaryNode is numeric negation.
type UnaryNode struct {
	Operand Node
}

func (n *UnaryNode) String() string {
	return fmt.Sprintf("(-%s)", n.Operand.String())
}

// BinaryNode is an infix operation.
type BinaryNode struct {
	Op    TokenType
	Left  Node
	Right Node
}

func (n *BinaryNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left.String(), opString(n.Op), n.Right.String())
}

func opString(op TokenType) string {
	switch op {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	case TokenEq:
		return "=="
	case TokenNeq:
		return "!="
	case TokenLt:
		return "<"
	case TokenLte:
		return "<="
	case TokenGt:
		return ">"
	case TokenGte:
		return ">="
	}
	return "?"
}
