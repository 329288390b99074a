package formula

import (
	"strconv"

	"github.com/pkg/errors"
)

// maxDepth bounds expression nesting so a pathological formula cannot blow
// the stack.
const maxDepth = 64

var errTooDeep = errors.New("formula: expression too deeply nested")

// Parser builds an AST from a formula expression.
type Parser struct {
	lexer *Lexer
	cur   Token
	depth int
}

// Parse parses a formula expression into an AST. The whole input must be
// consumed; trailing tokens are an error.
func Parse(input string) (Node, error) {
	p := &Parser{lexer: NewLexer(input)}
	p.advance()
	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != TokenEOF {
		return nil, errors.Errorf("formula: unexpected %q at position %d", p.cur.Value, p.cur.Pos)
	}
	return node, nil
}

func (p *Parser) advance() {
	p.cur = p.lexer.NextToken()
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return errTooDeep
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseExpression handles comparisons, the lowest precedence level.
// Comparisons do not chain: a == b == c is a parse error.
func (p *Parser) parseExpression() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch p.cur.Type {
	case TokenEq, TokenNeq, TokenLt, TokenLte, TokenGt, TokenGte:
		op := p.cur.Type
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &BinaryNode{Op: op, Left: left, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) parseAdditive() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenPlus || p.cur.Type == TokenMinus {
		op := p.cur.Type
		p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == TokenStar || p.cur.Type == TokenSlash {
		op := p.cur.Type
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &BinaryNode{Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseUnary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.cur.Type == TokenMinus {
		p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &UnaryNode{Operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *Parser) parsePrimary() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	switch p.cur.Type {
	case TokenNumber:
		f, err := strconv.ParseFloat(p.cur.Value, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "formula: bad number %q at position %d", p.cur.Value, p.cur.Pos)
		}
		p.advance()
		return &NumberNode{Value: f}, nil
	case TokenString:
		node := &StringNode{Value: p.cur.Value}
		p.advance()
		return node, nil
	case TokenIdent:
		if p.cur.Value != "prop" {
			return nil, errors.Errorf("formula: unknown identifier %q at position %d", p.cur.Value, p.cur.Pos)
		}
		return p.parseProp()
	case TokenLParen:
		p.advance()
		node, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != TokenRParen {
			return nil, errors.Errorf("formula: expected ) at position %d", p.cur.Pos)
		}
		p.advance()
		return node, nil
	case TokenEOF:
		return nil, errors.New("formula: unexpected end of expression")
	default:
		return nil, errors.Errorf("formula: unexpected %q at position %d", p.cur.Value, p.cur.Pos)
	}
}

func (p *Parser) parseProp() (Node, error) {
	p.advance() // prop
	if p.cur.Type != TokenLParen {
		return nil, errors.Errorf("formula: expected ( after prop at position %d", p.cur.Pos)
	}
	p.advance()
	if p.cur.Type != TokenString {
		return nil, errors.Errorf("formula: prop expects a quoted property name at position %d", p.cur.Pos)
	}
	name := p.cur.Value
	p.advance()
	if p.cur.Type != TokenRParen {
		return nil, errors.Errorf("formula: expected ) at position %d", p.cur.Pos)
	}
	p.advance()
	return &PropNode{Name: name}, nil
}
