package formula

import (
	"strings"
	"unicode"
)

// TokenType represents the type of a lexer token.
type TokenType int

const (
	TokenEOF    TokenType = iota
	TokenNumber           // numeric literal
	TokenString           // quoted string literal
	TokenIdent            // identifiers, only "prop" today
	TokenLParen           // (
	TokenRParen           // )
	TokenPlus             // +
	TokenMinus            // -
	TokenStar             // *
	TokenSlash            // /
	TokenEq               // ==
	TokenNeq              // !=
	TokenLt               // <
	TokenLte              // <=
	TokenGt               // >
	TokenGte              // >=
	TokenError            // unrecognized input
)

// Token represents a lexer token.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
}

// Lexer tokenizes a formula expression.
type Lexer struct {
	input string
	pos   int
}

func NewLexer(input string) *Lexer {
	return &Lexer{input: input}
}

// NextToken returns the next token from the input.
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: l.pos}
	}

	start := l.pos
	ch := l.input[l.pos]

	switch ch {
	case '(':
		l.pos++
		return Token{Type: TokenLParen, Value: "(", Pos: start}
	case ')':
		l.pos++
		return Token{Type: TokenRParen, Value: ")", Pos: start}
	case '+':
		l.pos++
		return Token{Type: TokenPlus, Value: "+", Pos: start}
	case '-':
		l.pos++
		return Token{Type: TokenMinus, Value: "-", Pos: start}
	case '*':
		l.pos++
		return Token{Type: TokenStar, Value: "*", Pos: start}
	case '/':
		l.pos++
		return Token{Type: TokenSlash, Value: "/", Pos: start}
	case '=':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenEq, Value: "==", Pos: start}
		}
		l.pos++
		return Token{Type: TokenError, Value: "=", Pos: start}
	case '!':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenNeq, Value: "!=", Pos: start}
		}
		l.pos++
		return Token{Type: TokenError, Value: "!", Pos: start}
	case '<':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenLte, Value: "<=", Pos: start}
		}
		l.pos++
		return Token{Type: TokenLt, Value: "<", Pos: start}
	case '>':
		if l.peekAt(1) == '=' {
			l.pos += 2
			return Token{Type: TokenGte, Value: ">=", Pos: start}
		}
		l.pos++
		return Token{Type: TokenGt, Value: ">", Pos: start}
	case '"', '\'':
		return l.scanString(ch)
	default:
		if ch >= '0' && ch <= '9' || ch == '.' {
			return l.scanNumber()
		}
		if isIdentStart(ch) {
			return l.scanIdent()
		}
		l.pos++
		return Token{Type: TokenError, Value: string(ch), Pos: start}
	}
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) && unicode.IsSpace(rune(l.input[l.pos])) {
		l.pos++
	}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	seenDot := false
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '.' {
			if seenDot {
				break
			}
			seenDot = true
			l.pos++
			continue
		}
		if ch < '0' || ch > '9' {
			break
		}
		l.pos++
	}
	value := l.input[start:l.pos]
	if value == "." {
		return Token{Type: TokenError, Value: value, Pos: start}
	}
	return Token{Type: TokenNumber, Value: value, Pos: start}
}

// scanString reads a quoted literal. Backslash escapes the quote character
// and itself; an unterminated literal is an error token.
func (l *Lexer) scanString(quote byte) Token {
	start := l.pos
	l.pos++ // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch == '\\' && l.peekAt(1) != 0 {
			next := l.input[l.pos+1]
			if next == quote || next == '\\' {
				sb.WriteByte(next)
				l.pos += 2
				continue
			}
		}
		if ch == quote {
			l.pos++
			return Token{Type: TokenString, Value: sb.String(), Pos: start}
		}
		sb.WriteByte(ch)
		l.pos++
	}
	return Token{Type: TokenError, Value: l.input[start:], Pos: start}
}

func (l *Lexer) scanIdent() Token {
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	return Token{Type: TokenIdent, Value: l.input[start:l.pos], Pos: start}
}

func isIdentStart(ch byte) bool {
	return ch == '_' || unicode.IsLetter(rune(ch))
}

func isIdentChar(ch byte) bool {
	return isIdentStart(ch) || (ch >= '0' && ch <= '9')
}
