package engine

import (
	"fmt"
	"math/big"
	"strconv"
	"unicode/utf8"
)

type TokenKind int

const (
	TokenPlus TokenKind = iota
	TokenMinus
	TokenMultiply
	TokenDivide
	TokenPower
	TokenFactorial
	TokenPercent // modulo
	TokenLParen
	TokenRParen
	TokenComma
	TokenEquals
	TokenFloat
	TokenInteger
	TokenIdentifier
	TokenEOF
	TokenError
)

// Token is one lexical unit of an expression. Int is set for TokenInteger,
// Float for TokenFloat, Text for identifiers and error tokens.
type Token struct {
	Kind  TokenKind
	Text  string
	Int   *big.Int
	Float float64
}

func (t Token) String() string {
	switch t.Kind {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenMultiply:
		return "*"
	case TokenDivide:
		return "/"
	case TokenPower:
		return "^"
	case TokenFactorial:
		return "!"
	case TokenPercent:
		return "%"
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenComma:
		return ","
	case TokenEquals:
		return "="
	case TokenFloat:
		return strconv.FormatFloat(t.Float, 'g', -1, 64)
	case TokenInteger:
		if t.Int != nil {
			return t.Int.String()
		}
		return "0"
	case TokenIdentifier:
		return t.Text
	case TokenEOF:
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Text)
}

// lexer scans an expression into tokens. The grammar is ASCII; display
// aliases such as the division sign are rewritten by MapInputToken before an
// expression reaches the engine.
type lexer struct {
	src string
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{src: src}
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || isDigit(b) || b == '_'
}

func (l *lexer) peek(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) next() Token {
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case ' ', '\t', '\n', '\r', '\f':
			l.pos++
		default:
			goto scan
		}
	}
	return Token{Kind: TokenEOF}

scan:
	b := l.src[l.pos]
	switch b {
	case '+':
		l.pos++
		return Token{Kind: TokenPlus}
	case '-':
		l.pos++
		return Token{Kind: TokenMinus}
	case '*':
		l.pos++
		return Token{Kind: TokenMultiply}
	case '/':
		l.pos++
		return Token{Kind: TokenDivide}
	case '^':
		l.pos++
		return Token{Kind: TokenPower}
	case '!':
		l.pos++
		return Token{Kind: TokenFactorial}
	case '%':
		l.pos++
		return Token{Kind: TokenPercent}
	case '(':
		l.pos++
		return Token{Kind: TokenLParen}
	case ')':
		l.pos++
		return Token{Kind: TokenRParen}
	case ',':
		l.pos++
		return Token{Kind: TokenComma}
	case '=':
		l.pos++
		return Token{Kind: TokenEquals}
	}

	if isDigit(b) {
		return l.scanNumber()
	}
	if isIdentStart(b) {
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.pos++
		}
		return Token{Kind: TokenIdentifier, Text: l.src[start:l.pos]}
	}

	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return Token{Kind: TokenError, Text: string(r)}
}

// scanNumber recognizes, in order of priority: 0x/0o/0b integers, floats with
// a decimal point or exponent, and plain decimal integers.
func (l *lexer) scanNumber() Token {
	start := l.pos

	if l.src[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'o' || l.peek(1) == 'b') {
		base := 16
		valid := isHexDigit
		switch l.peek(1) {
		case 'o':
			base = 8
			valid = isOctDigit
		case 'b':
			base = 2
			valid = isBinDigit
		}
		if valid(l.peek(2)) {
			l.pos += 2
			for l.pos < len(l.src) && valid(l.src[l.pos]) {
				l.pos++
			}
			i, ok := new(big.Int).SetString(l.src[start+2:l.pos], base)
			if !ok {
				return Token{Kind: TokenError, Text: l.src[start:l.pos]}
			}
			return Token{Kind: TokenInteger, Int: i}
		}
	}

	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}

	isFloat := false
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	// Exponent only counts when digits follow, otherwise the 'e' starts an
	// identifier: 2e is 2 * e.
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		off := 1
		if l.peek(off) == '+' || l.peek(off) == '-' {
			off++
		}
		if isDigit(l.peek(off)) {
			isFloat = true
			l.pos += off
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		}
	}

	text := l.src[start:l.pos]
	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Token{Kind: TokenError, Text: text}
		}
		return Token{Kind: TokenFloat, Float: f}
	}
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return Token{Kind: TokenError, Text: text}
	}
	return Token{Kind: TokenInteger, Int: i}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctDigit(b byte) bool { return b >= '0' && b <= '7' }

func isBinDigit(b byte) bool { return b == '0' || b == '1' }
