package engine

import (
	"fmt"

	"neocalc/internal/domain"
)

// Parse turns an expression into an AST without evaluating it.
func Parse(expression string) (Expr, error) {
	p := &parser{lex: newLexer(expression)}
	p.advance()
	expr, err := p.parseBP(0)
	if err != nil {
		return nil, err
	}
	if p.current.Kind != TokenEOF {
		return nil, domain.ErrParser(fmt.Sprintf("unexpected token at end: %s", p.current))
	}
	return expr, nil
}

type parser struct {
	lex     *lexer
	current Token
}

func (p *parser) advance() {
	p.current = p.lex.next()
}

func (p *parser) advanceWithToken() Token {
	tok := p.current
	p.advance()
	return tok
}

// parseBP is a Pratt parser: parse with a minimum binding power.
func (p *parser) parseBP(minBP uint8) (Expr, error) {
	tok := p.advanceWithToken()

	// Prefix position: numbers, identifiers, parentheses, unary minus.
	var lhs Expr
	switch tok.Kind {
	case TokenFloat:
		lhs = &Literal{Value: NewFloat(tok.Float)}
	case TokenInteger:
		lhs = &Literal{Value: NewInteger(tok.Int)}
	case TokenIdentifier:
		expr, err := p.handleIdentifier(tok.Text)
		if err != nil {
			return nil, err
		}
		lhs = expr
	case TokenLParen:
		inner, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		if p.current.Kind != TokenRParen {
			return nil, domain.ErrParser("expected ')'")
		}
		p.advance()
		lhs = inner
	case TokenMinus:
		rhs, err := p.parseBP(prefixMinusBP)
		if err != nil {
			return nil, err
		}
		lhs = &Unary{Op: OpNeg, Operand: rhs}
	case TokenEOF:
		return nil, domain.ErrParser("unexpected end of input")
	default:
		return nil, domain.ErrParser(fmt.Sprintf("unexpected token: %s", tok))
	}

	// Infix and postfix position, while the operator binds tight enough.
	for {
		op := p.current
		if op.Kind == TokenEOF {
			break
		}

		if op.Kind == TokenFactorial {
			const postfixBP = 11
			if postfixBP < minBP {
				break
			}
			p.advance()
			lhs = &Unary{Op: OpFactorial, Operand: lhs}
			continue
		}

		// Explicit infix operator, or implicit multiplication before a
		// parenthesis/identifier: 2(3+1), 2pi.
		explicit := true
		leftBP, rightBP, ok := infixBindingPower(op.Kind)
		if !ok {
			if op.Kind != TokenLParen && op.Kind != TokenIdentifier {
				break
			}
			explicit = false
			leftBP, rightBP = 3, 4
		}
		if leftBP < minBP {
			break
		}

		binOp := OpMul
		if explicit {
			tok := p.advanceWithToken()
			switch tok.Kind {
			case TokenPlus:
				binOp = OpAdd
			case TokenMinus:
				binOp = OpSub
			case TokenMultiply:
				binOp = OpMul
			case TokenDivide:
				binOp = OpDiv
			case TokenPower:
				binOp = OpPow
			case TokenPercent:
				binOp = OpMod
			default:
				return nil, domain.ErrParser(fmt.Sprintf("unknown infix operator: %s", tok))
			}
		}

		rhs, err := p.parseBP(rightBP)
		if err != nil {
			return nil, err
		}
		lhs = &Binary{Op: binOp, LHS: lhs, RHS: rhs}
	}

	return lhs, nil
}

// handleIdentifier disambiguates a leading identifier into a variable access,
// an assignment, a function call, or a function definition.
func (p *parser) handleIdentifier(name string) (Expr, error) {
	switch p.current.Kind {
	case TokenLParen:
		// name(...) is a call, unless '=' follows the closing paren, in
		// which case the arguments must all be identifiers and this is a
		// function definition.
		p.advance() // eat '('
		args, err := p.parseArguments()
		if err != nil {
			return nil, err
		}

		if p.current.Kind == TokenEquals {
			p.advance() // eat '='
			body, err := p.parseBP(0)
			if err != nil {
				return nil, err
			}
			params := make([]string, 0, len(args))
			for _, arg := range args {
				v, ok := arg.(*Variable)
				if !ok {
					return nil, domain.ErrParser("function parameters must be identifiers")
				}
				params = append(params, v.Name)
			}
			return &FuncDef{Name: name, Params: params, Body: body}, nil
		}
		return &Call{Name: name, Args: args}, nil

	case TokenEquals:
		p.advance() // eat '='
		value, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		return &Assign{Name: name, Value: value}, nil

	default:
		return &Variable{Name: name}, nil
	}
}

func (p *parser) parseArguments() ([]Expr, error) {
	var args []Expr
	if p.current.Kind == TokenRParen {
		p.advance()
		return args, nil
	}

	for {
		arg, err := p.parseBP(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch p.current.Kind {
		case TokenComma:
			p.advance()
		case TokenRParen:
			p.advance()
			return args, nil
		default:
			return nil, domain.ErrParser("expected ',' or ')' in argument list")
		}
	}
}

const prefixMinusBP = 9

func infixBindingPower(kind TokenKind) (left, right uint8, ok bool) {
	switch kind {
	case TokenPlus, TokenMinus:
		return 1, 2, true
	case TokenMultiply, TokenDivide, TokenPercent:
		return 3, 4, true
	case TokenPower:
		return 6, 5, true // right associative: 2^3^4 = 2^(3^4)
	}
	return 0, 0, false
}
