package expr

import (
	"fmt"
	"strconv"

	"github.com/amplet/amplet/model"
)

// Resolver resolves a bare identifier to a declared model symbol.
// *model.Model implements it.
type Resolver interface {
	Lookup(name string) (*model.Symbol, bool)
}

// Parse parses a normalized infix expression (see Rewrite) into a tree.
// Identifiers are resolved through r; an identifier that is neither declared
// nor a numeric literal fails with ErrUnresolvedSymbol. Unbalanced grouping
// or leftover input fails with ErrMalformedExpression.
func Parse(s string, r Resolver) (Expr, error) {
	p := &parser{src: s, resolver: r}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return nil, fmt.Errorf("%w: trailing input %q in %q", ErrMalformedExpression, p.src[p.pos:], p.src)
	}
	return e, nil
}

// parser holds the cursor for one Parse call. Each invocation owns its own
// parser; the cursor is never shared across independent parses.
type parser struct {
	src      string
	pos      int
	resolver Resolver
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) skipSpaces() {
	for !p.eof() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func isOperatorChar(c byte) bool {
	switch c {
	case '=', '+', '-', '*', '/', '^', '>', '<':
		return true
	}
	return false
}

// parseExpression reads at most one binary operator between two operands.
// The upstream producer guarantees that shape per bracket level.
func (p *parser) parseExpression() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	p.skipSpaces()
	if p.eof() || p.src[p.pos] == ')' || p.src[p.pos] == ',' {
		return left, nil
	}

	op, err := p.parseOperator()
	if err != nil {
		return nil, err
	}

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	return &Binary{Op: op, L: left, R: right}, nil
}

func (p *parser) parseOperator() (Operator, error) {
	c := p.src[p.pos]
	p.pos++
	switch c {
	case '=':
		return OpEq, nil
	case '+':
		return OpAdd, nil
	case '-':
		return OpSub, nil
	case '*':
		return OpMul, nil
	case '/':
		return OpDiv, nil
	case '^':
		return OpPow, nil
	case '>':
		if !p.eof() && p.src[p.pos] == '=' {
			p.pos++
			return OpGeq, nil
		}
		return OpGt, nil
	case '<':
		if !p.eof() && p.src[p.pos] == '=' {
			p.pos++
			return OpLeq, nil
		}
		return OpLt, nil
	default:
		return 0, fmt.Errorf("%w: unexpected %q in %q", ErrMalformedExpression, string(c), p.src)
	}
}

// parseOperand reads a parenthesized sub-expression, a signed operand, a
// call, or a bare identifier/literal run.
func (p *parser) parseOperand() (Expr, error) {
	p.skipSpaces()
	if p.eof() {
		return nil, fmt.Errorf("%w: unexpected end of %q", ErrMalformedExpression, p.src)
	}

	switch c := p.src[p.pos]; {
	case c == '(':
		p.pos++
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		p.skipSpaces()
		if p.eof() || p.src[p.pos] != ')' {
			return nil, fmt.Errorf("%w: missing closing parenthesis in %q", ErrMalformedExpression, p.src)
		}
		p.pos++
		return e, nil

	case c == '+' || c == '-':
		p.pos++
		x, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if c == '+' {
			return x, nil
		}
		if lit, ok := x.(Literal); ok {
			return -lit, nil
		}
		return &Unary{Op: OpSub, X: x}, nil
	}

	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if isOperatorChar(c) || c == ')' || c == '(' || c == ',' || c == ' ' {
			break
		}
		p.pos++
	}
	token := p.src[start:p.pos]
	if token == "" {
		return nil, fmt.Errorf("%w: missing operand in %q", ErrMalformedExpression, p.src)
	}

	if !p.eof() && p.src[p.pos] == '(' {
		return p.parseCall(token)
	}

	return p.resolve(token)
}

// parseCall reads the argument list of name(...); the opening parenthesis is
// at the cursor.
func (p *parser) parseCall(name string) (Expr, error) {
	p.pos++ // consume '('
	var args []Expr
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpaces()
		if p.eof() {
			return nil, fmt.Errorf("%w: unterminated call %s(...) in %q", ErrMalformedExpression, name, p.src)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ')':
			p.pos++
			return &Call{Fn: name, Args: args}, nil
		default:
			return nil, fmt.Errorf("%w: unexpected %q in call %s(...)", ErrMalformedExpression, string(p.src[p.pos]), name)
		}
	}
}

// resolve maps an identifier run to a declared symbol or a numeric literal.
func (p *parser) resolve(token string) (Expr, error) {
	if s, ok := p.resolver.Lookup(token); ok {
		return &Ref{Symbol: s}, nil
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not declared and is not numeric", ErrUnresolvedSymbol, token)
	}
	return Literal(v), nil
}
