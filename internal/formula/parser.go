package formula

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

type expr interface {
	eval(env Env) (cty.Value, error)
}

type identExpr struct{ name string }

type litExpr struct{ val cty.Value }

type notExpr struct{ operand expr }

type binaryExpr struct {
	op  tokenKind
	lhs expr
	rhs expr
}

type callExpr struct {
	name string
	args []expr
}

type parser struct {
	sc  *scanner
	tok token
}

// Parse compiles a formula body (sentinel already stripped) into an
// evaluable expression.
func parse(src string) (expr, error) {
	p := &parser{sc: newScanner(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.tok.text, p.tok.pos)
	}
	return e, nil
}

func (p *parser) advance() error {
	tok, err := p.sc.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) parseOr() (expr, error) {
	lhs, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenOr {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		lhs = &binaryExpr{op: tokenOr, lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseAnd() (expr, error) {
	lhs, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == tokenAnd {
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		lhs = &binaryExpr{op: tokenAnd, lhs: lhs, rhs: rhs}
	}
	return lhs, nil
}

func (p *parser) parseNot() (expr, error) {
	if p.tok.kind == tokenNot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		operand, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &notExpr{operand: operand}, nil
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (expr, error) {
	lhs, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	switch p.tok.kind {
	case tokenEq, tokenNeq, tokenLt, tokenGt, tokenLte, tokenGte:
		op := p.tok.kind
		if err := p.advance(); err != nil {
			return nil, err
		}
		rhs, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		return &binaryExpr{op: op, lhs: lhs, rhs: rhs}, nil
	}
	return lhs, nil
}

func (p *parser) parseOperand() (expr, error) {
	tok := p.tok
	switch tok.kind {
	case tokenNumber:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litExpr{val: cty.MustParseNumberVal(tok.text)}, nil

	case tokenString:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litExpr{val: cty.StringVal(tok.text)}, nil

	case tokenTrue:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litExpr{val: cty.True}, nil

	case tokenFalse:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &litExpr{val: cty.False}, nil

	case tokenLParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != tokenRParen {
			return nil, fmt.Errorf("expected ) at position %d", p.tok.pos)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
		return e, nil

	case tokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokenLParen {
			return p.parseCall(tok.text)
		}
		return &identExpr{name: tok.text}, nil

	case tokenAnd, tokenOr:
		// AND/OR in operand position must be the function-call form.
		name := tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind != tokenLParen {
			return nil, fmt.Errorf("%s requires operands on both sides or a call form at position %d", name, tok.pos)
		}
		return p.parseCall(name)
	}
	return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
}

// parseCall parses the argument list after a function name; the opening
// paren is the current token.
func (p *parser) parseCall(name string) (expr, error) {
	if err := p.advance(); err != nil { // consume (
		return nil, err
	}
	call := &callExpr{name: name}
	if p.tok.kind == tokenRParen {
		return call, p.advance()
	}
	for {
		arg, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		call.args = append(call.args, arg)
		switch p.tok.kind {
		case tokenComma:
			if err := p.advance(); err != nil {
				return nil, err
			}
		case tokenRParen:
			return call, p.advance()
		default:
			return nil, fmt.Errorf("expected , or ) at position %d", p.tok.pos)
		}
	}
}
