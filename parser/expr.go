package parser

import (
	"strconv"
	"strings"

	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/token"
)

// parseExpr parses a full expression: OR is the loosest-binding production.
func (p *Parser) parseExpr() (ast.Node, error) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("OR") {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOperation("or", left, right)
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.atKeyword("AND") {
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOperation("and", left, right)
	}
	return left, nil
}

func (p *Parser) parseNot() (ast.Node, error) {
	if p.atKeyword("NOT") {
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Op: "NOT", Arg: arg}, nil
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() (ast.Node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if p.atKeyword("BETWEEN") {
		p.advance()
		low, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("AND"); err != nil {
			return nil, err
		}
		high, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return &ast.BetweenOperation{Arg: left, Low: low, High: high}, nil
	}

	if p.atKeyword("NOT") {
		// NOT BETWEEN / NOT LIKE / NOT IN
		save := p.pos
		p.advance()
		switch {
		case p.atKeyword("BETWEEN"):
			p.advance()
			low, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			if err := p.expectKeyword("AND"); err != nil {
				return nil, err
			}
			high, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperation{Op: "NOT", Arg: &ast.BetweenOperation{Arg: left, Low: low, High: high}}, nil
		case p.atKeyword("LIKE"):
			p.advance()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperation{Op: "NOT", Arg: ast.NewBinaryOperation("like", left, right)}, nil
		case p.atKeyword("IN"):
			p.advance()
			right, err := p.parseInList()
			if err != nil {
				return nil, err
			}
			return &ast.UnaryOperation{Op: "NOT", Arg: ast.NewBinaryOperation("in", left, right)}, nil
		default:
			p.pos = save
		}
	}

	if p.atKeyword("LIKE") {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOperation("like", left, right), nil
	}

	if p.atKeyword("IN") {
		p.advance()
		right, err := p.parseInList()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOperation("in", left, right), nil
	}

	if p.atKeyword("IS") {
		p.advance()
		neg := false
		if p.atKeyword("NOT") {
			p.advance()
			neg = true
		}
		if err := p.expectKeyword("NULL"); err != nil {
			return nil, err
		}
		right := &ast.NullConstant{}
		op := ast.NewBinaryOperation("is", left, right)
		if neg {
			return &ast.UnaryOperation{Op: "NOT", Arg: op}, nil
		}
		return op, nil
	}

	if op, ok := p.comparisonOp(); ok {
		p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryOperation(op, left, right), nil
	}

	return left, nil
}

func (p *Parser) comparisonOp() (string, bool) {
	switch p.cur().Type {
	case token.Eq:
		return "=", true
	case token.NotEq:
		return p.cur().Raw, true
	case token.Lt:
		return "<", true
	case token.LtEq:
		return "<=", true
	case token.Gt:
		return ">", true
	case token.GtEq:
		return ">=", true
	default:
		return "", false
	}
}

func (p *Parser) parseInList() (ast.Node, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	if p.atKeyword("SELECT") {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		sel.SetParens(true)
		return sel, nil
	}
	var items []ast.Node
	for {
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Tuple{Items: items}, nil
}

func (p *Parser) parseAdditive() (ast.Node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := p.advance().Raw
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOperation(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.Star) || p.at(token.Slash) || p.at(token.Percent) {
		op := p.advance().Raw
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryOperation(op, left, right)
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Node, error) {
	if p.at(token.Minus) {
		p.advance()
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOperation{Op: "-", Arg: arg}, nil
	}
	return p.parsePrimary()
}

// parsePrimary parses the non-recursive (modulo parentheses) leaves of the
// expression grammar: literals, identifiers, function calls, CAST, tuples,
// and parenthesized sub-expressions.
func (p *Parser) parsePrimary() (ast.Node, error) {
	tk := p.cur()
	switch tk.Type {
	case token.Number:
		p.advance()
		return p.parseNumberConstant(tk.Value)
	case token.String:
		p.advance()
		return &ast.Constant{Value: tk.Value, WithQuotes: true}, nil
	case token.Parameter:
		p.advance()
		return &ast.Parameter{Value: "?"}, nil
	case token.UserVar:
		p.advance()
		return &ast.Variable{Value: tk.Value}, nil
	case token.SysVar:
		p.advance()
		return &ast.Variable{Value: tk.Value, IsSystemVar: true}, nil
	case token.Star:
		p.advance()
		return &ast.Star{}, nil
	case token.LParen:
		return p.parseParenExpr()
	case token.Ident:
		return p.parseIdentOrCall()
	case token.Keyword:
		switch tk.Value {
		case "TRUE":
			p.advance()
			return &ast.Constant{Value: true}, nil
		case "FALSE":
			p.advance()
			return &ast.Constant{Value: false}, nil
		case "NULL":
			p.advance()
			return &ast.NullConstant{}, nil
		case "LATEST":
			p.advance()
			return &ast.Latest{}, nil
		case "CAST":
			return p.parseCast()
		case "COUNT", "SUM", "AVG", "MIN", "MAX":
			return p.parseIdentOrCall()
		}
	}
	return nil, p.fail("unexpected token %q while parsing expression", tk.Raw)
}

func (p *Parser) parseNumberConstant(raw string) (ast.Node, error) {
	if !strings.ContainsAny(raw, ".eE") {
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return &ast.Constant{Value: n}, nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, p.fail("invalid numeric literal %q", raw)
	}
	return &ast.Constant{Value: f}, nil
}

func (p *Parser) parseParenExpr() (ast.Node, error) {
	p.advance() // consume '('
	if p.atKeyword("SELECT") {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		sel.SetParens(true)
		return sel, nil
	}
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.at(token.Comma) {
		items := []ast.Node{first}
		for p.at(token.Comma) {
			p.advance()
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return &ast.Tuple{Items: items}, nil
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	if a, ok := first.(ast.Aliasable); ok {
		a.SetParens(true)
	}
	return first, nil
}

func (p *Parser) parseCast() (ast.Node, error) {
	p.advance() // CAST
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	arg, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("AS"); err != nil {
		return nil, err
	}
	typeTok := p.advance()
	typeName := typeTok.Value
	if typeTok.Type != token.Ident && typeTok.Type != token.Keyword {
		return nil, p.fail("expected type name in CAST, got %q", typeTok.Raw)
	}
	// allow types with a length, e.g. VARCHAR(10)
	if p.at(token.LParen) {
		p.advance()
		numTok, err := p.expect(token.Number)
		if err != nil {
			return nil, err
		}
		typeName = typeName + "(" + numTok.Value + ")"
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.TypeCast{Arg: arg, TypeName: typeName}, nil
}

// parseIdentOrCall parses a dotted identifier, or a function call when the
// identifier is immediately followed by '('. COUNT(DISTINCT x) folds into
// Function.Distinct rather than a dedicated node.
func (p *Parser) parseIdentOrCall() (ast.Node, error) {
	name, err := p.parseIdentSegment()
	if err != nil {
		return nil, err
	}
	parts := []string{name}
	for p.at(token.Dot) {
		p.advance()
		seg, err := p.parseIdentSegment()
		if err != nil {
			return nil, err
		}
		parts = append(parts, seg)
	}
	if len(parts) == 1 && p.at(token.LParen) {
		return p.parseCall(name)
	}
	return &ast.Identifier{Parts: parts}, nil
}

func (p *Parser) parseIdentSegment() (string, error) {
	tk := p.cur()
	if tk.Type == token.Ident {
		p.advance()
		return tk.Value, nil
	}
	if tk.Type == token.Keyword {
		p.advance()
		return tk.Value, nil
	}
	return "", p.fail("expected identifier, got %q", tk.Raw)
}

func (p *Parser) parseCall(name string) (ast.Node, error) {
	p.advance() // '('
	fn := &ast.Function{Op: name}
	if p.at(token.Star) {
		p.advance()
		fn.Args = []ast.Node{&ast.Star{}}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return fn, nil
	}
	if p.atKeyword("DISTINCT") {
		p.advance()
		fn.Distinct = true
	}
	if !p.at(token.RParen) {
		for {
			arg, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			fn.Args = append(fn.Args, arg)
			if p.at(token.Comma) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return fn, nil
}
