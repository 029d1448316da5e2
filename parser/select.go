package parser

import (
	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/token"
)

// clauseOrder assigns each post-target SELECT clause its canonical position;
// parseSelect rejects any clause appearing before one already consumed.
var clauseOrder = map[string]int{
	"FROM":   0,
	"WHERE":  1,
	"GROUP":  2,
	"HAVING": 3,
	"ORDER":  4,
	"LIMIT":  5,
	"OFFSET": 6,
}

// parseSelect parses a SELECT statement starting at the SELECT keyword
// (already positioned, not yet consumed — callers that recurse into a
// parenthesized subquery rely on this).
func (p *Parser) parseSelect() (*ast.Select, error) {
	if err := p.expectKeyword("SELECT"); err != nil {
		return nil, err
	}
	sel := &ast.Select{}
	if p.atKeyword("DISTINCT") {
		p.advance()
		sel.Distinct = true
	}

	target, err := p.parseSelectTarget()
	if err != nil {
		return nil, err
	}
	sel.Targets = append(sel.Targets, target)
	for p.at(token.Comma) {
		p.advance()
		target, err := p.parseSelectTarget()
		if err != nil {
			return nil, err
		}
		sel.Targets = append(sel.Targets, target)
	}

	stage := -1
	seen := map[string]bool{}
	for {
		kw, ok := p.peekClauseKeyword()
		if !ok {
			break
		}
		idx := clauseOrder[kw]
		if seen[kw] {
			return nil, p.fail("duplicate %s clause", kw)
		}
		if idx <= stage {
			return nil, p.fail("%s clause must go after the clause already parsed", kw)
		}

		switch kw {
		case "FROM":
			p.advance()
			from, err := p.parseFromChain()
			if err != nil {
				return nil, err
			}
			sel.FromTable = from
		case "WHERE":
			p.advance()
			if sel.FromTable == nil {
				return nil, p.fail("WHERE requires a FROM clause")
			}
			where, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if !isBooleanNode(where) {
				return nil, p.fail("WHERE must contain an operation that evaluates to a boolean")
			}
			if a, ok := where.(ast.Aliasable); ok && a.GetAlias() != nil {
				return nil, p.fail("WHERE expression may not carry an alias")
			}
			sel.Where = where
		case "GROUP":
			p.advance()
			if err := p.expectKeyword("BY"); err != nil {
				return nil, err
			}
			items, err := p.parseExprList()
			if err != nil {
				return nil, err
			}
			sel.GroupBy = items
		case "HAVING":
			p.advance()
			having, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			sel.Having = having
		case "ORDER":
			p.advance()
			if err := p.expectKeyword("BY"); err != nil {
				return nil, err
			}
			items, err := p.parseOrderByList()
			if err != nil {
				return nil, err
			}
			sel.OrderBy = items
		case "LIMIT":
			p.advance()
			first, err := p.parseIntConstant()
			if err != nil {
				return nil, err
			}
			if p.at(token.Comma) {
				p.advance()
				second, err := p.parseIntConstant()
				if err != nil {
					return nil, err
				}
				sel.Offset = first
				sel.Limit = second
			} else {
				sel.Limit = first
			}
		case "OFFSET":
			p.advance()
			if sel.Offset != nil {
				return nil, p.fail("OFFSET conflicts with the offset already given by LIMIT a, b")
			}
			offset, err := p.parseIntConstant()
			if err != nil {
				return nil, err
			}
			sel.Offset = offset
		}

		stage = idx
		seen[kw] = true
	}

	return sel, nil
}

// peekClauseKeyword reports the upcoming post-target clause keyword, if any.
// ORDER and GROUP are two-word clauses (ORDER BY / GROUP BY) but are keyed by
// their leading word.
func (p *Parser) peekClauseKeyword() (string, bool) {
	if p.cur().Type != token.Keyword {
		return "", false
	}
	kw := p.cur().Value
	if _, ok := clauseOrder[kw]; ok {
		return kw, true
	}
	return "", false
}

func isBooleanNode(n ast.Node) bool {
	switch n.(type) {
	case *ast.BinaryOperation, *ast.UnaryOperation, *ast.BetweenOperation:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIntConstant() (*ast.Constant, error) {
	tk := p.cur()
	if tk.Type != token.Number {
		return nil, p.fail("expected an integer literal, got %q", tk.Raw)
	}
	n, err := p.parseNumberConstant(tk.Value)
	if err != nil {
		return nil, err
	}
	c, ok := n.(*ast.Constant)
	if !ok {
		return nil, p.fail("expected an integer literal, got %q", tk.Raw)
	}
	if _, ok := c.Value.(int64); !ok {
		return nil, p.fail("LIMIT/OFFSET must be an integer literal, got %q", tk.Raw)
	}
	p.advance()
	return c, nil
}

func (p *Parser) parseExprList() ([]ast.Node, error) {
	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	items := []ast.Node{first}
	for p.at(token.Comma) {
		p.advance()
		item, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Parser) parseOrderByList() ([]*ast.OrderBy, error) {
	var out []*ast.OrderBy
	for {
		field, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		ob := &ast.OrderBy{Field: field}
		switch {
		case p.atKeyword("ASC"):
			p.advance()
			ob.Direction = ast.DirAsc
		case p.atKeyword("DESC"):
			p.advance()
			ob.Direction = ast.DirDesc
		}
		if p.atKeyword("NULLS") {
			p.advance()
			switch {
			case p.atKeyword("FIRST"):
				p.advance()
				ob.Nulls = ast.NullsFirst
			case p.atKeyword("LAST"):
				p.advance()
				ob.Nulls = ast.NullsLast
			default:
				return nil, p.fail("expected FIRST or LAST after NULLS, got %q", p.cur().Raw)
			}
		}
		out = append(out, ob)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return out, nil
}

// parseSelectTarget parses one SELECT-list item: an expression with an
// optional `AS alias` or bare juxtaposed alias.
func (p *Parser) parseSelectTarget() (ast.Node, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	return p.parseOptionalAlias(expr)
}

// parseOptionalAlias consumes a trailing `AS name` or bare `name` alias and
// attaches it to n, which must implement ast.Aliasable.
func (p *Parser) parseOptionalAlias(n ast.Node) (ast.Node, error) {
	a, ok := n.(ast.Aliasable)
	if !ok {
		return n, nil
	}
	if p.atKeyword("AS") {
		p.advance()
		name, err := p.parseAliasName()
		if err != nil {
			return nil, err
		}
		a.SetAlias(ast.NewIdentifier(name))
		return n, nil
	}
	if p.at(token.Ident) {
		name := p.advance().Value
		a.SetAlias(ast.NewIdentifier(name))
	}
	return n, nil
}

func (p *Parser) parseAliasName() (string, error) {
	tk := p.cur()
	if tk.Type != token.Ident && tk.Type != token.Keyword {
		return "", p.fail("expected an alias name, got %q", tk.Raw)
	}
	p.advance()
	return tk.Value, nil
}

// parseFromChain parses a FROM clause: a left-associative tree of implicit
// (comma) and explicit JOIN operators over table factors.
func (p *Parser) parseFromChain() (ast.Node, error) {
	left, err := p.parseFromItem()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.at(token.Comma):
			p.advance()
			right, err := p.parseFromItem()
			if err != nil {
				return nil, err
			}
			left = &ast.Join{Left: left, Right: right, Implicit: true}
		case p.isJoinStart():
			jt, err := p.parseJoinType()
			if err != nil {
				return nil, err
			}
			right, err := p.parseFromItem()
			if err != nil {
				return nil, err
			}
			var cond ast.Node
			if p.atKeyword("ON") {
				p.advance()
				cond, err = p.parseExpr()
				if err != nil {
					return nil, err
				}
			}
			left = &ast.Join{Left: left, Right: right, JoinType: jt, Condition: cond}
		default:
			return left, nil
		}
	}
}

func (p *Parser) isJoinStart() bool {
	return p.atKeyword("JOIN") || p.atKeyword("INNER") || p.atKeyword("LEFT") ||
		p.atKeyword("RIGHT") || p.atKeyword("FULL")
}

func (p *Parser) parseJoinType() (ast.JoinType, error) {
	jt := ast.InnerJoin
	switch {
	case p.atKeyword("INNER"):
		p.advance()
	case p.atKeyword("LEFT"):
		p.advance()
		jt = ast.LeftJoin
	case p.atKeyword("RIGHT"):
		p.advance()
		jt = ast.RightJoin
	case p.atKeyword("FULL"):
		p.advance()
		jt = ast.FullJoin
	}
	if p.atKeyword("OUTER") {
		p.advance()
	}
	if err := p.expectKeyword("JOIN"); err != nil {
		return jt, err
	}
	return jt, nil
}

// parseFromItem parses one FROM-clause table factor: a dotted table name, or
// a parenthesized subquery or join group, each with an optional alias.
func (p *Parser) parseFromItem() (ast.Node, error) {
	if p.at(token.LParen) {
		p.advance()
		var inner ast.Node
		var err error
		if p.atKeyword("SELECT") {
			inner, err = p.parseSelect()
		} else {
			inner, err = p.parseFromChain()
		}
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		if a, ok := inner.(ast.Aliasable); ok {
			a.SetParens(true)
		}
		return p.parseOptionalAlias(inner)
	}

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
	id := &ast.Identifier{Parts: parts}
	return p.parseOptionalAlias(id)
}
