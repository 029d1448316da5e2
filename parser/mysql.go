package parser

import (
	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/token"
)

// parseSet parses a MySQL SET statement. Per spec.md's open question, the
// right-hand side (including `SET x = NULL`) is preserved as a
// BinaryOperation argument rather than normalized into a dedicated
// (key, value) pair, so callers that care about the assigned value inspect
// Arg.(*ast.BinaryOperation).Args[1] themselves.
func (p *Parser) parseSet() (ast.Node, error) {
	p.advance() // SET

	category := ""
	switch {
	case p.atKeyword("GLOBAL"):
		p.advance()
		category = "GLOBAL"
	case p.atKeyword("SESSION"):
		p.advance()
		category = "SESSION"
	}

	var left ast.Node
	switch {
	case p.atKeyword("NAMES"):
		p.advance()
		left = ast.NewIdentifier("names")
	case p.atKeyword("CHARACTER"):
		p.advance()
		if err := p.expectKeyword("SET"); err != nil {
			return nil, err
		}
		left = ast.NewIdentifier("character_set")
	default:
		id, err := p.parseDottedIdentifier()
		if err != nil {
			return nil, err
		}
		left = id
	}

	if _, err := p.expect(token.Eq); err != nil {
		return nil, err
	}
	right, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	return &ast.Set{Category: category, Arg: ast.NewBinaryOperation("=", left, right)}, nil
}
