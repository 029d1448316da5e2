package parser

import "github.com/kothariji/mindsdb-sql/ast"

// ParseStatement dispatches on the leading keyword to the production for one
// top-level statement. SQLite and MySQL share everything through ALTER
// TABLE; CREATE/DROP PREDICTOR and RETRAIN are mindsdb-only.
func (p *Parser) ParseStatement() (ast.Node, error) {
	switch {
	case p.atKeyword("SELECT"):
		return p.parseSelect()
	case p.atKeyword("SET"):
		return p.parseSet()
	case p.atKeyword("USE"):
		return p.parseUse()
	case p.atKeyword("START"):
		return p.parseStartTransaction()
	case p.atKeyword("COMMIT"):
		p.advance()
		return ast.CommitTransaction{}, nil
	case p.atKeyword("ROLLBACK"):
		p.advance()
		return ast.RollbackTransaction{}, nil
	case p.atKeyword("EXPLAIN"):
		return p.parseExplain()
	case p.atKeyword("ALTER"):
		return p.parseAlterTable()
	case p.atKeyword("CREATE"):
		return p.parseCreatePredictor()
	case p.atKeyword("RETRAIN"):
		return p.parseRetrainPredictor()
	case p.atKeyword("DROP"):
		return p.parseDropPredictor()
	default:
		return nil, p.fail("unexpected token %q at start of statement", p.cur().Raw)
	}
}

func (p *Parser) parseStartTransaction() (ast.Node, error) {
	p.advance() // START
	if err := p.expectKeyword("TRANSACTION"); err != nil {
		return nil, err
	}
	return ast.StartTransaction{}, nil
}

func (p *Parser) parseExplain() (ast.Node, error) {
	p.advance() // EXPLAIN
	if p.atKeyword("SELECT") {
		sel, err := p.parseSelect()
		if err != nil {
			return nil, err
		}
		return &ast.Explain{Target: sel}, nil
	}
	target, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.Explain{Target: target}, nil
}

func (p *Parser) parseAlterTable() (ast.Node, error) {
	p.advance() // ALTER
	if err := p.expectKeyword("TABLE"); err != nil {
		return nil, err
	}
	table, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.AlterTable{Table: table, Arg: p.restRaw()}, nil
}

func (p *Parser) parseUse() (ast.Node, error) {
	p.advance() // USE
	value, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.Use{Value: value}, nil
}
