package parser

import (
	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/token"
)

// parseCreatePredictor parses `CREATE [OR REPLACE] PREDICTOR name FROM
// integration (select) PREDICT target[, ...] [ORDER BY ...] [GROUP BY ...]
// [WINDOW n] [HORIZON n] [USING k=v, ...]`.
func (p *Parser) parseCreatePredictor() (ast.Node, error) {
	p.advance() // CREATE
	replace := false
	if p.atKeyword("OR") {
		p.advance()
		if err := p.expectKeyword("REPLACE"); err != nil {
			return nil, err
		}
		replace = true
	}
	cp, err := p.parsePredictorBody()
	if err != nil {
		return nil, err
	}
	cp.Replace = replace
	return cp, nil
}

// parseRetrainPredictor parses `RETRAIN PREDICTOR name [FROM integration
// (select) PREDICT target[, ...]]` — name's existing training spec is
// reused when FROM is absent.
func (p *Parser) parseRetrainPredictor() (ast.Node, error) {
	p.advance() // RETRAIN
	if err := p.expectKeyword("PREDICTOR"); err != nil {
		return nil, err
	}
	name, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}
	cp := &ast.CreatePredictor{Name: name, Retrain: true}
	if p.atKeyword("FROM") {
		if err := p.parsePredictorTrainingSpec(cp); err != nil {
			return nil, err
		}
	}
	return cp, nil
}

func (p *Parser) parsePredictorBody() (*ast.CreatePredictor, error) {
	if err := p.expectKeyword("PREDICTOR"); err != nil {
		return nil, err
	}
	name, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}
	cp := &ast.CreatePredictor{Name: name}
	if err := p.parsePredictorTrainingSpec(cp); err != nil {
		return nil, err
	}
	return cp, nil
}

// parsePredictorTrainingSpec parses the `FROM integration (select) PREDICT
// target[, ...] [ORDER BY ...] [GROUP BY ...] [WINDOW n] [HORIZON n]
// [USING k=v, ...]` tail shared by CREATE and RETRAIN PREDICTOR.
func (p *Parser) parsePredictorTrainingSpec(cp *ast.CreatePredictor) error {
	if err := p.expectKeyword("FROM"); err != nil {
		return err
	}
	integration, err := p.parseIdentSegment()
	if err != nil {
		return err
	}
	cp.IntegrationName = integration

	if _, err := p.expect(token.LParen); err != nil {
		return err
	}
	query, err := p.parseSelect()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return err
	}
	cp.Query = query

	if err := p.expectKeyword("PREDICT"); err != nil {
		return err
	}
	targets, err := p.parsePredictTargetList()
	if err != nil {
		return err
	}
	cp.Targets = targets

	if p.atKeyword("ORDER") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return err
		}
		orderBy, err := p.parseOrderByList()
		if err != nil {
			return err
		}
		cp.OrderBy = orderBy
	}

	if p.atKeyword("GROUP") {
		p.advance()
		if err := p.expectKeyword("BY"); err != nil {
			return err
		}
		groupBy, err := p.parseExprList()
		if err != nil {
			return err
		}
		cp.GroupBy = groupBy
	}

	if p.atKeyword("WINDOW") {
		p.advance()
		n, err := p.parseIntConstant()
		if err != nil {
			return err
		}
		cp.Window = n
	}

	if p.atKeyword("HORIZON") {
		p.advance()
		n, err := p.parseIntConstant()
		if err != nil {
			return err
		}
		cp.Horizon = n
	}

	if p.atKeyword("USING") {
		p.advance()
		using, err := p.parseUsingList()
		if err != nil {
			return err
		}
		cp.Using = using
	}

	return nil
}

// parsePredictTargetList parses the PREDICT clause's target list; each item
// is parsed like a SELECT target, an expression with an optional alias.
func (p *Parser) parsePredictTargetList() ([]ast.Node, error) {
	first, err := p.parseSelectTarget()
	if err != nil {
		return nil, err
	}
	targets := []ast.Node{first}
	for p.at(token.Comma) {
		p.advance()
		t, err := p.parseSelectTarget()
		if err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, nil
}

// parseUsingList parses USING's comma-separated `key = value` option list.
func (p *Parser) parseUsingList() (map[string]ast.Node, error) {
	using := map[string]ast.Node{}
	for {
		key, err := p.parseIdentSegment()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Eq); err != nil {
			return nil, err
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		using[key] = val
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		break
	}
	return using, nil
}

// parseDropPredictor parses `DROP PREDICTOR name`.
func (p *Parser) parseDropPredictor() (ast.Node, error) {
	p.advance() // DROP
	if err := p.expectKeyword("PREDICTOR"); err != nil {
		return nil, err
	}
	name, err := p.parseDottedIdentifier()
	if err != nil {
		return nil, err
	}
	return &ast.DropPredictor{Name: name}, nil
}
