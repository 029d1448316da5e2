package planner

import (
	"fmt"

	"github.com/kothariji/mindsdb-sql/ast"
)

// planPredictorOnly implements spec.md §4.3 rule 5: a SELECT whose FROM
// names only a predictor (e.g. `SELECT x FROM mindsdb.pred WHERE a=1 AND
// b=2`). Every WHERE conjunct must be a column=literal equality; together
// they fold into a single literal row-dict the predictor is applied to.
func planPredictorOnly(b *builder, sel *ast.Select, tbl *ast.Identifier, integrations []string, cfg *options) (*QueryPlan, error) {
	row := map[string]ast.Node{}
	for _, conjunct := range splitConjuncts(sel.Where) {
		bo, ok := conjunct.(*ast.BinaryOperation)
		if !ok || bo.Op != "=" {
			return nil, NewPlanningException(fmt.Sprintf("predictor-only SELECT WHERE must be a conjunction of column=literal equalities, got %q", conjunct.ToString()))
		}
		col, ok := bo.Args[0].(*ast.Identifier)
		if !ok {
			return nil, NewPlanningException(fmt.Sprintf("predictor-only SELECT WHERE left side must be a column reference, got %q", bo.Args[0].ToString()))
		}
		switch bo.Args[1].(type) {
		case *ast.Constant, *ast.NullConstant:
		default:
			return nil, NewPlanningException(fmt.Sprintf("predictor-only SELECT WHERE right side must be a literal, got %q", bo.Args[1].ToString()))
		}
		row[col.Parts[len(col.Parts)-1]] = bo.Args[1]
	}

	predictor := stripFirstSegment(tbl)
	b.add(&ApplyPredictorRowStep{
		Namespace: cfg.predictorNamespace,
		Predictor: predictor,
		RowDict:   row,
	})
	return b.build(cfg.defaultNamespace, integrations), nil
}
