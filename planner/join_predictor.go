package planner

import (
	"fmt"
	"strings"

	"github.com/kothariji/mindsdb-sql/ast"
)

// planJoinPredictor implements spec.md §4.5: a join of an integration table
// with a (non-time-series) predictor.
func planJoinPredictor(b *builder, sel *ast.Select, join *ast.Join, integrationID, predictorID *ast.Identifier, integrations []string, cfg *options) (*QueryPlan, error) {
	integrationAlias := aliasOf(integrationID)
	predictorAlias := aliasOf(predictorID)

	if sel.Where != nil {
		if err := requireWhereOnlyReferences(sel.Where, integrationID, integrationAlias); err != nil {
			return nil, err
		}
	}

	fetch := b.add(&FetchDataframeStep{
		Integration: integrationID.Parts[0],
		Query: &ast.Select{
			Targets:   []ast.Node{&ast.Star{}},
			FromTable: stripFirstSegment(integrationID),
			Where:     sel.Where,
		},
	})
	applied := b.add(&ApplyPredictorStep{
		Namespace: cfg.predictorNamespace,
		Predictor: stripFirstSegment(predictorID),
		Dataframe: fetch,
	})

	var cond ast.Node
	if join.Condition != nil {
		rewritten, err := validateAndStripJoinCondition(join.Condition, integrationID, predictorID, integrations)
		if err != nil {
			return nil, err
		}
		cond = rewritten
	}

	joinQuery := &ast.Join{
		Left:      resultIdentifier(int(fetch), integrationAlias),
		Right:     resultIdentifier(int(applied), predictorAlias),
		JoinType:  join.JoinType,
		Condition: cond,
		Implicit:  join.Implicit,
	}
	cur := b.add(&JoinStep{Left: fetch, Right: applied, Query: joinQuery})

	if len(sel.GroupBy) > 0 {
		cur = b.add(&GroupByStep{Dataframe: cur, Targets: sel.Targets, Columns: sel.GroupBy})
	}
	if sel.Having != nil {
		cur = b.add(&FilterStep{Dataframe: cur, Query: sel.Having})
	}
	if len(sel.OrderBy) > 0 {
		cur = b.add(&OrderByStep{Dataframe: cur, OrderBy: sel.OrderBy})
	}
	if sel.Limit != nil || sel.Offset != nil {
		cur = b.add(&LimitOffsetStep{Dataframe: cur, Limit: sel.Limit, Offset: sel.Offset})
	}
	b.add(&ProjectStep{Dataframe: cur, Columns: sel.Targets})

	return b.build(cfg.defaultNamespace, integrations), nil
}

// requireWhereOnlyReferences rejects a WHERE whose identifiers reference
// anything but the integration side — the predictor has no pre-existing
// columns to filter a fetch by.
func requireWhereOnlyReferences(where ast.Node, integrationID *ast.Identifier, integrationAlias string) error {
	integrationName := strings.ToLower(integrationID.Parts[len(integrationID.Parts)-1])
	alias := strings.ToLower(integrationAlias)
	for _, id := range collectIdentifiers(where) {
		table, ok := identifierTable(id)
		if !ok {
			continue
		}
		table = strings.ToLower(table)
		if table != integrationName && table != alias {
			return NewPlanningException(fmt.Sprintf("WHERE conjunct %q references the predictor side, which has no pre-existing columns to filter by", where.ToString()))
		}
	}
	return nil
}
