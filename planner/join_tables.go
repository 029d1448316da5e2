package planner

import (
	"fmt"
	"strings"

	"github.com/kothariji/mindsdb-sql/ast"
)

// planJoinTables implements spec.md §4.4: a join of two integration tables.
func planJoinTables(b *builder, sel *ast.Select, join *ast.Join, leftID, rightID *ast.Identifier, integrations []string, cfg *options) (*QueryPlan, error) {
	leftAlias := aliasOf(leftID)
	rightAlias := aliasOf(rightID)

	leftFetch := b.add(&FetchDataframeStep{
		Integration: leftID.Parts[0],
		Query:       &ast.Select{Targets: []ast.Node{&ast.Star{}}, FromTable: stripFirstSegment(leftID)},
	})
	rightFetch := b.add(&FetchDataframeStep{
		Integration: rightID.Parts[0],
		Query:       &ast.Select{Targets: []ast.Node{&ast.Star{}}, FromTable: stripFirstSegment(rightID)},
	})

	var cond ast.Node
	if join.Condition != nil {
		rewritten, err := validateAndStripJoinCondition(join.Condition, leftID, rightID, integrations)
		if err != nil {
			return nil, err
		}
		cond = rewritten
	}

	joinQuery := &ast.Join{
		Left:      resultIdentifier(int(leftFetch), leftAlias),
		Right:     resultIdentifier(int(rightFetch), rightAlias),
		JoinType:  join.JoinType,
		Condition: cond,
		Implicit:  join.Implicit,
	}
	joinResult := b.add(&JoinStep{Left: leftFetch, Right: rightFetch, Query: joinQuery})

	cur := joinResult
	if sel.Where != nil {
		cur = b.add(&FilterStep{Dataframe: cur, Query: sel.Where})
	}

	targets := sel.Targets
	if len(sel.GroupBy) > 0 {
		cur = b.add(&GroupByStep{Dataframe: cur, Targets: sel.Targets, Columns: sel.GroupBy})
		targets = rewriteAggregateTargets(sel.Targets)
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
	b.add(&ProjectStep{Dataframe: cur, Columns: targets})

	return b.build(cfg.defaultNamespace, integrations), nil
}

// validateAndStripJoinCondition checks that every identifier in cond has a
// table prefix (after optionally stripping a leading integration segment)
// naming one of the join's two tables, then returns cond with that
// integration segment stripped from every identifier (e.g.
// `int.tab1.column1` → `tab1.column1`).
func validateAndStripJoinCondition(cond ast.Node, leftID, rightID *ast.Identifier, integrations []string) (ast.Node, error) {
	leftName := strings.ToLower(leftID.Parts[len(leftID.Parts)-1])
	rightName := strings.ToLower(rightID.Parts[len(rightID.Parts)-1])
	leftAlias := strings.ToLower(aliasOf(leftID))
	rightAlias := strings.ToLower(aliasOf(rightID))

	var firstErr error
	result := rewriteIdentifiers(cond, func(id *ast.Identifier) *ast.Identifier {
		parts := append([]string(nil), id.Parts...)
		if len(parts) < 2 {
			if firstErr == nil {
				firstErr = NewPlanningException(fmt.Sprintf("join condition identifier %q is missing a table prefix", id.ToString()))
			}
			return id
		}
		if isIntegrationSegment(parts[0], integrations) {
			parts = parts[1:]
		}
		if len(parts) < 2 {
			if firstErr == nil {
				firstErr = NewPlanningException(fmt.Sprintf("join condition identifier %q is missing a table prefix", id.ToString()))
			}
			return id
		}
		table := strings.ToLower(parts[0])
		if table != leftName && table != rightName && table != leftAlias && table != rightAlias {
			if firstErr == nil {
				firstErr = NewPlanningException(fmt.Sprintf("join condition identifier %q references a table not in the join", id.ToString()))
			}
			return id
		}
		return ast.NewIdentifier(parts...)
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return result, nil
}

func isIntegrationSegment(seg string, integrations []string) bool {
	for _, in := range integrations {
		if in == seg {
			return true
		}
	}
	return false
}

// rewriteAggregateTargets implements the GroupBy projection rewrite: an
// aggregate function target (e.g. `sum(tab2.column2) AS total`) is rewired
// in the final ProjectStep to reference the aggregate's output column by
// name rather than re-evaluating the function expression.
func rewriteAggregateTargets(targets []ast.Node) []ast.Node {
	out := make([]ast.Node, len(targets))
	for i, t := range targets {
		fn, ok := t.(*ast.Function)
		if !ok {
			out[i] = t
			continue
		}
		col := ast.NewIdentifier(strings.ToLower(fn.Op) + "(" + fn.Args[0].ToString() + ")")
		if alias := fn.GetAlias(); alias != nil {
			col.SetAlias(alias)
		}
		out[i] = col
	}
	return out
}
