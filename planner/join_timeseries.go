package planner

import (
	"fmt"
	"strings"

	"github.com/kothariji/mindsdb-sql/ast"
)

// planJoinTimeseries implements spec.md §4.6: a join of an integration
// table with a time-series predictor. The predictor must be invoked once
// per distinct group value with a windowed history ordered by the
// predictor's order_by_column, so the plan scatters over group keys via a
// MapReduceStep before applying the predictor to the gathered history.
func planJoinTimeseries(b *builder, sel *ast.Select, join *ast.Join, integrationID, predictorID *ast.Identifier, meta PredictorMeta, integrations []string, cfg *options) (*QueryPlan, error) {
	integrationAlias := aliasOf(integrationID)
	predictorAlias := aliasOf(predictorID)
	bareTable := stripFirstSegment(integrationID)

	timePred, groupPred, err := splitTimeseriesWhere(sel.Where, meta)
	if err != nil {
		return nil, err
	}

	// Step 0: distinct group keys.
	groupTarget := ast.NewIdentifier(integrationAlias, meta.GroupByColumn)
	groupTarget.SetAlias(ast.NewIdentifier(meta.GroupByColumn))
	groupFetchSel := &ast.Select{Targets: []ast.Node{groupTarget}, FromTable: cloneNode(bareTable).(*ast.Identifier), Distinct: true}
	if groupPred != nil {
		groupFetchSel.Where = groupPred
	}
	groupKeys := b.add(&FetchDataframeStep{Integration: integrationID.Parts[0], Query: groupFetchSel})

	groupPlaceholder := ast.NewBinaryOperation("=",
		ast.NewIdentifier(integrationAlias, meta.GroupByColumn),
		ast.NewConstant("$var"))

	// Step 1: MapReduce scatter.
	template, outputFilter, err := buildTimeseriesTemplate(integrationID.Parts[0], bareTable, integrationAlias, meta, timePred, groupPred, groupPlaceholder)
	if err != nil {
		return nil, err
	}
	mapReduce := b.add(&MapReduceStep{Values: groupKeys, Reduce: "union", Step: template})

	// Step 2: predictor application.
	applied := b.add(&ApplyTimeseriesPredictorStep{
		Namespace:        cfg.predictorNamespace,
		Predictor:        stripFirstSegment(predictorID),
		Dataframe:        mapReduce,
		OutputTimeFilter: outputFilter,
	})

	// Step 3: join, predictor output left-joined onto the windowed history.
	joinQuery := &ast.Join{
		Left:     resultIdentifier(int(applied), predictorAlias),
		Right:    resultIdentifier(int(mapReduce), integrationAlias),
		JoinType: ast.LeftJoin,
	}
	cur := b.add(&JoinStep{Left: applied, Right: mapReduce, Query: joinQuery})

	if sel.Limit != nil || sel.Offset != nil {
		cur = b.add(&LimitOffsetStep{Dataframe: cur, Limit: sel.Limit, Offset: sel.Offset})
	}
	b.add(&ProjectStep{Dataframe: cur, Columns: sel.Targets})

	return b.build(cfg.defaultNamespace, integrations), nil
}

// splitTimeseriesWhere decomposes a time-series join's WHERE into its two
// permitted conjuncts: a time predicate on order_by_column and an equality
// on group_by_column, combined by a single top-level AND. Anything else is
// malformed.
func splitTimeseriesWhere(where ast.Node, meta PredictorMeta) (timePred ast.Node, groupPred *ast.BinaryOperation, err error) {
	if where == nil {
		return nil, nil, nil
	}
	conjuncts := splitConjuncts(where)
	if len(conjuncts) > 2 {
		return nil, nil, NewPlanningException("time-series WHERE must be at most a time predicate and a group-key equality joined by a single AND")
	}
	for _, c := range conjuncts {
		switch v := c.(type) {
		case *ast.BinaryOperation:
			col, ok := v.Args[0].(*ast.Identifier)
			if !ok {
				return nil, nil, NewPlanningException(fmt.Sprintf("time-series WHERE conjunct %q does not compare a column", v.ToString()))
			}
			name := col.Parts[len(col.Parts)-1]
			switch {
			case strings.EqualFold(name, meta.OrderByColumn):
				if timePred != nil {
					return nil, nil, NewPlanningException("time-series WHERE has more than one time predicate")
				}
				timePred = v
			case strings.EqualFold(name, meta.GroupByColumn) && v.Op == "=":
				if groupPred != nil {
					return nil, nil, NewPlanningException("time-series WHERE has more than one group-key predicate")
				}
				groupPred = v
			default:
				return nil, nil, NewPlanningException(fmt.Sprintf("time-series WHERE references unknown column %q", name))
			}
		case *ast.BetweenOperation:
			col, ok := v.Arg.(*ast.Identifier)
			if !ok || !strings.EqualFold(col.Parts[len(col.Parts)-1], meta.OrderByColumn) {
				return nil, nil, NewPlanningException(fmt.Sprintf("time-series WHERE conjunct %q does not compare the order-by column", v.ToString()))
			}
			if timePred != nil {
				return nil, nil, NewPlanningException("time-series WHERE has more than one time predicate")
			}
			timePred = v
		default:
			return nil, nil, NewPlanningException(fmt.Sprintf("time-series WHERE conjunct %q is not a comparison", c.ToString()))
		}
	}
	return timePred, groupPred, nil
}

// buildTimeseriesTemplate builds the MapReduceStep template per spec.md
// §4.6's table of original-time-predicate shapes, and returns the
// predictor's output_time_filter (the original predicate, or nil). Every
// template WHERE ANDs in the original non-time group-key conjunct (if any)
// ahead of the $var placeholder, per spec.md §4.6 Step 1.
func buildTimeseriesTemplate(integration string, bareTable *ast.Identifier, alias string, meta PredictorMeta, timePred ast.Node, groupPred *ast.BinaryOperation, groupPlaceholder ast.Node) (Step, ast.Node, error) {
	desc := &ast.OrderBy{Field: ast.NewIdentifier(alias, meta.OrderByColumn), Direction: ast.DirDesc}

	nonTimeWhere := func(extra ...ast.Node) ast.Node {
		items := append([]ast.Node(nil), extra...)
		if groupPred != nil {
			items = append(items, cloneNode(groupPred))
		}
		items = append(items, cloneNode(groupPlaceholder))
		return combineConjuncts(items)
	}

	mkFetch := func(where ast.Node, limit *ast.Constant) *FetchDataframeStep {
		return &FetchDataframeStep{
			Integration: integration,
			Query: &ast.Select{
				Targets:   []ast.Node{&ast.Star{}},
				FromTable: cloneNode(bareTable).(*ast.Identifier),
				Where:     where,
				OrderBy:   []*ast.OrderBy{desc},
				Limit:     limit,
			},
		}
	}

	switch v := timePred.(type) {
	case nil:
		return mkFetch(nonTimeWhere(), nil), nil, nil

	case *ast.BetweenOperation:
		historyPred := ast.NewBinaryOperation("<", cloneNode(v.Arg), cloneNode(v.Low))
		history := mkFetch(nonTimeWhere(historyPred), windowConstant(meta.Window))
		forecast := mkFetch(nonTimeWhere(cloneNode(v)), nil)
		return &MultipleSteps{Steps: []Step{history, forecast}, Reduce: "union"}, v, nil

	case *ast.BinaryOperation:
		if _, isLatest := v.Args[1].(*ast.Latest); isLatest && v.Op == ">" {
			return mkFetch(nonTimeWhere(), windowConstant(meta.Window)), v, nil
		}
		switch v.Op {
		case "<", "<=":
			return mkFetch(nonTimeWhere(cloneNode(v)), nil), v, nil
		case ">", ">=":
			flipOp := "<="
			if v.Op == ">=" {
				flipOp = "<"
			}
			historyPred := ast.NewBinaryOperation(flipOp, cloneNode(v.Args[0]), cloneNode(v.Args[1]))
			history := mkFetch(nonTimeWhere(historyPred), windowConstant(meta.Window))
			forecast := mkFetch(nonTimeWhere(cloneNode(v)), nil)
			return &MultipleSteps{Steps: []Step{history, forecast}, Reduce: "union"}, v, nil
		default:
			return nil, nil, NewPlanningException(fmt.Sprintf("unsupported time-series time predicate operator %q", v.Op))
		}

	default:
		return nil, nil, NewPlanningException("unsupported time-series time predicate shape")
	}
}

func windowConstant(window int) *ast.Constant {
	return &ast.Constant{Value: int64(window)}
}
