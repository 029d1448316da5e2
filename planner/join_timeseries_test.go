package planner_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/planner"
)

func tsMeta(window int) planner.PredictorMeta {
	return planner.PredictorMeta{
		Timeseries:    true,
		OrderByColumn: "pickup_hour",
		GroupByColumn: "vendor_id",
		Window:        window,
	}
}

func tsQuery(where ast.Node) *ast.Select {
	return &ast.Select{
		Targets: []ast.Node{&ast.Star{}},
		FromTable: &ast.Join{
			Left:     identAlias("ta", "mysql", "data", "ny_output"),
			Right:    identAlias("tb", "mindsdb", "tp3"),
			JoinType: ast.InnerJoin,
		},
		Where: where,
	}
}

func tsPlan(t *testing.T, where ast.Node, window int) *planner.QueryPlan {
	t.Helper()
	plan, err := planner.PlanQuery(tsQuery(where), []string{"mysql"},
		planner.WithPredictorNamespace("mindsdb"),
		planner.WithPredictorMetadata(map[string]planner.PredictorMeta{"tp3": tsMeta(window)}))
	require.NoError(t, err)
	return plan
}

func groupDistinctFetch(where ast.Node) *planner.FetchDataframeStep {
	target := ast.NewIdentifier("ta", "vendor_id")
	target.SetAlias(ast.NewIdentifier("vendor_id"))
	return &planner.FetchDataframeStep{
		Integration: "mysql",
		Query: &ast.Select{
			Targets:   []ast.Node{target},
			FromTable: identAlias("ta", "data", "ny_output"),
			Where:     where,
			Distinct:  true,
		},
	}
}

func tsJoinStep() *planner.JoinStep {
	return &planner.JoinStep{
		Left:  planner.Result(2),
		Right: planner.Result(1),
		Query: &ast.Join{
			Left:     identAlias("tb", "result_2"),
			Right:    identAlias("ta", "result_1"),
			JoinType: ast.LeftJoin,
		},
	}
}

// Test_JoinTimeseries_Plan covers the time-series join's base case: no
// WHERE at all, so no group filter and no time predicate.
func Test_JoinTimeseries_Plan(t *testing.T) {
	t.Parallel()
	plan := tsPlan(t, nil, 10)

	want := []planner.Step{
		groupDistinctFetch(nil),
		&planner.MapReduceStep{
			Values: planner.Result(0),
			Reduce: "union",
			Step: &planner.FetchDataframeStep{
				Integration: "mysql",
				Query: &ast.Select{
					Targets:   []ast.Node{&ast.Star{}},
					FromTable: identAlias("ta", "data", "ny_output"),
					Where:     ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant("$var")),
					OrderBy:   []*ast.OrderBy{{Field: ast.NewIdentifier("ta", "pickup_hour"), Direction: ast.DirDesc}},
				},
			},
		},
		&planner.ApplyTimeseriesPredictorStep{
			Namespace: "mindsdb",
			Predictor: identAlias("tb", "tp3"),
			Dataframe: planner.Result(1),
		},
		tsJoinStep(),
		&planner.ProjectStep{Dataframe: planner.Result(3), Columns: []ast.Node{&ast.Star{}}},
	}

	if diff := cmp.Diff(want, plan.Steps, cmpOpts); diff != "" {
		t.Errorf("plan.Steps mismatch (-want +got):\n%s", diff)
	}
}

// Test_JoinTimeseries_FilterByGroupByColumn covers the bug the fixture
// test_join_predictor_timeseries_filter_by_group_by_column guards against:
// the original group-key conjunct must be ANDed into the MapReduce
// template's WHERE alongside the $var placeholder, not dropped.
func Test_JoinTimeseries_FilterByGroupByColumn(t *testing.T) {
	t.Parallel()
	groupFilter := ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant(int64(1)))
	plan := tsPlan(t, groupFilter, 10)

	wantTemplateWhere := ast.NewBinaryOperation("and",
		ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant(int64(1))),
		ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant("$var")),
	)

	want := []planner.Step{
		groupDistinctFetch(groupFilter),
		&planner.MapReduceStep{
			Values: planner.Result(0),
			Reduce: "union",
			Step: &planner.FetchDataframeStep{
				Integration: "mysql",
				Query: &ast.Select{
					Targets:   []ast.Node{&ast.Star{}},
					FromTable: identAlias("ta", "data", "ny_output"),
					Where:     wantTemplateWhere,
					OrderBy:   []*ast.OrderBy{{Field: ast.NewIdentifier("ta", "pickup_hour"), Direction: ast.DirDesc}},
				},
			},
		},
		&planner.ApplyTimeseriesPredictorStep{
			Namespace: "mindsdb",
			Predictor: identAlias("tb", "tp3"),
			Dataframe: planner.Result(1),
		},
		tsJoinStep(),
		&planner.ProjectStep{Dataframe: planner.Result(3), Columns: []ast.Node{&ast.Star{}}},
	}

	if diff := cmp.Diff(want, plan.Steps, cmpOpts); diff != "" {
		t.Errorf("plan.Steps mismatch (-want +got):\n%s", diff)
	}
}

// Test_JoinTimeseries_ConcreteDateGreater reproduces spec.md §8 end-to-end
// scenario #6 exactly: τ > 10 concrete-date-greater shape, with a group
// filter, split into a history/forecast MultipleSteps union.
func Test_JoinTimeseries_ConcreteDateGreater(t *testing.T) {
	t.Parallel()
	groupFilter := ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant(int64(1)))
	timeFilter := ast.NewBinaryOperation(">", ast.NewIdentifier("ta", "pickup_hour"), ast.NewConstant(int64(10)))
	where := ast.NewBinaryOperation("and", timeFilter, groupFilter)
	plan := tsPlan(t, where, 10)

	placeholder := ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant("$var"))
	desc := []*ast.OrderBy{{Field: ast.NewIdentifier("ta", "pickup_hour"), Direction: ast.DirDesc}}

	historyWhere := ast.NewBinaryOperation("and",
		ast.NewBinaryOperation("and",
			ast.NewBinaryOperation("<=", ast.NewIdentifier("ta", "pickup_hour"), ast.NewConstant(int64(10))),
			ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant(int64(1))),
		),
		placeholder,
	)
	forecastWhere := ast.NewBinaryOperation("and",
		ast.NewBinaryOperation("and",
			ast.NewBinaryOperation(">", ast.NewIdentifier("ta", "pickup_hour"), ast.NewConstant(int64(10))),
			ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant(int64(1))),
		),
		placeholder,
	)
	window := int64(10)

	want := []planner.Step{
		groupDistinctFetch(groupFilter),
		&planner.MapReduceStep{
			Values: planner.Result(0),
			Reduce: "union",
			Step: &planner.MultipleSteps{
				Reduce: "union",
				Steps: []planner.Step{
					&planner.FetchDataframeStep{
						Integration: "mysql",
						Query: &ast.Select{
							Targets:   []ast.Node{&ast.Star{}},
							FromTable: identAlias("ta", "data", "ny_output"),
							Where:     historyWhere,
							OrderBy:   desc,
							Limit:     ast.NewConstant(window),
						},
					},
					&planner.FetchDataframeStep{
						Integration: "mysql",
						Query: &ast.Select{
							Targets:   []ast.Node{&ast.Star{}},
							FromTable: identAlias("ta", "data", "ny_output"),
							Where:     forecastWhere,
							OrderBy:   desc,
						},
					},
				},
			},
		},
		&planner.ApplyTimeseriesPredictorStep{
			Namespace:        "mindsdb",
			Predictor:        identAlias("tb", "tp3"),
			Dataframe:        planner.Result(1),
			OutputTimeFilter: timeFilter,
		},
		tsJoinStep(),
		&planner.ProjectStep{Dataframe: planner.Result(3), Columns: []ast.Node{&ast.Star{}}},
	}

	if diff := cmp.Diff(want, plan.Steps, cmpOpts); diff != "" {
		t.Errorf("plan.Steps mismatch (-want +got):\n%s", diff)
	}
}

// Test_JoinTimeseries_ErrorOnNestedWhere covers spec.md §4.6's WHERE
// validation: nesting deeper than a single top-level AND is malformed.
func Test_JoinTimeseries_ErrorOnNestedWhere(t *testing.T) {
	t.Parallel()
	nested := ast.NewBinaryOperation("and",
		ast.NewBinaryOperation("and",
			ast.NewBinaryOperation(">", ast.NewIdentifier("ta", "pickup_hour"), &ast.Latest{}),
			ast.NewBinaryOperation(">", ast.NewIdentifier("ta", "pickup_hour"), &ast.Latest{}),
		),
		ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "vendor_id"), ast.NewConstant("bitcoin")),
	)

	_, err := planner.PlanQuery(tsQuery(nested), []string{"mysql"},
		planner.WithPredictorNamespace("mindsdb"),
		planner.WithPredictorMetadata(map[string]planner.PredictorMeta{"tp3": tsMeta(5)}))
	require.Error(t, err)
}

// Test_JoinTimeseries_ErrorOnUnknownColumn covers spec.md §4.6's WHERE
// validation: a WHERE conjunct on a column that is neither the order-by
// nor group-by column is malformed.
func Test_JoinTimeseries_ErrorOnUnknownColumn(t *testing.T) {
	t.Parallel()
	where := ast.NewBinaryOperation("and",
		ast.NewBinaryOperation(">", ast.NewIdentifier("ta", "pickup_hour"), &ast.Latest{}),
		ast.NewBinaryOperation("=", ast.NewIdentifier("ta", "whatever"), ast.NewConstant(int64(0))),
	)

	_, err := planner.PlanQuery(tsQuery(where), []string{"mysql"},
		planner.WithPredictorNamespace("mindsdb"),
		planner.WithPredictorMetadata(map[string]planner.PredictorMeta{"tp3": tsMeta(5)}))
	require.Error(t, err)
}
