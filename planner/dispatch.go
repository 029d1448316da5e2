package planner

import (
	"fmt"

	"github.com/kothariji/mindsdb-sql/ast"
)

// PlanQuery plans query against the named integrations. Non-SELECT
// statements pass through unplanned (spec.md §4.3: "other top-level
// statements pass through unplanned"), returning an empty QueryPlan.
func PlanQuery(query ast.Node, integrations []string, opts ...Option) (*QueryPlan, error) {
	cfg, err := getOpts(opts...)
	if err != nil {
		return nil, err
	}

	sel, ok := query.(*ast.Select)
	if !ok {
		return &QueryPlan{Integrations: integrations, DefaultNamespace: cfg.defaultNamespace}, nil
	}
	if sel.FromTable == nil {
		return &QueryPlan{Integrations: integrations, DefaultNamespace: cfg.defaultNamespace}, nil
	}

	b := &builder{}

	switch from := sel.FromTable.(type) {
	case *ast.Identifier:
		return planSingleFrom(b, sel, from, integrations, &cfg)
	case *ast.Join:
		return planJoinFrom(b, sel, from, integrations, &cfg)
	default:
		return nil, NewPlanningException(fmt.Sprintf("unsupported FROM shape %T", from))
	}
}

func planSingleFrom(b *builder, sel *ast.Select, tbl *ast.Identifier, integrations []string, cfg *options) (*QueryPlan, error) {
	switch classify(tbl, integrations, cfg.predictorNamespace, cfg.defaultNamespace) {
	case sideIntegration:
		return planSingleIntegration(b, sel, tbl, integrations, cfg)
	case sidePredictor:
		return planPredictorOnly(b, sel, tbl, integrations, cfg)
	default:
		return nil, NewPlanningException(fmt.Sprintf("cannot attribute table %q to a known integration or the predictor namespace", tbl.ToString()))
	}
}

func planJoinFrom(b *builder, sel *ast.Select, join *ast.Join, integrations []string, cfg *options) (*QueryPlan, error) {
	leftID, ok := join.Left.(*ast.Identifier)
	if !ok {
		return nil, NewPlanningException("join planning requires both sides to be plain table references")
	}
	rightID, ok := join.Right.(*ast.Identifier)
	if !ok {
		return nil, NewPlanningException("join planning requires both sides to be plain table references")
	}

	leftSide := classify(leftID, integrations, cfg.predictorNamespace, cfg.defaultNamespace)
	rightSide := classify(rightID, integrations, cfg.predictorNamespace, cfg.defaultNamespace)

	switch {
	case leftSide == sideIntegration && rightSide == sideIntegration:
		return planJoinTables(b, sel, join, leftID, rightID, integrations, cfg)
	case leftSide == sideIntegration && rightSide == sidePredictor:
		return planJoinPredictorDispatch(b, sel, join, leftID, rightID, integrations, cfg)
	case leftSide == sidePredictor && rightSide == sideIntegration:
		return planJoinPredictorDispatch(b, sel, join, rightID, leftID, integrations, cfg)
	default:
		return nil, NewPlanningException("join must combine exactly one integration table with one predictor (or two integration tables)")
	}
}

// planJoinPredictorDispatch routes to the time-series template when
// predictor metadata marks it so, else the ordinary predictor join.
func planJoinPredictorDispatch(b *builder, sel *ast.Select, join *ast.Join, integrationID, predictorID *ast.Identifier, integrations []string, cfg *options) (*QueryPlan, error) {
	predictorName := stripFirstSegment(predictorID)
	meta, hasMeta := cfg.predictorMetadata[predictorName.Parts[len(predictorName.Parts)-1]]
	if hasMeta && meta.Timeseries {
		return planJoinTimeseries(b, sel, join, integrationID, predictorID, meta, integrations, cfg)
	}
	return planJoinPredictor(b, sel, join, integrationID, predictorID, integrations, cfg)
}
