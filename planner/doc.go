// Package planner implements the rule-driven rewriter that turns a single
// SELECT AST into an ordered QueryPlan: a DAG of typed steps distinguishing
// raw integration fetches from in-process predictor application, pushing
// predicates down into remote fetches where the rules allow it, and
// expanding a join against a time-series predictor into a map-reduce
// scatter over group keys.
package planner
