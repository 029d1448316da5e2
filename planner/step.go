package planner

import "github.com/kothariji/mindsdb-sql/ast"

// Result is a plain integer index into the builder's step vector — per
// spec.md §9 ("Result handles are just integer indices ... no pointer
// graph"), there is no handle type beyond int.
type Result int

// StepKind tags the concrete type of a Step for dispatch without a type
// switch.
type StepKind int

const (
	StepFetchDataframe StepKind = iota
	StepApplyPredictor
	StepApplyPredictorRow
	StepApplyTimeseriesPredictor
	StepJoin
	StepFilter
	StepProject
	StepGroupBy
	StepOrderBy
	StepLimitOffset
	StepUnion
	StepMapReduce
	StepMultiple
)

// Step is the sum type every planning step implements — each variant a
// concrete struct, no virtual dispatch, mirroring ast.Node.
type Step interface {
	Kind() StepKind
}

// FetchDataframeStep executes query against the named external integration;
// its result is a tabular dataframe.
type FetchDataframeStep struct {
	Integration string
	Query       *ast.Select
}

func (s *FetchDataframeStep) Kind() StepKind { return StepFetchDataframe }

// ApplyPredictorStep applies a predictor row-wise to a prior step's output.
type ApplyPredictorStep struct {
	Namespace string
	Predictor *ast.Identifier
	Dataframe Result
}

func (s *ApplyPredictorStep) Kind() StepKind { return StepApplyPredictor }

// ApplyPredictorRowStep applies a predictor to a single literal row, built
// from a predictor-only SELECT's WHERE conjuncts.
type ApplyPredictorRowStep struct {
	Namespace string
	Predictor *ast.Identifier
	RowDict   map[string]ast.Node
}

func (s *ApplyPredictorRowStep) Kind() StepKind { return StepApplyPredictorRow }

// ApplyTimeseriesPredictorStep applies a time-series predictor to a windowed
// history dataframe. OutputTimeFilter is nil when the original query had no
// time predicate.
type ApplyTimeseriesPredictorStep struct {
	Namespace        string
	Predictor        *ast.Identifier
	Dataframe        Result
	OutputTimeFilter ast.Node
}

func (s *ApplyTimeseriesPredictorStep) Kind() StepKind { return StepApplyTimeseriesPredictor }

// JoinStep joins two prior dataframes in memory. Query.Left/Right carry the
// synthetic result_<i> identifiers, aliased to the original table aliases.
type JoinStep struct {
	Left  Result
	Right Result
	Query *ast.Join
}

func (s *JoinStep) Kind() StepKind { return StepJoin }

// FilterStep evaluates a predicate against a prior dataframe, post-join.
type FilterStep struct {
	Dataframe Result
	Query     ast.Node
}

func (s *FilterStep) Kind() StepKind { return StepFilter }

// ProjectStep is the final column projection of a plan.
type ProjectStep struct {
	Dataframe Result
	Columns   []ast.Node
}

func (s *ProjectStep) Kind() StepKind { return StepProject }

// GroupByStep aggregates a dataframe by Columns, computing Targets.
type GroupByStep struct {
	Dataframe Result
	Targets   []ast.Node
	Columns   []ast.Node
}

func (s *GroupByStep) Kind() StepKind { return StepGroupBy }

// OrderByStep sorts a dataframe.
type OrderByStep struct {
	Dataframe Result
	OrderBy   []*ast.OrderBy
}

func (s *OrderByStep) Kind() StepKind { return StepOrderBy }

// LimitOffsetStep truncates a dataframe.
type LimitOffsetStep struct {
	Dataframe Result
	Limit     *ast.Constant
	Offset    *ast.Constant
}

func (s *LimitOffsetStep) Kind() StepKind { return StepLimitOffset }

// UnionStep combines two dataframes row-wise, optionally deduplicating.
type UnionStep struct {
	Left   Result
	Right  Result
	Unique bool
}

func (s *UnionStep) Kind() StepKind { return StepUnion }

// MapReduceStep runs Step once per row of Values, substituting the row's
// fields for named placeholders in Step, and unions the per-row outputs.
type MapReduceStep struct {
	Values Result
	Reduce string // "union"
	Step   Step
}

func (s *MapReduceStep) Kind() StepKind { return StepMapReduce }

// MultipleSteps is a static union of steps, used as a MapReduce template
// when a single FetchDataframeStep can't express the needed shape (the
// history/forecast split in the time-series join).
type MultipleSteps struct {
	Steps  []Step
	Reduce string
}

func (s *MultipleSteps) Kind() StepKind { return StepMultiple }
