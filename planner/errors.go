package planner

import "errors"

// ErrPlanning is the sentinel every PlanningException wraps.
var ErrPlanning = errors.New("planning error")

// PlanningException is raised when a predictor is expected but absent, an
// identifier can't be attributed to a joined table, a WHERE clause
// references predictor-output columns, or a time-series WHERE is malformed.
type PlanningException struct {
	Msg string
}

func (e *PlanningException) Error() string { return e.Msg }

func (e *PlanningException) Unwrap() error { return ErrPlanning }

// NewPlanningException wraps msg as a PlanningException.
func NewPlanningException(msg string) *PlanningException {
	return &PlanningException{Msg: msg}
}
