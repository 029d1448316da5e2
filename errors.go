package mindsdbsql

import (
	"github.com/kothariji/mindsdb-sql/parser"
	"github.com/kothariji/mindsdb-sql/planner"
)

// ErrParsing and ErrPlanning are the sentinels ParsingException and
// PlanningException wrap; re-exported here so callers depending only on the
// root package can still use errors.Is without importing parser/planner
// directly.
var (
	ErrParsing  = parser.ErrParsing
	ErrPlanning = planner.ErrPlanning
)

// ParsingException and PlanningException are defined in the packages that
// raise them (parser owns syntactic/clause errors, planner owns rule
// errors) and aliased here so this package remains the single place callers
// need to import for the public error surface.
type (
	ParsingException  = parser.ParsingException
	PlanningException = planner.PlanningException
)

// NewParsingException and NewPlanningException are re-exported for callers
// that construct these from outside parser/planner (e.g. test helpers).
var (
	NewParsingException  = parser.NewParsingException
	NewPlanningException = planner.NewPlanningException
)
