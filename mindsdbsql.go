package mindsdbsql

import (
	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/lexer"
	"github.com/kothariji/mindsdb-sql/parser"
	"github.com/kothariji/mindsdb-sql/planner"
)

// Dialect selects which keyword set and lexical extensions parsing
// recognizes; re-exported from package lexer so callers of this package
// never need to import it directly.
type Dialect = lexer.Dialect

const (
	SQLite  = lexer.SQLite
	MySQL   = lexer.MySQL
	MindsDB = lexer.MindsDB
)

// ParseSQL lexes and parses text under dialect, returning the root AST
// node of the single statement it contains.
func ParseSQL(text string, dialect Dialect) (ast.Node, error) {
	return parser.Parse(text, dialect)
}

// GetLexerParser exposes the lower-level lexer/parser pair for dialect. The
// returned Lex is built over empty input, so it yields only EOF; the
// returned constructor scans and parses a whole text, as ParseSQL does,
// and returns the Parser without running it.
func GetLexerParser(dialect Dialect) (*lexer.Lex, func(string) (*parser.Parser, error)) {
	lx := lexer.New("", dialect)
	newParser := func(text string) (*parser.Parser, error) {
		return parser.New(text, dialect)
	}
	return lx, newParser
}

// PlanQuery rewrites query into an ordered QueryPlan against the named
// integrations; re-exported from package planner.
var PlanQuery = planner.PlanQuery

// Re-exported planner configuration types, so planning callers only need
// this package's import.
type (
	Option        = planner.Option
	PredictorMeta = planner.PredictorMeta
	QueryPlan     = planner.QueryPlan
)

var (
	WithPredictorNamespace = planner.WithPredictorNamespace
	WithDefaultNamespace   = planner.WithDefaultNamespace
	WithPredictorMetadata  = planner.WithPredictorMetadata
)
