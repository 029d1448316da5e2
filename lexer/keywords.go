package lexer

// Dialect selects which keyword set and lexical extensions (variables,
// mindsdb's LATEST literal) a Lex call recognizes. It is a pure
// configuration value — spec.md explicitly calls for "dialects as a
// configuration parameter ... rather than three class hierarchies."
type Dialect int

const (
	SQLite Dialect = iota
	MySQL
	MindsDB
)

func (d Dialect) String() string {
	switch d {
	case MySQL:
		return "mysql"
	case MindsDB:
		return "mindsdb"
	default:
		return "sqlite"
	}
}

// baseKeywords is shared by every dialect: the common SELECT-core grammar.
var baseKeywords = []string{
	"SELECT", "DISTINCT", "FROM", "WHERE", "GROUP", "BY", "HAVING",
	"ORDER", "ASC", "DESC", "NULLS", "FIRST", "LAST", "LIMIT", "OFFSET",
	"AS", "AND", "OR", "NOT", "IN", "IS", "NULL", "TRUE", "FALSE", "LIKE",
	"BETWEEN", "JOIN", "INNER", "LEFT", "RIGHT", "FULL", "OUTER", "ON",
	"UNION", "ALL", "CAST", "EXPLAIN", "USE", "SET", "START",
	"TRANSACTION", "COMMIT", "ROLLBACK", "ALTER", "TABLE", "ADD",
}

// mysqlKeywords extends the base set with MySQL's session/variable syntax.
var mysqlKeywords = []string{
	"GLOBAL", "SESSION", "CHARACTER", "NAMES", "COLLATE",
}

// mindsdbKeywords extends the base set with model-training/usage statements
// and the LATEST temporal literal.
var mindsdbKeywords = []string{
	"LATEST", "PREDICTOR", "PREDICT", "USING", "RETRAIN", "MODEL",
	"DROP", "CREATE", "DATASOURCE", "INTO", "WINDOW", "HORIZON", "REPLACE",
}

// Keywords returns the case-insensitive keyword set recognized by d, keyed
// by upper-cased spelling.
func Keywords(d Dialect) map[string]bool {
	set := make(map[string]bool, len(baseKeywords)+len(mindsdbKeywords))
	for _, kw := range baseKeywords {
		set[kw] = true
	}
	switch d {
	case MySQL:
		for _, kw := range mysqlKeywords {
			set[kw] = true
		}
	case MindsDB:
		for _, kw := range mysqlKeywords {
			set[kw] = true
		}
		for _, kw := range mindsdbKeywords {
			set[kw] = true
		}
	}
	return set
}
