package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/lexer"
	"github.com/kothariji/mindsdb-sql/parser"
)

func parse(t *testing.T, text string) ast.Node {
	t.Helper()
	n, err := parser.Parse(text, lexer.MindsDB)
	require.NoError(t, err)
	return n
}

// Test_Scenario1 covers the simplest possible statement: no FROM clause.
func Test_Scenario1_SelectConstant(t *testing.T) {
	t.Parallel()
	n := parse(t, "SELECT 1")
	sel, ok := n.(*ast.Select)
	require.True(t, ok)
	require.Len(t, sel.Targets, 1)
	assert.Equal(t, "1", sel.Targets[0].ToString())
	assert.Nil(t, sel.FromTable)
}

// Test_Scenario2 round-trips a SELECT touching every post-target clause.
func Test_Scenario2_FullClauseRoundTrip(t *testing.T) {
	t.Parallel()
	n := parse(t, "SELECT column AS c FROM t WHERE x != 1 GROUP BY g HAVING g>0 ORDER BY c DESC LIMIT 5 OFFSET 3")
	sel, ok := n.(*ast.Select)
	require.True(t, ok)
	assert.Equal(t, "SELECT column AS c FROM t WHERE x!=1 GROUP BY g HAVING g>0 ORDER BY c DESC LIMIT 5 OFFSET 3", sel.ToString())
}

// Test_Scenario3 exercises MySQL's LIMIT offset,count form.
func Test_Scenario3_LimitOffsetShorthand(t *testing.T) {
	t.Parallel()
	n := parse(t, "SELECT * FROM t1 LIMIT 2, 1")
	sel, ok := n.(*ast.Select)
	require.True(t, ok)
	require.NotNil(t, sel.Offset)
	require.NotNil(t, sel.Limit)
	assert.Equal(t, int64(2), sel.Offset.Value)
	assert.Equal(t, int64(1), sel.Limit.Value)
}

// Test_Scenario4 covers aggregate-with-DISTINCT folding into Function.
func Test_Scenario4_CountDistinct(t *testing.T) {
	t.Parallel()
	n := parse(t, "SELECT COUNT(DISTINCT s) AS u FROM t")
	sel, ok := n.(*ast.Select)
	require.True(t, ok)
	require.Len(t, sel.Targets, 1)
	fn, ok := sel.Targets[0].(*ast.Function)
	require.True(t, ok)
	assert.Equal(t, "COUNT", fn.Op)
	assert.True(t, fn.Distinct)
	require.Len(t, fn.Args, 1)
	assert.Equal(t, "s", fn.Args[0].ToString())
	assert.Equal(t, "u", fn.GetAlias().ToString())
}

func Test_ParseStatement_Dispatch(t *testing.T) {
	t.Parallel()
	t.Run("set", func(t *testing.T) {
		n := parse(t, "SET autocommit = 1")
		_, ok := n.(*ast.Set)
		assert.True(t, ok)
	})
	t.Run("use", func(t *testing.T) {
		n := parse(t, "USE mydb")
		_, ok := n.(*ast.Use)
		assert.True(t, ok)
	})
	t.Run("start-transaction", func(t *testing.T) {
		n := parse(t, "START TRANSACTION")
		_, ok := n.(ast.StartTransaction)
		assert.True(t, ok)
	})
	t.Run("commit", func(t *testing.T) {
		n := parse(t, "COMMIT")
		_, ok := n.(ast.CommitTransaction)
		assert.True(t, ok)
	})
	t.Run("rollback", func(t *testing.T) {
		n := parse(t, "ROLLBACK")
		_, ok := n.(ast.RollbackTransaction)
		assert.True(t, ok)
	})
	t.Run("explain-select", func(t *testing.T) {
		n := parse(t, "EXPLAIN SELECT * FROM t")
		ex, ok := n.(*ast.Explain)
		require.True(t, ok)
		_, ok = ex.Target.(*ast.Select)
		assert.True(t, ok)
	})
	t.Run("explain-table", func(t *testing.T) {
		n := parse(t, "EXPLAIN mindsdb.p")
		ex, ok := n.(*ast.Explain)
		require.True(t, ok)
		assert.Equal(t, "mindsdb.p", ex.Target.ToString())
	})
	t.Run("alter-table", func(t *testing.T) {
		n := parse(t, "ALTER TABLE t ADD COLUMN c INT")
		alt, ok := n.(*ast.AlterTable)
		require.True(t, ok)
		assert.Equal(t, "t", alt.Table.ToString())
		assert.Contains(t, alt.Arg, "ADD COLUMN c INT")
	})
	t.Run("create-predictor", func(t *testing.T) {
		n := parse(t, "CREATE PREDICTOR mindsdb.p FROM int (SELECT * FROM t) PREDICT y")
		cp, ok := n.(*ast.CreatePredictor)
		require.True(t, ok)
		assert.Equal(t, "int", cp.IntegrationName)
	})
	t.Run("retrain-predictor", func(t *testing.T) {
		n := parse(t, "RETRAIN PREDICTOR p")
		cp, ok := n.(*ast.CreatePredictor)
		require.True(t, ok)
		assert.True(t, cp.Retrain)
	})
	t.Run("drop-predictor", func(t *testing.T) {
		n := parse(t, "DROP PREDICTOR mindsdb.p")
		_, ok := n.(*ast.DropPredictor)
		assert.True(t, ok)
	})
	t.Run("unrecognized-leading-keyword", func(t *testing.T) {
		_, err := parser.Parse("FOOBAR x", lexer.MindsDB)
		require.Error(t, err)
	})
}

func Test_New_EmptyInput(t *testing.T) {
	t.Parallel()
	_, err := parser.New("   ", lexer.SQLite)
	require.Error(t, err)
	assert.ErrorIs(t, err, parser.ErrParsing)
}

func Test_Parse_TrailingSemicolon(t *testing.T) {
	t.Parallel()
	t.Run("permitted", func(t *testing.T) {
		_, err := parser.Parse("SELECT 1;", lexer.SQLite)
		require.NoError(t, err)
	})
	t.Run("trailing-garbage-after-semicolon-is-an-error", func(t *testing.T) {
		_, err := parser.Parse("SELECT 1; SELECT 2", lexer.SQLite)
		require.Error(t, err)
	})
	t.Run("trailing-garbage-without-semicolon-is-an-error", func(t *testing.T) {
		_, err := parser.Parse("SELECT 1 AS a garbage", lexer.SQLite)
		require.Error(t, err)
	})
}
