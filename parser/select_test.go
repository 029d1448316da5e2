package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/lexer"
	"github.com/kothariji/mindsdb-sql/parser"
)

func parseErr(t *testing.T, text string) error {
	t.Helper()
	_, err := parser.Parse(text, lexer.MindsDB)
	require.Error(t, err)
	return err
}

func Test_Select_ClauseOrdering(t *testing.T) {
	t.Parallel()
	t.Run("duplicate-where", func(t *testing.T) {
		err := parseErr(t, "SELECT * FROM t WHERE x=1 WHERE y=2")
		assert.Contains(t, err.Error(), "duplicate WHERE clause")
	})
	t.Run("out-of-order", func(t *testing.T) {
		err := parseErr(t, "SELECT * FROM t HAVING x>0 WHERE x=1")
		assert.Contains(t, err.Error(), "must go after the clause already parsed")
	})
	t.Run("where-before-from-is-rejected-as-missing-from", func(t *testing.T) {
		err := parseErr(t, "SELECT x WHERE x=1")
		assert.Contains(t, err.Error(), "WHERE requires a FROM clause")
	})
	t.Run("limit-then-offset-is-allowed", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t LIMIT 5 OFFSET 2")
		sel := n.(*ast.Select)
		assert.Equal(t, int64(5), sel.Limit.Value)
		assert.Equal(t, int64(2), sel.Offset.Value)
	})
	t.Run("offset-after-limit-comma-form-conflicts", func(t *testing.T) {
		err := parseErr(t, "SELECT * FROM t LIMIT 2, 1 OFFSET 3")
		assert.Contains(t, err.Error(), "OFFSET conflicts with the offset already given by LIMIT a, b")
	})
}

func Test_Select_WhereMustBeBoolean(t *testing.T) {
	t.Parallel()
	t.Run("bare-identifier-rejected", func(t *testing.T) {
		err := parseErr(t, "SELECT * FROM t WHERE x")
		assert.Contains(t, err.Error(), "WHERE must contain an operation that evaluates to a boolean")
	})
	t.Run("between-is-boolean", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE x BETWEEN 1 AND 10")
		sel := n.(*ast.Select)
		_, ok := sel.Where.(*ast.BetweenOperation)
		assert.True(t, ok)
	})
	t.Run("unary-not-is-boolean", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE NOT x=1")
		sel := n.(*ast.Select)
		_, ok := sel.Where.(*ast.UnaryOperation)
		assert.True(t, ok)
	})
}

func Test_Select_LimitOffsetRejectsNonIntegerLiterals(t *testing.T) {
	t.Parallel()
	t.Run("float-limit-rejected", func(t *testing.T) {
		err := parseErr(t, "SELECT * FROM t LIMIT 1.5")
		assert.Contains(t, err.Error(), "LIMIT/OFFSET must be an integer literal")
	})
	t.Run("string-offset-rejected", func(t *testing.T) {
		err := parseErr(t, "SELECT * FROM t OFFSET 'x'")
		assert.Contains(t, err.Error(), "expected an integer literal")
	})
}

func Test_Select_OrderByNullsOrdering(t *testing.T) {
	t.Parallel()
	n := parse(t, "SELECT * FROM t ORDER BY a ASC NULLS FIRST, b DESC NULLS LAST")
	sel := n.(*ast.Select)
	require.Len(t, sel.OrderBy, 2)
	assert.Equal(t, ast.DirAsc, sel.OrderBy[0].Direction)
	assert.Equal(t, ast.NullsFirst, sel.OrderBy[0].Nulls)
	assert.Equal(t, ast.DirDesc, sel.OrderBy[1].Direction)
	assert.Equal(t, ast.NullsLast, sel.OrderBy[1].Nulls)
}

func Test_Select_FromChain(t *testing.T) {
	t.Parallel()
	t.Run("implicit-comma-join-defaults-to-inner", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t1, t2")
		sel := n.(*ast.Select)
		j, ok := sel.FromTable.(*ast.Join)
		require.True(t, ok)
		assert.True(t, j.Implicit)
		assert.Equal(t, ast.InnerJoin, j.JoinType)
	})
	t.Run("left-join-with-condition", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t1 LEFT JOIN t2 ON t1.id = t2.id")
		sel := n.(*ast.Select)
		j, ok := sel.FromTable.(*ast.Join)
		require.True(t, ok)
		assert.Equal(t, ast.LeftJoin, j.JoinType)
		assert.False(t, j.Implicit)
		require.NotNil(t, j.Condition)
		assert.Equal(t, "t1.id=t2.id", j.Condition.ToString())
	})
	t.Run("plain-join-keyword-is-inner", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t1 JOIN t2 ON t1.id = t2.id")
		sel := n.(*ast.Select)
		j := sel.FromTable.(*ast.Join)
		assert.Equal(t, ast.InnerJoin, j.JoinType)
	})
	t.Run("full-outer-join", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t1 FULL OUTER JOIN t2 ON t1.id = t2.id")
		sel := n.(*ast.Select)
		j := sel.FromTable.(*ast.Join)
		assert.Equal(t, ast.FullJoin, j.JoinType)
	})
	t.Run("parenthesized-subquery-with-alias", func(t *testing.T) {
		n := parse(t, "SELECT * FROM (SELECT x FROM t) AS sub")
		sel := n.(*ast.Select)
		inner, ok := sel.FromTable.(*ast.Select)
		require.True(t, ok)
		assert.Equal(t, "sub", inner.GetAlias().ToString())
	})
}

func Test_Select_TargetAlias(t *testing.T) {
	t.Parallel()
	t.Run("bare-juxtaposed-alias", func(t *testing.T) {
		n := parse(t, "SELECT x y FROM t")
		sel := n.(*ast.Select)
		assert.Equal(t, "y", sel.Targets[0].(ast.Aliasable).GetAlias().ToString())
	})
	t.Run("as-alias", func(t *testing.T) {
		n := parse(t, "SELECT x AS y FROM t")
		sel := n.(*ast.Select)
		assert.Equal(t, "y", sel.Targets[0].(ast.Aliasable).GetAlias().ToString())
	})
}

func Test_Select_InSubquery(t *testing.T) {
	t.Parallel()
	n := parse(t, "SELECT * FROM t WHERE x IN (SELECT y FROM u)")
	sel := n.(*ast.Select)
	bop, ok := sel.Where.(*ast.BinaryOperation)
	require.True(t, ok)
	assert.Equal(t, "in", bop.Op)
	_, ok = bop.Args[1].(*ast.Select)
	assert.True(t, ok)
}

func Test_Select_InTupleAndNotForms(t *testing.T) {
	t.Parallel()
	t.Run("in-tuple", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE x IN (1, 2, 3)")
		sel := n.(*ast.Select)
		bop := sel.Where.(*ast.BinaryOperation)
		assert.Equal(t, "in", bop.Op)
		tup, ok := bop.Args[1].(*ast.Tuple)
		require.True(t, ok)
		assert.Len(t, tup.Items, 3)
	})
	t.Run("not-in", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE x NOT IN (1, 2)")
		sel := n.(*ast.Select)
		u, ok := sel.Where.(*ast.UnaryOperation)
		require.True(t, ok)
		assert.Equal(t, "NOT", u.Op)
	})
	t.Run("not-like", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE x NOT LIKE 'a%'")
		sel := n.(*ast.Select)
		u, ok := sel.Where.(*ast.UnaryOperation)
		require.True(t, ok)
		bop, ok := u.Arg.(*ast.BinaryOperation)
		require.True(t, ok)
		assert.Equal(t, "like", bop.Op)
	})
	t.Run("not-between", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE x NOT BETWEEN 1 AND 10")
		sel := n.(*ast.Select)
		u, ok := sel.Where.(*ast.UnaryOperation)
		require.True(t, ok)
		_, ok = u.Arg.(*ast.BetweenOperation)
		assert.True(t, ok)
	})
	t.Run("is-not-null", func(t *testing.T) {
		n := parse(t, "SELECT * FROM t WHERE x IS NOT NULL")
		sel := n.(*ast.Select)
		u, ok := sel.Where.(*ast.UnaryOperation)
		require.True(t, ok)
		bop, ok := u.Arg.(*ast.BinaryOperation)
		require.True(t, ok)
		assert.Equal(t, "is", bop.Op)
	})
}

func Test_Select_WhereTrailingAliasIsUnexpected(t *testing.T) {
	t.Parallel()
	// WHERE's expression grammar never attaches an alias (only SELECT-list
	// and FROM-item targets do), so a trailing AS reads as unparsed input.
	parseErr(t, "SELECT * FROM t WHERE x=1 AS foo")
}
