package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kothariji/mindsdb-sql/ast"
)

func Test_BinaryOperation_ToString(t *testing.T) {
	t.Parallel()
	t.Run("symbolic-op-no-spaces", func(t *testing.T) {
		op := ast.NewBinaryOperation("+", ast.NewConstant(int64(1)), ast.NewConstant(int64(2)))
		assert.Equal(t, "1+2", op.ToString())
	})
	t.Run("word-op-spaced", func(t *testing.T) {
		op := ast.NewBinaryOperation("and",
			ast.NewBinaryOperation("=", ast.NewIdentifier("a"), ast.NewConstant(int64(1))),
			ast.NewBinaryOperation("=", ast.NewIdentifier("b"), ast.NewConstant(int64(2))))
		assert.Equal(t, "a=1 and b=2", op.ToString())
	})
	t.Run("lower-precedence-child-gets-parens", func(t *testing.T) {
		// (a or b) and c — the OR must be parenthesized since it's looser
		// than AND and wasn't explicitly parenthesized by the writer.
		or := ast.NewBinaryOperation("or", ast.NewIdentifier("a"), ast.NewIdentifier("b"))
		and := ast.NewBinaryOperation("and", or, ast.NewIdentifier("c"))
		assert.Equal(t, "(a or b) and c", and.ToString())
	})
	t.Run("explicit-parens-preserved-even-at-same-precedence", func(t *testing.T) {
		inner := ast.NewBinaryOperation("+", ast.NewIdentifier("a"), ast.NewIdentifier("b"))
		inner.SetParens(true)
		outer := ast.NewBinaryOperation("+", inner, ast.NewIdentifier("c"))
		assert.Equal(t, "(a+b)+c", outer.ToString())
	})
}

func Test_BetweenOperation(t *testing.T) {
	t.Parallel()
	op := &ast.BetweenOperation{
		Arg:  ast.NewIdentifier("x"),
		Low:  ast.NewConstant(int64(1)),
		High: ast.NewConstant(int64(10)),
	}
	assert.Equal(t, "x BETWEEN 1 AND 10", op.ToString())
}

func Test_Function_ToString(t *testing.T) {
	t.Parallel()
	t.Run("plain", func(t *testing.T) {
		fn := &ast.Function{Op: "COUNT", Args: []ast.Node{ast.NewIdentifier("x")}}
		assert.Equal(t, "COUNT(x)", fn.ToString())
	})
	t.Run("distinct", func(t *testing.T) {
		fn := &ast.Function{Op: "COUNT", Args: []ast.Node{ast.NewIdentifier("s")}, Distinct: true}
		fn.SetAlias(ast.NewIdentifier("u"))
		assert.Equal(t, "COUNT(DISTINCT s) AS u", fn.ToString())
	})
}

func Test_UnaryOperation_ToString(t *testing.T) {
	t.Parallel()
	op := &ast.UnaryOperation{Op: "NOT", Arg: ast.NewIdentifier("x")}
	assert.Equal(t, "NOT x", op.ToString())
}
