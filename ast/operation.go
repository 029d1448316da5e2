package ast

import (
	"fmt"
	"strings"
)

// BinaryOperation applies a lower-cased keyword or symbolic operator to an
// ordered pair of operands.
type BinaryOperation struct {
	base
	Op   string
	Args [2]Node
}

func NewBinaryOperation(op string, left, right Node) *BinaryOperation {
	return &BinaryOperation{Op: op, Args: [2]Node{left, right}}
}

func (b *BinaryOperation) Kind() Kind { return KindBinaryOperation }

// precedence ranks operators from loosest- to tightest-binding; used to
// decide when a child BinaryOperation needs parentheses it didn't
// explicitly request.
func precedence(op string) int {
	switch strings.ToLower(op) {
	case "or":
		return 1
	case "and":
		return 2
	case "=", "!=", "<>", "<", "<=", ">", ">=", "like", "is":
		return 3
	case "+", "-":
		return 4
	case "*", "/", "%":
		return 5
	default:
		return 3
	}
}

func renderOperand(n Node, parentPrec int) string {
	s := n.ToString()
	if bo, ok := n.(*BinaryOperation); ok && !bo.Parens && precedence(bo.Op) < parentPrec {
		return "(" + s + ")"
	}
	return s
}

func (b *BinaryOperation) ToString() string {
	prec := precedence(b.Op)
	left := renderOperand(b.Args[0], prec)
	right := renderOperand(b.Args[1], prec)
	op := b.Op
	sep := op
	if isWordOp(op) {
		sep = " " + op + " "
	}
	s := left + sep + right
	return b.wrap(s) + b.aliasSuffix()
}

func isWordOp(op string) bool {
	switch strings.ToLower(op) {
	case "and", "or", "like", "is":
		return true
	default:
		return false
	}
}

func (b *BinaryOperation) ToTree(level int) string {
	ind := indent(level)
	ind1 := indent(level + 1)
	return fmt.Sprintf("%sBinaryOperation(op=%s,\n%sargs=[\n%s,\n%s,\n%s],\n%s)",
		ind, b.Op, ind1, b.Args[0].ToTree(level+2), b.Args[1].ToTree(level+2), ind1, ind)
}

// UnaryOperation applies an operator (commonly NOT) to a single operand.
type UnaryOperation struct {
	base
	Op   string
	Arg  Node
}

func (u *UnaryOperation) Kind() Kind { return KindUnaryOperation }

func (u *UnaryOperation) ToString() string {
	return u.wrap(strings.ToUpper(u.Op)+" "+u.Arg.ToString()) + u.aliasSuffix()
}

func (u *UnaryOperation) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sUnaryOperation(op=%s,\n%sarg=\n%s,\n%s)", ind, u.Op, indent(level+1), u.Arg.ToTree(level+2), ind)
}

// BetweenOperation is the ternary (expr, low, high) form of BETWEEN.
type BetweenOperation struct {
	base
	Arg Node
	Low Node
	High Node
}

func (o *BetweenOperation) Kind() Kind { return KindBetweenOperation }

func (o *BetweenOperation) ToString() string {
	s := fmt.Sprintf("%s BETWEEN %s AND %s", o.Arg.ToString(), o.Low.ToString(), o.High.ToString())
	return o.wrap(s) + o.aliasSuffix()
}

func (o *BetweenOperation) ToTree(level int) string {
	ind := indent(level)
	ind1 := indent(level + 1)
	return fmt.Sprintf("%sBetweenOperation(\n%sargs=[\n%s,\n%s,\n%s],\n%s)",
		ind, ind1, o.Arg.ToTree(level+2), o.Low.ToTree(level+2), o.High.ToTree(level+2), ind)
}

// Function is a named call with an ordered argument list; COUNT(DISTINCT x)
// is encoded with Distinct=true rather than a special node.
type Function struct {
	base
	Op       string
	Args     []Node
	Distinct bool
}

func (f *Function) Kind() Kind { return KindFunction }

func (f *Function) ToString() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.ToString()
	}
	inner := strings.Join(parts, ", ")
	if f.Distinct {
		inner = "DISTINCT " + inner
	}
	return f.wrap(fmt.Sprintf("%s(%s)", f.Op, inner)) + f.aliasSuffix()
}

func (f *Function) ToTree(level int) string {
	ind := indent(level)
	ind1 := indent(level + 1)
	var b strings.Builder
	fmt.Fprintf(&b, "%sFunction(op=%s, distinct=%v,\n%sargs=[\n", ind, f.Op, f.Distinct, ind1)
	for _, a := range f.Args {
		b.WriteString(a.ToTree(level + 2))
		b.WriteString(",\n")
	}
	fmt.Fprintf(&b, "%s],\n%s)", ind1, ind)
	return b.String()
}
