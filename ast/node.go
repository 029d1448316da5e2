// Package ast defines the SQL abstract syntax tree shared by every dialect
// parser and consumed by the planner. Every node is a concrete struct
// implementing Node; there is no virtual-dispatch class hierarchy — callers
// type-switch on Kind (or on the concrete type) the way spec.md calls for.
package ast

import "strings"

// Kind tags the concrete type of a Node for fast dispatch without a type
// switch, mirroring the exprType tag used by the teacher's own two-variant
// expression AST.
type Kind int

const (
	KindIdentifier Kind = iota
	KindConstant
	KindNullConstant
	KindStar
	KindParameter
	KindVariable
	KindLatest
	KindTuple
	KindTypeCast
	KindBinaryOperation
	KindUnaryOperation
	KindBetweenOperation
	KindFunction
	KindOrderBy
	KindJoin
	KindSelect
	KindSet
	KindUse
	KindStartTransaction
	KindCommitTransaction
	KindRollbackTransaction
	KindExplain
	KindAlterTable
	KindCreatePredictor
	KindDropPredictor
)

// Node is the sum type every AST value implements.
type Node interface {
	Kind() Kind
	// ToTree renders an indented, structural representation used as the
	// basis of deep equality (see Equal).
	ToTree(level int) string
	// ToString renders SQL text. parse(ToString(n)) must reproduce n
	// (ignoring `AS` vs juxtaposed alias spelling).
	ToString() string
}

// Equal reports whether a and b are structurally identical, per spec.md's
// contract that two ASTs are equal iff their ToTree representations match.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.ToTree(0) == b.ToTree(0)
}

func indent(level int) string {
	return strings.Repeat("    ", level)
}

// base carries the two attributes every node in spec.md's table has in
// common: an optional alias and whether the node was written in
// parentheses. Embed it rather than duplicating the fields per type.
type base struct {
	Alias      *Identifier
	Parens     bool
}

func (b base) aliasSuffix() string {
	if b.Alias == nil {
		return ""
	}
	return " AS " + b.Alias.ToString()
}

func (b base) wrap(s string) string {
	if b.Parens {
		return "(" + s + ")"
	}
	return s
}

func (b base) treeAlias() string {
	if b.Alias == nil {
		return "nil"
	}
	return b.Alias.ToString()
}

// SetAlias attaches an alias to the node; promoted to every type embedding
// base.
func (b *base) SetAlias(alias *Identifier) { b.Alias = alias }

// SetParens marks the node as having been written in parentheses;
// promoted to every type embedding base.
func (b *base) SetParens(v bool) { b.Parens = v }

// GetAlias returns the node's alias, or nil.
func (b *base) GetAlias() *Identifier { return b.Alias }

// Aliasable is implemented by every node that embeds base — i.e. every
// node that may carry an alias or explicit parentheses.
type Aliasable interface {
	SetAlias(*Identifier)
	SetParens(bool)
	GetAlias() *Identifier
}
