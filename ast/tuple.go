package ast

import (
	"fmt"
	"strings"
)

// Tuple is an ordered, parenthesized expression list: (a, b, ...).
type Tuple struct {
	base
	Items []Node
}

func (t *Tuple) Kind() Kind { return KindTuple }

func (t *Tuple) ToString() string {
	parts := make([]string, len(t.Items))
	for i, it := range t.Items {
		parts[i] = it.ToString()
	}
	return "(" + strings.Join(parts, ", ") + ")" + t.aliasSuffix()
}

func (t *Tuple) ToTree(level int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%sTuple(\n", indent(level))
	for _, it := range t.Items {
		b.WriteString(it.ToTree(level + 1))
		b.WriteString(",\n")
	}
	fmt.Fprintf(&b, "%s)", indent(level))
	return b.String()
}

// TypeCast is a CAST(arg AS type_name)-shaped node; type_name is opaque
// text, never interpreted by this module.
type TypeCast struct {
	base
	TypeName string
	Arg      Node
}

func (c *TypeCast) Kind() Kind { return KindTypeCast }

func (c *TypeCast) ToString() string {
	return fmt.Sprintf("CAST(%s AS %s)", c.Arg.ToString(), c.TypeName) + c.aliasSuffix()
}

func (c *TypeCast) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sTypeCast(\n%sarg=\n%s,\n%stype_name=%s,\n%s)",
		ind, indent(level+1), c.Arg.ToTree(level+2), indent(level+1), c.TypeName, ind)
}
