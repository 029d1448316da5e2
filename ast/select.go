package ast

import (
	"fmt"
	"strings"
)

// Select is a SELECT query: the central node the planner operates on.
// Clauses are nil when absent; see §4.2 of spec.md for the parse-time
// constraints enforced on presence/ordering/uniqueness/literal-typing.
type Select struct {
	base
	Targets   []Node // non-empty
	FromTable Node
	Where     Node
	GroupBy   []Node
	Having    Node
	OrderBy   []*OrderBy
	Limit     *Constant
	Offset    *Constant
	Distinct  bool
}

func (s *Select) Kind() Kind { return KindSelect }

func (s *Select) ToString() string {
	var b strings.Builder
	b.WriteString("SELECT ")
	if s.Distinct {
		b.WriteString("DISTINCT ")
	}
	targets := make([]string, len(s.Targets))
	for i, t := range s.Targets {
		targets[i] = t.ToString()
	}
	b.WriteString(strings.Join(targets, ", "))
	if s.FromTable != nil {
		b.WriteString(" FROM ")
		b.WriteString(s.FromTable.ToString())
	}
	if s.Where != nil {
		b.WriteString(" WHERE ")
		b.WriteString(s.Where.ToString())
	}
	if len(s.GroupBy) > 0 {
		b.WriteString(" GROUP BY ")
		parts := make([]string, len(s.GroupBy))
		for i, g := range s.GroupBy {
			parts[i] = g.ToString()
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	if s.Having != nil {
		b.WriteString(" HAVING ")
		b.WriteString(s.Having.ToString())
	}
	if len(s.OrderBy) > 0 {
		b.WriteString(" ORDER BY ")
		parts := make([]string, len(s.OrderBy))
		for i, o := range s.OrderBy {
			parts[i] = o.ToString()
		}
		b.WriteString(strings.Join(parts, ", "))
	}
	if s.Limit != nil {
		b.WriteString(" LIMIT ")
		b.WriteString(s.Limit.ToString())
	}
	if s.Offset != nil {
		b.WriteString(" OFFSET ")
		b.WriteString(s.Offset.ToString())
	}
	return s.wrap(b.String()) + s.aliasSuffix()
}

func (s *Select) ToTree(level int) string {
	ind := indent(level)
	ind1 := indent(level + 1)
	var b strings.Builder
	fmt.Fprintf(&b, "%sSelect(\n%sdistinct=%v,\n%stargets=[\n", ind, ind1, s.Distinct, ind1)
	for _, t := range s.Targets {
		b.WriteString(t.ToTree(level + 2))
		b.WriteString(",\n")
	}
	fmt.Fprintf(&b, "%s],\n", ind1)
	writeOptional(&b, "from_table", s.FromTable, level)
	writeOptional(&b, "where", s.Where, level)
	if len(s.GroupBy) > 0 {
		fmt.Fprintf(&b, "%sgroup_by=[\n", ind1)
		for _, g := range s.GroupBy {
			b.WriteString(g.ToTree(level + 2))
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "%s],\n", ind1)
	}
	writeOptional(&b, "having", s.Having, level)
	if len(s.OrderBy) > 0 {
		fmt.Fprintf(&b, "%sorder_by=[\n", ind1)
		for _, o := range s.OrderBy {
			b.WriteString(o.ToTree(level + 2))
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "%s],\n", ind1)
	}
	if s.Limit != nil {
		fmt.Fprintf(&b, "%slimit=\n%s,\n", ind1, s.Limit.ToTree(level+2))
	}
	if s.Offset != nil {
		fmt.Fprintf(&b, "%soffset=\n%s,\n", ind1, s.Offset.ToTree(level+2))
	}
	fmt.Fprintf(&b, "%s)", ind)
	return b.String()
}

func writeOptional(b *strings.Builder, name string, n Node, level int) {
	ind1 := indent(level + 1)
	if n == nil {
		fmt.Fprintf(b, "%s%s=nil,\n", ind1, name)
		return
	}
	fmt.Fprintf(b, "%s%s=\n%s,\n", ind1, name, n.ToTree(level+2))
}
