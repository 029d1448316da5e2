package ast

import (
	"fmt"
	"sort"
	"strings"
)

// Set is a MySQL `SET ...` statement. Per spec.md §9's open question, the
// `character_set_results = NULL` shape (and similar) is preserved as a
// BinaryOperation argument rather than normalized into a dedicated
// (key, value) pair.
type Set struct {
	Category string // "", "GLOBAL", or "SESSION"
	Arg      Node
}

func (s *Set) Kind() Kind { return KindSet }

func (s *Set) ToString() string {
	if s.Category != "" {
		return fmt.Sprintf("SET %s %s", s.Category, s.Arg.ToString())
	}
	return "SET " + s.Arg.ToString()
}

func (s *Set) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sSet(category=%q,\n%sarg=\n%s,\n%s)", ind, s.Category, indent(level+1), s.Arg.ToTree(level+2), ind)
}

// Use is `USE <identifier>`.
type Use struct {
	Value Node
}

func (u *Use) Kind() Kind { return KindUse }

func (u *Use) ToString() string { return "USE " + u.Value.ToString() }

func (u *Use) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sUse(\n%svalue=\n%s,\n%s)", ind, indent(level+1), u.Value.ToTree(level+2), ind)
}

// StartTransaction is `START TRANSACTION`.
type StartTransaction struct{}

func (StartTransaction) Kind() Kind { return KindStartTransaction }

func (StartTransaction) ToString() string { return "START TRANSACTION" }

func (StartTransaction) ToTree(level int) string { return fmt.Sprintf("%sStartTransaction()", indent(level)) }

// CommitTransaction is `COMMIT`.
type CommitTransaction struct{}

func (CommitTransaction) Kind() Kind { return KindCommitTransaction }

func (CommitTransaction) ToString() string { return "COMMIT" }

func (CommitTransaction) ToTree(level int) string { return fmt.Sprintf("%sCommitTransaction()", indent(level)) }

// RollbackTransaction is `ROLLBACK`.
type RollbackTransaction struct{}

func (RollbackTransaction) Kind() Kind { return KindRollbackTransaction }

func (RollbackTransaction) ToString() string { return "ROLLBACK" }

func (RollbackTransaction) ToTree(level int) string {
	return fmt.Sprintf("%sRollbackTransaction()", indent(level))
}

// Explain is `EXPLAIN <target>` (a statement or a bare identifier, e.g.
// `EXPLAIN SELECT ...` or `EXPLAIN tab`).
type Explain struct {
	Target Node
}

func (e *Explain) Kind() Kind { return KindExplain }

func (e *Explain) ToString() string { return "EXPLAIN " + e.Target.ToString() }

func (e *Explain) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sExplain(\n%starget=\n%s,\n%s)", ind, indent(level+1), e.Target.ToTree(level+2), ind)
}

// AlterTable is `ALTER TABLE <table> <arg>` (arg is opaque rendered text,
// e.g. `ADD COLUMN x int` — DDL execution is out of scope for this module).
type AlterTable struct {
	Table Node
	Arg   string
}

func (a *AlterTable) Kind() Kind { return KindAlterTable }

func (a *AlterTable) ToString() string {
	return fmt.Sprintf("ALTER TABLE %s %s", a.Table.ToString(), a.Arg)
}

func (a *AlterTable) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sAlterTable(\n%stable=\n%s,\n%sarg=%q,\n%s)", ind, indent(level+1), a.Table.ToTree(level+2), indent(level+1), a.Arg, ind)
}

// CreatePredictor is the mindsdb `CREATE [OR REPLACE] PREDICTOR name FROM
// integration (select) PREDICT target [USING opt=val, ...]` statement.
type CreatePredictor struct {
	Name            *Identifier
	IntegrationName string
	Query           *Select
	Targets         []Node
	OrderBy         []*OrderBy
	GroupBy         []Node
	Window          *Constant
	Horizon         *Constant
	Using           map[string]Node
	Replace         bool
	Retrain         bool
}

func (c *CreatePredictor) Kind() Kind { return KindCreatePredictor }

func (c *CreatePredictor) ToString() string {
	var b strings.Builder
	verb := "CREATE"
	if c.Retrain {
		verb = "RETRAIN"
	} else if c.Replace {
		verb = "CREATE OR REPLACE"
	}
	fmt.Fprintf(&b, "%s PREDICTOR %s", verb, c.Name.ToString())
	if c.IntegrationName != "" {
		fmt.Fprintf(&b, " FROM %s (%s)", c.IntegrationName, c.Query.ToString())
	}
	if len(c.Targets) > 0 {
		parts := make([]string, len(c.Targets))
		for i, t := range c.Targets {
			parts[i] = t.ToString()
		}
		fmt.Fprintf(&b, " PREDICT %s", strings.Join(parts, ", "))
	}
	if len(c.OrderBy) > 0 {
		parts := make([]string, len(c.OrderBy))
		for i, o := range c.OrderBy {
			parts[i] = o.ToString()
		}
		fmt.Fprintf(&b, " ORDER BY %s", strings.Join(parts, ", "))
	}
	if len(c.GroupBy) > 0 {
		parts := make([]string, len(c.GroupBy))
		for i, g := range c.GroupBy {
			parts[i] = g.ToString()
		}
		fmt.Fprintf(&b, " GROUP BY %s", strings.Join(parts, ", "))
	}
	if c.Window != nil {
		fmt.Fprintf(&b, " WINDOW %s", c.Window.ToString())
	}
	if c.Horizon != nil {
		fmt.Fprintf(&b, " HORIZON %s", c.Horizon.ToString())
	}
	if len(c.Using) > 0 {
		keys := make([]string, 0, len(c.Using))
		for k := range c.Using {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, c.Using[k].ToString()))
		}
		fmt.Fprintf(&b, " USING %s", strings.Join(parts, ", "))
	}
	return b.String()
}

func (c *CreatePredictor) ToTree(level int) string {
	ind := indent(level)
	ind1 := indent(level + 1)
	var b strings.Builder
	fmt.Fprintf(&b, "%sCreatePredictor(name=%s, integration=%q, replace=%v, retrain=%v,\n", ind, c.Name.ToString(), c.IntegrationName, c.Replace, c.Retrain)
	if c.Query != nil {
		fmt.Fprintf(&b, "%squery=\n%s,\n", ind1, c.Query.ToTree(level+2))
	}
	fmt.Fprintf(&b, "%stargets=[\n", ind1)
	for _, t := range c.Targets {
		b.WriteString(t.ToTree(level + 2))
		b.WriteString(",\n")
	}
	fmt.Fprintf(&b, "%s],\n", ind1)
	if len(c.GroupBy) > 0 {
		fmt.Fprintf(&b, "%sgroup_by=[\n", ind1)
		for _, g := range c.GroupBy {
			b.WriteString(g.ToTree(level + 2))
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "%s],\n", ind1)
	}
	if c.Window != nil {
		fmt.Fprintf(&b, "%swindow=\n%s,\n", ind1, c.Window.ToTree(level+2))
	}
	if c.Horizon != nil {
		fmt.Fprintf(&b, "%shorizon=\n%s,\n", ind1, c.Horizon.ToTree(level+2))
	}
	if len(c.Using) > 0 {
		keys := make([]string, 0, len(c.Using))
		for k := range c.Using {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(&b, "%susing=[\n", ind1)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s%s=\n%s,\n", indent(level+2), k, c.Using[k].ToTree(level+3))
		}
		fmt.Fprintf(&b, "%s],\n", ind1)
	}
	fmt.Fprintf(&b, "%s)", ind)
	return b.String()
}

// DropPredictor is `DROP PREDICTOR name`.
type DropPredictor struct {
	Name *Identifier
}

func (d *DropPredictor) Kind() Kind { return KindDropPredictor }

func (d *DropPredictor) ToString() string { return "DROP PREDICTOR " + d.Name.ToString() }

func (d *DropPredictor) ToTree(level int) string {
	return fmt.Sprintf("%sDropPredictor(name=%s)", indent(level), d.Name.ToString())
}
