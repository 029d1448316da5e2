package planner

import "github.com/kothariji/mindsdb-sql/ast"

// planSingleIntegration implements spec.md §4.3 rule 1: a SELECT whose FROM
// names a single integration table. The integration prefix is stripped from
// from_table; WHERE/GROUP BY/HAVING/ORDER BY/LIMIT/OFFSET travel unchanged.
func planSingleIntegration(b *builder, sel *ast.Select, tbl *ast.Identifier, integrations []string, cfg *options) (*QueryPlan, error) {
	query := &ast.Select{
		Targets:   sel.Targets,
		FromTable: stripFirstSegment(tbl),
		Where:     sel.Where,
		GroupBy:   sel.GroupBy,
		Having:    sel.Having,
		OrderBy:   sel.OrderBy,
		Limit:     sel.Limit,
		Offset:    sel.Offset,
		Distinct:  sel.Distinct,
	}
	fetch := b.add(&FetchDataframeStep{Integration: tbl.Parts[0], Query: query})
	b.add(&ProjectStep{Dataframe: fetch, Columns: sel.Targets})
	return b.build(cfg.defaultNamespace, integrations), nil
}
