package planner

import (
	"strconv"
	"strings"

	"github.com/kothariji/mindsdb-sql/ast"
)

// splitConjuncts decomposes n into its top-level AND operands, recursing
// through nested ANDs. A non-AND node returns a single-element slice; nil
// returns nil.
func splitConjuncts(n ast.Node) []ast.Node {
	if n == nil {
		return nil
	}
	if b, ok := n.(*ast.BinaryOperation); ok && strings.EqualFold(b.Op, "and") {
		return append(splitConjuncts(b.Args[0]), splitConjuncts(b.Args[1])...)
	}
	return []ast.Node{n}
}

// combineConjuncts ANDs items together left-to-right, so the last item in
// items ends up as the outermost BinaryOperation's right-hand argument —
// the shape the time-series history template needs when it ANDs the group
// filter on as the final, outer conjunct.
func combineConjuncts(items []ast.Node) ast.Node {
	if len(items) == 0 {
		return nil
	}
	result := items[0]
	for _, item := range items[1:] {
		result = ast.NewBinaryOperation("and", result, item)
	}
	return result
}

// stripFirstSegment returns a clone of id with its leading part (the
// integration or namespace prefix) removed. Alias is preserved.
func stripFirstSegment(id *ast.Identifier) *ast.Identifier {
	parts := append([]string(nil), id.Parts...)
	if len(parts) > 1 {
		parts = parts[1:]
	}
	out := ast.NewIdentifier(parts...)
	if alias := id.GetAlias(); alias != nil {
		out.SetAlias(alias)
	}
	return out
}

// aliasOf returns id's explicit alias, or its bare table/column name when
// none was given.
func aliasOf(id *ast.Identifier) string {
	if id.GetAlias() != nil {
		return id.GetAlias().Parts[0]
	}
	return id.Parts[len(id.Parts)-1]
}

// resultIdentifier builds the synthetic `result_<i>` identifier a JoinStep's
// query uses in place of the original table reference, carrying that side's
// original alias forward.
func resultIdentifier(i int, alias string) *ast.Identifier {
	id := ast.NewIdentifier(resultName(i))
	id.SetAlias(ast.NewIdentifier(alias))
	return id
}

func resultName(i int) string {
	return "result_" + strconv.Itoa(i)
}

// tableSide is classify's verdict on a FROM-clause table reference: a known
// integration, the predictor namespace, or neither.
type tableSide int

const (
	sideUnknown tableSide = iota
	sideIntegration
	sidePredictor
)

func classify(id *ast.Identifier, integrations []string, predictorNamespace, defaultNamespace string) tableSide {
	if len(id.Parts) == 1 {
		switch {
		case strings.EqualFold(defaultNamespace, predictorNamespace) && defaultNamespace != "":
			return sidePredictor
		case defaultNamespace != "":
			return sideIntegration
		}
		return sideUnknown
	}
	head := id.Parts[0]
	if strings.EqualFold(head, predictorNamespace) {
		return sidePredictor
	}
	for _, in := range integrations {
		if in == head {
			return sideIntegration
		}
	}
	return sideUnknown
}

// identifierTable returns the table-qualifying prefix of a ≥2-part
// identifier (everything but the last segment), used by
// requireWhereOnlyReferences to check that WHERE identifiers name an
// allowed table.
func identifierTable(id *ast.Identifier) (string, bool) {
	if len(id.Parts) < 2 {
		return "", false
	}
	return strings.Join(id.Parts[:len(id.Parts)-1], "."), true
}

// collectIdentifiers gathers every Identifier reachable from n, in
// left-to-right order.
func collectIdentifiers(n ast.Node) []*ast.Identifier {
	var out []*ast.Identifier
	var walk func(ast.Node)
	walk = func(n ast.Node) {
		if n == nil {
			return
		}
		switch v := n.(type) {
		case *ast.Identifier:
			out = append(out, v)
		case *ast.Tuple:
			for _, it := range v.Items {
				walk(it)
			}
		case *ast.TypeCast:
			walk(v.Arg)
		case *ast.BinaryOperation:
			walk(v.Args[0])
			walk(v.Args[1])
		case *ast.UnaryOperation:
			walk(v.Arg)
		case *ast.BetweenOperation:
			walk(v.Arg)
			walk(v.Low)
			walk(v.High)
		case *ast.Function:
			for _, a := range v.Args {
				walk(a)
			}
		}
	}
	walk(n)
	return out
}
