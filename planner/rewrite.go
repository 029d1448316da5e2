package planner

import "github.com/kothariji/mindsdb-sql/ast"

// rewriteIdentifiers returns a structural clone of n with every Identifier
// replaced by fn's result. The AST is a pure tree (spec.md §9: "Planner
// rewrites clone subtrees rather than sharing"), so the node kinds listed
// below are copied, not mutated in place; any other kind (a nested Select,
// for one) is returned as-is and shared with the input.
func rewriteIdentifiers(n ast.Node, fn func(*ast.Identifier) *ast.Identifier) ast.Node {
	if n == nil {
		return nil
	}
	switch v := n.(type) {
	case *ast.Identifier:
		return fn(v)
	case *ast.Constant:
		c := *v
		return &c
	case *ast.NullConstant:
		c := *v
		return &c
	case *ast.Star:
		c := *v
		return &c
	case *ast.Parameter:
		c := *v
		return &c
	case *ast.Variable:
		c := *v
		return &c
	case *ast.Latest:
		c := *v
		return &c
	case *ast.Tuple:
		c := *v
		c.Items = make([]ast.Node, len(v.Items))
		for i, it := range v.Items {
			c.Items[i] = rewriteIdentifiers(it, fn)
		}
		return &c
	case *ast.TypeCast:
		c := *v
		c.Arg = rewriteIdentifiers(v.Arg, fn)
		return &c
	case *ast.BinaryOperation:
		c := *v
		c.Args = [2]ast.Node{rewriteIdentifiers(v.Args[0], fn), rewriteIdentifiers(v.Args[1], fn)}
		return &c
	case *ast.UnaryOperation:
		c := *v
		c.Arg = rewriteIdentifiers(v.Arg, fn)
		return &c
	case *ast.BetweenOperation:
		c := *v
		c.Arg = rewriteIdentifiers(v.Arg, fn)
		c.Low = rewriteIdentifiers(v.Low, fn)
		c.High = rewriteIdentifiers(v.High, fn)
		return &c
	case *ast.Function:
		c := *v
		c.Args = make([]ast.Node, len(v.Args))
		for i, a := range v.Args {
			c.Args[i] = rewriteIdentifiers(a, fn)
		}
		return &c
	case *ast.Join:
		c := *v
		c.Left = rewriteIdentifiers(v.Left, fn)
		c.Right = rewriteIdentifiers(v.Right, fn)
		if v.Condition != nil {
			c.Condition = rewriteIdentifiers(v.Condition, fn)
		}
		return &c
	default:
		return n
	}
}

// cloneNode is rewriteIdentifiers with a copying identity function — a deep
// clone of the node kinds rewriteIdentifiers copies, used when a subtree needs to be duplicated across two templates
// (e.g. the history/forecast split in the time-series join) without
// aliasing mutable state.
func cloneNode(n ast.Node) ast.Node {
	return rewriteIdentifiers(n, func(id *ast.Identifier) *ast.Identifier {
		c := *id
		c.Parts = append([]string(nil), id.Parts...)
		return &c
	})
}
