package planner_test

import (
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/kothariji/mindsdb-sql/ast"
)

// cmpOpts lets cmp.Diff descend into the unexported alias/parens fields
// every ast node embeds, so those fields are compared too.
var cmpOpts = cmp.Exporter(func(reflect.Type) bool { return true })

// identAlias builds a dotted Identifier from parts, aliased to alias — the
// shape every FROM-clause table reference and every JoinStep's synthetic
// result_<i> identifier carries in the fixture plans these tests check
// against.
func identAlias(alias string, parts ...string) *ast.Identifier {
	id := ast.NewIdentifier(parts...)
	id.SetAlias(ast.NewIdentifier(alias))
	return id
}
