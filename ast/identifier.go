package ast

import (
	"fmt"
	"strings"
)

// Identifier is a dotted sequence of name segments, e.g. `a.b.c.d`. Each
// segment renders bare when it matches a plain identifier shape and
// backtick-quoted otherwise, restoring backticks only where needed for a
// faithful round trip.
type Identifier struct {
	base
	Parts []string
}

// NewIdentifier builds an Identifier from a dotted parts list.
func NewIdentifier(parts ...string) *Identifier {
	return &Identifier{Parts: parts}
}

func (i *Identifier) Kind() Kind { return KindIdentifier }

func (i *Identifier) WithAlias(alias *Identifier) *Identifier {
	i.Alias = alias
	return i
}

func isBareIdent(s string) bool {
	if s == "" {
		return false
	}
	for idx, r := range s {
		switch {
		case r == '_':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
			if idx == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func quoteSegment(s string) string {
	if isBareIdent(s) {
		return s
	}
	return "`" + strings.ReplaceAll(s, "`", "``") + "`"
}

func (i *Identifier) ToString() string {
	segs := make([]string, len(i.Parts))
	for idx, p := range i.Parts {
		segs[idx] = quoteSegment(p)
	}
	return i.wrap(strings.Join(segs, ".")) + i.aliasSuffix()
}

func (i *Identifier) ToTree(level int) string {
	ind := indent(level)
	return fmt.Sprintf("%sIdentifier(parts=%v, alias=%s, parens=%v)", ind, i.Parts, i.treeAlias(), i.Parens)
}
