// Package parser implements dialect-aware recursive-descent parsing of SQL
// text into the ast package's node types. The three dialects (sqlite,
// mysql, mindsdb) share one grammar core (the SELECT statement and its
// expression language) with dialect-specific productions layered on top,
// per spec.md §9's "dialects as configuration, not class hierarchies."
package parser

import (
	"fmt"
	"strings"

	"github.com/kothariji/mindsdb-sql/ast"
	"github.com/kothariji/mindsdb-sql/lexer"
	"github.com/kothariji/mindsdb-sql/token"
)

// Parser holds a fully-scanned token stream for one parse call plus the
// dialect configuration that governs which productions are legal.
type Parser struct {
	dialect lexer.Dialect
	toks    []token.Token
	pos     int
	raw     string
}

// New scans text under dialect and returns a Parser ready for ParseStatement.
func New(text string, dialect lexer.Dialect) (*Parser, error) {
	if strings.TrimSpace(text) == "" {
		return nil, NewParsingException("empty input")
	}
	lx := lexer.New(text, dialect)
	toks, err := lx.All()
	if err != nil {
		return nil, NewParsingException(fmt.Sprintf("parser.New: %s", err))
	}
	return &Parser{dialect: dialect, toks: toks, raw: text}, nil
}

// Parse parses text under dialect and returns the resulting AST node. A
// single statement is expected; a trailing semicolon is permitted but
// anything after it is a parse error.
func Parse(text string, dialect lexer.Dialect) (ast.Node, error) {
	p, err := New(text, dialect)
	if err != nil {
		return nil, err
	}
	node, err := p.ParseStatement()
	if err != nil {
		return nil, err
	}
	if p.at(token.Semicolon) {
		p.advance()
	}
	if !p.eof() {
		return nil, p.fail("unexpected trailing input %q", p.cur().Raw)
	}
	return node, nil
}

func (p *Parser) fail(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return NewParsingException(fmt.Sprintf("%s in: %q", msg, p.raw))
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) at(t token.Type) bool { return p.cur().Type == t }

func (p *Parser) atKeyword(kw string) bool {
	return p.cur().Type == token.Keyword && p.cur().Value == kw
}

func (p *Parser) advance() token.Token {
	tk := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tk
}

func (p *Parser) expect(t token.Type) (token.Token, error) {
	if !p.at(t) {
		return token.Token{}, p.fail("unexpected token %q, wanted %s", p.cur().Raw, t)
	}
	return p.advance(), nil
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.atKeyword(kw) {
		return p.fail("expected %s, got %q", kw, p.cur().Raw)
	}
	p.advance()
	return nil
}

func (p *Parser) eof() bool { return p.at(token.EOF) }

// parseDottedIdentifier parses a bare `a.b.c` identifier with no alias.
func (p *Parser) parseDottedIdentifier() (*ast.Identifier, error) {
	name, err := p.parseIdentSegment()
	if err != nil {
		return nil, err
	}
	parts := []string{name}
	for p.at(token.Dot) {
		p.advance()
		seg, err := p.parseIdentSegment()
		if err != nil {
			return nil, err
		}
		parts = append(parts, seg)
	}
	return &ast.Identifier{Parts: parts}, nil
}

// restRaw joins the raw text of every remaining token up to (not including)
// EOF/semicolon, and advances past them. Used for AlterTable's opaque
// argument, since DDL execution is out of scope for this module.
func (p *Parser) restRaw() string {
	var parts []string
	for !p.eof() && !p.at(token.Semicolon) {
		parts = append(parts, p.advance().Raw)
	}
	return strings.Join(parts, " ")
}
