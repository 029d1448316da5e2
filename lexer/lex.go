package lexer

import (
	"fmt"
	"strings"

	"github.com/kothariji/mindsdb-sql/token"
)

// stateFunc is one state in the tokenizer's state machine. It reads from l's
// cursor and either emits a token (via l.emit) and returns the next state,
// or returns an error.
type stateFunc func(*Lex) (stateFunc, error)

// Lex is a dialect-aware tokenizer. Construct with New and drive it with
// Next until it returns a token.EOF token.
type Lex struct {
	cur      *Cursor
	dialect  Dialect
	keywords map[string]bool
	state    stateFunc
	pending  []token.Token
	source   string
}

// New returns a tokenizer over text for the given dialect.
func New(text string, dialect Dialect) *Lex {
	return &Lex{
		cur:      NewCursor(text),
		dialect:  dialect,
		keywords: Keywords(dialect),
		state:    lexStart,
		source:   text,
	}
}

// Next returns the next token, or an error if the input contains an
// unrecognized character or an unterminated literal. Once EOF has been
// emitted, Next keeps returning it.
func (l *Lex) Next() (token.Token, error) {
	for len(l.pending) == 0 {
		var err error
		if l.state, err = l.state(l); err != nil {
			return token.Token{}, err
		}
	}
	tk := l.pending[0]
	l.pending = l.pending[1:]
	return tk, nil
}

// All drains the tokenizer, returning every token through (and including)
// EOF, or the first error encountered.
func (l *Lex) All() ([]token.Token, error) {
	var out []token.Token
	for {
		tk, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tk)
		if tk.Type == token.EOF {
			return out, nil
		}
	}
}

func (l *Lex) emit(t token.Type, value, raw string) {
	l.pending = append(l.pending, token.Token{Type: t, Value: value, Raw: raw, Pos: l.cur.Off()})
}

func (l *Lex) emitQuoted(t token.Type, value, raw string) {
	l.pending = append(l.pending, token.Token{Type: t, Value: value, Raw: raw, Quoted: true, Pos: l.cur.Off()})
}

func lexStart(l *Lex) (stateFunc, error) {
	r := l.cur.Shift()
	switch {
	case r == RuneEOF:
		l.emit(token.EOF, "", "")
		return lexEOF, nil
	case IsSpace(r):
		return lexWhitespace, nil
	case r == '=':
		l.emit(token.Eq, "=", "=")
		return lexStart, nil
	case r == '!':
		return lexBangEq, nil
	case r == '<':
		return lexLt, nil
	case r == '>':
		return lexGt, nil
	case r == '+':
		l.emit(token.Plus, "+", "+")
		return lexStart, nil
	case r == '-':
		return lexMinusOrNumber(l)
	case r == '*':
		l.emit(token.Star, "*", "*")
		return lexStart, nil
	case r == '/':
		l.emit(token.Slash, "/", "/")
		return lexStart, nil
	case r == '%':
		l.emit(token.Percent, "%", "%")
		return lexStart, nil
	case r == '(':
		l.emit(token.LParen, "(", "(")
		return lexStart, nil
	case r == ')':
		l.emit(token.RParen, ")", ")")
		return lexStart, nil
	case r == ',':
		l.emit(token.Comma, ",", ",")
		return lexStart, nil
	case r == '.':
		return lexDotOrNumber(l)
	case r == ';':
		l.emit(token.Semicolon, ";", ";")
		return lexStart, nil
	case r == '?':
		l.emit(token.Parameter, "?", "?")
		return lexStart, nil
	case r == '@' && l.dialect != SQLite:
		return lexAt, nil
	case r == '\'' || r == '"':
		_ = l.cur.Backup()
		return lexString, nil
	case r == '`':
		return lexBacktickIdent, nil
	case IsDigit(r):
		_ = l.cur.Backup()
		return lexNumber, nil
	case IsIdentStart(r):
		_ = l.cur.Backup()
		return lexIdentOrKeyword, nil
	default:
		return nil, fmt.Errorf("lexer: unrecognized character %q at offset %d", r, l.cur.Off())
	}
}

func lexEOF(l *Lex) (stateFunc, error) {
	l.emit(token.EOF, "", "")
	return lexEOF, nil
}

func lexWhitespace(l *Lex) (stateFunc, error) {
	for {
		r := l.cur.Shift()
		if r == RuneEOF || !IsSpace(r) {
			_ = l.cur.Backup()
			break
		}
	}
	return lexStart, nil
}

func lexBangEq(l *Lex) (stateFunc, error) {
	r := l.cur.Shift()
	if r == '=' {
		l.emit(token.NotEq, "!=", "!=")
		return lexStart, nil
	}
	return nil, fmt.Errorf(`lexer: invalid "!=" token near offset %d`, l.cur.Off())
}

func lexLt(l *Lex) (stateFunc, error) {
	r := l.cur.Shift()
	switch r {
	case '=':
		l.emit(token.LtEq, "<=", "<=")
	case '>':
		l.emit(token.NotEq, "<>", "<>")
	default:
		_ = l.cur.Backup()
		l.emit(token.Lt, "<", "<")
	}
	return lexStart, nil
}

func lexGt(l *Lex) (stateFunc, error) {
	r := l.cur.Shift()
	if r == '=' {
		l.emit(token.GtEq, ">=", ">=")
		return lexStart, nil
	}
	_ = l.cur.Backup()
	l.emit(token.Gt, ">", ">")
	return lexStart, nil
}

// lexMinusOrNumber always emits a Minus token and lets numbers be scanned
// unsigned; the parser decides from position whether '-' is a binary or a
// unary operator.
func lexMinusOrNumber(l *Lex) (stateFunc, error) {
	l.emit(token.Minus, "-", "-")
	return lexStart, nil
}

func lexDotOrNumber(l *Lex) (stateFunc, error) {
	if IsDigit(l.cur.Peek()) {
		// Peek has already used the cursor's single level of backup, so
		// step back over the one-byte '.' directly.
		l.cur.off--
		return lexNumber, nil
	}
	l.emit(token.Dot, ".", ".")
	return lexStart, nil
}

func lexAt(l *Lex) (stateFunc, error) {
	isSystem := false
	if l.cur.Peek() == '@' {
		l.cur.Shift()
		isSystem = true
	}
	var b strings.Builder
	for {
		r := l.cur.Shift()
		if !IsIdentPart(r) {
			_ = l.cur.Backup()
			break
		}
		b.WriteRune(r)
	}
	name := b.String()
	if name == "" {
		return nil, fmt.Errorf("lexer: empty variable name near offset %d", l.cur.Off())
	}
	if isSystem {
		l.emit(token.SysVar, name, "@@"+name)
	} else {
		l.emit(token.UserVar, name, "@"+name)
	}
	return lexStart, nil
}

// lexString scans a '...'- or "..."-delimited string, where the delimiter
// is escaped by doubling it.
func lexString(l *Lex) (stateFunc, error) {
	quote := l.cur.Shift()
	var b strings.Builder
	var raw strings.Builder
	raw.WriteRune(quote)
	for {
		r := l.cur.Shift()
		switch {
		case r == RuneEOF:
			return nil, fmt.Errorf("lexer: unterminated string literal starting near offset %d", l.cur.Off())
		case r == quote:
			if l.cur.Peek() == quote {
				l.cur.Shift()
				b.WriteRune(quote)
				raw.WriteRune(quote)
				raw.WriteRune(quote)
				continue
			}
			raw.WriteRune(quote)
			l.emitQuoted(token.String, b.String(), raw.String())
			return lexStart, nil
		default:
			b.WriteRune(r)
			raw.WriteRune(r)
		}
	}
}

// lexBacktickIdent scans a `...`-quoted identifier segment, doubled
// backtick escaping an embedded backtick.
func lexBacktickIdent(l *Lex) (stateFunc, error) {
	var b strings.Builder
	for {
		r := l.cur.Shift()
		switch {
		case r == RuneEOF:
			return nil, fmt.Errorf("lexer: unterminated backtick identifier near offset %d", l.cur.Off())
		case r == '`':
			if l.cur.Peek() == '`' {
				l.cur.Shift()
				b.WriteRune('`')
				continue
			}
			l.emitQuoted(token.Ident, b.String(), "`"+b.String()+"`")
			return lexStart, nil
		default:
			b.WriteRune(r)
		}
	}
}

func lexNumber(l *Lex) (stateFunc, error) {
	var b strings.Builder
	for IsDigit(l.cur.Peek()) {
		b.WriteRune(l.cur.Shift())
	}
	if l.cur.Peek() == '.' {
		b.WriteRune(l.cur.Shift())
		for IsDigit(l.cur.Peek()) {
			b.WriteRune(l.cur.Shift())
		}
	}
	if r := l.cur.Peek(); r == 'e' || r == 'E' {
		save := b.String()
		var exp strings.Builder
		exp.WriteRune(l.cur.Shift())
		if r := l.cur.Peek(); r == '+' || r == '-' {
			exp.WriteRune(l.cur.Shift())
		}
		if IsDigit(l.cur.Peek()) {
			for IsDigit(l.cur.Peek()) {
				exp.WriteRune(l.cur.Shift())
			}
			b.WriteString(exp.String())
		} else {
			// not actually an exponent; nothing consumed beyond save.
			b.Reset()
			b.WriteString(save)
			l.cur.off -= exp.Len()
		}
	}
	s := b.String()
	l.emit(token.Number, s, s)
	return lexStart, nil
}

func lexIdentOrKeyword(l *Lex) (stateFunc, error) {
	var b strings.Builder
	for IsIdentPart(l.cur.Peek()) {
		b.WriteRune(l.cur.Shift())
	}
	s := b.String()
	if l.keywords[strings.ToUpper(s)] {
		l.emit(token.Keyword, strings.ToUpper(s), s)
		return lexStart, nil
	}
	l.emit(token.Ident, s, s)
	return lexStart, nil
}
