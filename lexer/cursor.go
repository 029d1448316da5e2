// Package lexer provides the low-level rune cursor and dialect-aware
// tokenizer shared by every SQL dialect this module understands.
package lexer

import (
	"errors"
	"unicode/utf8"
)

// NewCursor returns a Cursor positioned at the start of text.
func NewCursor(text string) *Cursor {
	return &Cursor{buf: text}
}

// Cursor is a minimal rune-at-a-time reader over a string, supporting a
// single level of backup. It underlies Lex, which drives it through a
// state machine to produce tokens.
type Cursor struct {
	buf      string
	off      int
	lastRead readOp
	pos      int
	eof      bool
}

// readOp tracks the byte width of the last read rune so Backup can undo it;
// utf8 runes can span more than one byte.
type readOp int8

const (
	opRead readOp = iota - 1
	opInvalid
	opReadRune1
	opReadRune2
	opReadRune3
	opReadRune4
)

const (
	RuneErr rune = -1
	RuneEOF rune = 0
)

func (c *Cursor) empty() bool { return len(c.buf) <= c.off }

// Len returns the length of the unread portion of the input buffer.
func (c *Cursor) Len() int { return len(c.buf) - c.off }

// Off returns the offset from the start of the input buffer.
func (c *Cursor) Off() int { return c.off }

// Shift returns the next rune. If the input is empty, a synthetic EOF rune
// (value 0) is returned and the offset is not modified.
func (c *Cursor) Shift() rune {
	if c.empty() {
		c.eof = true
		c.lastRead = opReadRune1
		return RuneEOF
	}
	b := c.buf[c.off]
	if b < utf8.RuneSelf {
		c.off++
		c.lastRead = opReadRune1
		return rune(b)
	}
	r, n := utf8.DecodeRuneInString(c.buf[c.off:])
	c.off += n
	c.lastRead = readOp(n)
	return r
}

// Backup moves the offset back by the size of the last read rune. Only one
// backup is possible between Shift calls.
func (c *Cursor) Backup() error {
	if c.lastRead <= opInvalid {
		return errors.New("lexer: Backup called without a preceding Shift")
	}
	if c.eof {
		c.eof = false
		return nil
	}
	if c.off >= int(c.lastRead) {
		c.off -= int(c.lastRead)
	}
	c.lastRead = opInvalid
	return nil
}

// Reduce returns the runes consumed since the last Reduce call and resets
// the window.
func (c *Cursor) Reduce() string {
	v := c.buf[c.pos:c.off]
	c.pos = c.off
	return v
}

// Peek returns the next rune without mutating the offset.
func (c *Cursor) Peek() rune {
	r := c.Shift()
	_ = c.Backup()
	return r
}

// Expect advances past the next rune if it passes the check.
func (c *Cursor) Expect(valid CheckFn) bool {
	if !valid(c.Shift()) {
		_ = c.Backup()
		return false
	}
	return true
}

// Some advances for as long as subsequent runes pass the check. Returns
// false if not at least one rune was consumed.
func (c *Cursor) Some(valid CheckFn) bool {
	if !valid(c.Shift()) {
		_ = c.Backup()
		return false
	}
	for valid(c.Shift()) {
	}
	_ = c.Backup()
	return true
}
