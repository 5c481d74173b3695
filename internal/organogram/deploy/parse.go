// Package deploy loads organogram definitions written as Cypher scripts into
// the graph store, one statement per write transaction.
package deploy

import (
	"io"
	"strings"

	"github.com/Pass-The-Butter/willow/internal/types"
)

const summaryWidth = 60

// Statement is one executable Cypher statement from a script.
type Statement struct {
	// Index is the 1-based position of the statement in the script.
	Index int
	// Line is the script line on which the statement starts.
	Line int
	Text string
}

// Summary returns the first line of the statement, truncated for display.
func (s Statement) Summary() string {
	first, _, _ := strings.Cut(s.Text, "\n")
	first = strings.TrimSpace(first)
	if runes := []rune(first); len(runes) > summaryWidth {
		return string(runes[:summaryWidth]) + "..."
	}
	return first
}

// Parse splits a Cypher script into statements. Line comments (//) and block
// comments (/* */) are removed and statements are split on ';'. Quoted
// strings and backtick identifiers are left intact, including any ';' or '//'
// they contain. Empty statements are dropped.
func Parse(r io.Reader) ([]Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, types.WrapError(types.IO_READ_FAILED, "failed to read cypher script", err)
	}

	p := &parser{src: []rune(string(data)), line: 1}
	return p.run(), nil
}

type parser struct {
	src  []rune
	pos  int
	line int

	buf       strings.Builder
	startLine int
	stmts     []Statement
}

func (p *parser) run() []Statement {
	p.startLine = p.line
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch {
		case c == '\'' || c == '"' || c == '`':
			p.quoted(c)
		case c == '/' && p.peek() == '/':
			p.skipLineComment()
		case c == '/' && p.peek() == '*':
			p.skipBlockComment()
		case c == ';':
			p.pos++
			p.flush()
		default:
			p.emit(c)
			p.pos++
		}
	}
	p.flush()
	return p.stmts
}

func (p *parser) peek() rune {
	if p.pos+1 < len(p.src) {
		return p.src[p.pos+1]
	}
	return 0
}

func (p *parser) emit(c rune) {
	if c == '\n' {
		p.line++
	}
	if p.buf.Len() == 0 && isSpace(c) {
		p.startLine = p.line
		return
	}
	p.buf.WriteRune(c)
}

// quoted copies a string literal or backtick identifier verbatim.
func (p *parser) quoted(quote rune) {
	p.emit(quote)
	p.pos++
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.emit(c)
		p.pos++
		if c == '\\' && quote != '`' && p.pos < len(p.src) {
			p.emit(p.src[p.pos])
			p.pos++
			continue
		}
		if c == quote {
			return
		}
	}
}

func (p *parser) skipLineComment() {
	for p.pos < len(p.src) && p.src[p.pos] != '\n' {
		p.pos++
	}
}

func (p *parser) skipBlockComment() {
	p.pos += 2
	for p.pos < len(p.src) {
		if p.src[p.pos] == '*' && p.peek() == '/' {
			p.pos += 2
			return
		}
		if p.src[p.pos] == '\n' {
			p.line++
		}
		p.pos++
	}
}

func (p *parser) flush() {
	text := strings.TrimSpace(p.buf.String())
	p.buf.Reset()
	if text != "" {
		p.stmts = append(p.stmts, Statement{
			Index: len(p.stmts) + 1,
			Line:  p.startLine,
			Text:  text,
		})
	}
	p.startLine = p.line
}

func isSpace(c rune) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
