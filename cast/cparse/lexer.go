// Package cparse is the one concrete implementation of cast.Cursor this
// repository ships: a hand-written recursive-descent reader for the
// restricted C declaration subset the generator accepts (struct, enum,
// typedef, anonymous union, function prototypes, and their attached
// doc comments). It exists because no third-party C front-end binding
// appears anywhere in this module's dependency corpus; see DESIGN.md.
package cparse

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokPunct
	tokNumber
)

type token struct {
	kind    tokenKind
	text    string
	line    int
	col     int
	comment string // doc-comment immediately preceding this token, if any
}

type lexer struct {
	src      []rune
	pos      int
	line     int
	col      int
	filename string
}

func newLexer(filename, src string) *lexer {
	return &lexer{src: []rune(src), line: 1, col: 1, filename: filename}
}

func (l *lexer) peekRune() (rune, bool) {
	if l.pos >= len(l.src) {
		return 0, false
	}

	return l.src[l.pos], true
}

func (l *lexer) advance() (rune, bool) {
	r, ok := l.peekRune()
	if !ok {
		return 0, false
	}

	l.pos++

	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	return r, true
}

// tokens lexes the entire input, attaching any doc-comment that
// immediately precedes a token (across intervening blank lines and
// non-doc comments are not carried forward across unrelated tokens).
func (l *lexer) tokens() ([]token, error) {
	var toks []token

	var pendingComment string

	for {
		l.skipSpaces()

		r, ok := l.peekRune()
		if !ok {
			toks = append(toks, token{kind: tokEOF, line: l.line, col: l.col})
			return toks, nil
		}

		if r == '/' {
			consumed, doc, err := l.readComment()
			if err != nil {
				return nil, err
			}

			if consumed {
				if doc != "" {
					pendingComment = doc
				}

				continue
			}
		}

		startLine, startCol := l.line, l.col

		if isIdentStart(r) {
			text := l.readIdent()
			toks = append(toks, token{kind: tokIdent, text: text, line: startLine, col: startCol, comment: pendingComment})
			pendingComment = ""

			continue
		}

		if unicode.IsDigit(r) {
			// Numeric literal, e.g. an enum constant's value; suffixes and
			// hex digits are read as part of the same token.
			text := l.readIdent()
			toks = append(toks, token{kind: tokNumber, text: text, line: startLine, col: startCol, comment: pendingComment})
			pendingComment = ""

			continue
		}

		switch r {
		case '{', '}', '(', ')', '[', ']', ';', ',', '*', '=':
			l.advance()
			toks = append(toks, token{kind: tokPunct, text: string(r), line: startLine, col: startCol, comment: pendingComment})
			pendingComment = ""
		default:
			return nil, fmt.Errorf("%s:%d:%d: unexpected character %q", l.filename, startLine, startCol, r)
		}
	}
}

func (l *lexer) skipSpaces() {
	for {
		r, ok := l.peekRune()
		if !ok || !unicode.IsSpace(r) {
			return
		}

		l.advance()
	}
}

// readComment consumes one comment starting at the current position.
// It reports whether a comment was consumed, and its doc text when the
// comment is a doc-comment (opens with "/**" or "///").
func (l *lexer) readComment() (bool, string, error) {
	save := l.pos

	r, _ := l.advance()
	if r != '/' {
		return false, "", nil
	}

	next, ok := l.peekRune()
	if !ok {
		l.pos = save

		return false, "", nil
	}

	switch next {
	case '/':
		l.advance()

		doc := false

		if n2, ok := l.peekRune(); ok && n2 == '/' {
			l.advance()
			doc = true
		}

		var sb strings.Builder

		for {
			r, ok := l.peekRune()
			if !ok || r == '\n' {
				break
			}

			sb.WriteRune(r)
			l.advance()
		}

		if doc {
			return true, strings.TrimSpace(sb.String()), nil
		}

		return true, "", nil

	case '*':
		l.advance()

		doc := false

		if n2, ok := l.peekRune(); ok && n2 == '*' {
			l.advance()
			doc = true
		}

		var sb strings.Builder

		for {
			r, ok := l.advance()
			if !ok {
				return false, "", fmt.Errorf("%s: unterminated comment", l.filename)
			}

			if r == '*' {
				if n2, ok := l.peekRune(); ok && n2 == '/' {
					l.advance()
					break
				}
			}

			sb.WriteRune(r)
		}

		if doc {
			return true, strings.TrimSpace(sb.String()), nil
		}

		return true, "", nil
	}

	l.pos = save

	return false, "", nil
}

func (l *lexer) readIdent() string {
	var sb strings.Builder
	for {
		r, ok := l.peekRune()
		if !ok || !isIdentPart(r) {
			break
		}

		sb.WriteRune(r)
		l.advance()
	}

	return sb.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
