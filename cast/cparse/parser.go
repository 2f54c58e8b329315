package cparse

import (
	"fmt"

	"go.yamlctor.dev/yamlctor/cast"
)

// keywords that can appear inside a type-spec (as opposed to forming a
// standalone declaration keyword like struct/enum/union/typedef).
var typeSpecWords = map[string]bool{
	"unsigned": true, "signed": true, "const": true,
	"void": true, "char": true, "bool": true, "_Bool": true,
	"int": true, "short": true, "long": true, "float": true, "double": true,
}

// Parse reads src (the contents of a C header) and returns the
// translation-unit cursor rooted at its top-level declarations.
func Parse(filename, src string) (cast.Cursor, error) {
	lx := newLexer(filename, src)

	toks, err := lx.tokens()
	if err != nil {
		return nil, err
	}

	p := &parser{toks: toks, filename: filename}

	var children []cast.Cursor

	for !p.at(tokEOF) {
		decl, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}

		if decl != nil {
			children = append(children, decl)
		}
	}

	return &cursor{kind: cast.KindTranslationUnit, children: children}, nil
}

type parser struct {
	toks     []token
	pos      int
	filename string
}

func (p *parser) cur() token { return p.toks[p.pos] }

func (p *parser) at(k tokenKind) bool { return p.cur().kind == k }

func (p *parser) atText(s string) bool {
	return p.cur().kind != tokEOF && p.cur().text == s
}

func (p *parser) next() token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}

	return t
}

func (p *parser) expectPunct(s string) (token, error) {
	if p.cur().kind != tokPunct || p.cur().text != s {
		return token{}, p.errorf("expected %q, got %q", s, p.cur().text)
	}

	return p.next(), nil
}

func (p *parser) expectIdent() (token, error) {
	if p.cur().kind != tokIdent {
		return token{}, p.errorf("expected identifier, got %q", p.cur().text)
	}

	return p.next(), nil
}

func (p *parser) errorf(format string, args ...any) error {
	t := p.cur()

	return fmt.Errorf("%s:%d:%d: %w", p.filename, t.line, t.col, fmt.Errorf(format, args...))
}

func (p *parser) pos_(t token) cast.Position {
	return cast.Position{File: p.filename, Line: t.line, Column: t.col}
}

// parseTopLevel parses exactly one top-level declaration: a struct/union/
// enum definition, a typedef, or a function prototype.
func (p *parser) parseTopLevel() (cast.Cursor, error) {
	tok := p.cur()

	switch tok.text {
	case "typedef":
		return p.parseTypedef()
	case "struct":
		c, err := p.parseRecord(cast.KindStructDecl, "struct")
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		return c, nil
	case "union":
		c, err := p.parseRecord(cast.KindUnionDecl, "union")
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		return c, nil
	case "enum":
		c, err := p.parseEnum()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		return c, nil
	}

	return p.parseFunctionDecl()
}

// parseTypedef parses `typedef <type> <alias> ;`, where <type> may be an
// inline struct/union/enum definition (possibly anonymous) or a reference
// to a previously declared/primitive type.
func (p *parser) parseTypedef() (cast.Cursor, error) {
	doc := p.cur().comment
	p.next() // consume "typedef"

	var inner cast.Cursor

	switch p.cur().text {
	case "struct":
		c, err := p.parseRecord(cast.KindStructDecl, "struct")
		if err != nil {
			return nil, err
		}

		inner = c
	case "union":
		c, err := p.parseRecord(cast.KindUnionDecl, "union")
		if err != nil {
			return nil, err
		}

		inner = c
	case "enum":
		c, err := p.parseEnum()
		if err != nil {
			return nil, err
		}

		inner = c
	}

	if inner != nil {
		// typedef struct { ... } alias;  or  typedef struct NAME { ... } alias;
		aliasTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		return &cursor{
			kind:     cast.KindTypedefDecl,
			spelling: aliasTok.text,
			typ:      innerType(inner),
			comment:  doc,
			children: []cast.Cursor{inner},
			pos:      p.pos_(aliasTok),
		}, nil
	}

	// typedef <typespec> <stars> alias ;
	t, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}

	for p.atText("*") {
		p.next()

		t = pointerTo(t)
	}

	aliasTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return &cursor{
		kind:     cast.KindTypedefDecl,
		spelling: aliasTok.text,
		typ:      t,
		comment:  doc,
		pos:      p.pos_(aliasTok),
	}, nil
}

func innerType(c cast.Cursor) cast.Type {
	return c.Type()
}

// parseRecord parses `struct|union [NAME] { fields... }` (without the
// trailing semicolon, which the caller consumes).
func (p *parser) parseRecord(kind cast.CursorKind, keyword string) (cast.Cursor, error) {
	doc := p.cur().comment
	kwTok := p.next() // consume struct/union

	name := ""
	if p.at(tokIdent) {
		name = p.next().text
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var fields []cast.Cursor

	for !p.atText("}") {
		f, err := p.parseField()
		if err != nil {
			return nil, err
		}

		fields = append(fields, f)
	}

	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	spelling := keyword
	if name != "" {
		spelling = keyword + " " + name
	}

	return &cursor{
		kind:     kind,
		spelling: name,
		typ:      &typ{kind: cast.TypeRecord, spelling: spelling},
		comment:  doc,
		children: fields,
		pos:      p.pos_(kwTok),
	}, nil
}

// parseField parses one `<typespec> <stars> name ;` inside a struct/union
// body, including an anonymous nested union (the tagged-union payload
// shape), which the caller's discovery pass accepts or rejects.
func (p *parser) parseField() (cast.Cursor, error) {
	doc := p.cur().comment

	if p.atText("union") {
		rec, err := p.parseRecord(cast.KindUnionDecl, "union")
		if err != nil {
			return nil, err
		}

		name := ""
		if p.at(tokIdent) {
			name = p.next().text
		}

		if _, err := p.expectPunct(";"); err != nil {
			return nil, err
		}

		fieldCursor := &cursor{
			kind:     cast.KindFieldDecl,
			spelling: name,
			typ:      rec.Type(),
			comment:  doc,
			children: rec.Children(),
			pos:      rec.Position(),
		}

		return fieldCursor, nil
	}

	startTok := p.cur()

	t, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}

	for p.atText("*") {
		p.next()

		t = pointerTo(t)
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return &cursor{
		kind:     cast.KindFieldDecl,
		spelling: nameTok.text,
		typ:      t,
		comment:  doc,
		pos:      p.pos_(startTok),
	}, nil
}

// parseEnum parses `enum [NAME] { CONST [= expr], ... }` (without the
// trailing semicolon).
func (p *parser) parseEnum() (cast.Cursor, error) {
	doc := p.cur().comment
	kwTok := p.next() // consume "enum"

	name := ""
	if p.at(tokIdent) {
		name = p.next().text
	}

	if _, err := p.expectPunct("{"); err != nil {
		return nil, err
	}

	var constants []cast.Cursor

	for !p.atText("}") {
		cDoc := p.cur().comment

		cTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		if p.atText("=") {
			p.next()
			// skip a simple constant expression up to the next comma or '}'.
			for !p.atText(",") && !p.atText("}") {
				p.next()
			}
		}

		constants = append(constants, &cursor{
			kind:     cast.KindEnumConstantDecl,
			spelling: cTok.text,
			comment:  cDoc,
			pos:      p.pos_(cTok),
		})

		if p.atText(",") {
			p.next()
		}
	}

	if _, err := p.expectPunct("}"); err != nil {
		return nil, err
	}

	spelling := "enum"
	if name != "" {
		spelling = "enum " + name
	}

	return &cursor{
		kind:     cast.KindEnumDecl,
		spelling: name,
		typ:      &typ{kind: cast.TypeEnum, spelling: spelling},
		comment:  doc,
		children: constants,
		pos:      p.pos_(kwTok),
	}, nil
}

// parseFunctionDecl parses a function prototype `<typespec> <stars> name (
// ... ) ;`, used only to register custom-type constructor/destructor
// symbol names.
func (p *parser) parseFunctionDecl() (cast.Cursor, error) {
	doc := p.cur().comment
	startTok := p.cur()

	if _, err := p.parseTypeSpec(); err != nil {
		return nil, err
	}

	for p.atText("*") {
		p.next()
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunct("("); err != nil {
		return nil, err
	}

	depth := 1
	for depth > 0 {
		if p.at(tokEOF) {
			return nil, p.errorf("unterminated parameter list")
		}

		switch p.cur().text {
		case "(":
			depth++
		case ")":
			depth--
		}

		p.next()
	}

	if _, err := p.expectPunct(";"); err != nil {
		return nil, err
	}

	return &cursor{
		kind:     cast.KindFunctionDecl,
		spelling: nameTok.text,
		comment:  doc,
		pos:      p.pos_(startTok),
	}, nil
}

// parseTypeSpec parses a sequence of type-spec keywords and/or a single
// struct/enum/union-qualified or bare identifier naming a type, and
// returns the resulting cast.Type.
func (p *parser) parseTypeSpec() (*typ, error) {
	switch p.cur().text {
	case "struct", "enum", "union":
		kw := p.next().text

		nameTok, err := p.expectIdent()
		if err != nil {
			return nil, err
		}

		kind := cast.TypeRecord
		if kw == "enum" {
			kind = cast.TypeEnum
		}

		return &typ{kind: kind, spelling: kw + " " + nameTok.text}, nil
	}

	var words []string

	for p.at(tokIdent) && typeSpecWords[p.cur().text] {
		words = append(words, p.next().text)
	}

	if len(words) > 0 {
		spelling := words[0]
		for _, w := range words[1:] {
			spelling += " " + w
		}

		if kind, ok := primitiveKind(spelling); ok {
			return &typ{kind: kind, spelling: spelling}, nil
		}

		return &typ{kind: cast.TypeNamed, spelling: spelling}, nil
	}

	nameTok, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if kind, ok := primitiveKind(nameTok.text); ok {
		return &typ{kind: kind, spelling: nameTok.text}, nil
	}

	return &typ{kind: cast.TypeNamed, spelling: nameTok.text}, nil
}
