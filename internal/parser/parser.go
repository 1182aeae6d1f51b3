// Package parser turns the token stream into an AST. Expressions use
// precedence climbing; statements use recursive descent. Any malformed
// construct aborts the parse with a *diag.SyntaxError; a partial AST is
// never returned.
package parser

import (
	"fmt"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

// Binding power levels, lowest to highest.
const (
	bpNone       = 0
	bpAssign     = 5
	bpTernary    = 8
	bpOr         = 10
	bpAnd        = 20
	bpEquality   = 30
	bpComparison = 40
	bpAdditive   = 50
	bpMultiply   = 60
	bpUnary      = 70
	bpPostfix    = 80
)

func infixBP(kind token.Kind) int {
	switch kind {
	case token.OR:
		return bpOr
	case token.AND:
		return bpAnd
	case token.EQ, token.NEQ:
		return bpEquality
	case token.LT, token.LTE, token.GT, token.GTE:
		return bpComparison
	case token.PLUS, token.MINUS:
		return bpAdditive
	case token.STAR, token.SLASH, token.PERCENT:
		return bpMultiply
	case token.LPAREN, token.LBRACKET, token.DOT, token.INC, token.DEC:
		return bpPostfix
	default:
		return bpNone
	}
}

// Parser performs syntax analysis on a stream of tokens.
type Parser struct {
	tokens []token.Token
	pos    int
	lang   source.Language
}

// New creates a parser for the given token slice and input language.
func New(tokens []token.Token, lang source.Language) *Parser {
	return &Parser{tokens: tokens, lang: lang}
}

// ParseProgram parses the whole token stream into a Program root.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	start := p.peek().Span.Start

	for !p.atEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			prog.Body = append(prog.Body, stmt)
		}
	}

	prog.Span = source.Span{Start: start, End: p.prevEnd()}
	return prog, nil
}

// ---- navigation helpers ----

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(off int) token.Token {
	if p.pos+off >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos+off]
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.peek()
	return tok, p.errorf(tok, "expected '%s', got '%s'", kind, tok.Kind)
}

func (p *Parser) expectSemi() error {
	_, err := p.expect(token.SEMICOLON)
	return err
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

func (p *Parser) prevEnd() source.Position {
	if p.pos > 0 && p.pos-1 < len(p.tokens) {
		return p.tokens[p.pos-1].Span.End
	}
	return p.peek().Span.Start
}

func (p *Parser) spanFrom(start source.Position) source.Span {
	return source.Span{Start: start, End: p.prevEnd()}
}

func (p *Parser) errorf(tok token.Token, format string, args ...interface{}) error {
	return &diag.SyntaxError{Pos: tok.Span.Start, Msg: fmt.Sprintf(format, args...)}
}

// ---- statements ----

func (p *Parser) parseStmt() (ast.Node, error) {
	switch p.peek().Kind {
	case token.COMMENT:
		tok := p.advance()
		return &ast.Comment{NodeBase: ast.NodeBase{Span: tok.Span}, Text: tok.Lexeme}, nil
	case token.KW_IF:
		return p.parseIf()
	case token.KW_FOR:
		return p.parseFor()
	case token.KW_WHILE:
		return p.parseWhile()
	case token.KW_DO:
		return p.parseDoWhile()
	case token.KW_SWITCH:
		return p.parseSwitch()
	case token.KW_BREAK:
		tok := p.advance()
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return &ast.Break{NodeBase: ast.NodeBase{Span: tok.Span}}, nil
	case token.KW_CONTINUE:
		tok := p.advance()
		if err := p.expectSemi(); err != nil {
			return nil, err
		}
		return &ast.Continue{NodeBase: ast.NodeBase{Span: tok.Span}}, nil
	case token.KW_RETURN:
		return p.parseReturn()
	case token.LBRACE:
		return p.parseBlock()
	case token.KW_CLASS:
		return p.parseClass()
	case token.KW_FUNCTION:
		return p.parseFunction()
	case token.KW_VAR, token.KW_LET, token.KW_CONST:
		return p.parseScriptVarDecl()
	case token.SEMICOLON:
		p.advance() // empty statement
		return nil, nil
	}

	if p.peek().Kind.IsModifier() || p.check(token.KW_VOID) {
		return p.parseModifiedDecl()
	}
	if p.isMethodStart() {
		return p.parseMethod(false)
	}
	if p.isTypedDeclStart() {
		return p.parseTypedDecl(false, false)
	}
	return p.parseExprStmt()
}

// parseModifiedDecl handles declarations with public/private/static/final
// prefixes: constants, fields, methods, and classes.
func (p *Parser) parseModifiedDecl() (ast.Node, error) {
	isStatic, isFinal := false, false
	for p.peek().Kind.IsModifier() {
		switch p.advance().Kind {
		case token.KW_STATIC:
			isStatic = true
		case token.KW_FINAL:
			isFinal = true
		}
	}
	if p.check(token.KW_CLASS) {
		return p.parseClass()
	}
	if p.check(token.KW_VOID) || p.isMethodStart() {
		return p.parseMethod(isStatic)
	}
	n, err := p.parseTypedDecl(isFinal || isStatic, isStatic)
	return n, err
}

// isTypedDeclStart reports whether the next tokens look like a Java-style
// declaration: TYPE IDENT, or TYPE[] IDENT.
func (p *Parser) isTypedDeclStart() bool {
	if !p.check(token.IDENT) {
		return false
	}
	i := 1
	for p.peekAt(i).Kind == token.LBRACKET && p.peekAt(i+1).Kind == token.RBRACKET {
		i += 2
	}
	if p.peekAt(i).Kind != token.IDENT {
		return false
	}
	next := p.peekAt(i + 1).Kind
	return next == token.ASSIGN || next == token.SEMICOLON
}

// isMethodStart reports whether the next tokens look like TYPE IDENT(.
func (p *Parser) isMethodStart() bool {
	if !p.check(token.IDENT) {
		return false
	}
	i := 1
	for p.peekAt(i).Kind == token.LBRACKET && p.peekAt(i+1).Kind == token.RBRACKET {
		i += 2
	}
	return p.peekAt(i).Kind == token.IDENT && p.peekAt(i+1).Kind == token.LPAREN
}

// parseType consumes a raw type name, including [] suffixes.
func (p *Parser) parseType() (string, error) {
	var tok token.Token
	var err error
	if p.check(token.KW_VOID) {
		tok = p.advance()
	} else if tok, err = p.expect(token.IDENT); err != nil {
		return "", err
	}
	name := tok.Lexeme
	for p.check(token.LBRACKET) && p.peekAt(1).Kind == token.RBRACKET {
		p.advance()
		p.advance()
		name += "[]"
	}
	return name, nil
}

// parseTypedDecl parses: TYPE name [= init] ;
func (p *Parser) parseTypedDecl(isConst, isStatic bool) (ast.Node, error) {
	start := p.peek().Span.Start
	declType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{
		Name:     nameTok.Lexeme,
		DeclType: declType,
		Const:    isConst,
		Static:   isStatic,
	}
	if p.check(token.ASSIGN) {
		p.advance()
		decl.Init, err = p.parseInitializer()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	decl.Span = p.spanFrom(start)
	return decl, nil
}

// parseScriptVarDecl parses: (var|let|const) name [: TYPE] [= init] ;
func (p *Parser) parseScriptVarDecl() (ast.Node, error) {
	start := p.advance() // var / let / const
	isConst := start.Kind == token.KW_CONST

	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.VarDecl{Name: nameTok.Lexeme, Const: isConst}

	if p.check(token.COLON) {
		p.advance()
		decl.DeclType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	if p.check(token.ASSIGN) {
		p.advance()
		decl.Init, err = p.parseInitializer()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	decl.Span = p.spanFrom(start.Span.Start)
	return decl, nil
}

// parseInitializer parses an expression or a braced array initializer.
func (p *Parser) parseInitializer() (ast.Node, error) {
	if p.check(token.LBRACE) {
		return p.parseArrayInit(token.LBRACE, token.RBRACE)
	}
	return p.parseExpr(bpNone)
}

func (p *Parser) parseArrayInit(open, close token.Kind) (ast.Node, error) {
	start := p.peek().Span.Start
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	lit := &ast.ArrayLit{}
	if !p.check(close) {
		for {
			el, err := p.parseExpr(bpNone)
			if err != nil {
				return nil, err
			}
			lit.Elements = append(lit.Elements, el)
			if !p.check(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(close); err != nil {
		return nil, err
	}
	lit.Span = p.spanFrom(start)
	return lit, nil
}

// parseIf parses if (cond) block [else (if ... | block)]. The else branch of
// a chained if is the nested If itself.
func (p *Parser) parseIf() (ast.Node, error) {
	start := p.advance() // if
	stmt := &ast.If{}

	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	stmt.Cond = cond
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if stmt.Then, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if p.check(token.KW_ELSE) {
		p.advance()
		if p.check(token.KW_IF) {
			inner, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = inner
		} else {
			blk, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			stmt.Else = blk
		}
	}

	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Node, error) {
	start := p.advance() // while
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{NodeBase: ast.NodeBase{Span: p.spanFrom(start.Span.Start)}, Cond: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (ast.Node, error) {
	start := p.advance() // do
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KW_WHILE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	return &ast.DoWhile{NodeBase: ast.NodeBase{Span: p.spanFrom(start.Span.Start)}, Body: body, Cond: cond}, nil
}

// hasForEachMarker scans forward from the current position (just past the
// for-loop's opening parenthesis) for a top-level ':' or 'of' before the
// matching ')'. Nested parentheses are tracked so the scan never crosses
// into an inner expression's own argument list, a pending '?' claims the
// next top-level ':' for its ternary, and a top-level ';' settles the head
// as three-clause form.
func (p *Parser) hasForEachMarker() bool {
	depth := 0
	ternaries := 0
	for i := 0; ; i++ {
		switch p.peekAt(i).Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return false
			}
			depth--
		case token.QUESTION:
			if depth == 0 {
				ternaries++
			}
		case token.SEMICOLON:
			if depth == 0 {
				return false
			}
		case token.COLON:
			if depth == 0 {
				if ternaries > 0 {
					ternaries--
					continue
				}
				return true
			}
		case token.KW_OF:
			if depth == 0 {
				return true
			}
		case token.EOF:
			return false
		}
	}
}

func (p *Parser) parseFor() (ast.Node, error) {
	start := p.advance() // for
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	if p.hasForEachMarker() {
		return p.parseForEach(start)
	}

	stmt := &ast.For{}
	var err error

	if !p.check(token.SEMICOLON) {
		if p.match(token.KW_VAR, token.KW_LET, token.KW_CONST) {
			stmt.Init, err = p.parseScriptVarDecl()
		} else if p.isTypedDeclStart() {
			stmt.Init, err = p.parseTypedDecl(false, false)
		} else {
			stmt.Init, err = p.parseSimpleStmtNoSemi()
			if err == nil {
				err = p.expectSemi()
			}
		}
		if err != nil {
			return nil, err
		}
	} else {
		p.advance()
	}

	if !p.check(token.SEMICOLON) {
		stmt.Cond, err = p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}

	if !p.check(token.RPAREN) {
		stmt.Update, err = p.parseSimpleStmtNoSemi()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

// parseForEach parses the parenthesized head of an enhanced for:
// Java  ( TYPE name : iterable )
// TS    ( (const|let|var) name of iterable )
func (p *Parser) parseForEach(start token.Token) (ast.Node, error) {
	stmt := &ast.ForEach{}
	var err error

	if p.match(token.KW_VAR, token.KW_LET, token.KW_CONST) {
		p.advance()
	} else {
		stmt.VarType, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	stmt.VarName = nameTok.Lexeme

	if !p.check(token.COLON) && !p.check(token.KW_OF) {
		return nil, p.errorf(p.peek(), "expected ':' or 'of' in enhanced for, got '%s'", p.peek().Kind)
	}
	p.advance()

	if stmt.Iterable, err = p.parseExpr(bpNone); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

func (p *Parser) parseSwitch() (ast.Node, error) {
	start := p.advance() // switch
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	subject, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	stmt := &ast.Switch{Subject: subject}
	for !p.check(token.RBRACE) && !p.atEnd() {
		c := &ast.SwitchCase{}
		caseStart := p.peek()
		switch caseStart.Kind {
		case token.KW_CASE:
			p.advance()
			label, err := p.parseExpr(bpNone)
			if err != nil {
				return nil, err
			}
			c.Labels = []ast.Node{label}
		case token.KW_DEFAULT:
			p.advance()
		default:
			return nil, p.errorf(caseStart, "expected 'case' or 'default', got '%s'", caseStart.Kind)
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		for !p.match(token.KW_CASE, token.KW_DEFAULT, token.RBRACE) && !p.atEnd() {
			s, err := p.parseStmt()
			if err != nil {
				return nil, err
			}
			if s != nil {
				c.Body = append(c.Body, s)
			}
		}
		c.Span = p.spanFrom(caseStart.Span.Start)
		stmt.Cases = append(stmt.Cases, c)
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	start := p.advance() // return
	stmt := &ast.Return{}
	if !p.check(token.SEMICOLON) {
		value, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span.Start)
	return stmt, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	start, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{}
	for !p.check(token.RBRACE) && !p.atEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	block.Span = p.spanFrom(start.Span.Start)
	return block, nil
}

// ---- declarations ----

func (p *Parser) parseClass() (ast.Node, error) {
	start, err := p.expect(token.KW_CLASS)
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	decl := &ast.Class{Name: nameTok.Lexeme}

	if p.check(token.KW_EXTENDS) {
		p.advance()
		superTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		decl.Super = superTok.Lexeme
	}
	if p.check(token.KW_IMPLEMENTS) {
		p.advance()
		for {
			ifaceTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			decl.Interfaces = append(decl.Interfaces, ifaceTok.Lexeme)
			if !p.check(token.COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}

	for !p.check(token.RBRACE) && !p.atEnd() {
		member, err := p.parseClassMember()
		if err != nil {
			return nil, err
		}
		switch m := member.(type) {
		case *ast.VarDecl:
			decl.Fields = append(decl.Fields, m)
		case *ast.Method:
			decl.Methods = append(decl.Methods, m)
		case nil:
		default:
			return nil, p.errorf(p.peek(), "unexpected class member %s", member.Kind())
		}
	}
	if _, err := p.expect(token.RBRACE); err != nil {
		return nil, err
	}
	decl.Span = p.spanFrom(start.Span.Start)
	return decl, nil
}

func (p *Parser) parseClassMember() (ast.Node, error) {
	isStatic, isFinal := false, false
	for p.peek().Kind.IsModifier() {
		switch p.advance().Kind {
		case token.KW_STATIC:
			isStatic = true
		case token.KW_FINAL:
			isFinal = true
		}
	}
	if p.check(token.KW_VOID) || p.isMethodStart() {
		return p.parseMethod(isStatic)
	}
	// TS-style method inside a class: name(params)[: TYPE] { ... }
	if p.lang == source.TypeScript && p.check(token.IDENT) && p.peekAt(1).Kind == token.LPAREN {
		return p.parseScriptMethod(isStatic)
	}
	if p.check(token.SEMICOLON) {
		p.advance()
		return nil, nil
	}
	n, err := p.parseTypedDecl(isFinal || isStatic, isStatic)
	return n, err
}

// parseMethod parses: TYPE name ( params ) block   (Java style)
func (p *Parser) parseMethod(isStatic bool) (ast.Node, error) {
	start := p.peek().Span.Start
	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	m := &ast.Method{Name: nameTok.Lexeme, ReturnType: retType, Static: isStatic}

	if m.Params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if m.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	m.Span = p.spanFrom(start)
	return m, nil
}

// parseScriptMethod parses: name ( params ) [: TYPE] block   (TS style)
func (p *Parser) parseScriptMethod(isStatic bool) (ast.Node, error) {
	nameTok := p.advance()
	m := &ast.Method{Name: nameTok.Lexeme, Static: isStatic}
	var err error
	if m.Params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if p.check(token.COLON) {
		p.advance()
		if m.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if m.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	m.Span = p.spanFrom(nameTok.Span.Start)
	return m, nil
}

// parseFunction parses: function name ( params ) [: TYPE] block
func (p *Parser) parseFunction() (ast.Node, error) {
	start := p.advance() // function
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	m := &ast.Method{Name: nameTok.Lexeme}
	if m.Params, err = p.parseParams(); err != nil {
		return nil, err
	}
	if p.check(token.COLON) {
		p.advance()
		if m.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if m.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	m.Span = p.spanFrom(start.Span.Start)
	return m, nil
}

// parseParams parses a parameter list in either language's form:
// Java  ( TYPE name, TYPE name )
// TS    ( name: TYPE, name )
func (p *Parser) parseParams() ([]ast.Param, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.check(token.RPAREN) {
		var param ast.Param
		if p.lang == source.Java {
			typ, err := p.parseType()
			if err != nil {
				return nil, err
			}
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			param = ast.Param{Name: nameTok.Lexeme, Type: typ}
		} else {
			nameTok, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			param = ast.Param{Name: nameTok.Lexeme}
			if p.check(token.COLON) {
				p.advance()
				if param.Type, err = p.parseType(); err != nil {
					return nil, err
				}
			}
		}
		params = append(params, param)
		if !p.check(token.COMMA) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

// ---- expression statements ----

func (p *Parser) parseExprStmt() (ast.Node, error) {
	stmt, err := p.parseSimpleStmtNoSemi()
	if err != nil {
		return nil, err
	}
	if err := p.expectSemi(); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseSimpleStmtNoSemi parses an assignment, update or call without
// consuming a terminator. Used directly by for-clause parsing.
func (p *Parser) parseSimpleStmtNoSemi() (ast.Node, error) {
	expr, err := p.parseExpr(bpNone)
	if err != nil {
		return nil, err
	}
	switch expr.(type) {
	case *ast.Assign, *ast.Update:
		return expr, nil
	}
	return &ast.ExprStmt{NodeBase: ast.NodeBase{Span: expr.Pos()}, Expr: expr}, nil
}

// ---- expressions (precedence climbing) ----

func (p *Parser) parseExpr(minBP int) (ast.Node, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}

	for {
		kind := p.peek().Kind
		if bp := infixBP(kind); bp > minBP {
			left, err = p.parseInfix(left)
			if err != nil {
				return nil, err
			}
			continue
		}
		// Assignment binds lowest and is right-associative.
		if minBP < bpAssign && p.match(token.ASSIGN, token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.STAR_ASSIGN, token.SLASH_ASSIGN) {
			opTok := p.advance()
			value, err := p.parseExpr(bpAssign - 1)
			if err != nil {
				return nil, err
			}
			left = &ast.Assign{
				NodeBase: ast.NodeBase{Span: source.Span{Start: left.Pos().Start, End: value.Pos().End}},
				Target:   left,
				Op:       opTok.Kind,
				Value:    value,
			}
			continue
		}
		if minBP < bpTernary && p.check(token.QUESTION) {
			p.advance()
			thenExpr, err := p.parseExpr(bpNone)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			elseExpr, err := p.parseExpr(bpTernary)
			if err != nil {
				return nil, err
			}
			left = &ast.Ternary{
				NodeBase: ast.NodeBase{Span: source.Span{Start: left.Pos().Start, End: elseExpr.Pos().End}},
				Cond:     left,
				Then:     thenExpr,
				Else:     elseExpr,
			}
			continue
		}
		break
	}
	return left, nil
}

func (p *Parser) parsePrefix() (ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.INT, token.FLOAT, token.STRING, token.CHAR, token.KW_TRUE, token.KW_FALSE, token.KW_NULL:
		p.advance()
		return &ast.Literal{NodeBase: ast.NodeBase{Span: tok.Span}, LitKind: tok.Kind, Value: tok.Lexeme}, nil

	case token.IDENT:
		p.advance()
		return &ast.Ident{NodeBase: ast.NodeBase{Span: tok.Span}, Name: tok.Lexeme}, nil

	case token.KW_THIS:
		p.advance()
		return &ast.Ident{NodeBase: ast.NodeBase{Span: tok.Span}, Name: "this"}, nil

	case token.LPAREN:
		p.advance()
		expr, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case token.BANG, token.MINUS, token.PLUS:
		p.advance()
		operand, err := p.parseExpr(bpUnary)
		if err != nil {
			return nil, err
		}
		return &ast.Unary{
			NodeBase: ast.NodeBase{Span: source.Span{Start: tok.Span.Start, End: operand.Pos().End}},
			Op:       tok.Kind,
			Operand:  operand,
		}, nil

	case token.INC, token.DEC:
		p.advance()
		operand, err := p.parseExpr(bpUnary)
		if err != nil {
			return nil, err
		}
		return &ast.Update{
			NodeBase: ast.NodeBase{Span: source.Span{Start: tok.Span.Start, End: operand.Pos().End}},
			Op:       tok.Kind,
			Operand:  operand,
			Prefix:   true,
		}, nil

	case token.KW_NEW:
		return p.parseNew()

	case token.LBRACKET:
		return p.parseArrayInit(token.LBRACKET, token.RBRACKET)

	default:
		return nil, p.errorf(tok, "unexpected token '%s' in expression", tok.Kind)
	}
}

func (p *Parser) parseInfix(left ast.Node) (ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE,
		token.AND, token.OR:
		bp := infixBP(tok.Kind)
		p.advance()
		right, err := p.parseExpr(bp)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{
			NodeBase: ast.NodeBase{Span: source.Span{Start: left.Pos().Start, End: right.Pos().End}},
			Op:       tok.Kind,
			Left:     left,
			Right:    right,
		}, nil

	case token.LPAREN:
		return p.parseCall(left)

	case token.LBRACKET:
		p.advance()
		sub, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		end, err := p.expect(token.RBRACKET)
		if err != nil {
			return nil, err
		}
		return &ast.Index{
			NodeBase: ast.NodeBase{Span: source.Span{Start: left.Pos().Start, End: end.Span.End}},
			Object:   left,
			Sub:      sub,
		}, nil

	case token.DOT:
		p.advance()
		propTok, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		return &ast.Member{
			NodeBase: ast.NodeBase{Span: source.Span{Start: left.Pos().Start, End: propTok.Span.End}},
			Object:   left,
			Property: propTok.Lexeme,
		}, nil

	case token.INC, token.DEC:
		p.advance()
		return &ast.Update{
			NodeBase: ast.NodeBase{Span: source.Span{Start: left.Pos().Start, End: tok.Span.End}},
			Op:       tok.Kind,
			Operand:  left,
		}, nil

	default:
		return left, nil
	}
}

func (p *Parser) parseCall(callee ast.Node) (ast.Node, error) {
	p.advance() // (
	call := &ast.Call{Callee: callee}
	for !p.check(token.RPAREN) {
		arg, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		if !p.check(token.COMMA) {
			break
		}
		p.advance()
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	call.Span = source.Span{Start: callee.Pos().Start, End: end.Span.End}
	return call, nil
}

func (p *Parser) parseNew() (ast.Node, error) {
	start := p.advance() // new
	nameTok, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	n := &ast.New{TypeName: nameTok.Lexeme}
	if p.check(token.LPAREN) {
		p.advance()
		for !p.check(token.RPAREN) {
			arg, err := p.parseExpr(bpNone)
			if err != nil {
				return nil, err
			}
			n.Args = append(n.Args, arg)
			if !p.check(token.COMMA) {
				break
			}
			p.advance()
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
	} else if p.check(token.LBRACKET) {
		// new T[size]
		p.advance()
		size, err := p.parseExpr(bpNone)
		if err != nil {
			return nil, err
		}
		n.Args = append(n.Args, size)
		if _, err := p.expect(token.RBRACKET); err != nil {
			return nil, err
		}
		n.TypeName += "[]"
	}
	n.Span = p.spanFrom(start.Span.Start)
	return n, nil
}
