// Package lexer implements lexical analysis for the Java and TypeScript
// subsets accepted by the converter. Both languages share one token set, so
// a single scanner serves both.
package lexer

import (
	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

// Lexer tokenizes source code into a sequence of tokens.
type Lexer struct {
	source string

	pos  int // current read position in source
	line int // current line (1-based)
	col  int // current column (1-based)

	// KeepComments makes line comments appear as COMMENT tokens instead of
	// being skipped. Block comments are always skipped.
	KeepComments bool
}

// New creates a new Lexer for the given source text.
func New(src string) *Lexer {
	return &Lexer{
		source: src,
		pos:    0,
		line:   1,
		col:    1,
	}
}

// Tokenize scans the entire source and returns all tokens ending with EOF.
// The first unrecognized character aborts the scan with a *diag.LexicalError.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, nil
}

// ---- internal helpers ----

func (l *Lexer) peek() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

func (l *Lexer) advance() byte {
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) curPos() source.Position {
	return source.Position{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) makeSpan(start source.Position) source.Span {
	return source.Span{Start: start, End: l.curPos()}
}

func (l *Lexer) make(kind token.Kind, lexeme string, start source.Position) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Span: l.makeSpan(start)}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.source) {
		switch l.source[l.pos] {
		case ' ', '\t', '\r', '\n':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) skipBlockComment() {
	l.advance() // /
	l.advance() // *
	for l.pos < len(l.source) {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

// ---- token reading ----

func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespace()

	if l.pos >= len(l.source) {
		return token.Token{Kind: token.EOF, Span: l.makeSpan(l.curPos())}, nil
	}

	start := l.curPos()
	ch := l.peek()

	if ch == '/' && l.peekNext() == '/' {
		text := l.readLineComment()
		if l.KeepComments {
			return l.make(token.COMMENT, text, start), nil
		}
		return l.next()
	}
	if ch == '/' && l.peekNext() == '*' {
		l.skipBlockComment()
		return l.next()
	}

	if ch == '"' {
		return l.readString(start, '"')
	}
	if ch == '\'' {
		return l.readString(start, '\'')
	}
	if isDigit(ch) {
		return l.readNumber(start), nil
	}
	if isIdentStart(ch) {
		return l.readIdentifier(start), nil
	}
	return l.readOperator(start)
}

// readLineComment consumes "//" and returns the trimmed comment text.
func (l *Lexer) readLineComment() string {
	l.advance()
	l.advance()
	textStart := l.pos
	for l.pos < len(l.source) && l.source[l.pos] != '\n' {
		l.advance()
	}
	text := l.source[textStart:l.pos]
	for len(text) > 0 && (text[0] == ' ' || text[0] == '\t') {
		text = text[1:]
	}
	return text
}

// readString reads a quoted string or char literal, honoring escaped
// delimiters. The lexeme keeps escapes decoded.
func (l *Lexer) readString(start source.Position, quote byte) (token.Token, error) {
	l.advance() // opening quote
	var value []byte

	for l.pos < len(l.source) {
		ch := l.peek()
		if ch == quote {
			l.advance()
			kind := token.STRING
			if quote == '\'' && len(value) <= 1 {
				kind = token.CHAR
			}
			return l.make(kind, string(value), start), nil
		}
		if ch == '\n' {
			return token.Token{}, &diag.LexicalError{Pos: start, Char: rune(quote)}
		}
		if ch == '\\' {
			l.advance()
			if l.pos >= len(l.source) {
				// escape at end of input, the literal is unterminated
				return token.Token{}, &diag.LexicalError{Pos: start, Char: rune(quote)}
			}
			esc := l.peek()
			switch esc {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case '\\':
				value = append(value, '\\')
			case '\'', '"':
				value = append(value, esc)
			case '0':
				value = append(value, 0)
			default:
				value = append(value, '\\', esc)
			}
			l.advance()
			continue
		}
		value = append(value, ch)
		l.advance()
	}
	return token.Token{}, &diag.LexicalError{Pos: start, Char: rune(quote)}
}

// readNumber reads an integer or single-decimal-point real literal. The dot
// joins the number only when a digit follows it, so "1.length" lexes as
// INT DOT IDENT.
func (l *Lexer) readNumber(start source.Position) token.Token {
	isFloat := false
	numStart := l.pos

	for l.pos < len(l.source) && isDigit(l.peek()) {
		l.advance()
	}
	if l.pos < len(l.source) && l.peek() == '.' && isDigit(l.peekNext()) {
		isFloat = true
		l.advance()
		for l.pos < len(l.source) && isDigit(l.peek()) {
			l.advance()
		}
	}

	kind := token.INT
	if isFloat {
		kind = token.FLOAT
	}
	return l.make(kind, l.source[numStart:l.pos], start)
}

// readIdentifier reads an identifier or keyword.
func (l *Lexer) readIdentifier(start source.Position) token.Token {
	identStart := l.pos
	for l.pos < len(l.source) && isIdentPart(l.peek()) {
		l.advance()
	}
	lexeme := l.source[identStart:l.pos]
	return l.make(token.LookupIdent(lexeme), lexeme, start)
}

// readOperator reads an operator or punctuator. Two-character operators must
// be matched before their one-character prefixes.
func (l *Lexer) readOperator(start source.Position) (token.Token, error) {
	ch := l.advance()

	two := func(kind token.Kind, lexeme string) (token.Token, error) {
		l.advance()
		return l.make(kind, lexeme, start), nil
	}

	switch ch {
	case '(':
		return l.make(token.LPAREN, "(", start), nil
	case ')':
		return l.make(token.RPAREN, ")", start), nil
	case '{':
		return l.make(token.LBRACE, "{", start), nil
	case '}':
		return l.make(token.RBRACE, "}", start), nil
	case '[':
		return l.make(token.LBRACKET, "[", start), nil
	case ']':
		return l.make(token.RBRACKET, "]", start), nil
	case ',':
		return l.make(token.COMMA, ",", start), nil
	case '.':
		return l.make(token.DOT, ".", start), nil
	case ';':
		return l.make(token.SEMICOLON, ";", start), nil
	case ':':
		return l.make(token.COLON, ":", start), nil
	case '?':
		return l.make(token.QUESTION, "?", start), nil
	case '+':
		if l.peek() == '+' {
			return two(token.INC, "++")
		}
		if l.peek() == '=' {
			return two(token.PLUS_ASSIGN, "+=")
		}
		return l.make(token.PLUS, "+", start), nil
	case '-':
		if l.peek() == '-' {
			return two(token.DEC, "--")
		}
		if l.peek() == '=' {
			return two(token.MINUS_ASSIGN, "-=")
		}
		return l.make(token.MINUS, "-", start), nil
	case '*':
		if l.peek() == '=' {
			return two(token.STAR_ASSIGN, "*=")
		}
		return l.make(token.STAR, "*", start), nil
	case '/':
		if l.peek() == '=' {
			return two(token.SLASH_ASSIGN, "/=")
		}
		return l.make(token.SLASH, "/", start), nil
	case '%':
		return l.make(token.PERCENT, "%", start), nil
	case '!':
		if l.peek() == '=' {
			return two(token.NEQ, "!=")
		}
		return l.make(token.BANG, "!", start), nil
	case '=':
		if l.peek() == '=' {
			return two(token.EQ, "==")
		}
		return l.make(token.ASSIGN, "=", start), nil
	case '<':
		if l.peek() == '=' {
			return two(token.LTE, "<=")
		}
		return l.make(token.LT, "<", start), nil
	case '>':
		if l.peek() == '=' {
			return two(token.GTE, ">=")
		}
		return l.make(token.GT, ">", start), nil
	case '&':
		if l.peek() == '&' {
			return two(token.AND, "&&")
		}
		return token.Token{}, &diag.LexicalError{Pos: start, Char: rune(ch)}
	case '|':
		if l.peek() == '|' {
			return two(token.OR, "||")
		}
		return token.Token{}, &diag.LexicalError{Pos: start, Char: rune(ch)}
	default:
		return token.Token{}, &diag.LexicalError{Pos: start, Char: rune(ch)}
	}
}

// ---- character classification ----

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
