// Package token defines the token types produced by the lexer.
package token

import (
	"fmt"

	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

// Kind represents the type of a token.
type Kind int

const (
	// Special tokens
	ILLEGAL Kind = iota
	EOF
	COMMENT // kept only when comment passthrough is requested

	// Literals
	IDENT  // identifiers: x, foo, myVar
	INT    // integer literals: 123
	FLOAT  // real literals: 3.14
	STRING // string literals: "hello"
	CHAR   // char literals: 'a'

	// Operators
	ASSIGN  // =
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	BANG    // !

	EQ  // ==
	NEQ // !=
	LT  // <
	LTE // <=
	GT  // >
	GTE // >=

	AND // &&
	OR  // ||

	INC // ++
	DEC // --

	PLUS_ASSIGN  // +=
	MINUS_ASSIGN // -=
	STAR_ASSIGN  // *=
	SLASH_ASSIGN // /=

	// Delimiters
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }
	LBRACKET  // [
	RBRACKET  // ]
	COMMA     // ,
	DOT       // .
	SEMICOLON // ;
	COLON     // :
	QUESTION  // ?

	// Keywords (shared between Java and TypeScript where they overlap)
	KW_IF
	KW_ELSE
	KW_FOR
	KW_WHILE
	KW_DO
	KW_SWITCH
	KW_CASE
	KW_DEFAULT
	KW_BREAK
	KW_CONTINUE
	KW_RETURN
	KW_CLASS
	KW_EXTENDS
	KW_IMPLEMENTS
	KW_NEW
	KW_THIS
	KW_PUBLIC
	KW_PRIVATE
	KW_PROTECTED
	KW_STATIC
	KW_FINAL
	KW_VOID
	KW_VAR
	KW_LET
	KW_CONST
	KW_FUNCTION
	KW_OF
	KW_IN
	KW_TRUE
	KW_FALSE
	KW_NULL
)

var kindNames = map[Kind]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",
	COMMENT: "COMMENT",

	IDENT:  "IDENT",
	INT:    "INT",
	FLOAT:  "FLOAT",
	STRING: "STRING",
	CHAR:   "CHAR",

	ASSIGN:  "=",
	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	BANG:    "!",
	EQ:      "==",
	NEQ:     "!=",
	LT:      "<",
	LTE:     "<=",
	GT:      ">",
	GTE:     ">=",
	AND:     "&&",
	OR:      "||",
	INC:     "++",
	DEC:     "--",

	PLUS_ASSIGN:  "+=",
	MINUS_ASSIGN: "-=",
	STAR_ASSIGN:  "*=",
	SLASH_ASSIGN: "/=",

	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",
	LBRACKET:  "[",
	RBRACKET:  "]",
	COMMA:     ",",
	DOT:       ".",
	SEMICOLON: ";",
	COLON:     ":",
	QUESTION:  "?",

	KW_IF:         "if",
	KW_ELSE:       "else",
	KW_FOR:        "for",
	KW_WHILE:      "while",
	KW_DO:         "do",
	KW_SWITCH:     "switch",
	KW_CASE:       "case",
	KW_DEFAULT:    "default",
	KW_BREAK:      "break",
	KW_CONTINUE:   "continue",
	KW_RETURN:     "return",
	KW_CLASS:      "class",
	KW_EXTENDS:    "extends",
	KW_IMPLEMENTS: "implements",
	KW_NEW:        "new",
	KW_THIS:       "this",
	KW_PUBLIC:     "public",
	KW_PRIVATE:    "private",
	KW_PROTECTED:  "protected",
	KW_STATIC:     "static",
	KW_FINAL:      "final",
	KW_VOID:       "void",
	KW_VAR:        "var",
	KW_LET:        "let",
	KW_CONST:      "const",
	KW_FUNCTION:   "function",
	KW_OF:         "of",
	KW_IN:         "in",
	KW_TRUE:       "true",
	KW_FALSE:      "false",
	KW_NULL:       "null",
}

// String returns the human-readable name for a token kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsKeyword reports whether the kind is a keyword.
func (k Kind) IsKeyword() bool {
	return k >= KW_IF && k <= KW_NULL
}

// IsModifier reports whether the kind is a declaration modifier.
func (k Kind) IsModifier() bool {
	switch k {
	case KW_PUBLIC, KW_PRIVATE, KW_PROTECTED, KW_STATIC, KW_FINAL:
		return true
	}
	return false
}

var keywords = map[string]Kind{
	"if":         KW_IF,
	"else":       KW_ELSE,
	"for":        KW_FOR,
	"while":      KW_WHILE,
	"do":         KW_DO,
	"switch":     KW_SWITCH,
	"case":       KW_CASE,
	"default":    KW_DEFAULT,
	"break":      KW_BREAK,
	"continue":   KW_CONTINUE,
	"return":     KW_RETURN,
	"class":      KW_CLASS,
	"extends":    KW_EXTENDS,
	"implements": KW_IMPLEMENTS,
	"new":        KW_NEW,
	"this":       KW_THIS,
	"public":     KW_PUBLIC,
	"private":    KW_PRIVATE,
	"protected":  KW_PROTECTED,
	"static":     KW_STATIC,
	"final":      KW_FINAL,
	"void":       KW_VOID,
	"var":        KW_VAR,
	"let":        KW_LET,
	"const":      KW_CONST,
	"function":   KW_FUNCTION,
	"of":         KW_OF,
	"in":         KW_IN,
	"true":       KW_TRUE,
	"false":      KW_FALSE,
	"null":       KW_NULL,
}

// LookupIdent returns the keyword Kind for ident, or IDENT if it is not a keyword.
func LookupIdent(ident string) Kind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return IDENT
}

// Token represents a lexical token with its kind, text, and source location.
type Token struct {
	Kind   Kind        `json:"kind"`
	Lexeme string      `json:"lexeme"`
	Span   source.Span `json:"span"`
}

// String returns a human-readable representation of the token.
func (t Token) String() string {
	return fmt.Sprintf("%s %q %s", t.Kind, t.Lexeme, t.Span.Start)
}
