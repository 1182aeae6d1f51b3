package lexer

import (
	"testing"

	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	tokens, err := New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", src, err)
	}
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func TestTokenizeKinds(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "declaration",
			input: "int x = 5;",
			want:  []token.Kind{token.IDENT, token.IDENT, token.ASSIGN, token.INT, token.SEMICOLON, token.EOF},
		},
		{
			name:  "two char operators before one char",
			input: "a == b != c <= d >= e && f || g",
			want: []token.Kind{
				token.IDENT, token.EQ, token.IDENT, token.NEQ, token.IDENT,
				token.LTE, token.IDENT, token.GTE, token.IDENT,
				token.AND, token.IDENT, token.OR, token.IDENT, token.EOF,
			},
		},
		{
			name:  "increment and compound assign",
			input: "i++; i += 2;",
			want: []token.Kind{
				token.IDENT, token.INC, token.SEMICOLON,
				token.IDENT, token.PLUS_ASSIGN, token.INT, token.SEMICOLON, token.EOF,
			},
		},
		{
			name:  "real literal keeps single decimal point",
			input: "3.14",
			want:  []token.Kind{token.FLOAT, token.EOF},
		},
		{
			name:  "dot after number without digit is member access",
			input: "1.length",
			want:  []token.Kind{token.INT, token.DOT, token.IDENT, token.EOF},
		},
		{
			name:  "keywords",
			input: "if else while for return",
			want:  []token.Kind{token.KW_IF, token.KW_ELSE, token.KW_WHILE, token.KW_FOR, token.KW_RETURN, token.EOF},
		},
		{
			name:  "line comment skipped by default",
			input: "x // trailing\ny",
			want:  []token.Kind{token.IDENT, token.IDENT, token.EOF},
		},
		{
			name:  "block comment skipped",
			input: "x /* a\nb */ y",
			want:  []token.Kind{token.IDENT, token.IDENT, token.EOF},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := kinds(t, tc.input)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("token %d: got %s, want %s (all: %v)", i, got[i], tc.want[i], got)
				}
			}
		})
	}
}

func TestTokenizeStrings(t *testing.T) {
	tt := []struct {
		name      string
		input     string
		wantKind  token.Kind
		wantValue string
	}{
		{name: "double quoted", input: `"hello"`, wantKind: token.STRING, wantValue: "hello"},
		{name: "escaped quote", input: `"say \"hi\""`, wantKind: token.STRING, wantValue: `say "hi"`},
		{name: "escaped newline", input: `"a\nb"`, wantKind: token.STRING, wantValue: "a\nb"},
		{name: "single char", input: `'x'`, wantKind: token.CHAR, wantValue: "x"},
		{name: "single quoted text is a string", input: `'hello'`, wantKind: token.STRING, wantValue: "hello"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := New(tc.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			if tokens[0].Kind != tc.wantKind {
				t.Fatalf("kind: got %s, want %s", tokens[0].Kind, tc.wantKind)
			}
			if tokens[0].Lexeme != tc.wantValue {
				t.Fatalf("lexeme: got %q, want %q", tokens[0].Lexeme, tc.wantValue)
			}
		})
	}
}

func TestTokenizeErrors(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "unrecognized character", input: "x = 5 @"},
		{name: "lone ampersand", input: "a & b"},
		{name: "lone pipe", input: "a | b"},
		{name: "unterminated string", input: `"never ends`},
		{name: "newline inside string", input: "\"broken\nstring\""},
		{name: "escape at end of input", input: `int s = "ab\`},
		{name: "char escape at end of input", input: `'\`},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.input).Tokenize()
			if err == nil {
				t.Fatalf("Tokenize(%q) succeeded, want lexical error", tc.input)
			}
			le, ok := err.(*diag.LexicalError)
			if !ok {
				t.Fatalf("got %T, want *diag.LexicalError", err)
			}
			if le.Pos.Line < 1 || le.Pos.Column < 1 {
				t.Fatalf("error position not set: %+v", le.Pos)
			}
		})
	}
}

func TestTokenizeKeepComments(t *testing.T) {
	lx := New("x // note here\n")
	lx.KeepComments = true
	tokens, err := lx.Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if tokens[1].Kind != token.COMMENT {
		t.Fatalf("got %s, want COMMENT", tokens[1].Kind)
	}
	if tokens[1].Lexeme != "note here" {
		t.Fatalf("comment text: got %q, want %q", tokens[1].Lexeme, "note here")
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens, err := New("a\n  b").Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	if got := tokens[0].Span.Start; got.Line != 1 || got.Column != 1 {
		t.Fatalf("first token at %d:%d, want 1:1", got.Line, got.Column)
	}
	if got := tokens[1].Span.Start; got.Line != 2 || got.Column != 3 {
		t.Fatalf("second token at %d:%d, want 2:3", got.Line, got.Column)
	}
}
