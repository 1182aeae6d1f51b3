package parser

import (
	"testing"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/lexer"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

func parse(t *testing.T, src string, lang source.Language) *ast.Program {
	t.Helper()
	tokens, err := lexer.New(src).Tokenize()
	if err != nil {
		t.Fatalf("Tokenize failed: %v", err)
	}
	prog, err := New(tokens, lang).ParseProgram()
	if err != nil {
		t.Fatalf("ParseProgram(%q) failed: %v", src, err)
	}
	return prog
}

func TestParseStatementKinds(t *testing.T) {
	tt := []struct {
		name  string
		lang  source.Language
		input string
		want  ast.Kind
	}{
		{name: "typed declaration", lang: source.Java, input: "int x = 5;", want: ast.KindVarDecl},
		{name: "array declaration", lang: source.Java, input: "int[] xs = new int[5];", want: ast.KindVarDecl},
		{name: "script declaration", lang: source.TypeScript, input: "let x: number = 5;", want: ast.KindVarDecl},
		{name: "if", lang: source.Java, input: "if (x > 0) { x = 1; }", want: ast.KindIf},
		{name: "three clause for", lang: source.Java, input: "for (int i = 0; i < 3; i++) { x = i; }", want: ast.KindFor},
		{name: "java for each", lang: source.Java, input: "for (String s : names) { x = s; }", want: ast.KindForEach},
		{name: "script for of", lang: source.TypeScript, input: "for (const s of names) { x = s; }", want: ast.KindForEach},
		{name: "while", lang: source.Java, input: "while (x < 3) { x++; }", want: ast.KindWhile},
		{name: "do while", lang: source.Java, input: "do { x++; } while (x < 3);", want: ast.KindDoWhile},
		{name: "switch", lang: source.Java, input: "switch (x) { case 1: break; }", want: ast.KindSwitch},
		{name: "return", lang: source.Java, input: "return x;", want: ast.KindReturn},
		{name: "class", lang: source.Java, input: "class Point { int x; }", want: ast.KindClass},
		{name: "java method", lang: source.Java, input: "int add(int a, int b) { return a + b; }", want: ast.KindMethod},
		{name: "script function", lang: source.TypeScript, input: "function f(a: number): number { return a; }", want: ast.KindMethod},
		{name: "call statement", lang: source.Java, input: "run();", want: ast.KindExprStmt},
		{name: "assignment statement", lang: source.Java, input: "x = 1;", want: ast.KindAssign},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			prog := parse(t, tc.input, tc.lang)
			if len(prog.Body) != 1 {
				t.Fatalf("got %d statements, want 1", len(prog.Body))
			}
			if got := prog.Body[0].Kind(); got != tc.want {
				t.Fatalf("kind: got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestParseElseIfChain(t *testing.T) {
	src := `
if (a > 0) { x = 1; }
else if (a < 0) { x = 2; }
else { x = 3; }
`
	prog := parse(t, src, source.Java)
	outer, ok := prog.Body[0].(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", prog.Body[0])
	}
	// The chained branch is itself an If; that shape signals flattening.
	inner, ok := outer.Else.(*ast.If)
	if !ok {
		t.Fatalf("else branch: got %T, want *ast.If", outer.Else)
	}
	if _, ok := inner.Else.(*ast.Block); !ok {
		t.Fatalf("final else: got %T, want *ast.Block", inner.Else)
	}
}

func TestForEachLookaheadIgnoresNestedParens(t *testing.T) {
	// The ':' of the ternary sits inside nested parentheses, so this must
	// parse as a three-clause for, not a for-each.
	src := "for (int i = 0; i < f((a > 0 ? b : c)); i++) { x = i; }"
	prog := parse(t, src, source.Java)
	if got := prog.Body[0].Kind(); got != ast.KindFor {
		t.Fatalf("kind: got %s, want %s", got, ast.KindFor)
	}
}

func TestForEachLookaheadIgnoresTernaryColon(t *testing.T) {
	// A top-level '?' claims the next ':' for its ternary, so this is still
	// a three-clause for.
	src := "for (i = a > 0 ? 0 : 1; i < n; i++) { x = i; }"
	prog := parse(t, src, source.Java)
	if got := prog.Body[0].Kind(); got != ast.KindFor {
		t.Fatalf("kind: got %s, want %s", got, ast.KindFor)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		wantOp string
	}{
		// The top of the tree must be the loosest-binding operator.
		{name: "or over and", input: "x = a && b || c;", wantOp: "||"},
		{name: "comparison over additive", input: "x = a + b < c;", wantOp: "<"},
		{name: "additive over multiplicative", input: "x = a + b * c;", wantOp: "+"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			prog := parse(t, tc.input, source.Java)
			assign, ok := prog.Body[0].(*ast.Assign)
			if !ok {
				t.Fatalf("got %T, want *ast.Assign", prog.Body[0])
			}
			bin, ok := assign.Value.(*ast.Binary)
			if !ok {
				t.Fatalf("value: got %T, want *ast.Binary", assign.Value)
			}
			if got := bin.Op.String(); got != tc.wantOp {
				t.Fatalf("root operator: got %s, want %s", got, tc.wantOp)
			}
		})
	}
}

func TestParseSwitchGroups(t *testing.T) {
	src := `
switch (g) {
case 1:
case 2:
	y = 1;
	break;
default:
	y = 2;
}
`
	prog := parse(t, src, source.Java)
	sw, ok := prog.Body[0].(*ast.Switch)
	if !ok {
		t.Fatalf("got %T, want *ast.Switch", prog.Body[0])
	}
	if len(sw.Cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(sw.Cases))
	}
	if len(sw.Cases[0].Body) != 0 {
		t.Fatalf("first case body: got %d statements, want 0 (fallthrough)", len(sw.Cases[0].Body))
	}
	if sw.Cases[2].Labels != nil {
		t.Fatalf("default case has labels: %v", sw.Cases[2].Labels)
	}
}

func TestParseErrors(t *testing.T) {
	tt := []struct {
		name  string
		input string
	}{
		{name: "missing semicolon", input: "int x = 5"},
		{name: "missing closing paren", input: "if (x > 0 { x = 1; }"},
		{name: "missing while after do", input: "do { x++; }"},
		{name: "stray token", input: "int x = ;"},
		{name: "bad switch member", input: "switch (x) { y = 1; }"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			tokens, err := lexer.New(tc.input).Tokenize()
			if err != nil {
				t.Fatalf("Tokenize failed: %v", err)
			}
			prog, err := New(tokens, source.Java).ParseProgram()
			if err == nil {
				t.Fatalf("ParseProgram(%q) succeeded, want syntax error", tc.input)
			}
			se, ok := err.(*diag.SyntaxError)
			if !ok {
				t.Fatalf("got %T, want *diag.SyntaxError", err)
			}
			if se.Pos.Line < 1 {
				t.Fatalf("error position not set: %+v", se.Pos)
			}
			// No partial tree may leak alongside an error.
			if prog != nil {
				t.Fatalf("got partial AST %v alongside error", prog)
			}
		})
	}
}
