package format

import "testing"

func TestRender(t *testing.T) {
	tt := []struct {
		name  string
		lines []Line
		width int
		want  string
	}{
		{
			name: "levels times width",
			lines: []Line{
				{Indent: 0, Text: "IF x > 0 THEN"},
				{Indent: 1, Text: "OUTPUT x"},
				{Indent: 0, Text: "ENDIF"},
			},
			width: 3,
			want:  "IF x > 0 THEN\n   OUTPUT x\nENDIF",
		},
		{
			name: "custom width",
			lines: []Line{
				{Indent: 0, Text: "WHILE a DO"},
				{Indent: 1, Text: "b ← 1"},
				{Indent: 0, Text: "ENDWHILE"},
			},
			width: 2,
			want:  "WHILE a DO\n  b ← 1\nENDWHILE",
		},
		{
			name: "blank lines stay unindented",
			lines: []Line{
				{Indent: 1, Text: "a ← 1"},
				{Indent: 1, Text: ""},
				{Indent: 1, Text: "b ← 2"},
			},
			width: 3,
			want:  "   a ← 1\n\n   b ← 2",
		},
		{
			name:  "zero width falls back to default",
			lines: []Line{{Indent: 1, Text: "x"}},
			width: 0,
			want:  "   x",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			if got := Render(tc.lines, tc.width); got != tc.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestReindent(t *testing.T) {
	tt := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "flat text gains structure",
			input: "IF x > 0 THEN\nOUTPUT x\nENDIF",
			want:  "IF x > 0 THEN\n   OUTPUT x\nENDIF",
		},
		{
			name:  "else dedents then indents",
			input: "IF a THEN\nx ← 1\nELSE\nx ← 2\nENDIF",
			want:  "IF a THEN\n   x ← 1\nELSE\n   x ← 2\nENDIF",
		},
		{
			name:  "repeat until",
			input: "REPEAT\nx ← x + 1\nUNTIL x >= 3",
			want:  "REPEAT\n   x ← x + 1\nUNTIL x >= 3",
		},
		{
			name:  "nested loops",
			input: "FOR i ← 1 TO 3\nFOR j ← 1 TO 3\nOUTPUT i\nNEXT j\nNEXT i",
			want:  "FOR i ← 1 TO 3\n   FOR j ← 1 TO 3\n      OUTPUT i\n   NEXT j\nNEXT i",
		},
		{
			name:  "procedure block",
			input: "PROCEDURE greet(name : STRING)\nOUTPUT name\nENDPROCEDURE",
			want:  "PROCEDURE greet(name : STRING)\n   OUTPUT name\nENDPROCEDURE",
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			got := Reindent(tc.input, 3)
			if got != tc.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tc.want)
			}
			// Reindenting correctly indented text is a no-op.
			if again := Reindent(got, 3); again != got {
				t.Fatalf("not idempotent:\nfirst:\n%s\nsecond:\n%s", got, again)
			}
		})
	}
}

func TestIndented(t *testing.T) {
	in := []Line{{Indent: 0, Text: "a"}, {Indent: 1, Text: "b"}}
	out := Indented(in, 2)
	if out[0].Indent != 2 || out[1].Indent != 3 {
		t.Fatalf("got %+v", out)
	}
	if in[0].Indent != 0 {
		t.Fatalf("input mutated: %+v", in)
	}
}
