// Package format renders the engine's ordered line sequence into the final
// indented pseudocode string. Indentation has exactly one authority: the
// structural level stored on each Line by the engine. The keyword table here
// only serves Reindent, which normalizes pseudocode text that did not come
// from the engine.
package format

import "strings"

// DefaultIndent is the indent width in spaces used when none is configured.
const DefaultIndent = 3

// Line is one output line with its structural indent level.
type Line struct {
	Indent int
	Text   string
}

// Indented returns a copy of lines shifted right by delta levels.
func Indented(lines []Line, delta int) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Indent: l.Indent + delta, Text: l.Text}
	}
	return out
}

// Render joins lines into the final string, indenting each by its stored
// level times width spaces. Blank lines stay unindented.
func Render(lines []Line, width int) string {
	if width <= 0 {
		width = DefaultIndent
	}
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if l.Text == "" {
			continue
		}
		for j := 0; j < l.Indent*width; j++ {
			b.WriteByte(' ')
		}
		b.WriteString(l.Text)
	}
	return b.String()
}

// Keyword classification for Reindent. The table is closed: only these
// keywords move the indent level.
var openers = []string{"IF ", "WHILE ", "FOR ", "CASE OF", "REPEAT", "PROCEDURE ", "FUNCTION "}

var closers = []string{"ENDIF", "ENDWHILE", "NEXT", "ENDCASE", "UNTIL", "ENDPROCEDURE", "ENDFUNCTION"}

func opensBlock(text string) bool {
	for _, kw := range openers {
		if strings.HasPrefix(text, kw) {
			return true
		}
	}
	return false
}

func closesBlock(text string) bool {
	for _, kw := range closers {
		if text == kw || strings.HasPrefix(text, kw+" ") {
			return true
		}
	}
	return false
}

func isElseLike(text string) bool {
	return text == "ELSE" || strings.HasPrefix(text, "ELSE IF ") || strings.HasPrefix(text, "OTHERWISE")
}

// Reindent recomputes indentation for raw pseudocode text from the keyword
// table and re-renders it with the given width. Applying Reindent to its own
// output is a no-op.
func Reindent(text string, width int) string {
	lines := ParseLines(text)
	return Render(lines, width)
}

// ParseLines classifies raw pseudocode text into structural lines, deriving
// each line's level from the keyword table rather than its current leading
// whitespace.
func ParseLines(text string) []Line {
	var out []Line
	level := 0
	for _, raw := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			out = append(out, Line{Indent: 0, Text: ""})
			continue
		}
		switch {
		case closesBlock(trimmed):
			if level > 0 {
				level--
			}
			out = append(out, Line{Indent: level, Text: trimmed})
		case isElseLike(trimmed):
			l := level - 1
			if l < 0 {
				l = 0
			}
			out = append(out, Line{Indent: l, Text: trimmed})
		default:
			out = append(out, Line{Indent: level, Text: trimmed})
			if opensBlock(trimmed) {
				level++
			}
		}
	}
	return out
}
