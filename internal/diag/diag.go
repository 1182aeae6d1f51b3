// Package diag provides the diagnostic and error types shared by the
// converter pipeline.
package diag

import (
	"fmt"
	"strings"

	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

// Severity indicates the severity of a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Diagnostic represents a warning or non-fatal notice attached to a
// conversion result.
type Diagnostic struct {
	Code     string      `json:"code"`     // stable code, e.g. "W1201"
	Severity Severity    `json:"severity"` // error or warning
	Message  string      `json:"message"`  // human-readable description
	Span     source.Span `json:"span"`     // source location, zero if unknown
}

func (d Diagnostic) String() string {
	loc := ""
	if d.Span.Start.Line > 0 {
		loc = fmt.Sprintf(" at %d:%d", d.Span.Start.Line, d.Span.Start.Column)
	}
	return fmt.Sprintf("[%s] %s%s: %s", d.Code, d.Severity, loc, d.Message)
}

// Warningf creates a warning diagnostic at the given span.
func Warningf(code string, s source.Span, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: Warning,
		Message:  fmt.Sprintf(format, args...),
		Span:     s,
	}
}

// LexicalError reports an unrecognized character in the input. It is fatal
// for the whole conversion.
type LexicalError struct {
	Pos  source.Position
	Char rune
}

func (e *LexicalError) Error() string {
	return fmt.Sprintf("lexical error at %s: unexpected character %q", e.Pos, e.Char)
}

// SyntaxError reports an unexpected or missing token. It is fatal for the
// whole conversion; no partial AST is returned alongside it.
type SyntaxError struct {
	Pos source.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Pos, e.Msg)
}

// Render returns a caret-pointer rendering of the offending source line, or
// the empty string when the position does not fall inside src.
func Render(src string, pos source.Position) string {
	if pos.Line <= 0 {
		return ""
	}
	lines := strings.Split(src, "\n")
	if pos.Line > len(lines) {
		return ""
	}
	line := lines[pos.Line-1]
	col := pos.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}
	// Tabs keep their width in the caret line so the pointer stays aligned.
	var pad strings.Builder
	for _, ch := range line[:col-1] {
		if ch == '\t' {
			pad.WriteByte('\t')
		} else {
			pad.WriteByte(' ')
		}
	}
	return fmt.Sprintf("%s\n%s^", line, pad.String())
}
