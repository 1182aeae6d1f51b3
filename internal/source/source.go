// Package source provides source position types and the set of input
// languages accepted by the converter.
package source

import "fmt"

// Language identifies the input language of a conversion.
type Language string

const (
	Java       Language = "java"
	TypeScript Language = "typescript"
)

// ParseLanguage maps a user-supplied name (or file extension) to a Language.
func ParseLanguage(name string) (Language, error) {
	switch name {
	case "java", ".java":
		return Java, nil
	case "typescript", "ts", ".ts":
		return TypeScript, nil
	default:
		return "", fmt.Errorf("unknown source language %q (want java or typescript)", name)
	}
}

// Position represents a position in source code.
type Position struct {
	Offset int `json:"offset"` // byte offset from beginning of source
	Line   int `json:"line"`   // 1-based line number
	Column int `json:"column"` // 1-based column number
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span represents a range in source code [Start, End).
type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (s Span) String() string {
	return fmt.Sprintf("%s..%s", s.Start, s.End)
}
