// Package convert lowers Java and TypeScript source into exam-board
// pseudocode. Convert is the single entry point: it runs the
// lexer → parser → engine → formatter pipeline and reports warnings and
// metadata alongside the generated text.
package convert

import (
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/format"
	"github.com/fairy-pitta/java2igcse-sub002/internal/lexer"
	"github.com/fairy-pitta/java2igcse-sub002/internal/parser"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

const (
	defaultIndentSize = 3
	defaultMaxDepth   = 50
)

// Options controls one conversion call. The zero value is usable: defaults
// are applied by Convert.
type Options struct {
	// IndentSize is the number of spaces per indent level (default 3).
	IndentSize int
	// IncludeComments carries source line comments through to the output.
	IncludeComments bool
	// StrictMode aborts on unsupported constructs and unknown types instead
	// of degrading to placeholder output with warnings.
	StrictMode bool
	// MaxDepth bounds AST recursion (default 50).
	MaxDepth int
	// AssumeTextNames enables the name-based heuristic that treats '+' on
	// identifiers like "name" or "message" as string concatenation.
	AssumeTextNames bool
	// IntegerDivision renders '/' as DIV.
	IntegerDivision bool
	// CustomMappings overrides or extends the source-type table.
	CustomMappings map[string]string
}

func (o Options) withDefaults() Options {
	if o.IndentSize <= 0 {
		o.IndentSize = defaultIndentSize
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	return o
}

// Metadata describes a completed conversion.
type Metadata struct {
	SourceLanguage   string   `json:"sourceLanguage"`
	ConversionTimeMs int64    `json:"conversionTimeMs"`
	LinesProcessed   int      `json:"linesProcessed"`
	FeaturesUsed     []string `json:"featuresUsed"`
}

// Result is the outcome of one Convert call. When Success is false,
// Pseudocode is empty and Warnings contains at least one error-severity
// diagnostic.
type Result struct {
	Pseudocode string            `json:"pseudocode"`
	Warnings   []diag.Diagnostic `json:"warnings"`
	Success    bool              `json:"success"`
	Metadata   Metadata          `json:"metadata"`
}

// Convert translates src from the given language into pseudocode. It never
// panics on malformed input: lexical and syntax errors, depth-limit hits and
// cycles all come back as error diagnostics with Success=false.
func Convert(src string, lang source.Language, opts Options) Result {
	opts = opts.withDefaults()
	start := time.Now()

	res := Result{
		Metadata: Metadata{
			SourceLanguage: string(lang),
			LinesProcessed: strings.Count(src, "\n") + 1,
		},
	}
	fail := func(code string, err error, pos source.Position) Result {
		msg := err.Error()
		if caret := diag.Render(src, pos); caret != "" {
			msg += "\n" + caret
		}
		res.Warnings = append(res.Warnings, diag.Diagnostic{
			Code:     code,
			Severity: diag.Error,
			Message:  msg,
			Span:     source.Span{Start: pos, End: pos},
		})
		res.Metadata.ConversionTimeMs = time.Since(start).Milliseconds()
		log.Debug().Str("code", code).Err(err).Msg("conversion failed")
		return res
	}

	lx := lexer.New(src)
	lx.KeepComments = opts.IncludeComments
	tokens, err := lx.Tokenize()
	if err != nil {
		pos := source.Position{}
		if le, ok := err.(*diag.LexicalError); ok {
			pos = le.Pos
		}
		return fail("E1001", err, pos)
	}

	program, err := parser.New(tokens, lang).ParseProgram()
	if err != nil {
		pos := source.Position{}
		if se, ok := err.(*diag.SyntaxError); ok {
			pos = se.Pos
		}
		return fail("E1002", err, pos)
	}

	eng := newEngine(lang, opts)
	lines, err := eng.convertNode(program, newContext(opts.MaxDepth))
	res.Warnings = append(res.Warnings, eng.warnings...)
	if err != nil {
		code := "E1003"
		switch err.(type) {
		case *RecursionLimitError:
			code = "E1004"
		case *CycleError:
			code = "E1005"
		}
		return fail(code, err, errorPosition(err))
	}

	res.Pseudocode = format.Render(lines, opts.IndentSize)
	res.Success = true
	res.Metadata.ConversionTimeMs = time.Since(start).Milliseconds()
	res.Metadata.FeaturesUsed = featureList(eng.features)
	return res
}

func errorPosition(err error) source.Position {
	switch e := err.(type) {
	case *UnsupportedConstructError:
		return e.Span.Start
	case *CycleError:
		return e.Span.Start
	}
	return source.Position{}
}

func featureList(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for f := range set {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}
