package convert

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/diag"
	"github.com/fairy-pitta/java2igcse-sub002/internal/format"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

// loopInfo describes the innermost enclosing loop during lowering.
type loopInfo struct {
	ctrlVar  string
	exitFlag string // non-empty when the loop carries an exit sentinel
}

// Context carries the per-path conversion state. It is passed by value, so
// depth and indent changes made on a descent stay local to that path; only
// the visited set is shared, and entries are removed again on the way out.
type Context struct {
	Depth    int
	MaxDepth int
	Indent   int
	loop     *loopInfo

	visited map[string]struct{}
}

func newContext(maxDepth int) Context {
	return Context{
		MaxDepth: maxDepth,
		visited:  make(map[string]struct{}),
	}
}

// body returns the context for a nested statement sequence.
func (c Context) body() Context {
	c.Indent++
	return c
}

// handler lowers one node kind into an ordered line sequence.
type handler func(ast.Node, Context) ([]format.Line, error)

// engine performs one conversion call. The handler table is rebuilt for each
// engine, so no mutable state outlives a call.
type engine struct {
	opts     Options
	lang     source.Language
	warnings []diag.Diagnostic
	features map[string]struct{}
	handlers map[ast.Kind]handler
	flagSeq  int

	// exprDepth bounds expression recursion the way Context.Depth bounds
	// statement dispatch; rendering is synchronous within one call, so a
	// counter on the engine suffices.
	exprDepth int
}

// enterExpr checks and claims one level of expression nesting. Callers must
// pair it with leaveExpr on the same path.
func (e *engine) enterExpr() error {
	if e.exprDepth >= e.opts.MaxDepth {
		return &RecursionLimitError{Limit: e.opts.MaxDepth}
	}
	e.exprDepth++
	return nil
}

func (e *engine) leaveExpr() {
	e.exprDepth--
}

func newEngine(lang source.Language, opts Options) *engine {
	e := &engine{
		opts:     opts,
		lang:     lang,
		features: make(map[string]struct{}),
	}
	e.handlers = map[ast.Kind]handler{
		ast.KindProgram:  e.convertProgram,
		ast.KindComment:  e.convertComment,
		ast.KindVarDecl:  e.convertVarDecl,
		ast.KindAssign:   e.convertAssign,
		ast.KindUpdate:   e.convertUpdateStmt,
		ast.KindExprStmt: e.convertExprStmt,
		ast.KindBlock:    e.convertBlock,
		ast.KindIf:       e.convertIf,
		ast.KindFor:      e.convertFor,
		ast.KindForEach:  e.convertForEach,
		ast.KindWhile:    e.convertWhile,
		ast.KindDoWhile:  e.convertDoWhile,
		ast.KindSwitch:   e.convertSwitch,
		ast.KindBreak:    e.convertBreak,
		ast.KindContinue: e.convertContinue,
		ast.KindReturn:   e.convertReturn,
		ast.KindClass:    e.convertClass,
		ast.KindMethod:   e.convertMethod,
	}
	return e
}

// identity is the structural identity used by the cycle guard: kind plus
// source position. It never repeats along a valid path.
func identity(n ast.Node) string {
	p := n.Pos().Start
	return fmt.Sprintf("%s@%d:%d:%d", n.Kind(), p.Offset, p.Line, p.Column)
}

// convertNode is the guarded dispatch entry. It enforces the depth limit,
// runs the backtracking cycle check (mark on entry, unmark on exit, not a
// memo, so identical sibling subtrees are each processed independently), and
// hands the node to its kind handler.
func (e *engine) convertNode(n ast.Node, ctx Context) ([]format.Line, error) {
	if ctx.Depth >= ctx.MaxDepth {
		return nil, &RecursionLimitError{Limit: ctx.MaxDepth}
	}
	ctx.Depth++

	key := identity(n)
	if _, seen := ctx.visited[key]; seen {
		return nil, &CycleError{NodeKind: n.Kind(), Span: n.Pos()}
	}
	ctx.visited[key] = struct{}{}
	defer delete(ctx.visited, key)

	h, ok := e.handlers[n.Kind()]
	if !ok {
		return nil, &UnsupportedConstructError{NodeKind: n.Kind(), Span: n.Pos()}
	}
	return h(n, ctx)
}

// convertStmts lowers a statement sequence, applying the degrade-and-continue
// policy: an unsupported statement becomes a placeholder comment plus a
// warning unless strict mode is on. Depth and cycle failures always abort.
func (e *engine) convertStmts(stmts []ast.Node, ctx Context) ([]format.Line, error) {
	var out []format.Line
	for _, s := range stmts {
		lines, err := e.convertNode(s, ctx)
		if err != nil {
			if isUnsupported(err) && !e.opts.StrictMode {
				log.Warn().Msgf("skipping unsupported construct: %v", err)
				e.warnf("W1301", s.Pos(), "unsupported construct %s skipped", s.Kind())
				out = append(out, format.Line{Indent: ctx.Indent, Text: fmt.Sprintf("// unsupported: %s", s.Kind())})
				continue
			}
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}

func (e *engine) warnf(code string, s source.Span, formatStr string, args ...interface{}) {
	e.warnings = append(e.warnings, diag.Warningf(code, s, formatStr, args...))
}

func (e *engine) feature(name string) {
	e.features[name] = struct{}{}
}

// nextExitFlag returns a fresh sentinel variable name for break rewriting.
func (e *engine) nextExitFlag() string {
	e.flagSeq++
	if e.flagSeq == 1 {
		return "exitLoop"
	}
	return fmt.Sprintf("exitLoop%d", e.flagSeq)
}

// ---- break/continue body scanning ----

// containsLoopBreak reports whether stmts contain a break that would bind to
// the enclosing loop. The scan descends into conditionals and blocks but not
// into nested loops or switches: a break inside a switch terminates its case
// group, never the loop.
func containsLoopBreak(stmts []ast.Node) bool {
	for _, s := range stmts {
		switch n := s.(type) {
		case *ast.Break:
			return true
		case *ast.Block:
			if containsLoopBreak(n.Stmts) {
				return true
			}
		case *ast.If:
			if containsLoopBreak(n.Then.Stmts) {
				return true
			}
			switch el := n.Else.(type) {
			case *ast.Block:
				if containsLoopBreak(el.Stmts) {
					return true
				}
			case *ast.If:
				if containsLoopBreak([]ast.Node{el}) {
					return true
				}
			}
		}
	}
	return false
}
