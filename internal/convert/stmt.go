package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/format"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

func line(ctx Context, text string) format.Line {
	return format.Line{Indent: ctx.Indent, Text: text}
}

func (e *engine) convertProgram(n ast.Node, ctx Context) ([]format.Line, error) {
	return e.convertStmts(n.(*ast.Program).Body, ctx)
}

func (e *engine) convertComment(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Comment)
	return []format.Line{line(ctx, "// "+strings.TrimSpace(x.Text))}, nil
}

func (e *engine) convertBlock(n ast.Node, ctx Context) ([]format.Line, error) {
	return e.convertStmts(n.(*ast.Block).Stmts, ctx)
}

// resolveType maps a declaration's raw type, falling back to initializer
// inference and finally to STRING with a warning. Strict mode turns the
// fallback into an error.
func (e *engine) resolveType(x *ast.VarDecl) (string, error) {
	if x.DeclType != "" {
		mapped, known := e.mapType(x.DeclType)
		if known {
			// "number" narrows to INTEGER for integer literal initializers.
			if mapped == typeReal && x.DeclType == "number" {
				if _, isInt := intLiteral(x.Init); isInt {
					return typeInteger, nil
				}
			}
			return mapped, nil
		}
		if e.opts.StrictMode {
			p := x.Pos().Start
			return "", errors.Errorf("unknown type %q at %d:%d", x.DeclType, p.Line, p.Column)
		}
		e.warnf("W1201", x.Pos(), "unknown type %q for %s, assuming %s", x.DeclType, x.Name, mapped)
		return mapped, nil
	}
	if x.Init != nil {
		if t, ok := inferType(x.Init); ok {
			return t, nil
		}
	}
	e.warnf("W1201", x.Pos(), "no type known for %s, assuming %s", x.Name, typeString)
	return typeString, nil
}

func (e *engine) convertVarDecl(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.VarDecl)

	if x.Const && x.Init != nil {
		value, err := e.renderExpr(x.Init)
		if err != nil {
			return nil, err
		}
		e.feature("constant")
		return []format.Line{line(ctx, fmt.Sprintf("CONSTANT %s = %s", x.Name, value))}, nil
	}
	if x.Const {
		e.warnf("W1202", x.Pos(), "constant %s has no initializer, declared as a variable", x.Name)
	}

	// Array creation and array literals get the bounded ARRAY form.
	if nw, ok := x.Init.(*ast.New); ok && strings.HasSuffix(nw.TypeName, "[]") && len(nw.Args) == 1 {
		return e.declareArray(ctx, x, nw.Args[0], nil)
	}
	if lit, ok := x.Init.(*ast.ArrayLit); ok {
		return e.declareArray(ctx, x, nil, lit)
	}

	declType, err := e.resolveType(x)
	if err != nil {
		return nil, err
	}
	lines := []format.Line{line(ctx, fmt.Sprintf("DECLARE %s : %s", x.Name, declType))}
	e.feature("declaration")

	switch {
	case x.Init == nil:
	case isInputCall(x.Init):
		e.feature("input")
		lines = append(lines, line(ctx, "INPUT "+x.Name))
	default:
		value, err := e.renderExpr(x.Init)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line(ctx, fmt.Sprintf("%s ← %s", x.Name, value)))
	}
	return lines, nil
}

// declareArray emits DECLARE name : ARRAY[1:n] OF T, plus element-wise
// assignments when the initializer is a literal. Exactly one of size and lit
// is set.
func (e *engine) declareArray(ctx Context, x *ast.VarDecl, size ast.Node, lit *ast.ArrayLit) ([]format.Line, error) {
	elemType, known := e.mapType(strings.TrimSuffix(x.DeclType, "[]"))
	if x.DeclType == "" && lit != nil && len(lit.Elements) > 0 {
		if t, ok := inferType(lit.Elements[0]); ok {
			elemType, known = t, true
		}
	}
	if !known {
		e.warnf("W1201", x.Pos(), "unknown element type for array %s, assuming %s", x.Name, elemType)
	}
	elemType = strings.TrimPrefix(elemType, "ARRAY OF ")

	bound := ""
	if size != nil {
		if v, ok := intLiteral(size); ok {
			bound = strconv.Itoa(v)
		} else {
			s, err := e.renderExpr(size)
			if err != nil {
				return nil, err
			}
			bound = s
		}
	} else {
		bound = strconv.Itoa(len(lit.Elements))
	}

	e.feature("array")
	lines := []format.Line{line(ctx, fmt.Sprintf("DECLARE %s : ARRAY[1:%s] OF %s", x.Name, bound, elemType))}
	if lit != nil {
		for i, el := range lit.Elements {
			v, err := e.renderExpr(el)
			if err != nil {
				return nil, err
			}
			lines = append(lines, line(ctx, fmt.Sprintf("%s[%d] ← %s", x.Name, i+1, v)))
		}
	}
	return lines, nil
}

// compoundBase maps compound assignment operators to their binary operator.
var compoundBase = map[token.Kind]token.Kind{
	token.PLUS_ASSIGN:  token.PLUS,
	token.MINUS_ASSIGN: token.MINUS,
	token.STAR_ASSIGN:  token.STAR,
	token.SLASH_ASSIGN: token.SLASH,
}

// renderAssignValue renders the right side of an assignment, desugaring
// compound operators (x += v becomes x ← x + v).
func (e *engine) renderAssignValue(x *ast.Assign) (string, error) {
	if x.Op == token.ASSIGN {
		return e.renderExpr(x.Value)
	}
	base, ok := compoundBase[x.Op]
	if !ok {
		return "", &UnsupportedConstructError{NodeKind: x.Kind(), Span: x.Pos()}
	}
	synth := &ast.Binary{NodeBase: ast.NodeBase{Span: x.Pos()}, Op: base, Left: x.Target, Right: x.Value}
	return e.renderBinary(synth)
}

func (e *engine) convertAssign(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Assign)
	target, err := e.renderExpr(x.Target)
	if err != nil {
		return nil, err
	}
	if x.Op == token.ASSIGN && isInputCall(x.Value) {
		e.feature("input")
		return []format.Line{line(ctx, "INPUT "+target)}, nil
	}
	value, err := e.renderAssignValue(x)
	if err != nil {
		return nil, err
	}
	e.feature("assignment")
	return []format.Line{line(ctx, fmt.Sprintf("%s ← %s", target, value))}, nil
}

func (e *engine) convertUpdateStmt(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Update)
	operand, err := e.renderExpr(x.Operand)
	if err != nil {
		return nil, err
	}
	op := "+"
	if x.Op == token.DEC {
		op = "-"
	}
	e.feature("assignment")
	return []format.Line{line(ctx, fmt.Sprintf("%s ← %s %s 1", operand, operand, op))}, nil
}

func (e *engine) convertExprStmt(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.ExprStmt)
	switch expr := x.Expr.(type) {
	case *ast.Assign:
		return e.convertAssign(expr, ctx)
	case *ast.Update:
		return e.convertUpdateStmt(expr, ctx)
	case *ast.Call:
		if isOutputPath(calleePath(expr.Callee)) {
			return e.convertOutput(expr, ctx)
		}
		if isInputCall(expr) {
			e.warnf("W1102", expr.Pos(), "input value read but never stored")
			return []format.Line{line(ctx, "// input discarded")}, nil
		}
		rendered, err := e.renderCall(expr)
		if err != nil {
			return nil, err
		}
		e.feature("call")
		return []format.Line{line(ctx, "CALL "+rendered)}, nil
	}
	rendered, err := e.renderExpr(x.Expr)
	if err != nil {
		return nil, err
	}
	e.warnf("W1106", x.Pos(), "expression %s has no statement form", rendered)
	return []format.Line{line(ctx, "// "+rendered)}, nil
}

func (e *engine) convertOutput(call *ast.Call, ctx Context) ([]format.Line, error) {
	e.feature("output")
	if len(call.Args) == 0 {
		return []format.Line{line(ctx, `OUTPUT ""`)}, nil
	}
	args, err := e.renderArgs(call.Args)
	if err != nil {
		return nil, err
	}
	return []format.Line{line(ctx, "OUTPUT "+args)}, nil
}

func (e *engine) convertIf(n ast.Node, ctx Context) ([]format.Line, error) {
	e.feature("selection")
	var lines []format.Line
	cur := n.(*ast.If)
	keyword := "IF"
	for {
		cond, err := e.renderExpr(cur.Cond)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line(ctx, fmt.Sprintf("%s %s THEN", keyword, cond)))
		body, err := e.convertStmts(cur.Then.Stmts, ctx.body())
		if err != nil {
			return nil, err
		}
		lines = append(lines, body...)

		switch el := cur.Else.(type) {
		case nil:
		case *ast.If:
			// Chained else-if flattens into the same block with one ENDIF.
			keyword = "ELSE IF"
			cur = el
			continue
		case *ast.Block:
			lines = append(lines, line(ctx, "ELSE"))
			body, err := e.convertStmts(el.Stmts, ctx.body())
			if err != nil {
				return nil, err
			}
			lines = append(lines, body...)
		}
		break
	}
	lines = append(lines, line(ctx, "ENDIF"))
	return lines, nil
}

// sentinelPrologue declares and clears a loop exit flag.
func sentinelPrologue(ctx Context, flag string) []format.Line {
	return []format.Line{
		line(ctx, fmt.Sprintf("DECLARE %s : BOOLEAN", flag)),
		line(ctx, fmt.Sprintf("%s ← FALSE", flag)),
	}
}

// isTopLevelOr reports whether a rendered condition needs parentheses before
// an appended AND/OR clause.
func isTopLevelOr(cond ast.Node) bool {
	b, ok := cond.(*ast.Binary)
	return ok && b.Op == token.OR
}

func (e *engine) convertWhile(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.While)
	e.feature("loop:while")

	var lines []format.Line
	flag := ""
	if containsLoopBreak(x.Body.Stmts) {
		flag = e.nextExitFlag()
		e.feature("break-rewrite")
		lines = append(lines, sentinelPrologue(ctx, flag)...)
	}

	cond, err := e.renderExpr(x.Cond)
	if err != nil {
		return nil, err
	}
	if flag != "" {
		if isTopLevelOr(x.Cond) {
			cond = "(" + cond + ")"
		}
		cond = fmt.Sprintf("%s AND NOT %s", cond, flag)
	}
	lines = append(lines, line(ctx, fmt.Sprintf("WHILE %s DO", cond)))

	bodyCtx := ctx.body()
	bodyCtx.loop = &loopInfo{exitFlag: flag}
	body, err := e.convertStmts(x.Body.Stmts, bodyCtx)
	if err != nil {
		return nil, err
	}
	lines = append(lines, body...)
	lines = append(lines, line(ctx, "ENDWHILE"))
	return lines, nil
}

func (e *engine) convertDoWhile(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.DoWhile)
	e.feature("loop:repeat")

	var lines []format.Line
	flag := ""
	if containsLoopBreak(x.Body.Stmts) {
		flag = e.nextExitFlag()
		e.feature("break-rewrite")
		lines = append(lines, sentinelPrologue(ctx, flag)...)
	}
	lines = append(lines, line(ctx, "REPEAT"))

	bodyCtx := ctx.body()
	bodyCtx.loop = &loopInfo{exitFlag: flag}
	body, err := e.convertStmts(x.Body.Stmts, bodyCtx)
	if err != nil {
		return nil, err
	}
	lines = append(lines, body...)

	// A post-tested loop repeats while the condition holds, so UNTIL takes
	// the algebraic negation.
	until, err := e.renderNegated(x.Cond)
	if err != nil {
		return nil, err
	}
	if flag != "" {
		if b, ok := x.Cond.(*ast.Binary); ok && (b.Op == token.AND || b.Op == token.OR) {
			until = "(" + until + ")"
		}
		until = fmt.Sprintf("%s OR %s", until, flag)
	}
	lines = append(lines, line(ctx, "UNTIL "+until))
	return lines, nil
}

// forShape is a recognized counted loop: the init, condition, and update all
// act on one control variable with a constant step.
type forShape struct {
	name  string
	start ast.Node
	op    token.Kind // relational operator from the condition
	bound ast.Node
	step  int
}

func recognizeForShape(x *ast.For) (forShape, bool) {
	var s forShape

	switch init := x.Init.(type) {
	case *ast.VarDecl:
		if init.Init == nil {
			return s, false
		}
		s.name, s.start = init.Name, init.Init
	case *ast.Assign:
		id, ok := init.Target.(*ast.Ident)
		if !ok || init.Op != token.ASSIGN {
			return s, false
		}
		s.name, s.start = id.Name, init.Value
	default:
		return s, false
	}

	cond, ok := x.Cond.(*ast.Binary)
	if !ok {
		return s, false
	}
	left, ok := cond.Left.(*ast.Ident)
	if !ok || left.Name != s.name {
		return s, false
	}
	switch cond.Op {
	case token.LT, token.LTE, token.GT, token.GTE:
		s.op, s.bound = cond.Op, cond.Right
	default:
		return s, false
	}

	switch upd := x.Update.(type) {
	case *ast.Update:
		id, ok := upd.Operand.(*ast.Ident)
		if !ok || id.Name != s.name {
			return s, false
		}
		s.step = 1
		if upd.Op == token.DEC {
			s.step = -1
		}
	case *ast.Assign:
		id, ok := upd.Target.(*ast.Ident)
		if !ok || id.Name != s.name {
			return s, false
		}
		switch upd.Op {
		case token.PLUS_ASSIGN, token.MINUS_ASSIGN:
			v, ok := intLiteral(upd.Value)
			if !ok {
				return s, false
			}
			s.step = v
			if upd.Op == token.MINUS_ASSIGN {
				s.step = -v
			}
		case token.ASSIGN:
			b, ok := upd.Value.(*ast.Binary)
			if !ok {
				return s, false
			}
			bid, ok := b.Left.(*ast.Ident)
			if !ok || bid.Name != s.name {
				return s, false
			}
			v, ok := intLiteral(b.Right)
			if !ok {
				return s, false
			}
			switch b.Op {
			case token.PLUS:
				s.step = v
			case token.MINUS:
				s.step = -v
			default:
				return s, false
			}
		default:
			return s, false
		}
	default:
		return s, false
	}

	// Direction must agree with the comparison or the loop never advances
	// toward its bound.
	up := s.op == token.LT || s.op == token.LTE
	if (up && s.step <= 0) || (!up && s.step >= 0) {
		return s, false
	}
	return s, true
}

// boundText derives the inclusive TO bound from the relational operator,
// folding integer literals (i < 10 becomes TO 9).
func (e *engine) boundText(s forShape) (string, error) {
	adjust := 0
	switch s.op {
	case token.LT:
		adjust = -1
	case token.GT:
		adjust = 1
	}
	if v, ok := intLiteral(s.bound); ok {
		return strconv.Itoa(v + adjust), nil
	}
	rendered, err := e.renderOperand(s.bound, 5, true)
	if err != nil {
		return "", err
	}
	switch adjust {
	case -1:
		return rendered + " - 1", nil
	case 1:
		return rendered + " + 1", nil
	}
	return rendered, nil
}

func (e *engine) convertFor(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.For)

	// Counted FOR...NEXT only when the shape is recognized and the body has
	// no break; a break forces the WHILE lowering so the exit flag has a
	// condition to live in.
	if s, ok := recognizeForShape(x); ok && !containsLoopBreak(x.Body.Stmts) {
		start, err := e.renderExpr(s.start)
		if err != nil {
			return nil, err
		}
		end, err := e.boundText(s)
		if err != nil {
			return nil, err
		}
		header := fmt.Sprintf("FOR %s ← %s TO %s", s.name, start, end)
		if s.step != 1 {
			header += fmt.Sprintf(" STEP %d", s.step)
		}
		e.feature("loop:for")

		bodyCtx := ctx.body()
		bodyCtx.loop = &loopInfo{ctrlVar: s.name}
		body, err := e.convertStmts(x.Body.Stmts, bodyCtx)
		if err != nil {
			return nil, err
		}
		lines := []format.Line{line(ctx, header)}
		lines = append(lines, body...)
		lines = append(lines, line(ctx, "NEXT "+s.name))
		return lines, nil
	}

	return e.convertForAsWhile(x, ctx)
}

// convertForAsWhile lowers an unrecognized or break-carrying for loop into
// init / WHILE / body+update / ENDWHILE.
func (e *engine) convertForAsWhile(x *ast.For, ctx Context) ([]format.Line, error) {
	e.feature("loop:while")
	var lines []format.Line

	if x.Init != nil {
		init, err := e.convertNode(x.Init, ctx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, init...)
	}

	flag := ""
	if containsLoopBreak(x.Body.Stmts) {
		flag = e.nextExitFlag()
		e.feature("break-rewrite")
		lines = append(lines, sentinelPrologue(ctx, flag)...)
	}

	cond := "TRUE"
	if x.Cond != nil {
		rendered, err := e.renderExpr(x.Cond)
		if err != nil {
			return nil, err
		}
		if flag != "" && isTopLevelOr(x.Cond) {
			rendered = "(" + rendered + ")"
		}
		cond = rendered
	}
	if flag != "" {
		cond = fmt.Sprintf("%s AND NOT %s", cond, flag)
	}
	lines = append(lines, line(ctx, fmt.Sprintf("WHILE %s DO", cond)))

	bodyCtx := ctx.body()
	bodyCtx.loop = &loopInfo{exitFlag: flag}
	body, err := e.convertStmts(x.Body.Stmts, bodyCtx)
	if err != nil {
		return nil, err
	}
	lines = append(lines, body...)

	if x.Update != nil {
		upd, err := e.convertNode(x.Update, bodyCtx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, upd...)
	}
	lines = append(lines, line(ctx, "ENDWHILE"))
	return lines, nil
}

func (e *engine) convertForEach(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.ForEach)
	e.feature("loop:foreach")

	iter, err := e.renderExpr(x.Iterable)
	if err != nil {
		return nil, err
	}

	var lines []format.Line
	flag := ""
	if containsLoopBreak(x.Body.Stmts) {
		flag = e.nextExitFlag()
		e.feature("break-rewrite")
		lines = append(lines, sentinelPrologue(ctx, flag)...)
	}
	lines = append(lines, line(ctx, fmt.Sprintf("FOR EACH %s IN %s", x.VarName, iter)))

	bodyCtx := ctx.body()
	bodyCtx.loop = &loopInfo{ctrlVar: x.VarName, exitFlag: flag}
	body, err := e.convertStmts(x.Body.Stmts, bodyCtx)
	if err != nil {
		return nil, err
	}
	if flag != "" {
		// FOR EACH has no condition to carry the flag; guard the body.
		lines = append(lines, line(bodyCtx, fmt.Sprintf("IF %s = FALSE THEN", flag)))
		lines = append(lines, format.Indented(body, 1)...)
		lines = append(lines, line(bodyCtx, "ENDIF"))
	} else {
		lines = append(lines, body...)
	}
	lines = append(lines, line(ctx, "NEXT "+x.VarName))
	return lines, nil
}

func (e *engine) convertSwitch(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Switch)
	e.feature("case")

	subject, err := e.renderExpr(x.Subject)
	if err != nil {
		return nil, err
	}
	lines := []format.Line{line(ctx, "CASE OF "+subject)}

	caseCtx := ctx.body()
	var pending []string // labels accumulated across fallthrough groups
	for _, c := range x.Cases {
		label := "OTHERWISE"
		if c.Labels != nil {
			parts := make([]string, 0, len(c.Labels))
			for _, l := range c.Labels {
				s, err := e.renderExpr(l)
				if err != nil {
					return nil, err
				}
				parts = append(parts, s)
			}
			pending = append(pending, parts...)
			if len(c.Body) == 0 {
				// Empty group falls through to the next label's body.
				continue
			}
			label = strings.Join(pending, ", ")
		}
		if c.Labels == nil && len(pending) > 0 {
			// Labels falling through into default are already covered by
			// OTHERWISE; they cannot be joined onto its line.
			e.warnf("W1302", c.Span, "case labels %s fall through to OTHERWISE", strings.Join(pending, ", "))
		}
		pending = nil

		bodyCtx := caseCtx.body()
		bodyCtx.loop = nil // a break here ends the case, not any outer loop
		body, err := e.convertStmts(stripBreaks(c.Body), bodyCtx)
		if err != nil {
			return nil, err
		}
		if len(body) == 1 && body[0].Indent == bodyCtx.Indent {
			lines = append(lines, line(caseCtx, fmt.Sprintf("%s : %s", label, body[0].Text)))
			continue
		}
		lines = append(lines, line(caseCtx, label+" :"))
		lines = append(lines, body...)
	}
	if len(pending) > 0 {
		lines = append(lines, line(caseCtx, strings.Join(pending, ", ")+" :"))
	}
	lines = append(lines, line(ctx, "ENDCASE"))
	return lines, nil
}

// stripBreaks drops top-level break statements from a case body; case groups
// never fall through in the output, so the breaks carry no information.
func stripBreaks(stmts []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(stmts))
	for _, s := range stmts {
		if _, ok := s.(*ast.Break); ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

func (e *engine) convertBreak(n ast.Node, ctx Context) ([]format.Line, error) {
	if ctx.loop != nil && ctx.loop.exitFlag != "" {
		return []format.Line{line(ctx, ctx.loop.exitFlag+" ← TRUE")}, nil
	}
	e.warnf("W1303", n.Pos(), "break has no pseudocode equivalent here")
	return []format.Line{line(ctx, "// break")}, nil
}

func (e *engine) convertContinue(n ast.Node, ctx Context) ([]format.Line, error) {
	e.warnf("W1304", n.Pos(), "continue has no pseudocode equivalent, kept as a comment")
	return []format.Line{line(ctx, "// continue: skip to the next iteration")}, nil
}

func (e *engine) convertReturn(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Return)
	if x.Value == nil {
		return []format.Line{line(ctx, "RETURN")}, nil
	}
	value, err := e.renderExpr(x.Value)
	if err != nil {
		return nil, err
	}
	return []format.Line{line(ctx, "RETURN "+value)}, nil
}

func (e *engine) convertMethod(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Method)

	params := make([]string, 0, len(x.Params))
	for _, p := range x.Params {
		pt, known := e.mapType(p.Type)
		if !known {
			e.warnf("W1201", x.Pos(), "unknown type %q for parameter %s, assuming %s", p.Type, p.Name, pt)
		}
		params = append(params, fmt.Sprintf("%s : %s", p.Name, pt))
	}
	paramList := strings.Join(params, ", ")

	bodyCtx := ctx.body()
	bodyCtx.loop = nil
	body, err := e.convertStmts(x.Body.Stmts, bodyCtx)
	if err != nil {
		return nil, err
	}

	var lines []format.Line
	if x.ReturnType == "" || x.ReturnType == "void" {
		e.feature("procedure")
		lines = append(lines, line(ctx, fmt.Sprintf("PROCEDURE %s(%s)", x.Name, paramList)))
		lines = append(lines, body...)
		lines = append(lines, line(ctx, "ENDPROCEDURE"))
	} else {
		retType, known := e.mapType(x.ReturnType)
		if !known {
			e.warnf("W1201", x.Pos(), "unknown return type %q for %s, assuming %s", x.ReturnType, x.Name, retType)
		}
		e.feature("function")
		lines = append(lines, line(ctx, fmt.Sprintf("FUNCTION %s(%s) RETURNS %s", x.Name, paramList, retType)))
		lines = append(lines, body...)
		lines = append(lines, line(ctx, "ENDFUNCTION"))
	}
	return lines, nil
}

func (e *engine) convertClass(n ast.Node, ctx Context) ([]format.Line, error) {
	x := n.(*ast.Class)
	e.feature("class")
	e.warnf("W1401", x.Pos(), "class %s flattened, members emitted at top level", x.Name)

	header := "// class " + x.Name
	if x.Super != "" {
		header += " extends " + x.Super
	}
	lines := []format.Line{line(ctx, header)}

	for _, f := range x.Fields {
		fl, err := e.convertNode(f, ctx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, fl...)
	}
	for _, m := range x.Methods {
		ml, err := e.convertNode(m, ctx)
		if err != nil {
			return nil, err
		}
		lines = append(lines, ml...)
	}
	return lines, nil
}
