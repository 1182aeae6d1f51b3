package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

// opText is the fixed operator translation table.
var opText = map[token.Kind]string{
	token.EQ:      "=",
	token.NEQ:     "<>",
	token.LT:      "<",
	token.LTE:     "<=",
	token.GT:      ">",
	token.GTE:     ">=",
	token.AND:     "AND",
	token.OR:      "OR",
	token.PLUS:    "+",
	token.MINUS:   "-",
	token.STAR:    "*",
	token.SLASH:   "/",
	token.PERCENT: "MOD",
}

// negatedOp gives the algebraic negation of a comparison operator.
var negatedOp = map[token.Kind]string{
	token.LT:  ">=",
	token.LTE: ">",
	token.GT:  "<=",
	token.GTE: "<",
	token.EQ:  "<>",
	token.NEQ: "=",
}

func opPrec(op token.Kind) int {
	switch op {
	case token.OR:
		return 1
	case token.AND:
		return 2
	case token.EQ, token.NEQ:
		return 3
	case token.LT, token.LTE, token.GT, token.GTE:
		return 4
	case token.PLUS, token.MINUS:
		return 5
	case token.STAR, token.SLASH, token.PERCENT:
		return 6
	default:
		return 9
	}
}

// renderExpr converts an expression subtree to its pseudocode text. Recursion
// is bounded by the same MaxDepth that limits statement dispatch.
func (e *engine) renderExpr(n ast.Node) (string, error) {
	if err := e.enterExpr(); err != nil {
		return "", err
	}
	defer e.leaveExpr()

	switch x := n.(type) {
	case *ast.Literal:
		return renderLiteral(x), nil

	case *ast.Ident:
		return x.Name, nil

	case *ast.Member:
		return e.renderMember(x)

	case *ast.Index:
		obj, err := e.renderExpr(x.Object)
		if err != nil {
			return "", err
		}
		sub, err := e.renderExpr(x.Sub)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s[%s]", obj, sub), nil

	case *ast.Binary:
		return e.renderBinary(x)

	case *ast.Unary:
		operand, err := e.renderOperand(x.Operand, 7, false)
		if err != nil {
			return "", err
		}
		switch x.Op {
		case token.BANG:
			return "NOT " + operand, nil
		case token.MINUS:
			return "-" + operand, nil
		default: // unary plus is a no-op
			return operand, nil
		}

	case *ast.Update:
		// An update used as a value has no pseudocode form; keep the
		// variable and let the statement-level rewrite handle the step.
		e.warnf("W1103", x.Pos(), "inline %s has no pseudocode equivalent; rendered as its operand", x.Op)
		return e.renderExpr(x.Operand)

	case *ast.Assign:
		target, err := e.renderExpr(x.Target)
		if err != nil {
			return "", err
		}
		value, err := e.renderAssignValue(x)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s ← %s", target, value), nil

	case *ast.Call:
		return e.renderCall(x)

	case *ast.New:
		args, err := e.renderArgs(x.Args)
		if err != nil {
			return "", err
		}
		e.warnf("W1105", x.Pos(), "object construction new %s approximated as a call", x.TypeName)
		return fmt.Sprintf("%s(%s)", x.TypeName, args), nil

	case *ast.ArrayLit:
		args, err := e.renderArgs(x.Elements)
		if err != nil {
			return "", err
		}
		return "[" + args + "]", nil

	case *ast.Ternary:
		cond, err := e.renderExpr(x.Cond)
		if err != nil {
			return "", err
		}
		thenS, err := e.renderExpr(x.Then)
		if err != nil {
			return "", err
		}
		elseS, err := e.renderExpr(x.Else)
		if err != nil {
			return "", err
		}
		e.warnf("W1104", x.Pos(), "conditional expression has no pseudocode equivalent; kept in source form")
		return fmt.Sprintf("(%s ? %s : %s)", cond, thenS, elseS), nil

	default:
		return "", &UnsupportedConstructError{NodeKind: n.Kind(), Span: n.Pos()}
	}
}

func renderLiteral(x *ast.Literal) string {
	switch x.LitKind {
	case token.STRING:
		return strconv.Quote(x.Value)
	case token.CHAR:
		return "'" + x.Value + "'"
	case token.KW_TRUE:
		return "TRUE"
	case token.KW_FALSE:
		return "FALSE"
	case token.KW_NULL:
		return "NULL"
	default:
		return x.Value
	}
}

// renderOperand renders a child expression, parenthesizing it when its
// operator binds looser than the parent. rightOfNonAssoc also wraps equal
// precedence, preserving a - (b - c).
func (e *engine) renderOperand(n ast.Node, parentPrec int, rightOfNonAssoc bool) (string, error) {
	s, err := e.renderExpr(n)
	if err != nil {
		return "", err
	}
	if b, ok := n.(*ast.Binary); ok {
		p := opPrec(b.Op)
		if p < parentPrec || (rightOfNonAssoc && p == parentPrec) {
			return "(" + s + ")", nil
		}
	}
	return s, nil
}

func (e *engine) renderBinary(x *ast.Binary) (string, error) {
	op := opText[x.Op]
	if op == "" {
		return "", &UnsupportedConstructError{NodeKind: x.Kind(), Span: x.Pos()}
	}
	switch x.Op {
	case token.PLUS:
		if e.isTextual(x.Left) || e.isTextual(x.Right) {
			op = "&"
			e.feature("concatenation")
		}
	case token.SLASH:
		if e.opts.IntegerDivision {
			op = "DIV"
		}
	case token.PERCENT:
		e.feature("modulus")
	}

	prec := opPrec(x.Op)
	nonAssoc := x.Op == token.MINUS || x.Op == token.SLASH || x.Op == token.PERCENT
	left, err := e.renderOperand(x.Left, prec, false)
	if err != nil {
		return "", err
	}
	right, err := e.renderOperand(x.Right, prec, nonAssoc)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s %s %s", left, op, right), nil
}

// textualNameHints flags identifier names that suggest text content. The
// heuristic is unsound without a type system and therefore only applies
// behind the AssumeTextNames option.
var textualNameHints = []string{"name", "text", "str", "message", "msg", "label", "word", "line"}

// isTextual decides whether an operand of '+' carries text, making the
// operator a concatenation.
func (e *engine) isTextual(n ast.Node) bool {
	switch x := n.(type) {
	case *ast.Literal:
		return x.LitKind == token.STRING || x.LitKind == token.CHAR
	case *ast.Binary:
		return x.Op == token.PLUS && (e.isTextual(x.Left) || e.isTextual(x.Right))
	case *ast.Ident:
		if !e.opts.AssumeTextNames {
			return false
		}
		lower := strings.ToLower(x.Name)
		for _, hint := range textualNameHints {
			if strings.Contains(lower, hint) {
				return true
			}
		}
	}
	return false
}

// calleePath flattens an Ident/Member chain into a dotted path, or returns
// "" when the callee is not a simple chain.
func calleePath(n ast.Node) string {
	switch x := n.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.Member:
		base := calleePath(x.Object)
		if base == "" {
			return ""
		}
		return base + "." + x.Property
	}
	return ""
}

// renderMember handles property reads; array/string length becomes the
// LENGTH builtin.
func (e *engine) renderMember(x *ast.Member) (string, error) {
	obj, err := e.renderExpr(x.Object)
	if err != nil {
		return "", err
	}
	if x.Property == "length" {
		e.feature("builtin:LENGTH")
		return fmt.Sprintf("LENGTH(%s)", obj), nil
	}
	return obj + "." + x.Property, nil
}

// renderCall handles invocations in expression position, mapping the known
// string and math builtins to their pseudocode forms.
func (e *engine) renderCall(x *ast.Call) (string, error) {
	if member, ok := x.Callee.(*ast.Member); ok {
		if s, ok, err := e.renderBuiltin(member, x.Args); ok || err != nil {
			return s, err
		}
	}
	callee, err := e.renderExpr(x.Callee)
	if err != nil {
		return "", err
	}
	args, err := e.renderArgs(x.Args)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", callee, args), nil
}

// renderBuiltin maps recognized member calls to pseudocode builtins.
// Returns ok=false when the call is not a known builtin.
func (e *engine) renderBuiltin(member *ast.Member, args []ast.Node) (string, bool, error) {
	recv := func() (string, error) { return e.renderExpr(member.Object) }

	switch member.Property {
	case "length", "size":
		if len(args) != 0 {
			return "", false, nil
		}
		obj, err := recv()
		if err != nil {
			return "", true, err
		}
		e.feature("builtin:LENGTH")
		return fmt.Sprintf("LENGTH(%s)", obj), true, nil

	case "toUpperCase", "toLowerCase":
		if len(args) != 0 {
			return "", false, nil
		}
		obj, err := recv()
		if err != nil {
			return "", true, err
		}
		name := "UCASE"
		if member.Property == "toLowerCase" {
			name = "LCASE"
		}
		e.feature("builtin:" + name)
		return fmt.Sprintf("%s(%s)", name, obj), true, nil

	case "charAt":
		if len(args) != 1 {
			return "", false, nil
		}
		obj, err := recv()
		if err != nil {
			return "", true, err
		}
		pos, err := e.renderIndexPlusOne(args[0])
		if err != nil {
			return "", true, err
		}
		e.feature("builtin:MID")
		return fmt.Sprintf("MID(%s, %s, 1)", obj, pos), true, nil

	case "substring":
		if len(args) != 2 {
			return "", false, nil
		}
		obj, err := recv()
		if err != nil {
			return "", true, err
		}
		start, err := e.renderIndexPlusOne(args[0])
		if err != nil {
			return "", true, err
		}
		length, err := e.renderDifference(args[1], args[0])
		if err != nil {
			return "", true, err
		}
		e.feature("builtin:SUBSTRING")
		return fmt.Sprintf("SUBSTRING(%s, %s, %s)", obj, start, length), true, nil

	case "pow":
		if calleePath(member.Object) != "Math" || len(args) != 2 {
			return "", false, nil
		}
		base, err := e.renderOperand(args[0], 7, false)
		if err != nil {
			return "", true, err
		}
		exp, err := e.renderOperand(args[1], 7, true)
		if err != nil {
			return "", true, err
		}
		return fmt.Sprintf("%s ^ %s", base, exp), true, nil

	case "abs", "floor":
		if calleePath(member.Object) != "Math" || len(args) != 1 {
			return "", false, nil
		}
		arg, err := e.renderExpr(args[0])
		if err != nil {
			return "", true, err
		}
		name := "ABS"
		if member.Property == "floor" {
			name = "INT"
		}
		e.feature("builtin:" + name)
		return fmt.Sprintf("%s(%s)", name, arg), true, nil
	}
	return "", false, nil
}

// renderIndexPlusOne converts a zero-based source index into the dialect's
// one-based position, folding integer literals.
func (e *engine) renderIndexPlusOne(n ast.Node) (string, error) {
	if v, ok := intLiteral(n); ok {
		return strconv.Itoa(v + 1), nil
	}
	s, err := e.renderOperand(n, 5, false)
	if err != nil {
		return "", err
	}
	return s + " + 1", nil
}

// renderDifference renders a - b, folding when both are integer literals.
func (e *engine) renderDifference(a, b ast.Node) (string, error) {
	av, aok := intLiteral(a)
	bv, bok := intLiteral(b)
	if aok && bok {
		return strconv.Itoa(av - bv), nil
	}
	as, err := e.renderOperand(a, 5, false)
	if err != nil {
		return "", err
	}
	bs, err := e.renderOperand(b, 5, true)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s - %s", as, bs), nil
}

func (e *engine) renderArgs(args []ast.Node) (string, error) {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		s, err := e.renderExpr(a)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", "), nil
}

// intLiteral extracts the value of an integer literal node.
func intLiteral(n ast.Node) (int, bool) {
	lit, ok := n.(*ast.Literal)
	if !ok || lit.LitKind != token.INT {
		return 0, false
	}
	v, err := strconv.Atoi(lit.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// renderNegated renders the logical negation of a condition algebraically:
// comparisons flip their operator, logical connectives apply De Morgan's
// law, and only expressions with no direct negation fall back to NOT(...).
func (e *engine) renderNegated(n ast.Node) (string, error) {
	if err := e.enterExpr(); err != nil {
		return "", err
	}
	defer e.leaveExpr()

	switch x := n.(type) {
	case *ast.Binary:
		if flipped, ok := negatedOp[x.Op]; ok {
			left, err := e.renderOperand(x.Left, opPrec(x.Op), false)
			if err != nil {
				return "", err
			}
			right, err := e.renderOperand(x.Right, opPrec(x.Op), false)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s %s %s", left, flipped, right), nil
		}
		if x.Op == token.AND || x.Op == token.OR {
			joined := "OR"
			if x.Op == token.OR {
				joined = "AND"
			}
			left, err := e.renderNegatedSide(x.Left)
			if err != nil {
				return "", err
			}
			right, err := e.renderNegatedSide(x.Right)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s %s %s", left, joined, right), nil
		}
	case *ast.Unary:
		if x.Op == token.BANG {
			return e.renderExpr(x.Operand)
		}
	case *ast.Literal:
		if x.LitKind == token.KW_TRUE {
			return "FALSE", nil
		}
		if x.LitKind == token.KW_FALSE {
			return "TRUE", nil
		}
	}
	s, err := e.renderExpr(n)
	if err != nil {
		return "", err
	}
	return "NOT(" + s + ")", nil
}

// renderNegatedSide negates one side of a De Morgan rewrite, parenthesizing
// nested logical connectives.
func (e *engine) renderNegatedSide(n ast.Node) (string, error) {
	s, err := e.renderNegated(n)
	if err != nil {
		return "", err
	}
	if b, ok := n.(*ast.Binary); ok && (b.Op == token.AND || b.Op == token.OR) {
		return "(" + s + ")", nil
	}
	return s, nil
}
