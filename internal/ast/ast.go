// Package ast defines the abstract syntax tree shared by the parser and the
// conversion engine. Each node reports a Kind so the engine can key its
// handler table, and a source span for diagnostics.
package ast

import (
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

// Kind names a node type. The conversion engine dispatches on it.
type Kind string

const (
	KindProgram  Kind = "Program"
	KindComment  Kind = "Comment"
	KindVarDecl  Kind = "VariableDeclaration"
	KindAssign   Kind = "Assignment"
	KindBinary   Kind = "BinaryExpression"
	KindUnary    Kind = "UnaryExpression"
	KindUpdate   Kind = "UpdateExpression"
	KindCall     Kind = "MethodCall"
	KindMember   Kind = "MemberAccess"
	KindIndex    Kind = "IndexExpression"
	KindLiteral  Kind = "Literal"
	KindIdent    Kind = "Identifier"
	KindBlock    Kind = "Block"
	KindIf       Kind = "IfStatement"
	KindFor      Kind = "ForStatement"
	KindForEach  Kind = "EnhancedForStatement"
	KindWhile    Kind = "WhileStatement"
	KindDoWhile  Kind = "DoWhileStatement"
	KindSwitch   Kind = "SwitchStatement"
	KindBreak    Kind = "BreakStatement"
	KindContinue Kind = "ContinueStatement"
	KindReturn   Kind = "ReturnStatement"
	KindClass    Kind = "ClassDeclaration"
	KindMethod   Kind = "MethodDeclaration"
	KindNew      Kind = "NewExpression"
	KindArrayLit Kind = "ArrayLiteral"
	KindTernary  Kind = "TernaryExpression"
	KindExprStmt Kind = "ExpressionStatement"
)

// Node is the interface implemented by all AST nodes. The tree is strict:
// no node appears twice and there are no back-edges.
type Node interface {
	Kind() Kind
	Pos() source.Span
}

// NodeBase provides the common span storage for all AST nodes.
type NodeBase struct {
	Span source.Span
}

func (n NodeBase) Pos() source.Span { return n.Span }

// Program is the root node of a parsed compilation unit.
type Program struct {
	NodeBase
	Body []Node
}

func (*Program) Kind() Kind { return KindProgram }

// Comment is a source comment carried through when passthrough is enabled.
type Comment struct {
	NodeBase
	Text string
}

func (*Comment) Kind() Kind { return KindComment }

// VarDecl is a variable or constant declaration.
// DeclType holds the raw declared type token ("" when absent, as for
// TypeScript declarations without an annotation).
type VarDecl struct {
	NodeBase
	Name     string
	DeclType string
	Const    bool // final/static in Java, const in TypeScript
	Static   bool
	Init     Node // may be nil
}

func (*VarDecl) Kind() Kind { return KindVarDecl }

// Assign is an assignment statement or expression. Op is ASSIGN or one of
// the compound assignment tokens.
type Assign struct {
	NodeBase
	Target Node
	Op     token.Kind
	Value  Node
}

func (*Assign) Kind() Kind { return KindAssign }

// Binary is a binary operation: a + b, x == y.
type Binary struct {
	NodeBase
	Op    token.Kind
	Left  Node
	Right Node
}

func (*Binary) Kind() Kind { return KindBinary }

// Unary is a prefix operation: !x, -x, +x.
type Unary struct {
	NodeBase
	Op      token.Kind
	Operand Node
}

func (*Unary) Kind() Kind { return KindUnary }

// Update is an increment or decrement: i++, --i.
type Update struct {
	NodeBase
	Op      token.Kind // INC or DEC
	Operand Node
	Prefix  bool
}

func (*Update) Kind() Kind { return KindUpdate }

// Call is a function or method invocation.
type Call struct {
	NodeBase
	Callee Node // Ident or Member
	Args   []Node
}

func (*Call) Kind() Kind { return KindCall }

// Member is a property access: a.b.
type Member struct {
	NodeBase
	Object   Node
	Property string
}

func (*Member) Kind() Kind { return KindMember }

// Index is an array subscript: a[i].
type Index struct {
	NodeBase
	Object Node
	Sub    Node
}

func (*Index) Kind() Kind { return KindIndex }

// Literal is a number, string, char, boolean or null literal. LitKind is the
// producing token kind; Value keeps the lexeme.
type Literal struct {
	NodeBase
	LitKind token.Kind
	Value   string
}

func (*Literal) Kind() Kind { return KindLiteral }

// Ident is an identifier reference.
type Ident struct {
	NodeBase
	Name string
}

func (*Ident) Kind() Kind { return KindIdent }

// Block is a braced statement sequence.
type Block struct {
	NodeBase
	Stmts []Node
}

func (*Block) Kind() Kind { return KindBlock }

// If is a conditional. Else is nil, a *Block, or a *If; an else-branch that
// is itself an If is the signal for else-if chaining.
type If struct {
	NodeBase
	Cond Node
	Then *Block
	Else Node
}

func (*If) Kind() Kind { return KindIf }

// For is a three-clause loop.
type For struct {
	NodeBase
	Init   Node // VarDecl, Assign, ExprStmt, or nil
	Cond   Node // may be nil
	Update Node // may be nil
	Body   *Block
}

func (*For) Kind() Kind { return KindFor }

// ForEach is an enhanced for (Java "for (T x : xs)", TS "for (const x of xs)").
type ForEach struct {
	NodeBase
	VarName  string
	VarType  string // raw declared element type, may be ""
	Iterable Node
	Body     *Block
}

func (*ForEach) Kind() Kind { return KindForEach }

// While is a pre-tested loop.
type While struct {
	NodeBase
	Cond Node
	Body *Block
}

func (*While) Kind() Kind { return KindWhile }

// DoWhile is a post-tested loop.
type DoWhile struct {
	NodeBase
	Body *Block
	Cond Node
}

func (*DoWhile) Kind() Kind { return KindDoWhile }

// SwitchCase is one case or default group in source order. Labels is nil for
// default. Body may be empty when the group falls through to the next one.
type SwitchCase struct {
	Span   source.Span
	Labels []Node
	Body   []Node
}

// Switch is a switch statement over Subject.
type Switch struct {
	NodeBase
	Subject Node
	Cases   []*SwitchCase
}

func (*Switch) Kind() Kind { return KindSwitch }

// Break is a break statement.
type Break struct {
	NodeBase
}

func (*Break) Kind() Kind { return KindBreak }

// Continue is a continue statement.
type Continue struct {
	NodeBase
}

func (*Continue) Kind() Kind { return KindContinue }

// Return is a return statement. Value may be nil.
type Return struct {
	NodeBase
	Value Node
}

func (*Return) Kind() Kind { return KindReturn }

// Param is one declared parameter of a method.
type Param struct {
	Name string
	Type string // raw declared type, may be ""
}

// Method is a function or method declaration. An empty or "void" ReturnType
// marks a procedure.
type Method struct {
	NodeBase
	Name       string
	Params     []Param
	ReturnType string
	Static     bool
	Body       *Block
}

func (*Method) Kind() Kind { return KindMethod }

// Class is a class declaration.
type Class struct {
	NodeBase
	Name       string
	Super      string
	Interfaces []string
	Fields     []*VarDecl
	Methods    []*Method
}

func (*Class) Kind() Kind { return KindClass }

// New is an object creation expression: new T(args).
type New struct {
	NodeBase
	TypeName string
	Args     []Node
}

func (*New) Kind() Kind { return KindNew }

// ArrayLit is an array literal: {1, 2, 3} or [1, 2, 3].
type ArrayLit struct {
	NodeBase
	Elements []Node
}

func (*ArrayLit) Kind() Kind { return KindArrayLit }

// Ternary is cond ? a : b.
type Ternary struct {
	NodeBase
	Cond Node
	Then Node
	Else Node
}

func (*Ternary) Kind() Kind { return KindTernary }

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	NodeBase
	Expr Node
}

func (*ExprStmt) Kind() Kind { return KindExprStmt }
