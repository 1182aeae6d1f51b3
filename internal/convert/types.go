package convert

import (
	"strings"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/token"
)

// Pseudocode primitive type names.
const (
	typeInteger = "INTEGER"
	typeReal    = "REAL"
	typeBoolean = "BOOLEAN"
	typeChar    = "CHAR"
	typeString  = "STRING"
)

// typeTable is the closed mapping from source type tokens to pseudocode
// types. Both languages share one table; entries never overlap.
var typeTable = map[string]string{
	// Java
	"int":     typeInteger,
	"long":    typeInteger,
	"short":   typeInteger,
	"byte":    typeInteger,
	"double":  typeReal,
	"float":   typeReal,
	"boolean": typeBoolean,
	"char":    typeChar,
	"String":  typeString,
	// TypeScript
	"number":  typeReal,
	"string":  typeString,
	"bigint":  typeInteger,
	"Boolean": typeBoolean,
}

// mapType resolves a raw declared type to a pseudocode type. Custom mappings
// take precedence over the built-in table. The second result reports whether
// the type was recognized; unknown types fall back to STRING.
func (e *engine) mapType(declType string) (string, bool) {
	base := strings.TrimSuffix(declType, "[]")
	isArray := base != declType

	mapped, known := "", false
	if m, ok := e.opts.CustomMappings[base]; ok {
		mapped, known = m, true
	} else if m, ok := typeTable[base]; ok {
		mapped, known = m, true
	} else {
		mapped = typeString
	}

	if isArray {
		return "ARRAY OF " + mapped, known
	}
	return mapped, known
}

// inferType guesses a pseudocode type from an initializer when the
// declaration carries no annotation, or refines "number" for integer
// literals.
func inferType(init ast.Node) (string, bool) {
	switch n := init.(type) {
	case *ast.Literal:
		switch n.LitKind {
		case token.INT:
			return typeInteger, true
		case token.FLOAT:
			return typeReal, true
		case token.STRING:
			return typeString, true
		case token.CHAR:
			return typeChar, true
		case token.KW_TRUE, token.KW_FALSE:
			return typeBoolean, true
		}
	case *ast.Binary:
		switch n.Op {
		case token.EQ, token.NEQ, token.LT, token.LTE, token.GT, token.GTE, token.AND, token.OR:
			return typeBoolean, true
		}
		if t, ok := inferType(n.Left); ok {
			return t, ok
		}
		return inferType(n.Right)
	case *ast.Unary:
		if n.Op == token.BANG {
			return typeBoolean, true
		}
		return inferType(n.Operand)
	}
	return "", false
}

// inputMethods are the receiver methods recognized as stream reads
// (java.util.Scanner and friends).
var inputMethods = map[string]bool{
	"nextInt":     true,
	"nextLine":    true,
	"nextDouble":  true,
	"nextFloat":   true,
	"nextBoolean": true,
	"next":        true,
	"readLine":    true,
}

// isInputCall reports whether n is a recognized stream-read call: a Scanner
// next* method, or the script globals prompt() / readline().
func isInputCall(n ast.Node) bool {
	call, ok := n.(*ast.Call)
	if !ok {
		return false
	}
	switch callee := call.Callee.(type) {
	case *ast.Member:
		return inputMethods[callee.Property]
	case *ast.Ident:
		return callee.Name == "prompt" || callee.Name == "readline"
	}
	return false
}

// outputPath reports whether the callee path names a print call.
func isOutputPath(path string) bool {
	switch path {
	case "System.out.println", "System.out.print",
		"console.log", "console.error", "console.warn", "console.info":
		return true
	}
	return false
}
