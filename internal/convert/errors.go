package convert

import (
	"errors"
	"fmt"

	"github.com/fairy-pitta/java2igcse-sub002/internal/ast"
	"github.com/fairy-pitta/java2igcse-sub002/internal/source"
)

// UnsupportedConstructError marks an AST kind with no handler. Outside of
// strict mode the enclosing block recovers from it and keeps converting.
type UnsupportedConstructError struct {
	NodeKind ast.Kind
	Span     source.Span
}

func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %s at %s", e.NodeKind, e.Span.Start)
}

// RecursionLimitError reports an AST deeper than the configured maximum.
// It is always fatal.
type RecursionLimitError struct {
	Limit int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("recursion limit exceeded (max depth %d)", e.Limit)
}

// CycleError reports a node whose structural identity repeats along the
// active conversion path. A well-formed tree never triggers it.
type CycleError struct {
	NodeKind ast.Kind
	Span     source.Span
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected at %s node %s", e.NodeKind, e.Span.Start)
}

func isUnsupported(err error) bool {
	var ue *UnsupportedConstructError
	return errors.As(err, &ue)
}
