package jsonsax

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped when a caller passes a nil/zero argument
	// or calls an operation before Initialize.
	ErrInvalidInput = errors.New("jsonsax: invalid input")
	// ErrSyntax is wrapped for any grammar violation other than a bracket
	// mismatch: trailing commas, malformed escapes, doubled decimal
	// points, bare exponents, unterminated strings, and so on.
	ErrSyntax = errors.New("jsonsax: syntax error")
	// ErrTokenMismatch is wrapped when a closing bracket disagrees with
	// the token that opened its container.
	ErrTokenMismatch = errors.New("jsonsax: token mismatch")
	// ErrInternal is wrapped when the state machine reaches a state that
	// assumes a stack top which isn't there. Always a parser bug.
	ErrInternal = errors.New("jsonsax: internal error")
	// ErrWrongType is wrapped by Node's As* accessors when called against
	// a node of a different NodeType.
	ErrWrongType = errors.New("jsonsax: node has the wrong type")
)

// LastError turns the context's pinned fatal code, if any, into a single
// error carrying the line and column of the failure. It returns nil if
// the most recent Parse call did not return a fatal error.
func (c *Context) LastError() error {
	var sentinel error
	switch c.state {
	case stateErrorSyntax:
		sentinel = ErrSyntax
	case stateErrorTokenMismatch:
		sentinel = ErrTokenMismatch
	case stateErrorInternal:
		sentinel = ErrInternal
	default:
		return nil
	}
	return fmt.Errorf("%w at line %d, column %d", sentinel, c.Line, c.Column)
}
