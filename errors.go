package arbor

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a scene graph failure. Every kind is a programming
// error in client code; none of them is retried or repaired.
type ErrorKind uint8

const (
	// KindTreeIntegrity covers double attachment, self or cyclic attachment,
	// removing a non-member and out-of-range indexed access.
	KindTreeIntegrity ErrorKind = iota + 1
	// KindLifecycle covers use of a disposed node, caching the Stage and
	// 3D-only operations without a 3D-capable surface.
	KindLifecycle
	// KindAssertion covers invariant violations found by CheckConsistency.
	KindAssertion
)

func (k ErrorKind) String() string {
	switch k {
	case KindTreeIntegrity:
		return "tree integrity"
	case KindLifecycle:
		return "lifecycle misuse"
	case KindAssertion:
		return "assertion"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrTreeIntegrity = errors.New("arbor: tree integrity violation")
	ErrLifecycle     = errors.New("arbor: lifecycle misuse")
	ErrAssertion     = errors.New("arbor: invariant assertion failed")
)

// Error is the single error type returned (or panicked) by the scene graph.
type Error struct {
	Kind ErrorKind
	Op   string // operation that failed, e.g. "AddNode"
	Node string // name of the node the operation was invoked on
	Msg  string
}

func (e *Error) Error() string {
	if e.Node != "" {
		return fmt.Sprintf("arbor: %s on %q: %s", e.Op, e.Node, e.Msg)
	}
	return fmt.Sprintf("arbor: %s: %s", e.Op, e.Msg)
}

// Is matches the sentinel for e.Kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrTreeIntegrity:
		return e.Kind == KindTreeIntegrity
	case ErrLifecycle:
		return e.Kind == KindLifecycle
	case ErrAssertion:
		return e.Kind == KindAssertion
	}
	return false
}

func treeError(op string, n *Node, format string, args ...any) *Error {
	return newError(KindTreeIntegrity, op, n, format, args...)
}

func lifecycleError(op string, n *Node, format string, args ...any) *Error {
	return newError(KindLifecycle, op, n, format, args...)
}

func assertionError(op string, n *Node, format string, args ...any) *Error {
	return newError(KindAssertion, op, n, format, args...)
}

func newError(kind ErrorKind, op string, n *Node, format string, args ...any) *Error {
	e := &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
	if n != nil {
		e.Node = n.Name
	}
	return e
}

// mustBeLive panics when a property setter runs on a disposed node.
func (n *Node) mustBeLive(op string) {
	if n.disposed {
		panic(lifecycleError(op, n, "node is disposed"))
	}
}
