package markup

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/internal/callsite"
)

var (
	// ErrNodeAttached reports an attempt to attach a node that already has a parent.
	ErrNodeAttached = errors.New("node already attached to a parent")
	// ErrCycle reports an attempt to attach a node beneath itself or one of its descendants.
	ErrCycle = errors.New("attaching node would create a cycle")
	// ErrNilNode reports a nil *Node passed as a child.
	ErrNilNode = errors.New("nil node")
	// ErrOddAttrs reports an odd number of arguments passed to A.
	ErrOddAttrs = errors.New("attribute pairs must have even length")
)

// ContractError is the panic payload raised when the tree API is misused.
type ContractError struct {
	Op   string
	Tag  string
	Site string
	Err  error
}

func (e *ContractError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("markup: %s on <%s>: %v (called from %s)", e.Op, e.Tag, e.Err, e.Site)
	}
	return fmt.Sprintf("markup: %s: %v (called from %s)", e.Op, e.Err, e.Site)
}

func (e *ContractError) Unwrap() error { return e.Err }

// violation panics from a public method; skip 2 lands on that method's caller.
func violation(op, tag string, err error) {
	panic(&ContractError{Op: op, Tag: tag, Site: callsite.Of(2), Err: err})
}

// violationAt panics from appendChildren, which sits depth frames below the
// public caller.
func violationAt(depth int, op, tag string, err error) {
	panic(&ContractError{Op: op, Tag: tag, Site: callsite.Of(depth + 2), Err: err})
}
