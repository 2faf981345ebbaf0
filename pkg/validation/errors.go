package validation

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/internal/callsite"
)

var (
	// ErrFrozen reports a mutation attempted after Result.Freeze.
	ErrFrozen = errors.New("result is frozen")
	// ErrUnknownField reports a field id absent from the schema.
	ErrUnknownField = errors.New("field is not declared in the schema")
	// ErrNilSchema reports a validator constructed without a schema.
	ErrNilSchema = errors.New("schema is required")
)

// ContractError is the panic payload for programming errors.
type ContractError struct {
	Op    string
	Field string
	Site  string
	Err   error
}

func (e *ContractError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation: %s(%q): %v (called from %s)", e.Op, e.Field, e.Err, e.Site)
	}
	return fmt.Sprintf("validation: %s: %v (called from %s)", e.Op, e.Err, e.Site)
}

func (e *ContractError) Unwrap() error { return e.Err }

// contractViolation panics; skip counts frames above its direct caller, so
// a public method calling it directly passes 1.
func contractViolation(skip int, op, field string, err error) {
	panic(&ContractError{Op: op, Field: field, Site: callsite.Of(skip + 1), Err: err})
}
