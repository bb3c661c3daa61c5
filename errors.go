package abcd

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("abcd: invalid parameter")
	ErrNumericDomain    = errors.New("abcd: outside the valid numeric domain")
	ErrLengthMismatch   = errors.New("abcd: series lengths differ")
	ErrEmptySeries      = errors.New("abcd: empty series")
)

// DomainError reports the first month at which the model left its valid numeric region,
// typically a negative discriminant (Var "disc") of the ET-opportunity quadratic.
type DomainError struct {
	Step  int // 1-based forcing index
	Var   string
	Value float64
}

func (e *DomainError) Error() string {
	if e.Var == "disc" {
		return fmt.Sprintf("abcd: step %d: ET-opportunity discriminant %g is negative or not finite", e.Step, e.Value)
	}
	return fmt.Sprintf("abcd: step %d: %s=%g is not finite", e.Step, e.Var, e.Value)
}

func (e *DomainError) Unwrap() error { return ErrNumericDomain }
