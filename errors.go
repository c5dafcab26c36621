package pact

import (
	"errors"
	"fmt"
)

var (
	ErrLookup            = errors.New("pact: conditions not found")
	ErrIndexOutOfRange   = errors.New("pact: parameter index out of range")
	ErrUnrecognizedCheck = errors.New("pact: unrecognized check")
	ErrContractViolation = errors.New("pact: contract violation")
	ErrArity             = errors.New("pact: argument count mismatch")
)

// LookupError is returned when conditions of a method, or the method
// itself, cannot be found.
type LookupError struct {
	Kind   ConditionType
	Method string
}

func (e *LookupError) Error() string {
	if len(e.Kind) == 0 {
		return fmt.Sprintf("pact: method %q not found", e.Method)
	}
	return fmt.Sprintf("pact: no %s conditions for method %q", e.Kind, e.Method)
}

func (e *LookupError) Is(target error) bool { return target == ErrLookup }

// IndexOutOfRangeError is returned when a condition points past the
// arguments supplied at call time.
type IndexOutOfRangeError struct {
	Condition Condition
	Count     int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("pact: %s refers to parameter %d but %d argument(s) supplied",
		e.Condition.Check, e.Condition.Param, e.Count)
}

func (e *IndexOutOfRangeError) Is(target error) bool { return target == ErrIndexOutOfRange }

// UnrecognizedCheckError is returned when no predicate, check routine or
// registered type exists for a condition.
type UnrecognizedCheckError struct {
	Condition Condition
}

func (e *UnrecognizedCheckError) Error() string {
	return fmt.Sprintf("pact: unrecognized %s check %q", e.Condition.Check, e.Condition.Type)
}

func (e *UnrecognizedCheckError) Is(target error) bool { return target == ErrUnrecognizedCheck }

// ContractViolationError is returned by the call path when a precondition
// does not hold. Reason carries the validator error, if any.
type ContractViolationError struct {
	Method    string
	Condition Condition
	Reason    error
}

func (e *ContractViolationError) Error() string {
	if e.Reason != nil {
		return fmt.Sprintf("pact: %s violates precondition (%s): %v", e.Method, e.Condition, e.Reason)
	}
	return fmt.Sprintf("pact: %s violates precondition (%s)", e.Method, e.Condition)
}

func (e *ContractViolationError) Is(target error) bool { return target == ErrContractViolation }

func (e *ContractViolationError) Unwrap() error { return e.Reason }

// ArityError is returned when the supplied arguments do not fit the
// signature of the method being called.
type ArityError struct {
	Method   string
	Want     int
	Got      int
	Variadic bool
}

func (e *ArityError) Error() string {
	if e.Variadic {
		return fmt.Sprintf("pact: %s takes at least %d argument(s), got %d", e.Method, e.Want, e.Got)
	}
	return fmt.Sprintf("pact: %s takes %d argument(s), got %d", e.Method, e.Want, e.Got)
}

func (e *ArityError) Is(target error) bool { return target == ErrArity }
