// Package guard enforces construction of commands, queries and value objects
// through their constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in structs that must only be built through a NewX
// function. Its zero value fails validation.
//
// Example:
//
//	type ProcessFulfillmentJobCommand struct {
//	    jobID kernel.UUID
//	    guard guard.ConstructorGuard
//	}
//
//	func (c ProcessFulfillmentJobCommand) Validate() error {
//	    return c.guard.Validate(ErrProcessFulfillmentJobCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
