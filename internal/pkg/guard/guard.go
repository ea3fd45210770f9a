// Package guard provides ConstructorGuard, a marker embedded in domain values
// and commands so that zero values created without their constructor can be
// told apart from properly built ones.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded by value. Its zero value reports "not constructed".
//
// Example:
//
//	type AdvanceStatusCommand struct {
//	    loadID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c AdvanceStatusCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceStatusCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) if
// the owner was not built through its constructor.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
