// Package guard enforces constructor usage for value objects, commands,
// and queries. Embedding a ConstructorGuard lets a type detect whether it
// was produced by its constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value always fails validation, which makes accidental
// struct-literal construction of guarded types detectable.
//
// Example:
//
//	type SetOperationalDatesCommand struct {
//	    entries []calendar.Entry
//	    guard   guard.ConstructorGuard
//	}
//
//	func NewSetOperationalDatesCommand(entries []calendar.Entry) (SetOperationalDatesCommand, error) {
//	    ...
//	    return SetOperationalDatesCommand{entries: entries, guard: guard.NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guard was produced by NewConstructorGuard.
// Otherwise it returns validationError, falling back to
// ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
