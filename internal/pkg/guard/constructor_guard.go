// Package guard implements the constructor guard pattern used by domain
// value objects and aggregates to reject zero-value instances.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and entities are only created
// through their designated constructor functions. Embedding a guard in a
// struct makes the zero value detectable: only constructors set the internal
// flag, so any directly-instantiated struct fails validation.
//
// Example usage:
//
//	type Coupon struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewCoupon(code string) (Coupon, error) {
//	    if code == "" {
//	        return Coupon{}, errors.New("code is required")
//	    }
//	    return Coupon{code: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (c Coupon) Validate() error {
//	    return c.guard.Validate(ErrCouponIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard that marks an object as properly
// constructed. Call it in the constructor of the guarded object.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the object was built through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
