// Package kernel contains the shared value objects of the domain model:
// identifiers, money, geographic locations, and actor roles.
//
// Every type in this package is an immutable value object constructed through
// a factory function. Zero values are invalid and fail Validate; this is
// enforced either through a constructor guard or through the value's own
// internal state. Value objects are compared by value and are safe to copy
// and share between goroutines.
package kernel
