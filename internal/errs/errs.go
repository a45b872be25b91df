// Package errs centralises the error taxonomy shared by every CCL container.
//
// CCL validates before it mutates: every exported operation that can fail
// checks its precondition first and returns one of the three sentinel kinds
// below, wrapped with context via fmt.Errorf("%w: ...", ...). Callers use
// errors.Is against the sentinel to classify a failure without parsing
// strings. No container mutates state before the precondition check passes,
// so a failed call never leaves a container partially updated.
//
// © 2025 ccl authors. MIT License.
package errs

import "errors"

var (
	// ErrOutOfRange covers index-past-size, empty pop/dequeue, a handle index
	// past the slot count, an iterator outside [begin, end), a packed-integer
	// field overflow, an entity GetComponent finds in no archetype, and an
	// entity that is not a member of the archetype it is looked up in.
	ErrOutOfRange = errors.New("ccl: out of range")

	// ErrInvalidArgument covers a nil pointer where one is required, a zero
	// ring capacity, releasing an already-invalid handle, and a component an
	// entity lacks or already has.
	ErrInvalidArgument = errors.New("ccl: invalid argument")

	// ErrAllocFailed covers local-allocator exhaustion under the throw policy.
	ErrAllocFailed = errors.New("ccl: allocation failed")
)
