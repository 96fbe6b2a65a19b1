package scopekit

import (
	"errors"
	"fmt"
)

// Sentinel errors. These are wrapped by the typed errors below; match them
// with errors.Is.
var (
	// ErrNilKey is returned when a nil key is passed to any Manager operation.
	ErrNilKey = errors.New("key cannot be nil")

	// ErrServicesNotFound is returned by FindServices for a key with no live
	// scope.
	ErrServicesNotFound = errors.New("no services exist for key")

	// ErrUnbalancedTearDown is returned by TearDown for a key with no live
	// scope. It indicates a release without a matching SetUp, which is a
	// program-order bug in the caller.
	ErrUnbalancedTearDown = errors.New("tear down without matching set up")
)

var (
	_ error = NotFoundError{}
	_ error = UnbalancedTearDownError{}
	_ error = ModuleError{}
)

// NotFoundError reports a FindServices call for a key with no live scope.
// The caller either never set the key up or already fully released it.
type NotFoundError struct {
	Key Key
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no services exist for key %v: set it up before finding it", e.Key)
}

func (e NotFoundError) Unwrap() error {
	return ErrServicesNotFound
}

// UnbalancedTearDownError reports a TearDown call for a key with no live
// scope. Unlike NotFoundError this is a precondition violation, not a
// recoverable condition: every TearDown must match an earlier SetUp.
type UnbalancedTearDownError struct {
	Key Key
}

func (e UnbalancedTearDownError) Error() string {
	return fmt.Sprintf("cannot tear down key %v: it does not exist or was already removed", e.Key)
}

func (e UnbalancedTearDownError) Unwrap() error {
	return ErrUnbalancedTearDown
}

// ModuleError wraps a failure from an option inside a named module.
type ModuleError struct {
	Module string
	Cause  error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("module %q: %v", e.Module, e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}
