package scopekit

// Key identifies a scope in the tree. Keys are opaque to the engine and are
// compared by identity, so any comparable value works: a struct, a pointer,
// a string, or a typed constant.
//
// A key may optionally expose one or both capabilities below. A key that
// exposes neither is a plain key parented directly under the root scope.
type Key = any

// Child is implemented by keys that declare an ancestor. The parent's scope
// is always set up before, and torn down after, the child's scope.
//
// Example:
//
//	type profileKey struct{ userID string }
//
//	func (k profileKey) Parent() scopekit.Key {
//	    return sessionKey{}
//	}
type Child interface {
	// Parent returns the key whose scope this key's scope is nested under.
	Parent() Key
}

// Composite is implemented by keys that expand into an ordered set of child
// keys. Setting up a composite key sets up every child key, parented under
// the composite's own scope; tearing it down releases the children in
// reverse order before the composite itself.
type Composite interface {
	// Keys returns the child keys in build order.
	Keys() []Key
}

// rootKey is the sentinel key for the root scope. It never implements Child
// or Composite, and the root scope is never removed from the tree.
type rootKey struct{}

func (rootKey) String() string {
	return "scopekit.RootKey"
}

// RootKey identifies the root scope of every Manager. The root scope holds
// the services registered through ManagerBuilder.WithService and is the
// parent of every key that does not implement Child.
var RootKey Key = rootKey{}
