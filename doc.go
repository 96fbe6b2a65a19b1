// Package scopekit manages a tree of nested, reference-counted scopes, each
// holding a registry of named services visible to it and its descendants.
//
// # Overview
//
// Callers attach an opaque, comparable key to each scope. A scope's services
// are built exactly once when the key is first set up, shared by every
// claimant of the same key, and torn down exactly once when the last
// claimant releases it. The library provides:
//   - Reference-counted scope lifetimes keyed by caller-supplied keys
//   - Parent/child nesting via the Child capability
//   - Atomic fan-out into multiple child scopes via the Composite capability
//   - Pluggable ServiceFactory hooks for binding and cleanup
//   - Ordered teardown: children before parents, factories in reverse order
//
// # Basic Usage
//
// Configure a Manager with factories and root services, then set scopes up
// and tear them down around the units of work they belong to:
//
//	manager := scopekit.Configure().
//	    AddFactory(sessionFactory).
//	    WithService("config", cfg).
//	    Build()
//
//	if err := manager.SetUp(sessionKey{}); err != nil {
//	    log.Fatal(err)
//	}
//	defer manager.TearDown(sessionKey{})
//
//	services, err := manager.FindServices(sessionKey{})
//
// # Keys
//
// Any comparable value is a key. A key that implements Child declares an
// ancestor whose scope is set up before and torn down after its own. A key
// that implements Composite expands into an ordered set of child scopes
// nested under it, built as a unit and released in reverse order. The two
// capabilities are orthogonal; a key may carry both.
//
// # Factories
//
// Every registered ServiceFactory runs for every scope: BindServices in
// registration order against a builder inheriting the parent scope's
// bindings, TearDownServices in reverse registration order when the scope is
// destroyed. Factory errors propagate unmodified to the SetUp or TearDown
// caller, with no rollback of the work already done.
//
// # Concurrency
//
// A Manager is single-threaded. Wrap it with Synchronized when scopes are
// set up and torn down from multiple goroutines.
package scopekit
