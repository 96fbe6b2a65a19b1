package scopekit

import (
	"fmt"
	"log/slog"
)

// Manager owns a tree of reference-counted scopes keyed by opaque,
// comparable keys. A scope's registry is built exactly once, on the first
// SetUp for its key, and torn down exactly once, when the last matching
// TearDown releases it. Parent scopes always outlive their children, and a
// composite key's children are built after, and released before, the
// composite's own scope.
//
// A Manager is not safe for concurrent use. All operations run to completion
// on the calling goroutine with no internal locking; callers that share a
// Manager across goroutines must serialize every call themselves, or use
// Synchronized.
//
// Errors from factory hooks propagate unmodified and interrupt the walk
// where they occur: counts bumped and scopes built before the failure are
// kept as-is. Callers that need atomic multi-key setup must ensure their
// factories cannot fail.
type Manager struct {
	factories []ServiceFactory
	scopes    map[Key]*referenceCountedServices

	// order tracks insertion order of live keys for diagnostics.
	order []Key
}

// referenceCountedServices pairs a scope's registry with the number of
// not-yet-released SetUp calls holding it.
type referenceCountedServices struct {
	services   *Services
	usageCount int
}

func newManager(factories []ServiceFactory, rootEntries []binding) *Manager {
	m := &Manager{
		factories: factories,
		scopes:    make(map[Key]*referenceCountedServices),
	}

	root := newServices(RootKey, nil, rootEntries)
	m.scopes[RootKey] = &referenceCountedServices{services: root, usageCount: 1}
	m.order = append(m.order, RootKey)

	return m
}

// HasServices reports whether key currently has a live scope. It never has
// side effects; HasServices(RootKey) is always true.
func (m *Manager) HasServices(key Key) bool {
	if key == nil {
		return false
	}

	_, ok := m.scopes[key]
	return ok
}

// FindServices returns the registry of key's live scope. It returns a
// NotFoundError if the key was never set up or has been fully released.
func (m *Manager) FindServices(key Key) (*Services, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	node, ok := m.scopes[key]
	if !ok {
		return nil, NotFoundError{Key: key}
	}

	return node.services, nil
}

// RootServices returns the root scope's registry, holding the bindings
// registered through ManagerBuilder.WithService.
func (m *Manager) RootServices() *Services {
	return m.scopes[RootKey].services
}

// SetUp ensures a live scope exists for key and increments its usage count.
//
// If key implements Child, the whole ancestor chain is set up first, so the
// parent scope exists and holds an extra count for as long as this key does.
// If key implements Composite, a scope is then acquired for each of its
// child keys in order, parented under key's own scope; composite children
// that are themselves Composite expand recursively the same way.
func (m *Manager) SetUp(key Key) error {
	if key == nil {
		return ErrNilKey
	}

	parent := m.scopes[RootKey].services
	if child, ok := key.(Child); ok {
		parentKey := child.Parent()
		if err := m.SetUp(parentKey); err != nil {
			return err
		}

		parent = m.scopes[parentKey].services
	}

	node, err := m.acquire(parent, key)
	if err != nil {
		return err
	}

	if composite, ok := key.(Composite); ok {
		return m.buildComposite(composite, node.services)
	}

	return nil
}

// buildComposite acquires a scope for each child of composite, parented
// under parent. Children do not re-walk their own Child chain here; only a
// top-level SetUp does that.
func (m *Manager) buildComposite(composite Composite, parent *Services) error {
	for _, childKey := range composite.Keys() {
		node, err := m.acquire(parent, childKey)
		if err != nil {
			return err
		}

		if nested, ok := childKey.(Composite); ok {
			if err := m.buildComposite(nested, node.services); err != nil {
				return err
			}
		}
	}

	return nil
}

// acquire is the single build-once gate: it creates the scope for key if no
// live one exists, then increments the usage count. Factories run only on
// creation, in registration order, against a builder extended from parent.
func (m *Manager) acquire(parent *Services, key Key) (*referenceCountedServices, error) {
	if key == nil {
		return nil, ErrNilKey
	}

	node, ok := m.scopes[key]
	if !ok {
		builder := parent.Extend(key)
		for _, factory := range m.factories {
			if err := factory.BindServices(builder); err != nil {
				return nil, err
			}
		}

		node = &referenceCountedServices{services: builder.Build()}
		m.scopes[key] = node
		m.order = append(m.order, key)
	}

	node.usageCount++
	return node, nil
}

// TearDown is the exact inverse of one SetUp call for key: it decrements the
// counts SetUp incremented, destroying any scope whose count reaches zero.
//
// Composite children are released in reverse declaration order before the
// composite's own count is touched. The Child ancestor chain is then
// released as well, but only for the key TearDown was called with, never
// while unwinding a composite's children.
//
// TearDown returns an UnbalancedTearDownError when key (or any key the walk
// reaches) has no live scope; that indicates a release without a matching
// SetUp.
func (m *Manager) TearDown(key Key) error {
	if key == nil {
		return ErrNilKey
	}

	return m.tearDown(key, false)
}

func (m *Manager) tearDown(key Key, fromComposite bool) error {
	if key == nil {
		return ErrNilKey
	}

	if composite, ok := key.(Composite); ok {
		children := composite.Keys()
		for i := len(children) - 1; i >= 0; i-- {
			// Every nested level counts as composite-internal, even a child
			// that is also a Child of some key outside the composite; such a
			// child's ancestor chain is not unwound here.
			if err := m.tearDown(children[i], true); err != nil {
				return err
			}
		}
	}

	if err := m.release(key); err != nil {
		return err
	}

	if !fromComposite {
		if child, ok := key.(Child); ok {
			return m.tearDown(child.Parent(), false)
		}
	}

	return nil
}

// release decrements key's usage count and, when it reaches zero, runs every
// factory's teardown hook in reverse registration order and removes the
// scope. The root scope is never removed.
func (m *Manager) release(key Key) error {
	node, ok := m.scopes[key]
	if !ok {
		return UnbalancedTearDownError{Key: key}
	}

	// The engine's own claim on the root scope can never be released.
	if key == RootKey && node.usageCount == 1 {
		return UnbalancedTearDownError{Key: key}
	}

	node.usageCount--

	if key != RootKey && node.usageCount == 0 {
		for i := len(m.factories) - 1; i >= 0; i-- {
			if err := m.factories[i].TearDownServices(node.services); err != nil {
				return err
			}
		}

		delete(m.scopes, key)
		m.removeFromOrder(key)
	}

	return nil
}

func (m *Manager) removeFromOrder(key Key) {
	for i, k := range m.order {
		if k == key {
			m.order = append(m.order[:i], m.order[i+1:]...)
			return
		}
	}
}

// Usage is one entry of the diagnostic key-to-count enumeration.
type Usage struct {
	Key   Key
	Count int
}

// Usages returns the live keys and their usage counts in scope creation
// order, the root scope first. The result is a snapshot; mutating it does
// not affect the Manager.
func (m *Manager) Usages() []Usage {
	usages := make([]Usage, 0, len(m.order))
	for _, key := range m.order {
		usages = append(usages, Usage{Key: key, Count: m.scopes[key].usageCount})
	}

	return usages
}

// LogUsage writes the current key-to-count table through logger, one record
// per live scope. A nil logger falls back to slog.Default.
func (m *Manager) LogUsage(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("scope usage", slog.Int("scopes", len(m.order)))
	for _, usage := range m.Usages() {
		logger.Info("scope",
			slog.String("key", fmt.Sprint(usage.Key)),
			slog.Int("count", usage.Count),
		)
	}
}
