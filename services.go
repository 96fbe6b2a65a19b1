package scopekit

import (
	"github.com/google/uuid"
)

// Services is the finalized registry of one scope: an insertion-ordered
// mapping from string tags to service objects, plus a back-reference to the
// parent scope's registry. Once built, a Services is immutable; a child
// scope that needs more bindings extends it into a new Builder instead.
type Services struct {
	id      string
	key     Key
	parent  *Services
	entries []binding
	index   map[string]int
}

type binding struct {
	tag     string
	service any

	// owned marks bindings put by this scope's own build, as opposed to
	// bindings copied in from the parent by Extend.
	owned bool
}

func newServices(key Key, parent *Services, entries []binding) *Services {
	s := &Services{
		id:      uuid.NewString(),
		key:     key,
		parent:  parent,
		entries: entries,
		index:   make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		s.index[e.tag] = i
	}

	return s
}

// ID returns the unique ID of this registry instance. A scope that is torn
// down and set up again gets a fresh ID.
func (s *Services) ID() string {
	return s.id
}

// Key returns the key this registry was built for.
func (s *Services) Key() Key {
	return s.key
}

// Parent returns the parent scope's registry, or nil for the root scope.
// The parent is a non-owning back-reference; the Manager owns scope lifetime.
func (s *Services) Parent() *Services {
	return s.parent
}

// Get returns the service bound under tag, or false if no such binding
// exists. Bindings inherited from ancestor scopes are visible here because
// extension copies them into the child registry.
func (s *Services) Get(tag string) (any, bool) {
	i, ok := s.index[tag]
	if !ok {
		return nil, false
	}

	return s.entries[i].service, true
}

// Has reports whether a service is bound under tag.
func (s *Services) Has(tag string) bool {
	_, ok := s.index[tag]
	return ok
}

// Tags returns all bound tags in binding order, parent bindings first.
func (s *Services) Tags() []string {
	tags := make([]string, len(s.entries))
	for i, e := range s.entries {
		tags[i] = e.tag
	}

	return tags
}

// Len returns the number of bindings.
func (s *Services) Len() int {
	return len(s.entries)
}

// Extend returns a Builder for a child scope keyed by key, pre-populated
// with this registry's bindings.
func (s *Services) Extend(key Key) *Builder {
	entries := make([]binding, len(s.entries))
	copy(entries, s.entries)
	for i := range entries {
		entries[i].owned = false
	}

	return &Builder{
		key:     key,
		parent:  s,
		entries: entries,
		index:   s.cloneIndex(),
	}
}

func (s *Services) cloneIndex() map[string]int {
	index := make(map[string]int, len(s.index))
	for tag, i := range s.index {
		index[tag] = i
	}

	return index
}

// Builder accumulates tag bindings for a scope that is being built.
// Builders are handed to each ServiceFactory's BindServices in registration
// order; Build finalizes the result into an immutable Services.
type Builder struct {
	key     Key
	parent  *Services
	entries []binding
	index   map[string]int
}

// Key returns the key of the scope under construction. Factories can use it
// to decide which services a scope needs.
func (b *Builder) Key() Key {
	return b.key
}

// Parent returns the parent scope's registry, or nil when building the root.
func (b *Builder) Parent() *Services {
	return b.parent
}

// Get returns the service currently bound under tag, including bindings
// inherited from the parent and bindings added earlier in this build.
func (b *Builder) Get(tag string) (any, bool) {
	i, ok := b.index[tag]
	if !ok {
		return nil, false
	}

	return b.entries[i].service, true
}

// Put binds service under tag, replacing any inherited or earlier binding
// with the same tag in place. Returns the builder for chaining.
func (b *Builder) Put(tag string, service any) *Builder {
	if i, ok := b.index[tag]; ok {
		b.entries[i].service = service
		b.entries[i].owned = true
		return b
	}

	b.index[tag] = len(b.entries)
	b.entries = append(b.entries, binding{tag: tag, service: service, owned: true})
	return b
}

// Build finalizes the accumulated bindings into an immutable Services.
func (b *Builder) Build() *Services {
	entries := make([]binding, len(b.entries))
	copy(entries, b.entries)

	return newServices(b.key, b.parent, entries)
}
