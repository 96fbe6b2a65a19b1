package scopekit

// Configure starts building a Manager. Register factories and root services
// on the returned builder, then call Build.
//
// Example:
//
//	manager := scopekit.Configure().
//	    AddFactory(databaseFactory).
//	    AddFactory(scopekit.NewDisposerFactory()).
//	    WithService("config", cfg).
//	    Build()
func Configure() *ManagerBuilder {
	return &ManagerBuilder{
		rootIndex: make(map[string]int),
	}
}

// ManagerBuilder accumulates the factory list and the root scope's initial
// bindings. The zero value is not usable; start with Configure.
type ManagerBuilder struct {
	factories   []ServiceFactory
	rootEntries []binding
	rootIndex   map[string]int
}

// AddFactory appends a factory. Factories bind in registration order and
// tear down in reverse registration order, for every scope the Manager
// builds. Nil factories are ignored.
func (b *ManagerBuilder) AddFactory(factory ServiceFactory) *ManagerBuilder {
	if factory != nil {
		b.factories = append(b.factories, factory)
	}

	return b
}

// AddFactories appends factories in order.
func (b *ManagerBuilder) AddFactories(factories ...ServiceFactory) *ManagerBuilder {
	for _, factory := range factories {
		b.AddFactory(factory)
	}

	return b
}

// WithService binds service under tag in the root scope's registry. Every
// scope inherits root bindings through extension. Binding an existing tag
// replaces it in place.
func (b *ManagerBuilder) WithService(tag string, service any) *ManagerBuilder {
	if i, ok := b.rootIndex[tag]; ok {
		b.rootEntries[i].service = service
		return b
	}

	b.rootIndex[tag] = len(b.rootEntries)
	b.rootEntries = append(b.rootEntries, binding{tag: tag, service: service, owned: true})
	return b
}

// Apply runs options (see NewModule, WithFactory, WithService) against the
// builder, stopping at the first error.
func (b *ManagerBuilder) Apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		if err := opt(b); err != nil {
			return err
		}
	}

	return nil
}

// Build constructs the Manager. The root scope exists immediately with a
// usage count of one and is never torn down; factories do not run for the
// root scope, only its WithService bindings populate it.
func (b *ManagerBuilder) Build() *Manager {
	factories := make([]ServiceFactory, len(b.factories))
	copy(factories, b.factories)

	entries := make([]binding, len(b.rootEntries))
	copy(entries, b.rootEntries)

	return newManager(factories, entries)
}
