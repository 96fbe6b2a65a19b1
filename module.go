package scopekit

// Option represents a registration action against a ManagerBuilder.
type Option func(*ManagerBuilder) error

// NewModule groups related registrations under a name. Modules nest, so an
// application can assemble its factory list from feature-level pieces.
// Failures from an inner option are wrapped in a ModuleError carrying the
// module's name.
//
// Example:
//
//	var DatabaseModule = scopekit.NewModule("database",
//	    scopekit.WithFactory(NewConnectionFactory()),
//	    scopekit.WithService("db.timeout", 30*time.Second),
//	)
//
//	var AppModule = scopekit.NewModule("app",
//	    DatabaseModule,
//	    scopekit.WithFactory(scopekit.NewDisposerFactory()),
//	)
//
//	builder := scopekit.Configure()
//	if err := builder.Apply(AppModule); err != nil {
//	    log.Fatal(err)
//	}
//	manager := builder.Build()
func NewModule(name string, opts ...Option) Option {
	return func(b *ManagerBuilder) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}

			if err := opt(b); err != nil {
				return ModuleError{Module: name, Cause: err}
			}
		}

		return nil
	}
}

// WithFactory creates an Option that registers a factory.
func WithFactory(factory ServiceFactory) Option {
	return func(b *ManagerBuilder) error {
		b.AddFactory(factory)
		return nil
	}
}

// WithFactories creates an Option that registers factories in order.
func WithFactories(factories ...ServiceFactory) Option {
	return func(b *ManagerBuilder) error {
		b.AddFactories(factories...)
		return nil
	}
}

// WithService creates an Option that binds a root service.
func WithService(tag string, service any) Option {
	return func(b *ManagerBuilder) error {
		b.WithService(tag, service)
		return nil
	}
}
