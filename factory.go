package scopekit

// ServiceFactory populates and cleans up scope registries. Every factory
// registered on a Manager is invoked for every scope the Manager builds:
// BindServices in registration order when the scope is first set up, and
// TearDownServices in reverse registration order when the scope's usage
// count returns to zero.
//
// Errors returned from either hook propagate unmodified to the SetUp or
// TearDown caller; the Manager performs no rollback (see Manager docs).
type ServiceFactory interface {
	// BindServices adds bindings for a scope under construction. The builder
	// already contains the parent scope's bindings.
	BindServices(builder *Builder) error

	// TearDownServices releases whatever BindServices acquired for this
	// scope. It receives the finalized registry of the scope being destroyed.
	TearDownServices(services *Services) error
}

// NewFactory adapts a pair of functions to a ServiceFactory. Either function
// may be nil, in which case that hook is a no-op.
func NewFactory(bind func(*Builder) error, tearDown func(*Services) error) ServiceFactory {
	return funcFactory{bind: bind, tearDown: tearDown}
}

type funcFactory struct {
	bind     func(*Builder) error
	tearDown func(*Services) error
}

func (f funcFactory) BindServices(builder *Builder) error {
	if f.bind == nil {
		return nil
	}

	return f.bind(builder)
}

func (f funcFactory) TearDownServices(services *Services) error {
	if f.tearDown == nil {
		return nil
	}

	return f.tearDown(services)
}
