package scopekit

import (
	"reflect"

	"go.uber.org/dig"
)

// DigBinding names one service to pull out of a dig container. Construct it
// with FromDig.
type DigBinding struct {
	tag         string
	serviceType reflect.Type
}

// FromDig declares that the service of type T provided in a dig container
// should be bound under tag in every scope the Manager builds.
func FromDig[T any](tag string) DigBinding {
	return DigBinding{tag: tag, serviceType: reflect.TypeFor[T]()}
}

// NewDigFactory returns a ServiceFactory bridging a dig container into the
// scope tree: on every scope build it resolves each declared binding from
// the container and puts the result into the scope's registry. Resolution
// errors propagate to the SetUp caller. The factory's teardown hook is a
// no-op; the container owns its values.
//
// Example:
//
//	container := dig.New()
//	container.Provide(NewDatabase)
//
//	manager := scopekit.Configure().
//	    AddFactory(scopekit.NewDigFactory(container,
//	        scopekit.FromDig[*Database]("db"),
//	    )).
//	    Build()
func NewDigFactory(container *dig.Container, bindings ...DigBinding) ServiceFactory {
	return &digFactory{container: container, bindings: bindings}
}

type digFactory struct {
	container *dig.Container
	bindings  []DigBinding
}

func (f *digFactory) BindServices(builder *Builder) error {
	for _, b := range f.bindings {
		value, err := f.extract(b.serviceType)
		if err != nil {
			return err
		}

		builder.Put(b.tag, value)
	}

	return nil
}

func (f *digFactory) TearDownServices(*Services) error {
	return nil
}

// extract builds a one-parameter function of the requested type on the fly
// and invokes it through dig to capture the resolved value.
func (f *digFactory) extract(serviceType reflect.Type) (any, error) {
	var result any

	fnType := reflect.FuncOf([]reflect.Type{serviceType}, nil, false)
	fn := reflect.MakeFunc(fnType, func(args []reflect.Value) []reflect.Value {
		result = args[0].Interface()
		return nil
	})

	if err := f.container.Invoke(fn.Interface()); err != nil {
		return nil, err
	}

	return result, nil
}
