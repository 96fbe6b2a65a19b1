package scopekit

import "errors"

// Disposable is implemented by services that hold resources needing cleanup
// when their scope is destroyed.
//
// Example:
//
//	type DatabaseConnection struct {
//	    conn *sql.DB
//	}
//
//	func (dc *DatabaseConnection) Close() error {
//	    return dc.conn.Close()
//	}
type Disposable interface {
	// Close disposes the resource.
	Close() error
}

// NewDisposerFactory returns a ServiceFactory that binds nothing and, on
// teardown, closes every Disposable service bound by the scope itself, in
// reverse binding order. Bindings inherited unchanged from the parent scope
// are skipped; they are closed when their own scope is destroyed.
//
// Register it before the factories whose services it should dispose, so its
// teardown hook runs after theirs.
func NewDisposerFactory() ServiceFactory {
	return disposerFactory{}
}

type disposerFactory struct{}

func (disposerFactory) BindServices(*Builder) error {
	return nil
}

func (disposerFactory) TearDownServices(services *Services) error {
	var errs []error
	for i := len(services.entries) - 1; i >= 0; i-- {
		e := services.entries[i]
		if !e.owned {
			continue
		}

		disposable, ok := e.service.(Disposable)
		if !ok {
			continue
		}

		if err := disposable.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
