// Package chi provides scopekit integration for Chi and other net/http
// routers.
//
// This package provides middleware that sets a scope up for each request and
// tears it down when the request completes, making the scope's registry
// available through the request context.
//
// Example usage:
//
//	manager := scopekit.Synchronized(scopekit.Configure().
//	    AddFactory(requestFactory).
//	    Build())
//
//	r := chi.NewRouter()
//	r.Use(scopekitchi.ScopeMiddleware(manager, keyFn))
package chi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/scopekit/scopekit"
)

// ErrNoServicesInContext is returned by FromContext when the request did not
// pass through ScopeMiddleware.
var ErrNoServicesInContext = errors.New("no services in context")

// KeyFunc derives the scope key for a request, e.g. a session key from a
// cookie or a tenant key from the host. The returned key must be comparable.
type KeyFunc func(*http.Request) scopekit.Key

// Config holds the configuration for the scope middleware.
type Config struct {
	// ErrorHandler is called when scope setup fails.
	// If nil, a default handler returning 500 Internal Server Error is used.
	ErrorHandler func(http.ResponseWriter, *http.Request, error)

	// TearDownErrorHandler is called when releasing the scope fails.
	// If nil, errors are logged using slog.
	TearDownErrorHandler func(error)
}

// Option configures the scope middleware.
type Option func(*Config)

// WithErrorHandler sets the error handler for scope setup failures.
func WithErrorHandler(h func(http.ResponseWriter, *http.Request, error)) Option {
	return func(c *Config) {
		c.ErrorHandler = h
	}
}

// WithTearDownErrorHandler sets the error handler for scope release failures.
func WithTearDownErrorHandler(h func(error)) Option {
	return func(c *Config) {
		c.TearDownErrorHandler = h
	}
}

func defaultConfig() *Config {
	return &Config{
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		},
		TearDownErrorHandler: func(err error) {
			slog.Error("failed to tear down scope", "error", err)
		},
	}
}

// ScopeMiddleware creates a Chi middleware that sets up the scope for
// keyFn's key on every request and attaches the scope's registry to the
// request context, where handlers retrieve it with FromContext.
//
// The scope is torn down when the request completes; requests sharing a key
// share one scope, which is destroyed when the last in-flight request for
// that key finishes.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(scopekitchi.ScopeMiddleware(manager, keyFn))
func ScopeMiddleware(manager *scopekit.SynchronizedManager, keyFn KeyFunc, opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			if err := manager.SetUp(key); err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			defer func() {
				if err := manager.TearDown(key); err != nil {
					cfg.TearDownErrorHandler(err)
				}
			}()

			services, err := manager.FindServices(key)
			if err != nil {
				cfg.ErrorHandler(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(withServices(r.Context(), services)))
		})
	}
}

// servicesContextKey is the key for storing the request scope's registry.
type servicesContextKey struct{}

func withServices(ctx context.Context, services *scopekit.Services) context.Context {
	return context.WithValue(ctx, servicesContextKey{}, services)
}

// FromContext returns the registry of the request's scope.
func FromContext(ctx context.Context) (*scopekit.Services, error) {
	services, ok := ctx.Value(servicesContextKey{}).(*scopekit.Services)
	if !ok || services == nil {
		return nil, ErrNoServicesInContext
	}

	return services, nil
}
